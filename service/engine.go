package service

import (
	"fmt"
	"math/big"

	"minter/chain"
	"minter/common/types"
	"minter/conf"
	"minter/manager"
)

// Ledger is the authoritative in-process chain state the engine runs on.
var Ledger *chain.Sim

// Engine is the mint manager instance serving every API operation.
var Engine *manager.Manager

func init() {
	ch := conf.Chain
	fee, ok := new(big.Int).SetString(ch.NativeMintFee, 10)
	if !ok {
		panic(fmt.Sprintf("bad native mint fee: %v", ch.NativeMintFee))
	}
	executors := make([]types.Address, 0, len(ch.PlatformExecutors))
	for _, e := range ch.PlatformExecutors {
		executors = append(executors, types.Address(e))
	}

	Ledger = chain.NewSim()
	Engine = manager.New(manager.Config{
		Addr:              types.Address(ch.Manager),
		Platform:          types.Address(ch.PlatformPayout),
		Signer:            types.Address(conf.Signer),
		ChainId:           conf.ChainId,
		DutchMechanic:     types.Address(ch.DutchMechanic),
		RankedMechanic:    types.Address(ch.RankedMechanic),
		SeedMechanic:      types.Address(ch.SeedMechanic),
		NativeMintFee:     fee,
		Gasless:           types.Address(ch.GaslessMechanic),
		Executors:         executors,
		CapUserIsTxSender: ch.CapUserIsTxSender,
		Backend:           Ledger,
		Sink:              Recorder{},
	})
}
