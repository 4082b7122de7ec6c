// Package manager implements the mint manager: the single entry point owning
// every engine and mechanic. Operations are serialized behind one lock and
// run against a chain snapshot, so a failing operation leaves both the
// engine state and the ledger exactly as it found them.
package manager

import (
	"errors"
	"math/big"
	"strconv"
	"sync"

	"minter/chain"
	"minter/common/model"
	"minter/common/types"
	"minter/common/utils"
	"minter/dutch"
	"minter/fees"
	"minter/gated"
	"minter/mech"
	"minter/ranked"
	"minter/seed"
	"minter/vector"
)

var (
	ErrPaymentMismatch = errors.New("attached payment does not equal sale total plus fee")
	ErrNotPlatform     = mech.ErrNotPlatform
)

// Config wires a manager instance. Addr doubles as the EIP-712 verifying
// identity and the fee collection account.
type Config struct {
	Addr     types.Address
	Platform types.Address //platform payout side of splits
	Signer   types.Address //default claim signer
	ChainId  int64

	DutchMechanic  types.Address
	RankedMechanic types.Address
	SeedMechanic   types.Address

	NativeMintFee     *big.Int
	Gasless           types.Address
	Executors         []types.Address
	CapUserIsTxSender bool

	Backend chain.Backend
	Sink    model.EventSink
}

// Manager owns all engine state behind one mutex.
type Manager struct {
	mu sync.Mutex

	addr     types.Address
	platform types.Address
	backend  chain.Backend
	sink     model.EventSink

	vectors   *vector.Engine
	gated     *gated.Engine
	fees      *fees.Oracle
	referrals *fees.Registry
	registry  *mech.Registry

	dutch    *dutch.Mechanic
	ranked   *ranked.Mechanic
	seeds    *seed.Mechanic
	seedAddr types.Address
}

func New(cfg Config) *Manager {
	sink := cfg.Sink
	if sink == nil {
		sink = model.NopSink{}
	}
	executors := cfg.Executors
	if len(executors) == 0 && cfg.Signer != "" {
		executors = []types.Address{cfg.Signer}
	}
	fee := cfg.NativeMintFee
	if fee == nil {
		fee = new(big.Int)
	}

	referrals := fees.NewRegistry()
	m := &Manager{
		addr:     cfg.Addr,
		platform: cfg.Platform,
		backend:  cfg.Backend,
		sink:     sink,

		vectors: vector.NewEngine(cfg.Backend, cfg.CapUserIsTxSender),
		gated: gated.NewEngine(gated.Domain{
			Name:              "MintManager",
			Version:           "1.0.0",
			ChainId:           cfg.ChainId,
			VerifyingContract: cfg.Addr,
		}, executors),
		fees: fees.NewOracle(cfg.Backend, fees.Config{
			NativeMintFee:  fee,
			PlatformPayout: cfg.Platform,
			FeeCollector:   cfg.Addr,
			Waived:         []types.Address{cfg.DutchMechanic, cfg.RankedMechanic},
			Gasless:        cfg.Gasless,
		}, referrals),
		referrals: referrals,
		registry:  mech.NewRegistry(cfg.Backend),
	}

	client := mech.NewClient(cfg.Addr, cfg.Platform, cfg.Backend, sink)
	m.dutch = dutch.New(cfg.DutchMechanic, client)
	m.ranked = ranked.New(cfg.RankedMechanic, client, ranked.Domain{
		Name:              "RankedAuctionMechanic",
		Version:           "1.0.0",
		ChainId:           cfg.ChainId,
		VerifyingContract: cfg.RankedMechanic,
		Salt:              types.BytesToHash(utils.Keccak256([]byte("ranked-auction"))),
	}, cfg.Signer)
	m.seeds = seed.New(client)
	m.seedAddr = cfg.SeedMechanic

	m.registry.AddMechanic(cfg.DutchMechanic, m.dutch)
	m.registry.AddMechanic(cfg.RankedMechanic, m.ranked)
	m.registry.AddMechanic(cfg.SeedMechanic, m.seeds)
	return m
}

// withTx serializes the operation and rolls the chain back when it fails.
// Engines commit their own maps last, so a failed operation leaves no trace
// on either side.
func (m *Manager) withTx(fn func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := m.backend.Snapshot()
	if err := fn(); err != nil {
		m.backend.RevertTo(snap)
		return err
	}
	return nil
}

// asManager rewrites the context sender to the manager identity for calls
// crossing into a mechanic, keeping the payer and clock intact.
func (m *Manager) asManager(ctx model.TxContext) model.TxContext {
	ctx.Sender = m.addr
	return ctx
}

func vectorIdString(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// GatedDomain returns the domain gated claims must be signed under.
func (m *Manager) GatedDomain() gated.Domain { return m.gated.Domain() }

// RankedDomain returns the domain ranked settlement claims must be signed under.
func (m *Manager) RankedDomain() ranked.Domain { return m.ranked.Domain() }

// settleSale moves the sale total and processes the protocol fee. Native
// sales require the attached value to be exactly total plus fee; ERC-20
// sales require no attached value and pull funds from the origin.
func (m *Manager) settleSale(ctx model.TxContext, vectorId string, currency, paymentRecipient types.Address,
	numToMint uint64, total *big.Int, rewardCreator bool) error {

	fee, err := m.fees.GetClassicVectorMintFee(vectorId, numToMint, ctx.Sender, currency)
	if err != nil {
		return err
	}
	native := currency == "" || currency == types.ZeroAddress
	if native {
		required := new(big.Int).Add(total, fee)
		if ctx.AttachedValue().Cmp(required) != 0 {
			return ErrPaymentMismatch
		}
		if total.Sign() > 0 {
			if err := m.backend.Transfer(ctx.Origin, paymentRecipient, total); err != nil {
				return err
			}
		}
	} else {
		if ctx.AttachedValue().Sign() != 0 {
			return ErrPaymentMismatch
		}
		if total.Sign() > 0 {
			erc20, err := m.backend.ERC20(currency)
			if err != nil {
				return err
			}
			if err := erc20.TransferFrom(ctx.Sender, ctx.Origin, paymentRecipient, total); err != nil {
				return err
			}
		}
	}
	if total.Sign() > 0 {
		m.sink.Payment(&model.PaymentEvent{
			Kind: "sale", Currency: currency, From: ctx.Origin, To: paymentRecipient,
			Amount: types.NewBigInt(total), VectorId: vectorId, Timestamp: types.Uint64(ctx.Timestamp),
		})
	}
	if fee.Sign() == 0 {
		return nil
	}

	payer := ctx.Origin
	if !native {
		payer = ctx.Sender
	}
	settlement, err := m.fees.ProcessClassicVectorMintFeeCap(ctx, vectorId, currency, payer, paymentRecipient, fee, rewardCreator)
	if err != nil {
		return err
	}
	m.sink.Payment(&model.PaymentEvent{
		Kind: "fee", Currency: currency, From: ctx.Origin, To: m.addr,
		Amount: types.NewBigInt(settlement.Fee), VectorId: vectorId, Timestamp: types.Uint64(ctx.Timestamp),
	})
	if settlement.ReferralPaid.Sign() > 0 {
		m.sink.Payment(&model.PaymentEvent{
			Kind: "referral", Currency: currency, From: m.addr, To: settlement.Referrer,
			Amount: types.NewBigInt(settlement.ReferralPaid), VectorId: vectorId, Timestamp: types.Uint64(ctx.Timestamp),
		})
	}
	if settlement.CreatorReward.Sign() > 0 {
		m.sink.Payment(&model.PaymentEvent{
			Kind: "creator_reward", Currency: currency, From: m.addr, To: paymentRecipient,
			Amount: types.NewBigInt(settlement.CreatorReward), VectorId: vectorId, Timestamp: types.Uint64(ctx.Timestamp),
		})
	}
	return nil
}
