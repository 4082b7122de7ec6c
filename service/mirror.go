package service

import (
	"context"
	"sync"

	"minter/common/types"
	"minter/conf"
	"minter/node"
)

var (
	mirrorOnce   sync.Once
	mirrorClient *node.Client
	mirrorErr    error
)

// mirror dials the chain RPC on first use so offline deployments still serve
// the engine API.
func mirror() (*node.Client, error) {
	mirrorOnce.Do(func() {
		mirrorClient, mirrorErr = node.Dial(conf.Chain.Url)
	})
	return mirrorClient, mirrorErr
}

// MirrorCollectionRes on-chain collection state return parameters
type MirrorCollectionRes struct {
	Owner       types.Address `json:"owner"`       //Collection owner
	Supply      uint64        `json:"supply"`      //Minted token count
	LimitSupply uint64        `json:"limitSupply"` //Hard supply cap, zero is uncapped
}

func MirrorCollection(ctx context.Context, collection string) (res MirrorCollectionRes, err error) {
	c, err := mirror()
	if err != nil {
		return
	}
	addr := types.Address(collection)
	if res.Owner, err = c.CollectionOwner(ctx, addr); err != nil {
		return
	}
	if res.Supply, err = c.CollectionSupply(ctx, addr); err != nil {
		return
	}
	res.LimitSupply, err = c.CollectionLimitSupply(ctx, addr)
	return
}

// MirrorBalanceRes on-chain balance return parameters
type MirrorBalanceRes struct {
	Balance types.BigInt `json:"balance"` //Native or ERC-20 balance
}

func MirrorBalance(ctx context.Context, account, currency string) (res MirrorBalanceRes, err error) {
	c, err := mirror()
	if err != nil {
		return
	}
	if currency == "" || types.Address(currency) == types.ZeroAddress {
		b, err2 := c.BalanceAt(ctx, types.Address(account))
		if err2 != nil {
			return res, err2
		}
		res.Balance = types.NewBigInt(b)
		return
	}
	b, err := c.ERC20BalanceOf(ctx, types.Address(currency), types.Address(account))
	if err != nil {
		return
	}
	res.Balance = types.NewBigInt(b)
	return
}
