package mech

import (
	"minter/chain"
	"minter/common/model"
	"minter/common/types"
)

// Client is the base every mechanic embeds. It pins the mint manager as the
// only caller allowed onto the mint surface and the platform as the admin
// identity, and carries the chain backend and event sink.
type Client struct {
	Manager  types.Address
	Platform types.Address
	Backend  chain.Backend
	Sink     model.EventSink
}

func NewClient(manager, platform types.Address, backend chain.Backend, sink model.EventSink) Client {
	if sink == nil {
		sink = model.NopSink{}
	}
	return Client{Manager: manager, Platform: platform, Backend: backend, Sink: sink}
}

// OnlyManager rejects mint calls that do not come through the manager.
func (c *Client) OnlyManager(ctx model.TxContext) error {
	if ctx.Sender != c.Manager {
		return ErrNotMintManager
	}
	return nil
}

// OnlyPlatform guards platform admin operations.
func (c *Client) OnlyPlatform(ctx model.TxContext) error {
	if ctx.Sender != c.Platform {
		return ErrNotPlatform
	}
	return nil
}
