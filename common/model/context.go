package model

import (
	"math/big"

	"minter/common/types"
)

// TxContext is the explicit execution context of one engine operation. The
// sender may be a relayer while the origin stays the true signer, so
// authorization and payment attribution always read from the context instead
// of any ambient caller identity.
type TxContext struct {
	Sender    types.Address //immediate caller
	Origin    types.Address //original transaction signer
	Value     *big.Int      //attached native value, may be nil
	Timestamp uint64        //consensus time in seconds
}

// AttachedValue returns the attached native value, never nil.
func (c TxContext) AttachedValue() *big.Int {
	if c.Value == nil {
		return new(big.Int)
	}
	return c.Value
}

// EventSink receives the outbound events of the engine for off-chain
// indexing. Sinks must not fail; indexing never blocks a mint.
type EventSink interface {
	Vector(ev *VectorEvent)
	Mint(ev *MintEvent)
	Payment(ev *PaymentEvent)
	Auction(ev *AuctionEvent)
	Mechanic(ev *MechanicEvent)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Vector(*VectorEvent)     {}
func (NopSink) Mint(*MintEvent)         {}
func (NopSink) Payment(*PaymentEvent)   {}
func (NopSink) Auction(*AuctionEvent)   {}
func (NopSink) Mechanic(*MechanicEvent) {}
