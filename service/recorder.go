package service

import (
	"minter/common/model"
	"minter/log"
)

// Recorder indexes engine events into the database. Indexing never blocks an
// operation; a failed write is logged and dropped.
type Recorder struct{}

func (Recorder) Vector(ev *model.VectorEvent)     { record(ev) }
func (Recorder) Mint(ev *model.MintEvent)         { record(ev) }
func (Recorder) Payment(ev *model.PaymentEvent)   { record(ev) }
func (Recorder) Auction(ev *model.AuctionEvent)   { record(ev) }
func (Recorder) Mechanic(ev *model.MechanicEvent) { record(ev) }

func record(ev interface{}) {
	if err := DB.Create(ev).Error; err != nil {
		log.Warnf("event index write failed: %v", err)
	}
}
