// Package model holds the database table definitions for the event index and
// the shared transaction context threaded through every engine operation.
package model

import (
	"gorm.io/gorm"
	"minter/common/types"
)

var Tables = []interface{}{
	&VectorEvent{},
	&MintEvent{},
	&PaymentEvent{},
	&AuctionEvent{},
	&MechanicEvent{},
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Tables...)
}

func DropTable(db *gorm.DB) error {
	return db.Migrator().DropTable(Tables...)
}

// VectorEvent vector lifecycle record
type VectorEvent struct {
	ID         uint64        `json:"id" gorm:"primaryKey;autoIncrement"`
	Kind       string        `json:"kind" gorm:"type:VARCHAR(32);index"` //created, updated, deleted, frozen, metadata_set
	VectorId   string        `json:"vectorId" gorm:"type:CHAR(66);index"`
	Collection types.Address `json:"collection" gorm:"type:CHAR(42);index"`
	Caller     types.Address `json:"caller" gorm:"type:CHAR(42)"`
	Timestamp  types.Uint64  `json:"timestamp"`
}

// MintEvent successful mint record
type MintEvent struct {
	ID         uint64         `json:"id" gorm:"primaryKey;autoIncrement"`
	Kind       string         `json:"kind" gorm:"type:VARCHAR(32);index"` //vector, gated, gated_series, mechanic, mechanic_choose
	VectorId   string         `json:"vectorId" gorm:"type:CHAR(66);index"`
	Collection types.Address  `json:"collection" gorm:"type:CHAR(42);index"`
	Recipient  types.Address  `json:"recipient" gorm:"type:CHAR(42);index"`
	User       types.Address  `json:"user" gorm:"type:CHAR(42)"` //cap accounting identity
	Amount     types.Uint64   `json:"amount"`
	TokenIds   types.StrArray `json:"tokenIds" gorm:"type:TEXT"` //chosen token ids, empty for sequential mints
	Timestamp  types.Uint64   `json:"timestamp"`
}

// PaymentEvent value movement record, native or ERC-20
type PaymentEvent struct {
	ID        uint64        `json:"id" gorm:"primaryKey;autoIncrement"`
	Kind      string        `json:"kind" gorm:"type:VARCHAR(32);index"` //sale, fee, referral, creator_reward, rebate, withdrawal
	Currency  types.Address `json:"currency" gorm:"type:CHAR(42)"` //zero address is the native currency
	From      types.Address `json:"from" gorm:"type:CHAR(42);index"`
	To        types.Address `json:"to" gorm:"type:CHAR(42);index"`
	Amount    types.BigInt  `json:"amount" gorm:"type:VARCHAR(80)"`
	VectorId  string        `json:"vectorId" gorm:"type:CHAR(66);index"`
	Timestamp types.Uint64  `json:"timestamp"`
}

// AuctionEvent auction lifecycle record
type AuctionEvent struct {
	ID        uint64        `json:"id" gorm:"primaryKey;autoIncrement"`
	Kind      string        `json:"kind" gorm:"type:VARCHAR(32);index"` //bid, bid_updated, lengthened, rebate, funds_withdrawn, bid_reclaimed
	VectorId  string        `json:"vectorId" gorm:"type:CHAR(66);index"`
	Bidder    types.Address `json:"bidder" gorm:"type:CHAR(42);index"`
	BidId     types.Uint64  `json:"bidId"`
	Amount    types.BigInt  `json:"amount" gorm:"type:VARCHAR(80)"`
	EndTime   types.Uint64  `json:"endTime"`
	Timestamp types.Uint64  `json:"timestamp"`
}

// MechanicEvent mechanic registry record
type MechanicEvent struct {
	ID         uint64        `json:"id" gorm:"primaryKey;autoIncrement"`
	Kind       string        `json:"kind" gorm:"type:VARCHAR(32);index"` //registered, paused, unpaused
	VectorId   string        `json:"vectorId" gorm:"type:CHAR(66);index"`
	Mechanic   types.Address `json:"mechanic" gorm:"type:CHAR(42);index"`
	Collection types.Address `json:"collection" gorm:"type:CHAR(42)"`
	Timestamp  types.Uint64  `json:"timestamp"`
}
