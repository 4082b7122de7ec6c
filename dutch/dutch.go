// Package dutch implements the discrete Dutch auction mechanic. Prices step
// down a packed table one index per period until the last entry, buyers post
// funds against the current price and later reclaim the difference to the
// final clearing price.
package dutch

import (
	"errors"
	"math/big"

	"minter/common/types"
	"minter/pricing"
)

// record geometry: three 32 byte words, price table stored alongside
const RecordSize = 96

const (
	bits32 = uint64(1) << 32
	bits48 = uint64(1) << 48
)

var (
	ErrFieldTooWide = errors.New("auction field exceeds packed width")
	ErrZeroPeriod   = errors.New("period duration must be non-zero")
	ErrBadWindow    = errors.New("end timestamp before the last period boundary")
)

// Vector is the unpacked form of one Dutch auction configuration and its
// running sale state.
type Vector struct {
	StartTimestamp uint64 `json:"startTimestamp"` //48 bits packed
	EndTimestamp   uint64 `json:"endTimestamp"`   //48 bits packed, zero keeps the final price open ended
	PeriodDuration uint32 `json:"periodDuration"`
	MaxUserClaimableViaVector  uint32 `json:"maxUserClaimableViaVector"`
	MaxTotalClaimableViaVector uint64 `json:"maxTotalClaimableViaVector"` //48 bits packed, zero is unlimited
	CurrentSupply              uint64 `json:"currentSupply"`              //48 bits packed
	LowestPriceSoldAtIndex uint32        `json:"lowestPriceSoldAtIndex"`
	TokenLimitPerTx        uint32        `json:"tokenLimitPerTx"` //zero is unlimited
	NumPrices              uint32        `json:"numPrices"`
	PaymentRecipient       types.Address `json:"paymentRecipient"`
	TotalSales             *big.Int      `json:"totalSales"` //128 bits packed
	BytesPerPrice          uint8         `json:"bytesPerPrice"`
	AuctionExhausted             bool `json:"auctionExhausted"`
	PayeeRevenueHasBeenWithdrawn bool `json:"payeeRevenueHasBeenWithdrawn"`
}

func (v *Vector) sales() *big.Int {
	if v.TotalSales == nil {
		return new(big.Int)
	}
	return v.TotalSales
}

// Pack composes the fixed-width record. Single source of truth for the
// layout together with Unpack.
func Pack(v *Vector) ([]byte, error) {
	if v.StartTimestamp >= bits48 || v.EndTimestamp >= bits48 ||
		v.MaxTotalClaimableViaVector >= bits48 || v.CurrentSupply >= bits48 {
		return nil, ErrFieldTooWide
	}
	if v.sales().BitLen() > 128 {
		return nil, ErrFieldTooWide
	}

	w0 := new(big.Int).SetUint64(v.StartTimestamp)
	w0.Or(w0, new(big.Int).Lsh(new(big.Int).SetUint64(v.EndTimestamp), 48))
	w0.Or(w0, new(big.Int).Lsh(new(big.Int).SetUint64(uint64(v.PeriodDuration)), 96))
	w0.Or(w0, new(big.Int).Lsh(new(big.Int).SetUint64(uint64(v.MaxUserClaimableViaVector)), 128))
	w0.Or(w0, new(big.Int).Lsh(new(big.Int).SetUint64(v.MaxTotalClaimableViaVector), 160))
	w0.Or(w0, new(big.Int).Lsh(new(big.Int).SetUint64(v.CurrentSupply), 208))

	w1 := new(big.Int).SetUint64(uint64(v.LowestPriceSoldAtIndex))
	w1.Or(w1, new(big.Int).Lsh(new(big.Int).SetUint64(uint64(v.TokenLimitPerTx)), 32))
	w1.Or(w1, new(big.Int).Lsh(new(big.Int).SetUint64(uint64(v.NumPrices)), 64))
	w1.Or(w1, new(big.Int).Lsh(v.PaymentRecipient.Big(), 96))

	w2 := new(big.Int).Set(v.sales())
	w2.Or(w2, new(big.Int).Lsh(new(big.Int).SetUint64(uint64(v.BytesPerPrice)), 128))
	if v.AuctionExhausted {
		w2.Or(w2, new(big.Int).Lsh(big.NewInt(1), 136))
	}
	if v.PayeeRevenueHasBeenWithdrawn {
		w2.Or(w2, new(big.Int).Lsh(big.NewInt(1), 144))
	}

	rec := make([]byte, RecordSize)
	copy(rec[0:32], word(w0))
	copy(rec[32:64], word(w1))
	copy(rec[64:96], word(w2))
	return rec, nil
}

// Unpack decomposes a packed record.
func Unpack(rec []byte) *Vector {
	w0 := new(big.Int).SetBytes(rec[0:32])
	w1 := new(big.Int).SetBytes(rec[32:64])
	w2 := new(big.Int).SetBytes(rec[64:96])

	return &Vector{
		StartTimestamp: field(w0, 0, 48).Uint64(),
		EndTimestamp:   field(w0, 48, 48).Uint64(),
		PeriodDuration: uint32(field(w0, 96, 32).Uint64()),
		MaxUserClaimableViaVector:  uint32(field(w0, 128, 32).Uint64()),
		MaxTotalClaimableViaVector: field(w0, 160, 48).Uint64(),
		CurrentSupply:              field(w0, 208, 48).Uint64(),
		LowestPriceSoldAtIndex: uint32(field(w1, 0, 32).Uint64()),
		TokenLimitPerTx:        uint32(field(w1, 32, 32).Uint64()),
		NumPrices:              uint32(field(w1, 64, 32).Uint64()),
		PaymentRecipient:       types.BytesToAddress(field(w1, 96, 160).Bytes()),
		TotalSales:             field(w2, 0, 128),
		BytesPerPrice:          uint8(field(w2, 128, 8).Uint64()),
		AuctionExhausted:             field(w2, 136, 8).Uint64() != 0,
		PayeeRevenueHasBeenWithdrawn: field(w2, 144, 8).Uint64() != 0,
	}
}

// validate checks a fully updated configuration against its price table.
// A non-zero end must cover the whole dynamic period span so the table
// cannot be cut off before its final price.
func validate(v *Vector, priceTable []byte) error {
	if v.PeriodDuration == 0 {
		return ErrZeroPeriod
	}
	if v.NumPrices == 0 {
		return pricing.ErrEmpty
	}
	if err := pricing.Validate(priceTable, int(v.BytesPerPrice), int(v.NumPrices)); err != nil {
		return err
	}
	span := uint64(v.PeriodDuration) * uint64(v.NumPrices-1)
	if v.EndTimestamp != 0 && v.EndTimestamp < v.StartTimestamp+span {
		return ErrBadWindow
	}
	_, err := Pack(v)
	return err
}

// priceIndex returns the table index active at ts, capped at the last entry.
// The opening price holds through the start instant, then the index steps
// down once into every started period. Callers check the window first.
func priceIndex(v *Vector, ts uint64) int {
	if ts <= v.StartTimestamp {
		return 0
	}
	elapsed := ts - v.StartTimestamp
	idx := (elapsed + uint64(v.PeriodDuration) - 1) / uint64(v.PeriodDuration)
	if idx >= uint64(v.NumPrices) {
		return int(v.NumPrices) - 1
	}
	return int(idx)
}

func word(w *big.Int) []byte {
	b := make([]byte, 32)
	wb := w.Bytes()
	copy(b[32-len(wb):], wb)
	return b
}

func field(w *big.Int, shift, width uint) *big.Int {
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), width), big.NewInt(1))
	return new(big.Int).And(new(big.Int).Rsh(w, shift), mask)
}
