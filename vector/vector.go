// Package vector implements the abridged on-chain sale vector: a packed
// fixed-width record describing one public sale configuration, with
// atomic claim-and-mint accounting.
package vector

import (
	"errors"
	"math/big"

	"minter/common/types"
)

// Update/freeze field mask bits. Freezing a field permanently rejects any
// update that targets it; the delete and pause bits freeze those operations.
const (
	FieldStart uint16 = 1 << iota
	FieldEnd
	FieldPaymentRecipient
	FieldMaxTotal
	FieldMaxUser
	FieldTokenLimitPerTx
	FieldPrice
	FieldCurrency
	FieldAllowlistRoot
	FieldEditionId
	FieldRequireDirectEOA

	FreezeDelete uint16 = 1 << 14
	FreezePause  uint16 = 1 << 15
)

// record geometry: five 32 byte words
const RecordSize = 160

const (
	flagEditionBased = 1 << 0
	flagDirectEOA    = 1 << 1
)

var (
	ErrFieldTooWide = errors.New("vector field exceeds packed width")
	ErrBadWindow    = errors.New("end timestamp before start timestamp")
	ErrCapBelowClaimed = errors.New("total cap below already claimed count")
)

// Vector is the unpacked form of the abridged sale record.
type Vector struct {
	Collection       types.Address `json:"collection"`
	PaymentRecipient types.Address `json:"paymentRecipient"`
	Currency         types.Address `json:"currency"` //zero address sells for the native currency
	StartTimestamp   uint64        `json:"startTimestamp"` //48 bits packed
	EndTimestamp     uint64        `json:"endTimestamp"`   //48 bits packed, zero is open ended
	MaxTotalClaimableViaVector uint32 `json:"maxTotalClaimableViaVector"` //24 bits packed, zero is unlimited
	TotalClaimed               uint32 `json:"totalClaimed"`               //24 bits packed
	MaxUserClaimableViaVector  uint32 `json:"maxUserClaimableViaVector"`  //24 bits packed, zero is unlimited
	TokenLimitPerTx            uint32 `json:"tokenLimitPerTx"`            //24 bits packed, zero is unlimited
	PricePerToken    *big.Int      `json:"pricePerToken"` //192 bits packed
	EditionId        uint16        `json:"editionId"`
	EditionBased     bool          `json:"editionBased"`
	RequireDirectEOA bool          `json:"requireDirectEOA"`
	FrozenMask       uint16        `json:"frozenMask"`
	AllowlistRoot    types.Hash    `json:"allowlistRoot"`
}

func (v *Vector) price() *big.Int {
	if v.PricePerToken == nil {
		return new(big.Int)
	}
	return v.PricePerToken
}

const (
	bits24 = 1 << 24
	bits48 = uint64(1) << 48
)

// Pack composes the fixed-width record. It is the single source of truth for
// the layout together with Unpack.
func Pack(v *Vector) ([]byte, error) {
	if v.StartTimestamp >= bits48 || v.EndTimestamp >= bits48 {
		return nil, ErrFieldTooWide
	}
	if v.MaxTotalClaimableViaVector >= bits24 || v.TotalClaimed >= bits24 ||
		v.MaxUserClaimableViaVector >= bits24 || v.TokenLimitPerTx >= bits24 {
		return nil, ErrFieldTooWide
	}
	if v.price().BitLen() > 192 {
		return nil, ErrFieldTooWide
	}

	w0 := v.Collection.Big()
	w0.Or(w0, new(big.Int).Lsh(new(big.Int).SetUint64(v.StartTimestamp), 160))
	w0.Or(w0, new(big.Int).Lsh(new(big.Int).SetUint64(v.EndTimestamp), 208))

	w1 := v.PaymentRecipient.Big()
	w1.Or(w1, new(big.Int).Lsh(big.NewInt(int64(v.MaxTotalClaimableViaVector)), 160))
	w1.Or(w1, new(big.Int).Lsh(big.NewInt(int64(v.TotalClaimed)), 184))
	w1.Or(w1, new(big.Int).Lsh(big.NewInt(int64(v.MaxUserClaimableViaVector)), 208))
	w1.Or(w1, new(big.Int).Lsh(big.NewInt(int64(v.TokenLimitPerTx)), 232))

	flags := int64(0)
	if v.EditionBased {
		flags |= flagEditionBased
	}
	if v.RequireDirectEOA {
		flags |= flagDirectEOA
	}
	w2 := v.Currency.Big()
	w2.Or(w2, new(big.Int).Lsh(big.NewInt(int64(v.EditionId)), 160))
	w2.Or(w2, new(big.Int).Lsh(big.NewInt(flags), 176))
	w2.Or(w2, new(big.Int).Lsh(big.NewInt(int64(v.FrozenMask)), 184))

	rec := make([]byte, RecordSize)
	copy(rec[0:32], word(w0))
	copy(rec[32:64], word(w1))
	copy(rec[64:96], word(w2))
	copy(rec[96:128], word(v.price()))
	copy(rec[128:160], v.AllowlistRoot.Bytes())
	return rec, nil
}

// Unpack decomposes a packed record.
func Unpack(rec []byte) *Vector {
	w0 := new(big.Int).SetBytes(rec[0:32])
	w1 := new(big.Int).SetBytes(rec[32:64])
	w2 := new(big.Int).SetBytes(rec[64:96])

	v := &Vector{
		Collection:       types.BytesToAddress(field(w0, 0, 160).Bytes()),
		StartTimestamp:   field(w0, 160, 48).Uint64(),
		EndTimestamp:     field(w0, 208, 48).Uint64(),
		PaymentRecipient: types.BytesToAddress(field(w1, 0, 160).Bytes()),
		MaxTotalClaimableViaVector: uint32(field(w1, 160, 24).Uint64()),
		TotalClaimed:               uint32(field(w1, 184, 24).Uint64()),
		MaxUserClaimableViaVector:  uint32(field(w1, 208, 24).Uint64()),
		TokenLimitPerTx:            uint32(field(w1, 232, 24).Uint64()),
		Currency:         types.BytesToAddress(field(w2, 0, 160).Bytes()),
		EditionId:        uint16(field(w2, 160, 16).Uint64()),
		FrozenMask:       uint16(field(w2, 184, 16).Uint64()),
		PricePerToken:    new(big.Int).SetBytes(rec[96:128]),
		AllowlistRoot:    types.BytesToHash(rec[128:160]),
	}
	flags := field(w2, 176, 8).Uint64()
	v.EditionBased = flags&flagEditionBased != 0
	v.RequireDirectEOA = flags&flagDirectEOA != 0
	return v
}

// validate checks the window and cap consistency of a fully updated vector.
func validate(v *Vector) error {
	if v.EndTimestamp != 0 && v.EndTimestamp < v.StartTimestamp {
		return ErrBadWindow
	}
	if v.MaxTotalClaimableViaVector != 0 && v.TotalClaimed > v.MaxTotalClaimableViaVector {
		return ErrCapBelowClaimed
	}
	_, err := Pack(v)
	return err
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
