package vector

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"minter/common/types"
)

func TestPackRoundTrip(t *testing.T) {
	require := require.New(t)

	price, ok := new(big.Int).SetString("250000000000000000", 10)
	require.True(ok)
	in := &Vector{
		Collection:       types.Address("0x00000000000000000000000000000000000000c1"),
		PaymentRecipient: types.Address("0x00000000000000000000000000000000000000f1"),
		Currency:         types.Address("0x00000000000000000000000000000000000000e1"),
		StartTimestamp:   1700000000,
		EndTimestamp:     1700086400,
		MaxTotalClaimableViaVector: 500,
		TotalClaimed:               17,
		MaxUserClaimableViaVector:  5,
		TokenLimitPerTx:            3,
		PricePerToken:    price,
		EditionId:        2,
		EditionBased:     true,
		RequireDirectEOA: true,
		FrozenMask:       FieldPrice | FreezeDelete,
		AllowlistRoot:    types.BytesToHash([]byte{0xaa, 0xbb}),
	}

	rec, err := Pack(in)
	require.NoError(err)
	require.Len(rec, RecordSize)

	out := Unpack(rec)
	require.Equal(in.Collection, out.Collection)
	require.Equal(in.PaymentRecipient, out.PaymentRecipient)
	require.Equal(in.Currency, out.Currency)
	require.Equal(in.StartTimestamp, out.StartTimestamp)
	require.Equal(in.EndTimestamp, out.EndTimestamp)
	require.Equal(in.MaxTotalClaimableViaVector, out.MaxTotalClaimableViaVector)
	require.Equal(in.TotalClaimed, out.TotalClaimed)
	require.Equal(in.MaxUserClaimableViaVector, out.MaxUserClaimableViaVector)
	require.Equal(in.TokenLimitPerTx, out.TokenLimitPerTx)
	require.Zero(in.PricePerToken.Cmp(out.PricePerToken))
	require.Equal(in.EditionId, out.EditionId)
	require.Equal(in.EditionBased, out.EditionBased)
	require.Equal(in.RequireDirectEOA, out.RequireDirectEOA)
	require.Equal(in.FrozenMask, out.FrozenMask)
	require.Equal(in.AllowlistRoot, out.AllowlistRoot)
}

func TestPackZeroVector(t *testing.T) {
	rec, err := Pack(&Vector{})
	require.NoError(t, err)
	out := Unpack(rec)
	require.Equal(t, types.ZeroAddress, out.Collection)
	require.Zero(t, out.StartTimestamp)
	require.Zero(t, out.PricePerToken.Sign())
}

func TestPackWidthLimits(t *testing.T) {
	_, err := Pack(&Vector{StartTimestamp: 1 << 48})
	require.ErrorIs(t, err, ErrFieldTooWide)

	_, err = Pack(&Vector{TotalClaimed: 1 << 24})
	require.ErrorIs(t, err, ErrFieldTooWide)

	wide := new(big.Int).Lsh(big.NewInt(1), 192)
	_, err = Pack(&Vector{PricePerToken: wide})
	require.ErrorIs(t, err, ErrFieldTooWide)
}

func TestValidateWindow(t *testing.T) {
	require.ErrorIs(t, validate(&Vector{StartTimestamp: 100, EndTimestamp: 99}), ErrBadWindow)
	require.NoError(t, validate(&Vector{StartTimestamp: 100, EndTimestamp: 0}))
	require.ErrorIs(t, validate(&Vector{MaxTotalClaimableViaVector: 2, TotalClaimed: 3}), ErrCapBelowClaimed)
}
