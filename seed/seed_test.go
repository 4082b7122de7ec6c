package seed

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"minter/chain"
	"minter/common/model"
	"minter/common/types"
	"minter/mech"
)

var (
	manager    = types.Address("0x0000000000000000000000000000000000000001")
	platform   = types.Address("0x0000000000000000000000000000000000000002")
	creator    = types.Address("0x00000000000000000000000000000000000000aa")
	payee      = types.Address("0x00000000000000000000000000000000000000ab")
	collection = types.Address("0x00000000000000000000000000000000000000c0")
	burnable   = types.Address("0x00000000000000000000000000000000000000d0")
	minter1    = types.Address("0x00000000000000000000000000000000000000b1")
	minter2    = types.Address("0x00000000000000000000000000000000000000b2")

	vecId = types.Hash("0x3333333333333333333333333333333333333333333333333333333333333333")
)

func mgrCtx(origin types.Address, value int64, ts uint64) model.TxContext {
	return model.TxContext{Sender: manager, Origin: origin, Value: big.NewInt(value), Timestamp: ts}
}

func newMechanic(t *testing.T, v *Vector) (*Mechanic, *chain.Sim, *mech.VectorMetadata) {
	t.Helper()
	sim := chain.NewSim()
	sim.AddCollection(collection, creator, 0)
	sim.Fund(minter1, big.NewInt(10_000))
	sim.Fund(minter2, big.NewInt(10_000))
	m := New(mech.NewClient(manager, platform, sim, nil))
	require.NoError(t, m.CreateVector(mgrCtx(creator, 0, 0), vecId, v))
	md := &mech.VectorMetadata{Mechanic: platform, Collection: collection}
	return m, sim, md
}

func TestOneTokenPerCall(t *testing.T) {
	m, _, md := newMechanic(t, &Vector{PaymentRecipient: payee})
	require.ErrorIs(t, m.NumMint(mgrCtx(minter1, 0, 10), vecId, md, minter1, 2, []byte("s")), ErrOneTokenPerCall)
	require.ErrorIs(t, m.NumMint(mgrCtx(minter1, 0, 10), vecId, md, minter1, 0, []byte("s")), ErrOneTokenPerCall)
	require.NoError(t, m.NumMint(mgrCtx(minter1, 0, 10), vecId, md, minter1, 1, []byte("s")))
}

func TestSeedUniqueness(t *testing.T) {
	m, _, md := newMechanic(t, &Vector{PaymentRecipient: payee, EnforceUniqueSeeds: true})

	require.NoError(t, m.NumMint(mgrCtx(minter1, 0, 10), vecId, md, minter1, 1, []byte("seed-a")))
	require.ErrorIs(t, m.NumMint(mgrCtx(minter2, 0, 20), vecId, md, minter2, 1, []byte("seed-a")), ErrSeedUsed)
	require.NoError(t, m.NumMint(mgrCtx(minter2, 0, 20), vecId, md, minter2, 1, []byte("seed-b")))
	require.Equal(t, uint64(1), m.SeedUses(vecId, []byte("seed-a")))
}

func TestRepeatedSeedsWhenNotEnforced(t *testing.T) {
	m, _, md := newMechanic(t, &Vector{PaymentRecipient: payee})
	require.NoError(t, m.NumMint(mgrCtx(minter1, 0, 10), vecId, md, minter1, 1, []byte("seed-a")))
	require.NoError(t, m.NumMint(mgrCtx(minter2, 0, 20), vecId, md, minter2, 1, []byte("seed-a")))
	require.Equal(t, uint64(2), m.SeedUses(vecId, []byte("seed-a")))
}

func TestWindowCapsAndPrice(t *testing.T) {
	v := &Vector{
		PaymentRecipient: payee, StartTimestamp: 100, EndTimestamp: 1000,
		Price: big.NewInt(25), MaxTotalClaimableViaVector: 2, MaxUserClaimableViaVector: 1,
	}
	m, sim, md := newMechanic(t, v)

	require.ErrorIs(t, m.NumMint(mgrCtx(minter1, 25, 50), vecId, md, minter1, 1, nil), ErrSaleNotOpen)
	require.ErrorIs(t, m.NumMint(mgrCtx(minter1, 25, 1001), vecId, md, minter1, 1, nil), ErrSaleEnded)
	require.ErrorIs(t, m.NumMint(mgrCtx(minter1, 24, 200), vecId, md, minter1, 1, nil), ErrPaymentMismatch)
	require.ErrorIs(t, m.NumMint(mgrCtx(minter1, 26, 200), vecId, md, minter1, 1, nil), ErrPaymentMismatch)

	require.NoError(t, m.NumMint(mgrCtx(minter1, 25, 200), vecId, md, minter1, 1, nil))
	require.Equal(t, int64(25), sim.BalanceOf(payee).Int64())
	require.ErrorIs(t, m.NumMint(mgrCtx(minter1, 25, 210), vecId, md, minter1, 1, nil), ErrUserCapExceeded)

	require.NoError(t, m.NumMint(mgrCtx(minter2, 25, 220), vecId, md, minter2, 1, nil))
	require.ErrorIs(t, m.NumMint(mgrCtx(creator, 25, 230), vecId, md, creator, 1, nil), ErrTotalCapExceeded)
}

func TestBurnAndRedeem(t *testing.T) {
	sim := chain.NewSim()
	sim.AddCollection(collection, creator, 0)
	b := sim.AddBurnable(burnable)
	b.Mint(minter1, 7, 3)

	m := New(mech.NewClient(manager, platform, sim, nil))
	v := &Vector{PaymentRecipient: payee, BurnContract: burnable, BurnTokenId: 7, BurnAmount: 3}
	require.NoError(t, m.CreateVector(mgrCtx(creator, 0, 0), vecId, v))
	md := &mech.VectorMetadata{Mechanic: platform, Collection: collection}

	require.NoError(t, m.NumMint(mgrCtx(minter1, 0, 10), vecId, md, minter1, 1, []byte("x")))
	require.Zero(t, b.BalanceOf(minter1, 7))

	// nothing left to burn for a second redemption
	require.Error(t, m.NumMint(mgrCtx(minter1, 0, 20), vecId, md, minter1, 1, []byte("y")))
}

func TestBurnConfigValidation(t *testing.T) {
	sim := chain.NewSim()
	m := New(mech.NewClient(manager, platform, sim, nil))
	v := &Vector{PaymentRecipient: payee, BurnContract: burnable}
	require.ErrorIs(t, m.CreateVector(mgrCtx(creator, 0, 0), vecId, v), ErrBadBurnConfig)
}

func TestNoBurnWhenContractUnset(t *testing.T) {
	// both the empty string and the hex sentinel mean "no burn"
	for _, bc := range []types.Address{"", types.ZeroAddress} {
		sim := chain.NewSim()
		sim.AddCollection(collection, creator, 0)
		m := New(mech.NewClient(manager, platform, sim, nil))
		v := &Vector{PaymentRecipient: payee, BurnContract: bc}
		require.NoError(t, m.CreateVector(mgrCtx(creator, 0, 0), vecId, v))
		md := &mech.VectorMetadata{Mechanic: platform, Collection: collection}
		require.NoError(t, m.NumMint(mgrCtx(minter1, 0, 10), vecId, md, minter1, 1, []byte("s")))
	}
}

func TestOnlyManager(t *testing.T) {
	m, _, md := newMechanic(t, &Vector{PaymentRecipient: payee})
	ctx := model.TxContext{Sender: minter1, Origin: minter1, Value: new(big.Int), Timestamp: 10}
	require.ErrorIs(t, m.NumMint(ctx, vecId, md, minter1, 1, nil), mech.ErrNotMintManager)
	require.ErrorIs(t, m.ChooseMint(mgrCtx(minter1, 0, 10), vecId, md, minter1, []uint64{1}, nil), mech.ErrWrongMintPath)
}
