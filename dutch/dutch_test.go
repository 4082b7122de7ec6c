package dutch

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
	escrow     = types.Address("0x0000000000000000000000000000000000000003")
	creator    = types.Address("0x00000000000000000000000000000000000000aa")
	payee      = types.Address("0x00000000000000000000000000000000000000ab")
	collection = types.Address("0x00000000000000000000000000000000000000c0")
	buyer1     = types.Address("0x00000000000000000000000000000000000000b1")
	buyer2     = types.Address("0x00000000000000000000000000000000000000b2")

	vecId = types.Hash("0x1111111111111111111111111111111111111111111111111111111111111111")
)

func mgrCtx(origin types.Address, value int64, ts uint64) model.TxContext {
	return model.TxContext{Sender: manager, Origin: origin, Value: big.NewInt(value), Timestamp: ts}
}

func userCtx(sender types.Address, ts uint64) model.TxContext {
	return model.TxContext{Sender: sender, Origin: sender, Timestamp: ts}
}

func prices(ps ...int64) []*big.Int {
	out := make([]*big.Int, len(ps))
	for i, p := range ps {
		out[i] = big.NewInt(p)
	}
	return out
}

func newAuction(t *testing.T, v *Vector, ps []*big.Int) (*Mechanic, *chain.Sim, *mech.VectorMetadata) {
	t.Helper()
	sim := chain.NewSim()
	sim.AddCollection(collection, creator, 0)
	sim.Fund(buyer1, big.NewInt(1_000_000))
	sim.Fund(buyer2, big.NewInt(1_000_000))
	m := New(escrow, mech.NewClient(manager, platform, sim, nil))
	require.NoError(t, m.CreateVector(mgrCtx(creator, 0, 0), vecId, v, ps))
	md := &mech.VectorMetadata{Mechanic: escrow, Collection: collection}
	return m, sim, md
}

func TestPackRoundtrip(t *testing.T) {
	v := &Vector{
		StartTimestamp: 1000, EndTimestamp: 90000, PeriodDuration: 60,
		MaxUserClaimableViaVector: 7, MaxTotalClaimableViaVector: 500, CurrentSupply: 13,
		LowestPriceSoldAtIndex: 4, TokenLimitPerTx: 3, NumPrices: 9,
		PaymentRecipient: payee, TotalSales: big.NewInt(123456789),
		BytesPerPrice: 8, AuctionExhausted: true, PayeeRevenueHasBeenWithdrawn: true,
	}
	rec, err := Pack(v)
	require.NoError(t, err)
	require.Len(t, rec, RecordSize)
	got := Unpack(rec)
	require.Equal(t, v, got)
}

func TestCreateValidation(t *testing.T) {
	sim := chain.NewSim()
	sim.AddCollection(collection, creator, 0)
	m := New(escrow, mech.NewClient(manager, platform, sim, nil))
	ctx := mgrCtx(creator, 0, 0)

	base := Vector{PaymentRecipient: payee, BytesPerPrice: 2, PeriodDuration: 100}

	v := base
	v.PeriodDuration = 0
	require.ErrorIs(t, m.CreateVector(ctx, vecId, &v, prices(100, 50)), ErrZeroPeriod)

	v = base
	require.Error(t, m.CreateVector(ctx, vecId, &v, prices(100, 100, 50)))

	// end must cover the full dynamic span
	v = base
	v.EndTimestamp = 150
	require.ErrorIs(t, m.CreateVector(ctx, vecId, &v, prices(100, 50, 10)), ErrBadWindow)

	v = base
	v.EndTimestamp = 200
	require.NoError(t, m.CreateVector(ctx, vecId, &v, prices(100, 50, 10)))
}

func TestOnlyManagerMintPath(t *testing.T) {
	m, _, md := newAuction(t, &Vector{PaymentRecipient: payee, PeriodDuration: 100, BytesPerPrice: 2}, prices(100, 50, 10))
	ctx := model.TxContext{Sender: buyer1, Origin: buyer1, Value: big.NewInt(100), Timestamp: 0}
	require.ErrorIs(t, m.NumMint(ctx, vecId, md, buyer1, 1, nil), mech.ErrNotMintManager)
}

func TestPriceDecayMonotonic(t *testing.T) {
	m, _, _ := newAuction(t, &Vector{PaymentRecipient: payee, PeriodDuration: 100, BytesPerPrice: 2}, prices(500, 300, 200, 50))
	last := big.NewInt(1 << 30)
	for ts := uint64(0); ts <= 600; ts += 30 {
		st, err := m.GetVectorState(vecId, ts)
		require.NoError(t, err)
		require.LessOrEqual(t, st.CurrentPrice.Cmp(last), 0, "price rose at ts=%d", ts)
		last = st.CurrentPrice
	}
	st, err := m.GetVectorState(vecId, 600)
	require.NoError(t, err)
	require.True(t, st.InFPP)
	require.Equal(t, int64(50), st.CurrentPrice.Int64())
}

func TestDecayAndRebate(t *testing.T) {
	m, sim, md := newAuction(t, &Vector{PaymentRecipient: payee, PeriodDuration: 100, BytesPerPrice: 2}, prices(100, 50, 10))

	// opening price
	st, err := m.GetVectorState(vecId, 0)
	require.NoError(t, err)
	require.Equal(t, int64(100), st.CurrentPrice.Int64())
	require.NoError(t, m.NumMint(mgrCtx(buyer1, 100, 0), vecId, md, buyer1, 1, nil))

	// one and a half periods in, the table bottomed out
	st, err = m.GetVectorState(vecId, 150)
	require.NoError(t, err)
	require.Equal(t, int64(10), st.CurrentPrice.Int64())
	require.NoError(t, m.NumMint(mgrCtx(buyer2, 10, 150), vecId, md, buyer2, 1, nil))

	require.Equal(t, int64(110), sim.BalanceOf(escrow).Int64())

	payout, err := m.Rebate(userCtx(buyer1, 160), vecId, buyer1)
	require.NoError(t, err)
	require.Equal(t, int64(90), payout.Int64())
	require.Equal(t, int64(1_000_000-100+90), sim.BalanceOf(buyer1).Int64())

	// nothing more to claim without a new purchase
	payout, err = m.Rebate(userCtx(buyer1, 170), vecId, buyer1)
	require.NoError(t, err)
	require.Zero(t, payout.Sign())
	require.Equal(t, int64(1_000_000-100+90), sim.BalanceOf(buyer1).Int64())
}

func TestMintGuards(t *testing.T) {
	v := &Vector{
		PaymentRecipient: payee, StartTimestamp: 100, EndTimestamp: 1000,
		PeriodDuration: 100, BytesPerPrice: 2,
		MaxTotalClaimableViaVector: 3, MaxUserClaimableViaVector: 2, TokenLimitPerTx: 2,
	}
	m, _, md := newAuction(t, v, prices(100, 50, 10))

	require.ErrorIs(t, m.NumMint(mgrCtx(buyer1, 100, 50), vecId, md, buyer1, 1, nil), ErrSaleNotOpen)
	require.ErrorIs(t, m.NumMint(mgrCtx(buyer1, 100, 1001), vecId, md, buyer1, 1, nil), ErrSaleEnded)
	require.ErrorIs(t, m.NumMint(mgrCtx(buyer1, 100, 100), vecId, md, buyer1, 0, nil), ErrZeroAmount)
	require.ErrorIs(t, m.NumMint(mgrCtx(buyer1, 300, 100), vecId, md, buyer1, 3, nil), ErrTokenLimitPerTx)
	require.ErrorIs(t, m.NumMint(mgrCtx(buyer1, 100, 100), vecId, md, buyer1, 2, nil), ErrInsufficientPayment)

	require.NoError(t, m.NumMint(mgrCtx(buyer1, 200, 100), vecId, md, buyer1, 2, nil))
	require.ErrorIs(t, m.NumMint(mgrCtx(buyer1, 100, 100), vecId, md, buyer1, 1, nil), ErrUserCapExceeded)
	require.ErrorIs(t, m.NumMint(mgrCtx(buyer2, 200, 100), vecId, md, buyer2, 2, nil), ErrTotalCapExceeded)
}

func TestExhaustionAndWithdraw(t *testing.T) {
	v := &Vector{
		PaymentRecipient: payee, PeriodDuration: 100, BytesPerPrice: 2,
		MaxTotalClaimableViaVector: 2,
	}
	m, sim, md := newAuction(t, v, prices(100, 50, 10))

	require.NoError(t, m.NumMint(mgrCtx(buyer1, 100, 0), vecId, md, buyer1, 1, nil))
	// second period, price 50, cap reached
	require.NoError(t, m.NumMint(mgrCtx(buyer2, 50, 50), vecId, md, buyer2, 1, nil))

	got, err := m.Get(vecId)
	require.NoError(t, err)
	require.True(t, got.AuctionExhausted)
	require.Equal(t, uint32(1), got.LowestPriceSoldAtIndex)
	require.ErrorIs(t, m.NumMint(mgrCtx(buyer1, 100, 60), vecId, md, buyer1, 1, nil), ErrAuctionExhausted)

	// clearing price 50 over two units, split 95/5
	require.ErrorIs(t, func() error {
		_, err := m.WithdrawDPPFunds(userCtx(buyer1, 60), vecId, md)
		return err
	}(), ErrNotPayee)

	amount, err := m.WithdrawDPPFunds(userCtx(payee, 60), vecId, md)
	require.NoError(t, err)
	require.Equal(t, int64(100), amount.Int64())
	require.Equal(t, int64(95), sim.BalanceOf(payee).Int64())
	require.Equal(t, int64(5), sim.BalanceOf(platform).Int64())

	_, err = m.WithdrawDPPFunds(userCtx(payee, 70), vecId, md)
	require.ErrorIs(t, err, ErrFundsAlreadyWithdrawn)

	// buyer1 paid 100 against a 50 clearing price
	payout, err := m.Rebate(userCtx(buyer1, 80), vecId, buyer1)
	require.NoError(t, err)
	require.Equal(t, int64(50), payout.Int64())
	require.Zero(t, sim.BalanceOf(escrow).Sign())
}

func TestWithdrawOnlyAfterDPP(t *testing.T) {
	m, _, md := newAuction(t, &Vector{PaymentRecipient: payee, PeriodDuration: 100, BytesPerPrice: 2}, prices(100, 50, 10))
	require.NoError(t, m.NumMint(mgrCtx(buyer1, 100, 0), vecId, md, buyer1, 1, nil))
	_, err := m.WithdrawDPPFunds(userCtx(payee, 50), vecId, md)
	require.ErrorIs(t, err, ErrAuctionStillDynamic)
}

func TestForwardAfterWithdraw(t *testing.T) {
	m, sim, md := newAuction(t, &Vector{PaymentRecipient: payee, PeriodDuration: 100, BytesPerPrice: 2}, prices(100, 50, 10))

	require.NoError(t, m.NumMint(mgrCtx(buyer1, 100, 0), vecId, md, buyer1, 1, nil))
	_, err := m.WithdrawDPPFunds(userCtx(payee, 200), vecId, md)
	require.NoError(t, err)
	payeeBefore := sim.BalanceOf(payee).Int64()

	// overpaying a post-withdrawal mint escrows only the overage; the
	// platform cut of a 10 wei charge floors to zero
	require.NoError(t, m.NumMint(mgrCtx(buyer2, 25, 250), vecId, md, buyer2, 1, nil))
	require.Equal(t, payeeBefore+10, sim.BalanceOf(payee).Int64())

	payout, err := m.Rebate(userCtx(buyer2, 260), vecId, buyer2)
	require.NoError(t, err)
	require.Equal(t, int64(15), payout.Int64())
}

func TestUpdateRestrictions(t *testing.T) {
	v := &Vector{PaymentRecipient: payee, PeriodDuration: 100, BytesPerPrice: 2}
	m, _, md := newAuction(t, v, prices(100, 50, 10))

	// pre-sale everything is still open
	nv := *v
	nv.PeriodDuration = 60
	nv.StartTimestamp = 500
	require.NoError(t, m.UpdateVector(userCtx(creator, 10), vecId, md, &nv, prices(9, 8, 7)))

	require.NoError(t, m.NumMint(mgrCtx(buyer1, 9, 500), vecId, md, buyer1, 1, nil))

	cur, err := m.Get(vecId)
	require.NoError(t, err)

	locked := *cur
	locked.PeriodDuration = 120
	require.ErrorIs(t, m.UpdateVector(userCtx(creator, 600), vecId, md, &locked, nil), ErrSaleStarted)
	require.ErrorIs(t, m.UpdateVector(userCtx(creator, 600), vecId, md, cur, prices(3, 2, 1)), ErrSaleStarted)

	open := *cur
	open.EndTimestamp = 5000
	open.MaxUserClaimableViaVector = 4
	open.TokenLimitPerTx = 2
	require.NoError(t, m.UpdateVector(userCtx(creator, 600), vecId, md, &open, nil))

	got, err := m.Get(vecId)
	require.NoError(t, err)
	require.Equal(t, uint64(5000), got.EndTimestamp)
	require.Equal(t, uint32(4), got.MaxUserClaimableViaVector)

	require.ErrorIs(t, m.UpdateVector(userCtx(buyer2, 600), vecId, md, &open, nil), ErrNotPayee)
}

func TestCollectionLimitExhausts(t *testing.T) {
	sim := chain.NewSim()
	sim.AddCollection(collection, creator, 2)
	sim.Fund(buyer1, big.NewInt(1000))
	m := New(escrow, mech.NewClient(manager, platform, sim, nil))
	require.NoError(t, m.CreateVector(mgrCtx(creator, 0, 0), vecId,
		&Vector{PaymentRecipient: payee, PeriodDuration: 100, BytesPerPrice: 2}, prices(100, 50, 10)))
	md := &mech.VectorMetadata{Mechanic: escrow, Collection: collection}

	require.NoError(t, m.NumMint(mgrCtx(buyer1, 200, 0), vecId, md, buyer1, 2, nil))
	got, err := m.Get(vecId)
	require.NoError(t, err)
	require.True(t, got.AuctionExhausted)
}
