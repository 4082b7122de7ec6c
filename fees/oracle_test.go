package fees

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"minter/chain"
	"minter/common/model"
	"minter/common/types"
)

var (
	minter    = types.Address("0x00000000000000000000000000000000000000a1")
	referrer  = types.Address("0x00000000000000000000000000000000000000a2")
	creator   = types.Address("0x00000000000000000000000000000000000000a3")
	mechanic  = types.Address("0x00000000000000000000000000000000000000d1")
	gasless   = types.Address("0x00000000000000000000000000000000000000d2")
	payout    = types.Address("0x00000000000000000000000000000000000000f1")
	collector = types.Address("0x00000000000000000000000000000000000000f2")
	payer     = types.Address("0x00000000000000000000000000000000000000f3")
	currency  = types.Address("0x00000000000000000000000000000000000000e1")
	pool      = types.Address("0x00000000000000000000000000000000000000e2")
)

func newOracle(t *testing.T) (*Oracle, *chain.Sim, *Registry) {
	t.Helper()
	sim := chain.NewSim()
	reg := NewRegistry()
	o := NewOracle(sim, Config{
		NativeMintFee:  big.NewInt(1000),
		PlatformPayout: payout,
		FeeCollector:   collector,
		Waived:         []types.Address{mechanic},
		Gasless:        gasless,
	}, reg)
	return o, sim, reg
}

func TestNativeFee(t *testing.T) {
	require := require.New(t)
	o, _, _ := newOracle(t)

	fee, err := o.GetClassicVectorMintFee("1", 3, minter, types.ZeroAddress)
	require.NoError(err)
	require.EqualValues(3000, fee.Int64())
}

func TestWaivedMechanics(t *testing.T) {
	require := require.New(t)
	o, _, _ := newOracle(t)

	for _, m := range []types.Address{mechanic, gasless} {
		fee, err := o.GetClassicVectorMintFee("1", 5, m, types.ZeroAddress)
		require.NoError(err)
		require.Zero(fee.Sign())
	}
	require.True(o.IsWaived(mechanic))
	require.False(o.IsWaived(minter))
}

func TestSubsidizedPair(t *testing.T) {
	require := require.New(t)
	o, _, _ := newOracle(t)

	o.Subsidize("7", minter)

	fee, err := o.GetClassicVectorMintFee("7", 1, minter, types.ZeroAddress)
	require.NoError(err)
	require.Zero(fee.Sign())

	// any other pair on the same vector still pays
	fee, err = o.GetClassicVectorMintFee("7", 1, referrer, types.ZeroAddress)
	require.NoError(err)
	require.EqualValues(1000, fee.Int64())

	// same minter on another vector still pays
	fee, err = o.GetClassicVectorMintFee("8", 1, minter, types.ZeroAddress)
	require.NoError(err)
	require.EqualValues(1000, fee.Int64())
}

func TestFlatERC20Fee(t *testing.T) {
	require := require.New(t)
	o, _, _ := newOracle(t)

	_, err := o.GetClassicVectorMintFee("1", 1, minter, currency)
	require.ErrorIs(err, ErrCurrencyNotAllowed)

	o.SetERC20Fee(currency, big.NewInt(250))
	fee, err := o.GetClassicVectorMintFee("1", 4, minter, currency)
	require.NoError(err)
	require.EqualValues(1000, fee.Int64())
}

func TestRealTimeERC20Fee(t *testing.T) {
	require := require.New(t)
	o, sim, _ := newOracle(t)

	// sqrt price of 2^96 means a 1:1 pool, so the converted fee is the
	// native fee with the 1.2x buffer
	sim.AddPool(pool, new(big.Int).Lsh(big.NewInt(1), 96))
	o.SetCurrencyPool(currency, pool)

	fee, err := o.GetClassicVectorMintFee("1", 1, minter, currency)
	require.NoError(err)
	require.EqualValues(1200, fee.Int64())
}

func TestProcessNativeWithSplits(t *testing.T) {
	require := require.New(t)
	o, sim, reg := newOracle(t)
	sim.Fund(payer, big.NewInt(1000))
	reg.SetReferrer(minter, referrer)

	ctx := model.TxContext{Sender: minter, Origin: minter, Timestamp: 1}
	s, err := o.ProcessClassicVectorMintFeeCap(ctx, "1", types.ZeroAddress, payer, creator, big.NewInt(1000), true)
	require.NoError(err)

	require.EqualValues(100, s.ReferralPaid.Int64())
	require.Equal(referrer, s.Referrer)
	require.EqualValues(500, s.CreatorReward.Int64())
	require.EqualValues(100, sim.BalanceOf(referrer).Int64())
	require.EqualValues(500, sim.BalanceOf(creator).Int64())
	require.EqualValues(400, sim.BalanceOf(collector).Int64())
}

func TestProcessNoReferrerWhenSelf(t *testing.T) {
	require := require.New(t)
	o, sim, reg := newOracle(t)
	sim.Fund(payer, big.NewInt(1000))
	// self referrals pay nothing
	reg.SetReferrer(minter, minter)

	ctx := model.TxContext{Sender: minter, Origin: minter, Timestamp: 1}
	s, err := o.ProcessClassicVectorMintFeeCap(ctx, "1", types.ZeroAddress, payer, creator, big.NewInt(1000), false)
	require.NoError(err)
	require.Zero(s.ReferralPaid.Sign())
	require.Zero(s.CreatorReward.Sign())
	require.EqualValues(1000, sim.BalanceOf(collector).Int64())
}

func TestProcessERC20FromOrigin(t *testing.T) {
	require := require.New(t)
	o, sim, _ := newOracle(t)
	e := sim.AddERC20(currency)
	e.Mint(minter, big.NewInt(500))
	e.Approve(minter, payer, big.NewInt(500))

	// sender is a relayer, the fee is still pulled from origin
	ctx := model.TxContext{Sender: referrer, Origin: minter, Timestamp: 1}
	_, err := o.ProcessClassicVectorMintFeeCap(ctx, "1", currency, payer, creator, big.NewInt(500), false)
	require.NoError(err)
	b, _ := e.BalanceOf(collector)
	require.EqualValues(500, b.Int64())
	b, _ = e.BalanceOf(minter)
	require.Zero(b.Int64())
}

func TestWithdrawFees(t *testing.T) {
	require := require.New(t)
	o, sim, _ := newOracle(t)
	sim.Fund(collector, big.NewInt(900))

	require.NoError(o.WithdrawFees(types.ZeroAddress, big.NewInt(900)))
	require.EqualValues(900, sim.BalanceOf(payout).Int64())
	require.ErrorIs(o.WithdrawFees(types.ZeroAddress, big.NewInt(1)), chain.ErrInsufficientFunds)
}
