package manager

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"

	"minter/chain"
	"minter/common/model"
	"minter/common/types"
	"minter/common/utils"
	"minter/dutch"
	"minter/gated"
	"minter/mech"
	"minter/ranked"
	"minter/seed"
	"minter/vector"
)

const executorKeyHex = "864b5cd0869d4a8c0e432a2d8d05d2f95fbe6572104228d16aeaa85b2a3edc8c"

var (
	mgrAddr      = types.Address("0x0000000000000000000000000000000000000001")
	platformAddr = types.Address("0x0000000000000000000000000000000000000002")
	dutchAddr    = types.Address("0x0000000000000000000000000000000000000003")
	rankedAddr   = types.Address("0x0000000000000000000000000000000000000004")
	seedAddr     = types.Address("0x0000000000000000000000000000000000000005")
	creator      = types.Address("0x00000000000000000000000000000000000000aa")
	payee        = types.Address("0x00000000000000000000000000000000000000ab")
	referrer     = types.Address("0x00000000000000000000000000000000000000ad")
	collection   = types.Address("0x00000000000000000000000000000000000000c0")
	buyer1       = types.Address("0x00000000000000000000000000000000000000b1")
	buyer2       = types.Address("0x00000000000000000000000000000000000000b2")
	buyer3       = types.Address("0x00000000000000000000000000000000000000b3")
)

const funded = 1_000_000

func userCtx(sender types.Address, value int64, ts uint64) model.TxContext {
	return model.TxContext{Sender: sender, Origin: sender, Value: big.NewInt(value), Timestamp: ts}
}

func signDigest(t *testing.T, digest []byte, key *secp256k1.PrivateKey) string {
	t.Helper()
	sig, err := utils.Sign(digest, key)
	require.NoError(t, err)
	return "0x" + hex.EncodeToString(sig)
}

func newEnv(t *testing.T, mintFee int64) (*Manager, *chain.Sim, *secp256k1.PrivateKey) {
	t.Helper()
	key, err := utils.HexToECDSA(executorKeyHex)
	require.NoError(t, err)
	signer := utils.PubkeyToAddress(key.PubKey())

	sim := chain.NewSim()
	sim.AddCollection(collection, creator, 0)
	for _, a := range []types.Address{buyer1, buyer2, buyer3} {
		sim.Fund(a, big.NewInt(funded))
	}

	m := New(Config{
		Addr:           mgrAddr,
		Platform:       platformAddr,
		Signer:         signer,
		ChainId:        84532,
		DutchMechanic:  dutchAddr,
		RankedMechanic: rankedAddr,
		SeedMechanic:   seedAddr,
		NativeMintFee:  big.NewInt(mintFee),
		Backend:        sim,
	})
	return m, sim, key
}

func balance(t *testing.T, sim *chain.Sim, a types.Address) int64 {
	t.Helper()
	return sim.BalanceOf(a).Int64()
}

func supply(t *testing.T, sim *chain.Sim) uint64 {
	t.Helper()
	coll, err := sim.Collection(collection)
	require.NoError(t, err)
	n, err := coll.Supply()
	require.NoError(t, err)
	return n
}

func TestVectorCapAccounting(t *testing.T) {
	m, sim, _ := newEnv(t, 1)
	require := require.New(t)

	id, err := m.CreateVector(userCtx(creator, 0, 0), &vector.Vector{
		Collection: collection, PaymentRecipient: payee,
		MaxTotalClaimableViaVector: 10, MaxUserClaimableViaVector: 5,
		PricePerToken: big.NewInt(2),
	})
	require.NoError(err)

	//5 tokens at 2 plus 5 fee units
	require.NoError(m.MintVector(userCtx(buyer1, 15, 100), id, buyer1, 5))
	require.EqualValues(5, m.VectorUserClaimed(id, buyer1))
	require.EqualValues(5, supply(t, sim))
	require.EqualValues(10, balance(t, sim, payee))
	require.EqualValues(5, balance(t, sim, mgrAddr))
	require.EqualValues(funded-15, balance(t, sim, buyer1))

	err = m.MintVector(userCtx(buyer1, 3, 101), id, buyer1, 1)
	require.ErrorIs(err, vector.ErrUserCapExceeded)

	require.NoError(m.MintVector(userCtx(buyer2, 15, 102), id, buyer2, 5))
	require.EqualValues(10, supply(t, sim))

	err = m.MintVector(userCtx(buyer3, 3, 103), id, buyer3, 1)
	require.ErrorIs(err, vector.ErrTotalCapExceeded)
	require.EqualValues(10, supply(t, sim))
}

func TestVectorPaymentMismatchRollsBack(t *testing.T) {
	m, sim, _ := newEnv(t, 1)
	require := require.New(t)

	id, err := m.CreateVector(userCtx(creator, 0, 0), &vector.Vector{
		Collection: collection, PaymentRecipient: payee, PricePerToken: big.NewInt(2),
	})
	require.NoError(err)

	//exact value is 2 plus 1, anything else fails whole
	err = m.MintVector(userCtx(buyer1, 2, 100), id, buyer1, 1)
	require.ErrorIs(err, ErrPaymentMismatch)
	err = m.MintVector(userCtx(buyer1, 4, 100), id, buyer1, 1)
	require.ErrorIs(err, ErrPaymentMismatch)

	require.EqualValues(0, m.VectorUserClaimed(id, buyer1))
	require.EqualValues(0, supply(t, sim))
	require.EqualValues(funded, balance(t, sim, buyer1))
	require.EqualValues(0, balance(t, sim, payee))
}

func TestERC20VectorSale(t *testing.T) {
	m, sim, _ := newEnv(t, 1)
	require := require.New(t)

	token := types.Address("0x00000000000000000000000000000000000000e1")
	tok := sim.AddERC20(token)
	tok.Mint(buyer1, big.NewInt(1000))
	tok.Approve(buyer1, buyer1, big.NewInt(1000))

	require.NoError(m.SetERC20Fee(userCtx(platformAddr, 0, 0), token, big.NewInt(3)))

	id, err := m.CreateVector(userCtx(creator, 0, 0), &vector.Vector{
		Collection: collection, PaymentRecipient: payee, Currency: token,
		PricePerToken: big.NewInt(5),
	})
	require.NoError(err)

	//attached native value must stay zero on an ERC-20 sale
	err = m.MintVector(userCtx(buyer1, 1, 100), id, buyer1, 2)
	require.ErrorIs(err, ErrPaymentMismatch)

	require.NoError(m.MintVector(userCtx(buyer1, 0, 100), id, buyer1, 2))
	require.EqualValues(2, supply(t, sim))

	bal := func(a types.Address) int64 {
		b, err := tok.BalanceOf(a)
		require.NoError(err)
		return b.Int64()
	}
	require.EqualValues(10, bal(payee))
	require.EqualValues(6, bal(mgrAddr))
	require.EqualValues(984, bal(buyer1))
	require.EqualValues(funded, balance(t, sim, buyer1))
}

func TestReferralAndCreatorRewardSplits(t *testing.T) {
	m, sim, _ := newEnv(t, 10)
	require := require.New(t)

	id, err := m.CreateVector(userCtx(creator, 0, 0), &vector.Vector{
		Collection: collection, PaymentRecipient: payee,
	})
	require.NoError(err)
	require.NoError(m.SetVectorMetadata(userCtx(creator, 0, 0), id, false, big.NewInt(1)))

	m.SetReferrer(userCtx(buyer1, 0, 0), referrer)
	require.Equal(referrer, m.Referrer(buyer1))

	//fee 20, referral 2, creator reward 10, collector keeps 8
	require.NoError(m.MintVector(userCtx(buyer1, 20, 100), id, buyer1, 2))
	require.EqualValues(2, balance(t, sim, referrer))
	require.EqualValues(10, balance(t, sim, payee))
	require.EqualValues(8, balance(t, sim, mgrAddr))
}

func gatedClaim(nonce string, n, maxUser uint64) *gated.Claim {
	return &gated.Claim{
		ContractAddress: collection, Claimer: buyer1, PaymentRecipient: payee,
		NumTokensToMint: n, MaxClaimablePerUser: maxUser,
		OffchainVectorId:     types.Hash("0xaaaa000000000000000000000000000000000000000000000000000000000001"),
		ClaimNonce:           types.Hash(nonce),
		ClaimExpiryTimestamp: 5000,
	}
}

func TestGatedReplayAndCumulativeCap(t *testing.T) {
	m, sim, key := newEnv(t, 1)
	require := require.New(t)
	d := m.GatedDomain()

	c := gatedClaim("0xbbbb000000000000000000000000000000000000000000000000000000000001", 2, 3)
	sig := signDigest(t, c.Digest(d), key)
	require.NoError(m.GatedMint(userCtx(buyer1, 2, 100), c, sig, buyer1))
	require.EqualValues(2, supply(t, sim))
	require.EqualValues(2, m.GatedUserClaimed(c.OffchainVectorId, buyer1))
	require.True(m.NonceUsed(c.OffchainVectorId, c.ClaimNonce))

	//same claim again fails on the consumed nonce
	err := m.GatedMint(userCtx(buyer1, 2, 101), c, sig, buyer1)
	require.ErrorIs(err, gated.ErrNonceUsed)

	//fresh nonce still runs into the cumulative per user cap
	c2 := gatedClaim("0xbbbb000000000000000000000000000000000000000000000000000000000002", 2, 3)
	err = m.GatedMint(userCtx(buyer1, 2, 102), c2, signDigest(t, c2.Digest(d), key), buyer1)
	require.ErrorIs(err, gated.ErrUserCapExceeded)
	require.EqualValues(2, supply(t, sim))
}

func TestGatedSettleFailureLeavesNoTrace(t *testing.T) {
	m, sim, key := newEnv(t, 1)
	require := require.New(t)

	c := gatedClaim("0xbbbb000000000000000000000000000000000000000000000000000000000003", 1, 0)
	sig := signDigest(t, c.Digest(m.GatedDomain()), key)

	err := m.GatedMint(userCtx(buyer1, 0, 100), c, sig, buyer1)
	require.ErrorIs(err, ErrPaymentMismatch)
	require.False(m.NonceUsed(c.OffchainVectorId, c.ClaimNonce))
	require.EqualValues(0, supply(t, sim))
	require.EqualValues(funded, balance(t, sim, buyer1))
}

func TestDutchDecayAndRebateViaManager(t *testing.T) {
	m, sim, _ := newEnv(t, 0)
	require := require.New(t)

	id, err := m.RegisterDutchVector(userCtx(creator, 0, 0),
		&mech.VectorMetadata{Collection: collection}, []byte("dutch-1"),
		&dutch.Vector{
			PaymentRecipient: payee, StartTimestamp: 100,
			PeriodDuration: 100, BytesPerPrice: 2,
		},
		[]*big.Int{big.NewInt(100), big.NewInt(50), big.NewInt(10)})
	require.NoError(err)

	md, err := m.GetMechanicVector(id)
	require.NoError(err)
	require.Equal(dutchAddr, md.Mechanic)

	require.NoError(m.MechanicMintNum(userCtx(buyer1, 100, 100), id, buyer1, 1, nil))

	st, err := m.DutchState(id, 250)
	require.NoError(err)
	require.EqualValues(10, st.CurrentPrice.Int64())
	require.True(st.InFPP)

	require.NoError(m.MechanicMintNum(userCtx(buyer2, 10, 250), id, buyer2, 1, nil))
	require.EqualValues(2, supply(t, sim))

	payout, err := m.DutchRebate(userCtx(buyer1, 0, 250), id, buyer1)
	require.NoError(err)
	require.EqualValues(90, payout.Int64())
	require.EqualValues(funded-10, balance(t, sim, buyer1))

	//nothing further owed
	payout, err = m.DutchRebate(userCtx(buyer1, 0, 251), id, buyer1)
	require.NoError(err)
	require.EqualValues(0, payout.Int64())
}

func TestDutchWithdrawViaManager(t *testing.T) {
	m, sim, _ := newEnv(t, 0)
	require := require.New(t)

	id, err := m.RegisterDutchVector(userCtx(creator, 0, 0),
		&mech.VectorMetadata{Collection: collection}, []byte("dutch-2"),
		&dutch.Vector{
			PaymentRecipient: payee, StartTimestamp: 100,
			PeriodDuration: 100, BytesPerPrice: 2,
		},
		[]*big.Int{big.NewInt(100), big.NewInt(50), big.NewInt(10)})
	require.NoError(err)

	require.NoError(m.MechanicMintNum(userCtx(buyer1, 10, 300), id, buyer1, 1, nil))

	amount, err := m.DutchWithdrawFunds(userCtx(payee, 0, 301), id)
	require.NoError(err)
	require.EqualValues(10, amount.Int64())
	require.EqualValues(10, balance(t, sim, payee))

	_, err = m.DutchWithdrawFunds(userCtx(payee, 0, 302), id)
	require.ErrorIs(err, dutch.ErrFundsAlreadyWithdrawn)
}

func TestSeedMintViaManager(t *testing.T) {
	m, sim, _ := newEnv(t, 0)
	require := require.New(t)

	id, err := m.RegisterSeedVector(userCtx(creator, 0, 0),
		&mech.VectorMetadata{Collection: collection}, []byte("seed-reg"),
		&seed.Vector{
			PaymentRecipient: payee, Price: big.NewInt(5), EnforceUniqueSeeds: true,
		})
	require.NoError(err)

	data := []byte("unique-seed-1")
	require.NoError(m.MechanicMintNum(userCtx(buyer1, 5, 100), id, buyer1, 1, data))
	require.EqualValues(1, m.SeedUses(id, data))
	require.EqualValues(5, balance(t, sim, payee))

	err = m.MechanicMintNum(userCtx(buyer2, 5, 101), id, buyer2, 1, data)
	require.ErrorIs(err, seed.ErrSeedUsed)
	require.EqualValues(1, supply(t, sim))
}

func TestSeedMintPaysMintFee(t *testing.T) {
	m, sim, _ := newEnv(t, 2)
	require := require.New(t)

	id, err := m.RegisterSeedVector(userCtx(creator, 0, 0),
		&mech.VectorMetadata{Collection: collection}, []byte("seed-fee"),
		&seed.Vector{PaymentRecipient: payee, Price: big.NewInt(5)})
	require.NoError(err)

	// attached value covers price plus fee; the fee lands with the collector
	require.NoError(m.MechanicMintNum(userCtx(buyer1, 7, 100), id, buyer1, 1, []byte("s1")))
	require.EqualValues(5, balance(t, sim, payee))
	require.EqualValues(2, balance(t, sim, mgrAddr))
	require.EqualValues(funded-7, balance(t, sim, buyer1))

	// price alone is not enough once the fee is carved out
	err = m.MechanicMintNum(userCtx(buyer2, 5, 101), id, buyer2, 1, []byte("s2"))
	require.ErrorIs(err, seed.ErrPaymentMismatch)
	require.EqualValues(funded, balance(t, sim, buyer2))
	require.EqualValues(2, balance(t, sim, mgrAddr))
}

func TestDutchMintFeeWaived(t *testing.T) {
	m, sim, _ := newEnv(t, 2)
	require := require.New(t)

	id, err := m.RegisterDutchVector(userCtx(creator, 0, 0),
		&mech.VectorMetadata{Collection: collection}, []byte("dutch-fee"),
		&dutch.Vector{
			PaymentRecipient: payee, StartTimestamp: 100,
			PeriodDuration: 100, BytesPerPrice: 2,
		},
		[]*big.Int{big.NewInt(100), big.NewInt(50), big.NewInt(10)})
	require.NoError(err)

	require.NoError(m.MechanicMintNum(userCtx(buyer1, 100, 100), id, buyer1, 1, nil))
	require.Zero(balance(t, sim, mgrAddr))
}

type recordingSink struct {
	model.NopSink
	mints []*model.MintEvent
}

func (s *recordingSink) Mint(e *model.MintEvent) { s.mints = append(s.mints, e) }

func TestRankedBidRecordsNoMintEvent(t *testing.T) {
	require := require.New(t)

	sim := chain.NewSim()
	sim.AddCollection(collection, creator, 0)
	sim.Fund(buyer1, big.NewInt(funded))

	sink := &recordingSink{}
	m := New(Config{
		Addr: mgrAddr, Platform: platformAddr, Signer: platformAddr, ChainId: 84532,
		DutchMechanic: dutchAddr, RankedMechanic: rankedAddr, SeedMechanic: seedAddr,
		NativeMintFee: big.NewInt(0), Backend: sim, Sink: sink,
	})

	id, err := m.RegisterRankedVector(userCtx(creator, 0, 0),
		&mech.VectorMetadata{Collection: collection}, []byte("ranked-sink"),
		&ranked.Vector{
			PaymentRecipient: payee, StartTimestamp: 100, EndTimestamp: 1000,
			ReserveBid: big.NewInt(50),
		})
	require.NoError(err)

	// entering a bid mints nothing, so no mint event either
	require.NoError(m.MechanicMintNum(userCtx(buyer1, 500, 200), id, buyer1, 1, nil))
	require.Empty(sink.mints)

	sid, err := m.RegisterSeedVector(userCtx(creator, 0, 0),
		&mech.VectorMetadata{Collection: collection}, []byte("seed-sink"),
		&seed.Vector{PaymentRecipient: payee, Price: big.NewInt(5)})
	require.NoError(err)

	require.NoError(m.MechanicMintNum(userCtx(buyer1, 5, 201), sid, buyer1, 1, []byte("s1")))
	require.Len(sink.mints, 1)
	require.Equal("mechanic", sink.mints[0].Kind)
	require.Equal(string(sid), sink.mints[0].VectorId)
}

func TestRankedAuctionViaManager(t *testing.T) {
	m, sim, key := newEnv(t, 0)
	require := require.New(t)

	id, err := m.RegisterRankedVector(userCtx(creator, 0, 0),
		&mech.VectorMetadata{Collection: collection}, []byte("ranked-1"),
		&ranked.Vector{
			PaymentRecipient: payee, StartTimestamp: 100, EndTimestamp: 1000,
			ReserveBid: big.NewInt(50),
		})
	require.NoError(err)

	//the number mint path enters a bid instead of minting
	require.NoError(m.MechanicMintNum(userCtx(buyer1, 500, 200), id, buyer1, 1, nil))
	require.EqualValues(0, supply(t, sim))
	require.Equal([]uint64{1}, m.RankedUserBids(id, buyer1))
	require.EqualValues(500, balance(t, sim, rankedAddr))

	c := &ranked.MintWithRebateClaim{
		VectorId: id, BidId: 1, Bidder: buyer1, MintAmount: 1,
		ClearingCharge: big.NewInt(300), ClaimExpiryTimestamp: 5000,
	}
	sig := signDigest(t, c.Digest(m.RankedDomain()), key)
	require.NoError(m.RankedMintWithRebate(userCtx(buyer1, 0, 1100), c, sig))
	require.EqualValues(1, supply(t, sim))
	require.EqualValues(funded-300, balance(t, sim, buyer1))

	//settled bids cannot be reclaimed
	rc := &ranked.ReclaimBidClaim{
		VectorId: id, BidId: 1, Bidder: buyer1,
		Amount: big.NewInt(300), ClaimExpiryTimestamp: 5000,
	}
	err = m.ReclaimRankedBid(userCtx(buyer1, 0, 1101), rc, signDigest(t, rc.Digest(m.RankedDomain()), key))
	require.ErrorIs(err, ranked.ErrBidSettled)

	ec := &ranked.EarningsClaim{VectorId: id, Amount: big.NewInt(300), ClaimExpiryTimestamp: 5000}
	require.NoError(m.WithdrawRankedEarnings(userCtx(payee, 0, 1102), ec, signDigest(t, ec.Digest(m.RankedDomain()), key)))
	require.EqualValues(285, balance(t, sim, payee))
	require.EqualValues(15, balance(t, sim, platformAddr))
}

func TestRankedSettlementBindsClaimVector(t *testing.T) {
	m, sim, key := newEnv(t, 0)
	require := require.New(t)

	other := types.Address("0x00000000000000000000000000000000000000c1")
	sim.AddCollection(other, creator, 0)

	idA, err := m.RegisterRankedVector(userCtx(creator, 0, 0),
		&mech.VectorMetadata{Collection: collection}, []byte("ranked-a"),
		&ranked.Vector{
			PaymentRecipient: payee, StartTimestamp: 100, EndTimestamp: 1000,
			ReserveBid: big.NewInt(50),
		})
	require.NoError(err)
	_, err = m.RegisterRankedVector(userCtx(creator, 0, 0),
		&mech.VectorMetadata{Collection: other}, []byte("ranked-b"),
		&ranked.Vector{
			PaymentRecipient: payee, StartTimestamp: 100, EndTimestamp: 1000,
			ReserveBid: big.NewInt(50),
		})
	require.NoError(err)

	require.NoError(m.MechanicMintNum(userCtx(buyer1, 500, 200), idA, buyer1, 1, nil))

	// the settled mint lands on the collection registered under the
	// claim's vector id, never on a sibling auction's
	c := &ranked.MintWithRebateClaim{
		VectorId: idA, BidId: 1, Bidder: buyer1, MintAmount: 1,
		ClearingCharge: big.NewInt(300), ClaimExpiryTimestamp: 5000,
	}
	require.NoError(m.RankedMintWithRebate(userCtx(buyer1, 0, 1100), c,
		signDigest(t, c.Digest(m.RankedDomain()), key)))

	require.EqualValues(1, supply(t, sim))
	collB, err := sim.Collection(other)
	require.NoError(err)
	n, err := collB.Supply()
	require.NoError(err)
	require.Zero(n)
}

func TestMechanicRegistrationGuards(t *testing.T) {
	m, _, _ := newEnv(t, 0)
	require := require.New(t)

	v := &seed.Vector{PaymentRecipient: payee}
	_, err := m.RegisterSeedVector(userCtx(buyer1, 0, 0),
		&mech.VectorMetadata{Collection: collection}, []byte("s"), v)
	require.ErrorIs(err, mech.ErrUnauthorized)

	id, err := m.RegisterSeedVector(userCtx(creator, 0, 0),
		&mech.VectorMetadata{Collection: collection}, []byte("s"), v)
	require.NoError(err)

	_, err = m.RegisterSeedVector(userCtx(creator, 0, 0),
		&mech.VectorMetadata{Collection: collection}, []byte("s"), v)
	require.ErrorIs(err, mech.ErrVectorExists)

	require.ErrorIs(m.SetMechanicPaused(userCtx(buyer1, 0, 0), id, true), mech.ErrUnauthorized)
	require.NoError(m.SetMechanicPaused(userCtx(creator, 0, 0), id, true))
	err = m.MechanicMintNum(userCtx(buyer1, 0, 100), id, buyer1, 1, []byte("x"))
	require.ErrorIs(err, mech.ErrMechanicPaused)
}

func TestPlatformAdminGuards(t *testing.T) {
	m, sim, _ := newEnv(t, 1)
	require := require.New(t)

	exec := types.Address("0x00000000000000000000000000000000000000e7")
	require.ErrorIs(m.AddExecutor(userCtx(buyer1, 0, 0), exec), ErrNotPlatform)
	require.NoError(m.AddExecutor(userCtx(platformAddr, 0, 0), exec))
	require.True(m.IsExecutor(exec))
	require.NoError(m.RemoveExecutor(userCtx(platformAddr, 0, 0), exec))
	require.False(m.IsExecutor(exec))

	id, err := m.CreateVector(userCtx(creator, 0, 0), &vector.Vector{
		Collection: collection, PaymentRecipient: payee,
	})
	require.NoError(err)

	vid := vectorIdString(id)
	require.ErrorIs(m.Subsidize(userCtx(buyer1, 0, 0), vid, buyer1), ErrNotPlatform)
	require.NoError(m.Subsidize(userCtx(platformAddr, 0, 0), vid, buyer1))
	fee, err := m.QuoteMintFee(vid, 3, buyer1, types.ZeroAddress)
	require.NoError(err)
	require.EqualValues(0, fee.Int64())

	//subsidized minter attaches no fee
	require.NoError(m.MintVector(userCtx(buyer1, 0, 100), id, buyer1, 1))
	require.NoError(m.MintVector(userCtx(buyer2, 1, 100), id, buyer2, 1))
	require.EqualValues(1, balance(t, sim, mgrAddr))

	require.ErrorIs(m.WithdrawFees(userCtx(buyer1, 0, 0), types.ZeroAddress, big.NewInt(1)), ErrNotPlatform)
	require.NoError(m.WithdrawFees(userCtx(platformAddr, 0, 0), types.ZeroAddress, big.NewInt(1)))
	require.EqualValues(0, balance(t, sim, mgrAddr))
	require.EqualValues(1, balance(t, sim, platformAddr))
}
