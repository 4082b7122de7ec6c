package ranked

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
	"minter/mech"
)

const signerKeyHex = "864b5cd0869d4a8c0e432a2d8d05d2f95fbe6572104228d16aeaa85b2a3edc8c"

var (
	manager    = types.Address("0x0000000000000000000000000000000000000001")
	platform   = types.Address("0x0000000000000000000000000000000000000002")
	escrow     = types.Address("0x0000000000000000000000000000000000000004")
	creator    = types.Address("0x00000000000000000000000000000000000000aa")
	payee      = types.Address("0x00000000000000000000000000000000000000ab")
	collection = types.Address("0x00000000000000000000000000000000000000c0")
	bidder1    = types.Address("0x00000000000000000000000000000000000000b1")
	bidder2    = types.Address("0x00000000000000000000000000000000000000b2")

	vecId = types.Hash("0x2222222222222222222222222222222222222222222222222222222222222222")

	testDomain = Domain{
		Name:              "RankedAuctionMechanic",
		Version:           "1.0.0",
		ChainId:           84532,
		VerifyingContract: types.Address("0x00000000000000000000000000000000000f00d2"),
		Salt:              types.BytesToHash(utils.Keccak256([]byte("ranked-auction"))),
	}
)

func mgrCtx(origin types.Address, value int64, ts uint64) model.TxContext {
	return model.TxContext{Sender: manager, Origin: origin, Value: big.NewInt(value), Timestamp: ts}
}

func userCtx(sender types.Address, value int64, ts uint64) model.TxContext {
	return model.TxContext{Sender: sender, Origin: sender, Value: big.NewInt(value), Timestamp: ts}
}

func signDigest(t *testing.T, digest []byte, key *secp256k1.PrivateKey) string {
	t.Helper()
	sig, err := utils.Sign(digest, key)
	require.NoError(t, err)
	return "0x" + hex.EncodeToString(sig)
}

func newAuction(t *testing.T, v *Vector) (*Mechanic, *chain.Sim, *mech.VectorMetadata, *secp256k1.PrivateKey) {
	t.Helper()
	key, err := utils.HexToECDSA(signerKeyHex)
	require.NoError(t, err)
	signer := utils.PubkeyToAddress(key.PubKey())

	sim := chain.NewSim()
	sim.AddCollection(collection, creator, 0)
	sim.Fund(bidder1, big.NewInt(1_000_000))
	sim.Fund(bidder2, big.NewInt(1_000_000))
	m := New(escrow, mech.NewClient(manager, platform, sim, nil), testDomain, signer)
	require.NoError(t, m.CreateVector(mgrCtx(creator, 0, 0), vecId, v))
	md := &mech.VectorMetadata{Mechanic: escrow, Collection: collection}
	return m, sim, md, key
}

func baseVector() *Vector {
	return &Vector{
		PaymentRecipient: payee,
		StartTimestamp:   100,
		EndTimestamp:     1000,
		ReserveBid:       big.NewInt(50),
	}
}

func TestCreateValidation(t *testing.T) {
	sim := chain.NewSim()
	m := New(escrow, mech.NewClient(manager, platform, sim, nil), testDomain, platform)
	ctx := mgrCtx(creator, 0, 0)

	v := baseVector()
	v.EndTimestamp = v.StartTimestamp
	require.ErrorIs(t, m.CreateVector(ctx, vecId, v), ErrBadWindow)

	v = baseVector()
	v.MaxEndTimestamp = 500
	require.ErrorIs(t, m.CreateVector(ctx, vecId, v), ErrBadWindow)

	v = baseVector()
	v.Currency = types.Address("0x00000000000000000000000000000000000000e1")
	require.ErrorIs(t, m.CreateVector(ctx, vecId, v), ErrNonNativeCurrency)

	require.ErrorIs(t, m.CreateVector(userCtx(creator, 0, 0), vecId, baseVector()), mech.ErrNotMintManager)
}

func TestBidCountCaps(t *testing.T) {
	v := baseVector()
	v.MaxTotalClaimableViaVector = 3
	v.MaxUserClaimableViaVector = 2
	m, _, _, _ := newAuction(t, v)

	_, err := m.EnterBid(userCtx(bidder1, 100, 200), vecId, bidder1)
	require.NoError(t, err)
	_, err = m.EnterBid(userCtx(bidder1, 100, 210), vecId, bidder1)
	require.NoError(t, err)
	_, err = m.EnterBid(userCtx(bidder1, 100, 220), vecId, bidder1)
	require.ErrorIs(t, err, ErrUserCapExceeded)

	_, err = m.EnterBid(userCtx(bidder2, 100, 230), vecId, bidder2)
	require.NoError(t, err)
	_, err = m.EnterBid(userCtx(bidder2, 100, 240), vecId, bidder2)
	require.ErrorIs(t, err, ErrTotalCapExceeded)
}

func TestActionIdAdvancesOnMutation(t *testing.T) {
	m, _, _, _ := newAuction(t, baseVector())

	bidId, err := m.EnterBid(userCtx(bidder1, 100, 200), vecId, bidder1)
	require.NoError(t, err)
	v, err := m.Get(vecId)
	require.NoError(t, err)
	require.EqualValues(t, 1, v.ActionId)

	require.NoError(t, m.UpdateBid(userCtx(bidder1, 50, 210), vecId, bidId, big.NewInt(150)))
	v, err = m.Get(vecId)
	require.NoError(t, err)
	require.EqualValues(t, 2, v.ActionId)
}

func TestBidGuards(t *testing.T) {
	m, _, _, _ := newAuction(t, baseVector())

	_, err := m.EnterBid(userCtx(bidder1, 100, 50), vecId, bidder1)
	require.ErrorIs(t, err, ErrAuctionNotOpen)
	_, err = m.EnterBid(userCtx(bidder1, 100, 1001), vecId, bidder1)
	require.ErrorIs(t, err, ErrAuctionClosed)
	_, err = m.EnterBid(userCtx(bidder1, 49, 200), vecId, bidder1)
	require.ErrorIs(t, err, ErrBidBelowReserve)

	bidId, err := m.EnterBid(userCtx(bidder1, 100, 200), vecId, bidder1)
	require.NoError(t, err)
	require.Equal(t, uint64(1), bidId)
}

func TestBidEscrowAndChain(t *testing.T) {
	m, sim, _, _ := newAuction(t, baseVector())

	id1, err := m.EnterBid(userCtx(bidder1, 100, 200), vecId, bidder1)
	require.NoError(t, err)
	id2, err := m.EnterBid(userCtx(bidder2, 200, 210), vecId, bidder2)
	require.NoError(t, err)
	require.Equal(t, int64(300), sim.BalanceOf(escrow).Int64())

	want := chainHash(types.ZeroHash, vecId, id1, big.NewInt(100))
	want = chainHash(want, vecId, id2, big.NewInt(200))
	v, err := m.Get(vecId)
	require.NoError(t, err)
	require.Equal(t, want, v.ValidityHash)
	require.Equal(t, []uint64{1}, m.UserBidIds(vecId, bidder1))

	// raising a bid tops up exactly the difference and extends the chain
	require.ErrorIs(t, m.UpdateBid(userCtx(bidder2, 50, 220), vecId, id1, big.NewInt(150)), ErrNotBidder)
	require.ErrorIs(t, m.UpdateBid(userCtx(bidder1, 0, 220), vecId, id1, big.NewInt(100)), ErrBidTooLow)
	require.ErrorIs(t, m.UpdateBid(userCtx(bidder1, 49, 220), vecId, id1, big.NewInt(150)), ErrPaymentMismatch)
	require.NoError(t, m.UpdateBid(userCtx(bidder1, 50, 220), vecId, id1, big.NewInt(150)))
	require.Equal(t, int64(350), sim.BalanceOf(escrow).Int64())

	want = chainHash(want, vecId, id1, big.NewInt(150))
	v, err = m.Get(vecId)
	require.NoError(t, err)
	require.Equal(t, want, v.ValidityHash)
}

func TestAntiSnipeExtension(t *testing.T) {
	m, _, _, _ := newAuction(t, baseVector())

	_, err := m.EnterBid(userCtx(bidder1, 100, 999), vecId, bidder1)
	require.NoError(t, err)
	v, err := m.Get(vecId)
	require.NoError(t, err)
	require.GreaterOrEqual(t, v.EndTimestamp, uint64(1000+299))
	require.Equal(t, uint64(999+300), v.EndTimestamp)

	// each late mutation pushes the end out again
	require.NoError(t, m.UpdateBid(userCtx(bidder1, 100, 1200), vecId, 1, big.NewInt(200)))
	v, err = m.Get(vecId)
	require.NoError(t, err)
	require.Equal(t, uint64(1500), v.EndTimestamp)
}

func TestAntiSnipeCappedByMaxEnd(t *testing.T) {
	vec := baseVector()
	vec.MaxEndTimestamp = 1100
	m, _, _, _ := newAuction(t, vec)

	_, err := m.EnterBid(userCtx(bidder1, 100, 999), vecId, bidder1)
	require.NoError(t, err)
	v, err := m.Get(vecId)
	require.NoError(t, err)
	require.Equal(t, uint64(1100), v.EndTimestamp)
}

func TestMintPathEntersBid(t *testing.T) {
	m, sim, md, _ := newAuction(t, baseVector())
	require.NoError(t, m.NumMint(mgrCtx(bidder1, 100, 200), vecId, md, bidder1, 1, nil))
	require.Equal(t, int64(100), sim.BalanceOf(escrow).Int64())

	b, err := m.BidInfo(vecId, 1)
	require.NoError(t, err)
	require.Equal(t, bidder1, b.Bidder)

	require.ErrorIs(t, m.ChooseMint(mgrCtx(bidder1, 0, 200), vecId, md, bidder1, []uint64{1}, nil), mech.ErrWrongMintPath)
}

func TestReclaimBid(t *testing.T) {
	m, sim, _, key := newAuction(t, baseVector())
	_, err := m.EnterBid(userCtx(bidder1, 100, 200), vecId, bidder1)
	require.NoError(t, err)

	claim := &ReclaimBidClaim{VectorId: vecId, BidId: 1, Bidder: bidder1, Amount: big.NewInt(100), ClaimExpiryTimestamp: 5000}
	sig := signDigest(t, claim.Digest(testDomain), key)

	// settlement only opens once bidding closed
	require.ErrorIs(t, m.ReclaimBid(userCtx(bidder1, 0, 500), claim, sig), ErrAuctionStillOpen)

	require.NoError(t, m.ReclaimBid(userCtx(bidder1, 0, 1500), claim, sig))
	require.Equal(t, int64(1_000_000), sim.BalanceOf(bidder1).Int64())
	require.Zero(t, sim.BalanceOf(escrow).Sign())

	require.ErrorIs(t, m.ReclaimBid(userCtx(bidder1, 0, 1600), claim, sig), ErrClaimUsed)

	expired := &ReclaimBidClaim{VectorId: vecId, BidId: 1, Bidder: bidder1, Amount: big.NewInt(1), ClaimExpiryTimestamp: 1400}
	require.ErrorIs(t, m.ReclaimBid(userCtx(bidder1, 0, 1500), expired, signDigest(t, expired.Digest(testDomain), key)), ErrClaimExpired)
}

func TestReclaimRejectsForgedSignature(t *testing.T) {
	m, _, _, _ := newAuction(t, baseVector())
	_, err := m.EnterBid(userCtx(bidder1, 100, 200), vecId, bidder1)
	require.NoError(t, err)

	strangerKey, err := utils.HexToECDSA("7bbfec284ee43e328438d46ec803863c8e1367ab46072f7864c07e0a03ba61fd")
	require.NoError(t, err)
	claim := &ReclaimBidClaim{VectorId: vecId, BidId: 1, Bidder: bidder1, Amount: big.NewInt(100)}
	sig := signDigest(t, claim.Digest(testDomain), strangerKey)
	require.ErrorIs(t, m.ReclaimBid(userCtx(bidder1, 0, 1500), claim, sig), ErrInvalidSignature)
}

func TestWithdrawEarningsOnceWithSplit(t *testing.T) {
	m, sim, _, key := newAuction(t, baseVector())
	_, err := m.EnterBid(userCtx(bidder1, 1000, 200), vecId, bidder1)
	require.NoError(t, err)

	claim := &EarningsClaim{VectorId: vecId, Amount: big.NewInt(1000)}
	sig := signDigest(t, claim.Digest(testDomain), key)
	require.NoError(t, m.WithdrawAuctionEarnings(userCtx(payee, 0, 1500), claim, sig))
	require.Equal(t, int64(950), sim.BalanceOf(payee).Int64())
	require.Equal(t, int64(50), sim.BalanceOf(platform).Int64())

	require.ErrorIs(t, m.WithdrawAuctionEarnings(userCtx(payee, 0, 1600), claim, sig), ErrClaimUsed)

	second := &EarningsClaim{VectorId: vecId, Amount: big.NewInt(1)}
	require.ErrorIs(t, m.WithdrawAuctionEarnings(userCtx(payee, 0, 1600), second,
		signDigest(t, second.Digest(testDomain), key)), ErrEarningsWithdrawn)
}

func TestMintWithRebate(t *testing.T) {
	m, sim, md, key := newAuction(t, baseVector())
	_, err := m.EnterBid(userCtx(bidder1, 500, 200), vecId, bidder1)
	require.NoError(t, err)

	claim := &MintWithRebateClaim{
		VectorId: vecId, BidId: 1, Bidder: bidder1,
		MintAmount: 2, ClearingCharge: big.NewInt(300),
	}
	sig := signDigest(t, claim.Digest(testDomain), key)
	require.NoError(t, m.MintWithRebate(userCtx(bidder1, 0, 1500), md, claim, sig))

	// 200 refunded, 300 left escrowed for the earnings claim
	require.Equal(t, int64(1_000_000-300), sim.BalanceOf(bidder1).Int64())
	require.Equal(t, int64(300), sim.BalanceOf(escrow).Int64())

	coll, err := sim.Collection(collection)
	require.NoError(t, err)
	supply, err := coll.Supply()
	require.NoError(t, err)
	require.Equal(t, uint64(2), supply)

	// the winning bid is closed to further settlement
	reclaim := &ReclaimBidClaim{VectorId: vecId, BidId: 1, Bidder: bidder1, Amount: big.NewInt(300)}
	require.ErrorIs(t, m.ReclaimBid(userCtx(bidder1, 0, 1600), reclaim,
		signDigest(t, reclaim.Digest(testDomain), key)), ErrBidSettled)
}
