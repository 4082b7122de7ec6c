package gated

import (
	"encoding/hex"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"
	"minter/common/model"
	"minter/common/types"
	"minter/common/utils"
)

const (
	executorKeyHex = "864b5cd0869d4a8c0e432a2d8d05d2f95fbe6572104228d16aeaa85b2a3edc8c"
	strangerKeyHex = "7bbfec284ee43e328438d46ec803863c8e1367ab46072f7864c07e0a03ba61fd"
)

var (
	claimer   = types.Address("0x00000000000000000000000000000000000000a1")
	other     = types.Address("0x00000000000000000000000000000000000000a2")
	coll      = types.Address("0x00000000000000000000000000000000000000c1")
	vectorId  = types.BytesToHash([]byte("vector-1"))
	testDomain = Domain{
		Name:              "MintManager",
		Version:           "1.0.0",
		ChainId:           84532,
		VerifyingContract: types.Address("0x00000000000000000000000000000000000f00d1"),
	}
)

func signerOf(t *testing.T, hexKey string) (*secp256k1.PrivateKey, types.Address) {
	t.Helper()
	key, err := utils.HexToECDSA(hexKey)
	require.NoError(t, err)
	return key, utils.PubkeyToAddress(key.PubKey())
}

func signClaim(t *testing.T, c *Claim, key *secp256k1.PrivateKey) string {
	t.Helper()
	sig, err := utils.Sign(c.Digest(testDomain), key)
	require.NoError(t, err)
	return "0x" + hex.EncodeToString(sig)
}

func signSeries(t *testing.T, c *SeriesClaim, key *secp256k1.PrivateKey) string {
	t.Helper()
	sig, err := utils.Sign(c.Digest(testDomain), key)
	require.NoError(t, err)
	return "0x" + hex.EncodeToString(sig)
}

func newEngine(t *testing.T) (*Engine, *secp256k1.PrivateKey) {
	t.Helper()
	key, executor := signerOf(t, executorKeyHex)
	return NewEngine(testDomain, []types.Address{executor}), key
}

func baseClaim(nonce string) *Claim {
	return &Claim{
		ContractAddress:       coll,
		Claimer:               claimer,
		PaymentRecipient:      other,
		NumTokensToMint:       1,
		MaxClaimableViaVector: 1,
		OffchainVectorId:      vectorId,
		ClaimNonce:            types.BytesToHash([]byte(nonce)),
		ClaimExpiryTimestamp:  2000,
	}
}

func ctxAt(at uint64) model.TxContext {
	return model.TxContext{Sender: claimer, Origin: claimer, Timestamp: at}
}

func ok(*Claim) error { return nil }

func TestMintAndReplay(t *testing.T) {
	require := require.New(t)
	e, key := newEngine(t)

	c := baseClaim("n1")
	sig := signClaim(t, c, key)

	require.NoError(e.Mint(ctxAt(1000), c, sig, claimer, ok))
	require.EqualValues(1, e.VectorClaimed(vectorId))
	require.EqualValues(1, e.UserClaimed(vectorId, claimer))
	require.True(e.NonceUsed(vectorId, c.ClaimNonce))

	// same (vector, nonce) pair must fail regardless of other field changes
	require.ErrorIs(e.Mint(ctxAt(1000), c, sig, claimer, ok), ErrNonceUsed)
}

func TestCumulativeVectorCap(t *testing.T) {
	require := require.New(t)
	e, key := newEngine(t)

	c1 := baseClaim("n1")
	require.NoError(e.Mint(ctxAt(1000), c1, signClaim(t, c1, key), claimer, ok))

	// fresh nonce, same vector: cumulative total would exceed the cap of one
	c2 := baseClaim("n2")
	require.ErrorIs(e.Mint(ctxAt(1000), c2, signClaim(t, c2, key), claimer, ok), ErrVectorCapExceeded)
}

func TestUserCap(t *testing.T) {
	require := require.New(t)
	e, key := newEngine(t)

	c := baseClaim("n1")
	c.MaxClaimableViaVector = 0
	c.MaxClaimablePerUser = 2
	c.NumTokensToMint = 2
	require.NoError(e.Mint(ctxAt(1000), c, signClaim(t, c, key), claimer, ok))

	c2 := baseClaim("n2")
	c2.MaxClaimableViaVector = 0
	c2.MaxClaimablePerUser = 2
	require.ErrorIs(e.Mint(ctxAt(1000), c2, signClaim(t, c2, key), claimer, ok), ErrUserCapExceeded)
}

func TestExpiry(t *testing.T) {
	e, key := newEngine(t)
	c := baseClaim("n1")
	sig := signClaim(t, c, key)
	require.ErrorIs(t, e.Mint(ctxAt(2001), c, sig, claimer, ok), ErrClaimExpired)
	require.NoError(t, e.Mint(ctxAt(2000), c, sig, claimer, ok))
}

func TestSignerMustBeExecutor(t *testing.T) {
	e, _ := newEngine(t)
	strangerKey, _ := signerOf(t, strangerKeyHex)
	c := baseClaim("n1")
	require.ErrorIs(t, e.Mint(ctxAt(1000), c, signClaim(t, c, strangerKey), claimer, ok), ErrNotExecutor)
}

func TestTamperedClaim(t *testing.T) {
	e, key := newEngine(t)
	c := baseClaim("n1")
	sig := signClaim(t, c, key)
	c.NumTokensToMint = 10
	err := e.Mint(ctxAt(1000), c, sig, claimer, ok)
	// the recovered signer of a tampered digest is effectively random
	require.Error(t, err)
	require.Zero(t, e.VectorClaimed(vectorId))
}

func TestThirdPartySubmission(t *testing.T) {
	require := require.New(t)
	e, key := newEngine(t)
	thirdParty := model.TxContext{Sender: other, Origin: other, Timestamp: 1000}

	// a third party cannot redirect the voucher to itself
	c := baseClaim("n1")
	require.ErrorIs(e.Mint(thirdParty, c, signClaim(t, c, key), other, ok), ErrRecipientMismatch)

	// but may relay it to the claimer
	require.NoError(e.Mint(thirdParty, c, signClaim(t, c, key), claimer, ok))
}

func TestFailedSettleLeavesNonceUnused(t *testing.T) {
	require := require.New(t)
	e, key := newEngine(t)
	c := baseClaim("n1")
	sig := signClaim(t, c, key)

	require.Error(e.Mint(ctxAt(1000), c, sig, claimer, func(*Claim) error { return ErrZeroTokens }))
	require.False(e.NonceUsed(vectorId, c.ClaimNonce))
	require.Zero(e.VectorClaimed(vectorId))

	require.NoError(e.Mint(ctxAt(1000), c, sig, claimer, ok))
}

func TestSeriesClaim(t *testing.T) {
	require := require.New(t)
	e, key := newEngine(t)

	c := &SeriesClaim{
		ContractAddress:      coll,
		Claimer:              claimer,
		PaymentRecipient:     other,
		MaxPerTxn:            2,
		OffchainVectorId:     vectorId,
		ClaimNonce:           types.BytesToHash([]byte("s1")),
		ClaimExpiryTimestamp: 2000,
	}
	sig := signSeries(t, c, key)

	okSeries := func(*SeriesClaim) error { return nil }
	require.ErrorIs(e.MintSeries(ctxAt(1000), c, sig, claimer, []uint64{1, 2, 3}, okSeries), ErrMaxPerTxnExceeded)
	require.ErrorIs(e.MintSeries(ctxAt(1000), c, sig, claimer, nil, okSeries), ErrZeroTokens)

	require.NoError(e.MintSeries(ctxAt(1000), c, sig, claimer, []uint64{4, 9}, okSeries))
	require.EqualValues(2, e.VectorClaimed(vectorId))
	require.ErrorIs(e.MintSeries(ctxAt(1000), c, sig, claimer, []uint64{5}, okSeries), ErrNonceUsed)
}

func TestExecutorRotation(t *testing.T) {
	require := require.New(t)
	e, key := newEngine(t)
	_, executor := signerOf(t, executorKeyHex)

	e.RemoveExecutor(executor)
	c := baseClaim("n1")
	require.ErrorIs(e.Mint(ctxAt(1000), c, signClaim(t, c, key), claimer, ok), ErrNotExecutor)

	e.AddExecutor(executor)
	require.NoError(e.Mint(ctxAt(1000), c, signClaim(t, c, key), claimer, ok))
	require.True(e.IsExecutor(executor))
}
