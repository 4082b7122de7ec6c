package gated

import (
	"errors"

	"minter/common/model"
	"minter/common/types"
	"minter/common/utils"
)

var (
	ErrInvalidSignature   = errors.New("claim signature is invalid")
	ErrNotExecutor        = errors.New("claim signer is not a platform executor")
	ErrClaimExpired       = errors.New("claim has expired")
	ErrNonceUsed          = errors.New("claim nonce already consumed")
	ErrVectorCapExceeded  = errors.New("claim exceeds vector claimable cap")
	ErrUserCapExceeded    = errors.New("claim exceeds per user claimable cap")
	ErrRecipientMismatch  = errors.New("recipient must be the claimer when submitted by a third party")
	ErrZeroTokens         = errors.New("claim must mint at least one token")
	ErrMaxPerTxnExceeded  = errors.New("chosen token count exceeds the per transaction cap")
)

type nonceKey struct {
	vectorId types.Hash
	nonce    types.Hash
}

type userKey struct {
	vectorId types.Hash
	user     types.Address
}

// Engine verifies signed claims and tracks nonce consumption and running cap
// totals per off-chain vector.
type Engine struct {
	domain    Domain
	executors map[types.Address]bool

	usedNonces    map[nonceKey]bool
	vectorClaimed map[types.Hash]uint64
	userClaimed   map[userKey]uint64
}

func NewEngine(domain Domain, executors []types.Address) *Engine {
	e := &Engine{
		domain:        domain,
		executors:     map[types.Address]bool{},
		usedNonces:    map[nonceKey]bool{},
		vectorClaimed: map[types.Hash]uint64{},
		userClaimed:   map[userKey]uint64{},
	}
	for _, x := range executors {
		e.executors[x] = true
	}
	return e
}

// Domain returns the EIP-712 domain claims must be signed under.
func (e *Engine) Domain() Domain { return e.domain }

// AddExecutor registers a platform executor address.
func (e *Engine) AddExecutor(executor types.Address) {
	e.executors[executor] = true
}

// RemoveExecutor deregisters a platform executor address.
func (e *Engine) RemoveExecutor(executor types.Address) {
	delete(e.executors, executor)
}

// IsExecutor reports whether the address may sign claims.
func (e *Engine) IsExecutor(executor types.Address) bool {
	return e.executors[executor]
}

// NonceUsed reports whether the (vector, nonce) pair was consumed.
func (e *Engine) NonceUsed(vectorId, nonce types.Hash) bool {
	return e.usedNonces[nonceKey{vectorId, nonce}]
}

// VectorClaimed reports the running total for an off-chain vector.
func (e *Engine) VectorClaimed(vectorId types.Hash) uint64 {
	return e.vectorClaimed[vectorId]
}

// UserClaimed reports the running per-user total for an off-chain vector.
func (e *Engine) UserClaimed(vectorId types.Hash, user types.Address) uint64 {
	return e.userClaimed[userKey{vectorId, user}]
}

func (e *Engine) recoverExecutor(digest []byte, hexSig string) error {
	sig, err := utils.HexToSig(hexSig)
	if err != nil {
		return ErrInvalidSignature
	}
	signer, err := utils.Ecrecover(digest, sig)
	if err != nil {
		return ErrInvalidSignature
	}
	if !e.executors[signer] {
		return ErrNotExecutor
	}
	return nil
}

func (e *Engine) verifyCommon(ctx model.TxContext, claimer, recipient types.Address,
	vectorId, nonce types.Hash, expiry, amount uint64,
	maxVector, maxUser uint64) error {

	if claimer != ctx.Sender && recipient != claimer {
		return ErrRecipientMismatch
	}
	if ctx.Timestamp > expiry {
		return ErrClaimExpired
	}
	if e.usedNonces[nonceKey{vectorId, nonce}] {
		return ErrNonceUsed
	}
	if maxVector != 0 && e.vectorClaimed[vectorId]+amount > maxVector {
		return ErrVectorCapExceeded
	}
	if maxUser != 0 && e.userClaimed[userKey{vectorId, claimer}]+amount > maxUser {
		return ErrUserCapExceeded
	}
	return nil
}

// consume marks the nonce used and bumps the running totals.
func (e *Engine) consume(claimer types.Address, vectorId, nonce types.Hash, amount uint64) {
	e.usedNonces[nonceKey{vectorId, nonce}] = true
	e.vectorClaimed[vectorId] += amount
	e.userClaimed[userKey{vectorId, claimer}] += amount
}

// Mint verifies the claim and signature, consumes the nonce and lets settle
// perform payment and the collection mint. Nonce and totals are only
// committed when settle succeeds.
func (e *Engine) Mint(ctx model.TxContext, c *Claim, hexSig string, recipient types.Address,
	settle func(*Claim) error) error {

	if c.NumTokensToMint == 0 {
		return ErrZeroTokens
	}
	if err := e.recoverExecutor(c.Digest(e.domain), hexSig); err != nil {
		return err
	}
	if err := e.verifyCommon(ctx, c.Claimer, recipient, c.OffchainVectorId, c.ClaimNonce,
		c.ClaimExpiryTimestamp, c.NumTokensToMint,
		c.MaxClaimableViaVector, c.MaxClaimablePerUser); err != nil {
		return err
	}
	if err := settle(c); err != nil {
		return err
	}
	e.consume(c.Claimer, c.OffchainVectorId, c.ClaimNonce, c.NumTokensToMint)
	return nil
}

// MintSeries verifies a choose-token claim for the given token ids.
func (e *Engine) MintSeries(ctx model.TxContext, c *SeriesClaim, hexSig string, recipient types.Address,
	tokenIds []uint64, settle func(*SeriesClaim) error) error {

	amount := uint64(len(tokenIds))
	if amount == 0 {
		return ErrZeroTokens
	}
	if c.MaxPerTxn != 0 && amount > c.MaxPerTxn {
		return ErrMaxPerTxnExceeded
	}
	if err := e.recoverExecutor(c.Digest(e.domain), hexSig); err != nil {
		return err
	}
	if err := e.verifyCommon(ctx, c.Claimer, recipient, c.OffchainVectorId, c.ClaimNonce,
		c.ClaimExpiryTimestamp, amount,
		c.MaxClaimableViaVector, c.MaxClaimablePerUser); err != nil {
		return err
	}
	if err := settle(c); err != nil {
		return err
	}
	e.consume(c.Claimer, c.OffchainVectorId, c.ClaimNonce, amount)
	return nil
}
