package vector

import (
	"errors"
	"math/big"

	"minter/chain"
	"minter/common/model"
	"minter/common/types"
)

var (
	ErrNotFound          = errors.New("vector not found")
	ErrUnauthorized      = errors.New("caller is neither the collection nor its owner")
	ErrPrefilledClaims   = errors.New("new vector cannot carry a claimed count")
	ErrFieldFrozen       = errors.New("targeted vector field is frozen")
	ErrDeleteFrozen      = errors.New("vector delete is frozen")
	ErrPauseFrozen       = errors.New("vector pause is frozen")
	ErrVectorPaused      = errors.New("vector is paused")
	ErrSaleNotOpen       = errors.New("sale window is not open")
	ErrZeroAmount        = errors.New("mint amount must be non-zero")
	ErrTokenLimitPerTx   = errors.New("mint amount exceeds per transaction limit")
	ErrTotalCapExceeded  = errors.New("mint exceeds total claimable cap")
	ErrUserCapExceeded   = errors.New("mint exceeds per user claimable cap")
	ErrAllowlistedVector = errors.New("allowlisted vector cannot use the direct mint path")
	ErrSenderNotDirectEOA = errors.New("sender must be the transaction origin")
	ErrFlexibleDataTooWide = errors.New("flexible data exceeds 127 bits")
)

type claimKey struct {
	id   uint64
	user types.Address
}

// Engine owns the abridged vector records. Records are stored packed and
// every operation runs load, mutate copy, validate, settle, store - a failed
// step leaves the stored record untouched.
type Engine struct {
	backend chain.Backend

	// capUserIsTxSender keys per-user accounting by sender on legacy chains.
	capUserIsTxSender bool

	nextId     uint64
	records    map[uint64][]byte
	meta       map[uint64]*big.Int
	userClaims map[claimKey]uint32
}

func NewEngine(backend chain.Backend, capUserIsTxSender bool) *Engine {
	return &Engine{
		backend:           backend,
		capUserIsTxSender: capUserIsTxSender,
		nextId:            1,
		records:           map[uint64][]byte{},
		meta:              map[uint64]*big.Int{},
		userClaims:        map[claimKey]uint32{},
	}
}

// authorize requires the caller to be the target collection or its owner.
func (e *Engine) authorize(ctx model.TxContext, collection types.Address) error {
	if ctx.Sender == collection {
		return nil
	}
	c, err := e.backend.Collection(collection)
	if err != nil {
		return err
	}
	owner, err := c.Owner()
	if err != nil {
		return err
	}
	if ctx.Sender != owner {
		return ErrUnauthorized
	}
	return nil
}

// Create registers a new vector and returns its id. A vector arriving with a
// non-zero claimed count is rejected so nobody can spoof a pre-filled sale.
func (e *Engine) Create(ctx model.TxContext, v *Vector) (uint64, error) {
	if err := e.authorize(ctx, v.Collection); err != nil {
		return 0, err
	}
	if v.TotalClaimed != 0 {
		return 0, ErrPrefilledClaims
	}
	if err := validate(v); err != nil {
		return 0, err
	}
	rec, err := Pack(v)
	if err != nil {
		return 0, err
	}
	id := e.nextId
	e.nextId++
	e.records[id] = rec
	return id, nil
}

// Get returns the unpacked vector plus its metadata word.
func (e *Engine) Get(id uint64) (*Vector, bool, *big.Int, error) {
	rec, ok := e.records[id]
	if !ok {
		return nil, false, nil, ErrNotFound
	}
	v := Unpack(rec)
	paused, flex := unpackMeta(e.meta[id])
	return v, paused, flex, nil
}

// UserClaimed reports the per-user claimed count.
func (e *Engine) UserClaimed(id uint64, user types.Address) uint32 {
	return e.userClaims[claimKey{id, user}]
}

// Update applies the masked fields of upd to the stored vector. The whole
// operation is rejected if any targeted field is frozen; the fully updated
// record is re-validated before it is stored.
func (e *Engine) Update(ctx model.TxContext, id uint64, upd *Vector, mask uint16) error {
	rec, ok := e.records[id]
	if !ok {
		return ErrNotFound
	}
	v := Unpack(rec)
	if err := e.authorize(ctx, v.Collection); err != nil {
		return err
	}
	if v.FrozenMask&mask != 0 {
		return ErrFieldFrozen
	}
	if mask&FieldStart != 0 {
		v.StartTimestamp = upd.StartTimestamp
	}
	if mask&FieldEnd != 0 {
		v.EndTimestamp = upd.EndTimestamp
	}
	if mask&FieldPaymentRecipient != 0 {
		v.PaymentRecipient = upd.PaymentRecipient
	}
	if mask&FieldMaxTotal != 0 {
		v.MaxTotalClaimableViaVector = upd.MaxTotalClaimableViaVector
	}
	if mask&FieldMaxUser != 0 {
		v.MaxUserClaimableViaVector = upd.MaxUserClaimableViaVector
	}
	if mask&FieldTokenLimitPerTx != 0 {
		v.TokenLimitPerTx = upd.TokenLimitPerTx
	}
	if mask&FieldPrice != 0 {
		v.PricePerToken = upd.PricePerToken
	}
	if mask&FieldCurrency != 0 {
		v.Currency = upd.Currency
	}
	if mask&FieldAllowlistRoot != 0 {
		v.AllowlistRoot = upd.AllowlistRoot
	}
	if mask&FieldEditionId != 0 {
		v.EditionId = upd.EditionId
		v.EditionBased = upd.EditionBased
	}
	if mask&FieldRequireDirectEOA != 0 {
		v.RequireDirectEOA = upd.RequireDirectEOA
	}
	if err := validate(v); err != nil {
		return err
	}
	packed, err := Pack(v)
	if err != nil {
		return err
	}
	e.records[id] = packed
	return nil
}

// Freeze adds freeze bits to the vector. Freezing is irreversible.
func (e *Engine) Freeze(ctx model.TxContext, id uint64, mask uint16) error {
	rec, ok := e.records[id]
	if !ok {
		return ErrNotFound
	}
	v := Unpack(rec)
	if err := e.authorize(ctx, v.Collection); err != nil {
		return err
	}
	v.FrozenMask |= mask
	packed, err := Pack(v)
	if err != nil {
		return err
	}
	e.records[id] = packed
	return nil
}

// Delete removes the vector unless deletion is frozen.
func (e *Engine) Delete(ctx model.TxContext, id uint64) error {
	rec, ok := e.records[id]
	if !ok {
		return ErrNotFound
	}
	v := Unpack(rec)
	if err := e.authorize(ctx, v.Collection); err != nil {
		return err
	}
	if v.FrozenMask&FreezeDelete != 0 {
		return ErrDeleteFrozen
	}
	delete(e.records, id)
	delete(e.meta, id)
	return nil
}

// SetMetadata packs the pause bit and 127 bits of opaque flexible data into
// the vector's metadata word.
func (e *Engine) SetMetadata(ctx model.TxContext, id uint64, paused bool, flexibleData *big.Int) error {
	rec, ok := e.records[id]
	if !ok {
		return ErrNotFound
	}
	v := Unpack(rec)
	if err := e.authorize(ctx, v.Collection); err != nil {
		return err
	}
	wasPaused, _ := unpackMeta(e.meta[id])
	if wasPaused != paused && v.FrozenMask&FreezePause != 0 {
		return ErrPauseFrozen
	}
	if flexibleData == nil {
		flexibleData = new(big.Int)
	}
	if flexibleData.BitLen() > 127 {
		return ErrFlexibleDataTooWide
	}
	w := new(big.Int).Lsh(flexibleData, 1)
	if paused {
		w.Or(w, big.NewInt(1))
	}
	e.meta[id] = w
	return nil
}

// Mint runs the guard set, claims the amounts and then lets settle perform
// payment and the collection mint. The updated record and per-user count are
// only stored once settle succeeds, so a failed settlement leaves no claim.
// The returned vector is the state after the claim; user is the identity the
// per-user cap was charged to.
func (e *Engine) Mint(ctx model.TxContext, id uint64, recipient types.Address, numToMint uint32,
	settle func(v *Vector, user types.Address) error) (*Vector, types.Address, error) {

	rec, ok := e.records[id]
	if !ok {
		return nil, "", ErrNotFound
	}
	v := Unpack(rec)

	user := recipient
	if e.capUserIsTxSender {
		user = ctx.Sender
	}

	// guard conditions, a single failure rejects the whole mint
	if v.AllowlistRoot != types.ZeroHash && v.AllowlistRoot != "" {
		return nil, "", ErrAllowlistedVector
	}
	if paused, _ := unpackMeta(e.meta[id]); paused {
		return nil, "", ErrVectorPaused
	}
	if numToMint == 0 {
		return nil, "", ErrZeroAmount
	}
	if v.RequireDirectEOA && ctx.Sender != ctx.Origin {
		return nil, "", ErrSenderNotDirectEOA
	}
	if ctx.Timestamp < v.StartTimestamp || (v.EndTimestamp != 0 && ctx.Timestamp > v.EndTimestamp) {
		return nil, "", ErrSaleNotOpen
	}
	if v.TokenLimitPerTx != 0 && numToMint > v.TokenLimitPerTx {
		return nil, "", ErrTokenLimitPerTx
	}
	if v.MaxTotalClaimableViaVector != 0 && v.TotalClaimed+numToMint > v.MaxTotalClaimableViaVector {
		return nil, "", ErrTotalCapExceeded
	}
	key := claimKey{id, user}
	if v.MaxUserClaimableViaVector != 0 && e.userClaims[key]+numToMint > v.MaxUserClaimableViaVector {
		return nil, "", ErrUserCapExceeded
	}

	v.TotalClaimed += numToMint
	packed, err := Pack(v)
	if err != nil {
		return nil, "", err
	}

	if err := settle(v, user); err != nil {
		return nil, "", err
	}

	e.records[id] = packed
	e.userClaims[key] += numToMint
	return v, user, nil
}

func unpackMeta(w *big.Int) (bool, *big.Int) {
	if w == nil {
		return false, new(big.Int)
	}
	return w.Bit(0) == 1, new(big.Int).Rsh(w, 1)
}
