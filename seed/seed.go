// Package seed implements the seed-based mint mechanic: one token per call,
// keyed by caller supplied seed data, with optional seed uniqueness and an
// optional burn-and-redeem of an external multi token.
package seed

import (
	"errors"
	"math/big"

	"minter/common/model"
	"minter/common/types"
	"minter/common/utils"
	"minter/mech"
)

var (
	ErrOneTokenPerCall  = errors.New("seed mints are one token per call")
	ErrSaleNotOpen      = errors.New("sale has not started")
	ErrSaleEnded        = errors.New("sale has ended")
	ErrTotalCapExceeded = errors.New("mint would exceed the vector total cap")
	ErrUserCapExceeded  = errors.New("mint would exceed the per user cap")
	ErrSeedUsed         = errors.New("seed already used")
	ErrPaymentMismatch  = errors.New("attached value does not match the price")
	ErrBadWindow        = errors.New("end timestamp before start timestamp")
	ErrBadBurnConfig    = errors.New("burn redemption needs a non-zero amount")
)

// Vector is one seed mint configuration. A non-zero BurnContract turns every
// mint into a redemption: BurnAmount of BurnTokenId is burned from the
// recipient first.
type Vector struct {
	PaymentRecipient           types.Address `json:"paymentRecipient"`
	StartTimestamp             uint64        `json:"startTimestamp"`
	EndTimestamp               uint64        `json:"endTimestamp"` //zero is open ended
	Price                      *big.Int      `json:"price"`
	MaxTotalClaimableViaVector uint64        `json:"maxTotalClaimableViaVector"` //zero is unlimited
	MaxUserClaimableViaVector  uint64        `json:"maxUserClaimableViaVector"`  //zero is unlimited
	CurrentSupply              uint64        `json:"currentSupply"`
	EnforceUniqueSeeds         bool          `json:"enforceUniqueSeeds"`
	BurnContract               types.Address `json:"burnContract"`
	BurnTokenId                uint64        `json:"burnTokenId"`
	BurnAmount                 uint64        `json:"burnAmount"`
}

func (v *Vector) price() *big.Int {
	if v.Price == nil {
		return new(big.Int)
	}
	return v.Price
}

func (v *Vector) hasBurn() bool {
	return v.BurnContract != "" && v.BurnContract != types.ZeroAddress
}

type seedKey struct {
	vectorId types.Hash
	seed     types.Hash
}

type userKey struct {
	vectorId types.Hash
	user     types.Address
}

// Mechanic holds every seed mint vector and its seed usage counts.
type Mechanic struct {
	mech.Client

	vectors    map[types.Hash]*Vector
	uses       map[seedKey]uint64
	userClaims map[userKey]uint64
}

func New(client mech.Client) *Mechanic {
	return &Mechanic{
		Client:     client,
		vectors:    map[types.Hash]*Vector{},
		uses:       map[seedKey]uint64{},
		userClaims: map[userKey]uint64{},
	}
}

// CreateVector stores a new seed vector under the registry assigned id.
func (m *Mechanic) CreateVector(ctx model.TxContext, vectorId types.Hash, v *Vector) error {
	if err := m.OnlyManager(ctx); err != nil {
		return err
	}
	if v.EndTimestamp != 0 && v.EndTimestamp < v.StartTimestamp {
		return ErrBadWindow
	}
	if v.hasBurn() && v.BurnAmount == 0 {
		return ErrBadBurnConfig
	}
	nv := *v
	nv.Price = new(big.Int).Set(v.price())
	nv.CurrentSupply = 0
	m.vectors[vectorId] = &nv
	return nil
}

// Get returns a copy of the vector.
func (m *Mechanic) Get(vectorId types.Hash) (*Vector, error) {
	v, ok := m.vectors[vectorId]
	if !ok {
		return nil, mech.ErrVectorNotFound
	}
	cp := *v
	cp.Price = new(big.Int).Set(v.price())
	return &cp, nil
}

// SeedUses reports how often a seed was consumed on a vector.
func (m *Mechanic) SeedUses(vectorId types.Hash, seedData []byte) uint64 {
	return m.uses[seedKey{vectorId, utils.Keccak256Hash(seedData)}]
}

// UserClaimed reports the per user mint count on a vector.
func (m *Mechanic) UserClaimed(vectorId types.Hash, user types.Address) uint64 {
	return m.userClaims[userKey{vectorId, user}]
}

// NumMint mints exactly one token bound to the seed in data.
func (m *Mechanic) NumMint(ctx model.TxContext, vectorId types.Hash, md *mech.VectorMetadata,
	recipient types.Address, numToMint uint32, data []byte) error {

	if err := m.OnlyManager(ctx); err != nil {
		return err
	}
	v, ok := m.vectors[vectorId]
	if !ok {
		return mech.ErrVectorNotFound
	}
	if numToMint != 1 {
		return ErrOneTokenPerCall
	}
	if ctx.Timestamp < v.StartTimestamp {
		return ErrSaleNotOpen
	}
	if v.EndTimestamp != 0 && ctx.Timestamp > v.EndTimestamp {
		return ErrSaleEnded
	}
	if v.MaxTotalClaimableViaVector != 0 && v.CurrentSupply+1 > v.MaxTotalClaimableViaVector {
		return ErrTotalCapExceeded
	}
	uk := userKey{vectorId, recipient}
	if v.MaxUserClaimableViaVector != 0 && m.userClaims[uk]+1 > v.MaxUserClaimableViaVector {
		return ErrUserCapExceeded
	}
	sk := seedKey{vectorId, utils.Keccak256Hash(data)}
	if v.EnforceUniqueSeeds && m.uses[sk] != 0 {
		return ErrSeedUsed
	}
	if ctx.AttachedValue().Cmp(v.price()) != 0 {
		return ErrPaymentMismatch
	}

	if v.hasBurn() {
		burnable, err := m.Backend.Burnable(v.BurnContract)
		if err != nil {
			return err
		}
		if err := burnable.Burn(recipient, []uint64{v.BurnTokenId}, []uint64{v.BurnAmount}); err != nil {
			return err
		}
	}
	if v.price().Sign() > 0 {
		if err := m.Backend.Transfer(ctx.Origin, v.PaymentRecipient, v.price()); err != nil {
			return err
		}
	}

	coll, err := m.Backend.Collection(md.Collection)
	if err != nil {
		return err
	}
	if md.IsEditionBased {
		if _, err := coll.MintOneToRecipient(md.EditionId, recipient); err != nil {
			return err
		}
	} else {
		if _, err := coll.MintOneToOneRecipient(recipient); err != nil {
			return err
		}
	}

	v.CurrentSupply++
	m.uses[sk]++
	m.userClaims[uk]++

	if v.price().Sign() > 0 {
		m.Sink.Payment(&model.PaymentEvent{
			Kind: "sale", Currency: types.ZeroAddress,
			From: ctx.Origin, To: v.PaymentRecipient,
			Amount: types.NewBigInt(v.price()), VectorId: string(vectorId),
			Timestamp: types.Uint64(ctx.Timestamp),
		})
	}
	return nil
}

// ChooseMint is not a valid path for seed mints.
func (m *Mechanic) ChooseMint(ctx model.TxContext, vectorId types.Hash, md *mech.VectorMetadata,
	recipient types.Address, tokenIds []uint64, data []byte) error {
	return mech.ErrWrongMintPath
}
