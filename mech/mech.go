// Package mech holds the global mechanic vector registry and the client base
// every pluggable mint mechanic builds on. Mechanic vectors have immutable,
// content-addressed identity and a mutable pause state.
package mech

import (
	"errors"

	"minter/chain"
	"minter/common/model"
	"minter/common/types"
	"minter/common/utils"
)

var (
	ErrUnknownMechanic = errors.New("mechanic is not registered with the manager")
	ErrVectorExists    = errors.New("mechanic vector id already registered")
	ErrVectorNotFound  = errors.New("mechanic vector not found")
	ErrMechanicPaused  = errors.New("mechanic vector is paused")
	ErrWrongMintPath   = errors.New("wrong mint path for this mechanic vector")
	ErrNotMintManager  = errors.New("caller is not the mint manager")
	ErrNotPlatform     = errors.New("caller is not the platform")
	ErrUnauthorized    = errors.New("caller is neither the collection nor its owner")
)

// VectorMetadata is the global record binding a mechanic to its target.
// Identity is immutable once registered; only the pause flag may change.
type VectorMetadata struct {
	Mechanic       types.Address `json:"mechanic"`
	Collection     types.Address `json:"contractAddress"`
	EditionId      uint64        `json:"editionId"`
	IsEditionBased bool          `json:"isEditionBased"`
	IsChoose       bool          `json:"isChoose"`
	Paused         bool          `json:"paused"`
}

// Mechanic is the mint surface a registered mechanic exposes to the manager.
// The data argument carries mechanic specific payloads such as seeds.
type Mechanic interface {
	NumMint(ctx model.TxContext, vectorId types.Hash, md *VectorMetadata,
		recipient types.Address, numToMint uint32, data []byte) error
	ChooseMint(ctx model.TxContext, vectorId types.Hash, md *VectorMetadata,
		recipient types.Address, tokenIds []uint64, data []byte) error
}

// VectorId derives the deterministic mechanic vector id. The hash space is
// treated as collision free; a second registration under the same id is
// rejected.
func VectorId(collection types.Address, editionId uint64, mechanic types.Address, seed []byte) types.Hash {
	return utils.Keccak256Hash(
		utils.LeftPadBytes(collection.Bytes(), 32),
		utils.U64Bytes(editionId),
		utils.LeftPadBytes(mechanic.Bytes(), 32),
		seed,
	)
}

// Registry owns the global mechanic vector metadata.
type Registry struct {
	backend   chain.Backend
	mechanics map[types.Address]Mechanic
	vectors   map[types.Hash]*VectorMetadata
}

func NewRegistry(backend chain.Backend) *Registry {
	return &Registry{
		backend:   backend,
		mechanics: map[types.Address]Mechanic{},
		vectors:   map[types.Hash]*VectorMetadata{},
	}
}

// AddMechanic binds a mechanic implementation to its identity.
func (r *Registry) AddMechanic(addr types.Address, m Mechanic) {
	r.mechanics[addr] = m
}

// Get returns the metadata for a mechanic vector.
func (r *Registry) Get(vectorId types.Hash) (*VectorMetadata, error) {
	md, ok := r.vectors[vectorId]
	if !ok {
		return nil, ErrVectorNotFound
	}
	cp := *md
	return &cp, nil
}

func (r *Registry) authorize(ctx model.TxContext, collection types.Address) error {
	if ctx.Sender == collection {
		return nil
	}
	c, err := r.backend.Collection(collection)
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

// Register records the metadata under its deterministic id and invokes
// create so the mechanic can set up its own vector under the same id. The
// metadata is only stored when create succeeds.
func (r *Registry) Register(ctx model.TxContext, md *VectorMetadata, seed []byte,
	create func(vectorId types.Hash) error) (types.Hash, error) {

	if err := r.authorize(ctx, md.Collection); err != nil {
		return "", err
	}
	if _, ok := r.mechanics[md.Mechanic]; !ok {
		return "", ErrUnknownMechanic
	}
	id := VectorId(md.Collection, md.EditionId, md.Mechanic, seed)
	if _, ok := r.vectors[id]; ok {
		return "", ErrVectorExists
	}
	if err := create(id); err != nil {
		return "", err
	}
	cp := *md
	cp.Paused = false
	r.vectors[id] = &cp
	return id, nil
}

// SetPaused flips the only mutable bit of a mechanic vector.
func (r *Registry) SetPaused(ctx model.TxContext, vectorId types.Hash, paused bool) error {
	md, ok := r.vectors[vectorId]
	if !ok {
		return ErrVectorNotFound
	}
	if err := r.authorize(ctx, md.Collection); err != nil {
		return err
	}
	md.Paused = paused
	return nil
}

// NumMint routes a number-based mint to the registered mechanic.
func (r *Registry) NumMint(ctx model.TxContext, vectorId types.Hash,
	recipient types.Address, numToMint uint32, data []byte) (*VectorMetadata, error) {

	md, m, err := r.route(vectorId, false)
	if err != nil {
		return nil, err
	}
	if err := m.NumMint(ctx, vectorId, md, recipient, numToMint, data); err != nil {
		return nil, err
	}
	return md, nil
}

// ChooseMint routes a choose-token mint to the registered mechanic.
func (r *Registry) ChooseMint(ctx model.TxContext, vectorId types.Hash,
	recipient types.Address, tokenIds []uint64, data []byte) (*VectorMetadata, error) {

	md, m, err := r.route(vectorId, true)
	if err != nil {
		return nil, err
	}
	if err := m.ChooseMint(ctx, vectorId, md, recipient, tokenIds, data); err != nil {
		return nil, err
	}
	return md, nil
}

func (r *Registry) route(vectorId types.Hash, choose bool) (*VectorMetadata, Mechanic, error) {
	md, ok := r.vectors[vectorId]
	if !ok {
		return nil, nil, ErrVectorNotFound
	}
	if md.Paused {
		return nil, nil, ErrMechanicPaused
	}
	if md.IsChoose != choose {
		return nil, nil, ErrWrongMintPath
	}
	m, ok := r.mechanics[md.Mechanic]
	if !ok {
		return nil, nil, ErrUnknownMechanic
	}
	cp := *md
	return &cp, m, nil
}
