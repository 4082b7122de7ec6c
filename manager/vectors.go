package manager

import (
	"math/big"

	"minter/common/model"
	"minter/common/types"
	"minter/vector"
)

// CreateVector registers a new abridged sale vector and returns its id.
func (m *Manager) CreateVector(ctx model.TxContext, v *vector.Vector) (uint64, error) {
	var id uint64
	err := m.withTx(func() error {
		var err error
		id, err = m.vectors.Create(ctx, v)
		if err != nil {
			return err
		}
		m.sink.Vector(&model.VectorEvent{
			Kind: "created", VectorId: vectorIdString(id), Collection: v.Collection,
			Caller: ctx.Sender, Timestamp: types.Uint64(ctx.Timestamp),
		})
		return nil
	})
	return id, err
}

// GetVector returns the vector, its pause state and its flexible data word.
func (m *Manager) GetVector(id uint64) (*vector.Vector, bool, *big.Int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vectors.Get(id)
}

// VectorUserClaimed reports the per-user claimed count on a vector.
func (m *Manager) VectorUserClaimed(id uint64, user types.Address) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vectors.UserClaimed(id, user)
}

// UpdateVector applies the masked fields of upd to the stored vector.
func (m *Manager) UpdateVector(ctx model.TxContext, id uint64, upd *vector.Vector, mask uint16) error {
	return m.withTx(func() error {
		if err := m.vectors.Update(ctx, id, upd, mask); err != nil {
			return err
		}
		v, _, _, _ := m.vectors.Get(id)
		m.sink.Vector(&model.VectorEvent{
			Kind: "updated", VectorId: vectorIdString(id), Collection: v.Collection,
			Caller: ctx.Sender, Timestamp: types.Uint64(ctx.Timestamp),
		})
		return nil
	})
}

// FreezeVector irreversibly freezes the masked fields.
func (m *Manager) FreezeVector(ctx model.TxContext, id uint64, mask uint16) error {
	return m.withTx(func() error {
		if err := m.vectors.Freeze(ctx, id, mask); err != nil {
			return err
		}
		v, _, _, _ := m.vectors.Get(id)
		m.sink.Vector(&model.VectorEvent{
			Kind: "frozen", VectorId: vectorIdString(id), Collection: v.Collection,
			Caller: ctx.Sender, Timestamp: types.Uint64(ctx.Timestamp),
		})
		return nil
	})
}

// DeleteVector removes the vector unless deletion is frozen.
func (m *Manager) DeleteVector(ctx model.TxContext, id uint64) error {
	return m.withTx(func() error {
		v, _, _, err := m.vectors.Get(id)
		if err != nil {
			return err
		}
		if err := m.vectors.Delete(ctx, id); err != nil {
			return err
		}
		m.sink.Vector(&model.VectorEvent{
			Kind: "deleted", VectorId: vectorIdString(id), Collection: v.Collection,
			Caller: ctx.Sender, Timestamp: types.Uint64(ctx.Timestamp),
		})
		return nil
	})
}

// SetVectorMetadata packs the pause bit and flexible data into the vector's
// metadata word. Flexible data bit zero requests creator reward payouts on
// fee settlement.
func (m *Manager) SetVectorMetadata(ctx model.TxContext, id uint64, paused bool, flexibleData *big.Int) error {
	return m.withTx(func() error {
		if err := m.vectors.SetMetadata(ctx, id, paused, flexibleData); err != nil {
			return err
		}
		v, _, _, _ := m.vectors.Get(id)
		m.sink.Vector(&model.VectorEvent{
			Kind: "metadata_set", VectorId: vectorIdString(id), Collection: v.Collection,
			Caller: ctx.Sender, Timestamp: types.Uint64(ctx.Timestamp),
		})
		return nil
	})
}

// MintVector mints numToMint sequential tokens against an abridged vector,
// settling the sale price and protocol fee in the vector's currency.
func (m *Manager) MintVector(ctx model.TxContext, id uint64, recipient types.Address, numToMint uint32) error {
	return m.withTx(func() error {
		vid := vectorIdString(id)
		_, _, flex, err := m.vectors.Get(id)
		if err != nil {
			return err
		}
		rewardCreator := flex.Bit(0) == 1

		v, user, err := m.vectors.Mint(ctx, id, recipient, numToMint, func(v *vector.Vector, user types.Address) error {
			price := v.PricePerToken
			if price == nil {
				price = new(big.Int)
			}
			total := new(big.Int).Mul(price, new(big.Int).SetUint64(uint64(numToMint)))
			if err := m.settleSale(ctx, vid, v.Currency, v.PaymentRecipient, uint64(numToMint), total, rewardCreator); err != nil {
				return err
			}
			coll, err := m.backend.Collection(v.Collection)
			if err != nil {
				return err
			}
			if v.EditionBased {
				return coll.MintAmountToRecipient(uint64(v.EditionId), recipient, uint64(numToMint))
			}
			return coll.MintAmountToOneRecipient(recipient, uint64(numToMint))
		})
		if err != nil {
			return err
		}
		m.sink.Mint(&model.MintEvent{
			Kind: "vector", VectorId: vid, Collection: v.Collection,
			Recipient: recipient, User: user, Amount: types.Uint64(uint64(numToMint)),
			Timestamp: types.Uint64(ctx.Timestamp),
		})
		return nil
	})
}
