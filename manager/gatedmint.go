package manager

import (
	"math/big"
	"strconv"

	"minter/common/model"
	"minter/common/types"
	"minter/gated"
)

func claimTotal(price *big.Int, amount uint64) *big.Int {
	if price == nil {
		price = new(big.Int)
	}
	return new(big.Int).Mul(price, new(big.Int).SetUint64(amount))
}

// GatedMint redeems a signed claim for sequential tokens.
func (m *Manager) GatedMint(ctx model.TxContext, c *gated.Claim, hexSig string, recipient types.Address) error {
	return m.gatedMint(ctx, c, hexSig, recipient, false)
}

// GatedMintEdition redeems a signed claim against the claim's edition.
func (m *Manager) GatedMintEdition(ctx model.TxContext, c *gated.Claim, hexSig string, recipient types.Address) error {
	return m.gatedMint(ctx, c, hexSig, recipient, true)
}

func (m *Manager) gatedMint(ctx model.TxContext, c *gated.Claim, hexSig string, recipient types.Address, edition bool) error {
	return m.withTx(func() error {
		err := m.gated.Mint(ctx, c, hexSig, recipient, func(c *gated.Claim) error {
			vid := string(c.OffchainVectorId)
			total := claimTotal(c.PricePerToken, c.NumTokensToMint)
			if err := m.settleSale(ctx, vid, c.Currency, c.PaymentRecipient, c.NumTokensToMint, total, false); err != nil {
				return err
			}
			coll, err := m.backend.Collection(c.ContractAddress)
			if err != nil {
				return err
			}
			if edition {
				return coll.MintAmountToRecipient(c.EditionId, recipient, c.NumTokensToMint)
			}
			return coll.MintAmountToOneRecipient(recipient, c.NumTokensToMint)
		})
		if err != nil {
			return err
		}
		m.sink.Mint(&model.MintEvent{
			Kind: "gated", VectorId: string(c.OffchainVectorId), Collection: c.ContractAddress,
			Recipient: recipient, User: recipient, Amount: types.Uint64(c.NumTokensToMint),
			Timestamp: types.Uint64(ctx.Timestamp),
		})
		return nil
	})
}

// GatedSeriesMint redeems a signed series claim for specific chosen tokens.
func (m *Manager) GatedSeriesMint(ctx model.TxContext, c *gated.SeriesClaim, hexSig string,
	recipient types.Address, tokenIds []uint64) error {

	return m.withTx(func() error {
		err := m.gated.MintSeries(ctx, c, hexSig, recipient, tokenIds, func(c *gated.SeriesClaim) error {
			vid := string(c.OffchainVectorId)
			total := claimTotal(c.PricePerToken, uint64(len(tokenIds)))
			if err := m.settleSale(ctx, vid, c.Currency, c.PaymentRecipient, uint64(len(tokenIds)), total, false); err != nil {
				return err
			}
			coll, err := m.backend.Collection(c.ContractAddress)
			if err != nil {
				return err
			}
			return coll.MintSpecificTokensToOneRecipient(recipient, tokenIds)
		})
		if err != nil {
			return err
		}
		ids := make(types.StrArray, len(tokenIds))
		for i, id := range tokenIds {
			ids[i] = strconv.FormatUint(id, 10)
		}
		m.sink.Mint(&model.MintEvent{
			Kind: "gated_series", VectorId: string(c.OffchainVectorId), Collection: c.ContractAddress,
			Recipient: recipient, User: recipient, Amount: types.Uint64(uint64(len(tokenIds))),
			TokenIds: ids, Timestamp: types.Uint64(ctx.Timestamp),
		})
		return nil
	})
}

// NonceUsed reports whether a gated claim nonce was consumed.
func (m *Manager) NonceUsed(vectorId, nonce types.Hash) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gated.NonceUsed(vectorId, nonce)
}

// GatedVectorClaimed reports the running total of an off-chain vector.
func (m *Manager) GatedVectorClaimed(vectorId types.Hash) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gated.VectorClaimed(vectorId)
}

// GatedUserClaimed reports the running per-user total of an off-chain vector.
func (m *Manager) GatedUserClaimed(vectorId types.Hash, user types.Address) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gated.UserClaimed(vectorId, user)
}
