package manager

import (
	"math/big"
	"strconv"

	"minter/common/model"
	"minter/common/types"
	"minter/dutch"
	"minter/mech"
	"minter/ranked"
	"minter/seed"
)

func (m *Manager) registerMechanic(ctx model.TxContext, md *mech.VectorMetadata, seedBytes []byte,
	create func(id types.Hash) error) (types.Hash, error) {

	var id types.Hash
	err := m.withTx(func() error {
		var err error
		id, err = m.registry.Register(ctx, md, seedBytes, create)
		if err != nil {
			return err
		}
		m.sink.Mechanic(&model.MechanicEvent{
			Kind: "registered", VectorId: string(id), Mechanic: md.Mechanic,
			Collection: md.Collection, Timestamp: types.Uint64(ctx.Timestamp),
		})
		return nil
	})
	return id, err
}

// RegisterDutchVector registers a Dutch auction under a fresh deterministic id.
func (m *Manager) RegisterDutchVector(ctx model.TxContext, md *mech.VectorMetadata, seedBytes []byte,
	v *dutch.Vector, prices []*big.Int) (types.Hash, error) {

	md.Mechanic = m.dutch.Addr
	md.IsChoose = false
	return m.registerMechanic(ctx, md, seedBytes, func(id types.Hash) error {
		return m.dutch.CreateVector(m.asManager(ctx), id, v, prices)
	})
}

// RegisterRankedVector registers a ranked auction under a fresh deterministic id.
func (m *Manager) RegisterRankedVector(ctx model.TxContext, md *mech.VectorMetadata, seedBytes []byte,
	v *ranked.Vector) (types.Hash, error) {

	md.Mechanic = m.ranked.Addr
	md.IsChoose = false
	return m.registerMechanic(ctx, md, seedBytes, func(id types.Hash) error {
		return m.ranked.CreateVector(m.asManager(ctx), id, v)
	})
}

// RegisterSeedVector registers a seed mint vector under a fresh deterministic id.
func (m *Manager) RegisterSeedVector(ctx model.TxContext, md *mech.VectorMetadata, seedBytes []byte,
	v *seed.Vector) (types.Hash, error) {

	md.Mechanic = m.seedAddr
	md.IsChoose = false
	return m.registerMechanic(ctx, md, seedBytes, func(id types.Hash) error {
		return m.seeds.CreateVector(m.asManager(ctx), id, v)
	})
}

// SetMechanicPaused pauses or unpauses a mechanic vector.
func (m *Manager) SetMechanicPaused(ctx model.TxContext, vectorId types.Hash, paused bool) error {
	return m.withTx(func() error {
		if err := m.registry.SetPaused(ctx, vectorId, paused); err != nil {
			return err
		}
		md, _ := m.registry.Get(vectorId)
		kind := "paused"
		if !paused {
			kind = "unpaused"
		}
		m.sink.Mechanic(&model.MechanicEvent{
			Kind: kind, VectorId: string(vectorId), Mechanic: md.Mechanic,
			Collection: md.Collection, Timestamp: types.Uint64(ctx.Timestamp),
		})
		return nil
	})
}

// GetMechanicVector returns the registry metadata of a mechanic vector.
func (m *Manager) GetMechanicVector(vectorId types.Hash) (*mech.VectorMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.Get(vectorId)
}

// settleMechanicFee charges the protocol mint fee for a mechanic mint and
// returns the context the mechanic should see, with the fee carved out of
// the attached value. Waived mechanics pay nothing.
func (m *Manager) settleMechanicFee(ctx model.TxContext, vectorId types.Hash,
	mechanic types.Address, numToMint uint64) (model.TxContext, error) {

	fee, err := m.fees.GetClassicVectorMintFee(string(vectorId), numToMint, mechanic, types.ZeroAddress)
	if err != nil {
		return ctx, err
	}
	if fee.Sign() == 0 {
		return ctx, nil
	}
	if ctx.AttachedValue().Cmp(fee) < 0 {
		return ctx, ErrPaymentMismatch
	}
	settlement, err := m.fees.ProcessClassicVectorMintFeeCap(ctx, string(vectorId),
		types.ZeroAddress, ctx.Origin, types.ZeroAddress, fee, false)
	if err != nil {
		return ctx, err
	}
	m.sink.Payment(&model.PaymentEvent{
		Kind: "fee", Currency: types.ZeroAddress, From: ctx.Origin, To: m.addr,
		Amount: types.NewBigInt(settlement.Fee), VectorId: string(vectorId),
		Timestamp: types.Uint64(ctx.Timestamp),
	})
	ctx.Value = new(big.Int).Sub(ctx.AttachedValue(), fee)
	return ctx, nil
}

// MechanicMintNum routes a number-based mint to the vector's mechanic.
func (m *Manager) MechanicMintNum(ctx model.TxContext, vectorId types.Hash,
	recipient types.Address, numToMint uint32, data []byte) error {

	return m.withTx(func() error {
		md, err := m.registry.Get(vectorId)
		if err != nil {
			return err
		}
		ctx, err = m.settleMechanicFee(ctx, vectorId, md.Mechanic, uint64(numToMint))
		if err != nil {
			return err
		}
		md, err = m.registry.NumMint(m.asManager(ctx), vectorId, recipient, numToMint, data)
		if err != nil {
			return err
		}
		// A ranked-auction NumMint only enters a bid; the mechanic records the
		// auction event and tokens mint later on settlement.
		if md.Mechanic != m.ranked.Addr {
			m.sink.Mint(&model.MintEvent{
				Kind: "mechanic", VectorId: string(vectorId), Collection: md.Collection,
				Recipient: recipient, User: recipient, Amount: types.Uint64(uint64(numToMint)),
				Timestamp: types.Uint64(ctx.Timestamp),
			})
		}
		return nil
	})
}

// MechanicMintChoose routes a choose-token mint to the vector's mechanic.
func (m *Manager) MechanicMintChoose(ctx model.TxContext, vectorId types.Hash,
	recipient types.Address, tokenIds []uint64, data []byte) error {

	return m.withTx(func() error {
		md, err := m.registry.Get(vectorId)
		if err != nil {
			return err
		}
		ctx, err = m.settleMechanicFee(ctx, vectorId, md.Mechanic, uint64(len(tokenIds)))
		if err != nil {
			return err
		}
		md, err = m.registry.ChooseMint(m.asManager(ctx), vectorId, recipient, tokenIds, data)
		if err != nil {
			return err
		}
		ids := make(types.StrArray, len(tokenIds))
		for i, id := range tokenIds {
			ids[i] = strconv.FormatUint(id, 10)
		}
		m.sink.Mint(&model.MintEvent{
			Kind: "mechanic_choose", VectorId: string(vectorId), Collection: md.Collection,
			Recipient: recipient, User: recipient, Amount: types.Uint64(uint64(len(tokenIds))),
			TokenIds: ids, Timestamp: types.Uint64(ctx.Timestamp),
		})
		return nil
	})
}

// DutchState reports price, payout and phase of a Dutch auction at ts.
func (m *Manager) DutchState(vectorId types.Hash, ts uint64) (*dutch.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dutch.GetVectorState(vectorId, ts)
}

// DutchUser returns a buyer's purchase ledger on a Dutch auction.
func (m *Manager) DutchUser(vectorId types.Hash, user types.Address) dutch.UserInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dutch.User(vectorId, user)
}

// DutchRebate pays user back down to the clearing price.
func (m *Manager) DutchRebate(ctx model.TxContext, vectorId types.Hash, user types.Address) (*big.Int, error) {
	var payout *big.Int
	err := m.withTx(func() error {
		var err error
		payout, err = m.dutch.Rebate(ctx, vectorId, user)
		return err
	})
	return payout, err
}

// DutchWithdrawFunds releases the dynamic period revenue to the payee.
func (m *Manager) DutchWithdrawFunds(ctx model.TxContext, vectorId types.Hash) (*big.Int, error) {
	var amount *big.Int
	err := m.withTx(func() error {
		md, err := m.registry.Get(vectorId)
		if err != nil {
			return err
		}
		amount, err = m.dutch.WithdrawDPPFunds(ctx, vectorId, md)
		return err
	})
	return amount, err
}

// UpdateDutchVector replaces a Dutch auction configuration within the
// post-sale mutability rules.
func (m *Manager) UpdateDutchVector(ctx model.TxContext, vectorId types.Hash,
	v *dutch.Vector, prices []*big.Int) error {

	return m.withTx(func() error {
		md, err := m.registry.Get(vectorId)
		if err != nil {
			return err
		}
		return m.dutch.UpdateVector(ctx, vectorId, md, v, prices)
	})
}

// RankedVector returns a ranked auction record.
func (m *Manager) RankedVector(vectorId types.Hash) (*ranked.Vector, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ranked.Get(vectorId)
}

// RankedBid returns one bid of a ranked auction.
func (m *Manager) RankedBid(vectorId types.Hash, bidId uint64) (*ranked.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ranked.BidInfo(vectorId, bidId)
}

// RankedUserBids returns the bid ids a user placed on a ranked auction.
func (m *Manager) RankedUserBids(vectorId types.Hash, user types.Address) []uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ranked.UserBidIds(vectorId, user)
}

// UpdateRankedBid raises an existing bid; the attached value must cover
// exactly the difference.
func (m *Manager) UpdateRankedBid(ctx model.TxContext, vectorId types.Hash, bidId uint64, newAmount *big.Int) error {
	return m.withTx(func() error {
		return m.ranked.UpdateBid(ctx, vectorId, bidId, newAmount)
	})
}

// ReclaimRankedBid refunds an outbid or invalid bid per the signed claim.
func (m *Manager) ReclaimRankedBid(ctx model.TxContext, c *ranked.ReclaimBidClaim, hexSig string) error {
	return m.withTx(func() error {
		return m.ranked.ReclaimBid(ctx, c, hexSig)
	})
}

// WithdrawRankedEarnings releases the signed auction revenue once.
func (m *Manager) WithdrawRankedEarnings(ctx model.TxContext, c *ranked.EarningsClaim, hexSig string) error {
	return m.withTx(func() error {
		return m.ranked.WithdrawAuctionEarnings(ctx, c, hexSig)
	})
}

// RankedMintWithRebate mints to a winning bidder per the signed claim. The
// mint lands on the collection registered under the claim's own vector id.
func (m *Manager) RankedMintWithRebate(ctx model.TxContext,
	c *ranked.MintWithRebateClaim, hexSig string) error {

	return m.withTx(func() error {
		md, err := m.registry.Get(c.VectorId)
		if err != nil {
			return err
		}
		if err := m.ranked.MintWithRebate(ctx, md, c, hexSig); err != nil {
			return err
		}
		return nil
	})
}

// SeedVector returns a seed mint vector.
func (m *Manager) SeedVector(vectorId types.Hash) (*seed.Vector, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seeds.Get(vectorId)
}

// SeedUses reports how often a seed was consumed on a vector.
func (m *Manager) SeedUses(vectorId types.Hash, seedData []byte) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seeds.SeedUses(vectorId, seedData)
}
