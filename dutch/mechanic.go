package dutch

import (
	"errors"
	"math/big"

	"minter/common/model"
	"minter/common/types"
	"minter/mech"
	"minter/pricing"
)

var (
	ErrSaleNotOpen           = errors.New("auction has not started")
	ErrSaleEnded             = errors.New("auction has ended")
	ErrZeroAmount            = errors.New("mint amount must be non-zero")
	ErrTokenLimitPerTx       = errors.New("mint amount over the per transaction limit")
	ErrTotalCapExceeded      = errors.New("mint would exceed the auction total cap")
	ErrUserCapExceeded       = errors.New("mint would exceed the per user cap")
	ErrAuctionExhausted      = errors.New("auction is exhausted")
	ErrInsufficientPayment   = errors.New("attached value below the current price")
	ErrAuctionStillDynamic   = errors.New("auction is still in its dynamic price period")
	ErrFundsAlreadyWithdrawn = errors.New("auction revenue already withdrawn")
	ErrNotPayee              = errors.New("caller is neither the payment recipient nor the collection owner")
	ErrSaleStarted           = errors.New("field is immutable after the first sale")
)

// UserInfo is the per buyer purchase ledger. TotalPosted accumulates the full
// attached value of every mint, so overpayment accrues toward the rebate.
type UserInfo struct {
	NumTokensBought uint32   `json:"numTokensBought"`
	NumRebates      uint32   `json:"numRebates"`
	TotalPosted     *big.Int `json:"totalPosted"`
}

type userKey struct {
	vectorId types.Hash
	user     types.Address
}

// Mechanic holds every Dutch auction vector and escrows posted funds under
// its own ledger identity until withdrawal and rebates.
type Mechanic struct {
	mech.Client
	Addr types.Address

	vectors map[types.Hash][]byte
	tables  map[types.Hash][]byte
	users   map[userKey]*UserInfo
}

func New(addr types.Address, client mech.Client) *Mechanic {
	return &Mechanic{
		Client:  client,
		Addr:    addr,
		vectors: map[types.Hash][]byte{},
		tables:  map[types.Hash][]byte{},
		users:   map[userKey]*UserInfo{},
	}
}

// CreateVector stores a new auction under the registry assigned id. Reached
// only through the manager during mechanic registration.
func (m *Mechanic) CreateVector(ctx model.TxContext, vectorId types.Hash, v *Vector, prices []*big.Int) error {
	if err := m.OnlyManager(ctx); err != nil {
		return err
	}
	table, err := pricing.Pack(prices, int(v.BytesPerPrice))
	if err != nil {
		return err
	}
	nv := *v
	nv.NumPrices = uint32(len(prices))
	nv.CurrentSupply = 0
	nv.LowestPriceSoldAtIndex = 0
	nv.TotalSales = new(big.Int)
	nv.AuctionExhausted = false
	nv.PayeeRevenueHasBeenWithdrawn = false
	if err := validate(&nv, table); err != nil {
		return err
	}
	rec, err := Pack(&nv)
	if err != nil {
		return err
	}
	m.vectors[vectorId] = rec
	m.tables[vectorId] = table
	return nil
}

func (m *Mechanic) load(vectorId types.Hash) (*Vector, []byte, error) {
	rec, ok := m.vectors[vectorId]
	if !ok {
		return nil, nil, mech.ErrVectorNotFound
	}
	return Unpack(rec), m.tables[vectorId], nil
}

// Get returns a copy of the auction record.
func (m *Mechanic) Get(vectorId types.Hash) (*Vector, error) {
	v, _, err := m.load(vectorId)
	return v, err
}

// Prices returns the unpacked price table.
func (m *Mechanic) Prices(vectorId types.Hash) ([]*big.Int, error) {
	v, table, err := m.load(vectorId)
	if err != nil {
		return nil, err
	}
	return pricing.Unpack(table, int(v.BytesPerPrice)), nil
}

// User returns a copy of a buyer's purchase ledger.
func (m *Mechanic) User(vectorId types.Hash, user types.Address) UserInfo {
	if info := m.users[userKey{vectorId, user}]; info != nil {
		cp := *info
		cp.TotalPosted = new(big.Int).Set(info.TotalPosted)
		return cp
	}
	return UserInfo{TotalPosted: new(big.Int)}
}

// NumMint sells numToMint tokens at the price index active at ctx.Timestamp.
// The full attached value is posted; funds stay escrowed until the payee
// withdrawal, after which only the charge is forwarded 95/5.
func (m *Mechanic) NumMint(ctx model.TxContext, vectorId types.Hash, md *mech.VectorMetadata,
	recipient types.Address, numToMint uint32, data []byte) error {

	if err := m.OnlyManager(ctx); err != nil {
		return err
	}
	v, table, err := m.load(vectorId)
	if err != nil {
		return err
	}
	if numToMint == 0 {
		return ErrZeroAmount
	}
	if ctx.Timestamp < v.StartTimestamp {
		return ErrSaleNotOpen
	}
	if v.EndTimestamp != 0 && ctx.Timestamp > v.EndTimestamp {
		return ErrSaleEnded
	}
	if v.AuctionExhausted {
		return ErrAuctionExhausted
	}
	if v.TokenLimitPerTx != 0 && numToMint > v.TokenLimitPerTx {
		return ErrTokenLimitPerTx
	}
	n := uint64(numToMint)
	if v.MaxTotalClaimableViaVector != 0 && v.CurrentSupply+n > v.MaxTotalClaimableViaVector {
		return ErrTotalCapExceeded
	}
	key := userKey{vectorId, recipient}
	info := m.users[key]
	bought := uint32(0)
	if info != nil {
		bought = info.NumTokensBought
	}
	if v.MaxUserClaimableViaVector != 0 && bought+numToMint > v.MaxUserClaimableViaVector {
		return ErrUserCapExceeded
	}

	idx := priceIndex(v, ctx.Timestamp)
	price := pricing.PriceAt(table, int(v.BytesPerPrice), idx)
	total := new(big.Int).Mul(price, new(big.Int).SetUint64(n))
	posted := ctx.AttachedValue()
	if posted.Cmp(total) < 0 {
		return ErrInsufficientPayment
	}

	if v.PayeeRevenueHasBeenWithdrawn {
		// clearing price is frozen, forward this sale's charge right away
		// and escrow only the overpayment
		platformCut := new(big.Int).Div(new(big.Int).Mul(total, big.NewInt(5)), big.NewInt(100))
		payeeCut := new(big.Int).Sub(total, platformCut)
		if err := m.Backend.Transfer(ctx.Origin, v.PaymentRecipient, payeeCut); err != nil {
			return err
		}
		if err := m.Backend.Transfer(ctx.Origin, m.Platform, platformCut); err != nil {
			return err
		}
		if err := m.Backend.Transfer(ctx.Origin, m.Addr, new(big.Int).Sub(posted, total)); err != nil {
			return err
		}
	} else if err := m.Backend.Transfer(ctx.Origin, m.Addr, posted); err != nil {
		return err
	}

	coll, err := m.Backend.Collection(md.Collection)
	if err != nil {
		return err
	}
	if md.IsEditionBased {
		err = coll.MintAmountToRecipient(md.EditionId, recipient, n)
	} else {
		err = coll.MintAmountToOneRecipient(recipient, n)
	}
	if err != nil {
		return err
	}

	v.CurrentSupply += n
	if uint32(idx) > v.LowestPriceSoldAtIndex {
		v.LowestPriceSoldAtIndex = uint32(idx)
	}
	v.TotalSales = new(big.Int).Add(v.sales(), total)
	if v.MaxTotalClaimableViaVector != 0 && v.CurrentSupply >= v.MaxTotalClaimableViaVector {
		v.AuctionExhausted = true
	} else if limit, lerr := coll.LimitSupply(); lerr == nil && limit != 0 {
		if supply, serr := coll.Supply(); serr == nil && supply >= limit {
			v.AuctionExhausted = true
		}
	}
	rec, err := Pack(v)
	if err != nil {
		return err
	}
	m.vectors[vectorId] = rec
	if info == nil {
		info = &UserInfo{TotalPosted: new(big.Int)}
		m.users[key] = info
	}
	info.NumTokensBought += numToMint
	info.TotalPosted = new(big.Int).Add(info.TotalPosted, posted)

	m.Sink.Payment(&model.PaymentEvent{
		Kind: "sale", Currency: types.ZeroAddress,
		From: ctx.Origin, To: m.Addr,
		Amount: types.NewBigInt(posted), VectorId: string(vectorId),
		Timestamp: types.Uint64(ctx.Timestamp),
	})
	return nil
}

// ChooseMint is not a valid path for Dutch auctions.
func (m *Mechanic) ChooseMint(ctx model.TxContext, vectorId types.Hash, md *mech.VectorMetadata,
	recipient types.Address, tokenIds []uint64, data []byte) error {
	return mech.ErrWrongMintPath
}

// clearingIndex is the index the rebate and payout math settles at. Once the
// auction is exhausted or the payee withdrew, the stored snapshot rules.
func clearingIndex(v *Vector, ts uint64) int {
	if v.AuctionExhausted || v.PayeeRevenueHasBeenWithdrawn {
		return int(v.LowestPriceSoldAtIndex)
	}
	return priceIndex(v, ts)
}

// Rebate pays the buyer back the difference between everything they posted
// and what they owe at the clearing price. Calling it again without a new
// purchase pays nothing.
func (m *Mechanic) Rebate(ctx model.TxContext, vectorId types.Hash, user types.Address) (*big.Int, error) {
	v, table, err := m.load(vectorId)
	if err != nil {
		return nil, err
	}
	info := m.users[userKey{vectorId, user}]
	if info == nil || info.NumTokensBought == 0 {
		return new(big.Int), nil
	}
	price := pricing.PriceAt(table, int(v.BytesPerPrice), clearingIndex(v, ctx.Timestamp))
	owed := new(big.Int).Mul(price, new(big.Int).SetUint64(uint64(info.NumTokensBought)))
	payout := new(big.Int).Sub(info.TotalPosted, owed)
	if payout.Sign() <= 0 {
		return new(big.Int), nil
	}
	if err := m.Backend.Transfer(m.Addr, user, payout); err != nil {
		return nil, err
	}
	info.TotalPosted = owed
	info.NumRebates++

	m.Sink.Auction(&model.AuctionEvent{
		Kind: "rebate", VectorId: string(vectorId), Bidder: user,
		Amount: types.NewBigInt(payout), Timestamp: types.Uint64(ctx.Timestamp),
	})
	m.Sink.Payment(&model.PaymentEvent{
		Kind: "rebate", Currency: types.ZeroAddress,
		From: m.Addr, To: user,
		Amount: types.NewBigInt(payout), VectorId: string(vectorId),
		Timestamp: types.Uint64(ctx.Timestamp),
	})
	return payout, nil
}

// WithdrawDPPFunds pays the dynamic period revenue out once the clearing
// price is final, 95% to the payment recipient and 5% to the platform. The
// payout is the clearing price over every unit sold, never more than the
// recorded sales.
func (m *Mechanic) WithdrawDPPFunds(ctx model.TxContext, vectorId types.Hash, md *mech.VectorMetadata) (*big.Int, error) {
	v, table, err := m.load(vectorId)
	if err != nil {
		return nil, err
	}
	if err := m.authPayee(ctx, v, md); err != nil {
		return nil, err
	}
	if v.PayeeRevenueHasBeenWithdrawn {
		return nil, ErrFundsAlreadyWithdrawn
	}
	if !v.AuctionExhausted && !inFPP(v, ctx.Timestamp) {
		return nil, ErrAuctionStillDynamic
	}

	idx := int(v.NumPrices) - 1
	if v.AuctionExhausted {
		idx = int(v.LowestPriceSoldAtIndex)
	}
	price := pricing.PriceAt(table, int(v.BytesPerPrice), idx)
	amount := new(big.Int).Mul(price, new(big.Int).SetUint64(v.CurrentSupply))
	if amount.Cmp(v.sales()) > 0 {
		amount = new(big.Int).Set(v.sales())
	}
	platformCut := new(big.Int).Div(new(big.Int).Mul(amount, big.NewInt(5)), big.NewInt(100))
	payeeCut := new(big.Int).Sub(amount, platformCut)
	if err := m.Backend.Transfer(m.Addr, v.PaymentRecipient, payeeCut); err != nil {
		return nil, err
	}
	if err := m.Backend.Transfer(m.Addr, m.Platform, platformCut); err != nil {
		return nil, err
	}

	v.LowestPriceSoldAtIndex = uint32(idx)
	v.PayeeRevenueHasBeenWithdrawn = true
	rec, err := Pack(v)
	if err != nil {
		return nil, err
	}
	m.vectors[vectorId] = rec

	m.Sink.Auction(&model.AuctionEvent{
		Kind: "funds_withdrawn", VectorId: string(vectorId), Bidder: ctx.Sender,
		Amount: types.NewBigInt(amount), Timestamp: types.Uint64(ctx.Timestamp),
	})
	m.Sink.Payment(&model.PaymentEvent{
		Kind: "withdrawal", Currency: types.ZeroAddress,
		From: m.Addr, To: v.PaymentRecipient,
		Amount: types.NewBigInt(payeeCut), VectorId: string(vectorId),
		Timestamp: types.Uint64(ctx.Timestamp),
	})
	return amount, nil
}

// UpdateVector replaces the auction configuration. Once a sale happened the
// clearing mechanism is locked: only the payment recipient, end time, per
// user cap and per transaction cap may still change.
func (m *Mechanic) UpdateVector(ctx model.TxContext, vectorId types.Hash, md *mech.VectorMetadata,
	nv *Vector, newPrices []*big.Int) error {

	cur, table, err := m.load(vectorId)
	if err != nil {
		return err
	}
	if err := m.authPayee(ctx, cur, md); err != nil {
		return err
	}

	updated := *cur
	updated.PaymentRecipient = nv.PaymentRecipient
	updated.EndTimestamp = nv.EndTimestamp
	updated.MaxUserClaimableViaVector = nv.MaxUserClaimableViaVector
	updated.TokenLimitPerTx = nv.TokenLimitPerTx

	if cur.CurrentSupply > 0 {
		if nv.StartTimestamp != cur.StartTimestamp ||
			nv.PeriodDuration != cur.PeriodDuration ||
			nv.MaxTotalClaimableViaVector != cur.MaxTotalClaimableViaVector ||
			newPrices != nil {
			return ErrSaleStarted
		}
	} else {
		updated.StartTimestamp = nv.StartTimestamp
		updated.PeriodDuration = nv.PeriodDuration
		updated.MaxTotalClaimableViaVector = nv.MaxTotalClaimableViaVector
		if newPrices != nil {
			updated.BytesPerPrice = nv.BytesPerPrice
			updated.NumPrices = uint32(len(newPrices))
			table, err = pricing.Pack(newPrices, int(nv.BytesPerPrice))
			if err != nil {
				return err
			}
		}
	}
	if err := validate(&updated, table); err != nil {
		return err
	}
	rec, err := Pack(&updated)
	if err != nil {
		return err
	}
	m.vectors[vectorId] = rec
	m.tables[vectorId] = table
	return nil
}

func (m *Mechanic) authPayee(ctx model.TxContext, v *Vector, md *mech.VectorMetadata) error {
	if ctx.Sender == v.PaymentRecipient || ctx.Sender == md.Collection {
		return nil
	}
	coll, err := m.Backend.Collection(md.Collection)
	if err != nil {
		return err
	}
	owner, err := coll.Owner()
	if err != nil {
		return err
	}
	if ctx.Sender != owner {
		return ErrNotPayee
	}
	return nil
}

func inFPP(v *Vector, ts uint64) bool {
	return priceIndex(v, ts) == int(v.NumPrices)-1
}

// State is the introspection view of a running auction.
type State struct {
	Vector        *Vector  `json:"vector"`
	CurrentPrice  *big.Int `json:"currentPrice"`
	PriceIndex    int      `json:"priceIndex"`
	PayeePayout   *big.Int `json:"payeePayout"` //withdrawable at the clearing price, zero once withdrawn
	EscrowBalance *big.Int `json:"escrowBalance"`
	InFPP         bool     `json:"inFPP"`
	Exhausted     bool     `json:"exhausted"`
}

// GetVectorState reports price, payout and phase at ts.
func (m *Mechanic) GetVectorState(vectorId types.Hash, ts uint64) (*State, error) {
	v, table, err := m.load(vectorId)
	if err != nil {
		return nil, err
	}
	idx := priceIndex(v, ts)
	payout := new(big.Int)
	if !v.PayeeRevenueHasBeenWithdrawn {
		price := pricing.PriceAt(table, int(v.BytesPerPrice), clearingIndex(v, ts))
		payout = new(big.Int).Mul(price, new(big.Int).SetUint64(v.CurrentSupply))
		if payout.Cmp(v.sales()) > 0 {
			payout = new(big.Int).Set(v.sales())
		}
	}
	return &State{
		Vector:        v,
		CurrentPrice:  pricing.PriceAt(table, int(v.BytesPerPrice), idx),
		PriceIndex:    idx,
		PayeePayout:   payout,
		EscrowBalance: m.Backend.BalanceOf(m.Addr),
		InFPP:         inFPP(v, ts),
		Exhausted:     v.AuctionExhausted,
	}, nil
}
