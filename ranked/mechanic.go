package ranked

import (
	"errors"
	"math/big"

	"minter/common/model"
	"minter/common/types"
	"minter/common/utils"
	"minter/mech"
)

// bids arriving this close to the end push the end out to now plus the window
const antiSnipeWindow = 300

var (
	ErrAuctionNotOpen    = errors.New("auction has not started")
	ErrAuctionClosed     = errors.New("auction has ended")
	ErrAuctionStillOpen  = errors.New("auction is still accepting bids")
	ErrBadWindow         = errors.New("auction window is invalid")
	ErrBidBelowReserve   = errors.New("bid below the reserve")
	ErrBidNotFound       = errors.New("bid not found")
	ErrNotBidder         = errors.New("caller is not the bidder")
	ErrBidderMismatch    = errors.New("claim bidder does not match the bid")
	ErrBidTooLow         = errors.New("updated bid must be strictly greater")
	ErrPaymentMismatch   = errors.New("attached value does not match the bid difference")
	ErrBidSettled        = errors.New("bid already settled")
	ErrClaimUsed         = errors.New("settlement claim already used")
	ErrClaimExpired      = errors.New("settlement claim has expired")
	ErrInvalidSignature  = errors.New("settlement claim signature is invalid")
	ErrEarningsWithdrawn = errors.New("auction earnings already withdrawn")
	ErrRefundExceedsBid  = errors.New("refund exceeds the escrowed bid")
	ErrTotalCapExceeded  = errors.New("bid would exceed the vector total cap")
	ErrUserCapExceeded   = errors.New("bid would exceed the per user cap")
	ErrNonNativeCurrency = errors.New("ranked auctions settle in the native token only")
)

// Vector is one ranked auction. ActionId increments on every mutation so
// off-chain consumers can order the bid history.
type Vector struct {
	PaymentRecipient           types.Address `json:"paymentRecipient"`
	Currency                   types.Address `json:"currency"` //only the native sentinel is accepted
	StartTimestamp             uint64        `json:"startTimestamp"`
	EndTimestamp               uint64        `json:"endTimestamp"`
	MaxEndTimestamp            uint64        `json:"maxEndTimestamp"` //zero leaves anti-snipe extension unbounded
	ReserveBid                 *big.Int      `json:"reserveBid"`
	MaxTotalClaimableViaVector uint64        `json:"maxTotalClaimableViaVector"` //zero is unlimited
	MaxUserClaimableViaVector  uint64        `json:"maxUserClaimableViaVector"`  //zero is unlimited
	LatestBidId                uint64        `json:"latestBidId"`
	ActionId                   uint64        `json:"actionId"`
	ValidityHash               types.Hash    `json:"validityHash"`
	EarningsWithdrawn          bool          `json:"earningsWithdrawn"`
}

func (v *Vector) reserve() *big.Int {
	if v.ReserveBid == nil {
		return new(big.Int)
	}
	return v.ReserveBid
}

// Bid is one escrowed bid. Settled flips when the bid is reclaimed or wins a
// mint, closing it to further settlement.
type Bid struct {
	Bidder  types.Address `json:"bidder"`
	Amount  *big.Int      `json:"amount"`
	Settled bool          `json:"settled"`
}

type bidKey struct {
	vectorId types.Hash
	bidId    uint64
}

type userKey struct {
	vectorId types.Hash
	user     types.Address
}

// Mechanic escrows bids under its own ledger identity and verifies platform
// signed settlement claims against the salted domain.
type Mechanic struct {
	mech.Client
	Addr types.Address

	domain Domain
	signer types.Address

	vectors    map[types.Hash]*Vector
	bids       map[bidKey]*Bid
	userBids   map[userKey][]uint64
	usedClaims map[types.Hash]bool
}

func New(addr types.Address, client mech.Client, domain Domain, signer types.Address) *Mechanic {
	return &Mechanic{
		Client:     client,
		Addr:       addr,
		domain:     domain,
		signer:     signer,
		vectors:    map[types.Hash]*Vector{},
		bids:       map[bidKey]*Bid{},
		userBids:   map[userKey][]uint64{},
		usedClaims: map[types.Hash]bool{},
	}
}

// Domain returns the settlement claim domain.
func (m *Mechanic) Domain() Domain { return m.domain }

// CreateVector stores a new auction under the registry assigned id. Reached
// only through the manager during mechanic registration.
func (m *Mechanic) CreateVector(ctx model.TxContext, vectorId types.Hash, v *Vector) error {
	if err := m.OnlyManager(ctx); err != nil {
		return err
	}
	if v.EndTimestamp <= v.StartTimestamp {
		return ErrBadWindow
	}
	if v.MaxEndTimestamp != 0 && v.MaxEndTimestamp < v.EndTimestamp {
		return ErrBadWindow
	}
	if v.Currency != "" && v.Currency != types.ZeroAddress {
		return ErrNonNativeCurrency
	}
	nv := *v
	nv.ReserveBid = new(big.Int).Set(v.reserve())
	nv.LatestBidId = 0
	nv.ActionId = 0
	nv.ValidityHash = types.ZeroHash
	nv.EarningsWithdrawn = false
	m.vectors[vectorId] = &nv
	return nil
}

// Get returns a copy of the auction record.
func (m *Mechanic) Get(vectorId types.Hash) (*Vector, error) {
	v, ok := m.vectors[vectorId]
	if !ok {
		return nil, mech.ErrVectorNotFound
	}
	cp := *v
	cp.ReserveBid = new(big.Int).Set(v.reserve())
	return &cp, nil
}

// BidInfo returns a copy of one bid.
func (m *Mechanic) BidInfo(vectorId types.Hash, bidId uint64) (*Bid, error) {
	b, ok := m.bids[bidKey{vectorId, bidId}]
	if !ok {
		return nil, ErrBidNotFound
	}
	cp := *b
	cp.Amount = new(big.Int).Set(b.Amount)
	return &cp, nil
}

// UserBidIds returns the bid ids a user placed on an auction.
func (m *Mechanic) UserBidIds(vectorId types.Hash, user types.Address) []uint64 {
	ids := m.userBids[userKey{vectorId, user}]
	out := make([]uint64, len(ids))
	copy(out, ids)
	return out
}

// chainHash advances the rolling validity hash. Off-chain consumers replay
// the chain from events to audit the complete bid history.
func chainHash(prev types.Hash, vectorId types.Hash, bidId uint64, amount *big.Int) types.Hash {
	return utils.Keccak256Hash(
		prev.Bytes(),
		vectorId.Bytes(),
		utils.U64Bytes(bidId),
		utils.U256Bytes(amount),
	)
}

func (m *Mechanic) open(v *Vector, ts uint64) error {
	if ts < v.StartTimestamp {
		return ErrAuctionNotOpen
	}
	if ts > v.EndTimestamp {
		return ErrAuctionClosed
	}
	return nil
}

// maybeExtend pushes the end time out when a mutation lands inside the
// anti-snipe window.
func (m *Mechanic) maybeExtend(v *Vector, vectorId types.Hash, ts uint64) {
	if v.EndTimestamp-ts >= antiSnipeWindow {
		return
	}
	newEnd := ts + antiSnipeWindow
	if v.MaxEndTimestamp != 0 && newEnd > v.MaxEndTimestamp {
		newEnd = v.MaxEndTimestamp
	}
	if newEnd <= v.EndTimestamp {
		return
	}
	v.EndTimestamp = newEnd
	m.Sink.Auction(&model.AuctionEvent{
		Kind: "lengthened", VectorId: string(vectorId),
		EndTime: types.Uint64(newEnd), Timestamp: types.Uint64(ts),
	})
}

// NumMint enters a bid: the attached value is the bid amount and the
// recipient is the bidder. The amount and data arguments of the mint path
// are unused, tokens only move at settlement.
func (m *Mechanic) NumMint(ctx model.TxContext, vectorId types.Hash, md *mech.VectorMetadata,
	recipient types.Address, numToMint uint32, data []byte) error {

	if err := m.OnlyManager(ctx); err != nil {
		return err
	}
	_, err := m.EnterBid(ctx, vectorId, recipient)
	return err
}

// ChooseMint is not a valid path for ranked auctions.
func (m *Mechanic) ChooseMint(ctx model.TxContext, vectorId types.Hash, md *mech.VectorMetadata,
	recipient types.Address, tokenIds []uint64, data []byte) error {
	return mech.ErrWrongMintPath
}

// EnterBid escrows the attached value as a new bid for bidder.
func (m *Mechanic) EnterBid(ctx model.TxContext, vectorId types.Hash, bidder types.Address) (uint64, error) {
	v, ok := m.vectors[vectorId]
	if !ok {
		return 0, mech.ErrVectorNotFound
	}
	if err := m.open(v, ctx.Timestamp); err != nil {
		return 0, err
	}
	amount := ctx.AttachedValue()
	if amount.Cmp(v.reserve()) < 0 {
		return 0, ErrBidBelowReserve
	}
	if v.MaxTotalClaimableViaVector != 0 && v.LatestBidId+1 > v.MaxTotalClaimableViaVector {
		return 0, ErrTotalCapExceeded
	}
	uk := userKey{vectorId, bidder}
	if v.MaxUserClaimableViaVector != 0 && uint64(len(m.userBids[uk]))+1 > v.MaxUserClaimableViaVector {
		return 0, ErrUserCapExceeded
	}
	if err := m.Backend.Transfer(ctx.Origin, m.Addr, amount); err != nil {
		return 0, err
	}

	v.LatestBidId++
	v.ActionId++
	bidId := v.LatestBidId
	m.bids[bidKey{vectorId, bidId}] = &Bid{Bidder: bidder, Amount: new(big.Int).Set(amount)}
	m.userBids[uk] = append(m.userBids[uk], bidId)
	v.ValidityHash = chainHash(v.ValidityHash, vectorId, bidId, amount)
	m.maybeExtend(v, vectorId, ctx.Timestamp)

	m.Sink.Auction(&model.AuctionEvent{
		Kind: "bid", VectorId: string(vectorId), Bidder: bidder,
		BidId: types.Uint64(bidId), Amount: types.NewBigInt(amount),
		EndTime: types.Uint64(v.EndTimestamp), Timestamp: types.Uint64(ctx.Timestamp),
	})
	return bidId, nil
}

// UpdateBid raises an existing bid to newAmount; the attached value must be
// exactly the difference.
func (m *Mechanic) UpdateBid(ctx model.TxContext, vectorId types.Hash, bidId uint64, newAmount *big.Int) error {
	v, ok := m.vectors[vectorId]
	if !ok {
		return mech.ErrVectorNotFound
	}
	if err := m.open(v, ctx.Timestamp); err != nil {
		return err
	}
	b, ok := m.bids[bidKey{vectorId, bidId}]
	if !ok {
		return ErrBidNotFound
	}
	if b.Bidder != ctx.Sender {
		return ErrNotBidder
	}
	if newAmount == nil || newAmount.Cmp(b.Amount) <= 0 {
		return ErrBidTooLow
	}
	diff := new(big.Int).Sub(newAmount, b.Amount)
	if ctx.AttachedValue().Cmp(diff) != 0 {
		return ErrPaymentMismatch
	}
	if err := m.Backend.Transfer(ctx.Origin, m.Addr, diff); err != nil {
		return err
	}

	b.Amount = new(big.Int).Set(newAmount)
	v.ActionId++
	v.ValidityHash = chainHash(v.ValidityHash, vectorId, bidId, newAmount)
	m.maybeExtend(v, vectorId, ctx.Timestamp)

	m.Sink.Auction(&model.AuctionEvent{
		Kind: "bid_updated", VectorId: string(vectorId), Bidder: b.Bidder,
		BidId: types.Uint64(bidId), Amount: types.NewBigInt(newAmount),
		EndTime: types.Uint64(v.EndTimestamp), Timestamp: types.Uint64(ctx.Timestamp),
	})
	return nil
}

// verifyClaim runs the shared settlement guards and returns the digest to be
// marked used on success.
func (m *Mechanic) verifyClaim(v *Vector, ts uint64, expiry uint64, digest []byte, hexSig string) (types.Hash, error) {
	if ts <= v.EndTimestamp {
		return "", ErrAuctionStillOpen
	}
	if expiry != 0 && ts > expiry {
		return "", ErrClaimExpired
	}
	dh := types.BytesToHash(digest)
	if m.usedClaims[dh] {
		return "", ErrClaimUsed
	}
	sig, err := utils.HexToSig(hexSig)
	if err != nil {
		return "", ErrInvalidSignature
	}
	signer, err := utils.Ecrecover(digest, sig)
	if err != nil || signer != m.signer {
		return "", ErrInvalidSignature
	}
	return dh, nil
}

// ReclaimBid refunds an outbid or invalid bid per the signed claim.
func (m *Mechanic) ReclaimBid(ctx model.TxContext, c *ReclaimBidClaim, hexSig string) error {
	v, ok := m.vectors[c.VectorId]
	if !ok {
		return mech.ErrVectorNotFound
	}
	dh, err := m.verifyClaim(v, ctx.Timestamp, c.ClaimExpiryTimestamp, c.Digest(m.domain), hexSig)
	if err != nil {
		return err
	}
	b, ok := m.bids[bidKey{c.VectorId, c.BidId}]
	if !ok {
		return ErrBidNotFound
	}
	if b.Bidder != c.Bidder {
		return ErrBidderMismatch
	}
	if b.Settled {
		return ErrBidSettled
	}
	if c.Amount == nil || c.Amount.Cmp(b.Amount) > 0 {
		return ErrRefundExceedsBid
	}
	if err := m.Backend.Transfer(m.Addr, b.Bidder, c.Amount); err != nil {
		return err
	}
	b.Settled = true
	v.ActionId++
	m.usedClaims[dh] = true

	m.Sink.Auction(&model.AuctionEvent{
		Kind: "bid_reclaimed", VectorId: string(c.VectorId), Bidder: b.Bidder,
		BidId: types.Uint64(c.BidId), Amount: types.NewBigInt(c.Amount),
		Timestamp: types.Uint64(ctx.Timestamp),
	})
	return nil
}

// WithdrawAuctionEarnings releases the signed aggregate revenue once, split
// 95% to the payment recipient and 5% to the platform.
func (m *Mechanic) WithdrawAuctionEarnings(ctx model.TxContext, c *EarningsClaim, hexSig string) error {
	v, ok := m.vectors[c.VectorId]
	if !ok {
		return mech.ErrVectorNotFound
	}
	dh, err := m.verifyClaim(v, ctx.Timestamp, c.ClaimExpiryTimestamp, c.Digest(m.domain), hexSig)
	if err != nil {
		return err
	}
	if v.EarningsWithdrawn {
		return ErrEarningsWithdrawn
	}
	platformCut := new(big.Int).Div(new(big.Int).Mul(c.Amount, big.NewInt(5)), big.NewInt(100))
	payeeCut := new(big.Int).Sub(c.Amount, platformCut)
	if err := m.Backend.Transfer(m.Addr, v.PaymentRecipient, payeeCut); err != nil {
		return err
	}
	if err := m.Backend.Transfer(m.Addr, m.Platform, platformCut); err != nil {
		return err
	}
	v.EarningsWithdrawn = true
	v.ActionId++
	m.usedClaims[dh] = true

	m.Sink.Auction(&model.AuctionEvent{
		Kind: "funds_withdrawn", VectorId: string(c.VectorId), Bidder: ctx.Sender,
		Amount: types.NewBigInt(c.Amount), Timestamp: types.Uint64(ctx.Timestamp),
	})
	m.Sink.Payment(&model.PaymentEvent{
		Kind: "withdrawal", Currency: types.ZeroAddress,
		From: m.Addr, To: v.PaymentRecipient,
		Amount: types.NewBigInt(payeeCut), VectorId: string(c.VectorId),
		Timestamp: types.Uint64(ctx.Timestamp),
	})
	return nil
}

// MintWithRebate mints to a winning bidder and refunds their escrow above
// the clearing charge. The charge stays escrowed for the earnings claim.
func (m *Mechanic) MintWithRebate(ctx model.TxContext, md *mech.VectorMetadata,
	c *MintWithRebateClaim, hexSig string) error {

	v, ok := m.vectors[c.VectorId]
	if !ok {
		return mech.ErrVectorNotFound
	}
	dh, err := m.verifyClaim(v, ctx.Timestamp, c.ClaimExpiryTimestamp, c.Digest(m.domain), hexSig)
	if err != nil {
		return err
	}
	b, ok := m.bids[bidKey{c.VectorId, c.BidId}]
	if !ok {
		return ErrBidNotFound
	}
	if b.Bidder != c.Bidder {
		return ErrBidderMismatch
	}
	if b.Settled {
		return ErrBidSettled
	}
	if c.ClearingCharge == nil || c.ClearingCharge.Cmp(b.Amount) > 0 {
		return ErrRefundExceedsBid
	}
	refund := new(big.Int).Sub(b.Amount, c.ClearingCharge)
	if refund.Sign() > 0 {
		if err := m.Backend.Transfer(m.Addr, b.Bidder, refund); err != nil {
			return err
		}
	}
	coll, err := m.Backend.Collection(md.Collection)
	if err != nil {
		return err
	}
	if md.IsEditionBased {
		err = coll.MintAmountToRecipient(md.EditionId, b.Bidder, c.MintAmount)
	} else {
		err = coll.MintAmountToOneRecipient(b.Bidder, c.MintAmount)
	}
	if err != nil {
		return err
	}
	b.Settled = true
	v.ActionId++
	m.usedClaims[dh] = true

	m.Sink.Mint(&model.MintEvent{
		Kind: "mechanic", VectorId: string(c.VectorId), Collection: md.Collection,
		Recipient: b.Bidder, User: b.Bidder, Amount: types.Uint64(c.MintAmount),
		Timestamp: types.Uint64(ctx.Timestamp),
	})
	m.Sink.Auction(&model.AuctionEvent{
		Kind: "rebate", VectorId: string(c.VectorId), Bidder: b.Bidder,
		BidId: types.Uint64(c.BidId), Amount: types.NewBigInt(refund),
		Timestamp: types.Uint64(ctx.Timestamp),
	})
	return nil
}
