// Package ranked implements the ranked auction mechanic. Bids are escrowed
// and hash-chained while the auction is open; settlement happens post-close
// through platform signed single-use claims computed off-chain from the
// final ranking.
package ranked

import (
	"math/big"

	"minter/common/types"
	"minter/common/utils"
)

// Domain is the EIP-712 domain settlement claims are bound to. The salt keeps
// these digests disjoint from every other signing surface of the platform.
type Domain struct {
	Name              string
	Version           string
	ChainId           int64
	VerifyingContract types.Address
	Salt              types.Hash
}

var (
	domainTypeHash = utils.Keccak256([]byte(
		"EIP712Domain(string name,string version,uint256 chainId,address verifyingContract,bytes32 salt)"))
	reclaimTypeHash = utils.Keccak256([]byte(
		"ReclaimBid(bytes32 vectorId,uint256 bidId,address bidder,uint256 amount,uint64 claimExpiryTimestamp)"))
	earningsTypeHash = utils.Keccak256([]byte(
		"WithdrawAuctionEarnings(bytes32 vectorId,uint256 amount,uint64 claimExpiryTimestamp)"))
	rebateTypeHash = utils.Keccak256([]byte(
		"MintWithRebate(bytes32 vectorId,uint256 bidId,address bidder,uint64 mintAmount," +
			"uint256 clearingCharge,uint64 claimExpiryTimestamp)"))
)

// Separator computes the salted domain separator hash.
func (d Domain) Separator() []byte {
	return utils.Keccak256(
		domainTypeHash,
		utils.Keccak256([]byte(d.Name)),
		utils.Keccak256([]byte(d.Version)),
		utils.U256Bytes(big.NewInt(d.ChainId)),
		utils.LeftPadBytes(d.VerifyingContract.Bytes(), 32),
		d.Salt.Bytes(),
	)
}

// ReclaimBidClaim refunds the escrowed amount of an outbid or invalid bid.
type ReclaimBidClaim struct {
	VectorId             types.Hash    `json:"vectorId"`
	BidId                uint64        `json:"bidId"`
	Bidder               types.Address `json:"bidder"`
	Amount               *big.Int      `json:"amount"`
	ClaimExpiryTimestamp uint64        `json:"claimExpiryTimestamp"`
}

func (c *ReclaimBidClaim) Digest(d Domain) []byte {
	structHash := utils.Keccak256(
		reclaimTypeHash,
		c.VectorId.Bytes(),
		utils.U64Bytes(c.BidId),
		utils.LeftPadBytes(c.Bidder.Bytes(), 32),
		utils.U256Bytes(c.Amount),
		utils.U64Bytes(c.ClaimExpiryTimestamp),
	)
	return utils.Keccak256([]byte("\x19\x01"), d.Separator(), structHash)
}

// EarningsClaim releases the aggregate auction revenue to the payee, once.
type EarningsClaim struct {
	VectorId             types.Hash `json:"vectorId"`
	Amount               *big.Int   `json:"amount"`
	ClaimExpiryTimestamp uint64     `json:"claimExpiryTimestamp"`
}

func (c *EarningsClaim) Digest(d Domain) []byte {
	structHash := utils.Keccak256(
		earningsTypeHash,
		c.VectorId.Bytes(),
		utils.U256Bytes(c.Amount),
		utils.U64Bytes(c.ClaimExpiryTimestamp),
	)
	return utils.Keccak256([]byte("\x19\x01"), d.Separator(), structHash)
}

// MintWithRebateClaim lets a winning bidder mint and refunds everything they
// escrowed above the clearing charge.
type MintWithRebateClaim struct {
	VectorId             types.Hash    `json:"vectorId"`
	BidId                uint64        `json:"bidId"`
	Bidder               types.Address `json:"bidder"`
	MintAmount           uint64        `json:"mintAmount"`
	ClearingCharge       *big.Int      `json:"clearingCharge"`
	ClaimExpiryTimestamp uint64        `json:"claimExpiryTimestamp"`
}

func (c *MintWithRebateClaim) Digest(d Domain) []byte {
	structHash := utils.Keccak256(
		rebateTypeHash,
		c.VectorId.Bytes(),
		utils.U64Bytes(c.BidId),
		utils.LeftPadBytes(c.Bidder.Bytes(), 32),
		utils.U64Bytes(c.MintAmount),
		utils.U256Bytes(c.ClearingCharge),
		utils.U64Bytes(c.ClaimExpiryTimestamp),
	)
	return utils.Keccak256([]byte("\x19\x01"), d.Separator(), structHash)
}
