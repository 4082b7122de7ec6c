// Package gated implements the off-chain gated claim engine. Claims are
// EIP-712 typed vouchers signed by a platform executor and are never stored;
// only their nonce and the running cap totals survive a successful mint.
package gated

import (
	"math/big"

	"minter/common/types"
	"minter/common/utils"
)

// Claim authorizes one mint of sequential tokens under the signed constraints.
type Claim struct {
	Currency              types.Address `json:"currency"`
	ContractAddress       types.Address `json:"contractAddress"`
	Claimer               types.Address `json:"claimer"`
	PaymentRecipient      types.Address `json:"paymentRecipient"`
	PricePerToken         *big.Int      `json:"pricePerToken"`
	NumTokensToMint       uint64        `json:"numTokensToMint"`
	MaxClaimableViaVector uint64        `json:"maxClaimableViaVector"` //zero is unlimited
	MaxClaimablePerUser   uint64        `json:"maxClaimablePerUser"`   //zero is unlimited
	EditionId             uint64        `json:"editionId"`
	OffchainVectorId      types.Hash    `json:"offchainVectorId"`
	ClaimNonce            types.Hash    `json:"claimNonce"`
	ClaimExpiryTimestamp  uint64        `json:"claimExpiryTimestamp"`
}

// SeriesClaim authorizes a choose-token mint on a series collection. Total
// supply caps are enforced off-chain for series, so the claim instead carries
// a per-transaction cap.
type SeriesClaim struct {
	Currency             types.Address `json:"currency"`
	ContractAddress      types.Address `json:"contractAddress"`
	Claimer              types.Address `json:"claimer"`
	PaymentRecipient     types.Address `json:"paymentRecipient"`
	PricePerToken        *big.Int      `json:"pricePerToken"`
	MaxPerTxn            uint64        `json:"maxPerTxn"`
	MaxClaimableViaVector uint64       `json:"maxClaimableViaVector"`
	MaxClaimablePerUser  uint64        `json:"maxClaimablePerUser"`
	OffchainVectorId     types.Hash    `json:"offchainVectorId"`
	ClaimNonce           types.Hash    `json:"claimNonce"`
	ClaimExpiryTimestamp uint64        `json:"claimExpiryTimestamp"`
}

// Domain is the EIP-712 domain the claims are bound to.
type Domain struct {
	Name              string
	Version           string
	ChainId           int64
	VerifyingContract types.Address
}

var (
	domainTypeHash = utils.Keccak256([]byte(
		"EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"))
	claimTypeHash = utils.Keccak256([]byte(
		"Claim(address currency,address contractAddress,address claimer,address paymentRecipient," +
			"uint256 pricePerToken,uint64 numTokensToMint,uint256 maxClaimableViaVector," +
			"uint256 maxClaimablePerUser,uint256 editionId,bytes32 offchainVectorId," +
			"bytes32 claimNonce,uint64 claimExpiryTimestamp)"))
	seriesClaimTypeHash = utils.Keccak256([]byte(
		"SeriesClaim(address currency,address contractAddress,address claimer,address paymentRecipient," +
			"uint256 pricePerToken,uint64 maxPerTxn,uint64 maxClaimableViaVector," +
			"uint64 maxClaimablePerUser,bytes32 offchainVectorId,bytes32 claimNonce," +
			"uint64 claimExpiryTimestamp)"))
)

// Separator computes the domain separator hash.
func (d Domain) Separator() []byte {
	return utils.Keccak256(
		domainTypeHash,
		utils.Keccak256([]byte(d.Name)),
		utils.Keccak256([]byte(d.Version)),
		utils.U256Bytes(big.NewInt(d.ChainId)),
		utils.LeftPadBytes(d.VerifyingContract.Bytes(), 32),
	)
}

func (c *Claim) price() *big.Int {
	if c.PricePerToken == nil {
		return new(big.Int)
	}
	return c.PricePerToken
}

func (c *SeriesClaim) price() *big.Int {
	if c.PricePerToken == nil {
		return new(big.Int)
	}
	return c.PricePerToken
}

// Digest computes the EIP-712 digest of the claim under the domain.
func (c *Claim) Digest(d Domain) []byte {
	structHash := utils.Keccak256(
		claimTypeHash,
		utils.LeftPadBytes(c.Currency.Bytes(), 32),
		utils.LeftPadBytes(c.ContractAddress.Bytes(), 32),
		utils.LeftPadBytes(c.Claimer.Bytes(), 32),
		utils.LeftPadBytes(c.PaymentRecipient.Bytes(), 32),
		utils.U256Bytes(c.price()),
		utils.U64Bytes(c.NumTokensToMint),
		utils.U64Bytes(c.MaxClaimableViaVector),
		utils.U64Bytes(c.MaxClaimablePerUser),
		utils.U64Bytes(c.EditionId),
		c.OffchainVectorId.Bytes(),
		c.ClaimNonce.Bytes(),
		utils.U64Bytes(c.ClaimExpiryTimestamp),
	)
	return utils.Keccak256([]byte("\x19\x01"), d.Separator(), structHash)
}

// Digest computes the EIP-712 digest of the series claim under the domain.
func (c *SeriesClaim) Digest(d Domain) []byte {
	structHash := utils.Keccak256(
		seriesClaimTypeHash,
		utils.LeftPadBytes(c.Currency.Bytes(), 32),
		utils.LeftPadBytes(c.ContractAddress.Bytes(), 32),
		utils.LeftPadBytes(c.Claimer.Bytes(), 32),
		utils.LeftPadBytes(c.PaymentRecipient.Bytes(), 32),
		utils.U256Bytes(c.price()),
		utils.U64Bytes(c.MaxPerTxn),
		utils.U64Bytes(c.MaxClaimableViaVector),
		utils.U64Bytes(c.MaxClaimablePerUser),
		c.OffchainVectorId.Bytes(),
		c.ClaimNonce.Bytes(),
		utils.U64Bytes(c.ClaimExpiryTimestamp),
	)
	return utils.Keccak256([]byte("\x19\x01"), d.Separator(), structHash)
}
