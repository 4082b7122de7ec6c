package service

import (
	"encoding/hex"

	"minter/common/utils"
	"minter/conf"
	"minter/gated"
	"minter/ranked"
)

// The platform signer backs the off-chain side of the protocol: gated claims
// and ranked settlement claims are issued here and verified by the engine.

func sign(digest []byte) (string, error) {
	sig, err := utils.Sign(digest, conf.PrivateKey)
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(sig), nil
}

// SignGatedClaim signs a gated mint claim under the manager domain.
func SignGatedClaim(c *gated.Claim) (string, error) {
	return sign(c.Digest(Engine.GatedDomain()))
}

// SignGatedSeriesClaim signs a choose-token series claim under the manager domain.
func SignGatedSeriesClaim(c *gated.SeriesClaim) (string, error) {
	return sign(c.Digest(Engine.GatedDomain()))
}

// SignReclaimBid signs a bid reclaim settlement under the ranked domain.
func SignReclaimBid(c *ranked.ReclaimBidClaim) (string, error) {
	return sign(c.Digest(Engine.RankedDomain()))
}

// SignEarnings signs an earnings withdrawal settlement under the ranked domain.
func SignEarnings(c *ranked.EarningsClaim) (string, error) {
	return sign(c.Digest(Engine.RankedDomain()))
}

// SignMintWithRebate signs a winning bid settlement under the ranked domain.
func SignMintWithRebate(c *ranked.MintWithRebateClaim) (string, error) {
	return sign(c.Digest(Engine.RankedDomain()))
}
