package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"minter/common/types"
	"minter/gated"
	"minter/service"
)

// Gated off-chain gated claim API
func Gated(e *gin.Engine) {
	e.POST("/gated/mint", gatedMint)
	e.POST("/gated/mint_edition", gatedMintEdition)
	e.POST("/gated/series_mint", gatedSeriesMint)
	e.POST("/gated/sign", signGatedClaim)
	e.POST("/gated/sign_series", signGatedSeriesClaim)
	e.GET("/gated/nonce_used", gatedNonceUsed)
	e.GET("/gated/claimed", gatedClaimed)
}

type gatedMintReq struct {
	TxReq
	Claim     gated.Claim `json:"claim"`
	Signature string      `json:"signature"`
	Recipient string      `json:"recipient"`
}

func runGatedMint(c *gin.Context, edition bool) {
	var req gatedMintReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	ctx, err := req.Ctx()
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	if edition {
		err = service.Engine.GatedMintEdition(ctx, &req.Claim, req.Signature, addr(req.Recipient))
	} else {
		err = service.Engine.GatedMint(ctx, &req.Claim, req.Signature, addr(req.Recipient))
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Gated
// @Summary      redeem a gated claim
// @Description  Verifies the executor signature and mints the claim's sequential tokens
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /gated/mint [post]
func gatedMint(c *gin.Context) { runGatedMint(c, false) }

// @Tags         Gated
// @Summary      redeem a gated claim against its edition
// @Description  Verifies the executor signature and mints into the claim's edition
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /gated/mint_edition [post]
func gatedMintEdition(c *gin.Context) { runGatedMint(c, true) }

// @Tags         Gated
// @Summary      redeem a series claim for chosen tokens
// @Description  Verifies the executor signature and mints the specific token ids
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /gated/series_mint [post]
func gatedSeriesMint(c *gin.Context) {
	req := struct {
		TxReq
		Claim     gated.SeriesClaim `json:"claim"`
		Signature string            `json:"signature"`
		Recipient string            `json:"recipient"`
		TokenIds  []uint64          `json:"tokenIds"`
	}{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	ctx, err := req.Ctx()
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	if err := service.Engine.GatedSeriesMint(ctx, &req.Claim, req.Signature, addr(req.Recipient), req.TokenIds); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Gated
// @Summary      sign a gated claim
// @Description  Signs the claim with the platform executor key
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /gated/sign [post]
func signGatedClaim(c *gin.Context) {
	var claim gated.Claim
	if err := c.BindJSON(&claim); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	sig, err := service.SignGatedClaim(&claim)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"signature": sig})
}

// @Tags         Gated
// @Summary      sign a series claim
// @Description  Signs the choose-token claim with the platform executor key
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /gated/sign_series [post]
func signGatedSeriesClaim(c *gin.Context) {
	var claim gated.SeriesClaim
	if err := c.BindJSON(&claim); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	sig, err := service.SignGatedSeriesClaim(&claim)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"signature": sig})
}

// @Tags         Gated
// @Summary      query nonce consumption
// @Description  Reports whether a claim nonce was already redeemed on a vector
// @Accept       json
// @Produce      json
// @Param        vector_id  query  string  true  "Off-chain vector id"
// @Param        nonce      query  string  true  "Claim nonce"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  service.ErrRes
// @Router       /gated/nonce_used [get]
func gatedNonceUsed(c *gin.Context) {
	used := service.Engine.NonceUsed(types.Hash(c.Query("vector_id")), types.Hash(c.Query("nonce")))
	c.JSON(http.StatusOK, gin.H{"used": used})
}

// @Tags         Gated
// @Summary      query claimed counts
// @Description  Reports the vector total and per user claimed counts
// @Accept       json
// @Produce      json
// @Param        vector_id  query  string  true   "Off-chain vector id"
// @Param        user       query  string  false  "Claimer address"
// @Success      200  {object}  map[string]uint64
// @Failure      400  {object}  service.ErrRes
// @Router       /gated/claimed [get]
func gatedClaimed(c *gin.Context) {
	id := types.Hash(c.Query("vector_id"))
	res := gin.H{"total": service.Engine.GatedVectorClaimed(id)}
	if user := c.Query("user"); user != "" {
		res["user"] = service.Engine.GatedUserClaimed(id, addr(user))
	}
	c.JSON(http.StatusOK, res)
}
