package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"minter/common/types"
	"minter/common/utils"
	"minter/ranked"
	"minter/service"
)

// Ranked ranked auction API
func Ranked(e *gin.Engine) {
	e.GET("/ranked/:id", getRanked)
	e.GET("/ranked/:id/bid/:bidId", getRankedBid)
	e.GET("/ranked/:id/bids", getRankedUserBids)
	e.POST("/ranked/:id/bid/:bidId", updateRankedBid)
	e.POST("/ranked/reclaim", reclaimRankedBid)
	e.POST("/ranked/earnings", withdrawRankedEarnings)
	e.POST("/ranked/mint_rebate", rankedMintWithRebate)
	e.POST("/ranked/sign/reclaim", signReclaimBid)
	e.POST("/ranked/sign/earnings", signEarnings)
	e.POST("/ranked/sign/mint_rebate", signMintWithRebate)
}

// @Tags         Ranked
// @Summary      query a ranked auction
// @Description  Returns the auction record with its bid count and validity hash
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Mechanic vector id"
// @Success      200  {object}  ranked.Vector
// @Failure      400  {object}  service.ErrRes
// @Router       /ranked/{id} [get]
func getRanked(c *gin.Context) {
	v, err := service.Engine.RankedVector(types.Hash(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Tags         Ranked
// @Summary      query one bid
// @Description  Returns a bid by its sequential id
// @Accept       json
// @Produce      json
// @Param        id     path      string  true  "Mechanic vector id"
// @Param        bidId  path      string  true  "Bid id"
// @Success      200  {object}  ranked.Bid
// @Failure      400  {object}  service.ErrRes
// @Router       /ranked/{id}/bid/{bidId} [get]
func getRankedBid(c *gin.Context) {
	bidId, err := strconv.ParseUint(c.Param("bidId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	b, err := service.Engine.RankedBid(types.Hash(c.Param("id")), bidId)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Tags         Ranked
// @Summary      query a user's bids
// @Description  Returns the bid ids a user placed on an auction
// @Accept       json
// @Produce      json
// @Param        id    path   string  true  "Mechanic vector id"
// @Param        user  query  string  true  "Bidder address"
// @Success      200  {object}  map[string][]uint64
// @Failure      400  {object}  service.ErrRes
// @Router       /ranked/{id}/bids [get]
func getRankedUserBids(c *gin.Context) {
	ids := service.Engine.RankedUserBids(types.Hash(c.Param("id")), addr(c.Query("user")))
	c.JSON(http.StatusOK, gin.H{"bidIds": ids})
}

// @Tags         Ranked
// @Summary      raise a bid
// @Description  Raises an existing bid; the attached value must cover exactly the difference
// @Accept       json
// @Produce      json
// @Param        id     path      string  true  "Mechanic vector id"
// @Param        bidId  path      string  true  "Bid id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /ranked/{id}/bid/{bidId} [post]
func updateRankedBid(c *gin.Context) {
	bidId, err := strconv.ParseUint(c.Param("bidId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	req := struct {
		TxReq
		NewAmount string `json:"newAmount"`
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
	amount, err := utils.ParseBigInt(req.NewAmount)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	if err := service.Engine.UpdateRankedBid(ctx, types.Hash(c.Param("id")), bidId, amount); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Ranked
// @Summary      reclaim a bid
// @Description  Refunds an outbid or invalid bid per the platform signed settlement claim
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /ranked/reclaim [post]
func reclaimRankedBid(c *gin.Context) {
	req := struct {
		TxReq
		Claim     ranked.ReclaimBidClaim `json:"claim"`
		Signature string                 `json:"signature"`
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
	if err := service.Engine.ReclaimRankedBid(ctx, &req.Claim, req.Signature); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Ranked
// @Summary      withdraw auction earnings
// @Description  Releases the signed auction revenue to the payee and platform, once
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /ranked/earnings [post]
func withdrawRankedEarnings(c *gin.Context) {
	req := struct {
		TxReq
		Claim     ranked.EarningsClaim `json:"claim"`
		Signature string               `json:"signature"`
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
	if err := service.Engine.WithdrawRankedEarnings(ctx, &req.Claim, req.Signature); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Ranked
// @Summary      settle a winning bid
// @Description  Mints to the winning bidder and refunds the overage above the clearing charge
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /ranked/mint_rebate [post]
func rankedMintWithRebate(c *gin.Context) {
	req := struct {
		TxReq
		Claim     ranked.MintWithRebateClaim `json:"claim"`
		Signature string                     `json:"signature"`
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
	if err := service.Engine.RankedMintWithRebate(ctx, &req.Claim, req.Signature); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Ranked
// @Summary      sign a reclaim settlement
// @Description  Signs the bid reclaim claim with the platform key
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /ranked/sign/reclaim [post]
func signReclaimBid(c *gin.Context) {
	var claim ranked.ReclaimBidClaim
	if err := c.BindJSON(&claim); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	sig, err := service.SignReclaimBid(&claim)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"signature": sig})
}

// @Tags         Ranked
// @Summary      sign an earnings settlement
// @Description  Signs the earnings withdrawal claim with the platform key
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /ranked/sign/earnings [post]
func signEarnings(c *gin.Context) {
	var claim ranked.EarningsClaim
	if err := c.BindJSON(&claim); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	sig, err := service.SignEarnings(&claim)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"signature": sig})
}

// @Tags         Ranked
// @Summary      sign a winning bid settlement
// @Description  Signs the mint with rebate claim with the platform key
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /ranked/sign/mint_rebate [post]
func signMintWithRebate(c *gin.Context) {
	var claim ranked.MintWithRebateClaim
	if err := c.BindJSON(&claim); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	sig, err := service.SignMintWithRebate(&claim)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"signature": sig})
}
