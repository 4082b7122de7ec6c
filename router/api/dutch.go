package api

import (
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"minter/common/types"
	"minter/common/utils"
	"minter/dutch"
	"minter/service"
)

// Dutch discrete dutch auction API
func Dutch(e *gin.Engine) {
	e.GET("/dutch/:id/state", dutchState)
	e.GET("/dutch/:id/user", dutchUser)
	e.PUT("/dutch/:id", updateDutch)
	e.POST("/dutch/:id/rebate", dutchRebate)
	e.POST("/dutch/:id/withdraw", dutchWithdraw)
}

// @Tags         Dutch
// @Summary      query auction state
// @Description  Returns the record plus current price, payee payout, escrow balance and phase booleans at ts
// @Accept       json
// @Produce      json
// @Param        id  path   string  true   "Mechanic vector id"
// @Param        ts  query  string  false  "Timestamp in seconds, empty is now"
// @Success      200  {object}  dutch.State
// @Failure      400  {object}  service.ErrRes
// @Router       /dutch/{id}/state [get]
func dutchState(c *gin.Context) {
	ts := uint64(time.Now().Unix())
	if q := c.Query("ts"); q != "" {
		v, err := strconv.ParseUint(q, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
			return
		}
		ts = v
	}
	st, err := service.Engine.DutchState(types.Hash(c.Param("id")), ts)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Tags         Dutch
// @Summary      query a buyer's ledger
// @Description  Returns the tokens bought, rebate count and total posted value of one buyer
// @Accept       json
// @Produce      json
// @Param        id    path   string  true  "Mechanic vector id"
// @Param        user  query  string  true  "Buyer address"
// @Success      200  {object}  dutch.UserInfo
// @Failure      400  {object}  service.ErrRes
// @Router       /dutch/{id}/user [get]
func dutchUser(c *gin.Context) {
	info := service.Engine.DutchUser(types.Hash(c.Param("id")), addr(c.Query("user")))
	c.JSON(http.StatusOK, info)
}

// @Tags         Dutch
// @Summary      update an auction
// @Description  Replaces the configuration; once sales started only recipient, end, user cap and per transaction limit stay mutable
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Mechanic vector id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /dutch/{id} [put]
func updateDutch(c *gin.Context) {
	req := struct {
		TxReq
		Vector dutch.Vector `json:"vector"`
		Prices []string     `json:"prices"`
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
	prices := make([]*big.Int, 0, len(req.Prices))
	for _, p := range req.Prices {
		v, err := utils.ParseBigInt(p)
		if err != nil {
			c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
			return
		}
		prices = append(prices, v)
	}
	if err := service.Engine.UpdateDutchVector(ctx, types.Hash(c.Param("id")), &req.Vector, prices); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Dutch
// @Summary      claim a rebate
// @Description  Pays the buyer back down to the clearing price; repeat calls pay nothing further
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Mechanic vector id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /dutch/{id}/rebate [post]
func dutchRebate(c *gin.Context) {
	req := struct {
		TxReq
		User string `json:"user"` //buyer, empty defaults to sender
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
	user := addr(req.User)
	if req.User == "" {
		user = ctx.Sender
	}
	payout, err := service.Engine.DutchRebate(ctx, types.Hash(c.Param("id")), user)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payout": payout.String()})
}

// @Tags         Dutch
// @Summary      withdraw auction revenue
// @Description  Releases the clearing price revenue to the payee once the auction reached its final phase
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Mechanic vector id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /dutch/{id}/withdraw [post]
func dutchWithdraw(c *gin.Context) {
	var req TxReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	ctx, err := req.Ctx()
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	amount, err := service.Engine.DutchWithdrawFunds(ctx, types.Hash(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": amount.String()})
}
