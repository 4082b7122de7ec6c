package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"minter/common/utils"
	"minter/service"
)

// Admin platform administration API
func Admin(e *gin.Engine) {
	e.POST("/admin/executor", setExecutor)
	e.GET("/admin/executor", getExecutor)
	e.POST("/admin/erc20_fee", setERC20Fee)
	e.POST("/admin/currency_pool", setCurrencyPool)
	e.POST("/admin/gasless", setGasless)
	e.POST("/admin/subsidize", subsidize)
	e.POST("/admin/withdraw_fees", withdrawFees)
	e.POST("/referrer", setReferrer)
	e.GET("/referrer", getReferrer)
	e.GET("/fee/quote", quoteMintFee)
}

// @Tags         Admin
// @Summary      add or remove an executor
// @Description  Grants or revokes the right to sign gated claims; platform only
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /admin/executor [post]
func setExecutor(c *gin.Context) {
	req := struct {
		TxReq
		Executor string `json:"executor"`
		Remove   bool   `json:"remove"`
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
	if req.Remove {
		err = service.Engine.RemoveExecutor(ctx, addr(req.Executor))
	} else {
		err = service.Engine.AddExecutor(ctx, addr(req.Executor))
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Admin
// @Summary      check an executor
// @Description  Returns whether the address may sign gated claims
// @Accept       json
// @Produce      json
// @Param        address  query  string  true  "Executor address"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  service.ErrRes
// @Router       /admin/executor [get]
func getExecutor(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"isExecutor": service.Engine.IsExecutor(addr(c.Query("address")))})
}

// @Tags         Admin
// @Summary      allow an ERC-20 mint fee currency
// @Description  Sets the flat per-token mint fee for a currency; platform only
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /admin/erc20_fee [post]
func setERC20Fee(c *gin.Context) {
	req := struct {
		TxReq
		Currency string `json:"currency"`
		Fee      string `json:"fee"`
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
	fee, err := utils.ParseBigInt(req.Fee)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	if err := service.Engine.SetERC20Fee(ctx, addr(req.Currency), fee); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Admin
// @Summary      bind a currency to a pricing pool
// @Description  Points a fee currency at the pool used to quote its mint fee; platform only
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /admin/currency_pool [post]
func setCurrencyPool(c *gin.Context) {
	req := struct {
		TxReq
		Currency string `json:"currency"`
		Pool     string `json:"pool"`
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
	if err := service.Engine.SetCurrencyPool(ctx, addr(req.Currency), addr(req.Pool)); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Admin
// @Summary      waive fees for a mechanic
// @Description  Marks a mechanic address as gasless so its mints skip the mint fee; platform only
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /admin/gasless [post]
func setGasless(c *gin.Context) {
	req := struct {
		TxReq
		Mechanic string `json:"mechanic"`
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
	if err := service.Engine.SetGasless(ctx, addr(req.Mechanic)); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Admin
// @Summary      subsidize a minter
// @Description  Waives the mint fee for one minter on one vector; platform only
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /admin/subsidize [post]
func subsidize(c *gin.Context) {
	req := struct {
		TxReq
		VectorId string `json:"vectorId"`
		Minter   string `json:"minter"`
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
	if err := service.Engine.Subsidize(ctx, req.VectorId, addr(req.Minter)); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Admin
// @Summary      withdraw collected mint fees
// @Description  Moves accrued mint fees from the collector to the platform payout; platform only
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /admin/withdraw_fees [post]
func withdrawFees(c *gin.Context) {
	req := struct {
		TxReq
		Currency string `json:"currency"`
		Amount   string `json:"amount"`
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
	amount, err := utils.ParseBigInt(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	if err := service.Engine.WithdrawFees(ctx, addr(req.Currency), amount); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Admin
// @Summary      bind a referrer
// @Description  Binds a referrer to the transaction origin for future mint fee splits
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /referrer [post]
func setReferrer(c *gin.Context) {
	req := struct {
		TxReq
		Referrer string `json:"referrer"`
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
	service.Engine.SetReferrer(ctx, addr(req.Referrer))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Admin
// @Summary      query a bound referrer
// @Description  Returns the referrer bound to an origin address, zero if none
// @Accept       json
// @Produce      json
// @Param        origin  query  string  true  "Origin address"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /referrer [get]
func getReferrer(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"referrer": string(service.Engine.Referrer(addr(c.Query("origin"))))})
}

// @Tags         Admin
// @Summary      quote the mint fee
// @Description  Returns the mint fee a minter would pay for a number of tokens
// @Accept       json
// @Produce      json
// @Param        vectorId  query  string  true   "Vector id"
// @Param        num       query  int     true   "Number of tokens"
// @Param        minter    query  string  true   "Minter address"
// @Param        currency  query  string  false  "Fee currency, zero address for native"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /fee/quote [get]
func quoteMintFee(c *gin.Context) {
	num, err := strconv.ParseUint(c.DefaultQuery("num", "1"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	fee, err := service.Engine.QuoteMintFee(c.Query("vectorId"), num, addr(c.Query("minter")), addr(c.Query("currency")))
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"fee": fee.String()})
}
