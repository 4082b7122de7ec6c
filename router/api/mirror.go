package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"minter/service"
)

// Mirror on-chain read-through API
func Mirror(e *gin.Engine) {
	e.GET("/mirror/collection/:addr", mirrorCollection)
	e.GET("/mirror/balance", mirrorBalance)
}

// @Tags         Mirror
// @Summary      read a collection from the chain
// @Description  Reads owner, supply and supply limit of a deployed collection over RPC
// @Accept       json
// @Produce      json
// @Param        addr  path  string  true  "Collection address"
// @Success      200  {object}  service.MirrorCollectionRes
// @Failure      400  {object}  service.ErrRes
// @Router       /mirror/collection/{addr} [get]
func mirrorCollection(c *gin.Context) {
	res, err := service.MirrorCollection(c.Request.Context(), c.Param("addr"))
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Tags         Mirror
// @Summary      read a balance from the chain
// @Description  Reads the native or ERC-20 balance of an account over RPC
// @Accept       json
// @Produce      json
// @Param        account   query  string  true   "Account address"
// @Param        currency  query  string  false  "ERC-20 address, empty or zero for native"
// @Success      200  {object}  service.MirrorBalanceRes
// @Failure      400  {object}  service.ErrRes
// @Router       /mirror/balance [get]
func mirrorBalance(c *gin.Context) {
	res, err := service.MirrorBalance(c.Request.Context(), c.Query("account"), c.Query("currency"))
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
