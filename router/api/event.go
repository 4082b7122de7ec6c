package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"minter/common/utils"
	"minter/service"
)

// Event event index API
func Event(e *gin.Engine) {
	e.GET("/event/mints", pageMints)
	e.GET("/event/payments", pagePayments)
	e.GET("/event/auctions", pageAuctions)
	e.GET("/event/vectors", pageVectorEvents)
	e.GET("/event/mechanics", pageMechanicEvents)
}

// @Tags         Event
// @Summary      query mint events
// @Description  Pages through recorded mints, newest first
// @Accept       json
// @Produce      json
// @Param        vector_id   query  string  false  "Vector id filter"
// @Param        collection  query  string  false  "Collection filter"
// @Param        recipient   query  string  false  "Recipient filter"
// @Param        page        query  string  false  "Page, default 1"
// @Param        page_size   query  string  false  "Page size, default 10"
// @Success      200  {object}  service.MintsRes
// @Failure      400  {object}  service.ErrRes
// @Router       /event/mints [get]
func pageMints(c *gin.Context) {
	req := struct {
		VectorId   string `form:"vector_id"`
		Collection string `form:"collection"`
		Recipient  string `form:"recipient"`
		Page       *int   `form:"page"`
		PageSize   *int   `form:"page_size"`
	}{}
	if err := c.BindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	page, size, err := utils.ParsePage(req.Page, req.PageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	res, err := service.FetchMints(req.VectorId, req.Collection, req.Recipient, page, size)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Tags         Event
// @Summary      query payment events
// @Description  Pages through recorded payments, newest first
// @Accept       json
// @Produce      json
// @Param        vector_id  query  string  false  "Vector id filter"
// @Param        kind       query  string  false  "Payment kind filter"
// @Param        account    query  string  false  "Payer or payee filter"
// @Param        page       query  string  false  "Page, default 1"
// @Param        page_size  query  string  false  "Page size, default 10"
// @Success      200  {object}  service.PaymentsRes
// @Failure      400  {object}  service.ErrRes
// @Router       /event/payments [get]
func pagePayments(c *gin.Context) {
	req := struct {
		VectorId string `form:"vector_id"`
		Kind     string `form:"kind"`
		Account  string `form:"account"`
		Page     *int   `form:"page"`
		PageSize *int   `form:"page_size"`
	}{}
	if err := c.BindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	page, size, err := utils.ParsePage(req.Page, req.PageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	res, err := service.FetchPayments(req.VectorId, req.Kind, req.Account, page, size)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Tags         Event
// @Summary      query auction events
// @Description  Pages through recorded bid activity, newest first
// @Accept       json
// @Produce      json
// @Param        vector_id  query  string  false  "Vector id filter"
// @Param        bidder     query  string  false  "Bidder filter"
// @Param        page       query  string  false  "Page, default 1"
// @Param        page_size  query  string  false  "Page size, default 10"
// @Success      200  {object}  service.AuctionsRes
// @Failure      400  {object}  service.ErrRes
// @Router       /event/auctions [get]
func pageAuctions(c *gin.Context) {
	req := struct {
		VectorId string `form:"vector_id"`
		Bidder   string `form:"bidder"`
		Page     *int   `form:"page"`
		PageSize *int   `form:"page_size"`
	}{}
	if err := c.BindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	page, size, err := utils.ParsePage(req.Page, req.PageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	res, err := service.FetchAuctionEvents(req.VectorId, req.Bidder, page, size)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Tags         Event
// @Summary      query vector lifecycle events
// @Description  Pages through vector creation and update records, newest first
// @Accept       json
// @Produce      json
// @Param        vector_id   query  string  false  "Vector id filter"
// @Param        collection  query  string  false  "Collection filter"
// @Param        page        query  string  false  "Page, default 1"
// @Param        page_size   query  string  false  "Page size, default 10"
// @Success      200  {object}  service.VectorEventsRes
// @Failure      400  {object}  service.ErrRes
// @Router       /event/vectors [get]
func pageVectorEvents(c *gin.Context) {
	req := struct {
		VectorId   string `form:"vector_id"`
		Collection string `form:"collection"`
		Page       *int   `form:"page"`
		PageSize   *int   `form:"page_size"`
	}{}
	if err := c.BindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	page, size, err := utils.ParsePage(req.Page, req.PageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	res, err := service.FetchVectorEvents(req.VectorId, req.Collection, page, size)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Tags         Event
// @Summary      query mechanic lifecycle events
// @Description  Pages through mechanic registration and pause records, newest first
// @Accept       json
// @Produce      json
// @Param        mechanic    query  string  false  "Mechanic address filter"
// @Param        collection  query  string  false  "Collection filter"
// @Param        page        query  string  false  "Page, default 1"
// @Param        page_size   query  string  false  "Page size, default 10"
// @Success      200  {object}  service.MechanicEventsRes
// @Failure      400  {object}  service.ErrRes
// @Router       /event/mechanics [get]
func pageMechanicEvents(c *gin.Context) {
	req := struct {
		Mechanic   string `form:"mechanic"`
		Collection string `form:"collection"`
		Page       *int   `form:"page"`
		PageSize   *int   `form:"page_size"`
	}{}
	if err := c.BindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	page, size, err := utils.ParsePage(req.Page, req.PageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	res, err := service.FetchMechanicEvents(req.Mechanic, req.Collection, page, size)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
