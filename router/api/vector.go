package api

import (
	"math/big"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"minter/service"
	"minter/vector"
)

// Vector abridged vector API
func Vector(e *gin.Engine) {
	e.POST("/vector", createVector)
	e.GET("/vector/:id", getVector)
	e.PUT("/vector/:id", updateVector)
	e.DELETE("/vector/:id", deleteVector)
	e.POST("/vector/:id/mint", mintVector)
	e.POST("/vector/:id/freeze", freezeVector)
	e.POST("/vector/:id/metadata", setVectorMetadata)
	e.GET("/vector/:id/claimed", vectorUserClaimed)
}

func vectorId(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return 0, false
	}
	return id, true
}

// @Tags         Vector
// @Summary      create an abridged vector
// @Description  Registers a sequential sale vector; the caller must be the collection or its owner
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]uint64
// @Failure      400  {object}  service.ErrRes
// @Router       /vector [post]
func createVector(c *gin.Context) {
	req := struct {
		TxReq
		Vector vector.Vector `json:"vector"`
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
	id, err := service.Engine.CreateVector(ctx, &req.Vector)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// @Tags         Vector
// @Summary      query an abridged vector
// @Description  Returns the vector record plus its pause bit and flexible data word
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Vector id"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  service.ErrRes
// @Router       /vector/{id} [get]
func getVector(c *gin.Context) {
	id, ok := vectorId(c)
	if !ok {
		return
	}
	v, paused, flex, err := service.Engine.GetVector(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vector": v, "paused": paused, "flexibleData": flex.String()})
}

// @Tags         Vector
// @Summary      update an abridged vector
// @Description  Applies the masked fields, rejecting the whole update if any targeted field is frozen
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Vector id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /vector/{id} [put]
func updateVector(c *gin.Context) {
	id, ok := vectorId(c)
	if !ok {
		return
	}
	req := struct {
		TxReq
		Vector vector.Vector `json:"vector"`
		Mask   uint16        `json:"mask"`
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
	if err := service.Engine.UpdateVector(ctx, id, &req.Vector, req.Mask); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Vector
// @Summary      delete an abridged vector
// @Description  Removes the vector unless deletion is frozen
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Vector id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /vector/{id} [delete]
func deleteVector(c *gin.Context) {
	id, ok := vectorId(c)
	if !ok {
		return
	}
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
	if err := service.Engine.DeleteVector(ctx, id); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Vector
// @Summary      mint from an abridged vector
// @Description  Mints sequential tokens, settling sale price and protocol fee; attached value must equal total plus fee exactly
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Vector id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /vector/{id}/mint [post]
func mintVector(c *gin.Context) {
	id, ok := vectorId(c)
	if !ok {
		return
	}
	req := struct {
		TxReq
		Recipient string `json:"recipient"`
		NumToMint uint32 `json:"numToMint"`
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
	if err := service.Engine.MintVector(ctx, id, addr(req.Recipient), req.NumToMint); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Vector
// @Summary      freeze vector fields
// @Description  Makes the masked fields permanently immutable
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Vector id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /vector/{id}/freeze [post]
func freezeVector(c *gin.Context) {
	id, ok := vectorId(c)
	if !ok {
		return
	}
	req := struct {
		TxReq
		Mask uint16 `json:"mask"`
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
	if err := service.Engine.FreezeVector(ctx, id, req.Mask); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Vector
// @Summary      set vector metadata
// @Description  Packs the pause bit and the 127 bit flexible data word; bit 0 of the flexible data requests the creator reward fee split
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Vector id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /vector/{id}/metadata [post]
func setVectorMetadata(c *gin.Context) {
	id, ok := vectorId(c)
	if !ok {
		return
	}
	req := struct {
		TxReq
		Paused       bool   `json:"paused"`
		FlexibleData string `json:"flexibleData"`
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
	flex := new(big.Int)
	if req.FlexibleData != "" {
		if _, ok := flex.SetString(req.FlexibleData, 0); !ok {
			c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: "bad flexible data"})
			return
		}
	}
	if err := service.Engine.SetVectorMetadata(ctx, id, req.Paused, flex); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Vector
// @Summary      query per user claimed count
// @Description  Reports how many tokens the cap accounting identity claimed on this vector
// @Accept       json
// @Produce      json
// @Param        id    path      string  true  "Vector id"
// @Param        user  query     string  true  "Cap accounting identity"
// @Success      200  {object}  map[string]uint32
// @Failure      400  {object}  service.ErrRes
// @Router       /vector/{id}/claimed [get]
func vectorUserClaimed(c *gin.Context) {
	id, ok := vectorId(c)
	if !ok {
		return
	}
	claimed := service.Engine.VectorUserClaimed(id, addr(c.Query("user")))
	c.JSON(http.StatusOK, gin.H{"claimed": claimed})
}
