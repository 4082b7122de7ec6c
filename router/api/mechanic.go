package api

import (
	"encoding/hex"
	"math/big"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"minter/common/types"
	"minter/common/utils"
	"minter/dutch"
	"minter/mech"
	"minter/ranked"
	"minter/seed"
	"minter/service"
)

// Mechanic mechanic vector API
func Mechanic(e *gin.Engine) {
	e.POST("/mechanic/dutch", registerDutch)
	e.POST("/mechanic/ranked", registerRanked)
	e.POST("/mechanic/seed", registerSeed)
	e.GET("/mechanic/:id", getMechanicVector)
	e.POST("/mechanic/:id/pause", pauseMechanic)
	e.POST("/mechanic/:id/mint_num", mechanicMintNum)
	e.POST("/mechanic/:id/mint_choose", mechanicMintChoose)
	e.GET("/mechanic/:id/seed", getSeedVector)
	e.GET("/mechanic/:id/seed_uses", seedUses)
}

// metadataReq is the registry half of a mechanic registration.
type metadataReq struct {
	Collection     string `json:"collection"`
	EditionId      uint64 `json:"editionId"`
	IsEditionBased bool   `json:"isEditionBased"`
	Seed           string `json:"seed"` //salts the deterministic vector id
}

func (r metadataReq) metadata() (*mech.VectorMetadata, []byte) {
	return &mech.VectorMetadata{
		Collection:     types.Address(r.Collection),
		EditionId:      r.EditionId,
		IsEditionBased: r.IsEditionBased,
	}, []byte(r.Seed)
}

// @Tags         Mechanic
// @Summary      register a dutch auction
// @Description  Registers a discrete dutch auction vector under a deterministic id
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /mechanic/dutch [post]
func registerDutch(c *gin.Context) {
	req := struct {
		TxReq
		metadataReq
		Vector dutch.Vector `json:"vector"`
		Prices []string     `json:"prices"` //decimal price table, descending
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
	md, seedBytes := req.metadata()
	id, err := service.Engine.RegisterDutchVector(ctx, md, seedBytes, &req.Vector, prices)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": string(id)})
}

// @Tags         Mechanic
// @Summary      register a ranked auction
// @Description  Registers a ranked auction vector under a deterministic id
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /mechanic/ranked [post]
func registerRanked(c *gin.Context) {
	req := struct {
		TxReq
		metadataReq
		Vector ranked.Vector `json:"vector"`
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
	md, seedBytes := req.metadata()
	id, err := service.Engine.RegisterRankedVector(ctx, md, seedBytes, &req.Vector)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": string(id)})
}

// @Tags         Mechanic
// @Summary      register a seed mint vector
// @Description  Registers a seed based mint vector under a deterministic id
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /mechanic/seed [post]
func registerSeed(c *gin.Context) {
	req := struct {
		TxReq
		metadataReq
		Vector seed.Vector `json:"vector"`
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
	md, seedBytes := req.metadata()
	id, err := service.Engine.RegisterSeedVector(ctx, md, seedBytes, &req.Vector)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": string(id)})
}

// @Tags         Mechanic
// @Summary      query mechanic vector metadata
// @Description  Returns the registry metadata of a mechanic vector
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Mechanic vector id"
// @Success      200  {object}  mech.VectorMetadata
// @Failure      400  {object}  service.ErrRes
// @Router       /mechanic/{id} [get]
func getMechanicVector(c *gin.Context) {
	md, err := service.Engine.GetMechanicVector(types.Hash(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, md)
}

// @Tags         Mechanic
// @Summary      pause or unpause a mechanic vector
// @Description  Flips the pause bit; the caller must be the collection or its owner
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Mechanic vector id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /mechanic/{id}/pause [post]
func pauseMechanic(c *gin.Context) {
	req := struct {
		TxReq
		Paused bool `json:"paused"`
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
	if err := service.Engine.SetMechanicPaused(ctx, types.Hash(c.Param("id")), req.Paused); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// mintData decodes the optional mechanic payload, hex or raw.
func mintData(s string) []byte {
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "0x") {
		if b, err := hex.DecodeString(s[2:]); err == nil {
			return b
		}
	}
	return []byte(s)
}

// @Tags         Mechanic
// @Summary      number based mechanic mint
// @Description  Routes the mint to the vector's mechanic; for auctions this enters a bid
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Mechanic vector id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /mechanic/{id}/mint_num [post]
func mechanicMintNum(c *gin.Context) {
	req := struct {
		TxReq
		Recipient string `json:"recipient"`
		NumToMint uint32 `json:"numToMint"`
		Data      string `json:"data"` //mechanic payload such as a seed, hex or raw
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
	err = service.Engine.MechanicMintNum(ctx, types.Hash(c.Param("id")), addr(req.Recipient), req.NumToMint, mintData(req.Data))
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Mechanic
// @Summary      choose token mechanic mint
// @Description  Routes a collector's choice mint to the vector's mechanic
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Mechanic vector id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  service.ErrRes
// @Router       /mechanic/{id}/mint_choose [post]
func mechanicMintChoose(c *gin.Context) {
	req := struct {
		TxReq
		Recipient string   `json:"recipient"`
		TokenIds  []uint64 `json:"tokenIds"`
		Data      string   `json:"data"`
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
	err = service.Engine.MechanicMintChoose(ctx, types.Hash(c.Param("id")), addr(req.Recipient), req.TokenIds, mintData(req.Data))
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Tags         Mechanic
// @Summary      query a seed mint vector
// @Description  Returns the seed mint vector record
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Mechanic vector id"
// @Success      200  {object}  seed.Vector
// @Failure      400  {object}  service.ErrRes
// @Router       /mechanic/{id}/seed [get]
func getSeedVector(c *gin.Context) {
	v, err := service.Engine.SeedVector(types.Hash(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Tags         Mechanic
// @Summary      query seed usage
// @Description  Reports how often a seed was consumed on a seed mint vector
// @Accept       json
// @Produce      json
// @Param        id    path   string  true  "Mechanic vector id"
// @Param        seed  query  string  true  "Seed payload, hex or raw"
// @Success      200  {object}  map[string]uint64
// @Failure      400  {object}  service.ErrRes
// @Router       /mechanic/{id}/seed_uses [get]
func seedUses(c *gin.Context) {
	uses := service.Engine.SeedUses(types.Hash(c.Param("id")), mintData(c.Query("seed")))
	c.JSON(http.StatusOK, gin.H{"uses": uses})
}
