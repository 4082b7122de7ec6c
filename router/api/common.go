package api

import (
	"time"

	"minter/common/model"
	"minter/common/types"
	"minter/common/utils"
)

func addr(s string) types.Address { return types.Address(s) }

// TxReq is the transaction envelope carried by every state-changing request.
// Origin defaults to sender, timestamp defaults to now.
type TxReq struct {
	Sender    string `json:"sender"`    //Immediate caller address
	Origin    string `json:"origin"`    //Original signer, empty defaults to sender
	Value     string `json:"value"`     //Attached native value in wei, decimal
	Timestamp uint64 `json:"timestamp"` //Operation time in seconds, zero is now
}

func (r TxReq) Ctx() (model.TxContext, error) {
	ctx := model.TxContext{
		Sender:    types.Address(r.Sender),
		Origin:    types.Address(r.Origin),
		Timestamp: r.Timestamp,
	}
	if r.Origin == "" {
		ctx.Origin = ctx.Sender
	}
	if r.Timestamp == 0 {
		ctx.Timestamp = uint64(time.Now().Unix())
	}
	if r.Value != "" {
		v, err := utils.ParseBigInt(r.Value)
		if err != nil {
			return ctx, err
		}
		ctx.Value = v
	}
	return ctx, nil
}
