package service

import "minter/common/model"

// MintsRes mint event paging return parameters
type MintsRes struct {
	Total int64             `json:"total"` //The total number of mint events
	Mints []model.MintEvent `json:"mints"` //Mint event list
}

func FetchMints(vectorId, collection, recipient string, page, size int) (res MintsRes, err error) {
	db := DB.Model(&model.MintEvent{})
	if vectorId != "" {
		db = db.Where("vector_id=?", vectorId)
	}
	if collection != "" {
		db = db.Where("collection=?", collection)
	}
	if recipient != "" {
		db = db.Where("recipient=?", recipient)
	}

	err = db.Count(&res.Total).Error
	if err != nil {
		return
	}
	err = db.Order("id DESC").Offset((page - 1) * size).Limit(size).Find(&res.Mints).Error
	return
}

// PaymentsRes payment event paging return parameters
type PaymentsRes struct {
	Total    int64                `json:"total"`    //The total number of payment events
	Payments []model.PaymentEvent `json:"payments"` //Payment event list
}

func FetchPayments(vectorId, kind, account string, page, size int) (res PaymentsRes, err error) {
	db := DB.Model(&model.PaymentEvent{})
	if vectorId != "" {
		db = db.Where("vector_id=?", vectorId)
	}
	if kind != "" {
		db = db.Where("kind=?", kind)
	}
	if account != "" {
		db = db.Where("`from`=? OR `to`=?", account, account)
	}

	err = db.Count(&res.Total).Error
	if err != nil {
		return
	}
	err = db.Order("id DESC").Offset((page - 1) * size).Limit(size).Find(&res.Payments).Error
	return
}

// AuctionsRes auction event paging return parameters
type AuctionsRes struct {
	Total    int64                `json:"total"`    //The total number of auction events
	Auctions []model.AuctionEvent `json:"auctions"` //Auction event list
}

func FetchAuctionEvents(vectorId, bidder string, page, size int) (res AuctionsRes, err error) {
	db := DB.Model(&model.AuctionEvent{})
	if vectorId != "" {
		db = db.Where("vector_id=?", vectorId)
	}
	if bidder != "" {
		db = db.Where("bidder=?", bidder)
	}

	err = db.Count(&res.Total).Error
	if err != nil {
		return
	}
	err = db.Order("id DESC").Offset((page - 1) * size).Limit(size).Find(&res.Auctions).Error
	return
}

// VectorEventsRes vector lifecycle paging return parameters
type VectorEventsRes struct {
	Total  int64               `json:"total"`  //The total number of vector events
	Events []model.VectorEvent `json:"events"` //Vector event list
}

func FetchVectorEvents(vectorId, collection string, page, size int) (res VectorEventsRes, err error) {
	db := DB.Model(&model.VectorEvent{})
	if vectorId != "" {
		db = db.Where("vector_id=?", vectorId)
	}
	if collection != "" {
		db = db.Where("collection=?", collection)
	}

	err = db.Count(&res.Total).Error
	if err != nil {
		return
	}
	err = db.Order("id DESC").Offset((page - 1) * size).Limit(size).Find(&res.Events).Error
	return
}

// MechanicEventsRes mechanic registration paging return parameters
type MechanicEventsRes struct {
	Total  int64                 `json:"total"`  //The total number of mechanic events
	Events []model.MechanicEvent `json:"events"` //Mechanic event list
}

func FetchMechanicEvents(mechanic, collection string, page, size int) (res MechanicEventsRes, err error) {
	db := DB.Model(&model.MechanicEvent{})
	if mechanic != "" {
		db = db.Where("mechanic=?", mechanic)
	}
	if collection != "" {
		db = db.Where("collection=?", collection)
	}

	err = db.Count(&res.Total).Error
	if err != nil {
		return
	}
	err = db.Order("id DESC").Offset((page - 1) * size).Limit(size).Find(&res.Events).Error
	return
}
