package main

import (
	"log"

	"minter/conf"
	"minter/router"
)

// @title       mint engine API
// @version     1.0
// @description Mint engine back-end interface, manages onchain mint vectors, gated claims, auction mechanics and mint fees, and provides event retrieval services for mints, payments and auctions
func main() {
	if err := router.Run(conf.ServerAddr); err != nil {
		log.Printf("Server failed to run: %v\n", err)
	}
}
