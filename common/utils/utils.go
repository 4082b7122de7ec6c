package utils

import (
	"fmt"
	"math/big"

	"minter/common/types"
)

// ParsePage parses the paging parameters, page defaults to 1 and size to 10
func ParsePage(pagePtr, sizePtr *int) (int, int, error) {
	page, size := 1, 10
	if pagePtr != nil {
		if *pagePtr <= 0 {
			return 0, 0, fmt.Errorf("page must be greater than 0")
		}
		page = *pagePtr
	}
	if sizePtr != nil {
		if *sizePtr <= 0 || *sizePtr > 100 {
			return 0, 0, fmt.Errorf("page size must be between 1 and 100")
		}
		size = *sizePtr
	}
	return page, size, nil
}

// HexToBigInt converts a hexadecimal string without 0x prefix to a big number BigInt (illegal input will return 0)
func HexToBigInt(hex string) types.BigInt {
	b := new(big.Int)
	b.SetString(hex, 16)
	return types.BigInt(b.Text(10))
}

// ParseBigInt parses a decimal or 0x-prefixed big number string
func ParseBigInt(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	b, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("invalid big number: %v", s)
	}
	return b, nil
}

// LeftPadBytes zero pads b on the left to length l (b is returned unchanged if longer)
func LeftPadBytes(b []byte, l int) []byte {
	if len(b) >= l {
		return b
	}
	out := make([]byte, l)
	copy(out[l-len(b):], b)
	return out
}

// U256Bytes returns the 32 byte big-endian form of v
func U256Bytes(v *big.Int) []byte {
	return LeftPadBytes(v.Bytes(), 32)
}

// U64Bytes returns the 32 byte big-endian form of v
func U64Bytes(v uint64) []byte {
	return U256Bytes(new(big.Int).SetUint64(v))
}
