// Package pricing implements the packed price table used by descending price
// sales. Prices are stored big-endian at a fixed byte width per entry so that
// a single price can be read straight out of the buffer on every mint.
package pricing

import (
	"errors"
	"math/big"
)

var (
	ErrBadWidth      = errors.New("bytes per price must be between 1 and 32")
	ErrPriceTooWide  = errors.New("price does not fit in bytes per price")
	ErrLengthMismatch = errors.New("buffer length is not bytes per price times price count")
	ErrNotDescending = errors.New("prices must strictly decrease")
	ErrEmpty         = errors.New("at least one price is required")
)

// Pack encodes an ordered price list into a packed buffer at the given width.
func Pack(prices []*big.Int, bytesPerPrice int) ([]byte, error) {
	if bytesPerPrice < 1 || bytesPerPrice > 32 {
		return nil, ErrBadWidth
	}
	if len(prices) == 0 {
		return nil, ErrEmpty
	}
	buf := make([]byte, len(prices)*bytesPerPrice)
	for i, p := range prices {
		b := p.Bytes()
		if len(b) > bytesPerPrice {
			return nil, ErrPriceTooWide
		}
		copy(buf[(i+1)*bytesPerPrice-len(b):(i+1)*bytesPerPrice], b)
	}
	return buf, nil
}

// PriceAt reads the price at index straight from the buffer.
// No bounds checking is performed, callers must pre-validate the table.
func PriceAt(buf []byte, bytesPerPrice, index int) *big.Int {
	return new(big.Int).SetBytes(buf[index*bytesPerPrice : (index+1)*bytesPerPrice])
}

// Unpack decodes the full ordered price sequence.
func Unpack(buf []byte, bytesPerPrice int) []*big.Int {
	prices := make([]*big.Int, len(buf)/bytesPerPrice)
	for i := range prices {
		prices[i] = PriceAt(buf, bytesPerPrice, i)
	}
	return prices
}

// Validate checks the buffer length against the declared price count and that
// prices strictly decrease by index. Run once at vector creation, never on
// the mint path.
func Validate(buf []byte, bytesPerPrice, numPrices int) error {
	if bytesPerPrice < 1 || bytesPerPrice > 32 {
		return ErrBadWidth
	}
	if numPrices == 0 {
		return ErrEmpty
	}
	if len(buf) != bytesPerPrice*numPrices {
		return ErrLengthMismatch
	}
	prev := PriceAt(buf, bytesPerPrice, 0)
	for i := 1; i < numPrices; i++ {
		p := PriceAt(buf, bytesPerPrice, i)
		if p.Cmp(prev) >= 0 {
			return ErrNotDescending
		}
		prev = p
	}
	return nil
}
