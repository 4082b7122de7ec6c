// Package types defines the string-backed scalar types shared by the engine,
// the database models and the HTTP layer.
package types

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Address hexadecimal string with 0x prefix, always lowercase
type Address string

// ZeroAddress is the native-currency sentinel and the "unset" address value.
const ZeroAddress = Address("0x0000000000000000000000000000000000000000")

// HexToAddress normalizes a hexadecimal string to an Address
func HexToAddress(s string) Address {
	return Address(strings.ToLower(s))
}

// BytesToAddress converts the last 20 bytes of b to an Address
func BytesToAddress(b []byte) Address {
	if len(b) > 20 {
		b = b[len(b)-20:]
	}
	return Address("0x" + fmt.Sprintf("%040x", new(big.Int).SetBytes(b)))
}

// Bytes returns the 20 byte form of the address (zero on bad input)
func (a Address) Bytes() []byte {
	b, _ := hex.DecodeString(strings.TrimPrefix(string(a), "0x"))
	out := make([]byte, 20)
	copy(out[20-len(b):], b)
	return out
}

// Big returns the address as a big number
func (a Address) Big() *big.Int {
	return new(big.Int).SetBytes(a.Bytes())
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Address) UnmarshalJSON(input []byte) error {
	return a.UnmarshalText(input[1 : len(input)-1])
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Address) UnmarshalText(input []byte) error {
	*a = Address(strings.ToLower(string(input)))
	return nil
}

// Hash 32 byte hash as hexadecimal string with 0x prefix
type Hash string

// ZeroHash is the unset hash value.
const ZeroHash = Hash("0x0000000000000000000000000000000000000000000000000000000000000000")

// BytesToHash converts the last 32 bytes of b to a Hash
func BytesToHash(b []byte) Hash {
	return Hash("0x" + fmt.Sprintf("%064x", new(big.Int).SetBytes(b)))
}

// Bytes returns the 32 byte form of the hash (zero on bad input)
func (h Hash) Bytes() []byte {
	b, _ := hex.DecodeString(strings.TrimPrefix(string(h), "0x"))
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *Hash) UnmarshalJSON(input []byte) error {
	return h.UnmarshalText(input[1 : len(input)-1])
}

// UnmarshalText implements encoding.TextUnmarshaler
func (h *Hash) UnmarshalText(input []byte) error {
	*h = Hash(strings.ToLower(string(input)))
	return nil
}

// Uint64 unsigned integer accepting decimal or 0x-prefixed input
type Uint64 uint64

// UnmarshalJSON implements json.Unmarshaler.
func (u *Uint64) UnmarshalJSON(input []byte) error {
	if len(input) > 2 && input[0] == '"' {
		input = input[1 : len(input)-1]
	}
	return u.UnmarshalText(input)
}

// UnmarshalText implements encoding.TextUnmarshaler
func (u *Uint64) UnmarshalText(input []byte) error {
	value, err := strconv.ParseUint(string(input), 0, 64)
	*u = Uint64(value)
	return err
}

// Hex returns the 0x-prefixed hexadecimal form
func (u Uint64) Hex() string {
	return "0x" + strconv.FormatUint(uint64(u), 16)
}

// BigInt big number represented by decimal string
type BigInt string

// NewBigInt converts a big number to its decimal string form ("0" for nil)
func NewBigInt(b *big.Int) BigInt {
	if b == nil {
		return "0"
	}
	return BigInt(b.Text(10))
}

// Big parses the decimal string back to a big number (nil if malformed)
func (b BigInt) Big() *big.Int {
	v, ok := new(big.Int).SetString(string(b), 10)
	if !ok {
		return nil
	}
	return v
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *BigInt) UnmarshalJSON(input []byte) error {
	if len(input) > 2 && input[0] == '"' {
		input = input[1 : len(input)-1]
	}
	return b.UnmarshalText(input)
}

// UnmarshalText implements encoding.TextUnmarshaler
func (b *BigInt) UnmarshalText(input []byte) error {
	t := new(big.Int)
	err := t.UnmarshalText(input)
	if err != nil {
		return err
	}
	*b = BigInt(t.String())
	return nil
}

// StrArray string list stored as one comma joined TEXT column
type StrArray []string

// Value implements driver.Valuer
func (s StrArray) Value() (interface{}, error) {
	return strings.Join(s, ","), nil
}

// Scan implements sql.Scanner
func (s *StrArray) Scan(input interface{}) error {
	switch v := input.(type) {
	case string:
		*s = strings.Split(v, ",")
	case []byte:
		*s = strings.Split(string(v), ",")
	default:
		return fmt.Errorf("unexpected type %T for StrArray", input)
	}
	return nil
}
