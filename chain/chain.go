// Package chain defines the narrow interfaces through which the mint engine
// consumes collaborator contracts: mintable collections, ERC-20 currencies,
// real-time price pools and burnable multi-token contracts. The engine never
// touches collaborator state directly.
package chain

import (
	"errors"
	"math/big"

	"minter/common/types"
)

var (
	ErrUnknownContract   = errors.New("unknown contract address")
	ErrInsufficientFunds = errors.New("insufficient balance for transfer")
	ErrAllowanceExceeded = errors.New("transfer amount exceeds allowance")
	ErrSupplyExceeded    = errors.New("mint exceeds collection supply limit")
	ErrTokenMinted       = errors.New("token already minted")
	ErrUnknownEdition    = errors.New("unknown edition id")
	ErrBurnExceeded      = errors.New("burn amount exceeds token balance")
)

// Edition mirrors the edition-details accessor of edition based collections.
type Edition struct {
	Name      string
	Size      uint64
	Supply    uint64
	EditionId uint64
}

// Collection is the mint entrypoint surface of a target collection.
type Collection interface {
	Owner() (types.Address, error)
	Supply() (uint64, error)
	TotalSupply() (uint64, error)
	LimitSupply() (uint64, error)
	EditionDetails(editionId uint64) (Edition, error)

	MintOneToOneRecipient(recipient types.Address) (uint64, error)
	MintAmountToOneRecipient(recipient types.Address, amount uint64) error
	MintSpecificTokenToOneRecipient(recipient types.Address, tokenId uint64) error
	MintSpecificTokensToOneRecipient(recipient types.Address, tokenIds []uint64) error
	MintOneToRecipient(editionId uint64, recipient types.Address) (uint64, error)
	MintAmountToRecipient(editionId uint64, recipient types.Address, amount uint64) error
}

// ERC20 is the sale and fee settlement surface of an ERC-20 currency.
// Transfers carry an explicit from so that meta-transaction relaying keeps
// payment attribution with the original signer.
type ERC20 interface {
	BalanceOf(account types.Address) (*big.Int, error)
	Transfer(from, to types.Address, amount *big.Int) error
	TransferFrom(spender, from, to types.Address, amount *big.Int) error
}

// PricePool exposes the instantaneous square-root price of a currency pool,
// Q64.96 fixed point, token per native unit.
type PricePool interface {
	SqrtPriceX96() (*big.Int, error)
}

// Burnable1155 is the burn surface used by burn-and-redeem mint flows.
type Burnable1155 interface {
	Burn(account types.Address, tokenIds []uint64, amounts []uint64) error
}

// Backend resolves collaborator contracts and keeps the native-currency
// ledger. Snapshot and RevertTo give operations transaction semantics: a
// failing operation rolls every collaborator mutation back.
type Backend interface {
	Collection(addr types.Address) (Collection, error)
	ERC20(addr types.Address) (ERC20, error)
	PricePool(addr types.Address) (PricePool, error)
	Burnable(addr types.Address) (Burnable1155, error)

	BalanceOf(account types.Address) *big.Int
	Transfer(from, to types.Address, amount *big.Int) error

	Snapshot() int
	RevertTo(id int)
}
