package node

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"minter/common/types"
)

var NotFound = fmt.Errorf("not found")

// mirrorABI covers the read surface of the deployed collaborator contracts:
// collections, ERC-20 currencies and the fee oracle price pools.
const mirrorABI = `[
{"inputs":[],"name":"owner","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"totalSupply","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"limitSupply","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[{"internalType":"address","name":"account","type":"address"}],"name":"balanceOf","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[{"internalType":"address","name":"owner","type":"address"},{"internalType":"address","name":"spender","type":"address"}],"name":"allowance","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"slot0","outputs":[{"internalType":"uint160","name":"sqrtPriceX96","type":"uint160"},{"internalType":"int24","name":"tick","type":"int24"},{"internalType":"uint16","name":"observationIndex","type":"uint16"},{"internalType":"uint16","name":"observationCardinality","type":"uint16"},{"internalType":"uint16","name":"observationCardinalityNext","type":"uint16"},{"internalType":"uint8","name":"feeProtocol","type":"uint8"},{"internalType":"bool","name":"unlocked","type":"bool"}],"stateMutability":"view","type":"function"}
]`

// Client is a read-only JSON-RPC view of a mirrored deployment.
type Client struct {
	*RPC
	abi abi.ABI
}

// Dial connects a client to the given URL.
func Dial(rawurl string) (*Client, error) {
	rpc, err := NewRPC(rawurl)
	if err != nil {
		return nil, err
	}
	parsed, err := abi.JSON(strings.NewReader(mirrorABI))
	if err != nil {
		return nil, err
	}
	return &Client{rpc, parsed}, nil
}

// BalanceAt returns the native balance of account at the latest block.
func (c *Client) BalanceAt(ctx context.Context, account types.Address) (*big.Int, error) {
	var result string
	err := c.CallContext(ctx, &result, "eth_getBalance", string(account), "latest")
	if err != nil {
		return nil, err
	}
	return hexutil.DecodeBig(result)
}

// call packs method+args, runs eth_call against contract and unpacks outputs.
func (c *Client) call(ctx context.Context, contract types.Address, method string, args ...interface{}) ([]interface{}, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, err
	}
	msg := map[string]interface{}{"to": string(contract), "data": hexutil.Encode(data)}
	var result string
	if err = c.CallContext(ctx, &result, "eth_call", msg, "latest"); err != nil {
		return nil, err
	}
	ret, err := hexutil.Decode(result)
	if err != nil {
		return nil, err
	}
	if len(ret) == 0 {
		return nil, NotFound
	}
	return c.abi.Unpack(method, ret)
}

// CollectionOwner returns the owner of a collection contract.
func (c *Client) CollectionOwner(ctx context.Context, collection types.Address) (types.Address, error) {
	out, err := c.call(ctx, collection, "owner")
	if err != nil {
		return "", err
	}
	addr := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	return types.Address(strings.ToLower(addr.Hex())), nil
}

// CollectionSupply returns the minted token count of a collection.
func (c *Client) CollectionSupply(ctx context.Context, collection types.Address) (uint64, error) {
	out, err := c.call(ctx, collection, "totalSupply")
	if err != nil {
		return 0, err
	}
	return (*abi.ConvertType(out[0], new(big.Int)).(*big.Int)).Uint64(), nil
}

// CollectionLimitSupply returns the hard supply cap, zero when uncapped.
func (c *Client) CollectionLimitSupply(ctx context.Context, collection types.Address) (uint64, error) {
	out, err := c.call(ctx, collection, "limitSupply")
	if err != nil {
		return 0, err
	}
	return (*abi.ConvertType(out[0], new(big.Int)).(*big.Int)).Uint64(), nil
}

// ERC20BalanceOf returns the token balance of account.
func (c *Client) ERC20BalanceOf(ctx context.Context, token, account types.Address) (*big.Int, error) {
	out, err := c.call(ctx, token, "balanceOf", common.HexToAddress(string(account)))
	if err != nil {
		return nil, err
	}
	return abi.ConvertType(out[0], new(big.Int)).(*big.Int), nil
}

// ERC20Allowance returns the amount spender may pull from owner.
func (c *Client) ERC20Allowance(ctx context.Context, token, owner, spender types.Address) (*big.Int, error) {
	out, err := c.call(ctx, token, "allowance",
		common.HexToAddress(string(owner)), common.HexToAddress(string(spender)))
	if err != nil {
		return nil, err
	}
	return abi.ConvertType(out[0], new(big.Int)).(*big.Int), nil
}

// PoolSqrtPriceX96 returns the instantaneous price of a fee oracle pool.
func (c *Client) PoolSqrtPriceX96(ctx context.Context, pool types.Address) (*big.Int, error) {
	out, err := c.call(ctx, pool, "slot0")
	if err != nil {
		return nil, err
	}
	return abi.ConvertType(out[0], new(big.Int)).(*big.Int), nil
}
