// Package fees implements the mint fee oracle: flat native fees, flat or
// real-time priced ERC-20 fees, per-chain mechanic waivers, per-pair
// subsidies and the referral / creator-reward splits applied on settlement.
package fees

import (
	"errors"
	"math/big"

	"minter/chain"
	"minter/common/model"
	"minter/common/types"
)

var (
	ErrCurrencyNotAllowed = errors.New("currency is not allowlisted for fees")
	ErrNoPool             = errors.New("no price pool configured for currency")
)

// Config carries the per-chain fee constants, resolved from configuration
// rather than hardcoded per deployment.
type Config struct {
	NativeMintFee  *big.Int      //flat per-token fee in wei
	PlatformPayout types.Address //platform side of splits
	FeeCollector   types.Address //account fees accrue on until withdrawal
	Waived         []types.Address
	Gasless        types.Address //generic backup waived identity
}

// Settlement reports where a processed fee went.
type Settlement struct {
	Fee           *big.Int
	Referrer      types.Address
	ReferralPaid  *big.Int
	CreatorReward *big.Int
}

type pairKey struct {
	vectorId string
	minter   types.Address
}

// Oracle computes and settles the protocol fee owed per mint.
type Oracle struct {
	backend chain.Backend
	cfg     Config

	waived     map[types.Address]bool
	erc20Fees  map[types.Address]*big.Int      //flat fee per allowlisted ERC-20
	erc20Pools map[types.Address]types.Address //real-time pool per allowlisted ERC-20
	subsidized map[pairKey]bool
	referrals  ReferralManager
}

func NewOracle(backend chain.Backend, cfg Config, referrals ReferralManager) *Oracle {
	o := &Oracle{
		backend:    backend,
		cfg:        cfg,
		waived:     map[types.Address]bool{},
		erc20Fees:  map[types.Address]*big.Int{},
		erc20Pools: map[types.Address]types.Address{},
		subsidized: map[pairKey]bool{},
		referrals:  referrals,
	}
	for _, w := range cfg.Waived {
		o.waived[w] = true
	}
	if cfg.Gasless != "" && cfg.Gasless != types.ZeroAddress {
		o.waived[cfg.Gasless] = true
	}
	return o
}

// IsWaived reports whether the minter identity is fee exempt.
func (o *Oracle) IsWaived(minter types.Address) bool {
	return o.waived[minter]
}

// Subsidize waives the fee for one (vector, minter) pair.
func (o *Oracle) Subsidize(vectorId string, minter types.Address) {
	o.subsidized[pairKey{vectorId, minter}] = true
}

// IsSubsidized reports whether the (vector, minter) pair is fee exempt.
func (o *Oracle) IsSubsidized(vectorId string, minter types.Address) bool {
	return o.subsidized[pairKey{vectorId, minter}]
}

// SetERC20Fee allowlists a currency at a flat per-token fee.
func (o *Oracle) SetERC20Fee(currency types.Address, fee *big.Int) {
	o.erc20Fees[currency] = new(big.Int).Set(fee)
}

// SetCurrencyPool allowlists a currency priced in real time from a pool.
func (o *Oracle) SetCurrencyPool(currency, pool types.Address) {
	o.erc20Pools[currency] = pool
}

// SetGasless replaces the generic backup waived identity.
func (o *Oracle) SetGasless(mechanic types.Address) {
	if o.cfg.Gasless != "" {
		delete(o.waived, o.cfg.Gasless)
	}
	o.cfg.Gasless = mechanic
	o.waived[mechanic] = true
}

// GetClassicVectorMintFee computes the fee owed on top of sale price.
func (o *Oracle) GetClassicVectorMintFee(vectorId string, numToMint uint64, minter, currency types.Address) (*big.Int, error) {
	if o.waived[minter] || o.subsidized[pairKey{vectorId, minter}] {
		return new(big.Int), nil
	}
	per, err := o.perTokenFee(currency)
	if err != nil {
		return nil, err
	}
	return per.Mul(per, new(big.Int).SetUint64(numToMint)), nil
}

func (o *Oracle) perTokenFee(currency types.Address) (*big.Int, error) {
	if currency == "" || currency == types.ZeroAddress {
		return new(big.Int).Set(o.cfg.NativeMintFee), nil
	}
	if flat, ok := o.erc20Fees[currency]; ok {
		return new(big.Int).Set(flat), nil
	}
	pool, ok := o.erc20Pools[currency]
	if !ok {
		return nil, ErrCurrencyNotAllowed
	}
	p, err := o.backend.PricePool(pool)
	if err != nil {
		return nil, ErrNoPool
	}
	sqrt, err := p.SqrtPriceX96()
	if err != nil {
		return nil, err
	}
	return convertNativeFee(o.cfg.NativeMintFee, sqrt), nil
}

// convertNativeFee prices the native fee in the pool currency from the
// instantaneous square-root price (Q64.96), with a 1.2x buffer.
func convertNativeFee(nativeFee, sqrtPriceX96 *big.Int) *big.Int {
	fee := new(big.Int).Mul(sqrtPriceX96, sqrtPriceX96)
	fee.Mul(fee, nativeFee)
	fee.Rsh(fee, 192)
	fee.Mul(fee, big.NewInt(6))
	return fee.Div(fee, big.NewInt(5))
}

// ProcessClassicVectorMintFeeCap settles a computed fee. Native fees are
// moved from payer (the account already holding the attached value); ERC-20
// fees are pulled from the original transaction signer so relayed
// transactions keep correct payment attribution. Referral and creator-reward
// payouts come out of the fee and a failed payout fails the whole mint.
func (o *Oracle) ProcessClassicVectorMintFeeCap(ctx model.TxContext, vectorId string,
	currency, payer, paymentRecipient types.Address, fee *big.Int, rewardCreator bool) (*Settlement, error) {

	s := &Settlement{Fee: new(big.Int).Set(fee), ReferralPaid: new(big.Int), CreatorReward: new(big.Int)}
	if fee.Sign() == 0 {
		return s, nil
	}

	if currency == "" || currency == types.ZeroAddress {
		if err := o.backend.Transfer(payer, o.cfg.FeeCollector, fee); err != nil {
			return nil, err
		}
	} else {
		erc20, err := o.backend.ERC20(currency)
		if err != nil {
			return nil, err
		}
		if err := erc20.TransferFrom(payer, ctx.Origin, o.cfg.FeeCollector, fee); err != nil {
			return nil, err
		}
	}

	if referrer := o.referrals.Referrer(ctx.Origin); referrer != "" && referrer != types.ZeroAddress && referrer != ctx.Origin {
		s.Referrer = referrer
		s.ReferralPaid = new(big.Int).Div(fee, big.NewInt(10))
		if err := o.pay(currency, referrer, s.ReferralPaid); err != nil {
			return nil, err
		}
	}
	if rewardCreator {
		s.CreatorReward = new(big.Int).Div(fee, big.NewInt(2))
		if err := o.pay(currency, paymentRecipient, s.CreatorReward); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// WithdrawFees moves accrued fees from the collector to the platform payout.
func (o *Oracle) WithdrawFees(currency types.Address, amount *big.Int) error {
	return o.pay(currency, o.cfg.PlatformPayout, amount)
}

func (o *Oracle) pay(currency, to types.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	if currency == "" || currency == types.ZeroAddress {
		return o.backend.Transfer(o.cfg.FeeCollector, to, amount)
	}
	erc20, err := o.backend.ERC20(currency)
	if err != nil {
		return err
	}
	return erc20.Transfer(o.cfg.FeeCollector, to, amount)
}
