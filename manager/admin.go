package manager

import (
	"math/big"

	"minter/common/model"
	"minter/common/types"
)

func (m *Manager) onlyPlatform(ctx model.TxContext) error {
	if ctx.Sender != m.platform {
		return ErrNotPlatform
	}
	return nil
}

// AddExecutor allows executor to sign gated claims.
func (m *Manager) AddExecutor(ctx model.TxContext, executor types.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.onlyPlatform(ctx); err != nil {
		return err
	}
	m.gated.AddExecutor(executor)
	return nil
}

// RemoveExecutor revokes a gated claim signer.
func (m *Manager) RemoveExecutor(ctx model.TxContext, executor types.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.onlyPlatform(ctx); err != nil {
		return err
	}
	m.gated.RemoveExecutor(executor)
	return nil
}

func (m *Manager) IsExecutor(executor types.Address) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gated.IsExecutor(executor)
}

// SetERC20Fee fixes the per-token mint fee charged in currency.
func (m *Manager) SetERC20Fee(ctx model.TxContext, currency types.Address, fee *big.Int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.onlyPlatform(ctx); err != nil {
		return err
	}
	m.fees.SetERC20Fee(currency, fee)
	return nil
}

// SetCurrencyPool points currency at the pool quoting its native price.
func (m *Manager) SetCurrencyPool(ctx model.TxContext, currency, pool types.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.onlyPlatform(ctx); err != nil {
		return err
	}
	m.fees.SetCurrencyPool(currency, pool)
	return nil
}

// SetGasless names the mechanic whose callers pay no mint fee.
func (m *Manager) SetGasless(ctx model.TxContext, mechanic types.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.onlyPlatform(ctx); err != nil {
		return err
	}
	m.fees.SetGasless(mechanic)
	return nil
}

// Subsidize waives the mint fee for minter on one vector.
func (m *Manager) Subsidize(ctx model.TxContext, vectorId string, minter types.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.onlyPlatform(ctx); err != nil {
		return err
	}
	m.fees.Subsidize(vectorId, minter)
	return nil
}

func (m *Manager) IsSubsidized(vectorId string, minter types.Address) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fees.IsSubsidized(vectorId, minter)
}

// WithdrawFees moves accrued protocol fees to the platform payout address.
func (m *Manager) WithdrawFees(ctx model.TxContext, currency types.Address, amount *big.Int) error {
	return m.withTx(func() error {
		if err := m.onlyPlatform(ctx); err != nil {
			return err
		}
		if err := m.fees.WithdrawFees(currency, amount); err != nil {
			return err
		}
		m.sink.Payment(&model.PaymentEvent{
			Kind: "withdrawal", Currency: currency,
			From: m.addr, To: m.platform,
			Amount: types.NewBigInt(amount), Timestamp: types.Uint64(ctx.Timestamp),
		})
		return nil
	})
}

// SetReferrer binds the caller to a referrer for future fee splits.
func (m *Manager) SetReferrer(ctx model.TxContext, referrer types.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.referrals.SetReferrer(ctx.Origin, referrer)
}

func (m *Manager) Referrer(origin types.Address) types.Address {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.referrals.Referrer(origin)
}

// QuoteMintFee returns the total mint fee a minter would owe.
func (m *Manager) QuoteMintFee(vectorId string, numToMint uint64, minter, currency types.Address) (*big.Int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fees.GetClassicVectorMintFee(vectorId, numToMint, minter, currency)
}
