package fees

import "minter/common/types"

// ReferralManager reports the referrer attributed to a transaction signer,
// zero when none.
type ReferralManager interface {
	Referrer(origin types.Address) types.Address
}

// Registry is the in-process referral manager. Attributions are set by the
// platform before settlement and read once per fee processing.
type Registry struct {
	referrers map[types.Address]types.Address
}

func NewRegistry() *Registry {
	return &Registry{referrers: map[types.Address]types.Address{}}
}

// SetReferrer attributes future mints of origin to referrer.
func (r *Registry) SetReferrer(origin, referrer types.Address) {
	r.referrers[origin] = referrer
}

// Referrer implements ReferralManager.
func (r *Registry) Referrer(origin types.Address) types.Address {
	return r.referrers[origin]
}
