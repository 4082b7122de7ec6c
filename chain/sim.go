package chain

import (
	"math/big"

	"minter/common/types"
)

// Sim is the in-process Backend used by the engine's default wiring and by
// tests. All state lives in maps; Snapshot deep-copies so a reverted
// operation leaves no trace, matching the all-or-nothing execution model.
type Sim struct {
	balances    map[types.Address]*big.Int
	collections map[types.Address]*SimCollection
	erc20s      map[types.Address]*SimERC20
	pools       map[types.Address]*SimPool
	burnables   map[types.Address]*SimBurnable
	snapshots   []*Sim
}

func NewSim() *Sim {
	return &Sim{
		balances:    map[types.Address]*big.Int{},
		collections: map[types.Address]*SimCollection{},
		erc20s:      map[types.Address]*SimERC20{},
		pools:       map[types.Address]*SimPool{},
		burnables:   map[types.Address]*SimBurnable{},
	}
}

func (s *Sim) Collection(addr types.Address) (Collection, error) {
	if c, ok := s.collections[addr]; ok {
		return c, nil
	}
	return nil, ErrUnknownContract
}

func (s *Sim) ERC20(addr types.Address) (ERC20, error) {
	if e, ok := s.erc20s[addr]; ok {
		return e, nil
	}
	return nil, ErrUnknownContract
}

func (s *Sim) PricePool(addr types.Address) (PricePool, error) {
	if p, ok := s.pools[addr]; ok {
		return p, nil
	}
	return nil, ErrUnknownContract
}

func (s *Sim) Burnable(addr types.Address) (Burnable1155, error) {
	if b, ok := s.burnables[addr]; ok {
		return b, nil
	}
	return nil, ErrUnknownContract
}

func (s *Sim) BalanceOf(account types.Address) *big.Int {
	if b, ok := s.balances[account]; ok {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

func (s *Sim) Transfer(from, to types.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	b := s.BalanceOf(from)
	if b.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	s.balances[from] = b.Sub(b, amount)
	s.balances[to] = new(big.Int).Add(s.BalanceOf(to), amount)
	return nil
}

// Fund credits a native balance, the test/bootstrap faucet.
func (s *Sim) Fund(account types.Address, amount *big.Int) {
	s.balances[account] = new(big.Int).Add(s.BalanceOf(account), amount)
}

func (s *Sim) Snapshot() int {
	s.snapshots = append(s.snapshots, s.copy())
	return len(s.snapshots) - 1
}

// RevertTo restores the snapshot's state in place: contract handles handed
// out before the revert stay attached to the live objects.
func (s *Sim) RevertTo(id int) {
	if id < 0 || id >= len(s.snapshots) {
		return
	}
	snap := s.snapshots[id]

	for a := range s.balances {
		delete(s.balances, a)
	}
	for a, b := range snap.balances {
		s.balances[a] = new(big.Int).Set(b)
	}

	for a := range s.collections {
		if snap.collections[a] == nil {
			delete(s.collections, a)
		}
	}
	for a, c := range snap.collections {
		if live, ok := s.collections[a]; ok {
			*live = *c.copy()
		} else {
			s.collections[a] = c.copy()
		}
	}

	for a := range s.erc20s {
		if snap.erc20s[a] == nil {
			delete(s.erc20s, a)
		}
	}
	for a, e := range snap.erc20s {
		if live, ok := s.erc20s[a]; ok {
			*live = *e.copy()
		} else {
			s.erc20s[a] = e.copy()
		}
	}

	for a := range s.pools {
		if snap.pools[a] == nil {
			delete(s.pools, a)
		}
	}
	for a, p := range snap.pools {
		if live, ok := s.pools[a]; ok {
			live.sqrtPriceX96 = new(big.Int).Set(p.sqrtPriceX96)
		} else {
			s.pools[a] = &SimPool{sqrtPriceX96: new(big.Int).Set(p.sqrtPriceX96)}
		}
	}

	for a := range s.burnables {
		if snap.burnables[a] == nil {
			delete(s.burnables, a)
		}
	}
	for a, b := range snap.burnables {
		if live, ok := s.burnables[a]; ok {
			*live = *b.copy()
		} else {
			s.burnables[a] = b.copy()
		}
	}

	s.snapshots = s.snapshots[:id]
}

func (s *Sim) copy() *Sim {
	cp := NewSim()
	for a, b := range s.balances {
		cp.balances[a] = new(big.Int).Set(b)
	}
	for a, c := range s.collections {
		cp.collections[a] = c.copy()
	}
	for a, e := range s.erc20s {
		cp.erc20s[a] = e.copy()
	}
	for a, p := range s.pools {
		cp.pools[a] = &SimPool{sqrtPriceX96: new(big.Int).Set(p.sqrtPriceX96)}
	}
	for a, b := range s.burnables {
		cp.burnables[a] = b.copy()
	}
	return cp
}

// SimCollection is an in-memory mintable collection. Token ids are assigned
// sequentially from 1; specific-token mints may claim any unminted id within
// the supply limit.
type SimCollection struct {
	owner       types.Address
	limitSupply uint64
	supply      uint64
	nextToken   uint64
	minted      map[uint64]types.Address
	editions    map[uint64]*Edition
}

// AddCollection registers a general (series) collection. limitSupply of zero
// means unbounded.
func (s *Sim) AddCollection(addr, owner types.Address, limitSupply uint64) *SimCollection {
	c := &SimCollection{
		owner:       owner,
		limitSupply: limitSupply,
		nextToken:   1,
		minted:      map[uint64]types.Address{},
		editions:    map[uint64]*Edition{},
	}
	s.collections[addr] = c
	return c
}

// AddEdition registers an edition on an edition based collection.
func (c *SimCollection) AddEdition(editionId uint64, name string, size uint64) {
	c.editions[editionId] = &Edition{Name: name, Size: size, EditionId: editionId}
}

func (c *SimCollection) copy() *SimCollection {
	cp := &SimCollection{
		owner:       c.owner,
		limitSupply: c.limitSupply,
		supply:      c.supply,
		nextToken:   c.nextToken,
		minted:      map[uint64]types.Address{},
		editions:    map[uint64]*Edition{},
	}
	for id, a := range c.minted {
		cp.minted[id] = a
	}
	for id, e := range c.editions {
		ce := *e
		cp.editions[id] = &ce
	}
	return cp
}

func (c *SimCollection) Owner() (types.Address, error)  { return c.owner, nil }
func (c *SimCollection) Supply() (uint64, error)        { return c.supply, nil }
func (c *SimCollection) TotalSupply() (uint64, error)   { return c.supply, nil }
func (c *SimCollection) LimitSupply() (uint64, error)   { return c.limitSupply, nil }

func (c *SimCollection) EditionDetails(editionId uint64) (Edition, error) {
	e, ok := c.editions[editionId]
	if !ok {
		return Edition{}, ErrUnknownEdition
	}
	return *e, nil
}

func (c *SimCollection) roomFor(amount uint64) error {
	if c.limitSupply != 0 && c.supply+amount > c.limitSupply {
		return ErrSupplyExceeded
	}
	return nil
}

func (c *SimCollection) MintOneToOneRecipient(recipient types.Address) (uint64, error) {
	if err := c.roomFor(1); err != nil {
		return 0, err
	}
	for c.minted[c.nextToken] != "" {
		c.nextToken++
	}
	id := c.nextToken
	c.minted[id] = recipient
	c.nextToken++
	c.supply++
	return id, nil
}

func (c *SimCollection) MintAmountToOneRecipient(recipient types.Address, amount uint64) error {
	if err := c.roomFor(amount); err != nil {
		return err
	}
	for i := uint64(0); i < amount; i++ {
		if _, err := c.MintOneToOneRecipient(recipient); err != nil {
			return err
		}
	}
	return nil
}

func (c *SimCollection) MintSpecificTokenToOneRecipient(recipient types.Address, tokenId uint64) error {
	if c.minted[tokenId] != "" {
		return ErrTokenMinted
	}
	if c.limitSupply != 0 && tokenId > c.limitSupply {
		return ErrSupplyExceeded
	}
	if err := c.roomFor(1); err != nil {
		return err
	}
	c.minted[tokenId] = recipient
	c.supply++
	return nil
}

func (c *SimCollection) MintSpecificTokensToOneRecipient(recipient types.Address, tokenIds []uint64) error {
	for _, id := range tokenIds {
		if err := c.MintSpecificTokenToOneRecipient(recipient, id); err != nil {
			return err
		}
	}
	return nil
}

func (c *SimCollection) MintOneToRecipient(editionId uint64, recipient types.Address) (uint64, error) {
	e, ok := c.editions[editionId]
	if !ok {
		return 0, ErrUnknownEdition
	}
	if e.Size != 0 && e.Supply+1 > e.Size {
		return 0, ErrSupplyExceeded
	}
	e.Supply++
	c.supply++
	return e.Supply, nil
}

func (c *SimCollection) MintAmountToRecipient(editionId uint64, recipient types.Address, amount uint64) error {
	e, ok := c.editions[editionId]
	if !ok {
		return ErrUnknownEdition
	}
	if e.Size != 0 && e.Supply+amount > e.Size {
		return ErrSupplyExceeded
	}
	e.Supply += amount
	c.supply += amount
	return nil
}

// OwnerOf reports the holder of a minted token (test helper).
func (c *SimCollection) OwnerOf(tokenId uint64) types.Address {
	return c.minted[tokenId]
}

// SimERC20 is an in-memory ERC-20 with balances and allowances.
type SimERC20 struct {
	balances   map[types.Address]*big.Int
	allowances map[types.Address]map[types.Address]*big.Int
}

func (s *Sim) AddERC20(addr types.Address) *SimERC20 {
	e := &SimERC20{
		balances:   map[types.Address]*big.Int{},
		allowances: map[types.Address]map[types.Address]*big.Int{},
	}
	s.erc20s[addr] = e
	return e
}

func (e *SimERC20) copy() *SimERC20 {
	cp := &SimERC20{
		balances:   map[types.Address]*big.Int{},
		allowances: map[types.Address]map[types.Address]*big.Int{},
	}
	for a, b := range e.balances {
		cp.balances[a] = new(big.Int).Set(b)
	}
	for o, m := range e.allowances {
		cp.allowances[o] = map[types.Address]*big.Int{}
		for s, b := range m {
			cp.allowances[o][s] = new(big.Int).Set(b)
		}
	}
	return cp
}

func (e *SimERC20) Mint(account types.Address, amount *big.Int) {
	b, err := e.BalanceOf(account)
	if err == nil {
		e.balances[account] = b.Add(b, amount)
	}
}

func (e *SimERC20) Approve(owner, spender types.Address, amount *big.Int) {
	if e.allowances[owner] == nil {
		e.allowances[owner] = map[types.Address]*big.Int{}
	}
	e.allowances[owner][spender] = new(big.Int).Set(amount)
}

func (e *SimERC20) BalanceOf(account types.Address) (*big.Int, error) {
	if b, ok := e.balances[account]; ok {
		return new(big.Int).Set(b), nil
	}
	return new(big.Int), nil
}

func (e *SimERC20) Transfer(from, to types.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	b, _ := e.BalanceOf(from)
	if b.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	e.balances[from] = b.Sub(b, amount)
	tb, _ := e.BalanceOf(to)
	e.balances[to] = tb.Add(tb, amount)
	return nil
}

func (e *SimERC20) TransferFrom(spender, from, to types.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	allowed := new(big.Int)
	if m, ok := e.allowances[from]; ok && m[spender] != nil {
		allowed = m[spender]
	}
	if allowed.Cmp(amount) < 0 {
		return ErrAllowanceExceeded
	}
	if err := e.Transfer(from, to, amount); err != nil {
		return err
	}
	e.allowances[from][spender] = new(big.Int).Sub(allowed, amount)
	return nil
}

// SimPool is an in-memory real-time price pool.
type SimPool struct {
	sqrtPriceX96 *big.Int
}

func (s *Sim) AddPool(addr types.Address, sqrtPriceX96 *big.Int) *SimPool {
	p := &SimPool{sqrtPriceX96: new(big.Int).Set(sqrtPriceX96)}
	s.pools[addr] = p
	return p
}

func (p *SimPool) SqrtPriceX96() (*big.Int, error) {
	return new(big.Int).Set(p.sqrtPriceX96), nil
}

// SimBurnable is an in-memory burnable multi-token contract.
type SimBurnable struct {
	balances map[types.Address]map[uint64]uint64
}

func (s *Sim) AddBurnable(addr types.Address) *SimBurnable {
	b := &SimBurnable{balances: map[types.Address]map[uint64]uint64{}}
	s.burnables[addr] = b
	return b
}

func (b *SimBurnable) copy() *SimBurnable {
	cp := &SimBurnable{balances: map[types.Address]map[uint64]uint64{}}
	for a, m := range b.balances {
		cp.balances[a] = map[uint64]uint64{}
		for id, n := range m {
			cp.balances[a][id] = n
		}
	}
	return cp
}

func (b *SimBurnable) Mint(account types.Address, tokenId, amount uint64) {
	if b.balances[account] == nil {
		b.balances[account] = map[uint64]uint64{}
	}
	b.balances[account][tokenId] += amount
}

func (b *SimBurnable) BalanceOf(account types.Address, tokenId uint64) uint64 {
	return b.balances[account][tokenId]
}

func (b *SimBurnable) Burn(account types.Address, tokenIds []uint64, amounts []uint64) error {
	for i, id := range tokenIds {
		if b.balances[account][id] < amounts[i] {
			return ErrBurnExceeded
		}
	}
	for i, id := range tokenIds {
		b.balances[account][id] -= amounts[i]
	}
	return nil
}
