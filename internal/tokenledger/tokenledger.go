// Package tokenledger is an in-process fungible token and native currency ledger.
// It backs the sale's asset, quote token and native payments when no chain is attached.
package tokenledger

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/holiman/uint256"
)

const (
	ErrTransferToZeroAddress  = errs.ErrorKind("ERC20: transfer to the zero address")
	ErrTransferExceedsBalance = errs.ErrorKind("ERC20: transfer amount exceeds balance")
	ErrInsufficientAllowance  = errs.ErrorKind("ERC20: insufficient allowance")
	ErrApproveToZeroAddress   = errs.ErrorKind("ERC20: approve to the zero address")
	ErrMintToZeroAddress      = errs.ErrorKind("ERC20: mint to the zero address")
	ErrBurnExceedsBalance     = errs.ErrorKind("ERC20: burn amount exceeds balance")
)

// balances is not synchronized. Owners guard it with their own lock.
type balances map[common.Address]*uint256.Int

func (b balances) of(account common.Address) *uint256.Int {
	if balance, ok := b[account]; ok {
		return new(uint256.Int).Set(balance)
	}
	return new(uint256.Int)
}

func (b balances) move(from, to common.Address, amount *uint256.Int) error {
	if to == (common.Address{}) {
		return errors.WithStack(ErrTransferToZeroAddress)
	}
	fromBalance := b.of(from)
	if fromBalance.Lt(amount) {
		return errors.Wrapf(ErrTransferExceedsBalance, "balance %s, amount %s", fromBalance.Dec(), amount.Dec())
	}
	b[from] = fromBalance.Sub(fromBalance, amount)
	toBalance := b.of(to)
	b[to] = toBalance.Add(toBalance, amount)
	return nil
}

func (b balances) credit(account common.Address, amount *uint256.Int) error {
	balance, overflow := new(uint256.Int).AddOverflow(b.of(account), amount)
	if overflow {
		return errors.WithStack(errs.OverflowUint256)
	}
	b[account] = balance
	return nil
}

// Token is an ERC20-like fungible token.
type Token struct {
	mu          sync.RWMutex
	name        string
	symbol      string
	decimals    uint8
	totalSupply *uint256.Int
	balances    balances
	allowances  map[common.Address]map[common.Address]*uint256.Int
}

func NewToken(name, symbol string, decimals uint8) *Token {
	return &Token{
		name:        name,
		symbol:      symbol,
		decimals:    decimals,
		totalSupply: new(uint256.Int),
		balances:    make(balances),
		allowances:  make(map[common.Address]map[common.Address]*uint256.Int),
	}
}

func (t *Token) Name() string   { return t.name }
func (t *Token) Symbol() string { return t.symbol }
func (t *Token) Decimals() uint8 {
	return t.decimals
}

func (t *Token) TotalSupply() *uint256.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return new(uint256.Int).Set(t.totalSupply)
}

func (t *Token) BalanceOf(_ context.Context, account common.Address) (*uint256.Int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.balances.of(account), nil
}

func (t *Token) Allowance(_ context.Context, owner, spender common.Address) (*uint256.Int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.allowanceOf(owner, spender), nil
}

func (t *Token) allowanceOf(owner, spender common.Address) *uint256.Int {
	if allowance, ok := t.allowances[owner][spender]; ok {
		return new(uint256.Int).Set(allowance)
	}
	return new(uint256.Int)
}

func (t *Token) Mint(to common.Address, amount *uint256.Int) error {
	if to == (common.Address{}) {
		return errors.WithStack(ErrMintToZeroAddress)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	supply, overflow := new(uint256.Int).AddOverflow(t.totalSupply, amount)
	if overflow {
		return errors.Wrap(errs.OverflowUint256, "total supply")
	}
	if err := t.balances.credit(to, amount); err != nil {
		return errors.WithStack(err)
	}
	t.totalSupply = supply
	return nil
}

func (t *Token) Burn(from common.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	balance := t.balances.of(from)
	if balance.Lt(amount) {
		return errors.Wrapf(ErrBurnExceedsBalance, "balance %s, amount %s", balance.Dec(), amount.Dec())
	}
	t.balances[from] = balance.Sub(balance, amount)
	t.totalSupply = new(uint256.Int).Sub(t.totalSupply, amount)
	return nil
}

// Approve sets the amount spender may move out of owner's balance.
func (t *Token) Approve(_ context.Context, owner, spender common.Address, amount *uint256.Int) error {
	if spender == (common.Address{}) {
		return errors.WithStack(ErrApproveToZeroAddress)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.allowances[owner]; !ok {
		t.allowances[owner] = make(map[common.Address]*uint256.Int)
	}
	t.allowances[owner][spender] = new(uint256.Int).Set(amount)
	return nil
}

func (t *Token) Transfer(_ context.Context, from, to common.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return errors.WithStack(t.balances.move(from, to, amount))
}

func (t *Token) TransferFrom(_ context.Context, spender, from, to common.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	allowance := t.allowanceOf(from, spender)
	if allowance.Lt(amount) {
		return errors.Wrapf(ErrInsufficientAllowance, "allowance %s, amount %s", allowance.Dec(), amount.Dec())
	}
	if err := t.balances.move(from, to, amount); err != nil {
		return errors.WithStack(err)
	}
	if spenders, ok := t.allowances[from]; ok {
		spenders[spender] = allowance.Sub(allowance, amount)
	}
	return nil
}

// Bank holds native currency balances.
type Bank struct {
	mu       sync.RWMutex
	balances balances
}

func NewBank() *Bank {
	return &Bank{balances: make(balances)}
}

func (b *Bank) Deposit(account common.Address, amount *uint256.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return errors.WithStack(b.balances.credit(account, amount))
}

func (b *Bank) BalanceOf(_ context.Context, account common.Address) (*uint256.Int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.balances.of(account), nil
}

func (b *Bank) Transfer(_ context.Context, from, to common.Address, amount *uint256.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return errors.WithStack(b.balances.move(from, to, amount))
}
