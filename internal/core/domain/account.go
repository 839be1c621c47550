package domain

import "github.com/G4F0334/gamemarket/pkg/mathutil"

// Account is the balance of an identity in the settlement currency.
type Account struct {
	Owner   Pubkey
	Balance uint64
}

// NewAccount returns an empty account.
func NewAccount(owner Pubkey) *Account {
	return &Account{Owner: owner}
}

func (a *Account) Address() Address {
	return AccountAddress(a.Owner)
}

// Debit removes amount from the balance.
func (a *Account) Debit(amount uint64) error {
	balance, err := mathutil.CheckedSub(a.Balance, amount)
	if err != nil {
		return ErrInsufficientFunds
	}
	a.Balance = balance
	return nil
}

// Credit adds amount to the balance.
func (a *Account) Credit(amount uint64) error {
	balance, err := mathutil.CheckedAdd(a.Balance, amount)
	if err != nil {
		return ErrArithmeticOverflow
	}
	a.Balance = balance
	return nil
}
