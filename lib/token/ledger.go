// Package token keeps fungible token balances and allowances, the
// collaborator the voting strategy moves funds through.
//
// models
//  * 'balance'
// 	- 'tk-balance-<token>-<holder>': `Balance`
//  * 'allowance'
// 	- 'tk-allowance-<token>-<owner>-<spender>': `Allowance`
//
// Every function takes the storage handle as its first argument, so a
// caller holding a transactional handle gets transactional semantics for
// free.
package token

import (
	"fmt"

	"quadrafund.io/quadra/lib/common"
	"quadrafund.io/quadra/lib/errors"
	"quadrafund.io/quadra/lib/storage"
)

const (
	BalancePrefix   string = "tk-balance-"
	AllowancePrefix string = "tk-allowance-"
)

type Balance struct {
	Token  common.Address `json:"token"`
	Holder common.Address `json:"holder"`
	Amount common.Amount  `json:"amount"`
}

type Allowance struct {
	Token     common.Address `json:"token"`
	Owner     common.Address `json:"owner"`
	Spender   common.Address `json:"spender"`
	Remaining common.Amount  `json:"remaining"`
}

func GetBalanceKey(token, holder common.Address) string {
	return fmt.Sprintf("%s%s-%s", BalancePrefix, token.Hex(), holder.Hex())
}

func GetAllowanceKey(token, owner, spender common.Address) string {
	return fmt.Sprintf("%s%s-%s-%s", AllowancePrefix, token.Hex(), owner.Hex(), spender.Hex())
}

// GetBalance returns the holder's balance; a holder without a record has a
// zero balance, not an error.
func GetBalance(st storage.DBBackend, token, holder common.Address) (Balance, error) {
	var b Balance
	err := st.Get(GetBalanceKey(token, holder), &b)
	if err != nil {
		if errors.StorageRecordDoesNotExist.Equal(err) {
			return Balance{Token: token, Holder: holder}, nil
		}
		return Balance{}, err
	}

	return b, nil
}

func GetAllowance(st storage.DBBackend, token, owner, spender common.Address) (Allowance, error) {
	var a Allowance
	err := st.Get(GetAllowanceKey(token, owner, spender), &a)
	if err != nil {
		if errors.StorageRecordDoesNotExist.Equal(err) {
			return Allowance{Token: token, Owner: owner, Spender: spender}, nil
		}
		return Allowance{}, err
	}

	return a, nil
}

func setBalance(st storage.DBBackend, b Balance) error {
	key := GetBalanceKey(b.Token, b.Holder)

	exists, err := st.Has(key)
	if err != nil {
		return err
	}
	if exists {
		return st.Set(key, b)
	}
	return st.New(key, b)
}

func setAllowance(st storage.DBBackend, a Allowance) error {
	key := GetAllowanceKey(a.Token, a.Owner, a.Spender)

	exists, err := st.Has(key)
	if err != nil {
		return err
	}
	if exists {
		return st.Set(key, a)
	}
	return st.New(key, a)
}

// Credit mints `amount` of `token` to `holder`. Setup and testing entry
// point; the strategy itself never credits out of thin air.
func Credit(st storage.DBBackend, token, holder common.Address, amount common.Amount) error {
	b, err := GetBalance(st, token, holder)
	if err != nil {
		return err
	}

	if b.Amount, err = b.Amount.Add(amount); err != nil {
		return err
	}

	return setBalance(st, b)
}

// Approve sets (not increments) the allowance `spender` may pull from
// `owner`, the way `approve` behaves on standard fungible tokens.
func Approve(st storage.DBBackend, token, owner, spender common.Address, amount common.Amount) error {
	return setAllowance(st, Allowance{
		Token:     token,
		Owner:     owner,
		Spender:   spender,
		Remaining: amount,
	})
}

// TransferFrom moves `amount` of `token` from `from` to `to`, spending
// `spender`'s allowance. Insufficient balance or allowance fails with
// `TransferFailed`; the caller's storage transaction decides whether
// partial work within a batch survives.
func TransferFrom(st storage.DBBackend, token, from, to common.Address, amount common.Amount, spender common.Address) error {
	allowance, err := GetAllowance(st, token, from, spender)
	if err != nil {
		return err
	}
	if allowance.Remaining.Cmp(amount) < 0 {
		return errors.TransferFailed.Clone().
			SetData("reason", "insufficient allowance").
			SetData("token", token.Hex()).
			SetData("owner", from.Hex()).
			SetData("spender", spender.Hex())
	}

	fromBalance, err := GetBalance(st, token, from)
	if err != nil {
		return err
	}
	if fromBalance.Amount.Cmp(amount) < 0 {
		return errors.TransferFailed.Clone().
			SetData("reason", "insufficient balance").
			SetData("token", token.Hex()).
			SetData("holder", from.Hex())
	}

	if allowance.Remaining, err = allowance.Remaining.Sub(amount); err != nil {
		return err
	}

	// self transfer leaves the balance untouched but still burns allowance
	if from == to {
		return setAllowance(st, allowance)
	}

	toBalance, err := GetBalance(st, token, to)
	if err != nil {
		return err
	}
	if fromBalance.Amount, err = fromBalance.Amount.Sub(amount); err != nil {
		return err
	}
	if toBalance.Amount, err = toBalance.Amount.Add(amount); err != nil {
		return err
	}

	if err := setAllowance(st, allowance); err != nil {
		return err
	}
	if err := setBalance(st, fromBalance); err != nil {
		return err
	}
	return setBalance(st, toBalance)
}
