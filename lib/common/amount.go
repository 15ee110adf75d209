//
// Define the `Amount` type, which is the monetary type used across the code base
//
// An `Amount` is an unsigned 256 bit integer, matching the 32 byte
// big-endian field of the ballot wire format.
// In addition to the `Amount` type, some member functions are defined:
// - `Add` / `Sub` do an addition / substraction and return an error object
// - `MustAdd` / `MustSub` call `Add` / `Sub` and turn any `error` into a `panic`.
//   Those are provided for testing / quick prototyping and should not be in production code.
// - Invariant `panic`s if the instance it's called on violates its invariant (see Contract programming)
//
package common

import (
	"fmt"
	"math/big"

	"quadrafund.io/quadra/lib/errors"
)

// AmountByteLength is the serialized width of an `Amount` on the wire.
const AmountByteLength = 32

var maxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// Main monetary type used across quadra. The zero value is a valid zero
// amount. Value semantics: arithmetic never mutates the receiver.
type Amount struct {
	v *big.Int
}

func NewAmount(v uint64) Amount {
	return Amount{v: new(big.Int).SetUint64(v)}
}

func NewAmountFromBig(v *big.Int) (Amount, error) {
	if v == nil || v.Sign() < 0 {
		return Amount{}, errors.AmountUnderZero
	}
	if v.Cmp(maxAmount) > 0 {
		return Amount{}, errors.MaximumAmountReached
	}

	return Amount{v: new(big.Int).Set(v)}, nil
}

// AmountFromBytes reads a 32 byte big-endian unsigned integer. Any 32 byte
// input is a valid amount; shorter or longer inputs are the caller's
// framing bug and are rejected.
func AmountFromBytes(b []byte) (Amount, error) {
	if len(b) != AmountByteLength {
		return Amount{}, errors.InvalidAmountString.Clone().SetData("length", len(b))
	}

	return Amount{v: new(big.Int).SetBytes(b)}, nil
}

// Parse an `Amount` from a string of decimal digits.
func AmountFromString(s string) (Amount, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return Amount{}, errors.InvalidAmountString.Clone().SetData("input", s)
	}

	return NewAmountFromBig(v)
}

// Same as AmountFromString, except it `panic`s if an error happens
func MustAmountFromString(s string) Amount {
	a, err := AmountFromString(s)
	if err != nil {
		panic(err)
	}

	return a
}

func (a Amount) big() *big.Int {
	if a.v == nil {
		return new(big.Int)
	}

	return a.v
}

// Check this type's invariant, that is, its value fits in 256 bits
func (a Amount) Invariant() {
	if a.big().Sign() < 0 || a.big().Cmp(maxAmount) > 0 {
		panic(fmt.Errorf("Amount '%s' is out of the unsigned 256 bit range", a.big().String()))
	}
}

func (a Amount) IsZero() bool {
	return a.big().Sign() == 0
}

func (a Amount) Cmp(b Amount) int {
	return a.big().Cmp(b.big())
}

func (a Amount) Equal(b Amount) bool {
	return a.Cmp(b) == 0
}

//
// Add an `Amount` to this `Amount`
//
// If the resulting value would not fit in 256 bits, an error is returned.
//
func (a Amount) Add(added Amount) (Amount, error) {
	a.Invariant()
	added.Invariant()

	n := new(big.Int).Add(a.big(), added.big())
	if n.Cmp(maxAmount) > 0 {
		return Amount{}, errors.MaximumAmountReached
	}

	return Amount{v: n}, nil
}

// Counterpart of `Add` which panic instead of returning an error
// Useful for debugging and testing, should be avoided in regular code
func (a Amount) MustAdd(added Amount) Amount {
	v, err := a.Add(added)
	if err != nil {
		panic(err)
	}

	return v
}

//
// Substract an `Amount` from this `Amount`
//
// If the resulting value would underflow, an error is returned.
//
func (a Amount) Sub(sub Amount) (Amount, error) {
	a.Invariant()
	sub.Invariant()

	if a.Cmp(sub) < 0 {
		return Amount{}, errors.AmountUnderZero
	}

	return Amount{v: new(big.Int).Sub(a.big(), sub.big())}, nil
}

// Counterpart of `Sub` which panic instead of returning an error
// Useful for debugging and testing, should be avoided in regular code
func (a Amount) MustSub(sub Amount) Amount {
	v, err := a.Sub(sub)
	if err != nil {
		panic(err)
	}

	return v
}

// Bytes returns the fixed 32 byte big-endian serialization used by the
// ballot wire format.
func (a Amount) Bytes() []byte {
	a.Invariant()

	b := make([]byte, AmountByteLength)
	a.big().FillBytes(b)
	return b
}

// Stringer interface implementation
func (a Amount) String() string {
	a.Invariant()
	return a.big().String()
}

// Implement JSON's Marshaler interface
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", a.String())), nil
}

// Implement JSON's Unmarshaler interface
func (a *Amount) UnmarshalJSON(b []byte) (err error) {
	if len(b) < 2 {
		return errors.InvalidAmountString
	}
	*a, err = AmountFromString(string(b[1 : len(b)-1]))
	return
}
