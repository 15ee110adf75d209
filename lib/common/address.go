package common

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"quadrafund.io/quadra/lib/errors"
)

// Address is a 20 byte account identifier, the same shape the wire format
// carries for grants, tokens, voters and rounds.
type Address = ethcommon.Address

const AddressLength = ethcommon.AddressLength

var ZeroAddress = Address{}

func BytesToAddress(b []byte) Address {
	return ethcommon.BytesToAddress(b)
}

// ParseAddress parses a `0x` prefixed hex string into an `Address`.
func ParseAddress(s string) (Address, error) {
	if !ethcommon.IsHexAddress(s) {
		return ZeroAddress, errors.InvalidAddress.Clone().SetData("input", s)
	}

	return ethcommon.HexToAddress(s), nil
}

func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}

	return a
}

func IsZeroAddress(a Address) bool {
	return a == ZeroAddress
}

// DeriveAddress makes a deterministic address from the given seed parts.
// Used for strategy instances, which have no keypair of their own.
func DeriveAddress(parts ...[]byte) Address {
	var seed []byte
	for _, p := range parts {
		seed = append(seed, p...)
	}

	return ethcommon.BytesToAddress(crypto.Keccak256(seed)[12:])
}
