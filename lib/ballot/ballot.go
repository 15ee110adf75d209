//
// Ballot is a single voter's instruction to allocate funds of a given
// token/amount to a given grant. Ballots travel as fixed 72 byte records:
//
//   [ 0:20] grant payout address
//   [20:40] funding token address
//   [40:72] amount, 32 byte big-endian unsigned integer
//
// There is no padding and no framing; anything that is not exactly 72
// bytes is malformed. Ballots are ephemeral, they live only inside one
// vote call and are never persisted.
//
package ballot

import (
	"bytes"

	"quadrafund.io/quadra/lib/common"
	"quadrafund.io/quadra/lib/errors"
)

const (
	grantOffset  = 0
	tokenOffset  = common.AddressLength
	amountOffset = common.AddressLength * 2

	// EncodedLength is the exact wire size of one encoded ballot.
	EncodedLength = common.AddressLength*2 + common.AmountByteLength
)

type Ballot struct {
	Grant  common.Address `json:"grant"`
	Token  common.Address `json:"token"`
	Amount common.Amount  `json:"amount"`
}

func NewBallot(grant, token common.Address, amount common.Amount) Ballot {
	return Ballot{
		Grant:  grant,
		Token:  token,
		Amount: amount,
	}
}

// ParseBallot decodes one wire record. The only failure mode is
// `MalformedBallot`; field-level invariants are left to `IsWellFormed` so
// that callers can tell framing errors from bad ballot data.
func ParseBallot(b []byte) (Ballot, error) {
	if len(b) != EncodedLength {
		return Ballot{}, errors.MalformedBallot.Clone().SetData("length", len(b))
	}

	amount, err := common.AmountFromBytes(b[amountOffset:EncodedLength])
	if err != nil {
		return Ballot{}, errors.MalformedBallot
	}

	return Ballot{
		Grant:  common.BytesToAddress(b[grantOffset:tokenOffset]),
		Token:  common.BytesToAddress(b[tokenOffset:amountOffset]),
		Amount: amount,
	}, nil
}

// Serialize is the inverse of `ParseBallot`; the round-trip law
// `ParseBallot(b.Serialize()) == b` holds for every well formed ballot.
func (b Ballot) Serialize() ([]byte, error) {
	var w bytes.Buffer
	w.Write(b.Grant.Bytes())
	w.Write(b.Token.Bytes())
	w.Write(b.Amount.Bytes())

	return w.Bytes(), nil
}

func (b Ballot) MustSerialize() []byte {
	encoded, _ := b.Serialize()
	return encoded
}

// IsWellFormed checks the ballot invariants: non-zero grant and token
// addresses and a positive amount.
func (b Ballot) IsWellFormed() error {
	if common.IsZeroAddress(b.Grant) {
		return errors.InvalidBallot.Clone().SetData("field", "grant")
	}
	if common.IsZeroAddress(b.Token) {
		return errors.InvalidBallot.Clone().SetData("field", "token")
	}
	if b.Amount.IsZero() {
		return errors.InvalidBallot.Clone().SetData("field", "amount")
	}

	return nil
}

func (b Ballot) String() string {
	return string(common.MustJSONMarshal(b))
}
