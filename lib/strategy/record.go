package strategy

import (
	"bytes"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"quadrafund.io/quadra/lib/ballot"
	"quadrafund.io/quadra/lib/common"
	"quadrafund.io/quadra/lib/observer"
)

// VoteRecord is the audit event emitted once per executed ballot. It is
// never written to contract storage; downstream accounting (matching pool
// calculation and the like) consumes the event log.
type VoteRecord struct {
	Voter  common.Address `json:"voter"`
	Grant  common.Address `json:"grant"`
	Token  common.Address `json:"token"`
	Amount common.Amount  `json:"amount"`
	Round  common.Address `json:"round"`
}

func NewVoteRecord(voter common.Address, b ballot.Ballot, round common.Address) VoteRecord {
	return VoteRecord{
		Voter:  voter,
		Grant:  b.Grant,
		Token:  b.Token,
		Amount: b.Amount,
		Round:  round,
	}
}

func (vr VoteRecord) Serialize() ([]byte, error) {
	return common.EncodeJSONValue(vr)
}

// Hash identifies the record by content: keccak256 over the fixed-width
// concatenation of every field.
func (vr VoteRecord) Hash() ethcommon.Hash {
	var w bytes.Buffer
	w.Write(vr.Voter.Bytes())
	w.Write(vr.Grant.Bytes())
	w.Write(vr.Token.Bytes())
	w.Write(vr.Amount.Bytes())
	w.Write(vr.Round.Bytes())

	return crypto.Keccak256Hash(w.Bytes())
}

func (vr VoteRecord) String() string {
	return string(common.MustJSONMarshal(vr))
}

// Trigger publishes the record on every event key a subscriber may be
// listening on. Callers must only trigger after the batch has committed.
func (vr VoteRecord) Trigger() {
	events := []string{
		observer.NewEvent(observer.ResourceVote, observer.ConditionAll, "").String(),
		observer.NewEvent(observer.ResourceVote, observer.ConditionRound, vr.Round.Hex()).String(),
		observer.NewEvent(observer.ResourceVote, observer.ConditionGrant, vr.Grant.Hex()).String(),
		observer.NewEvent(observer.ResourceVote, observer.ConditionVoter, vr.Voter.Hex()).String(),
	}

	for _, event := range events {
		observer.VoteObserver.Trigger(event, vr)
	}
}
