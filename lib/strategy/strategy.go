//
// Package strategy implements pluggable ballot casting and fund routing
// for one funding round.
//
// A strategy instance binds to exactly one round. The round forwards
// voter submissions as batches of encoded ballots; the strategy decodes
// and validates each ballot, moves funds from the voter to the grant's
// payout address, and emits one audit event per ballot. A batch either
// executes completely or leaves no trace: every balance write happens
// inside one storage transaction, and events are published only after
// that transaction commits.
//
package strategy

import (
	"quadrafund.io/quadra/lib/ballot"
	"quadrafund.io/quadra/lib/common"
)

// Call carries the invocation context the execution environment would
// supply on chain: the identity of the direct caller.
type Call struct {
	Caller common.Address
}

// Strategy is the {init, vote} contract a round depends on. Concrete
// strategies differ only in validation and weighting; the round never
// sees their internals.
type Strategy interface {
	// Address identifies this instance; it is the spender the voter must
	// approve on the funding token.
	Address() common.Address

	// Init binds the calling round to this instance, exactly once.
	Init(call Call) error

	// Vote executes a batch of encoded ballots on behalf of `voter`.
	// Only the bound round may call it.
	Vote(call Call, encodedBallots [][]byte, voter common.Address) error

	// Round returns the bound round address, or `NotInitialized`.
	Round() (common.Address, error)
}

// BatchCheck inspects ballots one by one in submission order and may keep
// running state for the batch. Returning an error aborts the whole batch.
type BatchCheck func(voter common.Address, b ballot.Ballot) error

// BatchCheckMaker builds a fresh BatchCheck for each vote call, so
// per-batch state never leaks across calls.
type BatchCheckMaker func() BatchCheck
