//
// Package round hosts the funding round orchestrator. The round owns
// exactly one voting strategy and is the only address the strategy will
// accept `Vote` calls from.
//
// The strategy's own `Init` is the fragile deploy-then-init idiom: the
// first caller becomes the bound round. `NewRound` closes that window by
// constructing the strategy and initializing it in the same call, before
// any other caller can reach the instance.
//
package round

import (
	"quadrafund.io/quadra/lib/common"
	"quadrafund.io/quadra/lib/storage"
	"quadrafund.io/quadra/lib/strategy"
)

type Round struct {
	address common.Address
	st      *storage.LevelDBBackend
	voting  strategy.Strategy
}

// NewRound deploys the named strategy and binds it to `address`
// atomically. The strategy address is derived from the round address and
// the strategy name, so redeploying the same pair converges on the same
// instance and the write-once binding rejects the second attempt.
func NewRound(address common.Address, name string, st *storage.LevelDBBackend) (*Round, error) {
	votingAddress := common.DeriveAddress(address.Bytes(), []byte(name))

	voting, err := strategy.New(name, votingAddress, st)
	if err != nil {
		return nil, err
	}

	if err := voting.Init(strategy.Call{Caller: address}); err != nil {
		return nil, err
	}

	return &Round{
		address: address,
		st:      st,
		voting:  voting,
	}, nil
}

// OpenRound attaches to an already bound strategy without touching the
// binding.
func OpenRound(address common.Address, name string, st *storage.LevelDBBackend) (*Round, error) {
	votingAddress := common.DeriveAddress(address.Bytes(), []byte(name))

	voting, err := strategy.New(name, votingAddress, st)
	if err != nil {
		return nil, err
	}

	if _, err := voting.Round(); err != nil {
		return nil, err
	}

	return &Round{
		address: address,
		st:      st,
		voting:  voting,
	}, nil
}

func (r *Round) Address() common.Address {
	return r.address
}

func (r *Round) Strategy() strategy.Strategy {
	return r.voting
}

// CastVotes forwards a voter's ballot batch to the bound strategy. The
// caller-verified voter address is the round's responsibility; here it is
// taken at face value from the transport above.
func (r *Round) CastVotes(encodedBallots [][]byte, voter common.Address) error {
	return r.voting.Vote(strategy.Call{Caller: r.address}, encodedBallots, voter)
}
