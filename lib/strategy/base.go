package strategy

import (
	"strconv"

	"quadrafund.io/quadra/lib/ballot"
	"quadrafund.io/quadra/lib/common"
	"quadrafund.io/quadra/lib/errors"
	"quadrafund.io/quadra/lib/metrics"
	"quadrafund.io/quadra/lib/storage"
	"quadrafund.io/quadra/lib/token"
)

// BaseStrategy is the plain fund-routing strategy: every well formed
// ballot is executed at face value. Variants install extra batch checks
// on top of it.
type BaseStrategy struct {
	address common.Address
	st      *storage.LevelDBBackend

	checkMakers []BatchCheckMaker
}

func NewBaseStrategy(address common.Address, st *storage.LevelDBBackend) *BaseStrategy {
	return &BaseStrategy{
		address: address,
		st:      st,
	}
}

func (s *BaseStrategy) Address() common.Address {
	return s.address
}

// AddBatchCheck appends a validation stage; checks run per ballot in
// submission order, after the well-formedness check and before the
// transfer.
func (s *BaseStrategy) AddBatchCheck(maker BatchCheckMaker) {
	s.checkMakers = append(s.checkMakers, maker)
}

// Init binds the caller as this instance's round. First caller wins;
// every later call fails with `AlreadyInitialized` no matter who calls.
func (s *BaseStrategy) Init(call Call) error {
	if common.IsZeroAddress(call.Caller) {
		return errors.InvalidAddress.Clone().SetData("field", "caller")
	}

	binding := RoundBinding{Strategy: s.address, Round: call.Caller}
	if err := binding.Save(s.st); err != nil {
		if errors.StorageRecordAlreadyExists.Equal(err) {
			return errors.AlreadyInitialized
		}
		return err
	}

	metrics.Strategy.IncBoundRounds()
	log.Info("round bound", "strategy", s.address.Hex(), "round", call.Caller.Hex())

	return nil
}

func (s *BaseStrategy) Round() (common.Address, error) {
	rb, err := GetRoundBinding(s.st, s.address)
	if err != nil {
		if errors.StorageRecordDoesNotExist.Equal(err) {
			return common.ZeroAddress, errors.NotInitialized
		}
		return common.ZeroAddress, err
	}

	return rb.Round, nil
}

// Vote executes a batch of encoded ballots for `voter`, in submission
// order. The batch is all or nothing: the first failure discards every
// transfer already made in this call and nothing is emitted.
func (s *BaseStrategy) Vote(call Call, encodedBallots [][]byte, voter common.Address) error {
	round, err := s.Round()
	if err != nil {
		s.failBatch(err)
		return err
	}
	if call.Caller != round {
		err := errors.Unauthorized.Clone().
			SetData("caller", call.Caller.Hex()).
			SetData("round", round.Hex())
		s.failBatch(err)
		return err
	}

	ts, err := s.st.OpenTransaction()
	if err != nil {
		s.failBatch(err)
		return err
	}

	checks := make([]BatchCheck, 0, len(s.checkMakers))
	for _, maker := range s.checkMakers {
		checks = append(checks, maker())
	}

	records := make([]VoteRecord, 0, len(encodedBallots))
	for _, encoded := range encodedBallots {
		b, err := ballot.ParseBallot(encoded)
		if err != nil {
			return s.abortBatch(ts, err)
		}
		if err := b.IsWellFormed(); err != nil {
			return s.abortBatch(ts, err)
		}
		for _, check := range checks {
			if err := check(voter, b); err != nil {
				return s.abortBatch(ts, err)
			}
		}

		if err := token.TransferFrom(ts, b.Token, voter, b.Grant, b.Amount, s.address); err != nil {
			return s.abortBatch(ts, err)
		}

		records = append(records, NewVoteRecord(voter, b, round))
	}

	if err := ts.Commit(); err != nil {
		return s.abortBatch(ts, err)
	}

	// the event log order is the submission order
	for _, record := range records {
		record.Trigger()
	}

	metrics.Strategy.IncBatches()
	metrics.Strategy.AddBallots(len(records))
	log.Debug(
		"vote batch committed",
		"strategy", s.address.Hex(),
		"round", round.Hex(),
		"voter", voter.Hex(),
		"ballots", len(records),
	)

	return nil
}

func (s *BaseStrategy) abortBatch(ts *storage.LevelDBBackend, err error) error {
	ts.Discard()
	s.failBatch(err)
	return err
}

func (s *BaseStrategy) failBatch(err error) {
	kind := "internal"
	if e, ok := err.(*errors.Error); ok {
		kind = strconv.FormatUint(uint64(e.Code), 10)
	}
	metrics.Strategy.IncFailedBatches(kind)
	log.Debug("vote batch aborted", "strategy", s.address.Hex(), "error", err)
}
