package strategy

import (
	"quadrafund.io/quadra/lib/ballot"
	"quadrafund.io/quadra/lib/common"
	"quadrafund.io/quadra/lib/errors"
	"quadrafund.io/quadra/lib/storage"
)

// NewCappedStrategy is a variant of the base strategy that limits how
// much one voter may direct to a single grant within one batch. The cap
// is per (grant) across the batch, summed over every token at face value.
func NewCappedStrategy(address common.Address, st *storage.LevelDBBackend, limit common.Amount) *BaseStrategy {
	s := NewBaseStrategy(address, st)
	s.AddBatchCheck(newGrantCapCheck(limit))

	return s
}

func newGrantCapCheck(limit common.Amount) BatchCheckMaker {
	return func() BatchCheck {
		totals := map[common.Address]common.Amount{}

		return func(voter common.Address, b ballot.Ballot) error {
			total, err := totals[b.Grant].Add(b.Amount)
			if err != nil {
				return errors.InvalidBallot.Clone().SetData("field", "amount")
			}
			if total.Cmp(limit) > 0 {
				return errors.InvalidBallot.Clone().
					SetData("reason", "per-grant cap exceeded").
					SetData("grant", b.Grant.Hex()).
					SetData("cap", limit.String())
			}

			totals[b.Grant] = total
			return nil
		}
	}
}
