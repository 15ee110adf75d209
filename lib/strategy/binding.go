package strategy

import (
	"fmt"

	"quadrafund.io/quadra/lib/common"
	"quadrafund.io/quadra/lib/storage"
)

// RoundBinding is the one write-once record a strategy instance owns:
// which round may call `Vote`. It is a guarded assignment rather than a
// mapping because one instance serves exactly one round for its lifetime.
//
// models
//  * 'round'
// 	- 'vs-round-<strategy address>': `RoundBinding`

const RoundBindingPrefix string = "vs-round-"

type RoundBinding struct {
	Strategy common.Address `json:"strategy"`
	Round    common.Address `json:"round"`
}

func GetRoundBindingKey(strategy common.Address) string {
	return fmt.Sprintf("%s%s", RoundBindingPrefix, strategy.Hex())
}

// Save writes the binding with create-only semantics; a second write for
// the same strategy fails with `StorageRecordAlreadyExists`.
func (rb RoundBinding) Save(st storage.DBBackend) error {
	return st.New(GetRoundBindingKey(rb.Strategy), rb)
}

func GetRoundBinding(st storage.DBBackend, strategy common.Address) (RoundBinding, error) {
	var rb RoundBinding
	if err := st.Get(GetRoundBindingKey(strategy), &rb); err != nil {
		return RoundBinding{}, err
	}

	return rb, nil
}

func ExistRoundBinding(st storage.DBBackend, strategy common.Address) (bool, error) {
	return st.Has(GetRoundBindingKey(strategy))
}
