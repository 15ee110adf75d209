package strategy

import (
	"quadrafund.io/quadra/lib/common"
	"quadrafund.io/quadra/lib/errors"
	"quadrafund.io/quadra/lib/storage"
)

// Deployments pick a concrete strategy by name; the registry is the
// extension point for new variants.

type Constructor func(address common.Address, st *storage.LevelDBBackend) Strategy

var (
	strategies = make(map[string]Constructor)
)

func Register(name string, c Constructor) {
	strategies[name] = c
}

func HasStrategy(name string) bool {
	_, ok := strategies[name]
	return ok
}

func New(name string, address common.Address, st *storage.LevelDBBackend) (Strategy, error) {
	c, ok := strategies[name]
	if !ok {
		return nil, errors.UnknownStrategy.Clone().SetData("name", name)
	}

	return c(address, st), nil
}

func init() {
	Register("base", func(address common.Address, st *storage.LevelDBBackend) Strategy {
		return NewBaseStrategy(address, st)
	})
}
