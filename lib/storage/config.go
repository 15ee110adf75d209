package storage

import (
	"net/url"

	"quadrafund.io/quadra/lib/errors"
)

// Config is parsed from a storage URI; `memory://` or `file:///path/to/db`.
type Config struct {
	Scheme string
	Path   string
}

func NewConfigFromString(s string) (*Config, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, errors.InvalidStorageConfig.Clone().SetData("uri", s)
	}

	switch u.Scheme {
	case "memory":
		return &Config{Scheme: "memory"}, nil
	case "file":
		if len(u.Path) < 1 {
			return nil, errors.InvalidStorageConfig.Clone().SetData("uri", s)
		}
		return &Config{Scheme: "file", Path: u.Path}, nil
	}

	return nil, errors.InvalidStorageConfig.Clone().SetData("uri", s)
}

func NewStorage(config *Config) (*LevelDBBackend, error) {
	st := &LevelDBBackend{}
	if err := st.Init(config); err != nil {
		return nil, err
	}

	return st, nil
}
