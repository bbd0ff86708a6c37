package store

import (
	"fmt"

	"github.com/hashicorp/consul/api"
)

// ConsulStore mirrors option values through Consul's KV store, for a
// fleet of interpreters sharing centrally-managed defaults.
type ConsulStore struct {
	kv     *api.KV
	prefix string
}

// NewConsulStore dials addr (empty uses the agent's default, typically
// 127.0.0.1:8500) and scopes every key under prefix.
func NewConsulStore(addr, prefix string) (*ConsulStore, error) {
	cfg := api.DefaultConfig()
	if addr != "" {
		cfg.Address = addr
	}

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("store: consul client: %w", err)
	}

	return &ConsulStore{kv: client.KV(), prefix: prefix}, nil
}

func (s *ConsulStore) Load(name string) (string, bool, error) {
	pair, _, err := s.kv.Get(s.key(name), nil)
	if err != nil {
		return "", false, err
	}
	if pair == nil {
		return "", false, nil
	}
	return string(pair.Value), true, nil
}

func (s *ConsulStore) Save(name, value string) error {
	_, err := s.kv.Put(&api.KVPair{Key: s.key(name), Value: []byte(value)}, nil)
	return err
}

func (s *ConsulStore) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}
