// Package storage keeps serialized hashers in a pure-kv instance, so a
// fleet of workers can fetch one prebuilt hash family instead of each
// rebuilding it from the seed.
package storage

import (
	"errors"

	lsh "github.com/gasparian/cosine-lsh-go"
	pkv "github.com/gasparian/pure-kv-go/client"
)

const hashersBucket = "hashers"

var (
	hasherNotFoundErr  = errors.New("no hasher stored under the requested key")
	hasherCorruptedErr = errors.New("stored hasher value is not a byte array")
)

// Storage holds pure-kv rpc client
type Storage struct {
	Client *pkv.Client
}

// New creates new Storage object with the specified params
func New(address string, timeout int) *Storage {
	return &Storage{
		Client: pkv.New(address, timeout),
	}
}

// Open instantiates rpc connection and prepares the hashers bucket
func (s *Storage) Open() error {
	err := s.Client.Open()
	if err != nil {
		return err
	}
	return s.Client.Create(hashersBucket)
}

// Close shuts down rpc client
func (s *Storage) Close() {
	s.Client.Close()
}

// SaveHasher serializes the hasher and stores it under the given key
func (s *Storage) SaveHasher(key string, hasher *lsh.Hasher) error {
	dump, err := hasher.Dump()
	if err != nil {
		return err
	}
	return s.Client.Set(hashersBucket, key, dump)
}

// LoadHasher restores a previously saved hasher into the given object
func (s *Storage) LoadHasher(key string, hasher *lsh.Hasher) error {
	val, ok := s.Client.Get(hashersBucket, key)
	if !ok {
		return hasherNotFoundErr
	}
	dump, ok := val.([]byte)
	if !ok {
		return hasherCorruptedErr
	}
	return hasher.Load(dump)
}
