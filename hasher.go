package lsh

import (
	"bytes"
	"encoding/gob"
	"errors"
	"sync"

	"gonum.org/v1/gonum/blas/blas64"
)

// maxRepeat is how many plane bits fit into one packed hash value
const maxRepeat = 64

var (
	dimensionsNumberErr     = errors.New("dimensions number must be a positive integer")
	repeatNumberErr         = errors.New("repetitions number must be a positive integer")
	repeatOverflowErr       = errors.New("repetitions number must not exceed 64 bits of the packed hash")
	hashesNumberErr         = errors.New("hashes number must be a positive integer")
	hasherEmptyInstancesErr = errors.New("hasher must contain at least one instance")
	vectorDimsMismatchErr   = errors.New("input vector length must be equal to the configured dimensions number")
)

func init() {
	gob.Register(&HyperplaneHasher{})
}

// BitHasher produces a single 0/1 bit of the LSH code for an input
// vector. Implementations carry their own random parameters, drawn once
// at family construction time; Bit itself must be pure. HyperplaneHasher
// is the cosine-distance variant, other metrics can plug in their own.
type BitHasher interface {
	Bit(vec blas64.Vector) uint64
}

// HyperplaneHasher maps a vector onto one side of a random hyperplane
// through the origin. Two vectors land on the same side with
// probability 1 - theta/pi, theta being the angle between them.
type HyperplaneHasher struct {
	Coefs blas64.Vector
}

// Bit returns 1 if the dot product with the plane normal is strictly
// positive, 0 otherwise. An exact zero resolves to 0, so ties break
// the same way on every platform.
func (h *HyperplaneHasher) Bit(vec blas64.Vector) uint64 {
	if blas64.Dot(h.Coefs, vec) > 0 {
		return 1
	}
	return 0
}

// PackedHash folds the bits of Repeat independent BitHashers into one
// integer, which sharpens the collision probability from 1 - theta/pi
// for a single plane to (1 - theta/pi)^Repeat for the packed value.
type PackedHash struct {
	Bits []BitHasher
}

// Hash calculates the packed LSH code; bit i of the result comes from
// hasher i
func (p *PackedHash) Hash(vec blas64.Vector) int64 {
	var hash int64
	for i, b := range p.Bits {
		hash |= int64(b.Bit(vec)) << uint(i)
	}
	return hash
}

// HashResult is a single (family member id, packed hash value) pair
type HashResult struct {
	LSHID int
	Hash  int64
}

// Config holds all needed constants for creating the Hasher instance
type Config struct {
	// Dims is the dimensionality of the input vectors
	Dims int
	// Repeat is the number of planes packed into every hash value,
	// must not exceed the 64 bits of the packed integer
	Repeat int
	// NumHashes is the size of the hash family
	NumHashes int
	// Seed for the planes generator: hashers built from equal configs
	// produce equal hashes on any machine. Use RandomSeed() when
	// reproducibility across instances is not needed
	Seed uint64
}

// Hasher holds NumHashes packed hash functions all derived from the
// config seed. Instances are immutable after New, so GetHashes is safe
// to call from any number of goroutines.
type Hasher struct {
	mutex     sync.RWMutex
	Config    Config
	Instances []PackedHash
}

// HasherEncode using for encoding/decoding the Hasher structure
type HasherEncode struct {
	Config    Config
	Instances []PackedHash
}

// New validates the config and builds the hash family. Family member 0
// consumes its planes from the stream before member 1 and so on; this
// order is part of the reproducibility contract, since matching buckets
// across workers requires bit-for-bit identical planes.
func New(config Config) (*Hasher, error) {
	if config.Dims <= 0 {
		return nil, dimensionsNumberErr
	}
	if config.Repeat <= 0 {
		return nil, repeatNumberErr
	}
	if config.Repeat > maxRepeat {
		return nil, repeatOverflowErr
	}
	if config.NumHashes <= 0 {
		return nil, hashesNumberErr
	}
	hasher := &Hasher{
		Config:    config,
		Instances: make([]PackedHash, config.NumHashes),
	}
	stream := NewNormalStream(config.Seed)
	for i := range hasher.Instances {
		bits := make([]BitHasher, config.Repeat)
		for j := range bits {
			bits[j] = &HyperplaneHasher{Coefs: NewVec(stream.nextPlane(config.Dims))}
		}
		hasher.Instances[i] = PackedHash{Bits: bits}
	}
	return hasher, nil
}

// NewRandomized builds the hash family with a seed taken from the
// entropy source, ignoring config.Seed. Hashes stay usable but are not
// reproducible by independently created hashers.
func NewRandomized(config Config) (*Hasher, error) {
	seed, err := RandomSeed()
	if err != nil {
		return nil, err
	}
	config.Seed = seed
	return New(config)
}

// GetHashes returns calculated lsh values for a given vector, one
// HashResult per family member, ordered by ascending LSHID. The input
// vector is borrowed read-only and must have exactly Config.Dims
// elements; a mismatch fails the call but leaves the hasher usable.
func (hasher *Hasher) GetHashes(inpVec []float64) ([]HashResult, error) {
	hasher.mutex.RLock()
	defer hasher.mutex.RUnlock()

	if len(inpVec) != hasher.Config.Dims {
		return nil, vectorDimsMismatchErr
	}
	vec := NewVec(inpVec)
	results := make([]HashResult, len(hasher.Instances))
	for i := range hasher.Instances {
		results[i] = HashResult{
			LSHID: i,
			Hash:  hasher.Instances[i].Hash(vec),
		}
	}
	return results, nil
}

// Dump encodes Hasher object as a byte-array
func (hasher *Hasher) Dump() ([]byte, error) {
	hasher.mutex.RLock()
	defer hasher.mutex.RUnlock()

	if len(hasher.Instances) == 0 {
		return nil, hasherEmptyInstancesErr
	}
	buf := &bytes.Buffer{}
	enc := gob.NewEncoder(buf)
	encodable := HasherEncode{
		Config:    hasher.Config,
		Instances: hasher.Instances,
	}
	err := enc.Encode(encodable)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load restores the Hasher struct from the byte-array
func (hasher *Hasher) Load(inp []byte) error {
	hasher.mutex.Lock()
	defer hasher.mutex.Unlock()

	dec := gob.NewDecoder(bytes.NewBuffer(inp))
	var decoded HasherEncode
	if err := dec.Decode(&decoded); err != nil {
		return err
	}
	hasher.Config = decoded.Config
	hasher.Instances = decoded.Instances
	return nil
}
