package lsh

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

var entropyErr = errors.New("cannot read seed from the entropy source")

// NormalStream produces a reproducible sequence of draws from the
// standard normal distribution. The same seed always yields the same
// sequence, independent of machine or process, so hashers built on
// different workers from one seed agree on the planes without any
// coordination.
type NormalStream struct {
	dist distuv.Normal
}

// NewNormalStream creates a stream seeded with the given value
func NewNormalStream(seed uint64) *NormalStream {
	return &NormalStream{
		dist: distuv.Normal{
			Mu:    0,
			Sigma: 1,
			Src:   rand.NewSource(seed),
		},
	}
}

// Rand returns the next draw from the stream
func (s *NormalStream) Rand() float64 {
	return s.dist.Rand()
}

// nextPlane draws dims independent normal values forming one random
// hyperplane. Planes are not normalized since only the sign of the
// dot product matters downstream.
func (s *NormalStream) nextPlane(dims int) []float64 {
	coefs := make([]float64, dims)
	for i := range coefs {
		coefs[i] = s.Rand()
	}
	return coefs
}

// RandomSeed returns a seed read from the process entropy source.
// Use it when hashes don't need to be reproduced on other machines --
// with a random seed two independently built hashers will NOT agree
// on bucket values.
func RandomSeed() (uint64, error) {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, entropyErr
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}
