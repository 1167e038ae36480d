package lsh

import (
	"math"

	"gonum.org/v1/gonum/blas/blas64"
)

const tol = 1e-6

// ConvertTo64 __
func ConvertTo64(ar []float32) []float64 {
	newar := make([]float64, len(ar))
	var v float32
	var i int
	for i, v = range ar {
		newar[i] = float64(v)
	}
	return newar
}

// ConvertToInt __
func ConvertToInt(ar []int32) []int {
	newar := make([]int, len(ar))
	var v int32
	var i int
	for i, v = range ar {
		newar[i] = int(v)
	}
	return newar
}

// NewVec creates new blas vector
func NewVec(data []float64) blas64.Vector {
	if data == nil {
		data = make([]float64, 0)
	}
	return blas64.Vector{
		N:    len(data),
		Inc:  1,
		Data: data,
	}
}

// L2 calculates l2-distance between two vectors
func L2(a, b blas64.Vector) float64 {
	res := NewVec(make([]float64, b.N))
	blas64.Copy(b, res)
	blas64.Axpy(-1.0, a, res)
	return blas64.Nrm2(res)
}

// CosineSim calculates cosine distance btw the two given vectors
func CosineSim(a, b blas64.Vector) float64 {
	cosine := blas64.Dot(a, b) / (blas64.Nrm2(a) * blas64.Nrm2(b))
	return 1.0 - cosine
}

// IsZeroVectorBlas returns true if the sum of vectors' elements close to 0.0
func IsZeroVectorBlas(v blas64.Vector) bool {
	return math.Abs(blas64.Asum(v)) <= tol
}

// IsZeroVector __
func IsZeroVector(v []float64) bool {
	var sum float64 = 0.0
	for _, val := range v {
		sum += math.Abs(val)
	}
	return sum <= tol
}
