package lsh

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/blas/blas64"
)

func TestNewVec(t *testing.T) {
	t.Parallel()
	var v blas64.Vector
	v = NewVec([]float64{0.0, 42.0})
	if math.Abs(blas64.Asum(v)-42.0) > tol {
		t.Error("Corrupted conversion to blas vector")
	}
	v = NewVec(nil)
	if blas64.Asum(v) != 0.0 {
		t.Error("Corrupted conversion to blas vector: nil should return empty vector")
	}
}

func TestL2(t *testing.T) {
	t.Parallel()
	v1 := NewVec([]float64{0.0, 0.0})
	v2 := NewVec([]float64{-4.0, 3.0})
	l2 := L2(v1, v2)
	if math.Abs(l2-5.0) > tol {
		t.Error("L2 distance is wrong")
	}
	if math.Abs(v2.Data[0]+4.0) > tol {
		t.Error("L2 must not mutate its arguments")
	}
}

func TestCosineSim(t *testing.T) {
	t.Parallel()
	v1 := NewVec([]float64{0.0, 1.0})
	v2 := NewVec([]float64{0.0, 1.0})
	v3 := NewVec([]float64{1.0, 0.0})
	v4 := NewVec([]float64{0.0, -1.0})
	sim1 := CosineSim(v1, v2)
	if math.Abs(sim1-0.0) > tol {
		t.Error("Cosine similarity must be 0.0 for equal vectors")
	}
	sim2 := CosineSim(v1, v3)
	if math.Abs(sim2-1.0) > tol {
		t.Error("Cosine similarity must be 1.0 for orthogonal vectors")
	}
	sim3 := CosineSim(v1, v4)
	if math.Abs(sim3-2.0) > tol {
		t.Error("Cosine similarity must be 2.0 for multidirectional vectors")
	}
}

func TestIsZeroVec(t *testing.T) {
	t.Parallel()
	v1 := NewVec([]float64{0.0, 0.0})
	v2 := NewVec([]float64{0.0, 1.0})
	if !IsZeroVector([]float64{0.0, 0.0}) {
		t.Error("Provided vector should be zero vector")
	}
	if IsZeroVector([]float64{-1.0, 1.0}) {
		t.Error("Provided vector should be non-zero vector")
	}
	if !IsZeroVectorBlas(v1) {
		t.Error("Provided vector should be zero vector")
	}
	if IsZeroVectorBlas(v2) {
		t.Error("Provided vector should be non-zero vector")
	}
}

func TestConvert(t *testing.T) {
	t.Parallel()
	floats := ConvertTo64([]float32{1.5, -2.0})
	if len(floats) != 2 || math.Abs(floats[0]-1.5) > tol || math.Abs(floats[1]+2.0) > tol {
		t.Error("Corrupted conversion from float32 slice")
	}
	ints := ConvertToInt([]int32{3, -4})
	if len(ints) != 2 || ints[0] != 3 || ints[1] != -4 {
		t.Error("Corrupted conversion from int32 slice")
	}
}
