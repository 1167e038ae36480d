package annbench

import (
	"math"
	"testing"

	lsh "github.com/gasparian/cosine-lsh-go"
)

func TestSplitVectors(t *testing.T) {
	flat := []float32{1.0, 2.0, 3.0, 4.0, 5.0, 6.0}
	splitted, err := SplitVectors(flat, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(splitted) != 2 {
		t.Fatal("Expected two rows after the split")
	}
	if math.Abs(splitted[1][0]-4.0) > 1e-9 {
		t.Fatal("Rows content got corrupted during the split")
	}
	_, err = SplitVectors(flat, 4)
	if err != vectorsLengthErr {
		t.Errorf("Expected the vectors length error, got: %v", err)
	}
}

func TestHashDataset(t *testing.T) {
	hasher, err := lsh.New(lsh.Config{Dims: 3, Repeat: 8, NumHashes: 4, Seed: 42})
	if err != nil {
		t.Fatal(err)
	}
	vecs := [][]float64{
		{1.0, 0.0, 0.0},
		{0.0, 1.0, 0.0},
		{1.0, 0.0, 0.0},
	}
	records, err := HashDataset(hasher, vecs)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != len(vecs) {
		t.Fatal("Every row must produce a record")
	}
	if records[0].ID == records[2].ID {
		t.Fatal("Row ids must be unique")
	}
	for k := range records[0].Results {
		if records[0].Results[k] != records[2].Results[k] {
			t.Fatal("Equal rows must produce equal hashes")
		}
	}
	_, err = HashDataset(hasher, [][]float64{{1.0}})
	if err == nil {
		t.Error("Rows of the wrong dimensionality must fail the run")
	}
}

func TestCollisionRate(t *testing.T) {
	hasher, err := lsh.New(lsh.Config{Dims: 3, Repeat: 4, NumHashes: 16, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	rate, err := CollisionRate(hasher, []float64{1.0, 2.0, 3.0}, []float64{1.0, 2.0, 3.0})
	if err != nil {
		t.Fatal(err)
	}
	if rate != 1.0 {
		t.Fatal("Identical vectors must collide on every family member")
	}
	rate, err = CollisionRate(hasher, []float64{1.0, 0.0, 0.0}, []float64{-1.0, 0.0, 0.0})
	if err != nil {
		t.Fatal(err)
	}
	if rate != 0.0 {
		t.Fatal("Antiparallel vectors must not collide on any family member")
	}
}
