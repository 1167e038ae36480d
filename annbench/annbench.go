// Package annbench provides host-side helpers for measuring hashing
// quality on the ann-benchmarks datasets: loading vectors from hdf5
// tables, hashing whole datasets and estimating collision rates.
package annbench

import (
	"errors"

	"github.com/cheggaaa/pb/v3"
	lsh "github.com/gasparian/cosine-lsh-go"
	guuid "github.com/google/uuid"
	"gonum.org/v1/hdf5"
)

var vectorsLengthErr = errors.New("vectors slice length must be a multiple of the dimensions number")

// HashedRecord holds one dataset row id with its family of hashes
type HashedRecord struct {
	ID      string
	Results []lsh.HashResult
}

// Objects inside the hdf5:
// train
// test
// distances
// neighbors

// GetVectorsFromHDF5 returns slice of feature vectors, from the hdf5 table
func GetVectorsFromHDF5(table *hdf5.File, datasetName string, vecs interface{}) error {
	dataset, err := table.OpenDataset(datasetName)
	if err != nil {
		return err
	}
	defer dataset.Close()

	fileSpace := dataset.Space()
	numTicks := fileSpace.SimpleExtentNPoints()

	switch vecs := vecs.(type) {
	case *[]float32:
		*vecs = make([]float32, numTicks)
	case *[]int32:
		*vecs = make([]int32, numTicks)
	}

	err = dataset.Read(vecs)
	if err != nil {
		return err
	}

	return nil
}

// SplitVectors cuts the flat hdf5 buffer into rows of dims elements
func SplitVectors(flat []float32, dims int) ([][]float64, error) {
	if dims <= 0 || len(flat)%dims != 0 {
		return nil, vectorsLengthErr
	}
	splitted := make([][]float64, len(flat)/dims)
	for i := 0; i <= len(flat)-dims; i = i + dims {
		splitted[i/dims] = lsh.ConvertTo64(flat[i : i+dims])
	}
	return splitted, nil
}

// HashDataset hashes every row assigning it a fresh unique id, with a
// progress bar since the ann-benchmarks datasets hold tens of
// thousands of vectors
func HashDataset(hasher *lsh.Hasher, vecs [][]float64) ([]HashedRecord, error) {
	records := make([]HashedRecord, len(vecs))
	bar := pb.StartNew(len(vecs))
	defer bar.Finish()
	for i := range vecs {
		bar.Increment()
		results, err := hasher.GetHashes(vecs[i])
		if err != nil {
			return nil, err
		}
		records[i] = HashedRecord{
			ID:      guuid.NewString(),
			Results: results,
		}
	}
	return records, nil
}

// CollisionRate returns the fraction of family members on which the
// two vectors hash into the same bucket
func CollisionRate(hasher *lsh.Hasher, a, b []float64) (float64, error) {
	aHashes, err := hasher.GetHashes(a)
	if err != nil {
		return 0.0, err
	}
	bHashes, err := hasher.GetHashes(b)
	if err != nil {
		return 0.0, err
	}
	equal := 0
	for k := range aHashes {
		if aHashes[k].Hash == bHashes[k].Hash {
			equal++
		}
	}
	return float64(equal) / float64(len(aHashes)), nil
}
