// lsh-bench hashes an ann-benchmarks hdf5 dataset with a seeded cosine
// LSH family and reports how the (lsh_id, hash) buckets would populate.
// The grouping below belongs to the host side: the library itself only
// ever maps one vector to its family of hashes.
package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	lsh "github.com/gasparian/cosine-lsh-go"
	bench "github.com/gasparian/cosine-lsh-go/annbench"
	"github.com/gasparian/cosine-lsh-go/storage"
	"gonum.org/v1/hdf5"
)

type bucketKey struct {
	lshID int
	hash  int64
}

func main() {
	dataPath := flag.String("data", "test-data/fashion-mnist-784-euclidean.hdf5", "path to the ann-benchmarks hdf5 file")
	dims := flag.Int("dim", 784, "vectors dimensionality")
	repeat := flag.Int("repeat", 20, "number of planes packed per hash")
	numHashes := flag.Int("hashes", 10, "hash family size")
	seed := flag.Uint64("seed", 42, "planes generator seed")
	kvAddress := flag.String("kv", "", "pure-kv address to store the built hasher at (optional)")
	kvKey := flag.String("key", "bench", "key to store the hasher under")
	flag.Parse()

	absPath, err := filepath.Abs(*dataPath)
	if err != nil {
		log.Panic(err)
	}
	f, err := hdf5.OpenFile(absPath, hdf5.F_ACC_RDONLY)
	if err != nil {
		log.Panic(err)
	}
	defer f.Close()

	train := []float32{}
	err = bench.GetVectorsFromHDF5(f, "train", &train)
	if err != nil {
		log.Panic(err)
	}
	trainSplitted, err := bench.SplitVectors(train, *dims)
	if err != nil {
		log.Panic(err)
	}
	train = nil

	test := []float32{}
	err = bench.GetVectorsFromHDF5(f, "test", &test)
	if err != nil {
		log.Panic(err)
	}
	testSplitted, err := bench.SplitVectors(test, *dims)
	if err != nil {
		log.Panic(err)
	}
	test = nil

	log.Println("Train rows: ", len(trainSplitted), "; test rows: ", len(testSplitted))

	hasher, err := lsh.New(lsh.Config{
		Dims:      *dims,
		Repeat:    *repeat,
		NumHashes: *numHashes,
		Seed:      *seed,
	})
	if err != nil {
		log.Panic(err)
	}

	if *kvAddress != "" {
		s := storage.New(*kvAddress, 500)
		if err := s.Open(); err != nil {
			log.Panic(err)
		}
		defer s.Close()
		if err := s.SaveHasher(*kvKey, hasher); err != nil {
			log.Panic(err)
		}
		log.Println("Stored the hasher at ", *kvAddress, " under key ", *kvKey)
	}

	log.Println("Hashing the train rows...")
	records, err := bench.HashDataset(hasher, trainSplitted)
	if err != nil {
		log.Panic(err)
	}

	buckets := make(map[bucketKey]int)
	for i := range records {
		for _, result := range records[i].Results {
			buckets[bucketKey{result.LSHID, result.Hash}]++
		}
	}

	log.Println("Probing with the test rows...")
	bar := pb.StartNew(len(testSplitted))
	matched := 0
	candidates := 0
	for i := range testSplitted {
		bar.Increment()
		results, err := hasher.GetHashes(testSplitted[i])
		if err != nil {
			log.Panic(err)
		}
		found := 0
		for _, result := range results {
			found += buckets[bucketKey{result.LSHID, result.Hash}]
		}
		if found > 0 {
			matched++
		}
		candidates += found
	}
	bar.Finish()

	log.Println("Non-empty buckets: ", len(buckets))
	log.Println("Test rows with candidates: ", matched, " of ", len(testSplitted))
	log.Println("Mean candidates per test row: ", float64(candidates)/float64(len(testSplitted)))
}
