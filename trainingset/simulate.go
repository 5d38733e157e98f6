package trainingset

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// GenerateConstClass returns n vectors with every feature set to the input value
func GenerateConstClass(n, dim int, val float64) [][]float64 {
	vectors := make([][]float64, 0, n)
	for i := 0; i < n; i++ {
		v := make([]float64, dim)
		floats.AddConst(val, v)
		vectors = append(vectors, v)
	}
	return vectors
}

// GenerateNormalClass samples n vectors where feature j is drawn from a normal distribution
// with mean[j] and stddev[j]. The length of mean determines the dimensionality.
func GenerateNormalClass(n int, mean, stddev []float64, rng *rand.Rand) [][]float64 {
	if len(mean) != len(stddev) {
		panic(ErrDimensionMismatch)
	}
	vectors := make([][]float64, 0, n)
	for i := 0; i < n; i++ {
		v := make([]float64, len(mean))
		for j := range v {
			v[j] = mean[j] + rng.NormFloat64()*stddev[j]
		}
		vectors = append(vectors, v)
	}
	return vectors
}
