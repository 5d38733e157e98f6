package naivebayes

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/aouyang1/go-naivebayes/trainingset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func twoClassData() map[string][][]float64 {
	return map[string][][]float64{
		"class1": {{1, 1, 1, 1, 1}, {1, 1, 1, 1, 1}},
		"class2": {{2, 2, 2, 2, 2}},
	}
}

func normalData(rng *rand.Rand) map[string][][]float64 {
	return map[string][][]float64{
		"setosa":     trainingset.GenerateNormalClass(50, []float64{5.0, 3.4, 1.5, 0.2}, []float64{0.35, 0.38, 0.17, 0.1}, rng),
		"versicolor": trainingset.GenerateNormalClass(50, []float64{5.9, 2.8, 4.3, 1.3}, []float64{0.52, 0.31, 0.47, 0.2}, rng),
		"virginica":  trainingset.GenerateNormalClass(50, []float64{6.6, 3.0, 5.6, 2.0}, []float64{0.64, 0.32, 0.55, 0.27}, rng),
	}
}

func TestTwoClassScenario(t *testing.T) {
	c, err := New(twoClassData(), 5, nil)
	require.Nil(t, err)

	assert.Equal(t, 2, c.NumClasses())
	assert.Equal(t, 5, c.Dimensionality())
	assert.ElementsMatch(t, []string{"class1", "class2"}, c.ClassLabels())

	col, err := c.FeatureColumn(1, "class1")
	require.Nil(t, err)
	assert.Equal(t, []float64{1, 1}, col)

	col, err = c.FeatureColumn(2, "class2")
	require.Nil(t, err)
	assert.Equal(t, []float64{2}, col)

	l, err := c.FeatureLikelihood(0, 0, "class1")
	require.Nil(t, err)
	assert.Equal(t, 0.0, l)

	l, err = c.FeatureLikelihood(0, 2, "class2")
	require.Nil(t, err)
	assert.Equal(t, 1.0, l)

	label, err := c.Classify([]float64{1, 1, 1, 1, 1})
	require.Nil(t, err)
	assert.Equal(t, "class1", label)

	label, err = c.Classify([]float64{2, 2, 2, 2, 2})
	require.Nil(t, err)
	assert.Equal(t, "class2", label)
}

func TestNew(t *testing.T) {
	testData := map[string]struct {
		data map[string][][]float64
		dim  int
		opt  *Options
		err  error
	}{
		"empty data":         {map[string][][]float64{}, 5, nil, ErrInvalidTrainingData},
		"nil data":           {nil, 5, nil, ErrInvalidTrainingData},
		"vector too short":   {map[string][][]float64{"a": {{1, 2}}}, 3, nil, ErrInvalidTrainingData},
		"class no vectors":   {map[string][][]float64{"a": {}}, 1, nil, ErrInvalidTrainingData},
		"non positive dim":   {map[string][][]float64{"a": {{1}}}, 0, nil, ErrInvalidTrainingData},
		"unknown scoring":    {twoClassData(), 5, &Options{Scoring: "max"}, ErrUnknownScoring},
		"valid default":      {twoClassData(), 5, nil, nil},
		"valid log scoring":  {twoClassData(), 5, &Options{Scoring: ScoringLog}, nil},
		"valid empty option": {twoClassData(), 5, &Options{}, nil},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			c, err := New(td.data, td.dim, td.opt)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.dim, c.Dimensionality())
		})
	}

	_, err := NewFromTrainingSet(nil, nil)
	assert.ErrorIs(t, err, ErrNoTrainingSet)
}

func TestNewDoesNotMutateOptions(t *testing.T) {
	opt := &Options{}
	c, err := New(twoClassData(), 5, opt)
	require.Nil(t, err)

	assert.Equal(t, ScoringMode(""), opt.Scoring)
	assert.Equal(t, ScoringProduct, c.Scoring())
}

func TestQueryErrors(t *testing.T) {
	c, err := New(twoClassData(), 5, nil)
	require.Nil(t, err)

	_, err = c.FeatureColumn(5, "class1")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = c.FeatureColumn(-1, "class1")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = c.FeatureColumn(0, "class3")
	assert.ErrorIs(t, err, ErrUnknownClass)

	_, err = c.FeatureLikelihood(7, 1, "class2")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = c.FeatureLikelihood(0, 1, "")
	assert.ErrorIs(t, err, ErrUnknownClass)

	_, err = c.ClassLikelihood([]float64{1, 1, 1, 1}, "class1")
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = c.ClassLikelihood([]float64{1, 1, 1, 1}, "class3")
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = c.ClassLikelihood([]float64{1, 1, 1, 1, 1}, "class3")
	assert.ErrorIs(t, err, ErrUnknownClass)

	_, err = c.ClassLogLikelihood([]float64{1, 1, 1, 1, 1, 1}, "class1")
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = c.ClassLogLikelihood([]float64{1, 1, 1, 1, 1}, "class3")
	assert.ErrorIs(t, err, ErrUnknownClass)

	_, err = c.Classify(nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = c.Scores([]float64{1})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestFeatureLikelihoodGaussian(t *testing.T) {
	data := map[string][][]float64{
		"a": {{1}, {2}, {3}, {4}},
	}
	c, err := New(data, 1, nil)
	require.Nil(t, err)

	// sample variance of 1, 2, 3, 4
	variance := 5.0 / 3.0
	mean := 2.5

	l, err := c.FeatureLikelihood(0, mean, "a")
	require.Nil(t, err)
	assert.InEpsilon(t, 1.0/math.Sqrt(2.0*math.Pi*variance), l, 1e-12)

	prev := l
	for d := 0.5; d <= 10; d += 0.5 {
		upper, err := c.FeatureLikelihood(0, mean+d, "a")
		require.Nil(t, err)
		lower, err := c.FeatureLikelihood(0, mean-d, "a")
		require.Nil(t, err)

		assert.InEpsilon(t, upper, lower, 1e-9)
		assert.Less(t, upper, prev)
		prev = upper

		logL, err := c.FeatureLogLikelihood(0, mean+d, "a")
		require.Nil(t, err)
		assert.InDelta(t, math.Log(upper), logL, 1e-9)
	}
}

func TestClassLikelihood(t *testing.T) {
	data := map[string][][]float64{
		"a": {{1, 5}, {2, 5}, {3, 5}},
		"b": {{4, 0}, {6, 1}},
	}
	c, err := New(data, 2, nil)
	require.Nil(t, err)

	x := []float64{2, 5}
	l0, err := c.FeatureLikelihood(0, 2, "a")
	require.Nil(t, err)
	l1, err := c.FeatureLikelihood(1, 5, "a")
	require.Nil(t, err)
	assert.Equal(t, 1.0, l1)

	score, err := c.ClassLikelihood(x, "a")
	require.Nil(t, err)
	assert.InEpsilon(t, l0*l1*0.5, score, 1e-12)

	logScore, err := c.ClassLogLikelihood(x, "a")
	require.Nil(t, err)
	assert.InDelta(t, math.Log(score), logScore, 1e-9)

	likelihoods, err := c.FeatureLikelihoods(x, "a")
	require.Nil(t, err)
	assert.InDeltaSlice(t, []float64{l0, l1}, likelihoods, 1e-12)
}

func TestVeto(t *testing.T) {
	data := map[string][][]float64{
		"a": {{1, 5}, {2, 5}, {3, 5}},
		"b": {{10, 0}, {30, 1}},
	}
	c, err := New(data, 2, nil)
	require.Nil(t, err)

	// the first feature is a perfect fit for a, but the constant second feature vetoes it
	x := []float64{2, 5.5}
	l, err := c.FeatureLikelihood(1, 5.5, "a")
	require.Nil(t, err)
	require.Equal(t, 0.0, l)

	score, err := c.ClassLikelihood(x, "a")
	require.Nil(t, err)
	assert.Equal(t, 0.0, score)

	logScore, err := c.ClassLogLikelihood(x, "a")
	require.Nil(t, err)
	assert.True(t, math.IsInf(logScore, -1))

	label, err := c.Classify(x)
	require.Nil(t, err)
	assert.Equal(t, "b", label)

	// near constant features of a overflow the product before the constant feature vetoes it
	data = map[string][][]float64{
		"a": {{0, 0, 0, 5}, {1e-150, 1e-150, 1e-150, 5}},
		"b": {{0, 0, 0, 0}, {1, 1, 1, 10}},
	}
	c, err = New(data, 4, nil)
	require.Nil(t, err)

	x = []float64{5e-151, 5e-151, 5e-151, 6}
	score, err = c.ClassLikelihood(x, "a")
	require.Nil(t, err)
	assert.Equal(t, 0.0, score)

	score, err = c.ClassLikelihood(x, "b")
	require.Nil(t, err)
	assert.Greater(t, score, 0.0)

	label, err = c.Classify(x)
	require.Nil(t, err)
	assert.Equal(t, "b", label)
}

func TestClassifyNaNScore(t *testing.T) {
	testData := map[string]struct {
		data     map[string][][]float64
		expected string
	}{
		"nan class first": {
			data: map[string][][]float64{
				"a": {{1}, {2}},
				"b": {{7}, {7}},
			},
			expected: "b",
		},
		"nan class last": {
			data: map[string][][]float64{
				"a": {{7}, {7}},
				"b": {{1}, {2}},
			},
			expected: "a",
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			for _, scoring := range []ScoringMode{ScoringProduct, ScoringLog} {
				c, err := New(td.data, 1, &Options{Scoring: scoring})
				require.Nil(t, err)

				label, err := c.Classify([]float64{math.NaN()})
				require.Nil(t, err)
				assert.Equal(t, td.expected, label, string(scoring))
			}
		})
	}
}

func TestTieBreak(t *testing.T) {
	testData := map[string]struct {
		data     map[string][][]float64
		dim      int
		x        []float64
		expected string
	}{
		"all classes vetoed": {
			data:     twoClassData(),
			dim:      5,
			x:        []float64{3, 3, 3, 3, 3},
			expected: "class2",
		},
		"identical classes": {
			data: map[string][][]float64{
				"b": {{1, 2}, {2, 3}},
				"a": {{1, 2}, {2, 3}},
				"c": {{10, 20}, {20, 30}},
			},
			dim:      2,
			x:        []float64{1.5, 2.5},
			expected: "b",
		},
		"identical constant classes": {
			data: map[string][][]float64{
				"zebra": {{4}},
				"apple": {{4}},
			},
			dim:      1,
			x:        []float64{4},
			expected: "zebra",
		},
	}

	for name, td := range testData {
		for _, scoring := range []ScoringMode{ScoringProduct, ScoringLog} {
			t.Run(name+" "+string(scoring), func(t *testing.T) {
				c, err := New(td.data, td.dim, &Options{Scoring: scoring})
				require.Nil(t, err)

				label, err := c.Classify(td.x)
				require.Nil(t, err)
				assert.Equal(t, td.expected, label)
			})
		}
	}
}

func TestClassifyArgMax(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	data := normalData(rng)

	product, err := New(data, 4, nil)
	require.Nil(t, err)
	logScoring, err := New(data, 4, &Options{Scoring: ScoringLog})
	require.Nil(t, err)

	queries := trainingset.GenerateNormalClass(100, []float64{5.8, 3.0, 3.8, 1.2}, []float64{0.8, 0.4, 1.8, 0.8}, rng)
	for _, x := range queries {
		label, err := product.Classify(x)
		require.Nil(t, err)
		assert.Contains(t, product.ClassLabels(), label)

		scores, err := product.Scores(x)
		require.Nil(t, err)
		require.Len(t, scores, 3)
		for other, s := range scores {
			assert.GreaterOrEqual(t, scores[label], s, "class %s", other)
		}

		logLabel, err := logScoring.Classify(x)
		require.Nil(t, err)
		assert.Equal(t, label, logLabel)

		logScores, err := logScoring.Scores(x)
		require.Nil(t, err)
		for l, s := range scores {
			if s == 0 {
				continue
			}
			assert.InDelta(t, math.Log(s), logScores[l], 1e-6)
		}
	}
}

func TestLogScoringAvoidsUnderflow(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	dim := 400
	meanA := make([]float64, dim)
	meanB := make([]float64, dim)
	stddev := make([]float64, dim)
	for i := 0; i < dim; i++ {
		meanB[i] = 1.0
		stddev[i] = 0.2
	}
	data := map[string][][]float64{
		"a": trainingset.GenerateNormalClass(30, meanA, stddev, rng),
		"b": trainingset.GenerateNormalClass(30, meanB, stddev, rng),
	}
	x := make([]float64, dim)
	for i := range x {
		x[i] = 3.0
	}

	product, err := New(data, dim, nil)
	require.Nil(t, err)
	scores, err := product.Scores(x)
	require.Nil(t, err)
	assert.Equal(t, 0.0, scores["a"])
	assert.Equal(t, 0.0, scores["b"])

	logScoring, err := New(data, dim, &Options{Scoring: ScoringLog})
	require.Nil(t, err)
	label, err := logScoring.Classify(x)
	require.Nil(t, err)
	assert.Equal(t, "b", label)
}

func TestClassifyIdempotentAndConcurrent(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	c, err := New(normalData(rng), 4, nil)
	require.Nil(t, err)

	x := []float64{6.1, 2.9, 4.7, 1.4}
	expected, err := c.Classify(x)
	require.Nil(t, err)

	var g errgroup.Group
	results := make([]string, 64)
	for i := range results {
		g.Go(func() error {
			label, err := c.Classify(x)
			results[i] = label
			return err
		})
	}
	require.Nil(t, g.Wait())
	for _, label := range results {
		assert.Equal(t, expected, label)
	}
}

func TestTrainingDataIsCopied(t *testing.T) {
	data := twoClassData()
	c, err := New(data, 5, nil)
	require.Nil(t, err)

	data["class1"][0][0] = 2
	data["class3"] = [][]float64{{1, 1, 1, 1, 1}}

	assert.Equal(t, 2, c.NumClasses())
	col, err := c.FeatureColumn(0, "class1")
	require.Nil(t, err)
	assert.Equal(t, []float64{1, 1}, col)
}
