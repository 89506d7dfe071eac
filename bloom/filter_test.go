package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/jobscout/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://example.com/jobs/1"))

	f.Add("https://example.com/jobs/1")

	assert.True(t, f.Test("https://example.com/jobs/1"))
	assert.False(t, f.Test("https://example.com/jobs/2"))
}

func TestFilter_Seen(t *testing.T) {
	t.Parallel()

	t.Run("reports first sighting as new", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)

		assert.False(t, f.Seen("REQ-77"))
		assert.True(t, f.Test("REQ-77"))
	})

	t.Run("reports repeated key as seen", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)
		f.Seen("https://example.com/jobs/1")

		assert.True(t, f.Seen("https://example.com/jobs/1"))
		assert.False(t, f.Seen("https://example.com/jobs/2"))
	})
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("https://example.com/jobs/1")
	f.Add("https://example.com/jobs/2")
	f.Add("https://example.com/jobs/3")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	key := "https://example.com/jobs/1"

	f.Add(key)
	countAfterFirst := f.EstimatedCount()

	f.Add(key)
	f.Add(key)

	assert.Equal(t, countAfterFirst, f.EstimatedCount())
	assert.True(t, f.Test(key))
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.Add(fmt.Sprintf("https://example.com/jobs/%d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(fmt.Sprintf("https://example.com/closed/%d", i)) {
			falsePositives++
		}
	}

	// Allow up to 2% to account for statistical variance.
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
