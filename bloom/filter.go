// Package bloom suppresses duplicate job postings within a single run.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter remembers job keys (detail URLs or external IDs) seen so far.
// Filter is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected jobs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a job key.
func (f *Filter) Add(key string) {
	f.f.AddString(key)
}

// Test reports whether key might have been added.
// False positives are possible; false negatives are not.
func (f *Filter) Test(key string) bool {
	return f.f.TestString(key)
}

// Seen records key and reports whether it was already present.
func (f *Filter) Seen(key string) bool {
	return f.f.TestAndAddString(key)
}

// EstimatedCount returns the approximate number of keys in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
