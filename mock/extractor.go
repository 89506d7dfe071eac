package mock

import "github.com/fwojciec/jobscout"

var _ jobscout.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of jobscout.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*jobscout.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*jobscout.ExtractResult, error) {
	return e.ExtractFn(html)
}
