package mock

import "github.com/fwojciec/jobscout"

var _ jobscout.Converter = (*Converter)(nil)

// Converter is a mock implementation of jobscout.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
