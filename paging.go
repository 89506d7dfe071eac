package jobscout

import (
	"net/url"
	"strconv"
	"strings"
)

// PagingMode identifies how successive result pages are addressed.
type PagingMode string

// PagingMode constants.
const (
	PagingNone       PagingMode = "NONE"
	PagingQuery      PagingMode = "QUERY"
	PagingPathSuffix PagingMode = "PATH_SUFFIX"
	PagingOffset     PagingMode = "OFFSET"
)

// PagingStrategy describes how to build the URL of page N of a listing.
// Start is the value of the first page and Step the increment per page.
type PagingStrategy struct {
	Mode          PagingMode `json:"mode"`
	Parameter     string     `json:"parameter,omitempty"`
	Start         int        `json:"start"`
	Step          int        `json:"step"`
	SizeParameter string     `json:"sizeParameter,omitempty"`
}

// DisabledPaging returns a strategy that never paginates.
func DisabledPaging() PagingStrategy {
	return PagingStrategy{Mode: PagingNone, Start: 1, Step: 1}
}

// QueryPaging returns a strategy that sets a page-number query parameter.
func QueryPaging(param string, start, step int) PagingStrategy {
	return PagingStrategy{Mode: PagingQuery, Parameter: param, Start: start, Step: step}
}

// OffsetPaging returns a strategy that sets a record-offset query parameter.
// The step is multiplied by the page size when one is given.
func OffsetPaging(param string, start, step int) PagingStrategy {
	return PagingStrategy{Mode: PagingOffset, Parameter: param, Start: start, Step: step}
}

// PathSuffixPaging returns a strategy that appends "/<segment>/<n>" to the path.
func PathSuffixPaging(segment string, start, step int) PagingStrategy {
	return PagingStrategy{Mode: PagingPathSuffix, Parameter: segment, Start: start, Step: step}
}

// Enabled reports whether the strategy paginates at all.
func (p PagingStrategy) Enabled() bool {
	return p.Mode != "" && p.Mode != PagingNone
}

// Apply returns the URL of the given 1-based page. A non-positive size
// leaves the size parameter unset. Page 1 of a disabled strategy, or an
// unparsable base URL, returns base unchanged.
func (p PagingStrategy) Apply(base string, page, size int) string {
	if !p.Enabled() || page < 1 {
		return base
	}
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	step := p.Step
	if step == 0 {
		step = 1
	}
	value := p.Start + (page-1)*step

	switch p.Mode {
	case PagingQuery:
		q := u.Query()
		q.Set(p.Parameter, strconv.Itoa(value))
		p.setSize(q, size)
		u.RawQuery = q.Encode()
	case PagingOffset:
		if size > 0 {
			value = p.Start + (page-1)*step*size
		}
		q := u.Query()
		q.Set(p.Parameter, strconv.Itoa(value))
		p.setSize(q, size)
		u.RawQuery = q.Encode()
	case PagingPathSuffix:
		if page == 1 {
			return base
		}
		path := strings.TrimSuffix(u.Path, "/")
		if p.Parameter != "" {
			path += "/" + p.Parameter
		}
		u.Path = path + "/" + strconv.Itoa(value)
		if size > 0 && p.SizeParameter != "" {
			q := u.Query()
			q.Set(p.SizeParameter, strconv.Itoa(size))
			u.RawQuery = q.Encode()
		}
	}
	return u.String()
}

func (p PagingStrategy) setSize(q url.Values, size int) {
	if size > 0 && p.SizeParameter != "" {
		q.Set(p.SizeParameter, strconv.Itoa(size))
	}
}
