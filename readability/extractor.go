// Package readability extracts the posting body from job detail pages
// using go-readability. It is the lighter alternative to the trafilatura
// extractor for pages whose markup is close to a plain article.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/jobscout"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements jobscout.Extractor at compile time.
var _ jobscout.Extractor = (*Extractor)(nil)

// Extractor returns the article-like body of a detail page.
type Extractor struct {
	pageURL *url.URL
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// WithPageURL returns a copy of e that rewrites relative links in the
// posting body to absolute URLs under pageURL. An unparsable URL is ignored.
func (e *Extractor) WithPageURL(pageURL string) *Extractor {
	u, err := url.Parse(pageURL)
	if err != nil || !u.IsAbs() {
		return &Extractor{pageURL: e.pageURL}
	}
	return &Extractor{pageURL: u}
}

// Extract processes raw HTML and returns the posting body.
func (e *Extractor) Extract(rawHTML string) (*jobscout.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, jobscout.Errorf(jobscout.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.pageURL)
	if err != nil {
		return nil, err
	}

	return &jobscout.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
