// Package trafilatura extracts the posting body from job detail pages
// using go-trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/jobscout"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements jobscout.Extractor at compile time.
var _ jobscout.Extractor = (*Extractor)(nil)

// Extractor strips site chrome (navigation, footers, cookie banners) from
// a detail page and returns the posting body as HTML.
type Extractor struct {
	pageURL *url.URL
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// WithPageURL returns a copy of e that resolves relative links in the
// posting body against pageURL. An unparsable URL is ignored.
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

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		IncludeLinks:    true,
		OriginalURL:     e.pageURL,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &jobscout.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
