// Package htmltomarkdown renders job detail bodies as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/jobscout"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Converter implements jobscout.Converter at compile time.
var _ jobscout.Converter = (*Converter)(nil)

// removedTags never carry posting text; apply buttons and inline
// application forms would otherwise leak into descriptions.
var removedTags = []string{"button", "form", "select", "input"}

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv   *converter.Converter
	policy *bluemonday.Policy
	domain string
}

// Option configures a Converter.
type Option func(*Converter)

// WithDomain makes relative links absolute under domain
// (for example "https://acme.example").
func WithDomain(domain string) Option {
	return func(c *Converter) {
		c.domain = domain
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	for _, tag := range removedTags {
		conv.Register.TagType(tag, converter.TagTypeRemove, converter.PriorityStandard)
	}

	// Posting bodies come from third-party pages; strip scripts, event
	// handlers and embedded widgets before rendering.
	policy := bluemonday.UGCPolicy()
	policy.SkipElementsContent(removedTags...)

	c := &Converter{conv: conv, policy: policy}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", jobscout.Errorf(jobscout.EINVALID, "empty HTML input")
	}

	var opts []converter.ConvertOptionFunc
	if c.domain != "" {
		opts = append(opts, converter.WithDomain(c.domain))
	}

	result, err := c.conv.ConvertString(c.policy.Sanitize(html), opts...)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}
