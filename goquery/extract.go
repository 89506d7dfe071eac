package goquery

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jobscout"
	"golang.org/x/net/html"
)

// page is a parsed snapshot plus the URLs used to resolve relative links.
type page struct {
	doc      *goquery.Document
	location *url.URL // page URL, nil when unknown
	baseHref *url.URL // <base href>, resolved against location
	bodyText string
}

func newPage(rawHTML, pageURL string) (*page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, jobscout.Errorf(jobscout.EINVALID, "failed to parse HTML: %v", err)
	}
	pg := &page{doc: doc, bodyText: cleanText(doc.Find("body").Text())}
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil || !u.IsAbs() {
			return nil, jobscout.Errorf(jobscout.EINVALID, "invalid page URL %q", pageURL)
		}
		pg.location = u
	}
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if ref, err := url.Parse(strings.TrimSpace(href)); err == nil {
			if pg.location != nil {
				ref = pg.location.ResolveReference(ref)
			}
			if ref.IsAbs() {
				pg.baseHref = ref
			}
		}
	}
	return pg, nil
}

// url returns the page URL, or "" when unknown.
func (pg *page) url() string {
	if pg.location == nil {
		return ""
	}
	return pg.location.String()
}

// origin returns scheme://host[:port] of the page URL, or "".
func (pg *page) origin() string {
	if pg.location == nil {
		return ""
	}
	return (&url.URL{Scheme: pg.location.Scheme, Host: pg.location.Host}).String()
}

// resolve turns a raw link into an absolute URL using, in order, the
// field's base URL, the document's <base href>, and the page origin.
func (pg *page) resolve(f *jobscout.ParserField, raw string) string {
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return ref.String()
	}
	var base *url.URL
	if f.BaseURL != "" {
		if u, err := url.Parse(f.BaseURL); err == nil && u.IsAbs() {
			base = u
		}
	}
	if base == nil {
		base = pg.baseHref
	}
	if base == nil && pg.location != nil {
		base = &url.URL{Scheme: pg.location.Scheme, Host: pg.location.Host}
	}
	if base == nil {
		return raw
	}
	return base.ResolveReference(ref).String()
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// extract produces the typed value of f for item: string, []string,
// time.Time, or nil when absent. It never fails.
func (p *Parser) extract(f *jobscout.ParserField, item *goquery.Selection, pg *page) any {
	switch f.Type {
	case jobscout.FieldConstant:
		if f.Constant == "" {
			return nil
		}
		return f.Constant
	case jobscout.FieldText:
		text := cleanText(selectField(item, f.Selector).First().Text())
		if f.Name == jobscout.FieldNameLocation {
			if loc := p.resolveLocation(item, text, f.SelfSelected()); loc != "" {
				return loc
			}
			return nil
		}
		if text == "" {
			return nil
		}
		return text
	case jobscout.FieldAttribute:
		target := selectField(item, f.Selector).First()
		if strings.TrimSpace(f.Attribute) == "" {
			if text := cleanText(target.Text()); text != "" {
				return text
			}
			return nil
		}
		v := strings.TrimSpace(target.AttrOr(f.Attribute, ""))
		if v == "" {
			return nil
		}
		if isURLAttribute(f.Attribute) {
			if isNonHTTPLink(v) {
				return nil
			}
			if v = pg.resolve(f, v); v == "" {
				return nil
			}
		}
		return v
	case jobscout.FieldHTML:
		target := selectField(item, f.Selector).First()
		h, err := target.Html()
		if err != nil || strings.TrimSpace(h) == "" {
			return nil
		}
		return strings.TrimSpace(h)
	case jobscout.FieldList:
		var values []string
		for _, part := range strings.Split(selectField(item, f.Selector).First().Text(), f.ListDelimiter()) {
			if part = cleanText(part); part != "" {
				values = append(values, part)
			}
		}
		if len(values) == 0 {
			return nil
		}
		return values
	case jobscout.FieldDate:
		target := selectField(item, f.Selector).First()
		raw, ok := target.Attr("datetime")
		if !ok || strings.TrimSpace(raw) == "" {
			raw = target.Text()
		}
		if t, ok := parseDate(cleanText(raw), f.DateFormat); ok {
			return t
		}
		return nil
	}
	return nil
}

func parseDate(s, layout string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if layout != "" {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err != nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	}
	for _, l := range dateLayouts {
		if t, err := time.ParseInLocation(l, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func isURLAttribute(name string) bool {
	if strings.EqualFold(name, "src") {
		return true
	}
	for _, a := range urlAttributes {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") ||
		strings.HasPrefix(href, "#")
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ownText returns the text of n's direct text children.
func ownText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			b.WriteString(" ")
		}
	}
	return cleanText(b.String())
}

// nodeText returns the whitespace-collapsed text content of n.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return cleanText(b.String())
}

// blockText returns n's text with a line break at every element boundary,
// so adjacent inline elements do not run together.
func blockText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
			b.WriteString("\n")
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			b.WriteString("\n")
		default:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}
