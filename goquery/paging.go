package goquery

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jobscout"
)

var pageSuffix = regexp.MustCompile(`/(page|p)/(\d+)/?$`)

// detectPaging inspects the page's next link and derives how later pages
// are addressed. Returns a disabled strategy when no next link is found.
func detectPaging(pg *page) jobscout.PagingStrategy {
	href := nextLink(pg.doc)
	if href == "" {
		return jobscout.DisabledPaging()
	}
	u, err := url.Parse(href)
	if err != nil {
		return jobscout.DisabledPaging()
	}
	if pg.location != nil {
		u = pg.location.ResolveReference(u)
	}

	keys := make([]string, 0, len(u.Query()))
	for k := range u.Query() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lower := strings.ToLower(k)
		if strings.Contains(lower, "size") || strings.Contains(lower, "limit") {
			continue
		}
		if lower == "p" || lower == "pg" || strings.Contains(lower, "page") {
			return jobscout.QueryPaging(k, 1, 1)
		}
		if strings.Contains(lower, "offset") || lower == "start" || lower == "from" || lower == "skip" {
			step := 1
			if v, err := strconv.Atoi(u.Query().Get(k)); err == nil && v > 0 {
				step = v
			}
			return jobscout.OffsetPaging(k, 0, step)
		}
	}
	if m := pageSuffix.FindStringSubmatch(u.Path); m != nil {
		return jobscout.PathSuffixPaging(m[1], 1, 1)
	}
	return jobscout.DisabledPaging()
}

// nextLink returns the href of a rel=next link or of the first anchor
// whose text reads like "next page".
func nextLink(doc *goquery.Document) string {
	if href, ok := doc.Find("link[rel~='next'][href], a[rel~='next'][href]").First().Attr("href"); ok && usableLink(href) {
		return href
	}
	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.ToLower(cleanText(s.Text()))
		if text == "" {
			text = strings.ToLower(s.AttrOr("aria-label", ""))
		}
		if containsAny(text, nextLinkKeywords) {
			if href := s.AttrOr("href", ""); usableLink(href) {
				found = href
				return false
			}
		}
		return true
	})
	return found
}
