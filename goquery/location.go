package goquery

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	maxLocationRunes     = 50
	maxLocationAncestors = 3
	maxLocationDepth     = 2
)

var (
	capitalizedWord    = regexp.MustCompile(`^\p{Lu}\p{Ll}+`)
	locationSeparators = regexp.MustCompile(`[\n,，|·•;]| - | – `)
)

// locationQueryKeys are URL query parameters that name a job's location.
var locationQueryKeys = []string{"location", "locations", "city", "loc", "office", "offices", "_offices", "country"}

// resolveLocation returns direct when it looks like a location, otherwise
// falls back to text patterns, a bounded element search and URL hints.
// A self-selected field only accepts direct text naming a known place.
func (p *Parser) resolveLocation(item *goquery.Selection, direct string, self bool) string {
	if direct != "" && p.isLocationText(direct) && (!self || p.knownLocation(direct) != "") {
		return direct
	}
	if item.Length() == 0 {
		return ""
	}
	n := item.Nodes[0]
	if loc := p.locationFromText(blockText(n)); loc != "" {
		return loc
	}
	anc := n.Parent
	for i := 0; i < maxLocationAncestors && anc != nil && anc.Type == html.ElementNode; i++ {
		if loc := p.locationFromText(ownText(anc)); loc != "" {
			return loc
		}
		anc = anc.Parent
	}
	if loc := p.locationNearby(n); loc != "" {
		return loc
	}
	return locationFromLinks(item)
}

// locationFromText handles "Title, City" shapes: the first segment is the
// title, later segments are tried as locations, then known place names.
func (p *Parser) locationFromText(text string) string {
	var parts []string
	for _, part := range locationSeparators.Split(text, -1) {
		if part = cleanText(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) >= 2 {
		for _, part := range parts[1:] {
			if p.isLocationText(part) {
				return part
			}
		}
	}
	for _, part := range parts {
		if containsAny(strings.ToLower(part), locationRejectWords) {
			continue
		}
		if loc := p.knownLocation(part); loc != "" {
			return loc
		}
	}
	return ""
}

// locationNearby searches descendants up to two levels deep and the
// immediate siblings of n for short location-looking text.
func (p *Parser) locationNearby(n *html.Node) string {
	candidates := elementChildren(n)
	for depth := 1; depth < maxLocationDepth; depth++ {
		for _, c := range candidates {
			candidates = append(candidates, elementChildren(c)...)
		}
	}
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			candidates = append(candidates, s)
			break
		}
	}
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			candidates = append(candidates, s)
			break
		}
	}
	for _, c := range candidates {
		text := nodeText(c)
		if !p.isLocationText(text) {
			continue
		}
		if p.knownLocation(text) != "" || hasLocationHint(c) {
			return text
		}
	}
	return ""
}

func hasLocationHint(n *html.Node) bool {
	for _, a := range n.Attr {
		v := strings.ToLower(a.Val)
		if a.Key == "itemprop" || a.Key == "class" || a.Key == "id" || strings.HasPrefix(a.Key, "data-") {
			if containsAny(v, []string{"loc", "city", "address", "region", "地点", "城市"}) {
				return true
			}
		}
	}
	return false
}

// locationFromLinks infers a location from query parameters and host or
// path hints of the links inside item.
func locationFromLinks(item *goquery.Selection) string {
	var hrefs []string
	if href, ok := item.Attr("href"); ok {
		hrefs = append(hrefs, href)
	}
	item.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		hrefs = append(hrefs, href)
	})
	for _, href := range hrefs {
		if loc := locationFromURL(href); loc != "" {
			return loc
		}
	}
	return ""
}

func locationFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	q := u.Query()
	for _, key := range locationQueryKeys {
		if v := strings.TrimSpace(q.Get(key)); v != "" {
			return titleCase(v)
		}
	}
	if region := strings.ToLower(q.Get("region")); region == "asia" || region == "apac" {
		return "Asia Pacific"
	}
	lower := strings.ToLower(u.Host + u.Path)
	switch {
	case strings.Contains(lower, ".cn/") || strings.HasSuffix(u.Host, ".cn") || strings.Contains(lower, "china"):
		return "China"
	case strings.Contains(lower, ".sg/") || strings.HasSuffix(u.Host, ".sg") || strings.Contains(lower, "singapore"):
		return "Singapore"
	case strings.Contains(lower, ".hk/") || strings.HasSuffix(u.Host, ".hk") || strings.Contains(lower, "hongkong") || strings.Contains(lower, "hong-kong"):
		return "Hong Kong"
	}
	return ""
}

func titleCase(s string) string {
	s = strings.NewReplacer("+", " ", "_", " ", "-", " ").Replace(s)
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// isLocationText reports whether s plausibly names a place or work mode.
func (p *Parser) isLocationText(s string) bool {
	s = strings.TrimSpace(s)
	runes := utf8.RuneCountInString(s)
	if s == "" || runes > maxLocationRunes || isDigits(s) {
		return false
	}
	lower := strings.ToLower(s)
	if containsAny(lower, locationRejectWords) {
		return false
	}
	if p.knownLocation(s) != "" {
		return true
	}
	if hasWord(lower, locationStopWords) {
		return false
	}
	if containsAny(lower, locationWorkModes) {
		return true
	}
	return capitalizedWord.MatchString(s) && runes < 20 && len(strings.Fields(s)) <= 3
}

// knownLocation returns the first configured place name contained in s.
func (p *Parser) knownLocation(s string) string {
	lower := strings.ToLower(s)
	for _, kw := range p.locationKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return kw
		}
	}
	return ""
}

// hasWord reports whether s contains one of words as a whole word.
// Multi-word entries match as substrings.
func hasWord(s string, words []string) bool {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	for _, w := range words {
		if strings.ContainsAny(w, " -") {
			if strings.Contains(s, w) {
				return true
			}
			continue
		}
		for _, f := range fields {
			if f == w {
				return true
			}
		}
	}
	return false
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
