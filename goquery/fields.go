package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jobscout"
	"golang.org/x/net/html"
)

const (
	maxTitleRunes = 160
	maxFieldRunes = 80
)

// titleAttrHints mark elements whose attributes suggest they hold a title.
var titleAttrHints = []string{"title", "name", "position", "role", "职位", "岗位"}

// detection is the outcome of binding fields for one list element.
type detection struct {
	fields     map[string]jobscout.ParserField
	provenance map[string]string
	title      *html.Node
}

// detectFields binds title, url, company, location and postedAt fields
// relative to item, recording which strategy produced each binding.
func detectFields(item *html.Node, pg *page) *detection {
	d := &detection{
		fields:     make(map[string]jobscout.ParserField),
		provenance: make(map[string]string),
	}
	title, how := detectTitle(item, pg)
	if title == nil {
		return d
	}
	d.title = title
	d.bind(jobscout.ParserField{
		Name:     jobscout.FieldNameTitle,
		Type:     jobscout.FieldText,
		Selector: relativePath(item, title),
		Required: true,
	}, how)

	if target, name, how := detectURL(item, title); target != nil {
		d.bind(jobscout.ParserField{
			Name:      jobscout.FieldNameURL,
			Type:      jobscout.FieldAttribute,
			Selector:  relativePath(item, target),
			Attribute: name,
			BaseURL:   pg.origin(),
		}, how)
	}

	if target, sel := detectBySelectors(item, title, companySelectors); target != nil {
		d.bind(jobscout.ParserField{
			Name:     jobscout.FieldNameCompany,
			Type:     jobscout.FieldText,
			Selector: relativePath(item, target),
		}, "company "+sel)
	}

	if target, sel := detectBySelectors(item, title, locationSelectors); target != nil {
		d.bind(jobscout.ParserField{
			Name:     jobscout.FieldNameLocation,
			Type:     jobscout.FieldText,
			Selector: relativePath(item, target),
		}, "location "+sel)
	} else {
		d.bind(jobscout.ParserField{
			Name:     jobscout.FieldNameLocation,
			Type:     jobscout.FieldText,
			Selector: ".",
		}, "location-intelligence")
	}

	if t := goquery.NewDocumentFromNode(item).Find("time[datetime]").First(); t.Length() > 0 {
		d.bind(jobscout.ParserField{
			Name:     jobscout.FieldNamePostedAt,
			Type:     jobscout.FieldDate,
			Selector: relativePath(item, t.Nodes[0]),
		}, "time[datetime]")
	}
	return d
}

func (d *detection) bind(f jobscout.ParserField, how string) {
	d.fields[f.Name] = f
	d.provenance[f.Name] = how
}

// detectTitle tries, in order: descendant anchors, ATS title selectors,
// generic headings, attributes naming a title or a job, and the first
// meaningful text.
func detectTitle(item *html.Node, pg *page) (*html.Node, string) {
	sel := goquery.NewDocumentFromNode(item).Selection
	var found *html.Node

	sel.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if isMeaningfulTitle(a.Text(), pg) {
			found = a.Nodes[0]
			return false
		}
		return true
	})
	if found != nil {
		return found, "anchor-text"
	}

	for _, group := range []struct {
		selectors []string
		label     string
	}{
		{atsTitleSelectors, "ats-title "},
		{headingSelectors, "heading "},
	} {
		for _, s := range group.selectors {
			if n := firstMeaningful(sel, s, pg); n != nil {
				return n, group.label + s
			}
		}
	}

	sel.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		n := s.Nodes[0]
		for _, name := range []string{"class", "id", "data-automation-id", "data-testid", "itemprop"} {
			v := strings.ToLower(attr(n, name))
			if (containsAny(v, titleAttrHints) || hasJobKeyword(v)) && isMeaningfulTitle(s.Text(), pg) {
				found = n
				return false
			}
		}
		return true
	})
	if found != nil {
		return found, "title-attribute"
	}

	if isAnchor(item) && isMeaningfulTitle(nodeText(item), pg) {
		return item, "self-anchor"
	}
	sel.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		n := s.Nodes[0]
		if len(elementChildren(n)) == 0 && isMeaningfulTitle(s.Text(), pg) {
			found = n
			return false
		}
		return true
	})
	if found != nil {
		return found, "first-text"
	}
	if len(elementChildren(item)) == 0 && isMeaningfulTitle(nodeText(item), pg) {
		return item, "self-text"
	}
	return nil, ""
}

func firstMeaningful(sel *goquery.Selection, selector string, pg *page) *html.Node {
	var found *html.Node
	sel.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if isMeaningfulTitle(s.Text(), pg) {
			found = s.Nodes[0]
			return false
		}
		return true
	})
	return found
}

// isMeaningfulTitle rejects blank, too short or too long text, the whole
// page text, apply-button labels and junk link labels.
func isMeaningfulTitle(raw string, pg *page) bool {
	t := cleanText(raw)
	runes := utf8.RuneCountInString(t)
	if runes < minTitleRunes || runes > maxTitleRunes {
		return false
	}
	if t == pg.bodyText {
		return false
	}
	if containsAny(strings.ToLower(t), applyKeywords) {
		return false
	}
	return !isJunkTitle(t)
}

// detectURL finds the element carrying the job link: the title element
// itself, an anchor inside it, an ancestor within item, the first anchor
// in item, then any URL-like attribute in item.
func detectURL(item, title *html.Node) (*html.Node, string, string) {
	if name := urlAttr(title); name != "" {
		return title, name, "title[" + name + "]"
	}
	if a := goquery.NewDocumentFromNode(title).Find("a[href]").First(); a.Length() > 0 && usableLink(attr(a.Nodes[0], "href")) {
		return a.Nodes[0], "href", "title-anchor"
	}
	cur := title.Parent
	for i := 0; i < maxAncestorClimb && cur != nil && contains(item, cur); i++ {
		if name := urlAttr(cur); name != "" {
			return cur, name, "ancestor[" + name + "]"
		}
		if cur == item {
			break
		}
		cur = cur.Parent
	}
	sel := goquery.NewDocumentFromNode(item).Selection
	var found *html.Node
	sel.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if usableLink(attr(a.Nodes[0], "href")) {
			found = a.Nodes[0]
			return false
		}
		return true
	})
	if found != nil {
		return found, "href", "fallback-anchor"
	}
	var foundAttr string
	sel.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		n := s.Nodes[0]
		if name := urlAttr(n); name != "" {
			found, foundAttr = n, name
			return false
		}
		for _, a := range n.Attr {
			if looksLikeURL(a.Val) {
				found, foundAttr = n, a.Key
				return false
			}
		}
		return true
	})
	if found != nil {
		return found, foundAttr, "url-attribute"
	}
	return nil, "", ""
}

// urlAttr returns the first URL attribute on n with a usable value.
func urlAttr(n *html.Node) string {
	for _, name := range urlAttributes {
		if usableLink(attr(n, name)) {
			return name
		}
	}
	return ""
}

func usableLink(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !isNonHTTPLink(v)
}

func looksLikeURL(v string) bool {
	v = strings.TrimSpace(v)
	return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") ||
		(strings.HasPrefix(v, "/") && !strings.HasPrefix(v, "//") && len(v) > 1 && !strings.ContainsAny(v, " {}"))
}

// detectBySelectors returns the first element matching one of selectors
// that has short non-blank text and is neither the title nor wraps it.
func detectBySelectors(item, title *html.Node, selectors []string) (*html.Node, string) {
	sel := goquery.NewDocumentFromNode(item).Selection
	for _, s := range selectors {
		var found *html.Node
		sel.Find(s).EachWithBreak(func(_ int, m *goquery.Selection) bool {
			n := m.Nodes[0]
			if contains(n, title) || contains(title, n) {
				return true
			}
			text := cleanText(m.Text())
			if text == "" || utf8.RuneCountInString(text) > maxFieldRunes {
				return true
			}
			found = n
			return false
		})
		if found != nil {
			return found, s
		}
	}
	return nil, ""
}

func isAnchor(n *html.Node) bool {
	return n.Data == "a" && hasAttr(n, "href")
}
