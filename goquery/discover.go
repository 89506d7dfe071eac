package goquery

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jobscout"
	"golang.org/x/net/html"
)

const (
	maxAncestorClimb = 8
	maxNavDepth      = 10
	maxDescend       = 4
)

// signal attaches one piece of evidence to a DOM node.
type signal struct {
	node *html.Node
	ev   jobscout.Evidence
}

// candidate is a scored list selector plus the first node that produced it.
type candidate struct {
	jobscout.CandidateEvaluation
	node *html.Node
}

// discover runs every evidence pass over doc and folds the signals into
// candidates keyed by generalized selector, ranked by total score. Ties
// keep discovery order.
func discover(doc *goquery.Document, w jobscout.ScoreWeights) []*candidate {
	var signals []signal
	signals = append(signals, containerPass(doc, w)...)
	signals = append(signals, markerPass(doc, w)...)
	signals = append(signals, anchorPass(doc, w)...)
	signals = append(signals, keywordPass(doc, w)...)
	signals = append(signals, listItemPass(doc, w)...)
	return fold(signals)
}

func fold(signals []signal) []*candidate {
	keys := make(map[*html.Node]string)
	valid := make(map[string]bool)
	byKey := make(map[string]*candidate)
	var ranked []*candidate

	for _, s := range signals {
		key, ok := keys[s.node]
		if !ok {
			key = candidateKey(s.node, valid)
			keys[s.node] = key
		}
		if key == "" {
			continue
		}
		c := byKey[key]
		if c == nil {
			c = &candidate{
				CandidateEvaluation: jobscout.CandidateEvaluation{Selector: key},
				node:                s.node,
			}
			byKey[key] = c
			ranked = append(ranked, c)
		}
		c.Score.Add(s.ev)
		if !containsString(c.Reasons, s.ev.Reason) {
			c.Reasons = append(c.Reasons, s.ev.Reason)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Total() > ranked[j].Score.Total()
	})
	return ranked
}

// candidateKey returns the generalized selector for n, or "" when n can
// never be a list candidate or its selector does not compile.
func candidateKey(n *html.Node, valid map[string]bool) string {
	if n == nil || n.Type != html.ElementNode || isRootLevel(n) || isNavChrome(n) {
		return ""
	}
	key := NormalizeSelector(cssPath(n))
	if key == "" {
		return ""
	}
	ok, seen := valid[key]
	if !seen {
		ok = compiles(key)
		valid[key] = ok
	}
	if !ok {
		return ""
	}
	return key
}

// containerPass registers the first repeating child of known ATS containers.
func containerPass(doc *goquery.Document, w jobscout.ScoreWeights) []signal {
	var out []signal
	for _, sel := range atsContainerSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if item := firstRepeatingChild(s.Nodes[0]); item != nil {
				out = append(out, signal{item, jobscout.Evidence{
					Kind:   jobscout.EvidenceStructural,
					Weight: w.ATSContainer,
					Reason: "ats-container " + sel,
				}})
			}
		})
	}
	return out
}

// firstRepeatingChild descends through single-child wrappers looking for
// the first child whose tag and classes repeat among its siblings.
func firstRepeatingChild(n *html.Node) *html.Node {
	cur := n
	for range maxDescend {
		children := elementChildren(cur)
		if len(children) == 0 {
			return nil
		}
		counts := make(map[string]int)
		for _, c := range children {
			counts[signature(c)]++
		}
		for _, c := range children {
			if counts[signature(c)] >= 2 {
				return c
			}
		}
		if isListContainer(cur) {
			return children[0]
		}
		if len(children) != 1 {
			return nil
		}
		cur = children[0]
	}
	return nil
}

func isListContainer(n *html.Node) bool {
	switch n.Data {
	case "ul", "ol", "tbody":
		return true
	}
	switch attr(n, "role") {
	case "list", "listbox", "feed", "grid":
		return true
	}
	return false
}

// markerPass registers elements carrying structured job-item attributes.
func markerPass(doc *goquery.Document, w jobscout.ScoreWeights) []signal {
	var out []signal
	for _, group := range []struct {
		selectors []string
		weight    int
	}{
		{strongMarkerSelectors, w.StrongMarker},
		{weakMarkerSelectors, w.WeakMarker},
	} {
		for _, sel := range group.selectors {
			doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
				out = append(out, signal{s.Nodes[0], jobscout.Evidence{
					Kind:   jobscout.EvidenceMarker,
					Weight: group.weight,
					Reason: "marker " + sel,
				}})
			})
		}
	}
	return out
}

// anchorPass climbs from every interactive element, crediting each
// ancestor. A card-like anchor with several element children credits itself.
func anchorPass(doc *goquery.Document, w jobscout.ScoreWeights) []signal {
	var out []signal
	doc.Find("a, button, [role='link']").Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		href, _ := s.Attr("href")
		keyword := hasJobKeyword(s.Text()+" "+href) || hasTitleHint(s.Text())
		start := n.Parent
		if len(elementChildren(n)) >= 2 {
			start = n
		}
		cur := start
		for i := 0; i < maxAncestorClimb && cur != nil && cur.Type == html.ElementNode; i++ {
			out = append(out, signal{cur, jobscout.Evidence{Kind: jobscout.EvidenceAnchor, Weight: w.Anchor, Reason: "interactive descendant"}})
			if keyword {
				out = append(out, signal{cur, jobscout.Evidence{Kind: jobscout.EvidenceKeywordText, Weight: w.KeywordTextBoost, Reason: "job keyword text"}})
			}
			if hasRepeatingSibling(cur) {
				out = append(out, signal{cur, jobscout.Evidence{Kind: jobscout.EvidenceStructural, Weight: w.Repeating, Reason: "repeating siblings"}})
			}
			cur = cur.Parent
		}
	})
	return out
}

// keywordPass registers elements whose attributes mention jobs. Attribute
// values that name a single card field (job-title, job-location) are skipped.
func keywordPass(doc *goquery.Document, w jobscout.ScoreWeights) []signal {
	var out []signal
	doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		for _, name := range keywordAttributes {
			v := strings.ToLower(attr(n, name))
			if v == "" || !hasJobKeyword(v) || containsAny(v, fieldTokens) {
				continue
			}
			out = append(out, signal{n, jobscout.Evidence{
				Kind:   jobscout.EvidenceKeyword,
				Weight: w.AttrKeyword,
				Reason: "job keyword in " + name,
			}})
			return
		}
	})
	return out
}

// listItemPass registers ARIA list items.
func listItemPass(doc *goquery.Document, w jobscout.ScoreWeights) []signal {
	var out []signal
	doc.Find("[role='listitem']").Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		out = append(out,
			signal{n, jobscout.Evidence{Kind: jobscout.EvidenceStructural, Weight: w.ListItem, Reason: "role=listitem"}},
			signal{n, jobscout.Evidence{Kind: jobscout.EvidenceListRole, Weight: w.ListRoleBoost, Reason: "list role"}},
		)
	})
	return out
}

// isRootLevel reports whether n is html, body or the #root app mount.
func isRootLevel(n *html.Node) bool {
	return n.Data == "html" || n.Data == "body" || attr(n, "id") == "root"
}

// isNavChrome reports whether n or one of its ancestors within
// maxNavDepth levels is site navigation, a header or a footer.
func isNavChrome(n *html.Node) bool {
	cur := n
	for i := 0; i <= maxNavDepth && cur != nil && cur.Type == html.ElementNode; i++ {
		switch cur.Data {
		case "nav", "header", "footer":
			return true
		}
		if attr(cur, "role") == "navigation" {
			return true
		}
		class := strings.ToLower(attr(cur, "class"))
		if containsAny(class, []string{"globalnav", "globalheader", "breadcrumb", "footer"}) {
			return true
		}
		cur = cur.Parent
	}
	return false
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
