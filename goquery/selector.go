package goquery

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

var (
	positionalPseudo = regexp.MustCompile(`:(?:nth-child|nth-of-type|nth-last-child|nth-last-of-type)\([^)]*\)|:(?:first|last|only)-(?:child|of-type)`)
	childCombinator  = regexp.MustCompile(`\s*>\s*`)
	stableToken      = regexp.MustCompile(`^-?[A-Za-z0-9_][A-Za-z0-9_-]*$`)
	digits           = regexp.MustCompile(`[0-9]`)
)

// NormalizeSelector removes positional pseudo-classes and canonicalizes
// child combinators to " > ". It repeats until the selector stops changing,
// so it is idempotent, and returns "" when nothing usable remains.
func NormalizeSelector(selector string) string {
	s := selector
	for {
		next := normalizeOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func normalizeOnce(s string) string {
	s = positionalPseudo.ReplaceAllString(s, "")
	s = childCombinator.ReplaceAllString(s, " > ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, "> ")
}

// cssPath returns a root-anchored selector for n of the form
// html > body > tag#id.class:nth-child(n). Ids containing digits are
// omitted as unstable, as are ids on elements with same-tag siblings.
func cssPath(n *html.Node) string {
	var segments []string
	for cur := n; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		segments = append(segments, segment(cur, true))
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, " > ")
}

func segment(n *html.Node, positional bool) string {
	var b strings.Builder
	b.WriteString(n.Data)
	if id := attr(n, "id"); id != "" && !digits.MatchString(id) && stableToken.MatchString(id) && !hasSameTagSibling(n) {
		b.WriteString("#")
		b.WriteString(id)
	}
	for _, class := range classTokens(n) {
		b.WriteString(".")
		b.WriteString(class)
	}
	if positional && n.Parent != nil && n.Parent.Type == html.ElementNode {
		b.WriteString(":nth-child(")
		b.WriteString(strconv.Itoa(childIndex(n)))
		b.WriteString(")")
	}
	return b.String()
}

// classTokens returns the class names usable in a selector, sorted.
// Tokens with selector metacharacters are dropped; tokens with a leading
// digit are kept and make the selector fail to compile.
func classTokens(n *html.Node) []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range strings.Fields(attr(n, "class")) {
		if seen[c] || !stableToken.MatchString(c) {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// signature identifies structurally identical siblings.
func signature(n *html.Node) string {
	return n.Data + "." + strings.Join(classTokens(n), ".")
}

// relativePath returns a descendant selector that reaches target from item,
// or "." when target is item itself. Field values come from the first
// match, so the returned selector's first match under item is target
// whenever any candidate form achieves that.
func relativePath(item, target *html.Node) string {
	if item == target {
		return "."
	}
	var nodes []*html.Node
	for cur := target; cur != nil && cur != item; cur = cur.Parent {
		nodes = append(nodes, cur)
	}
	var full, positional, bare, barePositional []string
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		full = append(full, segment(n, false))
		positional = append(positional, segment(n, true))
		bare = append(bare, n.Data)
		barePositional = append(barePositional, n.Data+":nth-child("+strconv.Itoa(childIndex(n))+")")
	}
	candidates := []string{
		strings.Join(full, " > "),
		strings.Join(positional, " > "),
		strings.Join(bare, " > "),
		strings.Join(barePositional, " > "),
	}
	scope := goquery.NewDocumentFromNode(item).Selection
	for _, c := range candidates {
		if matches, ok := find(scope, c); ok && matches.Length() > 0 && matches.Nodes[0] == target {
			return c
		}
	}
	if compiles(candidates[0]) {
		return candidates[0]
	}
	return candidates[2]
}

func compiles(selector string) bool {
	_, err := cascadia.Compile(selector)
	return err == nil
}

// splitClauses splits a selector group on top-level commas.
func splitClauses(selector string) []string {
	var clauses []string
	depth, start := 0, 0
	var quote rune
	for i, r := range selector {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '(' || r == '[':
			depth++
		case r == ')' || r == ']':
			depth--
		case r == ',' && depth == 0:
			clauses = append(clauses, selector[start:i])
			start = i + 1
		}
	}
	clauses = append(clauses, selector[start:])
	out := clauses[:0]
	for _, c := range clauses {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// compileGroup compiles each clause independently and reports whether at
// least one clause compiled.
func compileGroup(selector string) ([]cascadia.Selector, bool) {
	var matchers []cascadia.Selector
	for _, clause := range splitClauses(selector) {
		if m, err := cascadia.Compile(clause); err == nil {
			matchers = append(matchers, m)
		}
	}
	return matchers, len(matchers) > 0
}

// find evaluates selector against the descendants of sel. Clauses that fail
// to compile are skipped; ok is false when no clause compiled.
func find(sel *goquery.Selection, selector string) (matches *goquery.Selection, ok bool) {
	matchers, ok := compileGroup(selector)
	if !ok {
		return sel.Slice(0, 0), false
	}
	if len(matchers) == 1 {
		return sel.FindMatcher(matchers[0]), true
	}
	out := sel.FindMatcher(matchers[0])
	for _, m := range matchers[1:] {
		out = out.Union(sel.FindMatcher(m))
	}
	return out, true
}

// selectField resolves a field selector relative to item. A blank or "."
// selector, or one where no clause compiles, selects item itself.
func selectField(item *goquery.Selection, selector string) *goquery.Selection {
	s := strings.TrimSpace(selector)
	if s == "" || s == "." {
		return item
	}
	matches, ok := find(item, s)
	if !ok {
		return item
	}
	return matches
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func childIndex(n *html.Node) int {
	i := 1
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			i++
		}
	}
	return i
}

func hasSameTagSibling(n *html.Node) bool {
	if n.Parent == nil {
		return false
	}
	for _, c := range elementChildren(n.Parent) {
		if c != n && c.Data == n.Data {
			return true
		}
	}
	return false
}

func hasRepeatingSibling(n *html.Node) bool {
	if n.Parent == nil || n.Parent.Type != html.ElementNode {
		return false
	}
	sig := signature(n)
	for _, c := range elementChildren(n.Parent) {
		if c != n && signature(c) == sig {
			return true
		}
	}
	return false
}

func contains(ancestor, n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}
