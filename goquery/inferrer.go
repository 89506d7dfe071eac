package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jobscout"
	"golang.org/x/net/html"
)

const (
	maxRejections       = 5
	maxAuditCandidates  = 10
	minInteractiveItems = 2
)

// Ensure Inferrer implements jobscout.ProfileInferrer at compile time.
var _ jobscout.ProfileInferrer = (*Inferrer)(nil)

// Inferrer derives a parser profile from a single careers page snapshot.
// Inferrer holds only immutable configuration and is safe for concurrent use.
type Inferrer struct {
	weights   jobscout.ScoreWeights
	validator *Validator
	detector  *Detector
}

// NewInferrer creates an Inferrer configured by cfg.
func NewInferrer(cfg jobscout.Config) *Inferrer {
	return &Inferrer{
		weights:   cfg.Weights,
		validator: NewValidator(NewParser(cfg)),
		detector:  NewDetector(),
	}
}

// Infer ranks list candidates in rawHTML and returns the first one whose
// trial profile validates. Returns EINVALID for unusable input, ECHALLENGE
// for bot-mitigation interstitials and ENOCANDIDATE when every candidate is
// rejected.
func (inf *Inferrer) Infer(entryURL, rawHTML string) (*jobscout.AutoParseResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, jobscout.Errorf(jobscout.EINVALID, "html is empty")
	}
	pg, err := newPage(rawHTML, entryURL)
	if err != nil {
		return nil, err
	}
	if marker, ok := detectChallenge(pg.doc); ok {
		return nil, jobscout.Errorf(jobscout.ECHALLENGE, "page is a bot challenge (%s)", marker)
	}
	body := pg.doc.Find("body")
	if body.Length() == 0 || len(elementChildren(body.Nodes[0])) == 0 {
		return nil, jobscout.Errorf(jobscout.EINVALID, "document has no body content")
	}

	candidates := discover(pg.doc, inf.weights)
	if len(candidates) == 0 {
		return nil, jobscout.Errorf(jobscout.ENOCANDIDATE, "no list candidates found")
	}

	var rejections []string
	for _, c := range candidates {
		t, reason := inf.evaluate(c, pg)
		if t == nil {
			rejections = append(rejections, c.Selector+": "+reason)
			continue
		}
		return inf.accept(t, candidates, rejections, pg), nil
	}

	return nil, &jobscout.Error{
		Code:    jobscout.ENOCANDIDATE,
		Message: fmt.Sprintf("no candidate produced a valid profile (%d rejected)", len(rejections)),
		Reasons: rejections[:min(len(rejections), maxRejections)],
	}
}

// trial is a candidate that passed every gate.
type trial struct {
	profile    jobscout.ParserProfile
	provenance map[string]string
}

// evaluate walks c through normalization, the job-list gate, field
// detection and validation. It returns nil and the reason on rejection.
func (inf *Inferrer) evaluate(c *candidate, pg *page) (*trial, string) {
	selector := NormalizeSelector(c.Selector)
	if selector == "" {
		return nil, "selector normalized to nothing"
	}
	items, ok := find(pg.doc.Selection, selector)
	if !ok {
		return nil, "selector does not compile"
	}
	if items.Length() == 0 {
		return nil, "selector matches no elements"
	}
	first := items.Nodes[0]
	if isRootLevel(first) {
		return nil, "selector matches the document root"
	}
	if !isLikelyJobList(first) {
		return nil, "not a likely job list"
	}

	d := detectFields(first, pg)
	if d.title == nil {
		return nil, "no title field detected"
	}

	profile := jobscout.ParserProfile{
		ListSelector: selector,
		Fields:       d.fields,
	}
	res := inf.validator.validate(&profile, pg)
	if !res.Success {
		reason := "validation produced no jobs"
		if len(res.Warnings) > 0 {
			reason = res.Warnings[len(res.Warnings)-1]
		}
		return nil, reason
	}
	return &trial{profile: profile, provenance: d.provenance}, ""
}

// accept assembles the inference result around the winning candidate.
func (inf *Inferrer) accept(t *trial, candidates []*candidate, rejections []string, pg *page) *jobscout.AutoParseResult {
	platform := inf.detector.detect(pg.doc, pg.url())
	requiresBrowser := inf.detector.requiresBrowser(pg.doc)

	res := &jobscout.AutoParseResult{
		Profile: t.profile,
		Paging:  detectPaging(pg),
		Audit: jobscout.Audit{
			ChosenSelector:  t.profile.ListSelector,
			Platform:        platform,
			RequiresBrowser: requiresBrowser,
			Provenance:      t.provenance,
			Rejections:      rejections,
		},
	}
	if requiresBrowser {
		res.Automation = jobscout.AutomationSettings{
			Enabled:         true,
			JavaScript:      true,
			WaitForSelector: t.profile.ListSelector,
		}
	}
	for _, other := range candidates[:min(len(candidates), maxAuditCandidates)] {
		res.Audit.Candidates = append(res.Audit.Candidates, other.Summary())
	}
	return res
}

// isLikelyJobList gates candidates that are not navigation chrome and
// either hold several interactive elements, exactly one interactive element
// that mentions a job, or carry a job keyword on their own attributes or
// text.
func isLikelyJobList(n *html.Node) bool {
	if isNavChrome(n) {
		return false
	}
	sel := goquery.NewDocumentFromNode(n).Selection
	interactive := sel.Find("a, button, [role='link']")
	if isAnchor(n) {
		interactive = interactive.AddNodes(n)
	}
	switch {
	case interactive.Length() >= minInteractiveItems:
		return true
	case interactive.Length() == 1:
		only := interactive.First()
		href, _ := only.Attr("href")
		if hasJobKeyword(only.Text() + " " + href) {
			return true
		}
	}
	own := attr(n, "id") + " " + attr(n, "class") + " " + ownText(n)
	return hasJobKeyword(own)
}
