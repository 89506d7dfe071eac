package jobscout

import "time"

// ProfileInferrer infers a parser profile from a single HTML snapshot.
type ProfileInferrer interface {
	// Infer returns the first candidate profile that validates against html.
	// Returns EINVALID for unusable input, ECHALLENGE for anti-bot
	// interstitials and ENOCANDIDATE when no candidate validates.
	Infer(entryURL, html string) (*AutoParseResult, error)
}

// ProfileParser runs a profile against a page and assembles job records.
type ProfileParser interface {
	// Parse returns the records found in html. Returns EINVALID if the
	// profile's list selector cannot be evaluated at all.
	Parse(profile *ParserProfile, html, pageURL string) ([]ParsedJob, error)
}

// ProfileValidator checks that a profile produces plausible records.
type ProfileValidator interface {
	Validate(profile *ParserProfile, html, pageURL string) *ValidationResult
}

// AutomationSettings tells a fetcher how to render a JavaScript-heavy page.
type AutomationSettings struct {
	Enabled         bool   `json:"enabled"`
	JavaScript      bool   `json:"javascript"`
	WaitForSelector string `json:"waitForSelector,omitempty"`
	WaitMillis      int    `json:"waitMillis,omitempty"`
}

// AutoParseResult is the outcome of a successful inference.
type AutoParseResult struct {
	Profile    ParserProfile      `json:"profile"`
	Paging     PagingStrategy     `json:"paging"`
	Automation AutomationSettings `json:"automation"`
	Audit      Audit              `json:"audit"`
}

// Audit records how an inference reached its result.
type Audit struct {
	ChosenSelector  string             `json:"chosenSelector"`
	Platform        Platform           `json:"platform"`
	RequiresBrowser bool               `json:"requiresBrowser"`
	Candidates      []CandidateSummary `json:"candidates,omitempty"`
	Provenance      map[string]string  `json:"provenance,omitempty"`
	Rejections      []string           `json:"rejections,omitempty"`
}

// Metadata renders the audit as an opaque map for serialization layers.
func (a *Audit) Metadata() map[string]any {
	candidates := make([]map[string]any, 0, len(a.Candidates))
	for _, c := range a.Candidates {
		candidates = append(candidates, map[string]any{
			"selector": c.Selector,
			"score":    c.Total,
			"reasons":  c.Reasons,
		})
	}
	provenance := make(map[string]any, len(a.Provenance))
	for k, v := range a.Provenance {
		provenance[k] = v
	}
	return map[string]any{
		"chosenSelector":  a.ChosenSelector,
		"siteType":        string(a.Platform),
		"requiresBrowser": a.RequiresBrowser,
		"candidates":      candidates,
		"fieldProvenance": provenance,
		"rejections":      a.Rejections,
	}
}

// FieldCoverage counts how often a field produced a value on inspected elements.
type FieldCoverage struct {
	Required           bool   `json:"required"`
	Inspected          int    `json:"inspected"`
	Successes          int    `json:"successes"`
	Failures           int    `json:"failures"`
	FirstFailure       string `json:"firstFailure,omitempty"`
	FirstFailureReason string `json:"firstFailureReason,omitempty"`
}

// ValidationResult is the outcome of running a profile against a snapshot.
type ValidationResult struct {
	Success  bool                     `json:"success"`
	Samples  []ParsedJob              `json:"samples"`
	Warnings []string                 `json:"warnings,omitempty"`
	JobCount int                      `json:"jobCount"`
	ParsedAt time.Time                `json:"parsedAt"`
	Coverage map[string]FieldCoverage `json:"coverage,omitempty"`
}
