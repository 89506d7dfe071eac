package goquery

import (
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jobscout"
)

const (
	maxSamples          = 10
	maxCoverageElements = 25
)

// Ensure Validator implements jobscout.ProfileValidator at compile time.
var _ jobscout.ProfileValidator = (*Validator)(nil)

// Validator checks that a profile yields at least one plausible record.
type Validator struct {
	parser *Parser

	// Now returns the parse timestamp. Defaults to time.Now.
	Now func() time.Time
}

// NewValidator creates a Validator that parses with parser.
func NewValidator(parser *Parser) *Validator {
	return &Validator{parser: parser, Now: time.Now}
}

// Validate runs profile against rawHTML and reports samples, warnings and
// per-field coverage. Success means at least one record was produced.
func (v *Validator) Validate(profile *jobscout.ParserProfile, rawHTML, pageURL string) *jobscout.ValidationResult {
	pg, err := newPage(rawHTML, pageURL)
	if err != nil {
		return &jobscout.ValidationResult{
			ParsedAt: v.Now().UTC(),
			Warnings: []string{"Parser execution failed: " + jobscout.ErrorMessage(err)},
		}
	}
	return v.validate(profile, pg)
}

func (v *Validator) validate(profile *jobscout.ParserProfile, pg *page) (res *jobscout.ValidationResult) {
	res = &jobscout.ValidationResult{ParsedAt: v.Now().UTC()}
	defer func() {
		if r := recover(); r != nil {
			res.Success = false
			res.Samples = nil
			res.JobCount = 0
			res.Warnings = append(res.Warnings, fmt.Sprintf("Parser execution failed: %v", r))
		}
	}()

	if !profile.IsConfigured() {
		res.Warnings = append(res.Warnings, "Profile is not configured: a list selector and a title field are required.")
		return res
	}

	jobs, err := v.parser.parse(profile, pg)
	if err != nil {
		res.Warnings = append(res.Warnings, "Parser execution failed: "+jobscout.ErrorMessage(err))
		return res
	}

	items, _ := listItems(profile, pg)
	if items.Length() == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("List selector '%s' did not match any elements.", profile.ListSelector))
	}
	res.Coverage = v.coverage(profile, items, pg)
	for _, name := range profile.FieldNames() {
		c := res.Coverage[name]
		if c.Required && c.Failures > 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Required field '%s' missing in %d of %d inspected elements.", name, c.Failures, c.Inspected))
		}
	}

	res.JobCount = len(jobs)
	if len(jobs) == 0 {
		res.Warnings = append(res.Warnings, "No jobs parsed with generated selectors")
		return res
	}
	res.Samples = jobs[:min(len(jobs), maxSamples)]
	res.Success = true
	return res
}

func (v *Validator) coverage(profile *jobscout.ParserProfile, items *goquery.Selection, pg *page) map[string]jobscout.FieldCoverage {
	out := make(map[string]jobscout.FieldCoverage, len(profile.Fields))
	for _, name := range profile.FieldNames() {
		out[name] = jobscout.FieldCoverage{Required: profile.Fields[name].Required}
	}
	items.Slice(0, min(items.Length(), maxCoverageElements)).Each(func(i int, item *goquery.Selection) {
		for _, name := range profile.FieldNames() {
			f := profile.Fields[name]
			if f.Name == "" {
				f.Name = name
			}
			c := out[name]
			c.Inspected++
			if v.parser.extract(&f, item, pg) != nil {
				c.Successes++
			} else {
				c.Failures++
				if c.FirstFailure == "" {
					c.FirstFailure = fmt.Sprintf("element #%d", i+1)
					c.FirstFailureReason = failureReason(&f, item)
				}
			}
			out[name] = c
		}
	})
	return out
}

func failureReason(f *jobscout.ParserField, item *goquery.Selection) string {
	if f.Type == jobscout.FieldConstant || f.SelfSelected() {
		return "no value"
	}
	if selectField(item, f.Selector).Length() == 0 {
		return fmt.Sprintf("selector '%s' matched nothing", f.Selector)
	}
	return "selector matched but produced no value"
}
