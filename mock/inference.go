package mock

import "github.com/fwojciec/jobscout"

var (
	_ jobscout.ProfileInferrer  = (*ProfileInferrer)(nil)
	_ jobscout.ProfileParser    = (*ProfileParser)(nil)
	_ jobscout.ProfileValidator = (*ProfileValidator)(nil)
)

// ProfileInferrer is a mock implementation of jobscout.ProfileInferrer.
type ProfileInferrer struct {
	InferFn func(entryURL, html string) (*jobscout.AutoParseResult, error)
}

func (m *ProfileInferrer) Infer(entryURL, html string) (*jobscout.AutoParseResult, error) {
	return m.InferFn(entryURL, html)
}

// ProfileParser is a mock implementation of jobscout.ProfileParser.
type ProfileParser struct {
	ParseFn func(profile *jobscout.ParserProfile, html, pageURL string) ([]jobscout.ParsedJob, error)
}

func (m *ProfileParser) Parse(profile *jobscout.ParserProfile, html, pageURL string) ([]jobscout.ParsedJob, error) {
	return m.ParseFn(profile, html, pageURL)
}

// ProfileValidator is a mock implementation of jobscout.ProfileValidator.
type ProfileValidator struct {
	ValidateFn func(profile *jobscout.ParserProfile, html, pageURL string) *jobscout.ValidationResult
}

func (m *ProfileValidator) Validate(profile *jobscout.ParserProfile, html, pageURL string) *jobscout.ValidationResult {
	return m.ValidateFn(profile, html, pageURL)
}
