package crawl

import "github.com/fwojciec/jobscout"

// RenderingAddsJobs reports whether a browser-rendered snapshot yields
// significantly more jobs (more than 50%) than the static snapshot of the
// same page under profile. A parse failure on the static snapshot counts as
// needing the browser; a failure on the rendered one does not.
func RenderingAddsJobs(parser jobscout.ProfileParser, profile *jobscout.ParserProfile, pageURL, staticHTML, renderedHTML string) bool {
	rendered, err := parser.Parse(profile, renderedHTML, pageURL)
	if err != nil {
		return false
	}

	static, err := parser.Parse(profile, staticHTML, pageURL)
	if err != nil {
		return true
	}

	if len(static) == 0 {
		return len(rendered) > 0
	}

	threshold := float64(len(static)) * 1.5
	return float64(len(rendered)) > threshold
}
