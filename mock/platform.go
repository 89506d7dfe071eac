package mock

import "github.com/fwojciec/jobscout"

var _ jobscout.PlatformDetector = (*PlatformDetector)(nil)

// PlatformDetector is a mock implementation of jobscout.PlatformDetector.
type PlatformDetector struct {
	DetectFn          func(html, pageURL string) jobscout.Platform
	RequiresBrowserFn func(html string) bool
}

func (d *PlatformDetector) Detect(html, pageURL string) jobscout.Platform {
	return d.DetectFn(html, pageURL)
}

func (d *PlatformDetector) RequiresBrowser(html string) bool {
	return d.RequiresBrowserFn(html)
}
