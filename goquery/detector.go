package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jobscout"
)

// Ensure Detector implements jobscout.PlatformDetector at compile time.
var _ jobscout.PlatformDetector = (*Detector)(nil)

// tableRowThreshold is the number of table rows above which a page is
// treated as a table-based listing.
const tableRowThreshold = 10

// Detector identifies the applicant tracking system or page style behind a
// careers page. It checks the host name first, then platform-specific
// markup, then client-side rendering markers.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and the page URL and returns the platform.
// Returns PlatformStandard if nothing more specific is found.
func (d *Detector) Detect(html, pageURL string) jobscout.Platform {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return jobscout.PlatformUnknown
	}
	return d.detect(doc, pageURL)
}

// RequiresBrowser reports whether the page is likely rendered client-side.
func (d *Detector) RequiresBrowser(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}
	return d.requiresBrowser(doc)
}

func (d *Detector) detect(doc *goquery.Document, pageURL string) jobscout.Platform {
	if p := d.detectFromHost(pageURL); p != jobscout.PlatformUnknown {
		return p
	}

	// Workday renders every widget with data-automation-id attributes
	if d.hasSelector(doc, "[data-automation-id='jobResults']") ||
		d.hasSelector(doc, "script[src*='myworkday']") {
		return jobscout.PlatformWorkday
	}

	// Greenhouse embeds mount into #grnhse_app; hosted boards use .opening
	if d.hasSelector(doc, "#grnhse_app") ||
		d.hasSelector(doc, "script[src*='greenhouse.io']") ||
		d.hasSelector(doc, "section.level-0 .opening") {
		return jobscout.PlatformGreenhouse
	}

	if d.hasSelector(doc, ".postings-group") ||
		d.hasSelector(doc, "a.posting-title") {
		return jobscout.PlatformLever
	}

	if d.hasSelector(doc, ".BambooHR-ATS-board") ||
		d.hasSelector(doc, ".BambooHR-ATS-Jobs-List") {
		return jobscout.PlatformBambooHR
	}

	if d.hasSelector(doc, "[class*='iCIMS_']") {
		return jobscout.PlatformICIMS
	}

	if d.hasSelector(doc, ".jv-job-list") {
		return jobscout.PlatformJobvite
	}

	if d.requiresBrowser(doc) {
		return jobscout.PlatformSPA
	}

	if doc.Find("table tr").Length() > tableRowThreshold {
		return jobscout.PlatformTable
	}

	return jobscout.PlatformStandard
}

// detectFromHost maps well-known ATS host names to platforms.
func (d *Detector) detectFromHost(pageURL string) jobscout.Platform {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return jobscout.PlatformUnknown
	}
	host := strings.ToLower(u.Host)

	switch {
	case strings.Contains(host, "workday"):
		return jobscout.PlatformWorkday
	case strings.Contains(host, "greenhouse"):
		return jobscout.PlatformGreenhouse
	case strings.Contains(host, "lever.co"):
		return jobscout.PlatformLever
	case strings.Contains(host, "bamboohr"):
		return jobscout.PlatformBambooHR
	case strings.Contains(host, "smartrecruiters"):
		return jobscout.PlatformSmartRecruiters
	case strings.Contains(host, "icims"):
		return jobscout.PlatformICIMS
	case strings.Contains(host, "jobvite"):
		return jobscout.PlatformJobvite
	}

	return jobscout.PlatformUnknown
}

// requiresBrowser checks for framework mount points and bundles, combined
// with a body that carries almost no job content of its own.
func (d *Detector) requiresBrowser(doc *goquery.Document) bool {
	spa := d.hasSelector(doc, "[ng-app], [data-reactroot], [data-v-app], #__next, #__nuxt, [class*='ember-']") ||
		d.hasSelector(doc, "script[src*='angular'], script[src*='react'], script[src*='vue']")
	if !spa {
		return false
	}
	return d.hasMinimalContent(doc)
}

// hasMinimalContent reports whether the page has too few job links or
// job-classed elements to be parsed without rendering.
func (d *Detector) hasMinimalContent(doc *goquery.Document) bool {
	links := doc.Find("a[href*='job'], a[href*='position'], a[href*='career']").Length()
	elements := doc.Find("[class*='job'], [class*='position'], [class*='career']").Length()
	return links < 3 && elements < 5
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
