package jobscout

// Platform identifies the hosting system behind a careers page.
type Platform string

// Platform constants.
const (
	PlatformUnknown         Platform = ""
	PlatformWorkday         Platform = "workday"
	PlatformGreenhouse      Platform = "greenhouse"
	PlatformLever           Platform = "lever"
	PlatformBambooHR        Platform = "bamboohr"
	PlatformSmartRecruiters Platform = "smartrecruiters"
	PlatformICIMS           Platform = "icims"
	PlatformJobvite         Platform = "jobvite"
	PlatformSPA             Platform = "spa"
	PlatformTable           Platform = "table-based"
	PlatformStandard        Platform = "standard"
)

// PlatformDetector classifies a careers page from its HTML and URL.
type PlatformDetector interface {
	// Detect returns the platform; PlatformStandard when nothing specific matches.
	Detect(html, pageURL string) Platform

	// RequiresBrowser reports whether the page is likely rendered client-side.
	RequiresBrowser(html string) bool
}
