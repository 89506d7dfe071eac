package jobscout

// ExtractResult holds the main content of a job detail page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the posting body as clean HTML with boilerplate removed.
	ContentHTML string
}

// Extractor extracts the main content from job detail pages.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}
