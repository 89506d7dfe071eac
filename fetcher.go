package jobscout

import "context"

// Fetcher retrieves HTML for careers pages.
// Implementations may use browser automation for JavaScript-rendered listings.
type Fetcher interface {
	// Fetch retrieves the HTML for url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
