package jobscout

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms detail-page HTML (e.g., from an Extractor) into Markdown.
	Convert(html string) (string, error)
}
