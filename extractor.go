package dealscan

// ContentExtractor extracts main content text from HTML pages, removing
// boilerplate (nav, footer, sidebar, ads). The generic extraction strategy
// uses it to find description material on sites with no known structure.
type ContentExtractor interface {
	// ExtractText processes raw HTML and returns the main content as
	// plain text with line structure preserved.
	ExtractText(html string) (string, error)
}
