package ports

// Node is a read-only view of one markup element (or the document root).
// It is the narrow capability set the extractor is written against, so
// the extraction cascade does not depend on a specific HTML library's
// node type.
//
// Selectors are a small CSS subset: tag, #id, .class chains,
// [attr], [attr=val], [attr^=val], and descendant combination by space.
type Node interface {
	// Select returns all descendant elements matching the selector,
	// in document order.
	Select(selector string) []Node

	// SelectOne returns the first match or nil.
	SelectOne(selector string) Node

	// Attr returns the value of the named attribute, or "" when absent.
	Attr(name string) string

	// Text returns the element's visible text with whitespace runs
	// collapsed to single spaces and the ends trimmed.
	Text() string

	// RawText returns the element's text content unmodified.
	// Used for script bodies whose whitespace is significant.
	RawText() string
}

// Parser turns one page of markup into a queryable document.
type Parser interface {
	Parse(markup string) (Node, error)
}
