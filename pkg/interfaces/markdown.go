package interfaces

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	// Sanitize omits every raw HTML block and inline tag.
	Sanitize  bool
	HardWraps bool
	// SafeMode omits raw HTML at the parser. Body processors that hold a
	// sanitizer render it instead and reject the page when it fails the check.
	SafeMode bool
}
