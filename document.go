package nezamdoc

import "context"

// Document is a cleaned title/body pair ready to be written out.
// Body separates paragraphs with newline characters.
type Document struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Title == "" {
		return Errorf(EINVALID, "document title required")
	}
	return nil
}

// WriteInfo reports the outcome of writing a single document.
type WriteInfo struct {
	// Path is the file the document was written to.
	Path string `json:"path"`

	// Styled reports whether the configured font styling was applied.
	// Styling is best-effort: a document that could not be styled is
	// still written, and the failure surfaces here rather than as an
	// error.
	Styled bool `json:"styled"`
}

// DocumentWriter renders documents to files on disk. An existing file at
// the target path is overwritten.
type DocumentWriter interface {
	Write(ctx context.Context, doc *Document, path string) (*WriteInfo, error)
}
