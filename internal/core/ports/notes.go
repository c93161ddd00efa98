package ports

// NoteStore reads and writes the local note file.
//
//go:generate mockgen -source=notes.go -destination=mocks/mock_notes.go -package=mocks
type NoteStore interface {
	// Read returns the note text. Returns an empty string when the note does
	// not exist yet.
	Read(path string) (string, error)

	// Write replaces the note text, flushing on all exit paths.
	Write(path, text string) error
}
