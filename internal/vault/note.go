package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Note is a markdown file inside a vault.
type Note struct {
	Name string
	Path string
}

// NoteFromPath builds a note named after its file without the extension.
func NoteFromPath(path string) Note {
	base := filepath.Base(path)
	return Note{
		Name: strings.TrimSuffix(base, filepath.Ext(base)),
		Path: path,
	}
}

// ReadToString returns the note's current content on disk.
func (n Note) ReadToString() (string, error) {
	data, err := os.ReadFile(n.Path)
	if err != nil {
		return "", fmt.Errorf("read note %s: %w", n.Name, err)
	}
	return string(data), nil
}

// WriteNote overwrites the file at path with content verbatim.
func WriteNote(path, content string) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("write note: %w", err)
	}
	return nil
}
