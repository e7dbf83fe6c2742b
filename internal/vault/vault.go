package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry represents a file or directory in the vault.
type Entry struct {
	Name  string
	Path  string // relative to the vault root
	IsDir bool
	Depth int
}

// Vault is a named root directory of notes.
type Vault struct {
	Name string
	Path string
}

// New returns a vault rooted at path, named after its directory when name is empty.
func New(name, path string) Vault {
	if name == "" {
		name = filepath.Base(path)
	}
	return Vault{Name: name, Path: path}
}

// Entries returns a flat list of the vault's directories and markdown notes,
// sorted with directories first, then alphabetically. Hidden entries are skipped.
func (v Vault) Entries() ([]Entry, error) {
	info, err := os.Stat(v.Path)
	if err != nil {
		return nil, fmt.Errorf("open vault %s: %w", v.Name, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open vault %s: %s is not a directory", v.Name, v.Path)
	}

	var entries []Entry

	err = filepath.Walk(v.Path, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip errors
		}

		rel, _ := filepath.Rel(v.Path, path)
		if rel == "." {
			return nil
		}

		// Skip hidden files/directories and .obsidian
		name := filepath.Base(path)
		if strings.HasPrefix(name, ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.IsDir() && !IsNote(name) {
			return nil
		}

		entries = append(entries, Entry{
			Name:  name,
			Path:  rel,
			IsDir: info.IsDir(),
			Depth: strings.Count(rel, string(filepath.Separator)),
		})
		return nil
	})

	sort.Slice(entries, func(i, j int) bool {
		// Directories before files at same depth
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Path < entries[j].Path
	})

	return entries, err
}

// Notes returns only markdown files in the vault.
func (v Vault) Notes() ([]Entry, error) {
	all, err := v.Entries()
	if err != nil {
		return nil, err
	}

	var notes []Entry
	for _, e := range all {
		if !e.IsDir {
			notes = append(notes, e)
		}
	}
	return notes, nil
}

// Note returns the note at rel inside the vault.
func (v Vault) Note(rel string) Note {
	return NoteFromPath(filepath.Join(v.Path, rel))
}

// IsNote reports whether name looks like a markdown note.
func IsNote(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".markdown"
}
