// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package prompt

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/helper/gc"
	"github.com/bmatcuk/doublestar/v4"
)

// Extension is the file extension of prompt files.
const Extension = ".txt"

// errInvalidUTF8 is the cause attached to KindIO when a file is not UTF-8 text.
var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// Library lists and loads prompts from one directory.
// It is safe for concurrent use; it only reads from the filesystem.
type Library struct {
	dir string
}

// NewLibrary returns a Library rooted at dir. The directory does not need to exist.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// Dir returns the directory the library reads from.
func (l *Library) Dir() string { return l.dir }

// List returns the sorted names of every valid prompt in the directory.
//
// A missing or non-directory path yields an empty slice. Only immediate regular
// files ending in [Extension] are considered, and names failing [IsValidName]
// are skipped.
func (l *Library) List() []string {
	names := []string{}

	info, err := os.Stat(l.dir)
	if err != nil || !info.IsDir() {
		return names
	}

	matches, err := doublestar.Glob(os.DirFS(l.dir), "*"+Extension, doublestar.WithFilesOnly())
	if err != nil {
		return names
	}

	for _, m := range matches {
		name := strings.TrimSuffix(m, Extension)
		if IsValidName(name) {
			names = append(names, name)
		}
	}

	slices.Sort(names)
	return slices.Compact(names)
}

// Path returns the file path backing name. It does not validate name.
func (l *Library) Path(name string) string {
	return filepath.Join(l.dir, name+Extension)
}

// Load returns the verbatim contents of the prompt called name.
//
// The name is validated before the filesystem is touched. Failures are returned
// as [*Error] with one of KindInvalidName, KindNotFound or KindIO.
func (l *Library) Load(name string) (string, error) {
	if !IsValidName(name) {
		return "", &Error{Kind: KindInvalidName, Name: name}
	}

	path := l.Path(name)

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", &Error{Kind: KindNotFound, Name: name, Err: err}
	case err != nil:
		return "", &Error{Kind: KindIO, Name: name, Err: err}
	case !info.Mode().IsRegular():
		return "", &Error{Kind: KindNotFound, Name: name}
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &Error{Kind: KindNotFound, Name: name, Err: err}
		}
		return "", &Error{Kind: KindIO, Name: name, Err: err}
	}
	defer f.Close()

	content, err := gc.ReadString(f)
	if err != nil {
		return "", &Error{Kind: KindIO, Name: name, Err: err}
	}
	if !utf8.ValidString(content) {
		return "", &Error{Kind: KindIO, Name: name, Err: errInvalidUTF8}
	}

	return content, nil
}
