// Package lockfile reads and writes the opamlock lock file format.
//
// The format is one "name = version" line per package, pins first. A '#' at the start
// of a line or after whitespace starts a comment; a '#' inside a token (as in a git
// url#ref) does not. Blank lines are ignored.
package lockfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/opamlock/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.LockfileStore.
type Store struct {
	version string
}

// NewStore creates a Store. version is recorded in the header of written files.
func NewStore(version string) *Store {
	return &Store{version: version}
}

// Decode parses lock file text into a LockState.
func (s *Store) Decode(r io.Reader) (domain.LockState, error) {
	var pkgs []domain.Package

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := stripComment(scanner.Text())
		if line == "" {
			continue
		}

		pkg, err := domain.ParseLockLine(line)
		if err != nil {
			return domain.LockState{}, zerr.With(err, "line_number", lineNumber)
		}
		pkgs = append(pkgs, pkg)
	}
	if err := scanner.Err(); err != nil {
		return domain.LockState{}, zerr.Wrap(domain.ErrLockfileReadFailed, err.Error())
	}

	state := domain.NewLockState(pkgs)
	if err := state.Validate(); err != nil {
		return domain.LockState{}, err
	}
	return state, nil
}

// Encode writes the header and one line per package.
func (s *Store) Encode(w io.Writer, state domain.LockState) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# generated by opamlock %s\n", s.version)
	fmt.Fprintf(bw, "# digest: %s\n", state.Digest())
	for _, line := range state.LockLines() {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return zerr.Wrap(domain.ErrLockfileWriteFailed, err.Error())
	}
	return nil
}

// Load reads and decodes the lock file at path.
func (s *Store) Load(path string) (domain.LockState, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return domain.LockState{}, zerr.With(zerr.Wrap(domain.ErrLockfileReadFailed, err.Error()), "path", path)
	}
	defer func() { _ = f.Close() }()

	state, err := s.Decode(f)
	if err != nil {
		return domain.LockState{}, zerr.With(err, "path", path)
	}
	return state, nil
}

// Save writes state to path atomically.
func (s *Store) Save(path string, state domain.LockState) error {
	var b strings.Builder
	if err := s.Encode(&b, state); err != nil {
		return err
	}

	if err := atomicWriteFile(path, []byte(b.String())); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLockfileWriteFailed, err.Error()), "path", path)
	}
	return nil
}

// stripComment removes a trailing comment and surrounding whitespace.
func stripComment(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != '#' {
			continue
		}
		if i == 0 || line[i-1] == ' ' || line[i-1] == '\t' {
			return strings.TrimSpace(line[:i])
		}
	}
	return strings.TrimSpace(line)
}

// atomicWriteFile writes data to a temp file in the target directory and renames it over path.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".opamlock-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
