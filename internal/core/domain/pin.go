package domain

import (
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// GitPinKind is the pin kind opam reports for git-controlled pins.
const GitPinKind = "git"

var pinnedHashPattern = regexp.MustCompile(`^git \(([^()\s]+)\)$`)

// Pin is an entry of the opam pin registry. It only lives during resolution.
type Pin struct {
	// Name is the package name, without the version qualifier opam prints.
	Name string

	// URL is the pinned source. It may still carry a "#branch" suffix.
	URL string
}

// ParsePinLine parses a line of `opam pin` output: "name.qualifier kind url".
// It returns ok=false for pins that are not git-controlled.
func ParsePinLine(line string) (pin Pin, ok bool, err error) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[1] != GitPinKind {
		return Pin{}, false, nil
	}
	if len(fields) < 3 {
		return Pin{}, false, zerr.With(zerr.Wrap(ErrInvalidPackage, "failed to parse pin registry"), "line", line)
	}

	name, _, _ := strings.Cut(fields[0], ".")
	return Pin{Name: name, URL: fields[2]}, true, nil
}

// ParsePinnedHash extracts the checked-out commit from `opam show -f pinned` output.
// The output must be exactly one line of the form "git (<hash>)".
func ParsePinnedHash(lines []string) (string, error) {
	if len(lines) == 1 {
		if m := pinnedHashPattern.FindStringSubmatch(strings.TrimSpace(lines[0])); m != nil {
			return m[1], nil
		}
	}
	err := zerr.Wrap(ErrInvalidGitHash, "failed to read pinned source")
	return "", zerr.With(err, "output", strings.Join(lines, "\n"))
}

// Lock resolves the pin against the commit currently checked out for it.
func (p Pin) Lock(hash string) Package {
	url, branch := SplitGitRef(p.URL)
	return Package{Name: p.Name, Version: GitRef(JoinGitRef(url, ChooseRef(branch, hash)))}
}
