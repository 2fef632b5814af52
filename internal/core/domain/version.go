package domain

import "strings"

// VersionKind tells a published version apart from a git source.
type VersionKind int

const (
	// KindFixed is a concrete published version such as "1.2.3".
	KindFixed VersionKind = iota
	// KindGitRef is a git source: a bare URL before resolution, "url#ref" after.
	KindGitRef
)

const (
	// GitScheme prefixes every git source understood by opam.
	GitScheme = "git+"

	httpsScheme = "https://"
	refSep      = "#"
)

// Version is the version of a package: either a fixed version string or a git reference.
// The zero value is an empty fixed version.
type Version struct {
	kind  VersionKind
	value string
}

// Fixed returns a published version.
func Fixed(v string) Version {
	return Version{kind: KindFixed, value: v}
}

// GitRef returns a git source reference.
func GitRef(ref string) Version {
	return Version{kind: KindGitRef, value: ref}
}

// ParseVersion classifies a raw version string.
// Plain https URLs are rewritten to their git+https form.
func ParseVersion(raw string) Version {
	switch {
	case strings.HasPrefix(raw, httpsScheme):
		return GitRef(GitScheme + raw)
	case strings.HasPrefix(raw, GitScheme):
		return GitRef(raw)
	default:
		return Fixed(raw)
	}
}

// Kind returns the variant of v.
func (v Version) Kind() VersionKind {
	return v.kind
}

// IsGitRef reports whether v is a git source.
func (v Version) IsGitRef() bool {
	return v.kind == KindGitRef
}

// String returns the raw stored string.
func (v Version) String() string {
	return v.value
}

// SplitGitRef splits "url#ref" on the last '#'. A URL without '#' has an empty ref.
func SplitGitRef(ref string) (url, branch string) {
	i := strings.LastIndex(ref, refSep)
	if i < 0 {
		return ref, ""
	}
	return ref[:i], ref[i+1:]
}

// JoinGitRef composes "url#ref".
func JoinGitRef(url, ref string) string {
	return url + refSep + ref
}

// ChooseRef picks the ref a pin is locked to.
// A branch that is already a prefix of the checked-out hash names an exact commit and is kept;
// anything else is a moving branch and is replaced by the hash.
// An empty branch always yields the hash, so a lock never ends in a bare "#".
func ChooseRef(branch, hash string) string {
	if branch != "" && strings.HasPrefix(hash, branch) {
		return branch
	}
	return hash
}
