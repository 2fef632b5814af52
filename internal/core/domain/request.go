package domain

// Request selects which part of the switch is locked.
type Request struct {
	// Package scopes the lock to the transitive dependencies of this package.
	// An empty Package locks everything installed.
	Package string
}

// All requests every installed package.
func All() Request {
	return Request{}
}

// DependenciesOf requests the packages name depends on, directly or not.
func DependenciesOf(name string) Request {
	return Request{Package: name}
}

// IsAll reports whether the request covers the whole switch.
func (r Request) IsAll() bool {
	return r.Package == ""
}
