package config

// SetLookup replaces the environment lookup used for overrides.
func (l *Loader) SetLookup(lookup func(string) (string, bool)) {
	l.lookup = lookup
}
