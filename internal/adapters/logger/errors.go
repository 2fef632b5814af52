package logger

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// messager is implemented by zerr errors: it reports the message without the cause chain.
type messager interface {
	Message() string
}

// metadataCarrier is implemented by zerr errors carrying key/value context.
type metadataCarrier interface {
	Metadata() map[string]any
}

// ErrorEntry is one link of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the chain while errors report their own message.
// A plain error ends the walk with its full text. Links with an empty message
// (metadata-only wrappers) fold their metadata into the previous entry.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry

	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}

		var meta map[string]any
		if mc, ok := current.(metadataCarrier); ok {
			meta = mc.Metadata()
		}

		if m.Message() == "" && len(entries) > 0 {
			last := &entries[len(entries)-1]
			for k, v := range meta {
				if last.Metadata == nil {
					last.Metadata = make(map[string]any)
				}
				last.Metadata[k] = v
			}
		} else {
			entries = append(entries, ErrorEntry{Message: m.Message(), Metadata: meta})
		}

		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders the chain as the main error followed by its causes.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		head, indent := "Error: ", "       "
		if i > 0 {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			head, indent = "    → ", "      "
		}

		lines = append(lines, head+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}

		keys := make([]string, 0, len(entry.Metadata))
		for k := range entry.Metadata {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, entry.Metadata[k]))
		}
	}

	return strings.Join(lines, "\n")
}
