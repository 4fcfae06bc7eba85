package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// SelectionKind tags the active variant of a Selection.
type SelectionKind int

const (
	// RunNone means no test needs to run for the analyzed change.
	RunNone SelectionKind = iota
	// RunAll means the whole suite must run; it short-circuits everything else.
	RunAll
	// Subset means the Entries list describes the tests to run.
	Subset
)

// EntryKind tags one entry of a Subset selection.
type EntryKind int

const (
	// ExplicitTest names a test file to run verbatim.
	ExplicitTest EntryKind = iota
	// NamePattern names a substring pattern matched against test names,
	// combined with its siblings by logical OR.
	NamePattern
)

// SelectionEntry is one element of a Subset selection.
type SelectionEntry struct {
	Kind  EntryKind
	Value string
}

// Selection is the outcome of the selection policy. Exactly one variant is
// active per analysis run: RunAll and RunNone carry no entries, Subset carries
// at least one.
type Selection struct {
	Kind    SelectionKind
	Entries []SelectionEntry
}

// SelectAll returns the "run everything" sentinel selection.
func SelectAll() Selection {
	return Selection{Kind: RunAll}
}

// SelectNone returns the empty selection.
func SelectNone() Selection {
	return Selection{Kind: RunNone}
}

// SelectSubset builds a Subset selection from entries, deduplicated and
// sorted (explicit tests before patterns, each alphabetically) so repeated
// analyses of the same change produce byte-identical reports. An empty entry
// list collapses to RunNone.
func SelectSubset(entries []SelectionEntry) Selection {
	if len(entries) == 0 {
		return SelectNone()
	}

	seen := make(map[SelectionEntry]struct{}, len(entries))
	deduped := make([]SelectionEntry, 0, len(entries))

	for _, entry := range entries {
		if _, ok := seen[entry]; ok {
			continue
		}

		seen[entry] = struct{}{}
		deduped = append(deduped, entry)
	}

	sort.Slice(deduped, func(i, j int) bool {
		if deduped[i].Kind != deduped[j].Kind {
			return deduped[i].Kind < deduped[j].Kind
		}

		return deduped[i].Value < deduped[j].Value
	})

	return Selection{Kind: Subset, Entries: deduped}
}

// IsRunAll reports whether the selection is the run-everything sentinel.
func (s Selection) IsRunAll() bool {
	return s.Kind == RunAll
}

// IsRunNone reports whether the selection is empty.
func (s Selection) IsRunNone() bool {
	return s.Kind == RunNone
}

// Files returns the explicit test file entries in order.
func (s Selection) Files() []string {
	var files []string

	for _, entry := range s.Entries {
		if entry.Kind == ExplicitTest {
			files = append(files, entry.Value)
		}
	}

	return files
}

// Patterns returns the name-pattern entries in order.
func (s Selection) Patterns() []string {
	var patterns []string

	for _, entry := range s.Entries {
		if entry.Kind == NamePattern {
			patterns = append(patterns, entry.Value)
		}
	}

	return patterns
}

// Wire format kept compatible with the selected_tests list emitted by the
// original selector: explicit files verbatim, patterns behind a prefix, and
// a single sentinel string for run-everything.
const (
	runAllSentinel = "ALL"
	patternPrefix  = "PATTERN:"
)

// Wire returns the selection as the legacy selected_tests string list.
func (s Selection) Wire() []string {
	switch s.Kind {
	case RunAll:
		return []string{runAllSentinel}
	case RunNone:
		return []string{}
	}

	wire := make([]string, 0, len(s.Entries))

	for _, entry := range s.Entries {
		if entry.Kind == NamePattern {
			wire = append(wire, patternPrefix+entry.Value)
			continue
		}

		wire = append(wire, entry.Value)
	}

	return wire
}

// selectionFromWire rebuilds a Selection from its wire form.
func selectionFromWire(wire []string) (Selection, error) {
	if len(wire) == 1 && wire[0] == runAllSentinel {
		return SelectAll(), nil
	}

	entries := make([]SelectionEntry, 0, len(wire))

	for _, item := range wire {
		if item == "" {
			return Selection{}, fmt.Errorf("empty selection entry")
		}

		if rest, ok := strings.CutPrefix(item, patternPrefix); ok {
			entries = append(entries, SelectionEntry{Kind: NamePattern, Value: rest})
			continue
		}

		entries = append(entries, SelectionEntry{Kind: ExplicitTest, Value: item})
	}

	return SelectSubset(entries), nil
}

// MarshalJSON encodes the selection in its wire form.
func (s Selection) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Wire())
}

// UnmarshalJSON decodes the wire form.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var wire []string
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	sel, err := selectionFromWire(wire)
	if err != nil {
		return err
	}

	*s = sel

	return nil
}

// MarshalYAML encodes the selection in its wire form.
func (s Selection) MarshalYAML() (interface{}, error) {
	return s.Wire(), nil
}

// UnmarshalYAML decodes the wire form.
func (s *Selection) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var wire []string
	if err := unmarshal(&wire); err != nil {
		return err
	}

	sel, err := selectionFromWire(wire)
	if err != nil {
		return err
	}

	*s = sel

	return nil
}

func marshalString(s string) ([]byte, error) {
	return json.Marshal(s)
}

func unmarshalString(data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}

	return s, nil
}
