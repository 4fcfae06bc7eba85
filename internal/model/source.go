package model

// Path represents a file system path, relative to the analyzed repository
// root unless stated otherwise.
type Path string

// FileChange identifies one file that differs between the base and head
// revisions. Identity is the path; the struct exists so the report keeps a
// stable shape if change metadata grows later.
type FileChange struct {
	Path Path
}

// MarshalJSON encodes a FileChange as its bare path string, matching the
// report wire format consumed by CI pipelines.
func (c FileChange) MarshalJSON() ([]byte, error) {
	return marshalString(string(c.Path))
}

// UnmarshalJSON decodes a bare path string into a FileChange.
func (c *FileChange) UnmarshalJSON(data []byte) error {
	s, err := unmarshalString(data)
	if err != nil {
		return err
	}

	c.Path = Path(s)

	return nil
}

// MarshalYAML encodes a FileChange as its bare path string for report storage.
func (c FileChange) MarshalYAML() (interface{}, error) {
	return string(c.Path), nil
}

// UnmarshalYAML decodes a bare path string into a FileChange.
func (c *FileChange) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	c.Path = Path(s)

	return nil
}

// LineSet is a set of 1-based line numbers flagged as added or modified in a
// diff. Deleted lines are not representable; they have no line number at the
// head revision.
type LineSet map[int]struct{}

// NewLineSet builds a LineSet from the given line numbers.
func NewLineSet(lines ...int) LineSet {
	s := make(LineSet, len(lines))
	for _, line := range lines {
		s[line] = struct{}{}
	}

	return s
}

// Add inserts a single line number.
func (s LineSet) Add(line int) {
	s[line] = struct{}{}
}

// AddRange inserts count consecutive line numbers starting at start.
func (s LineSet) AddRange(start, count int) {
	for i := range count {
		s[start+i] = struct{}{}
	}
}

// Contains reports whether line is in the set.
func (s LineSet) Contains(line int) bool {
	_, ok := s[line]
	return ok
}

// UnitSpan records the line extent of one top-level callable in a source
// file. StartLine <= EndLine always holds; both bounds are inclusive.
type UnitSpan struct {
	Name      string
	StartLine int
	EndLine   int
}

// Contains reports whether the 1-based line falls inside the closed interval
// [StartLine, EndLine].
func (u UnitSpan) Contains(line int) bool {
	return line >= u.StartLine && line <= u.EndLine
}

// ImpactedUnits maps a changed file to the sorted names of callables whose
// spans intersect that file's changed lines. A path absent from the map means
// the file changed but no impacted callable was identified, which is distinct
// from the file not having changed at all.
type ImpactedUnits map[Path][]string
