package domain

import (
	"context"
	"fmt"
	"path/filepath"

	m "github.com/Nemesis2003/smartci-platform/internal/model"
)

// fakeDiffProvider serves canned diff data so analyzer behavior can be
// exercised without a real repository.
type fakeDiffProvider struct {
	files    []m.FileChange
	filesErr error
	lines    map[m.Path]m.LineSet
	linesErr error
}

func (f *fakeDiffProvider) ChangedFiles(_ context.Context, _, _ string) ([]m.FileChange, error) {
	return f.files, f.filesErr
}

func (f *fakeDiffProvider) ChangedLines(_ context.Context, path m.Path, _, _ string) (m.LineSet, error) {
	if f.linesErr != nil {
		return nil, f.linesErr
	}

	return f.lines[path], nil
}

// fakeParser maps file content to pre-computed spans.
type fakeParser struct {
	spans map[string][]m.UnitSpan
	err   error
	panic bool
}

func (f *fakeParser) Spans(_ context.Context, content []byte) ([]m.UnitSpan, error) {
	if f.panic {
		panic("parser blew up")
	}

	if f.err != nil {
		return nil, f.err
	}

	return f.spans[string(content)], nil
}

// fakeFS is an in-memory SourceFSAdapter.
type fakeFS struct {
	files map[string]string
}

func (f *fakeFS) ReadFile(path m.Path) ([]byte, error) {
	content, ok := f.files[string(path)]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", path)
	}

	return []byte(content), nil
}

func (f *fakeFS) FileExists(path m.Path) bool {
	_, ok := f.files[string(path)]
	return ok
}

func (f *fakeFS) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}

// fakeRunner records the invocation it receives.
type fakeRunner struct {
	calls   int
	dir     m.Path
	command string
	files   []string
	filter  string
	code    int
	err     error
}

func (f *fakeRunner) Run(_ context.Context, dir m.Path, command string, files []string, filter string) (int, error) {
	f.calls++
	f.dir = dir
	f.command = command
	f.files = files
	f.filter = filter

	return f.code, f.err
}
