package adapter

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	m "github.com/Nemesis2003/smartci-platform/internal/model"
)

// Name prefixes excluded from impact targets: private helpers by convention,
// and test functions which are selected directly rather than through spans.
const (
	privatePrefix = "_"
	testPrefix    = "test_"
)

// PythonFileAdapter encapsulates Python-specific parsing so the domain layer
// can focus on impact rules while delegating syntax details to an
// infrastructure component.
type PythonFileAdapter interface {
	// Spans maps the file's top-level callables to their 1-based line spans.
	// Unparsable content yields an empty span set; tree-sitter is
	// error-tolerant, so files mid-edit still report whatever parsed.
	Spans(ctx context.Context, content []byte) ([]m.UnitSpan, error)
}

// TreeSitterPythonAdapter provides a concrete PythonFileAdapter backed by
// tree-sitter. Safe for concurrent use: each Spans call creates its own
// parser instance.
type TreeSitterPythonAdapter struct{}

// NewTreeSitterPythonAdapter constructs a TreeSitterPythonAdapter.
func NewTreeSitterPythonAdapter() *TreeSitterPythonAdapter {
	return &TreeSitterPythonAdapter{}
}

// Spans parses content and collects the top-level function definitions,
// including decorated and async ones. Private and test-prefixed names are
// skipped. A later duplicate of a name overwrites the earlier span, matching
// how Python rebinds the name at runtime.
func (a *TreeSitterPythonAdapter) Spans(ctx context.Context, content []byte) ([]m.UnitSpan, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return []m.UnitSpan{}, nil
	}

	spans := make([]m.UnitSpan, 0)
	index := make(map[string]int)

	record := func(fn *sitter.Node) {
		span, ok := functionSpan(fn, content)
		if !ok {
			return
		}

		if i, seen := index[span.Name]; seen {
			spans[i] = span
			return
		}

		index[span.Name] = len(spans)
		spans = append(spans, span)
	}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)

		switch child.Type() {
		case "function_definition":
			record(child)
		case "decorated_definition":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				if inner := child.NamedChild(j); inner.Type() == "function_definition" {
					record(inner)
				}
			}
		}
	}

	return spans, nil
}

// functionSpan extracts the name and line extent of one function_definition
// node. The span covers the def line through the end of the body; decorators
// are not part of the selectable unit.
func functionSpan(fn *sitter.Node, content []byte) (m.UnitSpan, bool) {
	nameNode := fn.ChildByFieldName("name")
	if nameNode == nil {
		return m.UnitSpan{}, false
	}

	name := string(content[nameNode.StartByte():nameNode.EndByte()])
	if name == "" || strings.HasPrefix(name, privatePrefix) || strings.HasPrefix(name, testPrefix) {
		return m.UnitSpan{}, false
	}

	return m.UnitSpan{
		Name:      name,
		StartLine: int(fn.StartPoint().Row + 1),
		EndLine:   int(fn.EndPoint().Row + 1),
	}, true
}
