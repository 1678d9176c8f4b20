package rust

import (
	"fmt"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

// Language returns the tree-sitter Rust grammar
func Language() *tree_sitter.Language {
	return tree_sitter.NewLanguage(unsafe.Pointer(tree_sitter_rust.Language()))
}

// ParseError describes the first syntax error found in a source file
type ParseError struct {
	Line    uint   // 1-based line of the offending node
	Column  uint   // 1-based column of the offending node
	Missing string // Kind of the token the parser expected, if it inserted one
	Snippet string // Source text covered by the error node
}

func (e *ParseError) Error() string {
	if e.Missing != "" {
		return fmt.Sprintf("syntax error at line %d, column %d: expected %q", e.Line, e.Column, e.Missing)
	}
	if e.Snippet != "" {
		return fmt.Sprintf("syntax error at line %d, column %d: unexpected %q", e.Line, e.Column, e.Snippet)
	}
	return fmt.Sprintf("syntax error at line %d, column %d", e.Line, e.Column)
}

// Parse parses Rust source code and returns a Tree-sitter tree.
// Trees containing error or missing nodes are closed and reported as a *ParseError.
func Parse(source []byte) (*tree_sitter.Tree, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	err := parser.SetLanguage(Language())
	if err != nil {
		return nil, fmt.Errorf("error setting language: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parser returned no tree")
	}

	root := tree.RootNode()
	if root.HasError() {
		perr := firstError(root, source)
		tree.Close()
		return nil, perr
	}

	return tree, nil
}

// firstError finds the earliest error or missing node under root
func firstError(root *tree_sitter.Node, source []byte) *ParseError {
	cursor := root.Walk()
	defer cursor.Close()

	for {
		node := cursor.Node()
		if node.IsError() || node.IsMissing() {
			return newParseError(node, source)
		}

		// Only descend into subtrees that actually contain the error
		if node.HasError() && cursor.GotoFirstChild() {
			continue
		}
		for !cursor.GotoNextSibling() {
			if !cursor.GotoParent() {
				// HasError was set but no node was flagged; report the root
				return newParseError(root, source)
			}
		}
	}
}

const maxSnippet = 40

func newParseError(node *tree_sitter.Node, source []byte) *ParseError {
	pos := node.StartPosition()
	perr := &ParseError{
		Line:   pos.Row + 1, // +1 because editors use 1-based line numbers
		Column: pos.Column + 1,
	}
	if node.IsMissing() {
		perr.Missing = node.Kind()
		return perr
	}
	snippet := node.Utf8Text(source)
	if len(snippet) > maxSnippet {
		snippet = snippet[:maxSnippet] + "..."
	}
	perr.Snippet = snippet
	return perr
}
