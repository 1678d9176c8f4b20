package features

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Node kinds of the tree-sitter Rust grammar grouped by how the extractor treats them.

var literalKinds = map[string]bool{
	"string_literal":     true,
	"raw_string_literal": true,
	"char_literal":       true,
	"boolean_literal":    true,
	"integer_literal":    true,
	"float_literal":      true,
}

// itemKinds are declarations that count as Stmt::Item inside a block
var itemKinds = map[string]bool{
	"function_item":            true,
	"function_signature_item":  true,
	"struct_item":              true,
	"union_item":               true,
	"enum_item":                true,
	"type_item":                true,
	"trait_item":               true,
	"impl_item":                true,
	"mod_item":                 true,
	"foreign_mod_item":         true,
	"const_item":               true,
	"static_item":              true,
	"use_declaration":          true,
	"extern_crate_declaration": true,
	"macro_definition":         true,
}

var typeKinds = map[string]bool{
	"type_identifier":        true,
	"scoped_type_identifier": true,
	"generic_type":           true,
	"primitive_type":         true,
	"reference_type":         true,
	"pointer_type":           true,
	"array_type":             true,
	"tuple_type":             true,
	"unit_type":              true,
	"function_type":          true,
	"never_type":             true,
	"dynamic_type":           true,
	"abstract_type":          true,
	"bounded_type":           true,
	"removed_trait_bound":    true,
}

// auxKinds are named nodes that are never expressions, types or patterns
// themselves, even when they sit among them.
var auxKinds = map[string]bool{
	"label":                      true,
	"lifetime":                   true,
	"mutable_specifier":          true,
	"field_identifier":           true,
	"shorthand_field_identifier": true,
	"attribute_item":             true,
	"inner_attribute_item":       true,
	"line_comment":               true,
	"block_comment":              true,
	"type_arguments":             true,
	"type_parameters":            true,
	"token_tree":                 true,
	"arguments":                  true,
	"parameters":                 true,
	"closure_parameters":         true,
	"match_block":                true,
	"else_clause":                true,
	"field_initializer_list":     true,
	"where_clause":               true,
	"visibility_modifier":        true,
	"function_modifiers":         true,
	"empty_statement":            true,
	"string_content":             true,
	"escape_sequence":            true,
}

// Fields whose child has a fixed role wherever they appear. Parent specific
// rules in childPosition take precedence.
var fieldPositions = map[string]position{
	"type":         posType,
	"return_type":  posType,
	"default_type": posType,
	"element":      posType,
	"value":        posExpr,
	"condition":    posExpr,
	"length":       posExpr,
	"pattern":      posPat,
	"trait":        posPath,
	"path":         posPath,
	"name":         posNone,
	"body":         posNone,
	"consequence":  posNone,
	"alternative":  posNone,
}

func isAux(n *tree_sitter.Node) bool {
	return !n.IsNamed() || auxKinds[n.Kind()]
}

// isWildcard reports the `_` token, which is anonymous in the grammar
func isWildcard(n *tree_sitter.Node) bool {
	return n.Kind() == "_"
}

// isMethodCallee reports whether the callee of a call_expression names a method
func isMethodCallee(callee *tree_sitter.Node) bool {
	if callee == nil {
		return false
	}
	switch callee.Kind() {
	case "field_expression":
		return true
	case "generic_function":
		fn := callee.ChildByFieldName("function")
		return fn != nil && fn.Kind() == "field_expression"
	}
	return false
}

// isMacroStatement reports an expression statement made of a single macro
// invocation terminated by a semicolon.
func isMacroStatement(stmt *tree_sitter.Node) bool {
	var expr *tree_sitter.Node
	count := stmt.ChildCount()
	for i := uint(0); i < count; i++ {
		child := stmt.Child(i)
		if isAux(child) {
			continue
		}
		if expr != nil {
			return false
		}
		expr = child
	}
	if expr == nil || expr.Kind() != "macro_invocation" {
		return false
	}
	last := stmt.Child(count - 1)
	return last != nil && last.Kind() == ";"
}

// hasChildKind reports whether n has a direct child of the given kind
func hasChildKind(n *tree_sitter.Node, kind string) bool {
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		if child := n.Child(i); child != nil && child.Kind() == kind {
			return true
		}
	}
	return false
}

// isBraceDelimited reports a macro invocation written as `name! { ... }`
func isBraceDelimited(mac *tree_sitter.Node) bool {
	count := mac.ChildCount()
	for i := uint(0); i < count; i++ {
		child := mac.Child(i)
		if child.Kind() != "token_tree" {
			continue
		}
		open := child.Child(0)
		return open != nil && open.Kind() == "{"
	}
	return false
}

// isTrailing reports whether n is the last statement of its block, ignoring
// comments and attributes.
func isTrailing(n *tree_sitter.Node) bool {
	for s := n.NextSibling(); s != nil; s = s.NextSibling() {
		switch {
		case s.Kind() == ";" || s.Kind() == "empty_statement":
			return false
		case s.Kind() == "}":
			return true
		case !isAux(s):
			return false
		}
	}
	return true
}

// isDocComment reports comments that Rust desugars into #[doc] attributes
func isDocComment(text string) bool {
	switch {
	case strings.HasPrefix(text, "////"):
		return false
	case strings.HasPrefix(text, "///"), strings.HasPrefix(text, "//!"):
		return true
	case strings.HasPrefix(text, "/**/"), strings.HasPrefix(text, "/***"):
		return false
	case strings.HasPrefix(text, "/**"), strings.HasPrefix(text, "/*!"):
		return true
	}
	return false
}
