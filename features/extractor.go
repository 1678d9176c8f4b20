package features

import (
	"fmt"
	"os"

	"github.com/jeffrydegrande/resemble/rust"
	"github.com/jeffrydegrande/resemble/types"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// position is the syntactic role a parent assigns to one of its children
type position uint8

const (
	posNone    position = iota // structural context, only occurrence labels count
	posStmt                    // direct child of a block
	posExpr                    // expression
	posType                    // type
	posPat                     // pattern
	posPath                    // name or path that is not a type or expression
	posCallee                  // field access naming a method in a call
	posBinding                 // identifier bound by a mut/ref/@ pattern
	posOpaque                  // macro tokens and attribute arguments
)

// walker accumulates feature counts over a single traversal
type walker struct {
	source []byte
	counts types.FeatureMap
}

// Extract walks every node of tree and returns its feature map.
// The map is owned by the caller and never touched again by this package.
func Extract(tree *tree_sitter.Tree, source []byte) types.FeatureMap {
	w := &walker{
		source: source,
		counts: make(types.FeatureMap),
	}

	cursor := tree.RootNode().Walk()
	defer cursor.Close()
	w.visit(cursor, posNone)

	return w.counts
}

// CountSource parses Rust source and extracts its feature map
func CountSource(source []byte) (types.FeatureMap, error) {
	tree, err := rust.Parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return Extract(tree, source), nil
}

// ParseAndCount reads and parses a Rust source file and extracts its feature map
func ParseAndCount(path string) (types.FeatureMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", path, err)
	}

	counts, err := CountSource(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse '%s': %w", path, err)
	}
	return counts, nil
}

func (w *walker) bump(label types.Label) {
	w.counts[label]++
}

// visit counts the cursor's node, then its children in source order.
// The cursor is back on the same node when visit returns.
func (w *walker) visit(cursor *tree_sitter.TreeCursor, pos position) {
	node := cursor.Node()
	inherited := w.classify(node, pos)

	if !cursor.GotoFirstChild() {
		return
	}
	for {
		child := cursor.Node()
		w.visit(cursor, childPosition(node, inherited, cursor.FieldName(), child))
		if !cursor.GotoNextSibling() {
			break
		}
	}
	cursor.GotoParent()
}

// classify counts node in position pos and returns the position its children
// fall back to when no rule in childPosition applies.
func (w *walker) classify(node *tree_sitter.Node, pos position) position {
	if pos == posOpaque {
		return posOpaque
	}

	switch node.Kind() {
	case "attribute_item", "inner_attribute_item":
		w.bump(Attribute)
		return posOpaque
	case "line_comment", "block_comment":
		if isDocComment(node.Utf8Text(w.source)) {
			w.bump(Attribute)
		}
		return posOpaque
	case "macro_definition":
		w.bump(Macro)
		if pos == posStmt {
			w.bump(StmtItem)
		}
		return posOpaque
	case "block":
		w.bump(Block)
	case "macro_invocation":
		w.bump(Macro)
	case "field_pattern":
		// Shorthand `S { x }` binds x
		if node.ChildByFieldName("pattern") == nil {
			w.bump(PatIdent)
		}
		return posNone
	case "self_parameter":
		// The receiver has type Self, or &Self when borrowed
		if hasChildKind(node, "&") {
			w.bump(TypeReference)
		}
		w.bump(TypePath)
		return posNone
	}

	switch pos {
	case posStmt:
		return w.statement(node)
	case posExpr:
		w.bump(exprLabel(node))
		return posExpr
	case posType:
		w.bump(typeLabel(node, w.source))
		return posType
	case posPat:
		w.bump(patLabel(node))
		return posPat
	}
	return pos
}

// statement counts a direct child of a block. Anything that is not a binding,
// an item or a macro statement is an expression statement.
func (w *walker) statement(node *tree_sitter.Node) position {
	kind := node.Kind()
	switch {
	case kind == "let_declaration":
		w.bump(StmtLocal)
		// `let x: T` is a typed pattern wrapping the binding
		if node.ChildByFieldName("type") != nil {
			w.bump(PatOther)
		}
		return posNone
	case kind == "expression_statement":
		if isMacroStatement(node) {
			w.bump(StmtMacro)
		} else {
			w.bump(StmtExpr)
		}
		return posNone
	case kind == "macro_invocation":
		if isBraceDelimited(node) || !isTrailing(node) {
			w.bump(StmtMacro)
			return posNone
		}
		w.bump(StmtExpr)
		w.bump(ExprMacro)
		return posExpr
	case itemKinds[kind]:
		w.bump(StmtItem)
		return posNone
	case !node.IsNamed():
		return posNone
	}

	w.bump(StmtExpr)
	w.bump(exprLabel(node))
	return posExpr
}

func exprLabel(node *tree_sitter.Node) types.Label {
	kind := node.Kind()
	if literalKinds[kind] || kind == "negative_literal" {
		return ExprLit
	}

	switch kind {
	case "if_expression":
		return ExprIf
	case "for_expression":
		return ExprForLoop
	case "while_expression":
		return ExprWhile
	case "loop_expression":
		return ExprLoop
	case "match_expression":
		return ExprMatch
	case "call_expression":
		if isMethodCallee(node.ChildByFieldName("function")) {
			return ExprMethodCall
		}
		return ExprCall
	case "struct_expression":
		return ExprStruct
	case "field_expression":
		return ExprField
	case "identifier", "scoped_identifier", "generic_function", "self", "super", "crate":
		return ExprPath
	case "reference_expression":
		return ExprReference
	case "return_expression":
		return ExprReturn
	case "macro_invocation":
		return ExprMacro
	case "array_expression":
		// [x; n] repeats a value rather than listing elements
		if node.ChildByFieldName("length") != nil {
			return ExprOther
		}
		return ExprArray
	case "tuple_expression", "unit_expression":
		return ExprTuple
	case "try_expression":
		return ExprTry
	case "await_expression":
		return ExprAwait
	case "closure_expression":
		return ExprClosure
	case "assignment_expression":
		return ExprAssign
	}
	return ExprOther
}

func typeLabel(node *tree_sitter.Node, source []byte) types.Label {
	switch node.Kind() {
	case "_":
		return TypeInfer
	case "type_identifier":
		if node.Utf8Text(source) == "_" {
			return TypeInfer
		}
		return TypePath
	case "scoped_type_identifier", "generic_type", "primitive_type":
		return TypePath
	case "function_type":
		// Fn(A) -> B is trait sugar for a path, fn(A) -> B a function pointer
		if node.ChildByFieldName("trait") != nil {
			return TypePath
		}
		return TypeBareFn
	case "reference_type":
		return TypeReference
	case "array_type":
		if node.ChildByFieldName("length") == nil {
			return TypeSlice
		}
		return TypeArray
	case "tuple_type", "unit_type":
		return TypeTuple
	case "pointer_type":
		return TypePtr
	}
	return TypeOther
}

func patLabel(node *tree_sitter.Node) types.Label {
	kind := node.Kind()
	if literalKinds[kind] {
		return PatLit
	}

	switch kind {
	case "identifier", "mut_pattern", "ref_pattern", "captured_pattern":
		return PatIdent
	case "_":
		return PatWild
	case "struct_pattern":
		return PatStruct
	case "tuple_pattern":
		return PatTuple
	case "tuple_struct_pattern":
		return PatTupleStruct
	case "slice_pattern":
		return PatSlice
	case "scoped_identifier", "generic_pattern":
		return PatPath
	case "negative_literal":
		return PatLit
	}
	return PatOther
}

func exprSlot(child *tree_sitter.Node) position {
	if isAux(child) {
		return posNone
	}
	return posExpr
}

func typeSlot(child *tree_sitter.Node) position {
	if isWildcard(child) {
		return posType
	}
	if isAux(child) {
		return posNone
	}
	return posType
}

func patSlot(child *tree_sitter.Node) position {
	if isWildcard(child) {
		return posPat
	}
	if isAux(child) {
		return posNone
	}
	return posPat
}

// childPosition decides the role of child within parent. inherited is the
// position the parent passed down after being classified.
func childPosition(parent *tree_sitter.Node, inherited position, field string, child *tree_sitter.Node) position {
	if inherited == posOpaque {
		return posOpaque
	}

	switch parent.Kind() {
	case "source_file", "declaration_list":
		return posNone
	case "block":
		if isAux(child) {
			return posNone
		}
		return posStmt
	case "expression_statement":
		if isMacroStatement(parent) {
			return posNone
		}
		return exprSlot(child)
	case "macro_invocation":
		if field == "macro" {
			return posPath
		}
		return posOpaque
	case "token_tree":
		return posOpaque
	case "string_literal", "raw_string_literal", "char_literal", "boolean_literal",
		"integer_literal", "float_literal", "negative_literal":
		return posNone

	// Expressions
	case "call_expression":
		if field == "function" {
			if isMethodCallee(child) {
				return posCallee
			}
			return posExpr
		}
		return posNone
	case "arguments", "array_expression", "shorthand_field_initializer", "base_field_initializer":
		return exprSlot(child)
	case "field_expression":
		if field == "value" {
			return posExpr
		}
		return posNone
	case "generic_function":
		if field == "function" {
			if inherited == posCallee {
				return posCallee
			}
			return posPath
		}
		return posNone
	case "struct_expression":
		if field == "name" {
			return posPath
		}
		return posNone
	case "else_clause":
		// Both `else if` and `else { }` are expressions
		return exprSlot(child)
	case "match_arm":
		if field == "value" {
			return posExpr
		}
		return posNone
	case "match_pattern":
		if field == "condition" {
			return posExpr
		}
		return patSlot(child)
	case "let_declaration":
		// The diverging block of let-else is an expression
		if field == "alternative" {
			return posExpr
		}
	case "closure_expression":
		if field == "body" {
			return posExpr
		}
	case "closure_parameters":
		return patSlot(child)
	case "unsafe_block", "async_block", "gen_block", "try_block", "const_block":
		return posNone

	// Types and paths
	case "scoped_identifier", "scoped_type_identifier":
		if field == "path" {
			return posPath
		}
		return posNone
	case "generic_type", "higher_ranked_trait_bound":
		if field == "type" {
			return posPath
		}
		return posNone
	case "type_arguments":
		switch {
		case typeKinds[child.Kind()] || isWildcard(child):
			return posType
		case isAux(child), child.Kind() == "type_binding", child.Kind() == "trait_bounds":
			return posNone
		}
		return posExpr
	case "tuple_type":
		return typeSlot(child)
	case "parameter":
		// `self: Box<Self>` is a receiver; only its type counts
		if field == "pattern" && child.Kind() == "self" {
			return posNone
		}
	case "parameters":
		switch child.Kind() {
		case "parameter", "self_parameter", "variadic_parameter":
			return posNone
		}
		return typeSlot(child)
	case "bracketed_type":
		if child.Kind() == "qualified_type" {
			return posNone
		}
		return typeSlot(child)
	case "qualified_type":
		if field == "alias" {
			return posPath
		}
	case "where_predicate":
		if field == "left" {
			return posType
		}
		return posNone
	case "trait_bounds", "bounded_type", "removed_trait_bound",
		"use_declaration", "extern_crate_declaration", "visibility_modifier":
		return posPath

	// Patterns
	case "tuple_pattern", "slice_pattern", "or_pattern", "reference_pattern":
		return patSlot(child)
	case "tuple_struct_pattern":
		if field == "type" {
			return posPath
		}
		return patSlot(child)
	case "struct_pattern":
		if field == "type" {
			return posPath
		}
		return posNone
	case "mut_pattern", "ref_pattern", "captured_pattern":
		switch child.Kind() {
		case "identifier", "mut_pattern":
			return posBinding
		}
		return patSlot(child)
	case "range_pattern":
		// Range bounds are expressions
		return exprSlot(child)
	}

	if pos, ok := fieldPositions[field]; ok {
		return pos
	}

	switch inherited {
	case posExpr:
		return exprSlot(child)
	case posPath:
		return posPath
	}
	return posNone
}
