package features

import "github.com/jeffrydegrande/resemble/types"

// Statement labels. The statement category is closed: every statement is one
// of these four.
const (
	StmtLocal types.Label = "Stmt::Local"
	StmtItem  types.Label = "Stmt::Item"
	StmtExpr  types.Label = "Stmt::Expr"
	StmtMacro types.Label = "Stmt::Macro"
)

// Expression labels
const (
	ExprIf         types.Label = "Expr::If"
	ExprForLoop    types.Label = "Expr::ForLoop"
	ExprWhile      types.Label = "Expr::While"
	ExprLoop       types.Label = "Expr::Loop"
	ExprMatch      types.Label = "Expr::Match"
	ExprCall       types.Label = "Expr::Call"
	ExprMethodCall types.Label = "Expr::MethodCall"
	ExprStruct     types.Label = "Expr::Struct"
	ExprField      types.Label = "Expr::Field"
	ExprPath       types.Label = "Expr::Path"
	ExprReference  types.Label = "Expr::Reference"
	ExprReturn     types.Label = "Expr::Return"
	ExprMacro      types.Label = "Expr::Macro"
	ExprLit        types.Label = "Expr::Lit"
	ExprArray      types.Label = "Expr::Array"
	ExprTuple      types.Label = "Expr::Tuple"
	ExprTry        types.Label = "Expr::Try"
	ExprAwait      types.Label = "Expr::Await"
	ExprClosure    types.Label = "Expr::Closure"
	ExprAssign     types.Label = "Expr::Assign"
	ExprOther      types.Label = "Expr::Other"
)

// Type labels
const (
	TypePath      types.Label = "Type::Path"
	TypeReference types.Label = "Type::Reference"
	TypeArray     types.Label = "Type::Array"
	TypeSlice     types.Label = "Type::Slice"
	TypeTuple     types.Label = "Type::Tuple"
	TypeBareFn    types.Label = "Type::BareFn"
	TypePtr       types.Label = "Type::Ptr"
	TypeInfer     types.Label = "Type::Infer"
	TypeOther     types.Label = "Type::Other"
)

// Pattern labels
const (
	PatIdent       types.Label = "Pat::Ident"
	PatWild        types.Label = "Pat::Wild"
	PatStruct      types.Label = "Pat::Struct"
	PatTuple       types.Label = "Pat::Tuple"
	PatTupleStruct types.Label = "Pat::TupleStruct"
	PatSlice       types.Label = "Pat::Slice"
	PatPath        types.Label = "Pat::Path"
	PatLit         types.Label = "Pat::Lit"
	PatOther       types.Label = "Pat::Other"
)

// Occurrence labels
const (
	Macro     types.Label = "Macro"
	Attribute types.Label = "Attribute"
	Block     types.Label = "Block"
)

// Policy describes how a category maps grammar productions onto labels
type Policy int

const (
	// Exhaustive categories name every variant and have no Other bucket.
	Exhaustive Policy = iota
	// Partial categories name a fixed set of variants; the rest count as Other.
	Partial
	// Occurrence categories have a single label regardless of sub-kind.
	Occurrence
)

func (p Policy) String() string {
	switch p {
	case Exhaustive:
		return "exhaustive"
	case Partial:
		return "partial"
	case Occurrence:
		return "occurrence"
	default:
		return "unknown"
	}
}

// Group is one category of the taxonomy with its policy and labels
type Group struct {
	Category types.Category
	Policy   Policy
	Labels   []types.Label
}

// Taxonomy returns every category and its labels in a stable order.
// Partial categories list their Other bucket last.
func Taxonomy() []Group {
	return []Group{
		{types.CategoryStmt, Exhaustive, []types.Label{StmtLocal, StmtItem, StmtExpr, StmtMacro}},
		{types.CategoryExpr, Partial, []types.Label{
			ExprIf, ExprForLoop, ExprWhile, ExprLoop, ExprMatch, ExprCall, ExprMethodCall,
			ExprStruct, ExprField, ExprPath, ExprReference, ExprReturn, ExprMacro, ExprLit,
			ExprArray, ExprTuple, ExprTry, ExprAwait, ExprClosure, ExprAssign, ExprOther,
		}},
		{types.CategoryType, Partial, []types.Label{
			TypePath, TypeReference, TypeArray, TypeSlice, TypeTuple, TypeBareFn, TypePtr,
			TypeInfer, TypeOther,
		}},
		{types.CategoryPat, Partial, []types.Label{
			PatIdent, PatWild, PatStruct, PatTuple, PatTupleStruct, PatSlice, PatPath,
			PatLit, PatOther,
		}},
		{types.CategoryMacro, Occurrence, []types.Label{Macro}},
		{types.CategoryAttribute, Occurrence, []types.Label{Attribute}},
		{types.CategoryBlock, Occurrence, []types.Label{Block}},
	}
}

// AllLabels returns every label of the taxonomy in Taxonomy order
func AllLabels() []types.Label {
	var labels []types.Label
	for _, g := range Taxonomy() {
		labels = append(labels, g.Labels...)
	}
	return labels
}
