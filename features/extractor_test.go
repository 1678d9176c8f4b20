package features_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeffrydegrande/resemble/embedding"
	"github.com/jeffrydegrande/resemble/features"
	"github.com/jeffrydegrande/resemble/rust"
	"github.com/jeffrydegrande/resemble/types"
)

func mustCount(t *testing.T, source string) types.FeatureMap {
	t.Helper()
	counts, err := features.CountSource([]byte(source))
	if err != nil {
		t.Fatalf("CountSource() error = %v", err)
	}
	return counts
}

func TestCountSourceExact(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   types.FeatureMap
	}{
		{
			name:   "Empty file",
			source: "",
			want:   types.FeatureMap{},
		},
		{
			name:   "Let binding",
			source: `fn f() { let x = 1; }`,
			want: types.FeatureMap{
				features.Block:     1,
				features.StmtLocal: 1,
				features.PatIdent:  1,
				features.ExprLit:   1,
			},
		},
		{
			name:   "Macro statement arguments are opaque",
			source: `fn f() { println!("{}", x); }`,
			want: types.FeatureMap{
				features.Block:     1,
				features.StmtMacro: 1,
				features.Macro:     1,
			},
		},
		{
			name:   "Method call is not a field access",
			source: `fn f() { v.push(1); }`,
			want: types.FeatureMap{
				features.Block:          1,
				features.StmtExpr:       1,
				features.ExprMethodCall: 1,
				features.ExprPath:       1,
				features.ExprLit:        1,
			},
		},
		{
			name:   "Function call",
			source: `fn f() { g(a, b); }`,
			want: types.FeatureMap{
				features.Block:    1,
				features.StmtExpr: 1,
				features.ExprCall: 1,
				features.ExprPath: 3,
			},
		},
		{
			name:   "Attributes and doc comments",
			source: "/// Documented\n#[derive(Debug)]\nstruct S;\n// plain comment\n",
			want: types.FeatureMap{
				features.Attribute: 2,
			},
		},
		{
			name:   "Items inside a block",
			source: `fn f() { fn g() {} struct T; use std::io; }`,
			want: types.FeatureMap{
				features.Block:    2,
				features.StmtItem: 3,
			},
		},
		{
			name:   "Block used as a value",
			source: `fn f() { let x = { 1 }; }`,
			want: types.FeatureMap{
				features.Block:     2,
				features.StmtLocal: 1,
				features.PatIdent:  1,
				features.ExprOther: 1,
				features.StmtExpr:  1,
				features.ExprLit:   1,
			},
		},
		{
			name:   "Typed let wraps the binding",
			source: `fn f() { let x: i32 = 1; }`,
			want: types.FeatureMap{
				features.Block:     1,
				features.StmtLocal: 1,
				features.PatOther:  1,
				features.PatIdent:  1,
				features.TypePath:  1,
				features.ExprLit:   1,
			},
		},
		{
			name:   "Else block is an expression",
			source: `fn f() { if c { } else { } }`,
			want: types.FeatureMap{
				features.Block:     3,
				features.StmtExpr:  1,
				features.ExprIf:    1,
				features.ExprPath:  1,
				features.ExprOther: 1,
			},
		},
		{
			name:   "Receivers are typed Self",
			source: `impl S { fn m(&self) {} fn n(self) {} }`,
			want: types.FeatureMap{
				features.TypePath:      3,
				features.TypeReference: 1,
				features.Block:         2,
			},
		},
		{
			name:   "Range pattern bounds are literals",
			source: `fn f() { match v { 1..=5 => {} _ => {} } }`,
			want: types.FeatureMap{
				features.Block:     3,
				features.StmtExpr:  1,
				features.ExprMatch: 1,
				features.ExprPath:  1,
				features.PatOther:  1,
				features.PatWild:   1,
				features.ExprLit:   2,
				features.ExprOther: 2,
			},
		},
		{
			name:   "Unit type and unit value",
			source: `const N: () = ();`,
			want: types.FeatureMap{
				features.TypeTuple: 1,
				features.ExprTuple: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustCount(t, tt.source)
			if !got.Equal(tt.want) {
				t.Errorf("CountSource() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountSourceLabels(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   map[types.Label]float64 // Checked labels; others are ignored
	}{
		{
			name:   "Nested calls are additive",
			source: `fn f() { for x in xs { a(); b(); c(); } }`,
			want: map[types.Label]float64{
				features.ExprForLoop: 1,
				features.ExprCall:    3,
				features.ExprPath:    4,
				features.StmtExpr:    4,
				features.PatIdent:    1,
				features.Block:       2,
			},
		},
		{
			name:   "Type variants",
			source: `fn f(a: &str, b: [u8; 4], c: &[u8], d: (i32, i64), e: *const u8, g: fn(u8) -> u8) {}`,
			want: map[types.Label]float64{
				features.PatIdent:      6,
				features.TypeReference: 2,
				features.TypePath:      8,
				features.TypeArray:     1,
				features.TypeSlice:     1,
				features.TypeTuple:     1,
				features.TypePtr:       1,
				features.TypeBareFn:    1,
				features.ExprLit:       1,
				features.Block:         1,
			},
		},
		{
			name: "Pattern variants",
			source: `fn f() {
				match v {
					Some(x) => 1,
					None => 2,
					_ => 3,
					(a, b) => 4,
					[first, second] => 5,
					Point { x, y: 0 } => 6,
					Color::Red => 7,
					8 => 9,
				}
			}`,
			want: map[types.Label]float64{
				features.ExprMatch:      1,
				features.ExprLit:        8,
				features.PatTupleStruct: 1,
				features.PatIdent:       7,
				features.PatWild:        1,
				features.PatTuple:       1,
				features.PatSlice:       1,
				features.PatStruct:      1,
				features.PatLit:         2,
				features.PatPath:        1,
				features.PatOther:       0,
			},
		},
		{
			name: "Closures and control flow",
			source: `fn f() {
				let g = |a, b| a + b;
				if c { return; }
				while d {}
				loop { break; }
			}`,
			want: map[types.Label]float64{
				features.StmtLocal:   1,
				features.PatIdent:    3,
				features.ExprClosure: 1,
				features.ExprIf:      1,
				features.ExprReturn:  1,
				features.ExprWhile:   1,
				features.ExprLoop:    1,
				features.ExprPath:    4,
				features.ExprOther:   2,
				features.StmtExpr:    5,
				features.Block:       4,
			},
		},
		{
			name:   "Struct literal and assignment",
			source: `fn f() { let p = Point { x: 1, y }; p.x = 2; }`,
			want: map[types.Label]float64{
				features.StmtLocal:  1,
				features.ExprStruct: 1,
				features.ExprLit:    2,
				features.ExprPath:   2,
				features.ExprAssign: 1,
				features.ExprField:  1,
				features.StmtExpr:   1,
				features.TypePath:   0,
			},
		},
		{
			name: "References, tuples, arrays and error propagation",
			source: `async fn f() {
				let r = &v;
				let t = (1, 2);
				let a = [1, 2];
				let z = [0; 3];
				let y = g()?;
				h().await;
			}`,
			want: map[types.Label]float64{
				features.StmtLocal:     5,
				features.PatIdent:      5,
				features.ExprReference: 1,
				features.ExprTuple:     1,
				features.ExprArray:     1,
				features.ExprOther:     1,
				features.ExprLit:       6,
				features.ExprTry:       1,
				features.ExprCall:      2,
				features.ExprAwait:     1,
				features.ExprPath:      3,
				features.StmtExpr:      1,
			},
		},
		{
			name:   "Let-else block is an expression",
			source: `fn f() { let Some(x) = y else { return; }; }`,
			want: map[types.Label]float64{
				features.StmtLocal:      1,
				features.PatTupleStruct: 1,
				features.PatIdent:       1,
				features.PatOther:       0,
				features.ExprOther:      1,
				features.ExprReturn:     1,
				features.Block:          2,
			},
		},
		{
			name:   "Explicit receiver type is not a pattern",
			source: `impl S { fn b(self: Box<Self>) {} }`,
			want: map[types.Label]float64{
				features.PatIdent:      0,
				features.PatOther:      0,
				features.TypeReference: 0,
			},
		},
		{
			name:   "Negative and path range bounds",
			source: `fn f() { match v { -5..=MAX => {} _ => {} } }`,
			want: map[types.Label]float64{
				features.PatOther: 1,
				features.PatLit:   0,
				features.ExprLit:  1,
				features.ExprPath: 2,
			},
		},
		{
			name:   "Generic arguments inside trait bounds are types",
			source: `fn f(v: Vec<Option<u8>>) -> impl Iterator<Item = u8> {}`,
			want: map[types.Label]float64{
				features.PatIdent:  1,
				features.TypePath:  4,
				features.TypeOther: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustCount(t, tt.source)
			for label, want := range tt.want {
				if got.Get(label) != want {
					t.Errorf("count[%s] = %v, want %v (all: %v)", label, got.Get(label), want, got)
				}
			}
		})
	}
}

func TestUncommonVariantsCountAsOther(t *testing.T) {
	tests := []struct {
		name   string
		source string
		label  types.Label
		want   float64
	}{
		{"Range and unary expressions", `fn f() { let r = 1..2; let n = -x; }`, features.ExprOther, 2},
		{"Never type", `fn f() -> ! { loop {} }`, features.TypeOther, 1},
		{"Or pattern", `fn f() { match v { 1 | 2 => {} _ => {} } }`, features.PatOther, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustCount(t, tt.source)
			if got.Get(tt.label) != tt.want {
				t.Errorf("count[%s] = %v, want %v (all: %v)", tt.label, got.Get(tt.label), tt.want, got)
			}
		})
	}
}

const sampleProgram = `
//! Crate docs
use std::collections::HashMap;

#[derive(Debug, Clone)]
pub struct Counter<'a> {
    name: &'a str,
    seen: HashMap<String, usize>,
    ids: [u32; 8],
}

impl<'a> Counter<'a> {
    /// Creates a counter
    pub fn new(name: &'a str) -> Self {
        Counter { name, seen: HashMap::new(), ids: [0; 8] }
    }

    pub fn add(&mut self, word: &str) -> Result<usize, String> {
        if word.is_empty() {
            return Err(format!("empty word for {}", self.name));
        }
        let entry = self.seen.entry(word.to_string()).or_insert(0);
        *entry += 1;
        Ok(*entry)
    }

    fn total(&self) -> usize {
        let mut sum = 0;
        for (_, v) in self.seen.iter() {
            sum += v;
        }
        match sum {
            0 => 0,
            n if n > 100 => 100,
            n => n,
        }
    }
}

macro_rules! square {
    ($x:expr) => { $x * $x };
}

async fn fetch(urls: Vec<&str>) -> Option<()> {
    let handles: Vec<_> = urls.iter().map(|u| u.len()).collect();
    let first = handles.first()?;
    let ptr: *const usize = first as *const usize;
    let callback: fn(usize) -> usize = |x| x + square!(2);
    let (a, b) = (1, 2);
    while let Some(x) = None::<u8> {
        unsafe { let _ = (ptr, x); }
    }
    loop {
        break;
    }
    some_future().await;
    let _ = (a, b, callback);
    Some(())
}
`

func TestLabelsBelongToTaxonomy(t *testing.T) {
	known := make(map[types.Label]bool)
	for _, label := range features.AllLabels() {
		known[label] = true
	}

	counts := mustCount(t, sampleProgram)
	if len(counts) == 0 {
		t.Fatalf("CountSource() returned an empty map for the sample program")
	}

	for label, count := range counts {
		if !known[label] {
			t.Errorf("label %q is not part of the taxonomy", label)
		}
		if count <= 0 {
			t.Errorf("count[%s] = %v, want > 0", label, count)
		}
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	first := mustCount(t, sampleProgram)
	second := mustCount(t, sampleProgram)
	if !first.Equal(second) {
		t.Errorf("two extractions differ:\n%v\n%v", first, second)
	}
}

func TestSimilarityOfNearIdenticalSnippets(t *testing.T) {
	a := mustCount(t, `fn foo(){ let x = 1; println!("{}", x); }`)
	b := mustCount(t, `fn foo(){ let x = 2; println!("{}", x); }`)

	for _, label := range []types.Label{features.StmtLocal, features.StmtMacro, features.Macro, features.PatIdent, features.ExprLit} {
		if a.Get(label) != b.Get(label) {
			t.Errorf("count[%s] differs: %v vs %v", label, a.Get(label), b.Get(label))
		}
		if a.Get(label) == 0 {
			t.Errorf("count[%s] = 0, want it present", label)
		}
	}

	sim := embedding.SimilarityFromCounts(a, b)
	if sim <= 0.9 {
		t.Errorf("similarity = %v, want > 0.9", sim)
	}
}

func TestSimilarityOfDisjointPrograms(t *testing.T) {
	a := mustCount(t, "#[derive(Debug)]\nstruct Unit;\n")
	b := mustCount(t, "const N: () = ();\n")

	if len(a) == 0 || len(b) == 0 {
		t.Fatalf("expected non-empty feature maps, got %v and %v", a, b)
	}
	for label := range a {
		if b.Get(label) != 0 {
			t.Fatalf("programs share label %s", label)
		}
	}

	if sim := embedding.SimilarityFromCounts(a, b); sim != 0 {
		t.Errorf("similarity = %v, want 0", sim)
	}
}

func TestParseAndCount(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.rs")
	if err := os.WriteFile(good, []byte(`fn main() { let x = 1; }`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	counts, err := features.ParseAndCount(good)
	if err != nil {
		t.Fatalf("ParseAndCount() error = %v", err)
	}
	if counts.Get(features.StmtLocal) != 1 {
		t.Errorf("count[%s] = %v, want 1", features.StmtLocal, counts.Get(features.StmtLocal))
	}

	bad := filepath.Join(dir, "bad.rs")
	if err := os.WriteFile(bad, []byte(`fn main( {`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	_, err = features.ParseAndCount(bad)
	var perr *rust.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("ParseAndCount() error = %v, want *rust.ParseError", err)
	}
	if !strings.Contains(err.Error(), bad) {
		t.Errorf("error %q does not mention the path %s", err, bad)
	}

	if _, err := features.ParseAndCount(filepath.Join(dir, "missing.rs")); err == nil {
		t.Errorf("ParseAndCount() on a missing file returned no error")
	}
}
