package parser

import (
	"testing"

	"rscanon/internal/ast"
	"rscanon/internal/diag"
)

func TestParseStructShapes(t *testing.T) {
	builder, file := mustParse(t, `
#[derive(Debug, Clone)]
pub struct Point<T: Copy = i32> where T: Default {
    pub x: T,
    pub(crate) y: Vec<Vec<T>>,
}
struct Pair(pub i32, String);
struct Unit;
`)
	if len(file.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(file.Items))
	}

	tests := []struct {
		name   string
		shape  ast.StructShape
		fields []string
	}{
		{"Point", ast.StructNamed, []string{"x", "y"}},
		{"Pair", ast.StructTuple, []string{"", ""}},
		{"Unit", ast.StructUnit, nil},
	}
	for i, tt := range tests {
		st, ok := builder.Items.Struct(file.Items[i])
		if !ok {
			t.Fatalf("item %d: expected struct", i)
		}
		if got := builder.Name(st.Name); got != tt.name {
			t.Errorf("item %d: name %q, want %q", i, got, tt.name)
		}
		if st.Shape != tt.shape {
			t.Errorf("%s: shape %v, want %v", tt.name, st.Shape, tt.shape)
		}
		if len(st.Fields) != len(tt.fields) {
			t.Fatalf("%s: %d fields, want %d", tt.name, len(st.Fields), len(tt.fields))
		}
		for j, want := range tt.fields {
			if got := builder.Name(builder.Items.Field(st.Fields[j]).Name); got != want {
				t.Errorf("%s field %d: %q, want %q", tt.name, j, got, want)
			}
		}
	}

	first := builder.Items.Get(file.Items[0])
	if first.Vis != ast.VisPublic || first.Attrs != 1 {
		t.Errorf("Point: vis=%v attrs=%d, want public with 1 attr", first.Vis, first.Attrs)
	}
	point, _ := builder.Items.Struct(file.Items[0])
	if vis := builder.Items.Field(point.Fields[1]).Vis; vis != ast.VisRestricted {
		t.Errorf("y visibility %v, want restricted", vis)
	}
}

func TestParseFnSignature(t *testing.T) {
	builder, file := mustParse(t, `
pub async unsafe fn run<'a, T>(ctx: &'a mut Ctx, (a, b): (i32, i32), f: impl Fn(T) -> T) -> Result<(), Box<dyn Error + Send>> where T: Clone {}
extern "C" fn ffi(x: *const u8, ...);
`)
	if len(file.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(file.Items))
	}
	fn, ok := builder.Items.Fn(file.Items[0])
	if !ok {
		t.Fatalf("expected fn item")
	}
	if builder.Name(fn.Name) != "run" {
		t.Errorf("name %q, want run", builder.Name(fn.Name))
	}
	if len(fn.Params) != 3 {
		t.Fatalf("params: got %d, want 3", len(fn.Params))
	}
	second := builder.Items.FnParam(fn.Params[1])
	if builder.Pats.Get(second.Pat).Kind != ast.PatTuple {
		t.Errorf("second param pattern kind %v, want tuple", builder.Pats.Get(second.Pat).Kind)
	}
	third := builder.Items.FnParam(fn.Params[2])
	if builder.Types.Get(third.Type).Kind != ast.TypeImpl {
		t.Errorf("third param type kind %v, want impl", builder.Types.Get(third.Type).Kind)
	}
	if !fn.ReturnType.IsValid() || builder.Types.Get(fn.ReturnType).Kind != ast.TypePath {
		t.Errorf("expected path return type")
	}
	ret, _ := builder.Types.Path(fn.ReturnType)
	if len(ret.Path.Segments) != 1 || len(ret.Path.Segments[0].Args) != 2 {
		t.Errorf("Result should carry two generic args")
	}

	ffi, _ := builder.Items.Fn(file.Items[1])
	if ffi.Body.IsValid() {
		t.Errorf("extern declaration must have no body")
	}
	if len(ffi.Params) != 2 {
		t.Fatalf("params: got %d, want 2", len(ffi.Params))
	}
	if builder.Items.FnParam(ffi.Params[1]).Pat.IsValid() {
		t.Errorf("variadic tail must have no pattern")
	}
}

func TestParseReceivers(t *testing.T) {
	builder, file := mustParse(t, `
impl<T> Stack<T> {
    fn a(self) {}
    fn b(&self) {}
    fn c(&'a mut self, v: T) {}
    fn d(mut self) {}
    fn e(self: Box<Self>) {}
    const N: usize = 4;
    type Item = T;
}
`)
	impl, ok := builder.Items.Impl(file.Items[0])
	if !ok {
		t.Fatalf("expected impl item")
	}
	if len(impl.Members) != 7 {
		t.Fatalf("members: got %d, want 7", len(impl.Members))
	}
	for i := range 5 {
		fn, ok := builder.Items.Fn(impl.Members[i])
		if !ok {
			t.Fatalf("member %d: expected fn", i)
		}
		if len(fn.Params) == 0 || !builder.Items.FnParam(fn.Params[0]).Receiver {
			t.Errorf("%s: first param should be a receiver", builder.Name(fn.Name))
		}
	}
	c, _ := builder.Items.Fn(impl.Members[2])
	if len(c.Params) != 2 || builder.Items.FnParam(c.Params[1]).Receiver {
		t.Errorf("c: second param must be a plain param")
	}
	other, ok := builder.Items.Other(impl.Members[5])
	if !ok || other.Keyword != "const" {
		t.Errorf("member 5: expected const, got %+v", other)
	}
}

func TestParseTraitImpl(t *testing.T) {
	builder, file := mustParse(t, `impl<T: Display> fmt::Debug for Wrapper<T> { fn fmt(&self, f: &mut fmt::Formatter<'_>) -> fmt::Result { Ok(()) } }`)
	impl, ok := builder.Items.Impl(file.Items[0])
	if !ok {
		t.Fatalf("expected impl item")
	}
	if !impl.Trait.IsValid() {
		t.Fatalf("expected trait type")
	}
	trait, _ := builder.Types.Path(impl.Trait)
	if len(trait.Path.Segments) != 2 || builder.Name(trait.Path.Segments[1].Name) != "Debug" {
		t.Errorf("unexpected trait path")
	}
	target, _ := builder.Types.Path(impl.Target)
	if builder.Name(target.Path.Segments[0].Name) != "Wrapper" {
		t.Errorf("unexpected target")
	}
}

func TestParseOtherItems(t *testing.T) {
	builder, file := mustParse(t, `
#![allow(dead_code)]
use std::{collections::HashMap, fmt};
mod inner { fn hidden() {} }
enum E { A, B(i32) }
trait T { fn m(&self); }
type Alias = Vec<u8>;
static mut COUNT: u32 = 0;
const LIMIT: usize = 10;
macro_rules! square { ($x:expr) => { $x * $x }; }
lazy_static! { static ref X: u8 = 1; }
extern crate alloc;
union U { a: u8 }
`)
	want := []string{"use", "mod", "enum", "trait", "type", "static", "const", "macro_rules", "macro", "extern crate", "union"}
	if file.InnerAttrs != 1 {
		t.Errorf("inner attrs %d, want 1", file.InnerAttrs)
	}
	if len(file.Items) != len(want) {
		t.Fatalf("items: got %d, want %d", len(file.Items), len(want))
	}
	for i, kw := range want {
		other, ok := builder.Items.Other(file.Items[i])
		if !ok {
			t.Fatalf("item %d: expected other item", i)
		}
		if other.Keyword != kw {
			t.Errorf("item %d: keyword %q, want %q", i, other.Keyword, kw)
		}
	}
}

func TestParseRecoversAtTopLevel(t *testing.T) {
	builder, fileID, bag := parseSource(t, `
fn broken( {}
struct Ok { a: i32 }
`)
	if !bag.HasErrors() {
		t.Fatalf("expected errors")
	}
	file := builder.Files.Get(fileID)
	found := false
	for _, id := range file.Items {
		if st, ok := builder.Items.Struct(id); ok && builder.Name(st.Name) == "Ok" {
			found = true
		}
	}
	if !found {
		t.Errorf("struct after broken fn should be parsed, diagnostics: %s", diagnosticsSummary(bag))
	}
}

func TestParseStopsAtMaxErrors(t *testing.T) {
	_, _, bag := parseSourceWithOptions(t, "1; 2; 3; 4; 5;", Options{MaxErrors: 2})
	if bag.Len() > 2 {
		t.Errorf("expected at most 2 diagnostics, got %d: %s", bag.Len(), diagnosticsSummary(bag))
	}
}

func TestParseUnexpectedTopLevel(t *testing.T) {
	_, _, bag := parseSource(t, "let x = 1;")
	first, ok := bag.FirstError()
	if !ok {
		t.Fatalf("expected error")
	}
	if first.Code != diag.SynUnexpectedTopLevel {
		t.Errorf("code %s, want %s", first.Code.ID(), diag.SynUnexpectedTopLevel.ID())
	}
}
