package canon

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func sampleDoc() Document {
	return Document{Items: []Decl{
		&StructDecl{Name: "Point", Fields: []Field{{Name: "x", Type: "i32"}}},
		&ImplDecl{Target: "Point", Methods: []Function{{
			Name:       "norm",
			ReturnType: "f64",
			Body: []Stmt{
				&LetStmt{Name: "a"},
				&IfStmt{Cond: &Binary{Op: "<", Left: &Ident{Name: "a"}, Right: &Literal{Value: "0"}}, Then: []Stmt{&ReturnStmt{}}},
				&ExprStmt{Expr: &Call{Function: "f", Args: []Expr{&Literal{Value: `"<b>&"`}}}},
			},
		}}},
		&FunctionDecl{Function{Name: "main", ReturnType: "()"}},
	}}
}

func TestMarshalJSONCompact(t *testing.T) {
	data, err := Marshal(sampleDoc(), Options{Format: FormatJSON})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"schema_version":1,"items":[` +
		`{"type":"struct","name":"Point","fields":[{"name":"x","type":"i32"}]},` +
		`{"type":"impl","target":"Point","methods":[{"name":"norm","params":[],"return_type":"f64","body":[` +
		`{"type":"let","name":"a","value":null},` +
		`{"type":"if","condition":{"type":"binary","op":"<","left":{"type":"ident","name":"a"},"right":{"type":"literal","value":"0"}},"then_body":[{"type":"return","value":null}],"else_body":null},` +
		`{"type":"expr","expr":{"type":"call","function":"f","args":[{"type":"literal","value":"\"<b>&\""}]}}]}]},` +
		`{"type":"function","name":"main","params":[],"return_type":"()","body":[]}]}` + "\n"
	if string(data) != want {
		t.Errorf("compact JSON mismatch\n got: %s\nwant: %s", data, want)
	}
}

func TestMarshalJSONIndentAndEmptyElse(t *testing.T) {
	doc := Document{Items: []Decl{&FunctionDecl{Function{
		Name:       "f",
		ReturnType: "()",
		Body:       []Stmt{&IfStmt{Cond: &Ident{Name: "c"}, HasElse: true}},
	}}}}
	data, err := Marshal(doc, Options{Format: FormatJSON, Indent: 2})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "{\n  \"schema_version\": 1,\n  \"items\": [\n    {\n      \"type\": \"function\"") {
		t.Errorf("unexpected indentation:\n%s", text)
	}
	if !strings.Contains(text, `"else_body": []`) {
		t.Errorf("empty else block should serialise as []:\n%s", text)
	}
	if !strings.HasSuffix(text, "}\n") {
		t.Errorf("missing trailing newline")
	}
}

func TestEmptyDocument(t *testing.T) {
	data, err := Marshal(Document{}, Options{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "{\"schema_version\":1,\"items\":[]}\n" {
		t.Errorf("got %q", data)
	}
}

func TestCheckJSONAcceptsEmitted(t *testing.T) {
	data, err := Marshal(sampleDoc(), Options{Indent: 4})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	tags, err := Tags(data)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	want := map[string]int{
		"decl:struct": 1, "decl:impl": 1, "decl:function": 1,
		"stmt:let": 1, "stmt:if": 1, "stmt:return": 1, "stmt:expr": 1,
		"expr:binary": 1, "expr:ident": 1, "expr:literal": 2, "expr:call": 1,
	}
	for k, v := range want {
		if tags[k] != v {
			t.Errorf("%s: got %d, want %d", k, tags[k], v)
		}
	}
	if keys := SortedTags(tags); keys[0] != "decl:function" {
		t.Errorf("tags not sorted: %v", keys)
	}
}

func TestCheckJSONRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not object", `[]`},
		{"wrong version", `{"schema_version":2,"items":[]}`},
		{"missing items", `{"schema_version":1}`},
		{"unknown decl", `{"schema_version":1,"items":[{"type":"enum","name":"E"}]}`},
		{"extra field", `{"schema_version":1,"items":[{"type":"struct","name":"S","fields":[],"generics":[]}]}`},
		{"empty impl", `{"schema_version":1,"items":[{"type":"impl","target":"S","methods":[]}]}`},
		{"unknown stmt", `{"schema_version":1,"items":[{"type":"function","name":"f","params":[],"return_type":"()","body":[{"type":"match"}]}]}`},
		{"bad op", `{"schema_version":1,"items":[{"type":"function","name":"f","params":[],"return_type":"()","body":[{"type":"expr","expr":{"type":"binary","op":"%","left":{"type":"ident","name":"a"},"right":{"type":"ident","name":"b"}}}]}]}`},
		{"null expr", `{"schema_version":1,"items":[{"type":"function","name":"f","params":[],"return_type":"()","body":[{"type":"expr","expr":null}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckJSON([]byte(tt.doc))
			if err == nil {
				t.Fatalf("expected schema error")
			}
			if tt.name != "not object" && !errors.Is(err, ErrSchema) {
				t.Errorf("error should wrap ErrSchema: %v", err)
			}
		})
	}
}

func TestMsgpackKeepsLayout(t *testing.T) {
	data, err := Marshal(sampleDoc(), Options{Format: FormatMsgpack})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		t.Fatalf("decode: %v", err)
	}
	items, ok := root["items"].([]any)
	if !ok || len(items) != 3 {
		t.Fatalf("items: %#v", root["items"])
	}
	impl := items[1].(map[string]any)
	if impl["type"] != TagImpl || impl["target"] != "Point" {
		t.Errorf("impl: %#v", impl)
	}
	method := impl["methods"].([]any)[0].(map[string]any)
	let := method["body"].([]any)[0].(map[string]any)
	if v, ok := let["value"]; !ok || v != nil {
		t.Errorf("let without initializer must carry explicit nil, got %#v", let)
	}

	// порядок ключей: тег первым
	raw, _ := msgpack.Marshal(&Ident{Name: "x"})
	var keys []string
	d := msgpack.NewDecoder(bytes.NewReader(raw))
	n, _ := d.DecodeMapLen()
	for range n {
		k, _ := d.DecodeString()
		keys = append(keys, k)
		_, _ = d.DecodeInterface()
	}
	if strings.Join(keys, ",") != "type,name" {
		t.Errorf("key order %v", keys)
	}
}

// deepSum строит левую цепочку a + a + ... глубины n.
func deepSum(n int) Document {
	var e Expr = &Ident{Name: "a"}
	for range n {
		e = &Binary{Op: "+", Left: e, Right: &Ident{Name: "a"}}
	}
	return Document{Items: []Decl{&FunctionDecl{Function{
		Name:       "f",
		ReturnType: "i32",
		Body:       []Stmt{&ReturnStmt{Value: e}},
	}}}}
}

func TestMarshalJSONDeepChain(t *testing.T) {
	const depth = 20000
	for _, indent := range []int{0, 2} {
		data, err := Marshal(deepSum(depth), Options{Format: FormatJSON, Indent: indent})
		if err != nil {
			t.Fatalf("indent %d: %v", indent, err)
		}
		sep := ":"
		if indent > 0 {
			sep = ": "
		}
		if got := bytes.Count(data, []byte(`"type"`+sep+`"binary"`)); got != depth {
			t.Errorf("indent %d: %d binary nodes, want %d", indent, got, depth)
		}
		if !bytes.HasSuffix(data, []byte("}\n")) {
			t.Errorf("indent %d: missing trailing newline", indent)
		}
	}
	if _, err := Marshal(deepSum(depth), Options{Format: FormatMsgpack}); err != nil {
		t.Fatalf("msgpack: %v", err)
	}
}

func TestStringEscapingMatchesEncodingJSON(t *testing.T) {
	inputs := []string{
		"plain",
		`"quoted" \ back`,
		"<tag> & amp",
		"line\nbreak\ttab\r\b\f",
		"\x00\x01\x1f\x7f",
		"юникод ✓",
		"sep\u2028para\u2029",
		"bad\xffutf8",
	}
	for _, in := range inputs {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(in); err != nil {
			t.Fatalf("encode %q: %v", in, err)
		}
		want := strings.TrimSuffix(buf.String(), "\n")
		if got := string(appendString(nil, in)); got != want {
			t.Errorf("appendString(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatJSON, "JSON": FormatJSON, "msgpack": FormatMsgpack} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Errorf("expected error for yaml")
	}
	if ext := FormatMsgpack.Extension(); ext != ".msgpack" {
		t.Errorf("msgpack extension = %q", ext)
	}
	if ext := FormatJSON.Extension(); ext != ".json" {
		t.Errorf("json extension = %q", ext)
	}
}
