package canon

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// orEmpty: пустые последовательности всегда пишутся как [].
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// jsonWriter пишет документ одним проходом в общий буфер.
// Отступы расставляются здесь же: json.Indent упирается в лимит вложенности сканера.
type jsonWriter struct {
	buf    []byte
	indent string
	depth  int
}

func appendDocumentJSON(dst []byte, doc Document, indent int) []byte {
	w := jsonWriter{buf: dst}
	if indent > 0 {
		w.indent = strings.Repeat(" ", indent)
	}
	w.beginObject()
	w.key(true, "schema_version")
	w.buf = strconv.AppendInt(w.buf, SchemaVersion, 10)
	w.key(false, "items")
	writeList(&w, doc.Items, w.decl)
	w.endObject()
	return append(w.buf, '\n')
}

func (w *jsonWriter) newline() {
	if w.indent == "" {
		return
	}
	w.buf = append(w.buf, '\n')
	for range w.depth {
		w.buf = append(w.buf, w.indent...)
	}
}

func (w *jsonWriter) beginObject() {
	w.buf = append(w.buf, '{')
	w.depth++
}

// endObject: объекты схемы никогда не пусты.
func (w *jsonWriter) endObject() {
	w.depth--
	w.newline()
	w.buf = append(w.buf, '}')
}

func (w *jsonWriter) key(first bool, name string) {
	if !first {
		w.buf = append(w.buf, ',')
	}
	w.newline()
	w.buf = appendString(w.buf, name)
	w.buf = append(w.buf, ':')
	if w.indent != "" {
		w.buf = append(w.buf, ' ')
	}
}

func (w *jsonWriter) str(s string) {
	w.buf = appendString(w.buf, s)
}

func (w *jsonWriter) null() {
	w.buf = append(w.buf, "null"...)
}

func (w *jsonWriter) tag(tag string) {
	w.beginObject()
	w.key(true, "type")
	w.str(tag)
}

// writeList: пустой и nil срез одинаково пишутся как [].
func writeList[T any](w *jsonWriter, items []T, each func(T)) {
	if len(items) == 0 {
		w.buf = append(w.buf, '[', ']')
		return
	}
	w.buf = append(w.buf, '[')
	w.depth++
	for i, it := range items {
		if i > 0 {
			w.buf = append(w.buf, ',')
		}
		w.newline()
		each(it)
	}
	w.depth--
	w.newline()
	w.buf = append(w.buf, ']')
}

func (w *jsonWriter) nameType(name, typ string) {
	w.beginObject()
	w.key(true, "name")
	w.str(name)
	w.key(false, "type")
	w.str(typ)
	w.endObject()
}

func (w *jsonWriter) field(f Field) { w.nameType(f.Name, f.Type) }
func (w *jsonWriter) param(p Param) { w.nameType(p.Name, p.Type) }

// functionFields пишет name/params/return_type/body в уже открытый объект.
func (w *jsonWriter) functionFields(f Function, first bool) {
	w.key(first, "name")
	w.str(f.Name)
	w.key(false, "params")
	writeList(w, f.Params, w.param)
	w.key(false, "return_type")
	w.str(f.ReturnType)
	w.key(false, "body")
	writeList(w, f.Body, w.stmt)
}

func (w *jsonWriter) method(f Function) {
	w.beginObject()
	w.functionFields(f, true)
	w.endObject()
}

func (w *jsonWriter) decl(v Decl) {
	switch v := v.(type) {
	case *StructDecl:
		w.tag(TagStruct)
		w.key(false, "name")
		w.str(v.Name)
		w.key(false, "fields")
		writeList(w, v.Fields, w.field)
	case *ImplDecl:
		w.tag(TagImpl)
		w.key(false, "target")
		w.str(v.Target)
		w.key(false, "methods")
		writeList(w, v.Methods, w.method)
	case *FunctionDecl:
		w.tag(TagFunction)
		w.functionFields(v.Function, false)
	default:
		// интерфейс закрыт, сюда попадает только nil
		w.null()
		return
	}
	w.endObject()
}

func (w *jsonWriter) stmt(v Stmt) {
	switch v := v.(type) {
	case *LetStmt:
		w.tag(TagLet)
		w.key(false, "name")
		w.str(v.Name)
		w.key(false, "value")
		w.expr(v.Value)
	case *AssignStmt:
		w.tag(TagAssign)
		w.key(false, "target")
		w.str(v.Target)
		w.key(false, "value")
		w.expr(v.Value)
	case *IfStmt:
		w.tag(TagIf)
		w.key(false, "condition")
		w.expr(v.Cond)
		w.key(false, "then_body")
		writeList(w, v.Then, w.stmt)
		w.key(false, "else_body")
		if v.HasElse {
			writeList(w, v.Else, w.stmt)
		} else {
			w.null()
		}
	case *ForStmt:
		w.tag(TagFor)
		w.key(false, "iterator")
		w.str(v.Iterator)
		w.key(false, "iterable")
		w.expr(v.Iterable)
		w.key(false, "body")
		writeList(w, v.Body, w.stmt)
	case *WhileStmt:
		w.tag(TagWhile)
		w.key(false, "condition")
		w.expr(v.Cond)
		w.key(false, "body")
		writeList(w, v.Body, w.stmt)
	case *ReturnStmt:
		w.tag(TagReturn)
		w.key(false, "value")
		w.expr(v.Value)
	case *ExprStmt:
		w.tag(TagExpr)
		w.key(false, "expr")
		w.expr(v.Expr)
	default:
		w.null()
		return
	}
	w.endObject()
}

func (w *jsonWriter) expr(v Expr) {
	switch v := v.(type) {
	case *Binary:
		w.tag(TagBinary)
		w.key(false, "op")
		w.str(v.Op)
		w.key(false, "left")
		w.expr(v.Left)
		w.key(false, "right")
		w.expr(v.Right)
	case *Ident:
		w.tag(TagIdent)
		w.key(false, "name")
		w.str(v.Name)
	case *Literal:
		w.tag(TagLiteral)
		w.key(false, "value")
		w.str(v.Value)
	case *Call:
		w.tag(TagCall)
		w.key(false, "function")
		w.str(v.Function)
		w.key(false, "args")
		writeList(w, v.Args, w.expr)
	default:
		// отсутствующее значение (let без инициализатора, голый return)
		w.null()
		return
	}
	w.endObject()
}

const hexDigits = "0123456789abcdef"

// appendString экранирует строку так же, как encoding/json с SetEscapeHTML(false):
// кавычка, обратный слэш, управляющие символы, U+2028/U+2029; битый UTF-8 → U+FFFD.
func appendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(s); {
		if b := s[i]; b < utf8.RuneSelf {
			if b >= 0x20 && b != '"' && b != '\\' {
				i++
				continue
			}
			dst = append(dst, s[start:i]...)
			switch b {
			case '"', '\\':
				dst = append(dst, '\\', b)
			case '\b':
				dst = append(dst, '\\', 'b')
			case '\f':
				dst = append(dst, '\\', 'f')
			case '\n':
				dst = append(dst, '\\', 'n')
			case '\r':
				dst = append(dst, '\\', 'r')
			case '\t':
				dst = append(dst, '\\', 't')
			default:
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[b>>4], hexDigits[b&0xF])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			dst = append(dst, s[start:i]...)
			dst = append(dst, `\ufffd`...)
			i += size
			start = i
			continue
		}
		if r == '\u2028' || r == '\u2029' {
			dst = append(dst, s[start:i]...)
			dst = append(dst, '\\', 'u', '2', '0', '2', hexDigits[r&0xF])
			i += size
			start = i
			continue
		}
		i += size
	}
	dst = append(dst, s[start:]...)
	return append(dst, '"')
}
