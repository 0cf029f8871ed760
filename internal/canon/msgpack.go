package canon

import (
	"github.com/vmihailenco/msgpack/v5"
)

// kv - пара ключ/значение; msgpack-карта пишется в порядке схемы, как и JSON.
type kv struct {
	key   string
	value any
}

func encodeMap(enc *msgpack.Encoder, pairs ...kv) error {
	if err := enc.EncodeMapLen(len(pairs)); err != nil {
		return err
	}
	for _, p := range pairs {
		if err := enc.EncodeString(p.key); err != nil {
			return err
		}
		if p.value == nil {
			if err := enc.EncodeNil(); err != nil {
				return err
			}
			continue
		}
		if err := enc.Encode(p.value); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ msgpack.CustomEncoder = Document{}
	_ msgpack.CustomEncoder = (*IfStmt)(nil)
	_ msgpack.CustomEncoder = (*Call)(nil)
)

func (d Document) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodeMap(enc, kv{"schema_version", SchemaVersion}, kv{"items", orEmpty(d.Items)})
}

func (f Field) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodeMap(enc, kv{"name", f.Name}, kv{"type", f.Type})
}

func (p Param) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodeMap(enc, kv{"name", p.Name}, kv{"type", p.Type})
}

func (f Function) pairs() []kv {
	return []kv{
		{"name", f.Name},
		{"params", orEmpty(f.Params)},
		{"return_type", f.ReturnType},
		{"body", orEmpty(f.Body)},
	}
}

func (f Function) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodeMap(enc, f.pairs()...)
}

func (d *StructDecl) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodeMap(enc, kv{"type", TagStruct}, kv{"name", d.Name}, kv{"fields", orEmpty(d.Fields)})
}

func (d *ImplDecl) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodeMap(enc, kv{"type", TagImpl}, kv{"target", d.Target}, kv{"methods", orEmpty(d.Methods)})
}

func (d *FunctionDecl) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodeMap(enc, append([]kv{{"type", TagFunction}}, d.pairs()...)...)
}

func (s *LetStmt) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodeMap(enc, kv{"type", TagLet}, kv{"name", s.Name}, kv{"value", exprValue(s.Value)})
}

func (s *AssignStmt) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodeMap(enc, kv{"type", TagAssign}, kv{"target", s.Target}, kv{"value", exprValue(s.Value)})
}

func (s *IfStmt) EncodeMsgpack(enc *msgpack.Encoder) error {
	var els any
	if s.HasElse {
		els = orEmpty(s.Else)
	}
	return encodeMap(enc,
		kv{"type", TagIf},
		kv{"condition", exprValue(s.Cond)},
		kv{"then_body", orEmpty(s.Then)},
		kv{"else_body", els},
	)
}

func (s *ForStmt) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodeMap(enc,
		kv{"type", TagFor},
		kv{"iterator", s.Iterator},
		kv{"iterable", exprValue(s.Iterable)},
		kv{"body", orEmpty(s.Body)},
	)
}

func (s *WhileStmt) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodeMap(enc, kv{"type", TagWhile}, kv{"condition", exprValue(s.Cond)}, kv{"body", orEmpty(s.Body)})
}

func (s *ReturnStmt) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodeMap(enc, kv{"type", TagReturn}, kv{"value", exprValue(s.Value)})
}

func (s *ExprStmt) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodeMap(enc, kv{"type", TagExpr}, kv{"expr", exprValue(s.Expr)})
}

func (e *Binary) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodeMap(enc,
		kv{"type", TagBinary},
		kv{"op", e.Op},
		kv{"left", exprValue(e.Left)},
		kv{"right", exprValue(e.Right)},
	)
}

func (e *Ident) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodeMap(enc, kv{"type", TagIdent}, kv{"name", e.Name})
}

func (e *Literal) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodeMap(enc, kv{"type", TagLiteral}, kv{"value", e.Value})
}

func (e *Call) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodeMap(enc, kv{"type", TagCall}, kv{"function", e.Function}, kv{"args", orEmpty(e.Args)})
}

// exprValue превращает nil-интерфейс в nil any, чтобы записать msgpack nil.
func exprValue(e Expr) any {
	if e == nil {
		return nil
	}
	return e
}
