package canon

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
)

// ErrSchema помечает нарушение закрытой схемы.
var ErrSchema = errors.New("schema violation")

// variant описывает допустимые поля одного варианта.
type variant struct {
	fields map[string]fieldKind
}

type fieldKind uint8

const (
	kString fieldKind = iota
	kExpr
	kOptExpr
	kStmts
	kOptStmts
	kExprs
	kFields
	kFunctions
)

var (
	functionFields = map[string]fieldKind{
		"name": kString, "params": kFields, "return_type": kString, "body": kStmts,
	}
	declVariants = map[string]variant{
		TagStruct:   {map[string]fieldKind{"name": kString, "fields": kFields}},
		TagImpl:     {map[string]fieldKind{"target": kString, "methods": kFunctions}},
		TagFunction: {functionFields},
	}
	stmtVariants = map[string]variant{
		TagLet:    {map[string]fieldKind{"name": kString, "value": kOptExpr}},
		TagAssign: {map[string]fieldKind{"target": kString, "value": kExpr}},
		TagIf:     {map[string]fieldKind{"condition": kExpr, "then_body": kStmts, "else_body": kOptStmts}},
		TagFor:    {map[string]fieldKind{"iterator": kString, "iterable": kExpr, "body": kStmts}},
		TagWhile:  {map[string]fieldKind{"condition": kExpr, "body": kStmts}},
		TagReturn: {map[string]fieldKind{"value": kOptExpr}},
		TagExpr:   {map[string]fieldKind{"expr": kExpr}},
	}
	exprVariants = map[string]variant{
		TagBinary:  {map[string]fieldKind{"op": kString, "left": kExpr, "right": kExpr}},
		TagIdent:   {map[string]fieldKind{"name": kString}},
		TagLiteral: {map[string]fieldKind{"value": kString}},
		TagCall:    {map[string]fieldKind{"function": kString, "args": kExprs}},
	}
)

// BinaryOps - канонические написания бинарных операторов (плюс "unknown").
var BinaryOps = []string{"+", "-", "*", "/", "==", "!=", "<", ">", "<=", ">=", "&&", "||"}

// checker обходит обобщённо декодированный документ.
type checker struct {
	tags map[string]int
}

// CheckJSON проверяет, что data - документ закрытой схемы текущей версии.
func CheckJSON(data []byte) error {
	_, err := check(data)
	return err
}

// Tags возвращает счётчики тегов вида "decl:impl", "stmt:let", "expr:call".
func Tags(data []byte) (map[string]int, error) {
	return check(data)
}

// SortedTags - ключи Tags в детерминированном порядке.
func SortedTags(tags map[string]int) []string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func check(data []byte) (map[string]int, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	c := &checker{tags: make(map[string]int)}
	if err := c.document(root); err != nil {
		return nil, err
	}
	return c.tags, nil
}

func violation(path, format string, args ...any) error {
	return fmt.Errorf("%w at %s: %s", ErrSchema, path, fmt.Sprintf(format, args...))
}

func (c *checker) document(v any) error {
	obj, ok := v.(map[string]any)
	if !ok {
		return violation("$", "document must be an object")
	}
	if err := exactKeys("$", obj, "schema_version", "items"); err != nil {
		return err
	}
	num, ok := obj["schema_version"].(json.Number)
	if !ok || num.String() != fmt.Sprint(SchemaVersion) {
		return violation("$.schema_version", "want %d, got %v", SchemaVersion, obj["schema_version"])
	}
	items, ok := obj["items"].([]any)
	if !ok {
		return violation("$.items", "must be an array")
	}
	for i, it := range items {
		if err := c.tagged(fmt.Sprintf("$.items[%d]", i), "decl", it, declVariants); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) tagged(path, level string, v any, variants map[string]variant) error {
	obj, ok := v.(map[string]any)
	if !ok {
		return violation(path, "%s must be an object", level)
	}
	tag, ok := obj["type"].(string)
	if !ok {
		return violation(path, "missing \"type\" tag")
	}
	vr, ok := variants[tag]
	if !ok {
		return violation(path, "unknown %s tag %q", level, tag)
	}
	c.tags[level+":"+tag]++
	if err := c.fields(path, obj, vr.fields, "type"); err != nil {
		return err
	}
	if level == "expr" && tag == TagBinary {
		op := obj["op"].(string)
		if op != Unknown && !slices.Contains(BinaryOps, op) {
			return violation(path+".op", "unknown operator %q", op)
		}
	}
	if level == "decl" && tag == TagImpl && len(obj["methods"].([]any)) == 0 {
		return violation(path+".methods", "impl without methods")
	}
	return nil
}

func (c *checker) fields(path string, obj map[string]any, want map[string]fieldKind, extra ...string) error {
	names := slices.Sorted(maps.Keys(want))
	if err := exactKeys(path, obj, append(slices.Clone(names), extra...)...); err != nil {
		return err
	}
	for _, name := range names {
		if err := c.value(path+"."+name, obj[name], want[name]); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) value(path string, v any, kind fieldKind) error {
	switch kind {
	case kString:
		if _, ok := v.(string); !ok {
			return violation(path, "must be a string")
		}
	case kExpr:
		return c.tagged(path, "expr", v, exprVariants)
	case kOptExpr:
		if v == nil {
			return nil
		}
		return c.tagged(path, "expr", v, exprVariants)
	case kOptStmts:
		if v == nil {
			return nil
		}
		return c.list(path, v, func(p string, e any) error { return c.tagged(p, "stmt", e, stmtVariants) })
	case kStmts:
		return c.list(path, v, func(p string, e any) error { return c.tagged(p, "stmt", e, stmtVariants) })
	case kExprs:
		return c.list(path, v, func(p string, e any) error { return c.tagged(p, "expr", e, exprVariants) })
	case kFields:
		return c.list(path, v, func(p string, e any) error {
			obj, ok := e.(map[string]any)
			if !ok {
				return violation(p, "must be an object")
			}
			return c.fields(p, obj, map[string]fieldKind{"name": kString, "type": kString})
		})
	case kFunctions:
		return c.list(path, v, func(p string, e any) error {
			obj, ok := e.(map[string]any)
			if !ok {
				return violation(p, "method must be an object")
			}
			return c.fields(p, obj, functionFields)
		})
	}
	return nil
}

func (c *checker) list(path string, v any, each func(string, any) error) error {
	arr, ok := v.([]any)
	if !ok {
		return violation(path, "must be an array")
	}
	for i, e := range arr {
		if err := each(fmt.Sprintf("%s[%d]", path, i), e); err != nil {
			return err
		}
	}
	return nil
}

func exactKeys(path string, obj map[string]any, keys ...string) error {
	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			return violation(path, "missing field %q", k)
		}
	}
	if len(obj) != len(keys) {
		var extra []string
		for k := range obj {
			if !slices.Contains(keys, k) {
				extra = append(extra, k)
			}
		}
		sort.Strings(extra)
		return violation(path, "unexpected fields %s", strings.Join(extra, ", "))
	}
	return nil
}
