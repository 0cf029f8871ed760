package ast

import "rscanon/internal/source"

type StructShape uint8

const (
	StructNamed StructShape = iota // struct S { a: T }
	StructTuple                    // struct S(T);
	StructUnit                     // struct S;
)

type StructItem struct {
	Name   source.StringID
	Shape  StructShape
	Fields []FieldID
}

// StructField - поле структуры; у tuple-полей Name == NoStringID.
type StructField struct {
	Name source.StringID
	Type TypeID
	Vis  Visibility
	Span source.Span
}

func (i *Items) NewStruct(name source.StringID, shape StructShape, fields []FieldID, span source.Span) ItemID {
	payload := i.Structs.Allocate(StructItem{Name: name, Shape: shape, Fields: fields})
	return i.New(ItemStruct, span, PayloadID(payload))
}

func (i *Items) Struct(id ItemID) (*StructItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemStruct {
		return nil, false
	}
	return i.Structs.Get(uint32(item.Payload)), true
}

func (i *Items) NewField(field StructField) FieldID {
	return FieldID(i.Fields.Allocate(field))
}

func (i *Items) Field(id FieldID) *StructField {
	return i.Fields.Get(uint32(id))
}
