package ast

import (
	"rscanon/internal/source"
)

type ItemKind uint8

const (
	ItemFn ItemKind = iota
	ItemStruct
	ItemImpl
	// ItemOther covers use/mod/trait/enum/const/static/type/union/extern/macro items.
	ItemOther
)

type Visibility uint8

const (
	VisPrivate    Visibility = iota
	VisPublic                // pub
	VisRestricted            // pub(crate), pub(super), pub(in path)
)

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Vis     Visibility
	Attrs   int
	Payload PayloadID
}

type Items struct {
	Arena    *Arena[Item]
	Fns      *Arena[FnItem]
	FnParams *Arena[FnParam]
	Structs  *Arena[StructItem]
	Fields   *Arena[StructField]
	Impls    *Arena[ImplItem]
	Others   *Arena[OtherItem]
}

// NewItems creates per-kind item arenas sized with capHint.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Items{
		Arena:    NewArena[Item](capHint),
		Fns:      NewArena[FnItem](capHint),
		FnParams: NewArena[FnParam](capHint),
		Structs:  NewArena[StructItem](capHint),
		Fields:   NewArena[StructField](capHint),
		Impls:    NewArena[ImplItem](capHint / 2),
		Others:   NewArena[OtherItem](capHint / 2),
	}
}

func (i *Items) New(kind ItemKind, span source.Span, payload PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

// OtherItem is an item the tree keeps only by its leading keyword.
type OtherItem struct {
	Keyword string // "use", "mod", "trait", "macro_rules", "macro" ...
	Name    source.StringID
}

func (i *Items) NewOther(keyword string, name source.StringID, span source.Span) ItemID {
	payload := i.Others.Allocate(OtherItem{Keyword: keyword, Name: name})
	return i.New(ItemOther, span, PayloadID(payload))
}

func (i *Items) Other(id ItemID) (*OtherItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemOther {
		return nil, false
	}
	return i.Others.Get(uint32(item.Payload)), true
}
