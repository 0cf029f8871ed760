package ast

import "rscanon/internal/source"

// ImplItem - блок impl [Trait for] Target { members }.
// Members содержит fn и ItemOther (ассоциированные const/type/макросы).
type ImplItem struct {
	Trait    TypeID
	Target   TypeID
	Negative bool // impl !Trait for T
	Members  []ItemID
}

func (i *Items) NewImpl(impl ImplItem, span source.Span) ItemID {
	payload := i.Impls.Allocate(impl)
	return i.New(ItemImpl, span, PayloadID(payload))
}

func (i *Items) Impl(id ItemID) (*ImplItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemImpl {
		return nil, false
	}
	return i.Impls.Get(uint32(item.Payload)), true
}
