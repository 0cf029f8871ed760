package ast

import "rscanon/internal/source"

type FnItem struct {
	Name       source.StringID
	Params     []FnParamID
	ReturnType TypeID
	// Body это ExprBlock; NoExprID у объявлений без тела (fn f();)
	Body ExprID
	Span source.Span
}

// FnParam - параметр функции. Receiver помечает self, &self, &mut self, mut self и self: T.
type FnParam struct {
	Receiver bool
	Pat      PatID
	Type     TypeID
	Span     source.Span
}

func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	return i.Fns.Get(uint32(item.Payload)), true
}

func (i *Items) NewFnParam(param FnParam) FnParamID {
	return FnParamID(i.FnParams.Allocate(param))
}

func (i *Items) FnParam(id FnParamID) *FnParam {
	return i.FnParams.Get(uint32(id))
}

func (i *Items) NewFn(
	name source.StringID,
	params []FnParamID,
	returnType TypeID,
	body ExprID,
	span source.Span,
) ItemID {
	payload := i.Fns.Allocate(FnItem{
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		Span:       span,
	})
	return i.New(ItemFn, span, PayloadID(payload))
}
