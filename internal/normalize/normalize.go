// Package normalize переводит нативное дерево в канонический документ.
// Нормализация не падает: всё, что схема не моделирует, деградирует
// в ident "unknown" (выражения) или пропускается (инструкции, объявления).
package normalize

import (
	"rscanon/internal/ast"
	"rscanon/internal/canon"
)

// Stats считает деградации за один файл; на результат не влияет.
type Stats struct {
	UnknownExprs   int // выражения, ставшие ident "unknown"
	UnknownOps     int // бинарные операторы вне канонической таблицы
	UnknownTypes   int // типы, отрисованные как "unknown"
	DroppedStmts   int // инструкции вне закрытого набора
	DroppedItems   int // объявления верхнего уровня вне struct/impl/fn
	DroppedImpls   int // impl без методов
	DroppedParams  int // параметры с нетривиальным паттерном
	PlaceholderPat int // let/for с деструктуризацией
	DroppedElseIf  int // else if, не попавший в else_body
}

// Degraded - общее число деградаций.
func (s Stats) Degraded() int {
	return s.UnknownExprs + s.UnknownOps + s.UnknownTypes + s.DroppedStmts + s.DroppedItems +
		s.DroppedImpls + s.DroppedParams + s.PlaceholderPat + s.DroppedElseIf
}

type normalizer struct {
	b     *ast.Builder
	stats Stats
}

// File нормализует все объявления файла в порядке исходника.
func File(b *ast.Builder, file ast.FileID) (canon.Document, Stats) {
	n := &normalizer{b: b}
	doc := canon.Document{Items: make([]canon.Decl, 0)}
	f := b.Files.Get(file)
	if f == nil {
		return doc, n.stats
	}
	for _, id := range f.Items {
		if decl, ok := n.item(id); ok {
			doc.Items = append(doc.Items, decl)
		}
	}
	return doc, n.stats
}
