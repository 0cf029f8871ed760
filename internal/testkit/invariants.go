// Package testkit - проверки инвариантов дерева для тестов парсера и драйвера.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"rscanon/internal/ast"
	"rscanon/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span lies within file content bounds (empty only for blank input)
// 2) every item span is non-empty and fully contained in file.Span
// 3) items appear in source order without overlap
// 4) a fn body block lies inside its item span
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent || f.Span.End < f.Span.Start {
		return fmt.Errorf("file span %v outside content of %d bytes", f.Span, lenContent)
	}
	if len(f.Items) > 0 && f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}

	var prevEnd uint32
	for _, it := range f.Items {
		item := b.Items.Get(it)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", it)
		}
		sp := item.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty item span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("item span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if sp.Start < f.Span.Start || sp.End > f.Span.End {
			return fmt.Errorf("item span %v is outside file span %v", sp, f.Span)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("item span %v overlaps previous item ending at %d", sp, prevEnd)
		}
		prevEnd = sp.End

		fn, ok := b.Items.Fn(it)
		if !ok || fn.Body == ast.NoExprID {
			continue
		}
		body := b.Exprs.Get(fn.Body)
		if body == nil {
			return fmt.Errorf("fn body %d not found", fn.Body)
		}
		if body.Span.Start < sp.Start || body.Span.End > sp.End {
			return fmt.Errorf("fn body %v is outside item span %v", body.Span, sp)
		}
	}
	return nil
}
