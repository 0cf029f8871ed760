// Package fuzztests houses Go fuzz harnesses for the rscanon pipeline
// (source -> lexer -> parser -> normalize -> canon). They guard against
// panics, hangs and non-deterministic output on arbitrary input.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/ast, internal/normalize, internal/canon.
package fuzztests
