// Package token defines lexical token kinds and trivia for Rust source.
// Invariants:
//   - Token.Text is the exact source spelling (literals keep prefixes and
//     suffixes such as b"..", r#"..."#, 10u8).
//   - Token.Span matches Text exactly.
//   - Comments and whitespace are leading Trivia, never tokens.
//   - `>>`, `>=`, `>>=` are lexed greedily; the parser splits them when it
//     closes generic argument lists.
//   - Raw identifiers (r#type) are Ident tokens whose Text keeps the r# prefix.
package token
