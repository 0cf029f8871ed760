package parser

import (
	"rscanon/internal/ast"
	"rscanon/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAssignment     = 1  // = += -= *= /= %= ^= &= |= <<= >>=
	precRange          = 2  // .. ..=
	precLogicalOr      = 3  // ||
	precLogicalAnd     = 4  // &&
	precComparison     = 5  // == != < > <= >=
	precBitwiseOr      = 6  // |
	precBitwiseXor     = 7  // ^
	precBitwiseAnd     = 8  // &
	precShift          = 9  // << >>
	precAdditive       = 10 // + -
	precMultiplicative = 11 // * / %
	precCast           = 12 // as
)

// getBinaryOperatorPrec возвращает приоритет и правую ассоциативность оператора
func getBinaryOperatorPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Assign, token.PlusEq, token.MinusEq, token.StarEq, token.SlashEq, token.PercentEq,
		token.CaretEq, token.AmpEq, token.PipeEq, token.ShlEq, token.ShrEq:
		return precAssignment, true
	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false
	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Pipe:
		return precBitwiseOr, false
	case token.Caret:
		return precBitwiseXor, false
	case token.Amp:
		return precBitwiseAnd, false
	case token.Shl, token.Shr:
		return precShift, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	default:
		return -1, false // не бинарный оператор
	}
}

var binaryOps = map[token.Kind]ast.BinaryOp{
	token.Plus: ast.BinAdd, token.Minus: ast.BinSub, token.Star: ast.BinMul, token.Slash: ast.BinDiv,
	token.Percent: ast.BinRem, token.AndAnd: ast.BinAnd, token.OrOr: ast.BinOr,
	token.Caret: ast.BinBitXor, token.Amp: ast.BinBitAnd, token.Pipe: ast.BinBitOr,
	token.Shl: ast.BinShl, token.Shr: ast.BinShr,
	token.EqEq: ast.BinEq, token.Lt: ast.BinLt, token.LtEq: ast.BinLe, token.BangEq: ast.BinNe,
	token.GtEq: ast.BinGe, token.Gt: ast.BinGt,
	token.PlusEq: ast.BinAddAssign, token.MinusEq: ast.BinSubAssign, token.StarEq: ast.BinMulAssign,
	token.SlashEq: ast.BinDivAssign, token.PercentEq: ast.BinRemAssign, token.CaretEq: ast.BinBitXorAssign,
	token.AmpEq: ast.BinBitAndAssign, token.PipeEq: ast.BinBitOrAssign, token.ShlEq: ast.BinShlAssign,
	token.ShrEq: ast.BinShrAssign,
}

// getUnaryOperator возвращает префиксный оператор (* ! -); '&' разбирается отдельно.
func getUnaryOperator(kind token.Kind) (ast.UnaryOp, bool) {
	switch kind {
	case token.Star:
		return ast.UnaryDeref, true
	case token.Bang:
		return ast.UnaryNot, true
	case token.Minus:
		return ast.UnaryNeg, true
	}
	return 0, false
}
