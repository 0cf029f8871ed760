package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope - гранулярность события; меньше значение, крупнее событие.
type Scope uint8

const (
	ScopeRun   Scope = iota + 1 // команда CLI целиком
	ScopePhase                  // lex, parse, normalize, encode
	ScopeFile                   // один файл пакетного прогона
	ScopeNode                   // счётчики деградаций нормализатора
)

func (s Scope) String() string {
	switch s {
	case ScopeRun:
		return "run"
	case ScopePhase:
		return "phase"
	case ScopeFile:
		return "file"
	case ScopeNode:
		return "node"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64 // global sequence number (monotonic)
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for root spans
	Name     string // "normalize", "file:src/lib.rs", ...
	Detail   string
	Extra    map[string]string
}
