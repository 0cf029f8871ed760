// Package trace пишет структурированные события работы rscanon:
// границы фаз (lex, parse, normalize, encode), файлы пакетного прогона
// и счётчики деградаций нормализатора.
//
// # Usage
//
//	rscanon normalize --trace=- --trace-level=phase main.rs
//	rscanon batch src --out out --trace=run.ndjson --trace-level=debug
//
// # Levels
//
//   - LevelOff: ничего
//   - LevelError: только события об ошибках (ScopeRun)
//   - LevelPhase: команда и фазы конвейера
//   - LevelDetail: плюс по событию на файл
//   - LevelDebug: плюс счётчики деградаций (ScopeNode)
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "parse", parentID)
//	defer span.End("")
package trace
