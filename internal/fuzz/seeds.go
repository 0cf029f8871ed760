package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var inlineSeeds = []string{
	"",
	"fn main() {}\n",
	"struct S { a: u8, b: Vec<Option<&'static str>> }",
	"struct T(u8, u16);",
	"impl S { fn f(&mut self, x: i32) -> i32 { x << 2 } }",
	"impl S { type X = u8; }",
	"fn f() { let (a, b) = (1, 2); for (i, x) in v.iter().enumerate() { s += x; } }",
	"fn f() { if a { } else if b { } else { } }",
	"fn f() -> ! { loop { break 'outer; } }",
	"fn f() { let x = match y { Some(z) if z > 0 => z, _ => 0 }; }",
	"fn f() { let s = r#\"raw\"#; let c = b'x'; let n = 0x_ff_u8 + 1e-3; }",
	"fn f() { x = a..=b; y = &mut *p as *const u8; }",
	"fn f() { m!{}; v![1, 2]; }",
	"/* unterminated",
	"fn f() { \"open }",
	"fn f( {",
	"fn f() { { { { } } } }",
	"fn f() { let x: i32 = 1\nlet y = 2; }",
	"#![allow(dead_code)]\n#[cfg(test)] mod tests { fn t() {} }",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.rs файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".rs" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(append([]byte(nil), input[:maxLen]...), "..."...)
}
