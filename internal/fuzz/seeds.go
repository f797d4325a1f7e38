package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"charj/internal/driver"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// builtinSeeds покрывают ветки восстановления, которых нет в testdata.
var builtinSeeds = []string{
	"",
	"fn main() { print(\"hi\"); }",
	"class A<T,> extends B { var x: T[]; fn f(a: int,) {} }",
	"fn f() { if (a) if (b) x(); else y(); }",
	"fn f() { a < b < c; }",
	"fn f() { x = 0x; y = 1e; z = 08; }",
	"/* незакрытый /* вложенный */",
	"fn f() { { { { { } } } } }",
	"class { fn () {} }",
	"val s = \"\\u{110000}\";",
	"fn f( { } class A {} var x = 1;",
	"@#$ fn",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.charj файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != driver.SourceExt {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src, maxSeedBytes))
		return nil
	})
}

func clamp(src []byte, limit int) []byte {
	if len(src) > limit {
		src = src[:limit]
	}
	return append([]byte(nil), src...)
}
