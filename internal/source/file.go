package source

import (
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

func (f *File) Len() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}

// Span covers the whole buffer.
func (f *File) Span() Span {
	return Span{File: f.ID, End: f.Len()}
}

// Position maps a byte offset to a 1-based line and column.
func (f *File) Position(off uint32) LineCol {
	return toLineCol(f.Content, f.LineIdx, off)
}

func (f *File) Resolve(span Span) (start, end LineCol) {
	return f.Position(span.Start), f.Position(span.End)
}

// Text returns the bytes under span; the end is clamped to the buffer.
func (f *File) Text(span Span) string {
	end := min(span.End, f.Len())
	if span.Start >= end {
		return ""
	}
	return string(f.Content[span.Start:end])
}

// LineCount: завершающий '\n' новую строку не открывает.
func (f *File) LineCount() uint32 {
	n := uint32(len(f.LineIdx))
	if len(f.Content) == 0 || f.Content[len(f.Content)-1] != '\n' {
		n++
	}
	return n
}

// lineBounds returns [start, end) of the 1-based line n without its '\n'.
func (f *File) lineBounds(n uint32) (start, end uint32, ok bool) {
	if n == 0 || int(n-1) > len(f.LineIdx) {
		return 0, 0, false
	}
	if n > 1 {
		start = f.LineIdx[n-2] + 1
	}
	end = f.Len()
	if int(n-1) < len(f.LineIdx) {
		end = f.LineIdx[n-1]
	}
	return start, end, start < f.Len()
}

// GetLine returns line n (1-based) without the trailing '\n', or "" when the
// file has no such line.
func (f *File) GetLine(n uint32) string {
	start, end, ok := f.lineBounds(n)
	if !ok {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders f.Path for output. mode is one of absolute, relative,
// basename or auto; anything else prints the stored path.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		abs, err := AbsolutePath(f.Path)
		if err != nil {
			return f.Path
		}
		return abs
	case "relative":
		if f.Flags&FileVirtual != 0 {
			return f.Path
		}
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		rel, err := RelativePath(f.Path, baseDir)
		if err != nil {
			return f.Path
		}
		return rel
	case "basename":
		return BaseName(f.Path)
	case "auto":
		// длинные абсолютные пути сокращаем до имени файла
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return BaseName(f.Path)
		}
	}
	return f.Path
}
