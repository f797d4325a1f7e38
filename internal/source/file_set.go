package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns every buffer of a run. IDs are dense and never reused: adding
// the same path again creates a new version and GetLatest moves to it.
type FileSet struct {
	files   []File
	latest  map[string]FileID
	baseDir string // для относительных путей в выводе; "" = рабочая директория
}

func NewFileSet() *FileSet {
	return &FileSet{latest: map[string]FileID{}}
}

// NewFileSetWithBase создаёт FileSet, печатающий пути относительно baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

// BaseDir returns the configured base directory or, when unset, the working
// directory.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Add registers content under path. Content larger than 4 GiB cannot be
// addressed by a Span and panics.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %q is too large: %w", path, err))
	}
	next, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}

	id := FileID(next)
	key := normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    key,
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   flags,
	})
	fs.latest[key] = id
	return id
}

// Load reads path from disk. A UTF-8 BOM is stripped and CRLF pairs become
// '\n'; the flags record what was changed.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- путь задаёт вызывающий
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var flags FileFlags
	content, stripped := removeBOM(raw)
	if stripped {
		flags |= FileHadBOM
	}
	if normalized, changed := normalizeCRLF(content); changed {
		content = normalized
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory buffer (stdin, tests) as-is.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get panics on an ID that did not come from this set.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		panic(fmt.Sprintf("source: unknown file id %d", id))
	}
	return &fs.files[id]
}

func (fs *FileSet) Len() int { return len(fs.files) }

// GetLatest returns the newest version registered under path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.latest[normalizePath(path)]
	return id, ok
}

// Resolve converts span into 1-based line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	return fs.Get(span.File).Resolve(span)
}
