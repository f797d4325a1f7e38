package source

// FileID indexes a File inside its FileSet.
type FileID uint32

// FileFlags records where a buffer came from and what Load changed in it.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // не с диска: stdin, тесты
	FileHadBOM                               // BOM срезан
	FileNormalizedCRLF                       // \r\n заменены на \n
)

// File is one loaded buffer.
type File struct {
	ID      FileID
	Path    string // slash-separated, cleaned
	Content []byte
	LineIdx []uint32 // смещения всех '\n' по возрастанию
	Flags   FileFlags
}

// LineCol is a 1-based position; Col counts code points, not bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}
