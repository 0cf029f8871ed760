package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags records how the loaded bytes differ from the bytes on disk.
	FileFlags uint8
)

const (
	// FileVirtual marks content that did not come from disk (tests, stdin).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks a UTF-8 BOM that was stripped on load.
	FileHadBOM
	// FileNormalizedCRLF marks content whose \r\n pairs were folded into \n.
	FileNormalizedCRLF
)

// File holds the normalized content of one source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based human readable position.
type LineCol struct {
	Line uint32
	Col  uint32
}
