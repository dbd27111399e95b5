package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates the on-disk content starts with a UTF-8 BOM.
	// The content is kept byte-exact so fixes round-trip; the lexer skips
	// the marker itself.
	FileHadBOM
	// FileExternal marks files pulled in through use/source chains rather
	// than named on the command line. Diagnostics in external files are
	// filtered by policy.
	FileExternal
)

// File captures metadata and content for a single source file.
//
// Base is the file's offset inside the working-set buffer: a global span
// [Base, Base+len(Content)) covers exactly this file's bytes.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Base    uint32
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// Virtual reports whether the file was added from memory.
func (f *File) Virtual() bool {
	return f.Flags&FileVirtual != 0
}

// External reports whether the file was reached through use/source chains.
func (f *File) External() bool {
	return f.Flags&FileExternal != 0
}

// CoveredSpan returns the global span occupied by this file's content.
func (f *File) CoveredSpan() Span {
	return Span{Start: f.Base, End: f.Base + uint32(len(f.Content))}
}
