package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet is the working set's file table. Files are laid out back to back
// in one virtual buffer; every file records its Base offset, so a global
// Span resolves to (file, file-relative span) without copying content.
type FileSet struct {
	files   []File
	index   map[string]FileID // path -> id
	baseDir string
	size    uint32 // next global offset
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// NewFileSetWithBase creates a FileSet with the given base directory for
// relative path formatting.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// SetBaseDir sets the base directory for relative path formatting.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.baseDir = dir
}

// BaseDir returns the base directory, falling back to the working directory.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Add stores a file, computes its line index and content hash, assigns the
// next global base offset, and returns a new FileID. A file with the same
// path always gets a fresh FileID; the path index points at the latest.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if hasBOM(content) {
		flags |= FileHadBOM
	}
	hash := sha256.Sum256(content)
	lineIdx := buildLineIndex(content)
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	lenContent, err := safecast.Conv[uint32](len(content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		Base:    fileSet.size,
		LineIdx: lineIdx,
		Hash:    hash,
		Flags:   flags,
	})
	fileSet.size += lenContent
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk and calls Add. Content is kept byte-exact:
// no BOM stripping, no newline rewriting, so applied fixes preserve the
// file's original encoding details.
func (fileSet *FileSet) Load(path string, flags FileFlags) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds a virtual file (stdin, test, or generated).
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Len returns the number of files in the set.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Size returns the total length of the virtual buffer.
func (fileSet *FileSet) Size() uint32 {
	return fileSet.size
}

// Get returns the file metadata for the given ID, or nil when out of range.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

// GetByPath returns the latest *File for the given path, if loaded.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fileSet.index[normalizePath(path)]; ok {
		return &fileSet.files[id], true
	}
	return nil, false
}

// FileFor resolves a global span to the file whose covered range contains
// it. Spans that bridge files or fall past the buffer end report false.
func (fileSet *FileSet) FileFor(span Span) (*File, bool) {
	for i := range fileSet.files {
		f := &fileSet.files[i]
		covered := f.CoveredSpan()
		if span.Start >= covered.Start && span.End <= covered.End {
			return f, true
		}
	}
	return nil, false
}

// ToFileSpan converts a global span to a file-relative one.
func (fileSet *FileSet) ToFileSpan(span Span) (FileSpan, bool) {
	f, ok := fileSet.FileFor(span)
	if !ok {
		return FileSpan{}, false
	}
	return FileSpan{
		File:  f.ID,
		Start: span.Start - f.Base,
		End:   span.End - f.Base,
	}, true
}

// Slice extracts the bytes of a global span from the owning file's content.
// Returns false for spans outside any file or off UTF-8 boundaries.
func (fileSet *FileSet) Slice(span Span) ([]byte, bool) {
	f, ok := fileSet.FileFor(span)
	if !ok {
		return nil, false
	}
	return span.ShiftLeft(f.Base).Slice(f.Content)
}

// Text is Slice as a string; out-of-range spans yield "".
func (fileSet *FileSet) Text(span Span) string {
	b, ok := fileSet.Slice(span)
	if !ok {
		return ""
	}
	return string(b)
}

// Resolve converts a global span into line/column positions inside its
// owning file. Unresolvable spans report false.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol, ok bool) {
	f, found := fileSet.FileFor(span)
	if !found {
		return LineCol{}, LineCol{}, false
	}
	local := span.ShiftLeft(f.Base)
	return toLineCol(f.LineIdx, local.Start), toLineCol(f.LineIdx, local.End), true
}

// LineAt returns the 1-based line number of a global offset, or 0 when the
// offset lies outside every file.
func (fileSet *FileSet) LineAt(off uint32) uint32 {
	f, ok := fileSet.FileFor(Span{Start: off, End: off})
	if !ok {
		return 0
	}
	return toLineCol(f.LineIdx, off-f.Base).Line
}

// GetLine returns the 1-based line from the file, without the trailing
// newline. Out-of-range lines yield "".
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}

	var start, end, lenLineIdx, lenContent uint32
	var err error
	lenLineIdx, err = safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent, err = safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}

	if (lineNum - 1) < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}

	if start >= lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}

	return string(f.Content[start:end])
}

// LineSpan returns the file-local [start, end) of the 1-based line,
// excluding the newline. The second value is false for missing lines.
func (f *File) LineSpan(lineNum uint32) (Span, bool) {
	if lineNum == 0 {
		return Span{}, false
	}
	lenLineIdx := uint32(len(f.LineIdx))
	lenContent := uint32(len(f.Content))

	var start uint32
	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return Span{}, false
	}

	end := lenContent
	if (lineNum - 1) < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	}
	if start > lenContent {
		return Span{}, false
	}
	return Span{Start: start, End: end}, true
}

// FormatPath formats the file path for display.
// mode: "absolute", "relative", "basename", "auto".
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path

	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := filepath.Rel(baseDir, f.Path); err == nil {
			return filepath.ToSlash(rel)
		}
		return f.Path

	case "basename":
		return filepath.Base(f.Path)

	case "auto":
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return filepath.Base(f.Path)

	default:
		return f.Path
	}
}
