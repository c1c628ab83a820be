package compile

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"doccount/internal/content"
)

// World provides the external-compiler capabilities the aggregator needs:
// compiling a file identifier into a content tree, and resolving an include
// reference (as written in a document) against the file containing it.
//
// Compile failures carry *CompileError; resolution failures carry
// *UnresolvedImportError.
type World interface {
	Compile(file string) (*content.Node, error)
	Resolve(from, ref string) (string, error)
}

// FSWorld compiles files from the filesystem. File identifiers are paths,
// either absolute or relative to Root; include references resolve relative
// to the directory of the including file.
type FSWorld struct {
	Root string
	// PDFFallback enables the pdftotext fallback when the Go PDF reader
	// cannot extract text.
	PDFFallback bool
}

// NewFSWorld creates a filesystem world rooted at root. An empty root means
// paths resolve against the working directory.
func NewFSWorld(root string) *FSWorld {
	return &FSWorld{Root: root}
}

func (w *FSWorld) abs(file string) string {
	if filepath.IsAbs(file) || w.Root == "" {
		return filepath.FromSlash(file)
	}
	return filepath.Join(w.Root, filepath.FromSlash(file))
}

func (w *FSWorld) Compile(file string) (*content.Node, error) {
	p, err := ForFile(file)
	if err != nil {
		return nil, &CompileError{File: file, Err: err}
	}
	if pp, ok := p.(*PDFParser); ok {
		pp.FallbackPdftotext = w.PDFFallback
	}

	f, err := os.Open(w.abs(file))
	if err != nil {
		return nil, &CompileError{File: file, Err: err}
	}
	defer f.Close()

	tree, err := p.Parse(f, filepath.Base(file))
	if err != nil {
		return nil, &CompileError{File: file, Err: err}
	}
	return tree, nil
}

func (w *FSWorld) Resolve(from, ref string) (string, error) {
	if ref == "" {
		return "", &UnresolvedImportError{File: from, Ref: ref, Err: fmt.Errorf("empty include target")}
	}
	target := path.Join(path.Dir(path.Clean(filepath.ToSlash(from))), ref)
	if _, err := os.Stat(w.abs(target)); err != nil {
		return "", &UnresolvedImportError{File: from, Ref: ref, Err: err}
	}
	return target, nil
}

// MemWorld compiles files from an in-memory set. It backs the HTTP API,
// where uploaded files must resolve includes against each other, and tests.
type MemWorld struct {
	files map[string][]byte
}

func NewMemWorld() *MemWorld {
	return &MemWorld{files: make(map[string][]byte)}
}

// Add registers a file under a cleaned slash path.
func (w *MemWorld) Add(name string, data []byte) {
	w.files[path.Clean(filepath.ToSlash(name))] = data
}

func (w *MemWorld) Compile(file string) (*content.Node, error) {
	data, ok := w.files[path.Clean(filepath.ToSlash(file))]
	if !ok {
		return nil, &CompileError{File: file, Err: os.ErrNotExist}
	}
	p, err := ForFile(file)
	if err != nil {
		return nil, &CompileError{File: file, Err: err}
	}
	tree, err := p.Parse(bytes.NewReader(data), path.Base(file))
	if err != nil {
		return nil, &CompileError{File: file, Err: err}
	}
	return tree, nil
}

func (w *MemWorld) Resolve(from, ref string) (string, error) {
	if ref == "" {
		return "", &UnresolvedImportError{File: from, Ref: ref, Err: fmt.Errorf("empty include target")}
	}
	target := path.Join(path.Dir(path.Clean(filepath.ToSlash(from))), ref)
	if _, ok := w.files[target]; !ok {
		return "", &UnresolvedImportError{File: from, Ref: ref, Err: os.ErrNotExist}
	}
	return target, nil
}
