package compile

import "fmt"

// CompileError means a file could not be compiled into a content tree.
// It is fatal for the root file being processed, and only for it.
type CompileError struct {
	File string
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s: %v", e.File, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// UnresolvedImportError means an include reference could not be resolved or
// its target could not be compiled. File is the file containing the
// reference, Ref the reference as written.
type UnresolvedImportError struct {
	File string
	Ref  string
	Err  error
}

func (e *UnresolvedImportError) Error() string {
	return fmt.Sprintf("unresolved include %q in %s: %v", e.Ref, e.File, e.Err)
}

func (e *UnresolvedImportError) Unwrap() error { return e.Err }
