package count

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"doccount/internal/classify"
	"doccount/internal/compile"
	"doccount/internal/content"
)

// Options controls aggregation.
type Options struct {
	// ExcludeImports keeps only fragments whose provenance is the root
	// file itself; text reached through includes is discarded.
	ExcludeImports bool
	// Concurrency bounds how many root files are processed at once.
	// Zero means a small default. Each root's traversal is independent,
	// so only the final summation needs any coordination.
	Concurrency int
}

const defaultConcurrency = 4

// FileCount is the outcome for one root file: a count, or the error that
// made the file fail. A failed file contributes nothing to the total.
type FileCount struct {
	File   string
	Result Result
	Err    error
}

// Report is the outcome of one aggregation run. Files follows the input
// argument order; Total is the exact pointwise sum over successful files.
type Report struct {
	Files []FileCount
	Total Result
}

// Failed reports whether any root file failed.
func (r Report) Failed() bool {
	for _, f := range r.Files {
		if f.Err != nil {
			return true
		}
	}
	return false
}

// ImportCycleError means traversal found a file that is already open on
// the include stack: following the include would never terminate.
type ImportCycleError struct {
	File  string   // the re-entered file
	Chain []string // open files, root first, ending with the re-entry
}

func (e *ImportCycleError) Error() string {
	return fmt.Sprintf("import cycle detected: %s", strings.Join(e.Chain, " -> "))
}

// Aggregate counts every root file against the given world. One file's
// failure never aborts its siblings; its error is recorded in its slot and
// the total is computed from the files that succeeded.
func Aggregate(ctx context.Context, w compile.World, files []string, opts Options) Report {
	report := Report{Files: make([]FileCount, len(files))}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				report.Files[i] = FileCount{File: file, Err: err}
				return nil
			}
			res, err := CountFile(w, file, opts.ExcludeImports)
			report.Files[i] = FileCount{File: file, Result: res, Err: err}
			return nil
		})
	}
	g.Wait()

	for _, f := range report.Files {
		if f.Err == nil {
			report.Total = report.Total.Add(f.Result)
		}
	}
	return report
}

// CountFile compiles and counts a single root file.
func CountFile(w compile.World, file string, excludeImports bool) (Result, error) {
	frags, err := collect(w, file)
	if err != nil {
		return Result{}, err
	}

	var b strings.Builder
	for _, fr := range frags {
		if excludeImports && fr.File != file {
			continue
		}
		b.WriteString(fr.Text)
	}
	return Of(b.String()), nil
}

// frame is one step of the explicit traversal stack. Provenance rides on
// the frame instead of in mutable shared state, so returning from a nested
// include restores the including file's provenance automatically.
type frame struct {
	node *content.Node
	file string
	// exit marks a sentinel frame that closes an included file when the
	// walk returns past it.
	exit bool
}

// collect performs the depth-first pre-order walk of one root file's tree,
// splicing in included files and emitting text fragments in document order.
func collect(w compile.World, rootFile string) ([]content.Fragment, error) {
	root, err := w.Compile(rootFile)
	if err != nil {
		return nil, err
	}

	var frags []content.Fragment
	// Files currently open on the include stack. Resolving an include
	// whose target is already open is the cycle condition; this is checked
	// here even if the world is expected to reject cycles upstream.
	open := map[string]bool{rootFile: true}
	chain := []string{rootFile}

	stack := []frame{{node: root, file: rootFile}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.exit {
			delete(open, f.file)
			chain = chain[:len(chain)-1]
			continue
		}

		n := f.node
		if n.Kind == content.Include {
			target, err := w.Resolve(f.file, n.Ref)
			if err != nil {
				return nil, err
			}
			if open[target] {
				return nil, &ImportCycleError{
					File:  target,
					Chain: append(append([]string{}, chain...), target),
				}
			}
			sub, err := w.Compile(target)
			if err != nil {
				return nil, &compile.UnresolvedImportError{File: f.file, Ref: n.Ref, Err: err}
			}
			open[target] = true
			chain = append(chain, target)
			stack = append(stack,
				frame{file: target, exit: true},
				frame{node: sub, file: target},
			)
			continue
		}

		switch classify.Classify(n) {
		case classify.Leaf:
			if n.Text != "" {
				frags = append(frags, content.Fragment{Text: n.Text, File: f.file})
			}
		case classify.Recurse:
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, frame{node: n.Children[i], file: f.file})
			}
		case classify.Skip:
		}
	}
	return frags, nil
}
