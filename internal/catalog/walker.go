package catalog

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"photojson/internal/logging"
)

// Skip records an entry that produced no Image.
type Skip struct {
	Path string
	Err  error
	// Failed is true when the entry looked like an image but could not be
	// cataloged, and false for entries that are simply not images.
	Failed bool
}

// Result is the outcome of one walk. Images are in traversal order.
type Result struct {
	Root    string
	Images  []Image
	Skipped []Skip
}

// Failures counts skipped entries with Failed set.
func (r Result) Failures() int {
	n := 0
	for _, s := range r.Skipped {
		if s.Failed {
			n++
		}
	}
	return n
}

// Outcome describes one processed entry. Exactly one of Image and Skip is set.
type Outcome struct {
	Index int
	Total int
	Image *Image
	Skip  *Skip
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithWorkers sets how many entries are inspected concurrently. Output order
// does not depend on it.
func WithWorkers(n int) WalkerOption {
	return func(w *Walker) {
		if n >= 1 {
			w.workers = n
		}
	}
}

// WithObserver registers fn to be called after each entry is processed. Calls
// are serialized but arrive out of index order when workers > 1.
func WithObserver(fn func(Outcome)) WalkerOption {
	return func(w *Walker) {
		w.observer = fn
	}
}

// WithLogger sets the logger used for skip diagnostics.
func WithLogger(logger *slog.Logger) WalkerOption {
	return func(w *Walker) {
		w.logger = logger
	}
}

// Walker catalogs every image below a root directory.
type Walker struct {
	inspector *Inspector
	workers   int
	observer  func(Outcome)
	logger    *slog.Logger
}

// NewWalker returns a sequential walker using inspector, or a default
// inspector when nil.
func NewWalker(inspector *Inspector, opts ...WalkerOption) *Walker {
	if inspector == nil {
		inspector = NewInspector()
	}
	w := &Walker{inspector: inspector, workers: 1}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = logging.NewComponentLogger(w.logger, "walker")
	return w
}

type entry struct {
	path string
	err  error
}

type outcome struct {
	image Image
	err   error
}

// Walk visits root and everything below it in lexical depth-first order and
// inspects every entry, root included. Per-entry errors become Skip records.
// Walk only fails when root cannot be made absolute or ctx is canceled.
func (w *Walker) Walk(ctx context.Context, root string) (Result, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Result{}, err
	}

	entries, err := collect(ctx, abs)
	if err != nil {
		return Result{}, err
	}

	outcomes := make([]outcome, len(entries))
	var mu sync.Mutex
	process := func(i int) {
		e := entries[i]
		out := outcome{err: e.err}
		if out.err == nil {
			out.image, out.err = w.inspector.Inspect(e.path)
		}
		outcomes[i] = out
		if w.observer != nil {
			mu.Lock()
			w.observer(w.toOutcome(i, len(entries), e.path, out))
			mu.Unlock()
		}
	}

	if w.workers <= 1 {
		for i := range entries {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			process(i)
		}
	} else {
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(w.workers)
		for i := range entries {
			if groupCtx.Err() != nil {
				break
			}
			group.Go(func() error {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				process(i)
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return Result{}, err
		}
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
	}

	result := Result{Root: abs, Images: make([]Image, 0, len(entries))}
	for i, out := range outcomes {
		if out.err == nil {
			result.Images = append(result.Images, out.image)
			continue
		}
		skip := Skip{Path: entries[i].path, Err: out.err, Failed: IsFailure(out.err)}
		result.Skipped = append(result.Skipped, skip)
		w.logger.Debug("entry skipped",
			logging.String("path", skip.Path),
			logging.String("reason", Reason(skip.Err)),
			logging.Bool("failed", skip.Failed),
			logging.Error(skip.Err),
		)
	}
	w.logger.Info("walk complete",
		logging.String("root", abs),
		logging.Int("entries", len(entries)),
		logging.Int("images", len(result.Images)),
		logging.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

func (w *Walker) toOutcome(i, total int, path string, out outcome) Outcome {
	o := Outcome{Index: i, Total: total}
	if out.err == nil {
		img := out.image
		o.Image = &img
		return o
	}
	o.Skip = &Skip{Path: path, Err: out.err, Failed: IsFailure(out.err)}
	return o
}

// collect lists every entry under root in traversal order. Unreadable entries
// are kept with their traversal error. A symlinked root is followed and its
// entries are reported under the link path; symlinked directories below the
// root are not entered.
func collect(ctx context.Context, root string) ([]entry, error) {
	walkRoot := root
	if info, err := os.Lstat(root); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		if target, err := filepath.EvalSymlinks(root); err == nil {
			walkRoot = target
		}
	}

	var entries []entry
	err := filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		path = underRoot(root, walkRoot, path)
		if err != nil {
			e := entry{path: path, err: wrap(ErrTraversal, path, err)}
			// a directory that fails ReadDir was already reported once
			if d != nil && d.IsDir() && len(entries) > 0 && entries[len(entries)-1].path == path {
				entries[len(entries)-1] = e
				return nil
			}
			entries = append(entries, e)
			return nil
		}
		entries = append(entries, entry{path: path})
		return nil
	})
	return entries, err
}

func underRoot(root, walkRoot, path string) string {
	if root == walkRoot {
		return path
	}
	rel, err := filepath.Rel(walkRoot, path)
	if err != nil {
		return path
	}
	return filepath.Join(root, rel)
}
