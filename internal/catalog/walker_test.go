package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"sync/atomic"
	"testing"

	"photojson/internal/catalog"
	"photojson/internal/testsupport"
)

// buildTree lays out a small library with one corrupt image and two
// non-image files next to three valid images.
func buildTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "photos")
	testsupport.WritePNG(t, filepath.Join(root, "a.png"), testsupport.Bands(12, 6, red, green))
	testsupport.WriteJPEG(t, filepath.Join(root, "b", "c.jpg"), testsupport.Bands(16, 16, blue))
	testsupport.WriteFile(t, filepath.Join(root, "b", "notes.txt"), 10)
	testsupport.WriteFile(t, filepath.Join(root, "corrupt.png"), 64)
	testsupport.WriteFile(t, filepath.Join(root, "README"), 4)
	testsupport.WritePNG(t, filepath.Join(root, "z.PNG"), testsupport.Bands(5, 5, green))
	return root
}

func names(images []catalog.Image) []string {
	out := make([]string, len(images))
	for i, img := range images {
		out[i] = img.FileName
	}
	return out
}

func TestWalkIsolatesFailuresAndKeepsOrder(t *testing.T) {
	root := buildTree(t)

	result, err := catalog.NewWalker(nil).Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if result.Root != root {
		t.Fatalf("unexpected root %q", result.Root)
	}
	if got, want := names(result.Images), []string{"a.png", "c.jpg", "z.PNG"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("images = %v, want %v", got, want)
	}
	if result.Images[1].Path != filepath.Join(root, "b", "c.jpg") {
		t.Fatalf("expected absolute nested path, got %q", result.Images[1].Path)
	}

	// root, b, b/notes.txt, corrupt.png, README
	if len(result.Skipped) != 5 {
		t.Fatalf("expected 5 skipped entries, got %+v", result.Skipped)
	}
	if result.Failures() != 1 {
		t.Fatalf("expected one failure, got %d", result.Failures())
	}
	for _, skip := range result.Skipped {
		if skip.Failed != (filepath.Base(skip.Path) == "corrupt.png") {
			t.Fatalf("unexpected failure flag for %+v", skip)
		}
		if skip.Failed && !errors.Is(skip.Err, catalog.ErrDecode) {
			t.Fatalf("expected decode error for corrupt file, got %v", skip.Err)
		}
	}
}

func TestWalkIsIdempotent(t *testing.T) {
	root := buildTree(t)
	walker := catalog.NewWalker(nil)

	first, err := walker.Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	second, err := walker.Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if !reflect.DeepEqual(first.Images, second.Images) {
		t.Fatalf("walks differ:\n%+v\n%+v", first.Images, second.Images)
	}
}

func TestWalkParallelMatchesSequential(t *testing.T) {
	root := filepath.Join(t.TempDir(), "many")
	for i := range 24 {
		c := color.NRGBA{R: uint8(i * 10), G: uint8(255 - i*10), B: 90, A: 255}
		name := filepath.Join(root, fmt.Sprintf("dir%d", i%3), fmt.Sprintf("img%02d.png", i))
		testsupport.WritePNG(t, name, testsupport.Bands(9, 9, c, blue, red, green))
	}
	testsupport.WriteFile(t, filepath.Join(root, "dir1", "broken.jpg"), 100)

	seq, err := catalog.NewWalker(nil).Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("sequential Walk returned error: %v", err)
	}
	par, err := catalog.NewWalker(nil, catalog.WithWorkers(6)).Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("parallel Walk returned error: %v", err)
	}
	if len(seq.Images) != 24 {
		t.Fatalf("expected 24 images, got %d", len(seq.Images))
	}
	if !reflect.DeepEqual(seq.Images, par.Images) {
		t.Fatalf("parallel order differs:\n%v\n%v", names(seq.Images), names(par.Images))
	}
	if len(seq.Skipped) != len(par.Skipped) || seq.Failures() != par.Failures() {
		t.Fatalf("skip accounting differs: %d/%d vs %d/%d", len(seq.Skipped), seq.Failures(), len(par.Skipped), par.Failures())
	}
}

func TestWalkObserverSeesEveryEntry(t *testing.T) {
	root := buildTree(t)
	var images, skips atomic.Int32
	var lastTotal atomic.Int32
	observer := func(o catalog.Outcome) {
		lastTotal.Store(int32(o.Total))
		switch {
		case o.Image != nil && o.Skip == nil:
			images.Add(1)
		case o.Skip != nil && o.Image == nil:
			skips.Add(1)
		default:
			t.Errorf("outcome must carry exactly one of image or skip: %+v", o)
		}
	}

	result, err := catalog.NewWalker(nil, catalog.WithObserver(observer), catalog.WithWorkers(3)).Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if int(images.Load()) != len(result.Images) || int(skips.Load()) != len(result.Skipped) {
		t.Fatalf("observer saw %d images / %d skips, result has %d / %d", images.Load(), skips.Load(), len(result.Images), len(result.Skipped))
	}
	if int(lastTotal.Load()) != len(result.Images)+len(result.Skipped) {
		t.Fatalf("unexpected total %d", lastTotal.Load())
	}
}

func TestWalkResolvesRelativeRoot(t *testing.T) {
	root := buildTree(t)
	t.Chdir(filepath.Dir(root))

	result, err := catalog.NewWalker(nil).Walk(context.Background(), "photos")
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	for _, img := range result.Images {
		if !filepath.IsAbs(img.Path) {
			t.Fatalf("expected absolute path, got %q", img.Path)
		}
	}
}

func TestWalkEmptyAndMissingRoots(t *testing.T) {
	empty := t.TempDir()
	result, err := catalog.NewWalker(nil).Walk(context.Background(), empty)
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if result.Images == nil || len(result.Images) != 0 {
		t.Fatalf("expected empty non-nil image list, got %#v", result.Images)
	}

	missing := filepath.Join(empty, "nope")
	result, err = catalog.NewWalker(nil).Walk(context.Background(), missing)
	if err != nil {
		t.Fatalf("missing root should not be fatal: %v", err)
	}
	if len(result.Images) != 0 || len(result.Skipped) != 1 || !errors.Is(result.Skipped[0].Err, catalog.ErrTraversal) {
		t.Fatalf("expected a single traversal skip, got %+v", result)
	}
}

func TestWalkSingleFileRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "only.png")
	testsupport.WritePNG(t, path, testsupport.Bands(4, 4, red))

	result, err := catalog.NewWalker(nil).Walk(context.Background(), path)
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if len(result.Images) != 1 || result.Images[0].Path != path {
		t.Fatalf("expected the root file itself, got %+v", result.Images)
	}
}

func TestWalkDoesNotFollowSymlinkedDirectories(t *testing.T) {
	root := buildTree(t)
	if err := os.Symlink(root, filepath.Join(root, "b", "loop")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "a.png"), filepath.Join(root, "b", "link.png")); err != nil {
		t.Fatalf("symlink file: %v", err)
	}

	result, err := catalog.NewWalker(nil).Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if got, want := names(result.Images), []string{"a.png", "c.jpg", "link.png", "z.PNG"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("images = %v, want %v", got, want)
	}
}

func TestWalkHonorsCancellation(t *testing.T) {
	root := buildTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		_, err := catalog.NewWalker(nil, catalog.WithWorkers(workers)).Walk(ctx, root)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("workers=%d: expected context.Canceled, got %v", workers, err)
		}
	}
}

func TestWalkFollowsSymlinkedRoot(t *testing.T) {
	root := buildTree(t)
	link := filepath.Join(t.TempDir(), "library")
	if err := os.Symlink(root, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	direct, err := catalog.NewWalker(nil).Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	linked, err := catalog.NewWalker(nil).Walk(context.Background(), link)
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if got, want := names(linked.Images), names(direct.Images); !reflect.DeepEqual(got, want) {
		t.Fatalf("images via link = %v, want %v", got, want)
	}
	if len(linked.Skipped) != len(direct.Skipped) {
		t.Fatalf("skips via link = %+v, want %d", linked.Skipped, len(direct.Skipped))
	}
	if linked.Root != link {
		t.Fatalf("unexpected root %q", linked.Root)
	}
	if got, want := linked.Images[1].Path, filepath.Join(link, "b", "c.jpg"); got != want {
		t.Fatalf("path = %q, want %q", got, want)
	}
}

func TestWalkReportsUnreadableDirectoryOnce(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := buildTree(t)
	locked := filepath.Join(root, "locked")
	testsupport.WritePNG(t, filepath.Join(locked, "hidden.png"), testsupport.Bands(4, 4, red))
	if err := os.Chmod(locked, 0); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	var total atomic.Int64
	result, err := catalog.NewWalker(nil, catalog.WithObserver(func(o catalog.Outcome) {
		total.Store(int64(o.Total))
	})).Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}

	var hits []catalog.Skip
	for _, skip := range result.Skipped {
		if skip.Path == locked {
			hits = append(hits, skip)
		}
	}
	if len(hits) != 1 || !errors.Is(hits[0].Err, catalog.ErrTraversal) || !hits[0].Failed {
		t.Fatalf("expected one traversal failure for %s, got %+v", locked, hits)
	}
	if int(total.Load()) != len(result.Images)+len(result.Skipped) {
		t.Fatalf("total %d does not match %d entries", total.Load(), len(result.Images)+len(result.Skipped))
	}
}
