package preflight

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"photojson/internal/document"
)

// CheckRoot verifies that path exists and can be read. Directories must also
// be searchable.
func CheckRoot(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	mode := uint32(unix.R_OK)
	kind := "file"
	if info.IsDir() {
		mode |= unix.X_OK
		kind = "directory"
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (readable %s)", path, kind)}
}

// CheckDestination verifies that dest is a valid output target and that the
// resolved file can be created or replaced.
func CheckDestination(name, dest string) Result {
	target, err := document.ResolveDestination(dest)
	if err != nil {
		if errors.Is(err, document.ErrInvalidDestination) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: not a directory or .json file)", dest)}
		}
		return Result{Name: name, Detail: err.Error()}
	}
	if target == "" {
		return Result{Name: name, Passed: true, Detail: "standard output"}
	}
	if err := checkWritableParent(target); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", target, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (writable)", target)}
}

// CheckLogFile verifies that the log file can be appended to. A missing
// parent directory passes when the nearest existing ancestor is writable.
func CheckLogFile(name, path string) Result {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
		}
		if err := unix.Access(path, unix.W_OK); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: not writable: %v)", path, err)}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (writable)", path)}
	}
	dir := filepath.Dir(path)
	for {
		if _, err := os.Stat(dir); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s not writable: %v)", path, dir, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (creatable)", path)}
}

func checkWritableParent(target string) error {
	dir := filepath.Dir(target)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory %s does not exist", dir)
		}
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("insufficient permissions on %s: %w", dir, err)
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory", target)
	}
	return nil
}
