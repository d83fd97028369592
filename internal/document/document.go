package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"photojson/internal/catalog"
	"photojson/internal/fileutil"
	"photojson/internal/logging"
)

// DefaultFileName is used when the destination is a directory.
const DefaultFileName = "images_output.json"

const filePerm = 0o644

var (
	ErrInvalidDestination = errors.New("destination must be an existing directory or a .json file")
	ErrSerialization      = errors.New("failed to serialize document")
	ErrWriteFailure       = errors.New("failed to write document")
)

// WriteError reports a failed file write together with the target path.
type WriteError struct {
	Target string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s at %s: %v", ErrWriteFailure, e.Target, e.Err)
}

func (e *WriteError) Unwrap() []error {
	return []error{ErrWriteFailure, e.Err}
}

// Encode renders images as a JSON array. A nil slice encodes as []. The
// output always ends with a newline.
func Encode(images []catalog.Image, prettify bool) ([]byte, error) {
	if images == nil {
		images = []catalog.Image{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if prettify {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(images); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return buf.Bytes(), nil
}

// ResolveDestination maps a user-supplied destination to the file that will
// be written. The empty string stays empty and means standard output.
func ResolveDestination(dest string) (string, error) {
	if dest == "" {
		return "", nil
	}
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		return filepath.Join(dest, DefaultFileName), nil
	}
	if ext, ok := extension(filepath.Base(dest)); ok && strings.EqualFold(ext, "json") {
		return dest, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidDestination, dest)
}

func extension(name string) (string, bool) {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return "", false
	}
	return name[idx+1:], true
}

// Writer delivers encoded documents.
type Writer struct {
	stdout io.Writer
	logger *slog.Logger
}

// NewWriter returns a Writer that sends stdout-bound documents to stdout.
// A nil stdout uses os.Stdout.
func NewWriter(stdout io.Writer, logger *slog.Logger) *Writer {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Writer{stdout: stdout, logger: logging.NewComponentLogger(logger, "document")}
}

// Write resolves dest, encodes images and writes them. It returns the file
// path written, or "" for standard output.
func (w *Writer) Write(images []catalog.Image, dest string, prettify bool) (string, error) {
	target, err := ResolveDestination(dest)
	if err != nil {
		return "", err
	}
	data, err := Encode(images, prettify)
	if err != nil {
		return "", err
	}

	if target == "" {
		if _, err := w.stdout.Write(data); err != nil {
			return "", &WriteError{Target: "stdout", Err: err}
		}
		w.logger.Debug("document written", logging.String("target", "stdout"), logging.Int("bytes", len(data)))
		return "", nil
	}

	if err := fileutil.WriteFileAtomic(target, data, filePerm); err != nil {
		return "", &WriteError{Target: target, Err: err}
	}
	w.logger.Info("document written",
		logging.String("target", target),
		logging.Int("images", len(images)),
		logging.Int("bytes", len(data)),
	)
	return target, nil
}
