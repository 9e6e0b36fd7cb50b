// package testing holds test doubles for the yt2spot services and prompts
package testing

import (
	"errors"
	"os"
	"testing"
)

// ErrWriteFailed is returned by [FailingWriter] once its budget is spent.
var ErrWriteFailed = errors.New("write failed")

// FailingWriter accepts the first After writes and fails every one after that.
// The zero value fails immediately.
type FailingWriter struct {
	After   int
	Written []byte
	writes  int
}

func (w *FailingWriter) Write(p []byte) (int, error) {
	if w.writes >= w.After {
		return 0, ErrWriteFailed
	}
	w.writes++
	w.Written = append(w.Written, p...)
	return len(p), nil
}

// FileContents fails the test when path is missing and returns its contents otherwise.
func FileContents(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
	return string(content)
}
