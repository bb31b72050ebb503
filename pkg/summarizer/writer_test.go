package summarizer

import (
	"errors"
	"testing"

	"github.com/user/pixelworker/pkg/mocks"
)

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(s *Summary) string { return "# summary" }), fs)

	if err := w.Write("reports/summary.md", NewSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, ok := fs.GetFile("reports/summary.md")
	if !ok {
		t.Fatal("expected summary to be written")
	}
	if string(data) != "# summary" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestWriter_WriteError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error {
		return errors.New("disk full")
	}

	if err := NewWriter(NewMarkdownFormatter(), fs).Write("summary.md", NewSummary()); err == nil {
		t.Error("expected write error")
	}
}
