package logbook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestTailReturnsRecentLinesAndTotal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "studio.log")
	book, err := New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	defer book.Close()
	for i := 0; i < 5; i++ {
		book.Info("entry-%d", i)
	}
	lines, total := book.Tail(3)
	if total != 5 {
		t.Fatalf("total lines = %d, want 5", total)
	}
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestEntriesCarryLevelAndSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "studio.log")
	book, err := New(path, WithSession("session-42"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.Append(LevelWarn, "careful now")
	book.Append(LevelError, "broken")
	if err := book.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), data)
	}
	if !strings.Contains(lines[0], "WARN") || !strings.Contains(lines[0], "careful now") {
		t.Fatalf("unexpected warn line %q", lines[0])
	}
	if !strings.Contains(lines[1], "ERROR") || !strings.Contains(lines[1], "session-42") {
		t.Fatalf("unexpected error line %q", lines[1])
	}
}

func TestGeneratedSessionIsStable(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "studio.log"))
	if err != nil {
		t.Fatal(err)
	}
	defer book.Close()
	if _, err := uuid.Parse(book.Session()); err != nil {
		t.Fatalf("expected a uuid session id, got %q: %v", book.Session(), err)
	}
}

func TestNilLogbookIsSafe(t *testing.T) {
	var book *Logbook
	book.Info("ignored")
	if lines, total := book.Tail(5); lines != nil || total != 0 {
		t.Fatalf("expected empty tail from nil logbook")
	}
	if err := book.Close(); err != nil {
		t.Fatal(err)
	}
}
