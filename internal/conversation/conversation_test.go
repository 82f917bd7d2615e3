package conversation

import (
	"testing"

	"github.com/google/uuid"
)

func TestLog_AppendKeepsOrder(t *testing.T) {
	l := NewLog()
	l.AddPrompt("hello")
	l.AddReply("hi")
	l.AddCommand("Console cleared.")

	entries := l.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Role != RoleUser || entries[1].Role != RoleAssistant {
		t.Fatalf("unexpected roles: %s, %s", entries[0].Role, entries[1].Role)
	}
	if entries[0].ID == entries[1].ID {
		t.Fatalf("expected distinct entry ids")
	}
}

func TestEntry_DisplayMarksCommands(t *testing.T) {
	l := NewLog()
	cmd := l.AddCommand("Emergency Mode Activated.")
	reply := l.AddReply("At your service.")

	if cmd.Display() != "> Emergency Mode Activated." {
		t.Fatalf("expected command marker, got %q", cmd.Display())
	}
	if reply.Display() != "At your service." {
		t.Fatalf("expected plain reply, got %q", reply.Display())
	}
}

func TestLog_Remove(t *testing.T) {
	l := NewLog()
	keep := l.AddReply("keep")
	drop := l.AddCommand("Console cleared.")

	if !l.Remove(drop.ID) {
		t.Fatalf("expected entry to be removed")
	}
	if l.Remove(drop.ID) {
		t.Fatalf("expected second removal to report false")
	}
	if l.Remove(uuid.New()) {
		t.Fatalf("expected unknown id to report false")
	}

	entries := l.Entries()
	if len(entries) != 1 || entries[0].ID != keep.ID {
		t.Fatalf("expected only the kept entry, got %v", entries)
	}
}

func TestLog_Clear(t *testing.T) {
	l := NewLog()
	l.AddPrompt("one")
	l.AddReply("two")
	l.Clear()

	if l.Len() != 0 {
		t.Fatalf("expected empty log, got %d entries", l.Len())
	}
}

func TestLog_EntriesIsACopy(t *testing.T) {
	l := NewLog()
	l.AddReply("original")
	entries := l.Entries()
	entries[0].Text = "changed"

	if l.Entries()[0].Text != "original" {
		t.Fatalf("expected log entries to be immutable from outside")
	}
}

func TestLog_Last(t *testing.T) {
	l := NewLog()
	if _, ok := l.Last(KindReply); ok {
		t.Fatalf("expected no reply in an empty log")
	}
	l.AddReply("first")
	l.AddPrompt("question")
	l.AddReply("second")

	got, ok := l.Last(KindReply)
	if !ok || got.Text != "second" {
		t.Fatalf("expected second, got %q", got.Text)
	}
}
