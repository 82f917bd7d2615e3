package conversation

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// CommandMarker prefixes command feedback in the chat log
const CommandMarker = "> "

// Kind classifies a log entry
type Kind string

const (
	KindPrompt     Kind = "prompt"
	KindReply      Kind = "reply"
	KindCommand    Kind = "command"
	KindError      Kind = "error"
	KindTranscript Kind = "transcript"
)

// Roles used by entries
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Entry represents a single line of the conversation
type Entry struct {
	ID        uuid.UUID
	Kind      Kind
	Role      string
	Text      string
	Timestamp time.Time
}

// Display returns the text as it is shown in the chat window
func (e Entry) Display() string {
	if e.Kind == KindCommand {
		return CommandMarker + e.Text
	}
	return e.Text
}

// Log is the ephemeral conversation of one UI session.
// Entries are only appended, removed one at a time, or cleared as a whole.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
	now     func() time.Time
}

// NewLog creates an empty log
func NewLog() *Log {
	return &Log{now: time.Now}
}

// Append adds an entry and returns it
func (l *Log) Append(kind Kind, role, text string) Entry {
	e := Entry{
		ID:        uuid.New(),
		Kind:      kind,
		Role:      role,
		Text:      text,
		Timestamp: l.now(),
	}

	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()
	return e
}

// AddPrompt records text the user sent to the assistant
func (l *Log) AddPrompt(text string) Entry {
	return l.Append(KindPrompt, RoleUser, text)
}

// AddReply records an assistant answer
func (l *Log) AddReply(text string) Entry {
	return l.Append(KindReply, RoleAssistant, text)
}

// AddCommand records command feedback
func (l *Log) AddCommand(message string) Entry {
	return l.Append(KindCommand, RoleSystem, message)
}

// AddError records a failed interaction
func (l *Log) AddError(text string) Entry {
	return l.Append(KindError, RoleSystem, text)
}

// AddTranscript records a final voice transcript
func (l *Log) AddTranscript(role, text string) Entry {
	return l.Append(KindTranscript, role, text)
}

// Entries returns a copy of the log in insertion order
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Last returns the most recent entry of the given kind
func (l *Log) Last(kind Kind) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].Kind == kind {
			return l.entries[i], true
		}
	}
	return Entry{}, false
}

// Remove deletes the entry with the given id and reports whether it was present
func (l *Log) Remove(id uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.entries {
		if e.ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Clear wipes the log
func (l *Log) Clear() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}
