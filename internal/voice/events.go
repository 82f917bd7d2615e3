package voice

// EventType names a voice agent event
type EventType string

const (
	CallStart   EventType = "call-start"
	CallEnd     EventType = "call-end"
	SpeechStart EventType = "speech-start"
	SpeechEnd   EventType = "speech-end"
	MessageType EventType = "message"
	ErrorType   EventType = "error"
)

// Message is the payload of a message event
type Message struct {
	Type           string `json:"type"`
	TranscriptType string `json:"transcriptType,omitempty"`
	Transcript     string `json:"transcript,omitempty"`
	Role           string `json:"role,omitempty"`
}

// IsFinalTranscript reports whether the message should be kept in the conversation
func (m Message) IsFinalTranscript() bool {
	return m.Type == "transcript" && m.TranscriptType == "final" && m.Transcript != "" && m.Role != ""
}

// Event is one item of a call's event stream
type Event struct {
	Type    EventType
	Message *Message
	Err     error
}

// Transcript is a saved final utterance
type Transcript struct {
	Role    string
	Content string
}
