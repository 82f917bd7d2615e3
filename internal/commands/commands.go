package commands

import (
	"errors"
	"strings"
)

// Marker prefixes every command typed into the chat or spoken to the agent
const Marker = "--"

// ErrInvalidCommand is returned when text without the marker is parsed as a command
var ErrInvalidCommand = errors.New("invalid command")

// Command is a parsed unit of user intent
type Command struct {
	Raw  string
	Name string
	Args []string
}

// Effect names a side effect the caller must perform after a command runs
type Effect int

const (
	NoEffect Effect = iota
	ReloadEffect
	ClearConsoleEffect
)

func (e Effect) String() string {
	switch e {
	case ReloadEffect:
		return "reload"
	case ClearConsoleEffect:
		return "clear-console"
	}
	return "none"
}

// Result is the outcome of executing a command.
// EmergencyColors is nil when the command has no opinion on the mode.
type Result struct {
	Success         bool
	Message         string
	ClearChat       bool
	EmergencyColors *bool
	Effect          Effect
}

// Messages shown to the user. They are part of the command surface and must not change.
const (
	MsgReloaded     = "Page reloaded."
	MsgEmergencyOn  = "Emergency Mode Activated."
	MsgEmergencyOff = "Emergency Mode Deactivated."
	MsgHelp         = "Available commands: --reset or --reload, --help, --clear, --emergency, --normal"
	MsgCleared      = "Console cleared."
	MsgInvalid      = "Invalid command."
)

// IsCommand reports whether text, once trimmed, starts with the command marker
func IsCommand(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), Marker)
}

// Parse splits a command string into its name and arguments.
// The name is the first whitespace-delimited token after the marker, lower-cased.
func Parse(text string) (Command, error) {
	if !IsCommand(text) {
		return Command{}, ErrInvalidCommand
	}

	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(text), Marker))
	cmd := Command{Raw: text}
	if len(fields) > 0 {
		cmd.Name = strings.ToLower(fields[0])
		cmd.Args = fields[1:]
	}
	return cmd, nil
}

// Handle parses and executes a command string.
// Callers gate with IsCommand first; text without the marker yields a failed result.
func Handle(text string) Result {
	cmd, err := Parse(text)
	if err != nil {
		return Result{Success: false, Message: MsgInvalid}
	}
	return Dispatch(cmd)
}

// Dispatch executes an already parsed command
func Dispatch(cmd Command) Result {
	switch cmd.Name {
	case "reset", "reload":
		return Result{Success: true, Message: MsgReloaded, Effect: ReloadEffect}

	case "emergency", "alarm", "alert", "!":
		return Result{Success: true, Message: MsgEmergencyOn, EmergencyColors: flag(true)}

	case "normal", ".":
		return Result{Success: true, Message: MsgEmergencyOff, EmergencyColors: flag(false)}

	case "help":
		return Result{Success: true, Message: MsgHelp}

	case "clear":
		return Result{Success: true, Message: MsgCleared, ClearChat: true, Effect: ClearConsoleEffect}

	default:
		return Result{Success: false, Message: "Unknown command: " + cmd.Name}
	}
}

// Names returns the primary command names in help order
func Names() []string {
	return []string{"reload", "reset", "help", "clear", "emergency", "normal"}
}

// Completions returns every spelling a user may type, marker included
func Completions() []string {
	names := append(Names(), "alarm", "alert", "!", ".")
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = Marker + n
	}
	return out
}

func flag(v bool) *bool {
	return &v
}
