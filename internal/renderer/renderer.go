package renderer

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// DefaultWidth is the wrap width used when none is given
const DefaultWidth = 100

var (
	mu        sync.Mutex
	renderers = map[int]*glamour.TermRenderer{}
)

func rendererFor(width int) (*glamour.TermRenderer, error) {
	if width <= 0 {
		width = DefaultWidth
	}

	mu.Lock()
	defer mu.Unlock()
	if r, ok := renderers[width]; ok {
		return r, nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderers[width] = r
	return r, nil
}

// RenderMarkdown renders markdown text with glamour for terminal display
func RenderMarkdown(markdown string) string {
	return RenderWidth(markdown, DefaultWidth)
}

// RenderWidth renders markdown wrapped at width, falling back to the raw text
func RenderWidth(markdown string, width int) string {
	r, err := rendererFor(width)
	if err != nil {
		return markdown
	}

	rendered, err := r.Render(markdown)
	if err != nil {
		return markdown
	}

	return strings.TrimSpace(rendered)
}
