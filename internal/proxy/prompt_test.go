package proxy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt_KeepsUserTextVerbatim(t *testing.T) {
	got := BuildPrompt("line one\nsay \"hi\"")

	assert.Contains(t, got, "\"line one\nsay \"hi\"\"")
	assert.NotContains(t, got, `\n`)
	assert.True(t, strings.HasPrefix(got, "You are F.R.I.D.A.Y."))
	assert.True(t, strings.HasSuffix(got, "Thank you for your assistance, F.R.I.D.A.Y. I appreciate your help."))
}
