package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSplitMessage_Short(t *testing.T) {
	assert.Equal(t, []string{"привет"}, splitMessage("привет"))
}

func TestSplitMessage_OnLineBoundaries(t *testing.T) {
	block := strings.Repeat("a", 3000)
	parts := splitMessage(block + "\n" + block)

	assert.Equal(t, []string{block, block}, parts)
}

func TestSplitMessage_LongLineKeepsRunes(t *testing.T) {
	line := strings.Repeat("я", 5000)
	parts := splitMessage(line)

	assert.Greater(t, len(parts), 1)
	for _, p := range parts {
		assert.LessOrEqual(t, len(p), MaxMessageLength)
		assert.True(t, utf8.ValidString(p))
	}
	assert.Equal(t, line, strings.Join(parts, ""))
}
