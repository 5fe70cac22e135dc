package telegram

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
)

func TestMatchCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		text    string
		want    bool
	}{
		{"plain", "start", "/start", true},
		{"group form", "start", "/start@MovieFlowBot", true},
		{"deep link payload", "start", "/start ref42", true},
		{"group form with argument", "search", "/search@MovieFlowBot матрица", true},
		{"notifications group form", "notifications", "/notifications@MovieFlowBot", true},
		{"longer command", "start", "/starting", false},
		{"other command", "search", "/start", false},
		{"plain text", "start", "start", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchCommand(tt.command)(textUpdate(tt.text)))
		})
	}
}

func TestMatchCommand_IgnoresCallbacks(t *testing.T) {
	assert.False(t, matchCommand("start")(callbackUpdate("back")))
	assert.False(t, matchCommand("start")(&models.Update{}))
}
