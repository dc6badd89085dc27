package participant

import (
	"testing"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/Freeeeeet/event_registration_bot/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestReplyFor(t *testing.T) {
	tests := []struct {
		name      string
		attending bool
		changed   bool
		answer    string
		alert     bool
	}{
		{"confirm", true, true, "Участие подтверждено!", false},
		{"repeat confirm", true, false, "Ты уже подтвердил участие!", true},
		{"decline", false, true, "Отказ зафиксирован", false},
		{"repeat decline", false, false, "Ты уже отказался от участия!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := model.StatusDeclined
			if tt.attending {
				status = model.StatusConfirmed
			}

			reply := ReplyFor(tt.attending, &service.ResponseOutcome{Status: status, Changed: tt.changed})
			assert.Equal(t, tt.answer, reply.Answer)
			assert.Equal(t, tt.alert, reply.Alert)
			assert.NotEmpty(t, reply.Text)
		})
	}
}
