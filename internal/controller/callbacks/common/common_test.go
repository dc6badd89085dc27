package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Freeeeeet/event_registration_bot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrNotAdmin, "Нет доступа"},
		{service.ErrUnauthorized, "Нет доступа"},
		{fmt.Errorf("record confirmation response: %w", service.ErrNotRegistered), "Ты не зарегистрирован!"},
		{service.ErrNotFound, "❌ Участник с таким ID не найден."},
		{errors.New("boom"), "❌ Произошла ошибка"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorMessage(tt.err), tt.err.Error())
	}
}

func TestParamFromCallback(t *testing.T) {
	param, err := ParamFromCallback("admin_broadcast:all", "admin_broadcast:")
	require.NoError(t, err)
	assert.Equal(t, "all", param)

	_, err = ParamFromCallback("admin_broadcast:", "admin_broadcast:")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParamFromCallback("admin_stats", "admin_broadcast:")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestIsMessageNotModifiedError(t *testing.T) {
	assert.False(t, IsMessageNotModifiedError(nil))
	assert.True(t, IsMessageNotModifiedError(errors.New("bad request, Bad Request: message is not modified: specified new message content")))
	assert.False(t, IsMessageNotModifiedError(errors.New("forbidden")))
}
