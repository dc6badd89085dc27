package admin

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/Freeeeeet/event_registration_bot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	kind, err := parseKind(callbacktypes.AdminBroadcastSend+"without_response", callbacktypes.AdminBroadcastSend)
	require.NoError(t, err)
	assert.Equal(t, service.BroadcastWithoutResponse, kind)

	_, err = parseKind(callbacktypes.AdminBroadcastSend+"everyone", callbacktypes.AdminBroadcastSend)
	assert.Error(t, err)

	_, err = parseKind(callbacktypes.AdminBroadcastSend, callbacktypes.AdminBroadcastSend)
	assert.Error(t, err)
}

func TestBroadcastTitlesCoverAllKinds(t *testing.T) {
	for _, kind := range []service.BroadcastKind{
		service.BroadcastForConfirmation,
		service.BroadcastWithoutResponse,
		service.BroadcastAll,
	} {
		assert.NotEmpty(t, broadcastTitles[kind], kind)
	}
}

func TestListFilters(t *testing.T) {
	assert.True(t, IsListCallback(callbacktypes.AdminUsersAll))
	assert.True(t, IsListCallback(callbacktypes.AdminUsersDeclined))
	assert.False(t, IsListCallback(callbacktypes.AdminDeleteUser))
	assert.Equal(t, model.StatusReserve, listFilters[callbacktypes.AdminUsersReserve])
}

func TestExportFailure(t *testing.T) {
	text := ExportFailure(fmt.Errorf("%w: %w", service.ErrIntegration, errors.New("quota <exceeded>")))
	assert.Contains(t, text, "Ошибка экспорта")
	assert.Contains(t, text, "quota &lt;exceeded&gt;")

	assert.Contains(t, ExportFailure(service.ErrExportDisabled), "не настроен")
}

func TestPromotionTexts(t *testing.T) {
	assert.Contains(t, PromotionPreview(3), "первые <b>3</b> участника")
	assert.Contains(t, PromotionResult(&service.Promotion{
		Promoted: make([]*model.Participant, 2),
		Notified: 1,
		Failed:   1,
	}), "⬆️ Переведено: 2")
}

func TestExportSuccess(t *testing.T) {
	assert.Contains(t, ExportSuccess(&service.ExportReport{Rows: 5}), "Экспортировано: 5 записей")
}
