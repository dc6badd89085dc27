package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const adminID int64 = 777

type fakeExporter struct {
	err           error
	registrations []*model.Participant
	confirmed     []*model.Participant
	declined      []*model.Participant
}

func (e *fakeExporter) WriteRegistrations(ctx context.Context, participants []*model.Participant) error {
	if e.err != nil {
		return e.err
	}
	e.registrations = participants
	return nil
}

func (e *fakeExporter) WriteConfirmations(ctx context.Context, confirmed, declined []*model.Participant) error {
	if e.err != nil {
		return e.err
	}
	e.confirmed, e.declined = confirmed, declined
	return nil
}

func (e *fakeExporter) URL() string {
	return "https://docs.google.com/spreadsheets/d/test"
}

func newTestAdmin(env *testEnv, exporter Exporter) *AdminService {
	export := NewExportService(env.store, exporter, zap.NewNop())
	return NewAdminService([]int64{adminID}, env.roster, env.confirmation, export, zap.NewNop())
}

func TestAdminService_RejectsNonAdmins(t *testing.T) {
	env := newTestEnv(t)
	admin := newTestAdmin(env, &fakeExporter{})
	ctx := context.Background()
	p := env.register(t, 1)
	const stranger int64 = 1

	assert.False(t, admin.IsAdmin(stranger))
	assert.True(t, admin.IsAdmin(adminID))

	_, err := admin.Stats(ctx, stranger)
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = admin.Settings(ctx, stranger)
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = admin.ToggleRegistration(ctx, stranger)
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = admin.SetLimit(ctx, stranger, 1)
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = admin.ListParticipants(ctx, stranger)
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = admin.DeleteParticipant(ctx, stranger, p.ID)
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = admin.ReserveQueue(ctx, stranger)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.ErrorIs(t, admin.ValidatePromotion(ctx, stranger, 1), ErrUnauthorized)
	_, err = admin.Promote(ctx, stranger, 1)
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = admin.BroadcastPreview(ctx, stranger, BroadcastAll)
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = admin.Broadcast(ctx, stranger, BroadcastAll)
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = admin.ExportRegistrations(ctx, stranger)
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = admin.ExportConfirmations(ctx, stranger)
	require.ErrorIs(t, err, ErrUnauthorized)

	// Ничего не изменилось
	settings, err := env.roster.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
	assert.Equal(t, model.StatusRegistered, env.statusOf(t, 1))
	assert.Empty(t, env.notifier.received(NotificationConfirmationRequest))
}

func TestAdminService_ListParticipantsCapped(t *testing.T) {
	env := newTestEnv(t)
	admin := newTestAdmin(env, nil)

	for id := int64(1); id <= 60; id++ {
		env.register(t, id)
	}

	page, err := admin.ListParticipants(context.Background(), adminID)
	require.NoError(t, err)
	assert.Len(t, page.Items, ParticipantListLimit)
	assert.Equal(t, 60, page.Total)
	assert.Equal(t, 10, page.Remaining)
	assert.Equal(t, int64(1), page.Items[0].TelegramID)

	page, err = admin.ListParticipants(context.Background(), adminID, model.StatusConfirmed)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.Remaining)
}

func TestAdminService_PromotionTwoPhase(t *testing.T) {
	env := newTestEnv(t)
	admin := newTestAdmin(env, nil)
	ctx := context.Background()

	queue, err := admin.ReserveQueue(ctx, adminID)
	require.NoError(t, err)
	assert.Empty(t, queue)
	require.ErrorIs(t, admin.ValidatePromotion(ctx, adminID, 1), ErrInvalidPromotionCount)

	_, err = admin.SetLimit(ctx, adminID, 1)
	require.NoError(t, err)
	for id := int64(1); id <= 3; id++ {
		env.register(t, id)
	}

	require.NoError(t, admin.ValidatePromotion(ctx, adminID, 2))
	require.ErrorIs(t, admin.ValidatePromotion(ctx, adminID, 3), ErrInvalidPromotionCount)
	assert.Equal(t, model.StatusReserve, env.statusOf(t, 2))

	result, err := admin.Promote(ctx, adminID, 2)
	require.NoError(t, err)
	assert.Len(t, result.Promoted, 2)
}

func TestAdminService_BroadcastPreview(t *testing.T) {
	env := newTestEnv(t)
	admin := newTestAdmin(env, nil)
	ctx := context.Background()
	env.register(t, 1)
	env.register(t, 2)

	count, err := admin.BroadcastPreview(ctx, adminID, BroadcastForConfirmation)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Empty(t, env.notifier.received(NotificationConfirmationRequest))

	report, err := admin.Broadcast(ctx, adminID, BroadcastForConfirmation)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Sent)
}

func TestAdminService_Export(t *testing.T) {
	env := newTestEnv(t)
	exporter := &fakeExporter{}
	admin := newTestAdmin(env, exporter)
	ctx := context.Background()

	for id := int64(1); id <= 3; id++ {
		env.register(t, id)
	}
	_, err := env.confirmation.Respond(ctx, 1, true)
	require.NoError(t, err)
	_, err = env.confirmation.Respond(ctx, 2, false)
	require.NoError(t, err)

	report, err := admin.ExportRegistrations(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Rows)
	assert.Equal(t, exporter.URL(), report.URL)
	assert.Equal(t, exporter.URL(), admin.SheetURL())
	assert.Equal(t, []int64{1, 2, 3}, telegramIDs(exporter.registrations))

	report, err = admin.ExportConfirmations(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Rows)
	assert.Equal(t, []int64{1}, telegramIDs(exporter.confirmed))
	assert.Equal(t, []int64{2}, telegramIDs(exporter.declined))
}

func TestAdminService_ExportFailureLeavesRosterIntact(t *testing.T) {
	env := newTestEnv(t)
	cause := errors.New("quota exceeded")
	admin := newTestAdmin(env, &fakeExporter{err: cause})
	ctx := context.Background()
	env.register(t, 1)

	_, err := admin.ExportRegistrations(ctx, adminID)
	require.ErrorIs(t, err, ErrIntegration)
	require.ErrorIs(t, err, cause)

	_, err = admin.ExportConfirmations(ctx, adminID)
	require.ErrorIs(t, err, ErrIntegration)

	stats, err := env.roster.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, model.StatusRegistered, env.statusOf(t, 1))
}

func TestAdminService_ExportDisabled(t *testing.T) {
	env := newTestEnv(t)
	admin := newTestAdmin(env, nil)

	_, err := admin.ExportRegistrations(context.Background(), adminID)
	require.ErrorIs(t, err, ErrExportDisabled)
	assert.Empty(t, admin.SheetURL())
}
