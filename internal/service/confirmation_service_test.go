package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConfirmationService_BroadcastMarksOnlyFirstRequest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for id := int64(1); id <= 4; id++ {
		env.register(t, id)
	}
	env.notifier.failFor(2)

	report, err := env.confirmation.Broadcast(ctx, BroadcastForConfirmation)
	require.NoError(t, err)
	assert.Equal(t, BroadcastForConfirmation, report.Kind)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 3, report.Sent)
	assert.Equal(t, 1, report.Failed)
	assert.NotEmpty(t, report.ID.String())

	pending, err := env.confirmation.Targets(ctx, BroadcastForConfirmation)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, telegramIDs(pending))

	waiting, err := env.confirmation.Targets(ctx, BroadcastWithoutResponse)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 4}, telegramIDs(waiting))
}

func TestConfirmationService_TargetSets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for id := int64(1); id <= 4; id++ {
		env.register(t, id)
	}
	_, err := env.confirmation.Broadcast(ctx, BroadcastForConfirmation)
	require.NoError(t, err)

	env.register(t, 5)
	_, err = env.confirmation.Respond(ctx, 1, true)
	require.NoError(t, err)
	_, err = env.confirmation.Respond(ctx, 2, false)
	require.NoError(t, err)

	forConfirmation, err := env.confirmation.Targets(ctx, BroadcastForConfirmation)
	require.NoError(t, err)
	withoutResponse, err := env.confirmation.Targets(ctx, BroadcastWithoutResponse)
	require.NoError(t, err)
	all, err := env.confirmation.Targets(ctx, BroadcastAll)
	require.NoError(t, err)

	assert.Equal(t, []int64{5}, telegramIDs(forConfirmation))
	assert.Equal(t, []int64{3, 4}, telegramIDs(withoutResponse))
	assert.ElementsMatch(t, append(telegramIDs(forConfirmation), telegramIDs(withoutResponse)...), telegramIDs(all))

	_, err = env.confirmation.Targets(ctx, BroadcastKind("unknown"))
	require.Error(t, err)
}

func TestConfirmationService_RebroadcastKeepsFlag(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, 1)

	_, err := env.confirmation.Broadcast(ctx, BroadcastForConfirmation)
	require.NoError(t, err)

	report, err := env.confirmation.Broadcast(ctx, BroadcastAll)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)

	p, err := env.roster.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, p.ConfirmationSent)
	assert.Len(t, env.notifier.received(NotificationConfirmationRequest), 2)
}

func TestConfirmationService_EmptyBroadcast(t *testing.T) {
	env := newTestEnv(t)

	report, err := env.confirmation.Broadcast(context.Background(), BroadcastWithoutResponse)
	require.NoError(t, err)
	assert.Zero(t, report.Total)
	assert.Zero(t, report.Sent)
}

func TestConfirmationService_RespondFlipsAndRepeats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, 1)

	outcome, err := env.confirmation.Respond(ctx, 1, true)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, outcome.Status)
	assert.True(t, outcome.Changed)

	outcome, err = env.confirmation.Respond(ctx, 1, true)
	require.NoError(t, err)
	assert.False(t, outcome.Changed)
	assert.Equal(t, model.StatusConfirmed, env.statusOf(t, 1))

	outcome, err = env.confirmation.Respond(ctx, 1, false)
	require.NoError(t, err)
	assert.True(t, outcome.Changed)
	assert.Equal(t, model.StatusDeclined, env.statusOf(t, 1))

	outcome, err = env.confirmation.Respond(ctx, 1, true)
	require.NoError(t, err)
	assert.True(t, outcome.Changed)
	assert.Equal(t, model.StatusConfirmed, env.statusOf(t, 1))
}

func TestConfirmationService_ReserveCanConfirm(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.roster.SetLimit(ctx, 1)
	require.NoError(t, err)
	env.register(t, 1)
	env.register(t, 2)

	outcome, err := env.confirmation.Respond(ctx, 2, true)
	require.NoError(t, err)
	assert.True(t, outcome.Changed)
	assert.Equal(t, model.StatusConfirmed, env.statusOf(t, 2))
}

func TestConfirmationService_RespondUnknown(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.confirmation.Respond(context.Background(), 42, true)
	require.ErrorIs(t, err, ErrNotRegistered)
}

// answeringNotifier имитирует участника, который отвечает сразу после получения запроса
type answeringNotifier struct {
	respond func(telegramID int64)
}

func (n *answeringNotifier) Notify(ctx context.Context, telegramID int64, kind NotificationKind) error {
	n.respond(telegramID)
	return nil
}

func TestConfirmationService_AnsweredDuringBroadcastNotFlagged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, 1)
	env.register(t, 2)

	notifier := &answeringNotifier{}
	confirmation := NewConfirmationService(env.store, notifier, time.Second, zap.NewNop())
	notifier.respond = func(telegramID int64) {
		if telegramID == 1 {
			_, err := confirmation.Respond(ctx, telegramID, true)
			require.NoError(t, err)
		}
	}

	report, err := confirmation.Broadcast(ctx, BroadcastForConfirmation)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Sent)

	answered, err := env.roster.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, answered.Status)
	assert.False(t, answered.ConfirmationSent)

	waiting, err := env.roster.Get(ctx, 2)
	require.NoError(t, err)
	assert.True(t, waiting.ConfirmationSent)
}
