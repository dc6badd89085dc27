package sheets

import (
	"testing"
	"time"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func participant(id int64, name string, status model.ParticipantStatus) *model.Participant {
	return &model.Participant{
		ID:         id,
		TelegramID: 1000 + id,
		Username:   "user",
		FullName:   name,
		StudyGroup: "ПИ22-1",
		Course:     3,
		VKLink:     "https://vk.com/id1",
		TGLink:     "https://t.me/user",
		Phone:      "+79991234567",
		Faculty:    "ФФ",
		Source:     "От одногруппников",
		Status:     status,
		CreatedAt:  time.Date(2025, 9, 1, 12, 30, 5, 0, time.UTC),
	}
}

func TestRegistrationRows(t *testing.T) {
	rows := RegistrationRows([]*model.Participant{
		participant(1, "Иванов Иван", model.StatusRegistered),
		participant(2, "Петров Пётр", model.StatusReserve),
	})

	require.Len(t, rows, 3)
	assert.Len(t, rows[0], 13)
	assert.Equal(t, "Дата регистрации", rows[0][12])

	first := rows[1]
	require.Len(t, first, 13)
	assert.Equal(t, int64(1), first[0])
	assert.Equal(t, int64(1001), first[1])
	assert.Equal(t, "Иванов Иван", first[3])
	assert.Equal(t, "registered", first[11])
	assert.Equal(t, "2025-09-01 12:30:05", first[12])
	assert.Equal(t, "reserve", rows[2][11])
}

func TestRegistrationRows_Empty(t *testing.T) {
	rows := RegistrationRows(nil)
	require.Len(t, rows, 1)
}

func TestConfirmationRows(t *testing.T) {
	rows := ConfirmationRows(
		[]*model.Participant{participant(1, "А А", model.StatusConfirmed)},
		[]*model.Participant{
			participant(2, "Б Б", model.StatusDeclined),
			participant(3, "В В", model.StatusDeclined),
		},
	)

	require.Len(t, rows, 4)
	assert.Equal(t, confirmationHeaders, rows[0])
	assert.Equal(t, attendingLabel, rows[1][5])
	assert.Equal(t, notAttendingLabel, rows[2][5])
	assert.Equal(t, "В В", rows[3][0])
}

func TestConfirmationFormat(t *testing.T) {
	requests := confirmationFormat(7, 2, 3)
	require.Len(t, requests, 4)

	green := requests[2].RepeatCell
	assert.Equal(t, int64(1), green.Range.StartRowIndex)
	assert.Equal(t, int64(3), green.Range.EndRowIndex)
	assert.Equal(t, confirmedColor, green.Cell.UserEnteredFormat.BackgroundColor)

	red := requests[3].RepeatCell
	assert.Equal(t, int64(3), red.Range.StartRowIndex)
	assert.Equal(t, int64(6), red.Range.EndRowIndex)
	assert.Equal(t, declinedColor, red.Cell.UserEnteredFormat.BackgroundColor)
	assert.Equal(t, int64(7), red.Range.SheetId)

	assert.Len(t, confirmationFormat(7, 0, 0), 2)
	assert.Len(t, confirmationFormat(7, 0, 1), 3)
}
