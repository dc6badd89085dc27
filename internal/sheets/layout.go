package sheets

import (
	"github.com/Freeeeeet/event_registration_bot/internal/model"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

const (
	SheetRegistrations = "Регистрации"
	SheetConfirmations = "Подтверждения"

	dateLayout = "2006-01-02 15:04:05"

	// Размер нового листа
	defaultRows    = 1000
	defaultColumns = 15
)

var registrationHeaders = []interface{}{
	"ID", "Telegram ID", "Username", "ФИО", "Группа",
	"Курс", "Факультет", "ВКонтакте", "Telegram",
	"Телефон", "Источник", "Статус", "Дата регистрации",
}

var confirmationHeaders = []interface{}{
	"ФИО", "Группа", "Курс", "Факультет", "Телефон", "Статус",
}

const (
	attendingLabel    = "✅ Придёт"
	notAttendingLabel = "❌ Не придёт"
)

var (
	headerColor    = &sheetsv4.Color{Red: 0.2, Green: 0.4, Blue: 0.8}
	headerText     = &sheetsv4.Color{Red: 1, Green: 1, Blue: 1}
	confirmedColor = &sheetsv4.Color{Red: 0.85, Green: 0.95, Blue: 0.85}
	declinedColor  = &sheetsv4.Color{Red: 0.95, Green: 0.85, Blue: 0.85}
)

// RegistrationRows строит лист "Регистрации": заголовок и по строке на участника
func RegistrationRows(participants []*model.Participant) [][]interface{} {
	rows := make([][]interface{}, 0, len(participants)+1)
	rows = append(rows, registrationHeaders)

	for _, p := range participants {
		rows = append(rows, []interface{}{
			p.ID,
			p.TelegramID,
			p.Username,
			p.FullName,
			p.StudyGroup,
			p.Course,
			p.Faculty,
			p.VKLink,
			p.TGLink,
			p.Phone,
			p.Source,
			string(p.Status),
			p.CreatedAt.Format(dateLayout),
		})
	}
	return rows
}

// ConfirmationRows строит лист "Подтверждения": сначала подтвердившие, затем отказавшиеся
func ConfirmationRows(confirmed, declined []*model.Participant) [][]interface{} {
	rows := make([][]interface{}, 0, len(confirmed)+len(declined)+1)
	rows = append(rows, confirmationHeaders)

	for _, p := range confirmed {
		rows = append(rows, confirmationRow(p, attendingLabel))
	}
	for _, p := range declined {
		rows = append(rows, confirmationRow(p, notAttendingLabel))
	}
	return rows
}

func confirmationRow(p *model.Participant, label string) []interface{} {
	return []interface{}{p.FullName, p.StudyGroup, p.Course, p.Faculty, p.Phone, label}
}

// headerFormat - синий фон, белый жирный текст, по центру
func headerFormat(sheetID int64, columns int) *sheetsv4.Request {
	return &sheetsv4.Request{
		RepeatCell: &sheetsv4.RepeatCellRequest{
			Range: &sheetsv4.GridRange{
				SheetId:          sheetID,
				StartRowIndex:    0,
				EndRowIndex:      1,
				StartColumnIndex: 0,
				EndColumnIndex:   int64(columns),
			},
			Cell: &sheetsv4.CellData{
				UserEnteredFormat: &sheetsv4.CellFormat{
					BackgroundColor: headerColor,
					TextFormat: &sheetsv4.TextFormat{
						Bold:            true,
						ForegroundColor: headerText,
					},
					HorizontalAlignment: "CENTER",
				},
			},
			Fields: "userEnteredFormat(backgroundColor,textFormat,horizontalAlignment)",
		},
	}
}

// rowsBackground закрашивает строки [from, to) данных листа
func rowsBackground(sheetID int64, from, to, columns int, color *sheetsv4.Color) *sheetsv4.Request {
	return &sheetsv4.Request{
		RepeatCell: &sheetsv4.RepeatCellRequest{
			Range: &sheetsv4.GridRange{
				SheetId:          sheetID,
				StartRowIndex:    int64(from),
				EndRowIndex:      int64(to),
				StartColumnIndex: 0,
				EndColumnIndex:   int64(columns),
			},
			Cell: &sheetsv4.CellData{
				UserEnteredFormat: &sheetsv4.CellFormat{BackgroundColor: color},
			},
			Fields: "userEnteredFormat.backgroundColor",
		},
	}
}

// resetBackground снимает заливку со всех строк под заголовком, оставшуюся от прошлой выгрузки
func resetBackground(sheetID int64) *sheetsv4.Request {
	return &sheetsv4.Request{
		RepeatCell: &sheetsv4.RepeatCellRequest{
			Range: &sheetsv4.GridRange{
				SheetId:       sheetID,
				StartRowIndex: 1,
			},
			Cell:   &sheetsv4.CellData{UserEnteredFormat: &sheetsv4.CellFormat{}},
			Fields: "userEnteredFormat.backgroundColor",
		},
	}
}

// confirmationFormat - заголовок плюс зелёные и красные блоки строк
func confirmationFormat(sheetID int64, confirmed, declined int) []*sheetsv4.Request {
	columns := len(confirmationHeaders)
	requests := []*sheetsv4.Request{
		resetBackground(sheetID),
		headerFormat(sheetID, columns),
	}

	if confirmed > 0 {
		requests = append(requests, rowsBackground(sheetID, 1, 1+confirmed, columns, confirmedColor))
	}
	if declined > 0 {
		start := 1 + confirmed
		requests = append(requests, rowsBackground(sheetID, start, start+declined, columns, declinedColor))
	}
	return requests
}
