package formatting

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/Freeeeeet/event_registration_bot/internal/service"
)

const (
	// MessageLimit - максимальная длина текста сообщения Telegram
	MessageLimit = 4096
	// NameLimit - сколько символов ФИО показывается в списках
	NameLimit = 64

	// запас под строку "... и ещё N" и итог
	tailReserve = 96
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

// Truncate обрезает строку до limit символов, отмечая обрезку многоточием
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}

// boundedText набирает строки, пока текст помещается в одно сообщение.
// Длина считается по уже экранированному HTML, так что оценка с запасом.
type boundedText struct {
	sb    strings.Builder
	runes int
	limit int
}

func newBoundedText(header string) *boundedText {
	b := &boundedText{limit: MessageLimit - tailReserve}
	b.force(header)
	return b
}

// add дописывает строку; false - строка не поместилась и не записана
func (b *boundedText) add(line string) bool {
	n := utf8.RuneCountInString(line)
	if b.runes+n > b.limit {
		return false
	}
	b.sb.WriteString(line)
	b.runes += n
	return true
}

func (b *boundedText) force(s string) {
	b.sb.WriteString(s)
	b.runes += utf8.RuneCountInString(s)
}

func (b *boundedText) String() string {
	return b.sb.String()
}

// ListTitle возвращает заголовок списка для фильтра по статусу
func ListTitle(status model.ParticipantStatus) string {
	switch status {
	case model.StatusRegistered:
		return "Зарегистрированные"
	case model.StatusReserve:
		return "В резерве"
	case model.StatusConfirmed:
		return "Подтвердившие участие"
	case model.StatusDeclined:
		return "Отказавшиеся"
	default:
		return "Все участники"
	}
}

// ParticipantList форматирует страницу участников для админ-панели.
// Строки, не поместившиеся в одно сообщение, попадают в счётчик "и ещё".
func ParticipantList(title string, page *service.ParticipantPage) string {
	text := newBoundedText(fmt.Sprintf("📋 <b>%s</b>\n\n", html.EscapeString(title)))

	if page == nil || len(page.Items) == 0 {
		text.force("Список пуст.")
		return text.String()
	}

	hidden := page.Remaining
	for i, p := range page.Items {
		username := p.Username
		if username == "" {
			username = "no_username"
		}
		line := fmt.Sprintf("%d. %s (%s)\n   ID: %d | @%s\n",
			i+1,
			html.EscapeString(Truncate(p.FullName, NameLimit)),
			html.EscapeString(p.StudyGroup),
			p.ID,
			html.EscapeString(username))
		if !text.add(line) {
			hidden += len(page.Items) - i
			break
		}
	}

	if hidden > 0 {
		text.force(fmt.Sprintf("\n... и ещё %d %s", hidden, PluralizeParticipants(hidden)))
	}

	return text.String()
}

// Stats форматирует сводную статистику
func Stats(stats service.Stats) string {
	return fmt.Sprintf(
		"📊 <b>Статистика</b>\n\n"+
			"📝 Регистрация: %s\n"+
			"👥 Лимит мест: %s\n\n"+
			"📌 <b>Всего записей:</b> %d\n"+
			"✅ Зарегистрировано: %d\n"+
			"📋 В резерве: %d\n"+
			"✅ Подтвердили: %d\n"+
			"❌ Отказались: %d",
		RegistrationDisplay(stats.Settings.RegistrationOpen),
		LimitDisplay(stats.Settings),
		stats.Total,
		stats.Count(model.StatusRegistered),
		stats.Count(model.StatusReserve),
		stats.Count(model.StatusConfirmed),
		stats.Count(model.StatusDeclined),
	)
}

// ReserveQueue форматирует очередь резерва с позициями
func ReserveQueue(queue []*model.Participant) string {
	text := newBoundedText("📋 <b>Очередь резерва</b>\n\n")

	if len(queue) == 0 {
		text.force("Резерв пуст.")
		return text.String()
	}

	shown := 0
	for i, p := range queue[:min(len(queue), service.ParticipantListLimit)] {
		line := fmt.Sprintf("%d. %s (%s) - %s\n",
			i+1,
			html.EscapeString(Truncate(p.FullName, NameLimit)),
			html.EscapeString(p.StudyGroup),
			FormatDateTime(p.CreatedAt))
		if !text.add(line) {
			break
		}
		shown++
	}
	if rest := len(queue) - shown; rest > 0 {
		text.force(fmt.Sprintf("\n... и ещё %d %s", rest, PluralizeParticipants(rest)))
	}

	text.force(fmt.Sprintf("\n\nВсего в резерве: <b>%d</b>", len(queue)))
	return text.String()
}

// ParticipantCard - данные участника после регистрации или по /status
func ParticipantCard(p *model.Participant) string {
	return fmt.Sprintf(
		"📌 <b>Твои данные:</b>\n"+
			"👤 ФИО: %s\n"+
			"📚 Группа: %s\n"+
			"🎓 Курс: %d\n"+
			"🏛 Факультет: %s\n"+
			"📊 Статус: <b>%s</b>",
		html.EscapeString(p.FullName),
		html.EscapeString(p.StudyGroup),
		p.Course,
		html.EscapeString(p.Faculty),
		GetStatusDisplay(p.Status),
	)
}
