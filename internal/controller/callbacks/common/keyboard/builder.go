package keyboard

import "github.com/go-telegram/bot/models"

// Builder упрощает создание inline клавиатур
type Builder struct {
	rows [][]models.InlineKeyboardButton
}

// NewBuilder создаёт новый builder клавиатуры
func NewBuilder() *Builder {
	return &Builder{
		rows: make([][]models.InlineKeyboardButton, 0),
	}
}

// Row добавляет новый ряд кнопок
func (b *Builder) Row(buttons ...models.InlineKeyboardButton) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

// Column добавляет каждую кнопку отдельным рядом
func (b *Builder) Column(buttons ...models.InlineKeyboardButton) *Builder {
	for _, button := range buttons {
		b.rows = append(b.rows, []models.InlineKeyboardButton{button})
	}
	return b
}

// Button создаёт кнопку
func Button(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// URLButton создаёт кнопку с URL
func URLButton(text, url string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text: text,
		URL:  url,
	}
}

// Build создаёт финальную клавиатуру
func (b *Builder) Build() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: b.rows,
	}
}

// ReplyBuilder собирает обычную (reply) клавиатуру из текстовых кнопок
type ReplyBuilder struct {
	rows [][]models.KeyboardButton
}

func NewReplyBuilder() *ReplyBuilder {
	return &ReplyBuilder{}
}

// Row добавляет ряд кнопок с указанными подписями
func (b *ReplyBuilder) Row(texts ...string) *ReplyBuilder {
	if len(texts) == 0 {
		return b
	}
	row := make([]models.KeyboardButton, 0, len(texts))
	for _, text := range texts {
		row = append(row, models.KeyboardButton{Text: text})
	}
	b.rows = append(b.rows, row)
	return b
}

// Grid раскладывает подписи рядами по perRow штук
func (b *ReplyBuilder) Grid(perRow int, texts ...string) *ReplyBuilder {
	for start := 0; start < len(texts); start += perRow {
		end := min(start+perRow, len(texts))
		b.Row(texts[start:end]...)
	}
	return b
}

// Build создаёт клавиатуру с подгонкой размера под экран
func (b *ReplyBuilder) Build() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard:       b.rows,
		ResizeKeyboard: true,
	}
}
