package handlers

import (
	"fmt"
	"html"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/Freeeeeet/event_registration_bot/internal/service"
)

// Подсказки шагов регистрации
const (
	promptFullName = "📝 <b>Регистрация</b>\n\nВведи своё <b>ФИО</b> (полностью):"
	promptGroup    = "📚 Введи свою <b>учебную группу</b>\n(Формат: ПМ25-1):"
	promptCourse   = "✅ Группа <b>%s</b> сохранена!\n\n🎓 Выбери свой <b>курс</b>:"
	promptVKLink   = "🔗 Введи <b>ссылку на свой профиль ВКонтакте</b>\n(Например: https://vk.com/id123456):"
	promptTGLink   = "📱 Введи <b>ссылку на свой Telegram</b>\n(Например: https://t.me/username или @username):"
	promptPhone    = "📞 Введи свой <b>номер телефона</b>\n(Например: +79001234567):"
	promptFaculty  = "🏛 Выбери свой <b>факультет</b>:"
	promptSource   = "📢 <b>Откуда ты узнал о проекте?</b>"
	promptConsent  = "📋 <b>Согласие на обработку персональных данных</b>\n\n" +
		"Нажимая кнопку «Согласен», ты даёшь согласие на обработку " +
		"своих персональных данных в соответствии с законодательством РФ."
)

// StepPrompt возвращает вопрос для шага; group нужен только для шага курса
func StepPrompt(step model.RegistrationStep, group string) string {
	switch step {
	case model.StepFullName:
		return promptFullName
	case model.StepStudyGroup:
		return promptGroup
	case model.StepCourse:
		return fmt.Sprintf(promptCourse, html.EscapeString(group))
	case model.StepVKLink:
		return promptVKLink
	case model.StepTGLink:
		return promptTGLink
	case model.StepPhone:
		return promptPhone
	case model.StepFaculty:
		return promptFaculty
	case model.StepSource:
		return promptSource
	case model.StepConsent:
		return promptConsent
	default:
		return ""
	}
}

var validationMessages = map[string]string{
	service.FieldFullName:   "❌ Пожалуйста, введи полное ФИО (минимум имя и фамилия).",
	service.FieldStudyGroup: "❌ Название группы слишком длинное или пустое.\nВведи корректное название своей учебной группы.",
	service.FieldCourse:     "❌ Выбери курс, нажав на одну из кнопок (1-4).",
	service.FieldVKLink:     "❌ Неверный формат ссылки.\nВведи ссылку в формате: <b>https://vk.com/...</b>",
	service.FieldTGLink:     "❌ Неверный формат.\nВведи ссылку в формате: <b>https://t.me/username</b> или <b>@username</b>",
	service.FieldPhone:      "❌ Неверный формат номера.\nВведи номер в формате: <b>+79001234567</b>",
	service.FieldFaculty:    "❌ Выбери факультет, нажав на одну из кнопок.",
	service.FieldSource:     "❌ Выбери вариант, нажав на одну из кнопок.",
	service.FieldConsent:    "❌ Для завершения регистрации необходимо дать согласие.",
	service.FieldLimit:      "❌ Введи корректное число (0 или больше)",
	service.FieldID:         "❌ Введи корректный ID (число)",
}

// ValidationMessage возвращает подсказку для отклонённого поля
func ValidationMessage(verr *service.ValidationError) string {
	if msg, ok := validationMessages[verr.Field]; ok {
		return msg
	}
	return "❌ Некорректное значение, попробуй ещё раз."
}

const (
	msgClosed = "❌ <b>Регистрация закрыта</b>\n\n" +
		"К сожалению, регистрация на проект в данный момент недоступна. " +
		"Следите за обновлениями!"
	msgClosedShort        = "❌ <b>Регистрация закрыта</b>"
	msgAlreadyRegistered  = "Ты уже зарегистрирован!"
	msgRegistrationFailed = "❌ Произошла ошибка при регистрации. Попробуй позже или обратись к координатору."
	msgCancelled          = "❌ Регистрация отменена.\n\nНажми /start чтобы начать заново."
	msgReserveNotice      = "\n\nК сожалению, все места уже заняты, но ты добавлен в резерв. " +
		"Если кто-то откажется, мы тебе сообщим!"
	msgInternalError = "❌ Произошла ошибка. Попробуй позже."
)
