package service

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
)

// Поля анкеты
const (
	FieldFullName   = "full_name"
	FieldStudyGroup = "study_group"
	FieldCourse     = "course"
	FieldVKLink     = "vk_link"
	FieldTGLink     = "tg_link"
	FieldPhone      = "phone"
	FieldFaculty    = "faculty"
	FieldSource     = "source"
	FieldConsent    = "consent"
	FieldLimit      = "limit"
	FieldID         = "id"
	FieldStatus     = "status"
)

// Причины отклонения
const (
	ReasonTooFewWords   = "too_few_words"
	ReasonEmpty         = "empty"
	ReasonTooLong       = "too_long"
	ReasonNotAnOption   = "not_an_option"
	ReasonBadFormat     = "bad_format"
	ReasonNoConsent     = "no_consent"
	ReasonNegative      = "negative"
	ReasonNotANumber    = "not_a_number"
	StudyGroupMaxLength = 30
)

var (
	vkLinkRe     = regexp.MustCompile(`^https?://(www\.)?vk\.com/`)
	tgLinkRe     = regexp.MustCompile(`^https?://(www\.)?t\.me/`)
	tgHandleRe   = regexp.MustCompile(`^@\w+$`)
	phoneStripRe = regexp.MustCompile(`[\s\p{Z}\-()]`)
	phoneRe      = regexp.MustCompile(`^(\+7|8|7)\d{10}$`)
)

// ValidateFullName требует минимум имя и фамилию
func ValidateFullName(input string) (string, error) {
	name := strings.TrimSpace(input)
	if len(strings.Fields(name)) < 2 {
		return "", reject(FieldFullName, ReasonTooFewWords)
	}
	return name, nil
}

// ValidateStudyGroup проверяет длину и приводит группу к верхнему регистру
func ValidateStudyGroup(input string) (string, error) {
	group := strings.TrimSpace(input)
	if group == "" {
		return "", reject(FieldStudyGroup, ReasonEmpty)
	}
	if utf8.RuneCountInString(group) > StudyGroupMaxLength {
		return "", reject(FieldStudyGroup, ReasonTooLong)
	}
	return strings.ToUpper(group), nil
}

// ValidateCourse принимает только "1".."4"
func ValidateCourse(input string) (int, error) {
	value := strings.TrimSpace(input)
	if !slices.Contains(model.Courses, value) {
		return 0, reject(FieldCourse, ReasonNotAnOption)
	}
	course, err := strconv.Atoi(value)
	if err != nil {
		return 0, reject(FieldCourse, ReasonNotAnOption)
	}
	return course, nil
}

// ValidateVKLink проверяет ссылку на профиль ВКонтакте
func ValidateVKLink(input string) (string, error) {
	link := strings.TrimSpace(input)
	if !vkLinkRe.MatchString(link) {
		return "", reject(FieldVKLink, ReasonBadFormat)
	}
	return link, nil
}

// ValidateTGLink принимает ссылку t.me или @username; @username превращается в ссылку
func ValidateTGLink(input string) (string, error) {
	link := strings.TrimSpace(input)
	switch {
	case tgLinkRe.MatchString(link):
		return link, nil
	case tgHandleRe.MatchString(link):
		return "https://t.me/" + strings.TrimPrefix(link, "@"), nil
	default:
		return "", reject(FieldTGLink, ReasonBadFormat)
	}
}

// ValidatePhone принимает +7XXXXXXXXXX, 8XXXXXXXXXX и 7XXXXXXXXXX
// (пробелы, дефисы и скобки игнорируются) и приводит номер к виду +7XXXXXXXXXX
func ValidatePhone(input string) (string, error) {
	phone := phoneStripRe.ReplaceAllString(input, "")
	if !phoneRe.MatchString(phone) {
		return "", reject(FieldPhone, ReasonBadFormat)
	}

	switch {
	case strings.HasPrefix(phone, "8"):
		phone = "+7" + phone[1:]
	case strings.HasPrefix(phone, "7"):
		phone = "+" + phone
	}
	return phone, nil
}

// ValidateFaculty требует точного совпадения с вариантом из списка
func ValidateFaculty(input string) (string, error) {
	return validateOption(FieldFaculty, input, model.Faculties)
}

// ValidateSource требует точного совпадения с вариантом из списка
func ValidateSource(input string) (string, error) {
	return validateOption(FieldSource, input, model.Sources)
}

// ValidateConsent принимает только кнопку согласия
func ValidateConsent(input string) error {
	if strings.TrimSpace(input) != model.ConsentToken {
		return reject(FieldConsent, ReasonNoConsent)
	}
	return nil
}

// ParseLimit разбирает лимит мест, введённый администратором (0 = без лимита)
func ParseLimit(input string) (int, error) {
	limit, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, reject(FieldLimit, ReasonNotANumber)
	}
	if limit < 0 {
		return 0, reject(FieldLimit, ReasonNegative)
	}
	return limit, nil
}

// ParseID разбирает числовой идентификатор, введённый администратором
func ParseID(input string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil {
		return 0, reject(FieldID, ReasonNotANumber)
	}
	return id, nil
}

func validateOption(field, input string, options []string) (string, error) {
	value := strings.TrimSpace(input)
	if !slices.Contains(options, value) {
		return "", reject(field, ReasonNotAnOption)
	}
	return value, nil
}
