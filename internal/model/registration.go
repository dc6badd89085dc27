package model

import "github.com/google/uuid"

// RegistrationStep - шаг диалога регистрации
type RegistrationStep int

const (
	StepIdle RegistrationStep = iota
	StepFullName
	StepStudyGroup
	StepCourse
	StepVKLink
	StepTGLink
	StepPhone
	StepFaculty
	StepSource
	StepConsent
	StepCommitted
)

var stepNames = map[RegistrationStep]string{
	StepIdle:       "idle",
	StepFullName:   "full_name",
	StepStudyGroup: "study_group",
	StepCourse:     "course",
	StepVKLink:     "vk_link",
	StepTGLink:     "tg_link",
	StepPhone:      "phone",
	StepFaculty:    "faculty",
	StepSource:     "source",
	StepConsent:    "consent",
	StepCommitted:  "committed",
}

func (s RegistrationStep) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// Next возвращает следующий шаг; после согласия - Committed
func (s RegistrationStep) Next() RegistrationStep {
	if s >= StepConsent {
		return StepCommitted
	}
	return s + 1
}

// Collecting сообщает, что шаг относится к сбору данных
func (s RegistrationStep) Collecting() bool {
	return s >= StepFullName && s <= StepConsent
}

// Number - порядковый номер шага для подсказок "Шаг N из 9"
func (s RegistrationStep) Number() int {
	return int(s)
}

// TotalSteps - количество шагов диалога
const TotalSteps = int(StepConsent)

const (
	ConsentToken  = "✅ Согласен"
	CancelToken   = "❌ Отмена"
	RegisterToken = "📝 Зарегистрироваться"
)

// Faculties - варианты факультета (они же кнопки клавиатуры)
var Faculties = []string{
	"ИТиАБД", "МЭО", "ФЭБ", "СНиМК",
	"НАБ", "ФШУ", "ФФ", "ЮФ",
}

// Sources - варианты ответа "Откуда узнал о проекте"
var Sources = []string{
	"ВК-группа проекта",
	"ВК/Тг информера факультета",
	"От одногруппников",
	"От Координатора",
}

// Courses - допустимые значения курса
var Courses = []string{"1", "2", "3", "4"}

// RegistrationForm - накопленные данные анкеты
type RegistrationForm struct {
	FullName   string
	StudyGroup string
	Course     int
	VKLink     string
	TGLink     string
	Phone      string
	Faculty    string
	Source     string
}

// RegistrationSession - незавершённый диалог регистрации одного пользователя
type RegistrationSession struct {
	ID       uuid.UUID
	Step     RegistrationStep
	Username string
	Form     RegistrationForm
}

// NewRegistrationSession создаёт сессию на первом шаге
func NewRegistrationSession(username string) *RegistrationSession {
	return &RegistrationSession{
		ID:       uuid.New(),
		Step:     StepFullName,
		Username: username,
	}
}
