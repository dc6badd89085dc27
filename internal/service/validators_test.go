package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func requireRejected(t *testing.T, err error, field string) {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	require.Equal(t, field, verr.Field)
	require.ErrorIs(t, err, ErrValidation)
}

func TestValidateFullName(t *testing.T) {
	name, err := ValidateFullName("  Иванов Иван ")
	require.NoError(t, err)
	assert.Equal(t, "Иванов Иван", name)

	_, err = ValidateFullName("Иван")
	requireRejected(t, err, FieldFullName)

	_, err = ValidateFullName("   ")
	requireRejected(t, err, FieldFullName)
}

func TestValidateStudyGroup(t *testing.T) {
	group, err := ValidateStudyGroup(" пи22-1 ")
	require.NoError(t, err)
	assert.Equal(t, "ПИ22-1", group)

	_, err = ValidateStudyGroup("")
	requireRejected(t, err, FieldStudyGroup)

	_, err = ValidateStudyGroup(strings.Repeat("я", StudyGroupMaxLength+1))
	requireRejected(t, err, FieldStudyGroup)

	_, err = ValidateStudyGroup(strings.Repeat("я", StudyGroupMaxLength))
	require.NoError(t, err)
}

func TestValidateCourse(t *testing.T) {
	for i, value := range model.Courses {
		course, err := ValidateCourse(value)
		require.NoError(t, err)
		assert.Equal(t, i+1, course)
	}

	for _, bad := range []string{"0", "5", "два", "", "1.0"} {
		_, err := ValidateCourse(bad)
		requireRejected(t, err, FieldCourse)
	}
}

func TestValidateLinks(t *testing.T) {
	vk, err := ValidateVKLink("https://vk.com/durov")
	require.NoError(t, err)
	assert.Equal(t, "https://vk.com/durov", vk)

	_, err = ValidateVKLink("http://www.vk.com/id1")
	require.NoError(t, err)

	_, err = ValidateVKLink("vk.com/durov")
	requireRejected(t, err, FieldVKLink)

	tg, err := ValidateTGLink("@ivan_petrov")
	require.NoError(t, err)
	assert.Equal(t, "https://t.me/ivan_petrov", tg)

	tg, err = ValidateTGLink("https://t.me/ivan")
	require.NoError(t, err)
	assert.Equal(t, "https://t.me/ivan", tg)

	_, err = ValidateTGLink("ivan")
	requireRejected(t, err, FieldTGLink)
}

func TestValidatePhone(t *testing.T) {
	cases := map[string]string{
		"+79991234567":       "+79991234567",
		"89991234567":        "+79991234567",
		"79991234567":        "+79991234567",
		"8 (999) 123-45-67":  "+79991234567",
		"+7 999 123 45 67":   "+79991234567",
		"+7-(999)-123-45-67": "+79991234567",

		// неразрывный и узкий пробелы из скопированных номеров
		"+7\u00a0999\u00a0123-45-67":     "+79991234567",
		"8\u2009(999)\u2009123\u20094567": "+79991234567",
	}
	for input, want := range cases {
		got, err := ValidatePhone(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	for _, bad := range []string{"9991234567", "+19991234567", "+7999123456", "+7999123456a", ""} {
		_, err := ValidatePhone(bad)
		requireRejected(t, err, FieldPhone)
	}
}

// Любой принятый номер нормализуется в +7 и 10 цифр
func TestValidatePhone_NormalizesAcceptedNumbers(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		prefix := rapid.SampledFrom([]string{"+7", "8", "7"}).Draw(r, "prefix")
		digits := rapid.StringMatching(`[0-9]{10}`).Draw(r, "digits")

		var b strings.Builder
		b.WriteString(prefix)
		for _, d := range digits {
			b.WriteString(rapid.SampledFrom([]string{"", " ", "-", "(", ")"}).Draw(r, "sep"))
			b.WriteRune(d)
		}

		phone, err := ValidatePhone(b.String())
		require.NoError(r, err)
		require.Equal(r, "+7"+digits, phone)
		require.Len(r, phone, 12)
	})
}

// Валидатор не паникует на произвольном вводе и либо принимает, либо возвращает ValidationError
func TestValidators_NeverPanic(t *testing.T) {
	validators := []func(string) error{
		func(s string) error { _, err := ValidateFullName(s); return err },
		func(s string) error { _, err := ValidateStudyGroup(s); return err },
		func(s string) error { _, err := ValidateCourse(s); return err },
		func(s string) error { _, err := ValidateVKLink(s); return err },
		func(s string) error { _, err := ValidateTGLink(s); return err },
		func(s string) error { _, err := ValidatePhone(s); return err },
		func(s string) error { _, err := ValidateFaculty(s); return err },
		func(s string) error { _, err := ValidateSource(s); return err },
		ValidateConsent,
	}

	rapid.Check(t, func(r *rapid.T) {
		input := rapid.String().Draw(r, "input")
		for _, validate := range validators {
			if err := validate(input); err != nil {
				var verr *ValidationError
				require.True(r, errors.As(err, &verr))
			}
		}
	})
}

func TestValidateOptions(t *testing.T) {
	for _, f := range model.Faculties {
		got, err := ValidateFaculty(f)
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ValidateFaculty("ВШУ")
	requireRejected(t, err, FieldFaculty)

	for _, s := range model.Sources {
		_, err := ValidateSource(s)
		require.NoError(t, err)
	}
	_, err = ValidateSource("Из газеты")
	requireRejected(t, err, FieldSource)

	require.NoError(t, ValidateConsent(model.ConsentToken))
	requireRejected(t, ValidateConsent("да"), FieldConsent)
}

func TestParseLimitAndID(t *testing.T) {
	limit, err := ParseLimit(" 25 ")
	require.NoError(t, err)
	assert.Equal(t, 25, limit)

	limit, err = ParseLimit("0")
	require.NoError(t, err)
	assert.Zero(t, limit)

	_, err = ParseLimit("-1")
	requireRejected(t, err, FieldLimit)

	_, err = ParseLimit("много")
	requireRejected(t, err, FieldLimit)

	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParseID("x")
	requireRejected(t, err, FieldID)
}
