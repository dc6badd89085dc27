package formatting

// pluralize выбирает форму слова для числа: one (1 участник), few (2 участника), many (5 участников)
func pluralize(count int, one, few, many string) string {
	if count < 0 {
		count = -count
	}
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeParticipants возвращает правильное склонение слова "участник"
func PluralizeParticipants(count int) string {
	return pluralize(count, "участник", "участника", "участников")
}

// PluralizeParticipantsDative - склонение в дательном падеже ("5 участникам")
func PluralizeParticipantsDative(count int) string {
	return pluralize(count, "участнику", "участникам", "участникам")
}

// PluralizeRecords возвращает правильное склонение слова "запись"
func PluralizeRecords(count int) string {
	return pluralize(count, "запись", "записи", "записей")
}
