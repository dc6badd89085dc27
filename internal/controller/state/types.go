package state

// UserState представляет текущее состояние пользователя в диалоге администратора
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	StateAdminLimit        UserState = "admin_limit"         // Ввод лимита мест
	StateAdminDeleteID     UserState = "admin_delete_id"     // Ввод ID участника для удаления
	StateAdminPromoteCount UserState = "admin_promote_count" // Ввод количества для перевода из резерва
)

// UserData - запись диалога в кэше
type UserData struct {
	State UserState
}
