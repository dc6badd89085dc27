package callbacktypes

// Callback data админ-панели
const (
	AdminBack   = "admin_back"
	AdminCancel = "admin_cancel"

	AdminStats = "admin_stats"

	AdminSettings           = "admin_settings"
	AdminToggleRegistration = "admin_toggle_registration"
	AdminSetLimit           = "admin_set_limit"

	AdminUsers           = "admin_users"
	AdminUsersAll        = "admin_users_all"
	AdminUsersRegistered = "admin_users_registered"
	AdminUsersReserve    = "admin_users_reserve"
	AdminUsersConfirmed  = "admin_users_confirmed"
	AdminUsersDeclined   = "admin_users_declined"
	AdminDeleteUser      = "admin_delete_user"

	AdminReserve        = "admin_reserve"
	AdminPromote        = "admin_promote"
	AdminConfirmPromote = "admin_confirm_promote:" // admin_confirm_promote:3

	AdminBroadcastMenu    = "admin_broadcast_confirm"
	AdminBroadcastPreview = "admin_broadcast:"         // admin_broadcast:for_confirmation
	AdminBroadcastSend    = "admin_confirm_broadcast:" // admin_confirm_broadcast:all

	AdminExport              = "admin_export"
	AdminExportAll           = "admin_export_all"
	AdminExportConfirmations = "admin_export_confirmation"
)

// Ответы участника на запрос подтверждения
const (
	ConfirmYes = "confirm_yes"
	ConfirmNo  = "confirm_no"
)

const Noop = "noop"
