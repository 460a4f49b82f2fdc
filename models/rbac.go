package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	CompanyModule      Module = "COMPANY"
	JobModule          Module = "JOB"
	ApplicationModule  Module = "APPLICATION"
	EventModule        Module = "EVENT"
	MessagingModule    Module = "MESSAGING"
	AnalyticsModule    Module = "ANALYTICS"
	DictModule         Module = "DICT"
	NotificationModule Module = "NOTIFICATION"
	CandidateModule    Module = "CANDIDATE"
	UserModule         Module = "USER"
)

type Permission string

const (
	CreatePermission Permission = "CREATE"
	EditPermission   Permission = "EDIT"
	ViewPermission   Permission = "VIEW"
	ManagePermission Permission = "MANAGE"
	StagesPermission Permission = "STAGES"
	FilesPermission  Permission = "FILES"
	NotesPermission  Permission = "NOTES"
)
