package rbac

import (
	"campus-jobs-backend/models"
)

var (
	ManagerRoleSet   = []models.UserRole{models.RoleAdmin, models.RoleManager}
	CandidateRoleSet = []models.UserRole{models.RoleCandidate}
	AllRoles         = []models.UserRole{models.RoleAdmin, models.RoleManager, models.RoleCandidate}
)

func (i *impl) initRules() {
	i.company()
	i.job()
	i.application()
	i.event()
	i.messaging()
	i.analytics()
	i.dict()
	i.notification()
	i.candidate()
	i.user()
}

func (i *impl) register(module models.Module, permission models.Permission, roles []models.UserRole, patterns ...string) {
	for _, pattern := range patterns {
		if err := i.RegisterRule(module, permission, roles, pattern, nil); err != nil {
			panic(err.Error())
		}
	}
}

func (i *impl) company() {
	i.register(models.CompanyModule, models.ViewPermission, ManagerRoleSet,
		"/api/v1/company/list [get]",
		"/api/v1/company/{id} [get]",
		"/api/v1/company/{id}/logo [get]",
	)
	i.register(models.CompanyModule, models.EditPermission, ManagerRoleSet,
		"/api/v1/company/{id} [put]",
		"/api/v1/company/{id}/logo [post]",
	)
	i.register(models.CompanyModule, models.ManagePermission, ManagerRoleSet,
		"/api/v1/company/{id}/manager [post]",
		"/api/v1/company/{id}/manager/{user_id} [delete]",
		"/api/v1/company/{id}/manager/{user_id}/primary [put]",
	)
}

func (i *impl) job() {
	i.register(models.JobModule, models.ViewPermission, ManagerRoleSet,
		"/api/v1/job/list [post]",
		"/api/v1/job/{id} [get]",
		"/api/v1/job/{id}/stage/list [get]",
	)
	i.register(models.JobModule, models.CreatePermission, ManagerRoleSet,
		"/api/v1/job [post]",
	)
	i.register(models.JobModule, models.EditPermission, ManagerRoleSet,
		"/api/v1/job/{id} [put]",
		"/api/v1/job/{id} [delete]",
		"/api/v1/job/{id}/toggle_active [put]",
	)
	i.register(models.JobModule, models.StagesPermission, ManagerRoleSet,
		"/api/v1/job/{id}/stage [put]",
		"/api/v1/job/{id}/stage/change_order [put]",
	)
}

func (i *impl) application() {
	i.register(models.ApplicationModule, models.ViewPermission, ManagerRoleSet,
		"/api/v1/application/list [post]",
		"/api/v1/application/export_xls [post]",
		"/api/v1/application/{id} [get]",
		"/api/v1/application/{id}/pdf [get]",
	)
	i.register(models.ApplicationModule, models.EditPermission, ManagerRoleSet,
		"/api/v1/application/{id}/status [put]",
		"/api/v1/application/{id}/stage [put]",
		"/api/v1/application/{id}/accept [put]",
		"/api/v1/application/{id}/reject [put]",
		"/api/v1/application/{id}/favorite [put]",
	)
	i.register(models.ApplicationModule, models.NotesPermission, ManagerRoleSet,
		"/api/v1/application/{id}/note [put]",
	)
	i.register(models.ApplicationModule, models.FilesPermission, ManagerRoleSet,
		"/api/v1/application/{id}/resume [get]",
	)
}

func (i *impl) event() {
	i.register(models.EventModule, models.ViewPermission, ManagerRoleSet,
		"/api/v1/event/list [post]",
		"/api/v1/event/{id} [get]",
	)
	i.register(models.EventModule, models.CreatePermission, ManagerRoleSet,
		"/api/v1/event [post]",
	)
	i.register(models.EventModule, models.EditPermission, ManagerRoleSet,
		"/api/v1/event/{id} [put]",
		"/api/v1/event/{id} [delete]",
		"/api/v1/event/{id}/cancel [put]",
		"/api/v1/event/{id}/complete [put]",
	)
}

func (i *impl) messaging() {
	i.register(models.MessagingModule, models.ViewPermission, ManagerRoleSet,
		"/api/v1/message/conversation/list [post]",
		"/api/v1/message/conversation/{id}/messages [get]",
		"/api/v1/message/attachment/{id} [get]",
		"/api/v1/message/metrics [get]",
	)
	i.register(models.MessagingModule, models.EditPermission, ManagerRoleSet,
		"/api/v1/message/conversation [post]",
		"/api/v1/message/conversation/{id} [post]",
		"/api/v1/message/conversation/{id}/archive [put]",
	)
}

func (i *impl) analytics() {
	i.register(models.AnalyticsModule, models.ViewPermission, ManagerRoleSet,
		"/api/v1/analytics/dashboard [get]",
	)
}

func (i *impl) dict() {
	i.register(models.DictModule, models.ViewPermission, AllRoles,
		"/api/v1/dict/category/list [get]",
		"/api/v1/dict/hiring_stage/list [get]",
		"/api/v1/dict/application_status/list [get]",
	)
}

func (i *impl) notification() {
	i.register(models.NotificationModule, models.ViewPermission, AllRoles,
		"/api/v1/notification/list [post]",
		"/api/v1/notification/{id}/read [put]",
		"/api/v1/notification/read_all [put]",
	)
}

func (i *impl) candidate() {
	i.register(models.CandidateModule, models.ViewPermission, CandidateRoleSet,
		"/api/v1/candidate/job/list [post]",
		"/api/v1/candidate/job/{id} [get]",
		"/api/v1/candidate/application/list [post]",
		"/api/v1/candidate/message/conversation/list [post]",
		"/api/v1/candidate/message/conversation/{id}/messages [get]",
		"/api/v1/candidate/message/attachment/{id} [get]",
	)
	i.register(models.CandidateModule, models.CreatePermission, CandidateRoleSet,
		"/api/v1/candidate/job/{id}/apply [post]",
		"/api/v1/candidate/message/conversation/{id} [post]",
		"/api/v1/candidate/message/conversation/{id}/archive [put]",
	)
}

func (i *impl) user() {
	i.register(models.UserModule, models.ViewPermission, AllRoles,
		"/api/v1/user/me [get]",
	)
}
