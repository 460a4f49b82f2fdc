package rbac

import (
	"testing"

	"campus-jobs-backend/models"
	"github.com/stretchr/testify/require"
)

func newTestRbac() *impl {
	i := newImpl()
	i.initRules()
	return i
}

func TestPathToRegex(t *testing.T) {
	path, method, err := parseSwaggerPattern("/api/v1/company/{id}/manager [post]")
	require.NoError(t, err)
	require.Equal(t, POST, method)
	r1 := pathToRegex(path)
	require.True(t, r1.MatchString("/api/v1/company/123-321/manager"))
	require.False(t, r1.MatchString("/api/v1/company/manager"))

	path, method, err = parseSwaggerPattern("/api/v1/company/{id}/manager/{user_id} [delete]")
	require.NoError(t, err)
	require.Equal(t, DELETE, method)
	r2 := pathToRegex(path)
	require.True(t, r2.MatchString("/api/v1/company/123-321/manager/qwe-ewr123-wr-12"))
	require.False(t, r2.MatchString("/api/v1/company/we-ewr123-wr-12/manager"))

	_, _, err = parseSwaggerPattern("/api/v1/job")
	require.Error(t, err)
}

func TestGetRuleFunc(t *testing.T) {
	i := newTestRbac()

	handler, found := i.GetRuleFunc("put", "/api/v1/job/42/toggle_active/")
	require.True(t, found)
	require.True(t, handler("u1", models.RoleManager, ""))
	require.True(t, handler("u1", models.RoleAdmin, ""))
	require.False(t, handler("u1", models.RoleCandidate, ""))

	handler, found = i.GetRuleFunc("POST", "/api/v1/candidate/job/42/apply")
	require.True(t, found)
	require.True(t, handler("u1", models.RoleCandidate, ""))
	require.False(t, handler("u1", models.RoleManager, ""))

	// exact path wins over the {id} pattern
	handler, found = i.GetRuleFunc("POST", "/api/v1/job/list")
	require.True(t, found)
	require.False(t, handler("u1", models.RoleCandidate, ""))

	_, found = i.GetRuleFunc("GET", "/api/v1/unknown")
	require.False(t, found)
}

func TestGetPermissions(t *testing.T) {
	i := newTestRbac()

	candidate := i.GetPermissions(models.RoleCandidate)
	require.ElementsMatch(t, []models.Permission{models.ViewPermission, models.CreatePermission}, candidate[models.CandidateModule])
	require.Empty(t, candidate[models.JobModule])

	manager := i.GetPermissions(models.RoleManager)
	require.ElementsMatch(t, []models.Permission{
		models.ViewPermission, models.CreatePermission, models.EditPermission, models.StagesPermission,
	}, manager[models.JobModule])
}

func TestRegisterRuleTwice(t *testing.T) {
	i := newTestRbac()

	err := i.RegisterRule(models.JobModule, models.ViewPermission, AllRoles, "/api/v1/job/{id} [get]", nil)
	require.Error(t, err)

	err = i.RegisterRule(models.JobModule, models.ViewPermission, AllRoles, "/api/v1/job/{id} [patch]", nil)
	require.NoError(t, err)
	handler, found := i.GetRuleFunc("PATCH", "/api/v1/job/7")
	require.True(t, found)
	require.True(t, handler("u1", models.RoleCandidate, ""))
}
