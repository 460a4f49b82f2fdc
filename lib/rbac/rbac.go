package rbac

import (
	"regexp"
	"slices"
	"strings"

	"campus-jobs-backend/models"
	"github.com/pkg/errors"
)

type Provider interface {
	GetRuleFunc(method, path string) (models.RbacFunc, bool)
	RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error
	GetPermissions(role models.UserRole) map[models.Module][]models.Permission
}

var Instance Provider

var (
	errRuleExists = errors.New("rule already registered")
	paramRegex    = regexp.MustCompile(`\\\{[^}]+\\\}`)
)

func NewHandler() {
	i := newImpl()
	i.initRules()
	Instance = i
}

type impl struct {
	rules       map[HTTPMethod]*PathRule
	permissions map[models.UserRole]map[models.Module][]models.Permission
}

func newImpl() *impl {
	return &impl{
		rules:       map[HTTPMethod]*PathRule{},
		permissions: map[models.UserRole]map[models.Module][]models.Permission{},
	}
}

func (i *impl) GetRuleFunc(method, path string) (models.RbacFunc, bool) {
	rule, ok := i.rules[HTTPMethod(strings.ToUpper(method))]
	if !ok {
		return nil, false
	}
	return rule.match(normalizePath(path))
}

func (i *impl) RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error {
	path, method, err := parseSwaggerPattern(swaggerPattern)
	if err != nil {
		return err
	}
	if handler == nil {
		handler = AllowByRoleFunc(roles)
	}
	rule, ok := i.rules[method]
	if !ok {
		rule = newPathRule()
		i.rules[method] = rule
	}
	if err = rule.add(path, handler); err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	for _, role := range roles {
		i.grant(role, module, permission)
	}
	return nil
}

// grant records the permission in the map served by user/me
func (i *impl) grant(role models.UserRole, module models.Module, permission models.Permission) {
	modules, ok := i.permissions[role]
	if !ok {
		modules = map[models.Module][]models.Permission{}
		i.permissions[role] = modules
	}
	if !slices.Contains(modules[module], permission) {
		modules[module] = append(modules[module], permission)
	}
}

func (i *impl) GetPermissions(role models.UserRole) map[models.Module][]models.Permission {
	return i.permissions[role]
}

func AllowByRoleFunc(accessRoles []models.UserRole) models.RbacFunc {
	return func(userID string, role models.UserRole, path string) bool {
		return slices.Contains(accessRoles, role)
	}
}

func isTemplatePath(path string) bool {
	return strings.Contains(path, "{")
}

// pathToRegex turns "/job/{id}/stage" into a regexp matching one path segment per parameter
func pathToRegex(path string) *regexp.Regexp {
	pattern := paramRegex.ReplaceAllString(regexp.QuoteMeta(path), `[^/]+`)
	return regexp.MustCompile("^" + pattern + "$")
}

// parseSwaggerPattern splits "/api/v1/job/{id} [put]" into path and method
func parseSwaggerPattern(pattern string) (string, HTTPMethod, error) {
	pattern = strings.TrimSpace(pattern)
	open := strings.LastIndex(pattern, "[")
	if open == -1 || !strings.HasSuffix(pattern, "]") {
		return "", "", errors.Errorf("method not provided for pattern %q", pattern)
	}
	method := HTTPMethod(strings.ToUpper(strings.TrimSpace(pattern[open+1 : len(pattern)-1])))
	if method == "" {
		return "", "", errors.Errorf("empty method in pattern %q", pattern)
	}
	return normalizePath(strings.TrimSpace(pattern[:open])), method, nil
}

func normalizePath(path string) string {
	path = "/" + strings.Trim(path, "/")
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	return path
}
