package rbac

import (
	"regexp"

	"campus-jobs-backend/models"
)

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PUT    HTTPMethod = "PUT"
	DELETE HTTPMethod = "DELETE"
	PATCH  HTTPMethod = "PATCH"
)

// PathRule keeps exact paths apart from parameterized ones, exact lookups go first
type PathRule struct {
	Exact    map[string]models.RbacFunc
	Patterns []PatternRule
}

type PatternRule struct {
	Source  string
	Pattern *regexp.Regexp
	Handler models.RbacFunc
}

func newPathRule() *PathRule {
	return &PathRule{Exact: map[string]models.RbacFunc{}}
}

func (r *PathRule) add(path string, handler models.RbacFunc) error {
	if !isTemplatePath(path) {
		if _, ok := r.Exact[path]; ok {
			return errRuleExists
		}
		r.Exact[path] = handler
		return nil
	}
	for _, rule := range r.Patterns {
		if rule.Source == path {
			return errRuleExists
		}
	}
	r.Patterns = append(r.Patterns, PatternRule{
		Source:  path,
		Pattern: pathToRegex(path),
		Handler: handler,
	})
	return nil
}

func (r *PathRule) match(path string) (models.RbacFunc, bool) {
	if handler, ok := r.Exact[path]; ok {
		return handler, true
	}
	for _, rule := range r.Patterns {
		if rule.Pattern.MatchString(path) {
			return rule.Handler, true
		}
	}
	return nil, false
}
