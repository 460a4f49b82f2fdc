package models

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleManager   UserRole = "manager"
	RoleCandidate UserRole = "candidate"
)

var roleHumanName = map[UserRole]string{
	RoleAdmin:     "Administrator",
	RoleManager:   "Manager",
	RoleCandidate: "Candidate",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

const SystemUser = "System"
