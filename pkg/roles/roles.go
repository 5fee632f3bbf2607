package roles

import "strings"

type Role string

const (
	Clerk          Role = "clerk"
	DepartmentHead Role = "department_head"
	Admin          Role = "admin"
)

type HierarchyLevel int

const (
	ClerkLevel          HierarchyLevel = 1
	DepartmentHeadLevel HierarchyLevel = 2
	AdminLevel          HierarchyLevel = 3
)

// Normalize maps the spellings accepted on input ("dept head",
// "department head") to the canonical role value.
func Normalize(value string) Role {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "admin":
		return Admin
	case "department_head", "department head", "dept head", "dept_head":
		return DepartmentHead
	default:
		return Clerk
	}
}

func (r Role) GetHierarchyLevel() HierarchyLevel {
	switch r {
	case Admin:
		return AdminLevel
	case DepartmentHead:
		return DepartmentHeadLevel
	default:
		return ClerkLevel
	}
}

// HasPermission reports whether the role meets or exceeds the required level.
func (r Role) HasPermission(requiredRole Role) bool {
	return r.GetHierarchyLevel() >= requiredRole.GetHierarchyLevel()
}

func (r Role) IsValid() bool {
	switch r {
	case Clerk, DepartmentHead, Admin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
