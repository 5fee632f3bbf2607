package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, Admin, Normalize("Admin"))
	assert.Equal(t, DepartmentHead, Normalize("department_head"))
	assert.Equal(t, DepartmentHead, Normalize("Dept Head"))
	assert.Equal(t, DepartmentHead, Normalize("department head"))
	assert.Equal(t, Clerk, Normalize("clerk"))
	assert.Equal(t, Clerk, Normalize("something else"))
}

func TestHasPermission(t *testing.T) {
	assert.True(t, Admin.HasPermission(Admin))
	assert.True(t, Admin.HasPermission(Clerk))
	assert.True(t, DepartmentHead.HasPermission(Clerk))
	assert.False(t, DepartmentHead.HasPermission(Admin))
	assert.False(t, Clerk.HasPermission(DepartmentHead))
}

func TestIsValid(t *testing.T) {
	assert.True(t, Admin.IsValid())
	assert.True(t, DepartmentHead.IsValid())
	assert.True(t, Clerk.IsValid())
	assert.False(t, Role("superuser").IsValid())
}
