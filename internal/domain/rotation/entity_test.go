package rotation

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	a, b := employee.GroupA, employee.GroupB

	got := Resolve("Radiology", date, nil, nil)
	assert.Equal(t, employee.GroupA, got.Group)
	assert.Equal(t, SourceSystem, got.Source)

	got = Resolve("Radiology", date, nil, &b)
	assert.Equal(t, employee.GroupB, got.Group)
	assert.Equal(t, SourceDefault, got.Source)

	got = Resolve("Radiology", date, &a, &b)
	assert.Equal(t, employee.GroupA, got.Group)
	assert.Equal(t, SourceOverride, got.Source)
}

func TestActiveGroupsFor(t *testing.T) {
	groups := ActiveGroups{"ICU": employee.GroupB}
	assert.Equal(t, employee.GroupB, groups.For("ICU"))
	assert.Equal(t, employee.GroupA, groups.For("Maternity"))
}
