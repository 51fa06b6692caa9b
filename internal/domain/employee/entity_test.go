package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorksNightOn(t *testing.T) {
	tuesday := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	wednesday := tuesday.AddDate(0, 0, 1)

	mixed := Employee{Shift: ShiftMixed, NightDays: []string{"Mardi", " thursday "}}
	assert.True(t, mixed.WorksNightOn(tuesday))
	assert.False(t, mixed.WorksNightOn(wednesday))

	assert.True(t, Employee{Shift: ShiftNight}.WorksNightOn(wednesday))
	assert.False(t, Employee{Shift: ShiftDay, NightDays: []string{"Mardi"}}.WorksNightOn(tuesday))
}

func TestSplitJoinDays(t *testing.T) {
	days := SplitDays(" Lundi, ,Mardi,")
	assert.Equal(t, []string{"Lundi", "Mardi"}, days)
	assert.Equal(t, "Lundi,Mardi", JoinDays(days))
	assert.Nil(t, SplitDays(""))
}

func TestCreateEmployeeRequest_Validate(t *testing.T) {
	req := CreateEmployeeRequest{
		LastName:           "Diallo",
		FirstName:          "Awa",
		Service:            "Radiology",
		Shift:              "Mixte",
		ScheduledArrival:   "07h30",
		ScheduledDeparture: "16.00",
		NightDays:          []string{"Vendredi"},
	}
	require.NoError(t, req.Validate())

	e := req.ToEntity()
	assert.Equal(t, GroupA, e.NightGroup)
	assert.Equal(t, 7, e.ScheduledArrival.Hour)
	assert.True(t, e.Active)

	req.Shift = "Evening"
	req.NightDays = []string{"Someday"}
	req.ScheduledArrival = "later"
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shift")
	assert.Contains(t, err.Error(), "scheduled_arrival")
}

func TestUpdateEmployeeRequest(t *testing.T) {
	group := "B"
	days := []string{"Samedi"}
	req := UpdateEmployeeRequest{ID: "e-1", NightGroup: &group, NightDays: &days}
	require.NoError(t, req.Validate())

	e := Employee{NightGroup: GroupA, Shift: ShiftMixed}
	req.Apply(&e)
	assert.Equal(t, GroupB, e.NightGroup)
	assert.Equal(t, days, e.NightDays)

	bad := "Z"
	assert.Error(t, (&UpdateEmployeeRequest{NightGroup: &bad}).Validate())
}
