package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // valid UUIDv7
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", // valid UUIDv7 (uppercase)
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",                                     // empty
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "service", Message: "invalid"},
		{Field: "shift", Message: "required"},
	}
	got := errs.Error()
	want := "service: invalid; shift: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	var errs ValidationErrors
	errs.Add("service", "invalid")
	errs.Add("shift", "required")

	got := errs.ToMap()
	want := map[string]string{"service": "invalid", "shift": "required"}
	assert.Equal(t, want, got)
	assert.NoError(t, ValidationErrors(nil).Err())
}

type sample struct {
	Name    string `json:"name" validate:"required,max=5"`
	Arrival string `json:"arrival" validate:"required,timeofday"`
	Date    string `json:"date" validate:"omitempty,isodate"`
	Group   string `json:"group" validate:"oneof=A B"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(sample{Name: "Ana", Arrival: "08h30", Group: "A"}))

	err := Struct(sample{Name: "Anastasia", Arrival: "soon", Date: "12/01/2026", Group: "C"})
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)

	got := errs.ToMap()
	assert.Equal(t, "name must not exceed 5 characters", got["name"])
	assert.Contains(t, got["arrival"], "must be a time")
	assert.Contains(t, got["date"], "YYYY-MM-DD")
	assert.Equal(t, "group must be one of: A, B", got["group"])
}
