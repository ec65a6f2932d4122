package navigation

import (
	"testing"

	"learnplatform/internal/domain"

	"github.com/stretchr/testify/assert"
)

func keys(items []Item) []string {
	var out []string
	for _, it := range Visible(items) {
		out = append(out, it.Key)
	}
	return out
}

func find(items []Item, key string) Item {
	for _, it := range items {
		if it.Key == key {
			return it
		}
	}
	return Item{}
}

func TestFor_Teacher(t *testing.T) {
	items := For(domain.RoleTeacher, true)
	got := keys(items)

	assert.Contains(t, got, "create-course")
	assert.Contains(t, got, "create-lesson")
	assert.Contains(t, got, "my-lessons")
	assert.NotContains(t, got, "enrollments")
	assert.NotContains(t, got, "login")
	assert.NotContains(t, got, "register")
	assert.True(t, find(items, "dashboard").Enabled)
}

func TestFor_Student(t *testing.T) {
	got := keys(For(domain.RoleStudent, true))

	assert.Contains(t, got, "enrollments")
	assert.NotContains(t, got, "create-course")
	assert.NotContains(t, got, "create-lesson")
	assert.NotContains(t, got, "my-lessons")
}

func TestFor_Guest(t *testing.T) {
	got := keys(For(domain.RoleGuest, false))
	assert.Equal(t, []string{"home", "catalog", "lessons", "login", "register"}, got)
}

func TestFor_ConnectedUnregistered(t *testing.T) {
	items := For(domain.RoleGuest, true)
	got := keys(items)

	assert.NotContains(t, got, "login")
	assert.Contains(t, got, "register")

	dash := find(items, "dashboard")
	assert.True(t, dash.Visible)
	assert.False(t, dash.Enabled)
}
