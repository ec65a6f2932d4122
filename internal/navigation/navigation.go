// Package navigation decides which links each kind of visitor is shown.
package navigation

import "learnplatform/internal/domain"

type Item struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Path    string `json:"path"`
	Visible bool   `json:"visible"`
	Enabled bool   `json:"enabled"`
}

type rule struct {
	key, label, path string
	show             func(v viewer) (visible, enabled bool)
}

type viewer struct {
	role      domain.Role
	connected bool
}

func (v viewer) registered() bool {
	return v.role == domain.RoleStudent || v.role == domain.RoleTeacher
}

func always(viewer) (bool, bool) { return true, true }

func only(role domain.Role) func(viewer) (bool, bool) {
	return func(v viewer) (bool, bool) { return v.role == role, v.role == role }
}

var rules = []rule{
	{"home", "Home", "/", always},
	{"catalog", "Courses", "/courses", always},
	{"lessons", "Lessons", "/lessons", always},
	{"login", "Connect wallet", "/login", func(v viewer) (bool, bool) {
		return !v.connected, !v.connected
	}},
	{"register", "Register", "/register", func(v viewer) (bool, bool) {
		return !v.registered(), !v.registered()
	}},
	// shown to a connected but unregistered wallet so it knows what registering unlocks
	{"dashboard", "Dashboard", "/dashboard", func(v viewer) (bool, bool) {
		return v.connected, v.registered()
	}},
	{"profile", "Profile", "/profile", func(v viewer) (bool, bool) {
		return v.connected, v.registered()
	}},
	{"create-course", "Create course", "/courses/new", only(domain.RoleTeacher)},
	{"create-lesson", "Create lesson", "/lessons/new", only(domain.RoleTeacher)},
	{"my-lessons", "My lessons", "/lessons/mine", only(domain.RoleTeacher)},
	{"enrollments", "My courses", "/enrollments", only(domain.RoleStudent)},
}

// For returns every navigation item with its visibility for the viewer.
// connected is false for a guest without a wallet session.
func For(role domain.Role, connected bool) []Item {
	v := viewer{role: role, connected: connected}
	items := make([]Item, 0, len(rules))
	for _, r := range rules {
		visible, enabled := r.show(v)
		items = append(items, Item{
			Key:     r.key,
			Label:   r.label,
			Path:    r.path,
			Visible: visible,
			Enabled: visible && enabled,
		})
	}
	return items
}

// Visible filters items down to the ones that should be rendered.
func Visible(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Visible {
			out = append(out, it)
		}
	}
	return out
}
