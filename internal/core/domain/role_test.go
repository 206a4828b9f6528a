package domain

import "testing"

func TestRole_AtLeast_Ordering(t *testing.T) {
	cases := []struct {
		name string
		r    Role
		min  Role
		want bool
	}{
		{"user meets user", RoleUser, RoleUser, true},
		{"user below moderator", RoleUser, RoleModerator, false},
		{"user below admin", RoleUser, RoleAdmin, false},
		{"moderator meets user", RoleModerator, RoleUser, true},
		{"moderator below admin", RoleModerator, RoleAdmin, false},
		{"admin meets user", RoleAdmin, RoleUser, true},
		{"admin meets moderator", RoleAdmin, RoleModerator, true},
		{"admin meets admin", RoleAdmin, RoleAdmin, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.AtLeast(tc.min); got != tc.want {
				t.Errorf("%q.AtLeast(%q) = %v, want %v", tc.r, tc.min, got, tc.want)
			}
		})
	}
}

func TestRole_AtLeast_UnknownRoles(t *testing.T) {
	if Role("superuser").AtLeast(RoleUser) {
		t.Errorf("unknown role must not satisfy any capability check")
	}
	if Role("").AtLeast(RoleUser) {
		t.Errorf("empty role must not satisfy any capability check")
	}
	if RoleAdmin.AtLeast(Role("superuser")) {
		t.Errorf("unknown minimum must never be satisfied")
	}
}

func TestRole_IsValid(t *testing.T) {
	for _, r := range []Role{RoleUser, RoleModerator, RoleAdmin} {
		if !r.IsValid() {
			t.Errorf("expected %q to be valid", r)
		}
	}
	if Role("root").IsValid() {
		t.Errorf("expected unknown role to be invalid")
	}
}
