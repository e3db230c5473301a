package permissions_test

import (
	"slices"
	"testing"

	"inn/permissions"
)

func TestGet(t *testing.T) {
	data := permissions.Get()

	if data == nil {
		t.Fatal("expected embedded permissions to load")
	}

	if len(data.Endpoints) == 0 {
		t.Fatal("expected at least one endpoint entry")
	}

	if data.Skip {
		t.Error("expected the global skip flag to be off")
	}
}

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()
	if data == nil {
		t.Fatal("expected embedded permissions to load")
	}

	tests := []struct {
		name      string
		path      string
		method    string
		wantSkip  bool
		wantRoles []string
	}{
		{
			name:     "room listing is public",
			path:     "/v1/rooms",
			method:   "GET",
			wantSkip: true,
		},
		{
			name:     "login is public",
			path:     "/v1/auth/login",
			method:   "POST",
			wantSkip: true,
		},
		{
			name:      "room creation is admin only",
			path:      "/v1/rooms",
			method:    "POST",
			wantRoles: []string{"admin"},
		},
		{
			name:      "availability refresh is admin only",
			path:      "/v1/rooms/availability/refresh",
			method:    "POST",
			wantRoles: []string{"admin"},
		},
		{
			name:      "booking creation allows both roles",
			path:      "/v1/bookings",
			method:    "POST",
			wantRoles: []string{"admin", "user"},
		},
		{
			name:      "booking listing is admin only",
			path:      "/v1/bookings",
			method:    "GET",
			wantRoles: []string{"admin"},
		},
		{
			name:   "unknown route has no entry",
			path:   "/v1/unknown",
			method: "GET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			if permission.Skip != tt.wantSkip {
				t.Errorf("expected skip to be %t, got %t", tt.wantSkip, permission.Skip)
			}

			if !slices.Equal(permission.Permissions, tt.wantRoles) {
				t.Errorf("expected roles %v, got %v", tt.wantRoles, permission.Permissions)
			}
		})
	}
}
