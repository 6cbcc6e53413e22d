package auth_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/nlowen/catalog/internal/auth"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    auth.Role
		wantErr bool
	}{
		{"admin", "ADMIN", auth.RoleAdmin, false},
		{"user", "USER", auth.RoleUser, false},
		{"lowercase accepted", "admin", auth.RoleAdmin, false},
		{"whitespace trimmed", " USER ", auth.RoleUser, false},
		{"unknown rejected", "ROOT", "", true},
		{"empty rejected", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.ParseRole(tt.input)
			if tt.wantErr {
				if !errors.Is(err, auth.ErrUnknownRole) {
					t.Fatalf("err = %v, want ErrUnknownRole", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("role = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRoleSatisfies(t *testing.T) {
	tests := []struct {
		name     string
		role     auth.Role
		required auth.Role
		want     bool
	}{
		{"admin satisfies admin", auth.RoleAdmin, auth.RoleAdmin, true},
		{"admin satisfies user", auth.RoleAdmin, auth.RoleUser, true},
		{"user satisfies user", auth.RoleUser, auth.RoleUser, true},
		{"user does not satisfy admin", auth.RoleUser, auth.RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.Satisfies(tt.required); got != tt.want {
				t.Errorf("satisfies = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStaticSource(t *testing.T) {
	t.Run("lookup verifies seeded password", func(t *testing.T) {
		source, err := auth.NewStaticSource([]auth.Account{
			{Username: "admin", Password: "admin123", Role: auth.RoleAdmin},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		credentials, ok := source.Lookup("admin")
		if !ok {
			t.Fatal("admin account not found")
		}
		if credentials.Role != auth.RoleAdmin {
			t.Errorf("role = %q, want ADMIN", credentials.Role)
		}
		if err := credentials.Verify("admin123"); err != nil {
			t.Errorf("verify: %v", err)
		}
		if err := credentials.Verify("wrong"); !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown username misses", func(t *testing.T) {
		source, err := auth.NewStaticSource(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := source.Lookup("ghost"); ok {
			t.Error("lookup should miss for unknown username")
		}
	})

	t.Run("blank username fails", func(t *testing.T) {
		_, err := auth.NewStaticSource([]auth.Account{
			{Username: "  ", Password: "secret", Role: auth.RoleUser},
		})
		if err == nil {
			t.Error("expected error for blank username")
		}
	})
}

func TestDefaultPolicy(t *testing.T) {
	policy := auth.DefaultPolicy("/entities")

	tests := []struct {
		name   string
		method string
		path   string
		role   auth.Role
		want   bool
	}{
		{"user reads list", "GET", "/entities/", auth.RoleUser, true},
		{"user reads single", "GET", "/entities/42", auth.RoleUser, true},
		{"admin reads", "GET", "/entities/42", auth.RoleAdmin, true},
		{"user cannot create", "POST", "/entities/", auth.RoleUser, false},
		{"user cannot update", "PUT", "/entities/42", auth.RoleUser, false},
		{"user cannot delete", "DELETE", "/entities/42", auth.RoleUser, false},
		{"admin creates", "POST", "/entities/", auth.RoleAdmin, true},
		{"admin updates", "PUT", "/entities/42", auth.RoleAdmin, true},
		{"admin deletes", "DELETE", "/entities/42", auth.RoleAdmin, true},
		{"user reads docs", "GET", "/openapi.json", auth.RoleUser, true},
		{"prefix matches whole segments only", "POST", "/entities-archive", auth.RoleUser, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.Allows(tt.method, tt.path, tt.role); got != tt.want {
				t.Errorf("allows(%s %s, %s) = %v, want %v", tt.method, tt.path, tt.role, got, tt.want)
			}
		})
	}

	t.Run("health probes are public", func(t *testing.T) {
		for _, path := range []string{"/healthz", "/readyz"} {
			rule, ok := policy.Evaluate(http.MethodGet, path)
			if !ok || !rule.Public {
				t.Errorf("%s should match a public rule", path)
			}
		}
	})

	t.Run("preflight is public", func(t *testing.T) {
		rule, ok := policy.Evaluate(http.MethodOptions, "/entities/")
		if !ok || !rule.Public {
			t.Error("OPTIONS requests should match a public rule")
		}
	})
}

func TestPolicyEvaluateOrder(t *testing.T) {
	policy := auth.Policy{
		Rules: []auth.Rule{
			{Method: "GET", Path: "/things", Requires: auth.RoleUser},
			{Method: "*", Path: "/things", Requires: auth.RoleAdmin},
		},
	}

	rule, ok := policy.Evaluate("GET", "/things/7")
	if !ok {
		t.Fatal("expected a matching rule")
	}
	if rule.Requires != auth.RoleUser {
		t.Errorf("requires = %q, first match must win", rule.Requires)
	}

	if policy.Allows("PATCH", "/things/7", auth.RoleUser) {
		t.Error("wildcard method rule should require ADMIN")
	}

	empty := auth.Policy{}
	if empty.Allows("GET", "/things", auth.RoleAdmin) {
		t.Error("no matching rule must deny")
	}
}
