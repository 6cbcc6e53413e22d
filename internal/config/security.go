package config

import (
	"fmt"
	"os"

	"github.com/nlowen/catalog/internal/auth"
)

const (
	EnvSecurityAdminPassword = "CATALOG_SECURITY_ADMIN_PASSWORD"
	EnvSecurityUserPassword  = "CATALOG_SECURITY_USER_PASSWORD"
)

// AccountConfig declares a single seeded account.
type AccountConfig struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
	Role     string `toml:"role"`
}

// SecurityConfig holds the seeded account table used by the HTTP auth gate.
type SecurityConfig struct {
	Accounts []AccountConfig `toml:"accounts"`
}

// SeedAccounts converts the configured accounts into auth seed records.
func (c *SecurityConfig) SeedAccounts() ([]auth.Account, error) {
	accounts := make([]auth.Account, 0, len(c.Accounts))
	for _, account := range c.Accounts {
		role, err := auth.ParseRole(account.Role)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", account.Username, err)
		}
		accounts = append(accounts, auth.Account{
			Username: account.Username,
			Password: account.Password,
			Role:     role,
		})
	}
	return accounts, nil
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *SecurityConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge replaces the account table when the overlay declares one.
func (c *SecurityConfig) Merge(overlay *SecurityConfig) {
	if len(overlay.Accounts) > 0 {
		c.Accounts = overlay.Accounts
	}
}

func (c *SecurityConfig) loadDefaults() {
	if len(c.Accounts) == 0 {
		c.Accounts = []AccountConfig{
			{Username: "admin", Password: "admin123", Role: string(auth.RoleAdmin)},
			{Username: "user", Password: "user123", Role: string(auth.RoleUser)},
		}
	}
}

func (c *SecurityConfig) loadEnv() {
	for i := range c.Accounts {
		switch c.Accounts[i].Role {
		case string(auth.RoleAdmin):
			if v := os.Getenv(EnvSecurityAdminPassword); v != "" {
				c.Accounts[i].Password = v
			}
		case string(auth.RoleUser):
			if v := os.Getenv(EnvSecurityUserPassword); v != "" {
				c.Accounts[i].Password = v
			}
		}
	}
}

func (c *SecurityConfig) validate() error {
	seen := make(map[string]bool, len(c.Accounts))
	for _, account := range c.Accounts {
		if account.Username == "" {
			return fmt.Errorf("account username cannot be blank")
		}
		if account.Password == "" {
			return fmt.Errorf("account %s: password cannot be blank", account.Username)
		}
		if _, err := auth.ParseRole(account.Role); err != nil {
			return fmt.Errorf("account %s: %w", account.Username, err)
		}
		if seen[account.Username] {
			return fmt.Errorf("duplicate account username: %s", account.Username)
		}
		seen[account.Username] = true
	}
	return nil
}
