package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Credentials is a stored account record with a bcrypt password hash.
type Credentials struct {
	Username     string
	PasswordHash []byte
	Role         Role
}

// Verify checks a cleartext password against the stored hash.
func (c Credentials) Verify(password string) error {
	if err := bcrypt.CompareHashAndPassword(c.PasswordHash, []byte(password)); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, c.Username)
	}
	return nil
}

// Source resolves usernames to stored credentials.
type Source interface {
	Lookup(username string) (Credentials, bool)
}

// Account is a cleartext account definition used to seed a Source.
type Account struct {
	Username string
	Password string
	Role     Role
}

// StaticSource holds an in-memory credential table hashed at construction.
type StaticSource struct {
	accounts map[string]Credentials
}

// NewStaticSource hashes the given accounts into a StaticSource.
func NewStaticSource(accounts []Account) (*StaticSource, error) {
	source := &StaticSource{
		accounts: make(map[string]Credentials, len(accounts)),
	}

	for _, account := range accounts {
		username := strings.TrimSpace(account.Username)
		if username == "" {
			return nil, fmt.Errorf("account username cannot be blank")
		}

		hash, err := bcrypt.GenerateFromPassword(
			[]byte(account.Password),
			bcrypt.DefaultCost,
		)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", username, err)
		}

		source.accounts[username] = Credentials{
			Username:     username,
			PasswordHash: hash,
			Role:         account.Role,
		}
	}

	return source, nil
}

func (s *StaticSource) Lookup(username string) (Credentials, bool) {
	credentials, ok := s.accounts[username]
	return credentials, ok
}
