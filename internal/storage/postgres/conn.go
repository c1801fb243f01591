package postgres

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateConnString checks that connStr looks like a usable postgres URL.
func ValidateConnString(connStr string) error {
	if !strings.HasPrefix(connStr, "postgres://") && !strings.HasPrefix(connStr, "postgresql://") {
		return fmt.Errorf("connection string must start with postgres:// or postgresql://")
	}
	u, err := url.Parse(connStr)
	if err != nil {
		return fmt.Errorf("invalid connection string: %w", err)
	}
	if u.Host == "" {
		return fmt.Errorf("connection string is missing a host")
	}
	return nil
}

// HasEmbeddedCredentials reports whether connStr carries a password inline.
// Inline passwords end up in shell history; the keyring is the supported
// place for them.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

// RedactConnString replaces any inline password with xxxxx for display.
func RedactConnString(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil || u.User == nil {
		return connStr
	}
	if _, hasPassword := u.User.Password(); !hasPassword {
		return connStr
	}
	u.User = url.UserPassword(u.User.Username(), "xxxxx")
	return u.String()
}
