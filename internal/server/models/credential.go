// Package models holds the server-side records persisted in PostgreSQL.
package models

// Credential pairs an email with the bcrypt hash of its password.
type Credential struct {
	ID    int64
	Email string
	Hash  string
}
