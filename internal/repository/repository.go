// Package repository is the Postgres-backed store for registrations, categories,
// panchayaths and admin accounts.
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

const uniqueViolation = "23505"

type Store struct {
	Registrations *RegistrationRepository
	Categories    *CategoryRepository
	Panchayaths   *PanchayathRepository
	Admins        *AdminRepository
}

func New(db *sql.DB) *Store {
	return &Store{
		Registrations: &RegistrationRepository{db: db},
		Categories:    &CategoryRepository{db: db},
		Panchayaths:   &PanchayathRepository{db: db},
		Admins:        &AdminRepository{db: db},
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// classify maps driver errors onto ErrNotFound and ErrDuplicate.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Constraint)
	}
	return err
}

// validID rejects ids that could never match a UUID primary key.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullBool(p *bool) sql.NullBool {
	if p == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *p, Valid: true}
}

func emptyAsNull(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
