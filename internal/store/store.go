// Package store persists patient and staff records. The MySQL store is the
// production implementation; the memory store backs the tests with identical
// ordering semantics.
package store

import (
	"errors"

	"backend-triage/internal/models"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// PatientStore is the persistence boundary for the queue engine. Each method
// is a single atomic unit; the engine serializes calls that mutate state.
type PatientStore interface {
	// Insert creates a queued patient and returns it with its assigned id
	// and creation timestamp.
	Insert(name string, age, priority int) (models.Patient, error)

	// NextQueued returns the head-of-queue patient under the canonical
	// order. ok is false when no patient is queued.
	NextQueued() (p models.Patient, ok bool, err error)

	// MarkServed flips a queued patient to served and stamps served_at.
	// Returns ErrNotFound if the id does not name a queued patient.
	MarkServed(id int64) (models.Patient, error)

	// Get returns a patient by id regardless of status.
	Get(id int64) (models.Patient, error)

	// ListQueued returns queued patients in canonical admission order.
	ListQueued() ([]models.Patient, error)

	// ListServed returns served patients, most recently served first.
	ListServed() ([]models.Patient, error)

	// ListAll returns every patient in creation order.
	ListAll() ([]models.Patient, error)

	// SearchByName matches stored names by case-insensitive substring.
	SearchByName(fragment string, limit int) ([]models.Patient, error)

	// DeleteServed removes a single served patient by id. Returns
	// ErrNotFound if no served patient has that id.
	DeleteServed(id int64) error

	// DeleteAll removes every patient and reports how many of each status
	// were removed. The removal and the counts come from one transaction.
	DeleteAll() (queued, served int, err error)
}

// UserStore persists staff accounts for login and user administration.
type UserStore interface {
	// UserByEmail returns ErrNotFound when no account matches.
	UserByEmail(email string) (models.User, error)

	// CreateUser inserts an account and returns it with its assigned id.
	CreateUser(u models.User) (models.User, error)
}
