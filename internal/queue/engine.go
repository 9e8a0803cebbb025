// Package queue implements the triage queue engine: deterministic admission
// order and the state transitions applied against the patient store.
//
// Admission order is priority ascending (1 is most urgent), then age
// descending (older patients first), then id ascending. Serve always releases
// the head of that order.
package queue

import (
	"errors"
	"strings"
	"sync"

	"backend-triage/internal/models"
	"backend-triage/internal/store"
)

const (
	MinAge = 1
	MaxAge = 150
)

// Engine applies queue operations against a PatientStore. Mutating operations
// are serialized behind a single mutex so no two of them interleave; reads go
// straight to the store and observe whole-operation snapshots.
type Engine struct {
	mu    sync.Mutex
	store store.PatientStore
}

func New(s store.PatientStore) *Engine {
	return &Engine{store: s}
}

// Export is the full dump returned by the engine's Export operation. The
// counts are computed from the same snapshot as Patients, never cached.
type Export struct {
	Patients    []models.Patient
	Total       int
	QueuedCount int
	ServedCount int
}

func validateAdmission(name string, age, priority int) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if age < MinAge || age > MaxAge {
		return &ValidationError{Field: "age", Reason: "must be between 1 and 150"}
	}
	if priority < models.PriorityHigh || priority > models.PriorityLow {
		return &ValidationError{Field: "priority", Reason: "must be 1, 2, or 3"}
	}
	return nil
}

// Add admits a patient into the queue. Validation failures leave the store
// untouched.
func (e *Engine) Add(name string, age, priority int) (models.Patient, error) {
	if err := validateAdmission(name, age, priority); err != nil {
		return models.Patient{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.store.Insert(strings.TrimSpace(name), age, priority)
	if err != nil {
		return models.Patient{}, &StorageError{Op: "add", Err: err}
	}
	return p, nil
}

// Serve releases the head-of-queue patient, flipping it to served and
// stamping served_at. Returns ErrEmptyQueue when nobody is waiting.
func (e *Engine) Serve() (models.Patient, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, ok, err := e.store.NextQueued()
	if err != nil {
		return models.Patient{}, &StorageError{Op: "serve", Err: err}
	}
	if !ok {
		return models.Patient{}, ErrEmptyQueue
	}

	served, err := e.store.MarkServed(next.ID)
	if err != nil {
		return models.Patient{}, &StorageError{Op: "serve", Err: err}
	}
	return served, nil
}

// Sort returns the queued patients in canonical admission order. The order is
// fully derived from stored fields, so the operation changes nothing and is
// idempotent; it still takes the mutation lock so the returned list reflects
// a settled state.
func (e *Engine) Sort() ([]models.Patient, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	queued, err := e.store.ListQueued()
	if err != nil {
		return nil, &StorageError{Op: "sort", Err: err}
	}
	return queued, nil
}

// Clear removes every patient, queued and served, and reports how many of
// each were removed. Clearing an empty store succeeds with zero counts.
func (e *Engine) Clear() (queuedRemoved, servedRemoved int, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	queuedRemoved, servedRemoved, err = e.store.DeleteAll()
	if err != nil {
		return 0, 0, &StorageError{Op: "clear", Err: err}
	}
	return queuedRemoved, servedRemoved, nil
}

// RemoveServed deletes a single served patient by id. A queued id is
// rejected with ErrStillQueued; an unknown id with ErrNotFound.
func (e *Engine) RemoveServed(id int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.store.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return &StorageError{Op: "remove_served", Err: err}
	}
	if p.Status != models.StatusServed {
		return ErrStillQueued
	}

	if err := e.store.DeleteServed(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return &StorageError{Op: "remove_served", Err: err}
	}
	return nil
}

// ListQueued returns the waiting patients in canonical admission order.
func (e *Engine) ListQueued() ([]models.Patient, error) {
	queued, err := e.store.ListQueued()
	if err != nil {
		return nil, &StorageError{Op: "list_queued", Err: err}
	}
	return queued, nil
}

// ListServed returns served patients, most recently served first.
func (e *Engine) ListServed() ([]models.Patient, error) {
	served, err := e.store.ListServed()
	if err != nil {
		return nil, &StorageError{Op: "list_served", Err: err}
	}
	return served, nil
}

// NextUp returns the current head-of-queue without mutating anything.
func (e *Engine) NextUp() (models.Patient, error) {
	next, ok, err := e.store.NextQueued()
	if err != nil {
		return models.Patient{}, &StorageError{Op: "next_up", Err: err}
	}
	if !ok {
		return models.Patient{}, ErrEmptyQueue
	}
	return next, nil
}

// FindByName matches patients by case-insensitive name substring, capped at
// five results like the chat lookup it serves.
func (e *Engine) FindByName(fragment string) ([]models.Patient, error) {
	matches, err := e.store.SearchByName(fragment, 5)
	if err != nil {
		return nil, &StorageError{Op: "find_by_name", Err: err}
	}
	return matches, nil
}

// ExportAll dumps every patient in creation order with aggregate counts
// computed from the same snapshot.
func (e *Engine) ExportAll() (Export, error) {
	all, err := e.store.ListAll()
	if err != nil {
		return Export{}, &StorageError{Op: "export", Err: err}
	}

	out := Export{Patients: all, Total: len(all)}
	for _, p := range all {
		switch p.Status {
		case models.StatusQueued:
			out.QueuedCount++
		case models.StatusServed:
			out.ServedCount++
		}
	}
	return out, nil
}
