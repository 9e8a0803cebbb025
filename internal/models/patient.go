package models

import (
	"database/sql"
	"time"
)

const (
	StatusQueued = "queued"
	StatusServed = "served"
)

const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

/*
|--------------------------------------------------------------------------
| DATABASE MODEL (INTERNAL)
|--------------------------------------------------------------------------
| Used for DB queries
*/
type Patient struct {
	ID        int64
	Name      string
	Age       int
	Priority  int
	Status    string
	CreatedAt time.Time
	ServedAt  sql.NullTime
}

/*
|--------------------------------------------------------------------------
| RESPONSE DTO
|--------------------------------------------------------------------------
| Used for API responses
*/
type PatientResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Age       int        `json:"age"`
	Priority  int        `json:"priority"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	ServedAt  *time.Time `json:"served_at,omitempty"`
}

/*
|--------------------------------------------------------------------------
| MAPPER
|--------------------------------------------------------------------------
| Convert Patient (DB) -> PatientResponse (API)
*/
func ToPatientResponse(p Patient) PatientResponse {
	var servedAt *time.Time
	if p.ServedAt.Valid {
		t := p.ServedAt.Time
		servedAt = &t
	}

	return PatientResponse{
		ID:        p.ID,
		Name:      p.Name,
		Age:       p.Age,
		Priority:  p.Priority,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		ServedAt:  servedAt,
	}
}

func ToPatientResponses(patients []Patient) []PatientResponse {
	out := make([]PatientResponse, 0, len(patients))
	for _, p := range patients {
		out = append(out, ToPatientResponse(p))
	}
	return out
}

// PriorityLabel maps a priority class to its display name.
func PriorityLabel(priority int) string {
	switch priority {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return "Unknown"
	}
}

// QueuedLess is the canonical admission order: priority ascending,
// age descending (older first), id ascending as the final tie-break.
// Every read and mutation that depends on "the next patient" must agree
// with this ordering, including the SQL ORDER BY in the MySQL store.
func QueuedLess(a, b Patient) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	if a.Age != b.Age {
		return a.Age > b.Age
	}
	return a.ID < b.ID
}
