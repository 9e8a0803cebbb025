package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	"backend-triage/internal/models"
)

//go:embed schema.sql
var schemaSQL string

const patientColumns = "id, name, age, priority, status, created_at, served_at"

// canonical orderings; the queued one must agree with models.QueuedLess
const (
	orderQueued = "ORDER BY priority ASC, age DESC, id ASC"
	orderServed = "ORDER BY served_at DESC, id DESC"
)

// MySQLStore implements PatientStore and UserStore on a MySQL database.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore applies the embedded schema and returns the store.
func NewMySQLStore(db *sql.DB) (*MySQLStore, error) {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return &MySQLStore{db: db}, nil
}

func scanPatient(row interface{ Scan(...any) error }) (models.Patient, error) {
	var p models.Patient
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Priority, &p.Status, &p.CreatedAt, &p.ServedAt)
	return p, err
}

func (s *MySQLStore) queryPatients(query string, args ...any) ([]models.Patient, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	patients := []models.Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}

func (s *MySQLStore) Insert(name string, age, priority int) (models.Patient, error) {
	result, err := s.db.Exec(
		"INSERT INTO patients (name, age, priority, status) VALUES (?, ?, ?, ?)",
		name, age, priority, models.StatusQueued,
	)
	if err != nil {
		return models.Patient{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Patient{}, err
	}
	return s.Get(id)
}

func (s *MySQLStore) NextQueued() (models.Patient, bool, error) {
	row := s.db.QueryRow(
		"SELECT "+patientColumns+" FROM patients WHERE status = ? "+orderQueued+" LIMIT 1",
		models.StatusQueued,
	)
	p, err := scanPatient(row)
	if err == sql.ErrNoRows {
		return models.Patient{}, false, nil
	}
	if err != nil {
		return models.Patient{}, false, err
	}
	return p, true, nil
}

func (s *MySQLStore) MarkServed(id int64) (models.Patient, error) {
	result, err := s.db.Exec(
		"UPDATE patients SET status = ?, served_at = NOW() WHERE id = ? AND status = ?",
		models.StatusServed, id, models.StatusQueued,
	)
	if err != nil {
		return models.Patient{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Patient{}, err
	}
	if affected == 0 {
		return models.Patient{}, ErrNotFound
	}
	return s.Get(id)
}

func (s *MySQLStore) Get(id int64) (models.Patient, error) {
	row := s.db.QueryRow("SELECT "+patientColumns+" FROM patients WHERE id = ?", id)
	p, err := scanPatient(row)
	if err == sql.ErrNoRows {
		return models.Patient{}, ErrNotFound
	}
	return p, err
}

func (s *MySQLStore) ListQueued() ([]models.Patient, error) {
	return s.queryPatients(
		"SELECT "+patientColumns+" FROM patients WHERE status = ? "+orderQueued,
		models.StatusQueued,
	)
}

func (s *MySQLStore) ListServed() ([]models.Patient, error) {
	return s.queryPatients(
		"SELECT "+patientColumns+" FROM patients WHERE status = ? "+orderServed,
		models.StatusServed,
	)
}

func (s *MySQLStore) ListAll() ([]models.Patient, error) {
	return s.queryPatients("SELECT " + patientColumns + " FROM patients ORDER BY id ASC")
}

func (s *MySQLStore) SearchByName(fragment string, limit int) ([]models.Patient, error) {
	// LIKE is case-insensitive under the default collation
	return s.queryPatients(
		"SELECT "+patientColumns+" FROM patients WHERE name LIKE ? ORDER BY id ASC LIMIT ?",
		"%"+fragment+"%", limit,
	)
}

func (s *MySQLStore) DeleteServed(id int64) error {
	result, err := s.db.Exec(
		"DELETE FROM patients WHERE id = ? AND status = ?",
		id, models.StatusServed,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MySQLStore) DeleteAll() (queued, served int, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	row := tx.QueryRow(
		"SELECT COUNT(IF(status = ?, 1, NULL)), COUNT(IF(status = ?, 1, NULL)) FROM patients",
		models.StatusQueued, models.StatusServed,
	)
	if err := row.Scan(&queued, &served); err != nil {
		return 0, 0, err
	}

	if _, err := tx.Exec("DELETE FROM patients"); err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}
	return queued, served, nil
}

/*
|--------------------------------------------------------------------------
| UserStore
|--------------------------------------------------------------------------
*/

func (s *MySQLStore) UserByEmail(email string) (models.User, error) {
	var u models.User
	err := s.db.QueryRow(
		"SELECT id, name, email, password, role, created_at FROM users WHERE email = ?",
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	return u, err
}

func (s *MySQLStore) CreateUser(u models.User) (models.User, error) {
	result, err := s.db.Exec(
		"INSERT INTO users (name, email, password, role) VALUES (?, ?, ?, ?)",
		u.Name, u.Email, u.Password, u.Role,
	)
	if err != nil {
		return models.User{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	u.ID = id
	return u, nil
}
