package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"backend-triage/internal/models"
)

// MemoryStore is an in-memory PatientStore/UserStore used by tests. It keeps
// the same ordering and error semantics as the MySQL store.
type MemoryStore struct {
	mu        sync.RWMutex
	patients  map[int64]*models.Patient
	servedSeq map[int64]int // serve order, for most-recent-first listing
	users     map[string]models.User
	nextID    int64
	nextUser  int64
	seq       int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		patients:  make(map[int64]*models.Patient),
		servedSeq: make(map[int64]int),
		users:     make(map[string]models.User),
		nextID:    1,
		nextUser:  1,
	}
}

func (s *MemoryStore) Insert(name string, age, priority int) (models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := models.Patient{
		ID:        s.nextID,
		Name:      name,
		Age:       age,
		Priority:  priority,
		Status:    models.StatusQueued,
		CreatedAt: time.Now(),
	}
	s.nextID++ // ids are never reused, even across DeleteAll
	s.patients[p.ID] = &p
	return p, nil
}

func (s *MemoryStore) NextQueued() (models.Patient, bool, error) {
	queued, _ := s.ListQueued()
	if len(queued) == 0 {
		return models.Patient{}, false, nil
	}
	return queued[0], true, nil
}

func (s *MemoryStore) MarkServed(id int64) (models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.patients[id]
	if !ok || p.Status != models.StatusQueued {
		return models.Patient{}, ErrNotFound
	}

	now := time.Now()
	p.Status = models.StatusServed
	p.ServedAt.Time = now
	p.ServedAt.Valid = true
	s.seq++
	s.servedSeq[id] = s.seq
	return *p, nil
}

func (s *MemoryStore) Get(id int64) (models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.patients[id]
	if !ok {
		return models.Patient{}, ErrNotFound
	}
	return *p, nil
}

func (s *MemoryStore) ListQueued() ([]models.Patient, error) {
	patients := s.listByStatus(models.StatusQueued)
	sort.SliceStable(patients, func(i, j int) bool {
		return models.QueuedLess(patients[i], patients[j])
	})
	return patients, nil
}

func (s *MemoryStore) ListServed() ([]models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	patients := []models.Patient{}
	for _, p := range s.patients {
		if p.Status == models.StatusServed {
			patients = append(patients, *p)
		}
	}
	seq := s.servedSeq
	sort.SliceStable(patients, func(i, j int) bool {
		return seq[patients[i].ID] > seq[patients[j].ID]
	})
	return patients, nil
}

func (s *MemoryStore) ListAll() ([]models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	patients := []models.Patient{}
	for _, p := range s.patients {
		patients = append(patients, *p)
	}
	sort.SliceStable(patients, func(i, j int) bool {
		return patients[i].ID < patients[j].ID
	})
	return patients, nil
}

func (s *MemoryStore) SearchByName(fragment string, limit int) ([]models.Patient, error) {
	all, _ := s.ListAll()
	needle := strings.ToLower(fragment)

	matches := []models.Patient{}
	for _, p := range all {
		if len(matches) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (s *MemoryStore) DeleteServed(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.patients[id]
	if !ok || p.Status != models.StatusServed {
		return ErrNotFound
	}
	delete(s.patients, id)
	delete(s.servedSeq, id)
	return nil
}

func (s *MemoryStore) DeleteAll() (queued, served int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.patients {
		if p.Status == models.StatusQueued {
			queued++
		} else {
			served++
		}
	}
	s.patients = make(map[int64]*models.Patient)
	s.servedSeq = make(map[int64]int)
	return queued, served, nil
}

func (s *MemoryStore) listByStatus(status string) []models.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()

	patients := []models.Patient{}
	for _, p := range s.patients {
		if p.Status == status {
			patients = append(patients, *p)
		}
	}
	return patients
}

/*
|--------------------------------------------------------------------------
| UserStore
|--------------------------------------------------------------------------
*/

func (s *MemoryStore) UserByEmail(email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (s *MemoryStore) CreateUser(u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.nextUser
	u.CreatedAt = time.Now()
	s.nextUser++
	s.users[u.Email] = u
	return u, nil
}
