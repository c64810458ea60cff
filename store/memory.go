package store

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SamarthKasar123/Primewave/models"
)

// MemoryProjectStore is the in-process stand-in for the projects
// collection. The server falls back to it when no MONGO_URI is configured,
// matching the original development setup, and the test suite runs on it.
type MemoryProjectStore struct {
	mu       sync.RWMutex
	projects map[primitive.ObjectID]models.Project
}

func NewMemoryProjectStore() *MemoryProjectStore {
	return &MemoryProjectStore{projects: make(map[primitive.ObjectID]models.Project)}
}

func (s *MemoryProjectStore) Insert(ctx context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.projects[p.ID] = clone(p)
	return nil
}

func (s *MemoryProjectStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := clone(&p)
	return &out, nil
}

func (s *MemoryProjectStore) FindByClient(ctx context.Context, clientID primitive.ObjectID) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var projects []models.Project
	for _, p := range s.projects {
		if p.Client == clientID {
			projects = append(projects, clone(&p))
		}
	}
	sortNewestFirst(projects)
	return projects, nil
}

func (s *MemoryProjectStore) FindAll(ctx context.Context) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	projects := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		projects = append(projects, clone(&p))
	}
	sortNewestFirst(projects)
	return projects, nil
}

func (s *MemoryProjectStore) Replace(ctx context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[p.ID]; !ok {
		return ErrNotFound
	}
	s.projects[p.ID] = clone(p)
	return nil
}

func (s *MemoryProjectStore) Ping(ctx context.Context) error { return nil }

// clone copies a project so callers never share pointers into the map.
func clone(p *models.Project) models.Project {
	out := *p
	if p.AssignedManager != nil {
		id := *p.AssignedManager
		out.AssignedManager = &id
	}
	if p.DeadlineExtension != nil {
		ext := *p.DeadlineExtension
		out.DeadlineExtension = &ext
	}
	return out
}

func sortNewestFirst(projects []models.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
}

type MemoryClientStore struct {
	mu      sync.RWMutex
	clients map[primitive.ObjectID]models.Client
}

func NewMemoryClientStore() *MemoryClientStore {
	return &MemoryClientStore{clients: make(map[primitive.ObjectID]models.Client)}
}

func (s *MemoryClientStore) Insert(ctx context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	s.clients[c.ID] = *c
	return nil
}

func (s *MemoryClientStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemoryClientStore) FindByEmail(ctx context.Context, email string) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.Email == email {
			out := c
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

type MemoryManagerStore struct {
	mu       sync.RWMutex
	managers map[primitive.ObjectID]models.Manager
}

func NewMemoryManagerStore() *MemoryManagerStore {
	return &MemoryManagerStore{managers: make(map[primitive.ObjectID]models.Manager)}
}

func (s *MemoryManagerStore) Insert(ctx context.Context, m *models.Manager) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	s.managers[m.ID] = *m
	return nil
}

func (s *MemoryManagerStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Manager, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.managers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (s *MemoryManagerStore) FindByUsername(ctx context.Context, username string) (*models.Manager, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.managers {
		if m.Username == username {
			out := m
			return &out, nil
		}
	}
	return nil, ErrNotFound
}
