package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SamarthKasar123/Primewave/models"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("document not found")

// ProjectStore reads and writes whole Project documents. Each lifecycle
// operation is a read of one document followed by a replace; there is no
// transactional guard, so concurrent writers race and the last write wins.
type ProjectStore interface {
	Insert(ctx context.Context, p *models.Project) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	// FindByClient returns the client's projects, newest created first.
	FindByClient(ctx context.Context, clientID primitive.ObjectID) ([]models.Project, error)
	// FindAll returns every project, newest created first.
	FindAll(ctx context.Context) ([]models.Project, error)
	Replace(ctx context.Context, p *models.Project) error
}

type ClientStore interface {
	Insert(ctx context.Context, c *models.Client) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error)
	FindByEmail(ctx context.Context, email string) (*models.Client, error)
}

type ManagerStore interface {
	Insert(ctx context.Context, m *models.Manager) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Manager, error)
	FindByUsername(ctx context.Context, username string) (*models.Manager, error)
}

// Pinger reports whether the backing store is reachable right now. The
// health endpoint calls it per request instead of caching connectivity in
// process-wide state.
type Pinger interface {
	Ping(ctx context.Context) error
}
