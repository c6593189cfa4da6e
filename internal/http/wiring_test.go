package http

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	eventDomain "github.com/allisson/analytics/internal/event/domain"
	eventHTTP "github.com/allisson/analytics/internal/event/http"
	eventUseCase "github.com/allisson/analytics/internal/event/usecase"
	postDomain "github.com/allisson/analytics/internal/post/domain"
	postHTTP "github.com/allisson/analytics/internal/post/http"
	userDomain "github.com/allisson/analytics/internal/user/domain"
	userHTTP "github.com/allisson/analytics/internal/user/http"
	userUseCase "github.com/allisson/analytics/internal/user/usecase"

	authService "github.com/allisson/analytics/internal/auth/service"
	dbMocks "github.com/allisson/analytics/internal/database/mocks"
)

// newWiredServer assembles a Server on top of in-memory repositories so the
// tests can drive the real middleware chain, handlers and use cases.
func newWiredServer(t *testing.T, db *sql.DB) *Server {
	t.Helper()

	cfg := testConfig()
	logger := discardLogger()
	tokenService := authService.NewJWTTokenService(cfg)

	users, err := userUseCase.NewUserUseCase(
		dbMocks.PassthroughTxManager{},
		newMemUserRepository(),
		tokenService,
	)
	require.NoError(t, err)

	events := eventUseCase.NewEventUseCase(dbMocks.PassthroughTxManager{}, newMemEventRepository())

	deps := RouterDeps{
		TokenService: tokenService,
		UserUseCase:  users,
		AuthHandler:  userHTTP.NewAuthHandler(users, logger),
		UserHandler:  userHTTP.NewUserHandler(users, logger),
		EventHandler: eventHTTP.NewEventHandler(events, logger),
		PostHandler:  postHTTP.NewPostHandler(stubPostService{}, logger),
	}

	return NewServer(cfg, logger, db, deps)
}

// memUserRepository is an in-memory UserRepository for wiring tests. Deleted
// accounts stay in the map so Exists checks keep matching them, mirroring the
// SQL repositories.
type memUserRepository struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*userDomain.User
	deleted map[uuid.UUID]bool
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{
		users:   map[uuid.UUID]*userDomain.User{},
		deleted: map[uuid.UUID]bool{},
	}
}

func (r *memUserRepository) Create(_ context.Context, user *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username {
			return userDomain.ErrUsernameTaken
		}
		if existing.Email == user.Email {
			return userDomain.ErrEmailTaken
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepository) GetByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok || r.deleted[id] {
		return nil, userDomain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepository) GetByUsername(_ context.Context, username string) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username && !r.deleted[user.ID] {
			copied := *user
			return &copied, nil
		}
	}
	return nil, userDomain.ErrUserNotFound
}

func (r *memUserRepository) ListAll(_ context.Context, offset, limit int) ([]*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := []*userDomain.User{}
	for _, user := range r.users {
		if r.deleted[user.ID] {
			continue
		}
		copied := *user
		users = append(users, &copied)
	}
	// UUIDv7 IDs are time-ordered, so sorting by ID descending yields
	// newest first like the SQL repositories.
	sort.Slice(users, func(i, j int) bool {
		return users[i].ID.String() > users[j].ID.String()
	})

	if offset >= len(users) {
		return []*userDomain.User{}, nil
	}
	end := offset + limit
	if end > len(users) {
		end = len(users)
	}
	return users[offset:end], nil
}

func (r *memUserRepository) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok || r.deleted[id] {
		return userDomain.ErrUserNotFound
	}
	r.deleted[id] = true
	return nil
}

func (r *memUserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// memEventRepository is an in-memory EventRepository for wiring tests. Reads
// skip soft-deleted rows the same way the SQL repositories do.
type memEventRepository struct {
	mu     sync.Mutex
	events map[uuid.UUID]*eventDomain.Event
}

func newMemEventRepository() *memEventRepository {
	return &memEventRepository{events: map[uuid.UUID]*eventDomain.Event{}}
}

func (r *memEventRepository) Create(_ context.Context, event *eventDomain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *event
	r.events[event.ID] = &copied
	return nil
}

func (r *memEventRepository) GetByID(_ context.Context, id uuid.UUID) (*eventDomain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[id]
	if !ok || event.DeletedAt != nil {
		return nil, eventDomain.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *memEventRepository) ListByUserID(_ context.Context, userID uuid.UUID, offset, limit int) ([]*eventDomain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owned := []*eventDomain.Event{}
	for _, event := range r.events {
		if event.UserID == userID && event.DeletedAt == nil {
			copied := *event
			owned = append(owned, &copied)
		}
	}
	if offset >= len(owned) {
		return []*eventDomain.Event{}, nil
	}
	owned = owned[offset:]
	if limit < len(owned) {
		owned = owned[:limit]
	}
	return owned, nil
}

func (r *memEventRepository) Update(_ context.Context, event *eventDomain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.events[event.ID]
	if !ok || existing.DeletedAt != nil {
		return eventDomain.ErrEventNotFound
	}
	copied := *event
	r.events[event.ID] = &copied
	return nil
}

func (r *memEventRepository) SoftDelete(_ context.Context, id, deletedBy uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[id]
	if !ok || event.DeletedAt != nil {
		return eventDomain.ErrEventNotFound
	}
	now := time.Now().UTC()
	event.DeletedAt = &now
	event.DeletedBy = &deletedBy
	return nil
}

// stubPostService returns canned posts without an upstream call.
type stubPostService struct{}

func (stubPostService) List(_ context.Context) ([]*postDomain.Post, error) {
	return []*postDomain.Post{{UserID: 1, ID: 1, Title: "hello", Body: "world"}}, nil
}

func (stubPostService) Get(_ context.Context, id int) (*postDomain.Post, error) {
	return &postDomain.Post{UserID: 1, ID: id, Title: "hello", Body: "world"}, nil
}
