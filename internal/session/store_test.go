package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

func testSession() *Session {
	return &Session{
		Token: "token-123",
		User:  &models.User{ID: "u1", Username: "admin", Name: "Administrador"},
	}
}

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.Save(ctx, testSession()))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-123", got.Token)
	require.NotNil(t, got.User)
	assert.Equal(t, "admin", got.User.Username)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	// Clearing twice is safe.
	require.NoError(t, store.Clear(ctx))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_SaveCopies(t *testing.T) {
	store := NewMemoryStore()
	s := testSession()
	require.NoError(t, store.Save(context.Background(), s))
	s.Token = "mutated"

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-123", got.Token)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	exerciseStore(t, NewFileStore(path))
}

func TestFileStore_SurvivesNewInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, NewFileStore(path).Save(context.Background(), testSession()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-123", got.Token)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}

// MockSessionCollection is a mock implementation of db.SessionCollection
type MockSessionCollection struct {
	mock.Mock
}

func (m *MockSessionCollection) FindSession(ctx context.Context, profile string) (*db.SessionDocument, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.SessionDocument), args.Error(1)
}

func (m *MockSessionCollection) UpsertSession(ctx context.Context, doc db.SessionDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockSessionCollection) DeleteSession(ctx context.Context, profile string) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func TestMongoStore(t *testing.T) {
	ctx := context.Background()

	t.Run("load missing", func(t *testing.T) {
		coll := new(MockSessionCollection)
		coll.On("FindSession", mock.Anything, "work").Return(nil, db.ErrSessionNotFound)

		_, err := NewMongoStore(coll, "work").Load(ctx)
		assert.ErrorIs(t, err, ErrNoSession)
		coll.AssertExpectations(t)
	})

	t.Run("load existing", func(t *testing.T) {
		coll := new(MockSessionCollection)
		coll.On("FindSession", mock.Anything, "work").Return(&db.SessionDocument{
			Profile: "work",
			Token:   "abc",
			User:    &models.User{Username: "admin"},
		}, nil)

		got, err := NewMongoStore(coll, "work").Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "abc", got.Token)
		assert.Equal(t, "admin", got.User.Username)
	})

	t.Run("load backend error", func(t *testing.T) {
		coll := new(MockSessionCollection)
		coll.On("FindSession", mock.Anything, "work").Return(nil, assert.AnError)

		_, err := NewMongoStore(coll, "work").Load(ctx)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("save writes token and user together", func(t *testing.T) {
		coll := new(MockSessionCollection)
		coll.On("UpsertSession", mock.Anything, mock.MatchedBy(func(doc db.SessionDocument) bool {
			return doc.Profile == "work" && doc.Token == "token-123" && doc.User != nil && doc.User.ID == "u1"
		})).Return(nil)

		require.NoError(t, NewMongoStore(coll, "work").Save(ctx, testSession()))
		coll.AssertExpectations(t)
	})

	t.Run("clear", func(t *testing.T) {
		coll := new(MockSessionCollection)
		coll.On("DeleteSession", mock.Anything, "work").Return(nil)

		require.NoError(t, NewMongoStore(coll, "work").Clear(ctx))
		coll.AssertExpectations(t)
	})
}

// Integration test (requires running Redis)
func TestRedisStore_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping integration test")
	}
	client, err := db.ConnectRedis(context.Background(), addr, os.Getenv("REDIS_PASSWORD"), 0)
	if err != nil {
		t.Skipf("failed to connect: %v, skipping integration test", err)
	}
	defer client.Close()

	store := NewRedisStore(client, "test-"+t.Name(), 0)
	require.NoError(t, store.Clear(context.Background()))
	exerciseStore(t, store)
}
