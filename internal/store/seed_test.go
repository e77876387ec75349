package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"pharma-service/internal/model"
	"pharma-service/internal/store"
	"pharma-service/internal/store/filestore"
	"pharma-service/pkg/config"
)

func newSeededStore(t *testing.T) store.Store {
	t.Helper()
	s, err := filestore.New(t.TempDir(), store.Options{ValidationMode: config.ValidationLoose}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.Seed(s, zap.NewNop()))
	return s
}

func TestSeedPopulatesCollections(t *testing.T) {
	t.Parallel()
	s := newSeededStore(t)

	users, err := s.List(model.CollectionUsers)
	require.NoError(t, err)
	require.Len(t, users, 9)

	roles := make(map[string]bool)
	for _, u := range users {
		roles[u.String("role")] = true
		assert.NotEmpty(t, u.ID())
		assert.NotEmpty(t, u.String("createdAt"))
	}
	// one demo account per role
	assert.Len(t, roles, 9)

	medicines, err := s.List(model.CollectionMedicines)
	require.NoError(t, err)
	assert.Len(t, medicines, 5)

	orders, err := s.List(model.CollectionOrders)
	require.NoError(t, err)
	assert.Empty(t, orders)

	reports, err := s.List(model.CollectionReports)
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestSeedHashesPasswords(t *testing.T) {
	t.Parallel()
	s := newSeededStore(t)

	users, err := s.List(model.CollectionUsers)
	require.NoError(t, err)

	var admin model.Record
	for _, u := range users {
		if u.String("email") == "admin@pharma.com" {
			admin = u
		}
	}
	require.NotNil(t, admin)

	hash := admin.String("password")
	assert.NotEqual(t, "admin123", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("admin123")))
}

func TestSeedIsIdempotent(t *testing.T) {
	t.Parallel()
	s := newSeededStore(t)

	before, err := s.List(model.CollectionUsers)
	require.NoError(t, err)

	require.NoError(t, store.Seed(s, zap.NewNop()))

	after, err := s.List(model.CollectionUsers)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	medicines, err := s.List(model.CollectionMedicines)
	require.NoError(t, err)
	assert.Len(t, medicines, 5)
}

func TestSeedDoesNotRestoreDeletedRecords(t *testing.T) {
	t.Parallel()
	s := newSeededStore(t)

	users, err := s.List(model.CollectionUsers)
	require.NoError(t, err)
	for _, u := range users {
		require.NoError(t, s.Delete(model.CollectionUsers, u.ID()))
	}

	require.NoError(t, store.Seed(s, zap.NewNop()))

	users, err = s.List(model.CollectionUsers)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestSeedLeavesExistingDataAlone(t *testing.T) {
	t.Parallel()
	s, err := filestore.New(t.TempDir(), store.Options{ValidationMode: config.ValidationLoose}, zap.NewNop())
	require.NoError(t, err)

	_, err = s.Create(model.CollectionUsers, model.Record{"email": "only@user.com"})
	require.NoError(t, err)

	require.NoError(t, store.Seed(s, zap.NewNop()))

	users, err := s.List(model.CollectionUsers)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "only@user.com", users[0].String("email"))
}
