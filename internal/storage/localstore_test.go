package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// LocalStoreTestSuite provides a test suite for local state operations
type LocalStoreTestSuite struct {
	suite.Suite
	store *LocalStore
	ctx   context.Context
}

// SetupTest runs before each test
func (suite *LocalStoreTestSuite) SetupTest() {
	dbPath := filepath.Join(suite.T().TempDir(), "session.db")
	store, err := NewLocalStore(dbPath)
	require.NoError(suite.T(), err, "failed to create test store")
	suite.store = store
	suite.ctx = context.Background()
}

// TearDownTest runs after each test
func (suite *LocalStoreTestSuite) TearDownTest() {
	if suite.store != nil {
		suite.store.Close()
	}
}

func (suite *LocalStoreTestSuite) TestGetMissingKey() {
	_, ok, err := suite.store.Get(suite.ctx, "token")
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
}

func (suite *LocalStoreTestSuite) TestSetAndGet() {
	err := suite.store.Set(suite.ctx, "token", "abc123")
	require.NoError(suite.T(), err)

	value, ok, err := suite.store.Get(suite.ctx, "token")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "abc123", value)
}

func (suite *LocalStoreTestSuite) TestSetReplaces() {
	require.NoError(suite.T(), suite.store.Set(suite.ctx, "user_type", `"admin"`))
	require.NoError(suite.T(), suite.store.Set(suite.ctx, "user_type", "standard"))

	value, ok, err := suite.store.Get(suite.ctx, "user_type")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "standard", value)
}

func (suite *LocalStoreTestSuite) TestDelete() {
	require.NoError(suite.T(), suite.store.Set(suite.ctx, "token", "abc"))
	require.NoError(suite.T(), suite.store.Set(suite.ctx, "user", `{"email":"a@b.c"}`))

	err := suite.store.Delete(suite.ctx, "token", "user", "never_set")
	require.NoError(suite.T(), err)

	_, ok, err := suite.store.Get(suite.ctx, "token")
	require.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
	_, ok, err = suite.store.Get(suite.ctx, "user")
	require.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
}

func (suite *LocalStoreTestSuite) TestReopenKeepsState() {
	dbPath := filepath.Join(suite.T().TempDir(), "session.db")
	store, err := NewLocalStore(dbPath)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), store.Set(suite.ctx, "token", "persisted"))
	require.NoError(suite.T(), store.Close())

	reopened, err := NewLocalStore(dbPath)
	require.NoError(suite.T(), err)
	defer reopened.Close()

	value, ok, err := reopened.Get(suite.ctx, "token")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "persisted", value)
}

func TestLocalStoreTestSuite(t *testing.T) {
	suite.Run(t, new(LocalStoreTestSuite))
}
