package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/KirkDiggler/realm-content/internal/catalog"
	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisSourceTestSuite struct {
	suite.Suite
	client *redis.Client
	mock   redismock.ClientMock
	source *catalog.RedisSource
	ctx    context.Context
}

func (s *RedisSourceTestSuite) SetupTest() {
	s.client, s.mock = redismock.NewClientMock()
	s.source = catalog.NewRedisSource(s.client, "realm")
	s.ctx = context.Background()
}

func (s *RedisSourceTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisSourceTestSuite(t *testing.T) {
	suite.Run(t, new(RedisSourceTestSuite))
}

func (s *RedisSourceTestSuite) TestGet() {
	key := catalog.CatalogKey("items", "weapons")

	// Happy path
	s.mock.ExpectGet("realm:items/weapons/catalog").SetVal(weaponsJSON)

	res, err := s.source.Get(s.ctx, key)
	s.Require().NoError(err)
	s.Equal(catalog.FormatJSON, res.Format)
	s.Equal("redis:realm:items/weapons/catalog", res.Location)
	doc, err := res.Decode()
	s.Require().NoError(err)
	s.Equal([]string{"metadata", "weapon_types"}, doc.Keys())

	// Missing
	s.mock.ExpectGet("realm:items/weapons/catalog").RedisNil()

	_, err = s.source.Get(s.ctx, key)
	s.True(rcerr.IsNotFound(err))

	// Dependency error
	s.mock.ExpectGet("realm:items/weapons/catalog").SetErr(errors.New("redis error"))

	_, err = s.source.Get(s.ctx, key)
	s.Error(err)
	s.False(rcerr.IsNotFound(err))
}

func (s *RedisSourceTestSuite) TestPut() {
	key := catalog.CatalogKey("materials")
	doc, err := catalog.ParseJSON([]byte(`{"material_types":{"metals":{"items":[{"name":"Iron"}]}}}`))
	s.Require().NoError(err)

	// Happy path
	s.mock.ExpectSet("realm:materials/catalog", `{"material_types":{"metals":{"items":[{"name":"Iron"}]}}}`, 0).SetVal("OK")
	s.mock.ExpectSAdd("realm:keys", "materials/catalog").SetVal(1)

	s.NoError(s.source.Put(s.ctx, key, doc))

	// Dependency error
	s.mock.ExpectSet("realm:materials/catalog", `{"material_types":{"metals":{"items":[{"name":"Iron"}]}}}`, 0).SetErr(errors.New("redis error"))

	s.Error(s.source.Put(s.ctx, key, doc))
}

func (s *RedisSourceTestSuite) TestList() {
	s.mock.ExpectSMembers("realm:keys").SetVal([]string{"npcs/nobles/names", "items/weapons/catalog"})

	keys, err := s.source.List(s.ctx)
	s.Require().NoError(err)
	s.Equal([]catalog.Key{
		catalog.CatalogKey("items", "weapons"),
		catalog.NamesKey("npcs", "nobles"),
	}, keys)
}

func (s *RedisSourceTestSuite) TestDefaultPrefix() {
	source := catalog.NewRedisSource(s.client, "")
	s.mock.ExpectGet("catalog:materials/catalog").RedisNil()

	_, err := source.Get(s.ctx, catalog.CatalogKey("materials"))
	s.True(rcerr.IsNotFound(err))
}
