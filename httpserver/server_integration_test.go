package httpserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"catalog/httpserver"
	"catalog/movie"
	"catalog/postgres"
	"catalog/user"

	"github.com/docker/go-connections/nat"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func MustCreateServer(t testing.TB, db *gorm.DB) *httpserver.Server {
	t.Helper()

	server, err := httpserver.New(
		httpserver.WithConfig(testConfig()),
		httpserver.WithMovieService(movie.NewUsecase(postgres.NewMovieRepository(db))),
		httpserver.WithUserService(user.NewUsecase(postgres.NewUserRepository(db))),
	)
	require.NoError(t, err)

	return server
}

// MustCreateTestDatabase starts a throwaway PostgreSQL container and returns
// a GORM connection to it.
func MustCreateTestDatabase(t testing.TB) *gorm.DB {
	t.Helper()
	ctx := context.Background()
	dbName, dbUser, dbPass := "test_catalog", "test", "testpass"
	postgre, err := pgcontainer.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:15.2-alpine"),
		pgcontainer.WithDatabase(dbName),
		pgcontainer.WithUsername(dbUser),
		pgcontainer.WithPassword(dbPass),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		err := postgre.Terminate(ctx)
		assert.NoError(t, err, "failed to terminate postgres container")
	})

	host, port := extractHostAndPort(t, ctx, postgre)
	db, err := postgres.NewConnection(postgres.Options{
		DBName:   dbName,
		DBUser:   dbUser,
		Password: dbPass,
		Host:     host,
		Port:     port.Port(),
	})
	require.NoError(t, err, "failed to connect to postgres database")

	return db
}

func extractHostAndPort(t testing.TB, ctx context.Context, postgre *pgcontainer.PostgresContainer) (string, nat.Port) {
	t.Helper()
	host, err := postgre.Host(ctx)
	assert.NoError(t, err, "failed to get container host")

	port, err := postgre.MappedPort(ctx, "5432")
	assert.NoError(t, err, "failed to get mapped port")
	return host, port
}

// MigrateTestDatabase runs all migration files against the test database.
func MigrateTestDatabase(t testing.TB, db *gorm.DB, migrationPath string) {
	t.Helper()
	migrations := &migrate.FileMigrationSource{
		Dir: migrationPath,
	}

	sqlDB, err := db.DB()
	require.NoError(t, err, "failed to get sql.DB from gorm.DB")

	_, err = migrate.Exec(sqlDB, "postgres", migrations, migrate.Up)
	require.NoError(t, err, "failed to run database migrations")
}

func TestCatalogIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := MustCreateTestDatabase(t)
	MigrateTestDatabase(t, db, "../migrations")
	server := MustCreateServer(t, db)

	t.Run("movie lifecycle", func(t *testing.T) {
		rec := serve(server, newJSONRequest(t, http.MethodPost, "/movies", moviePayload()))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "1", strings.TrimSpace(rec.Body.String()))

		rec = serve(server, httptest.NewRequest(http.MethodGet, "/movies/1", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"movieId": "1",
			"title": "Alien",
			"director": "Ridley Scott",
			"category": "Horror",
			"screeningFromTime": "2020-01-01T10:00:00Z",
			"screeningToTime": "2020-01-01T12:00:00Z"
		}`, rec.Body.String())

		rec = serve(server, newRawRequest(http.MethodPut, "/movies/1/title", "text/plain", "Aliens\n"))
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = serve(server, httptest.NewRequest(http.MethodGet, "/movies?title=Aliens", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeMovies(t, rec), 1)

		p := moviePayload()
		p["movieId"] = "1"
		p["category"] = "Sci-Fi"
		rec = serve(server, newJSONRequest(t, http.MethodPut, "/movies/1", p))
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = serve(server, httptest.NewRequest(http.MethodGet, "/movies?category=Sci-Fi", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		dtos := decodeMovies(t, rec)
		require.Len(t, dtos, 1)
		assert.Equal(t, "Alien", *dtos[0].Title)

		rec = serve(server, httptest.NewRequest(http.MethodDelete, "/movies/1", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = serve(server, httptest.NewRequest(http.MethodGet, "/movies/1", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = serve(server, httptest.NewRequest(http.MethodDelete, "/movies/1", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("update of missing movie is not an upsert", func(t *testing.T) {
		p := moviePayload()
		p["movieId"] = "42"

		rec := serve(server, newJSONRequest(t, http.MethodPut, "/movies/42", p))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("usernames are unique", func(t *testing.T) {
		rec := serve(server, newJSONRequest(t, http.MethodPost, "/users", userPayload()))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "1", strings.TrimSpace(rec.Body.String()))

		other := map[string]string{"username": "other", "mail": "o@example.com", "address": "2 Side Street"}
		rec = serve(server, newJSONRequest(t, http.MethodPost, "/users", other))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = serve(server, newJSONRequest(t, http.MethodPost, "/users", userPayload()))
		assert.Equal(t, http.StatusConflict, rec.Code)

		rec = serve(server, newRawRequest(http.MethodPut, "/users/2/username", "text/plain", "jdoe"))
		assert.Equal(t, http.StatusConflict, rec.Code)

		rec = serve(server, newRawRequest(http.MethodPut, "/users/2/username", "text/plain", "renamed"))
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = serve(server, httptest.NewRequest(http.MethodGet, "/users?username=renamed", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"userId":"2","username":"renamed","mail":"o@example.com","address":"2 Side Street"}]`, rec.Body.String())

		rec = serve(server, newRawRequest(http.MethodPut, "/users/99/username", "text/plain", "ghost"))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
