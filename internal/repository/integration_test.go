//go:build integration

package repository

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"proveedores/internal/infra"
	"proveedores/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
)

func startMongo(t *testing.T) *mongo.Client {
	t.Helper()
	ctx := context.Background()

	ctr, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctr.Terminate(ctx) })

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)
	client, err := infra.NewMongo(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })
	return client
}

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("proveedores"),
		postgres.WithUsername("proveedores"),
		postgres.WithPassword("proveedores"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctr.Terminate(ctx) })

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestMongoRepository(t *testing.T) {
	client := startMongo(t)

	runRepositoryContract(t, func(t *testing.T) ProveedorRepository {
		db := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
		repo := NewMongoProveedorRepository(client, db)
		require.NoError(t, repo.EnsureIndexes(context.Background()))
		t.Cleanup(func() { _ = client.Database(db).Drop(context.Background()) })
		return repo
	})
}

func TestPostgresRepository(t *testing.T) {
	dsn := startPostgres(t)
	db, err := infra.NewDatabase(dsn)
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(context.Background(), db))
	repo := NewProveedorRepository(db)
	t.Cleanup(func() { _ = repo.Close(context.Background()) })

	runRepositoryContract(t, func(t *testing.T) ProveedorRepository {
		require.NoError(t, repo.DeleteAll(context.Background()))
		return repo
	})
}

// runRepositoryContract checks the behaviour both stores must share.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) ProveedorRepository) {
	ctx := context.Background()

	t.Run("create and find", func(t *testing.T) {
		repo := newRepo(t)
		p := newProveedor("Acme", "12345678901", "Hogar", "Oficina")
		p.Direccion = model.Direccion{Ciudad: "Lima", Pais: "Perú"}
		p.Estadisticas.MontoTotal = decimal.RequireFromString("1234.56")
		require.NoError(t, repo.Create(ctx, p))

		got, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme", got.Nombre)
		assert.Equal(t, []string{"Hogar", "Oficina"}, got.NombresCategorias())
		assert.Equal(t, "Lima", got.Direccion.Ciudad)
		assert.True(t, decimal.RequireFromString("1234.56").Equal(got.Estadisticas.MontoTotal))
		assert.True(t, baseTime.Equal(got.FechaRegistro))

		_, err = repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrProveedorNoEncontrado)
	})

	t.Run("duplicate ruc", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, newProveedor("A", "111")))
		err := repo.Create(ctx, newProveedor("B", "111"))
		var conflict *model.ConflictError
		require.True(t, errors.As(err, &conflict), "got %v", err)
		assert.Equal(t, "111", conflict.Valor)
	})

	t.Run("list sorted and paged", func(t *testing.T) {
		repo := newRepo(t)
		for i, n := range []string{"Delta", "Alfa", "Charlie", "Bravo", "Echo"} {
			require.NoError(t, repo.Create(ctx, newProveedor(n, "ruc-"+string(rune('0'+i)))))
		}
		page, total, err := repo.List(ctx, ProveedorFilter{}, 2, 2)
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		require.Len(t, page, 2)
		assert.Equal(t, "Charlie", page[0].Nombre)
		assert.Equal(t, "Delta", page[1].Nombre)
	})

	t.Run("filters and search", func(t *testing.T) {
		repo := newRepo(t)
		a := newProveedor("Distribuidora Andina", "20111111111", "Bebidas")
		a.EstadoEntrega = model.EntregaRetrasado
		b := newProveedor("Textiles (Sur)", "20222222222", "Ropa")
		b.Estado = model.EstadoSuspendido
		require.NoError(t, repo.Create(ctx, a))
		require.NoError(t, repo.Create(ctx, b))

		got, err := repo.Find(ctx, ProveedorFilter{Estado: model.EstadoSuspendido})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, b.ID, got[0].ID)

		got, err = repo.Find(ctx, ProveedorFilter{EstadoEntrega: model.EntregaRetrasado})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, a.ID, got[0].ID)

		for term, want := range map[string]int{"andina": 1, "BEBIDAS": 1, "2022": 1, "(sur)": 1, ".*": 0, "zzz": 0} {
			got, err := repo.Search(ctx, term)
			require.NoError(t, err)
			assert.Len(t, got, want, "term %q", term)
		}
	})

	t.Run("update keeps statistics", func(t *testing.T) {
		repo := newRepo(t)
		p := newProveedor("Acme", "1", "Hogar")
		require.NoError(t, repo.Create(ctx, p))
		_, err := repo.IncrementarEstadisticas(ctx, p.ID, model.DeltaEstadisticas{TotalOrdenes: 5}, baseTime.Add(time.Second))
		require.NoError(t, err)

		p.Nombre = "Acme SAC"
		p.Estadisticas = model.Estadisticas{}
		p.SetCategorias([]string{"Oficina"})
		p.UltimaActualizacion = baseTime.Add(2 * time.Second)
		require.NoError(t, repo.Update(ctx, p))

		got, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme SAC", got.Nombre)
		assert.Equal(t, []string{"Oficina"}, got.NombresCategorias())
		assert.EqualValues(t, 5, got.Estadisticas.TotalOrdenes)

		missing := newProveedor("X", "2")
		assert.ErrorIs(t, repo.Update(ctx, missing), model.ErrProveedorNoEncontrado)
	})

	t.Run("concurrent increments", func(t *testing.T) {
		repo := newRepo(t)
		p := newProveedor("Acme", "1")
		require.NoError(t, repo.Create(ctx, p))

		const workers = 25
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := repo.IncrementarEstadisticas(ctx, p.ID, model.DeltaEstadisticas{
					TotalOrdenes: 1,
					MontoTotal:   decimal.RequireFromString("0.1"),
				}, baseTime.Add(time.Duration(i+1)*time.Millisecond))
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		got, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.EqualValues(t, workers, got.Estadisticas.TotalOrdenes)
		assert.True(t, decimal.RequireFromString("2.5").Equal(got.Estadisticas.MontoTotal), got.Estadisticas.MontoTotal.String())
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		p := newProveedor("Acme", "1", "Hogar")
		require.NoError(t, repo.Create(ctx, p))
		require.NoError(t, repo.Delete(ctx, p.ID))
		assert.ErrorIs(t, repo.Delete(ctx, p.ID), model.ErrProveedorNoEncontrado)
		_, err := repo.FindByID(ctx, p.ID)
		assert.ErrorIs(t, err, model.ErrProveedorNoEncontrado)
		assert.NoError(t, repo.Ping(ctx))
	})
}
