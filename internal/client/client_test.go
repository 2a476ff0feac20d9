package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"proveedores/internal/config"
	"proveedores/internal/dto"
	"proveedores/internal/infra"
	"proveedores/internal/repository"
	"proveedores/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func startServer(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, infra.Migrate(context.Background(), db))

	cfg := &config.Config{Env: "test", StoreDriver: config.DriverPostgres, RequestTimeoutSeconds: 5}
	srv := httptest.NewServer(router.New(cfg, repository.NewProveedorRepository(db), nil))
	t.Cleanup(func() {
		srv.Close()
		_ = sqlDB.Close()
	})
	return New(srv.URL + "/")
}

func TestClient_CRUD(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	created, err := c.Crear(ctx, dto.CrearProveedorRequest{
		Nombre:     "Acme",
		RUC:        "12345678901",
		Email:      "A@Acme.com",
		Categorias: []string{"Ferretería"},
	})
	require.NoError(t, err)
	assert.Equal(t, "a@acme.com", created.Email)

	got, err := c.Obtener(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	nombre := "Acme SAC"
	updated, err := c.Actualizar(ctx, created.ID, dto.ActualizarProveedorRequest{Nombre: &nombre})
	require.NoError(t, err)
	assert.Equal(t, "Acme SAC", updated.Nombre)
	assert.Equal(t, []string{"Ferretería"}, updated.Categorias, "absent fields are kept")

	stats, err := c.IncrementarEstadisticas(ctx, created.ID, dto.IncrementarEstadisticasRequest{
		TotalOrdenes: 3,
		MontoTotal:   dto.Monto{Decimal: decimal.RequireFromString("150.5")},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Estadisticas.TotalOrdenes)
	assert.True(t, decimal.RequireFromString("150.5").Equal(stats.Estadisticas.MontoTotal))

	list, err := c.Listar(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.TotalItems)

	found, err := c.Buscar(ctx, "ferre")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	activos, err := c.PorEstado(ctx, "activo")
	require.NoError(t, err)
	assert.Len(t, activos, 1)

	sin, err := c.PorEstadoEntrega(ctx, "sin-entregas")
	require.NoError(t, err)
	assert.Len(t, sin, 1)

	require.NoError(t, c.Eliminar(ctx, created.ID))
	_, err = c.Obtener(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	h, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", h.Status)
}

func TestClient_ErrorBody(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	_, err := c.Crear(ctx, dto.CrearProveedorRequest{Nombre: "Sin RUC", Email: "a@a.com"})
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Message, "ruc")

	// Validation answers do not trip the breaker.
	for i := 0; i < 10; i++ {
		_, _ = c.Crear(ctx, dto.CrearProveedorRequest{})
	}
	assert.Equal(t, infra.CBClosed, c.BreakerState())
}

func TestClient_BreakerOpensOnServerErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Algo salió mal!"}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := c.Listar(ctx, 1, 10)
		var apiErr *Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "Algo salió mal!", apiErr.Message)
	}

	_, err := c.Listar(ctx, 1, 10)
	assert.ErrorIs(t, err, infra.ErrCircuitOpen)
	assert.EqualValues(t, 5, atomic.LoadInt32(&hits))
	assert.Equal(t, infra.CBOpen, c.BreakerState())
}

func TestIsUnavailable(t *testing.T) {
	assert.False(t, IsUnavailable(nil))
	assert.False(t, IsUnavailable(ErrNotFound))
	assert.False(t, IsUnavailable(&Error{Status: 400}))
	assert.True(t, IsUnavailable(&Error{Status: 503}))
	assert.True(t, IsUnavailable(errors.New("dial tcp: connection refused")))
}
