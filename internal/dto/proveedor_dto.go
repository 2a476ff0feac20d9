package dto

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as JSON numbers (150.5), not strings ("150.5").
	decimal.MarshalJSONWithoutQuotes = true
}

// ─── Shared shapes ───────────────────────────────────────────────────────────

type Direccion struct {
	Calle        string `json:"calle"`
	Ciudad       string `json:"ciudad"`
	Estado       string `json:"estado"`
	Pais         string `json:"pais"`
	CodigoPostal string `json:"codigoPostal"`
}

type Contacto struct {
	Nombre   string `json:"nombre"`
	Cargo    string `json:"cargo"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"`
}

type CondicionesPagoInput struct {
	DiasCredito *int    `json:"diasCredito"`
	MetodoPago  *string `json:"metodoPago"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProveedorRequest struct {
	Nombre          string                `json:"nombre"`
	RUC             string                `json:"ruc"`
	Email           string                `json:"email"`
	Telefono        string                `json:"telefono"`
	Direccion       *Direccion            `json:"direccion"`
	Contacto        *Contacto             `json:"contacto"`
	Categorias      []string              `json:"categorias"`
	Calificacion    *float64              `json:"calificacion"`
	Estado          *string               `json:"estado,omitempty"`
	EstadoEntrega   *string               `json:"estadoEntrega,omitempty"`
	CondicionesPago *CondicionesPagoInput `json:"condicionesPago"`
}

// ActualizarProveedorRequest replaces every top-level field present in the
// body; absent fields keep their stored value.
type ActualizarProveedorRequest struct {
	Nombre          *string               `json:"nombre"`
	RUC             *string               `json:"ruc"`
	Email           *string               `json:"email"`
	Telefono        *string               `json:"telefono"`
	Direccion       *Direccion            `json:"direccion"`
	Contacto        *Contacto             `json:"contacto"`
	Categorias      *[]string             `json:"categorias"`
	Calificacion    *float64              `json:"calificacion"`
	Estado          *string               `json:"estado"`
	EstadoEntrega   *string               `json:"estadoEntrega"`
	CondicionesPago *CondicionesPagoInput `json:"condicionesPago"`
}

// ErrMontoNoNumerico rejects amounts sent as JSON strings.
var ErrMontoNoNumerico = errors.New("montoTotal debe ser un número")

// Monto is an amount delta that decodes only from a JSON number;
// decimal.Decimal alone also accepts "7".
type Monto struct {
	decimal.Decimal
}

func (m *Monto) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return ErrMontoNoNumerico
	}
	return m.Decimal.UnmarshalJSON(b)
}

// IncrementarEstadisticasRequest carries optional deltas; missing ones are 0.
type IncrementarEstadisticasRequest struct {
	TotalOrdenes       int64 `json:"totalOrdenes"`
	OrdenesCompletadas int64 `json:"ordenesCompletadas"`
	OrdenesPendientes  int64 `json:"ordenesPendientes"`
	MontoTotal         Monto `json:"montoTotal"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CondicionesPagoResponse struct {
	DiasCredito int    `json:"diasCredito"`
	MetodoPago  string `json:"metodoPago"`
}

type EstadisticasResponse struct {
	TotalOrdenes       int64           `json:"totalOrdenes"`
	OrdenesCompletadas int64           `json:"ordenesCompletadas"`
	OrdenesPendientes  int64           `json:"ordenesPendientes"`
	MontoTotal         decimal.Decimal `json:"montoTotal"`
}

// ProveedorResponse carries the id twice: "_id" for document-store shaped
// consumers and "id".
type ProveedorResponse struct {
	DocumentID          string                  `json:"_id"`
	ID                  string                  `json:"id"`
	Nombre              string                  `json:"nombre"`
	RUC                 string                  `json:"ruc"`
	Email               string                  `json:"email"`
	Telefono            string                  `json:"telefono"`
	Direccion           Direccion               `json:"direccion"`
	Contacto            Contacto                `json:"contacto"`
	Categorias          []string                `json:"categorias"`
	Calificacion        float64                 `json:"calificacion"`
	Estado              string                  `json:"estado"`
	EstadoEntrega       string                  `json:"estadoEntrega"`
	CondicionesPago     CondicionesPagoResponse `json:"condicionesPago"`
	Estadisticas        EstadisticasResponse    `json:"estadisticas"`
	FechaRegistro       time.Time               `json:"fechaRegistro"`
	UltimaActualizacion time.Time               `json:"ultimaActualizacion"`
	CreatedAt           time.Time               `json:"createdAt"`
	UpdatedAt           time.Time               `json:"updatedAt"`
}

type ProveedorListResponse struct {
	Proveedores []ProveedorResponse `json:"proveedores"`
	CurrentPage int                 `json:"currentPage"`
	TotalPages  int                 `json:"totalPages"`
	TotalItems  int64               `json:"totalItems"`
}

type MensajeResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Store   string `json:"store"`
}
