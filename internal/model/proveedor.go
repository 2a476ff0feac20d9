package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados del proveedor.
const (
	EstadoActivo     = "ACTIVO"
	EstadoInactivo   = "INACTIVO"
	EstadoSuspendido = "SUSPENDIDO"
)

// Estados de entrega.
const (
	EntregaEnTiempo    = "EN_TIEMPO"
	EntregaRetrasado   = "RETRASADO"
	EntregaAdelantado  = "ADELANTADO"
	EntregaSinEntregas = "SIN_ENTREGAS"
)

// Métodos de pago.
const (
	PagoContado       = "CONTADO"
	PagoCredito       = "CREDITO"
	PagoTransferencia = "TRANSFERENCIA"
	PagoCheque        = "CHEQUE"
)

var (
	EstadosProveedor = []string{EstadoActivo, EstadoInactivo, EstadoSuspendido}
	EstadosEntrega   = []string{EntregaEnTiempo, EntregaRetrasado, EntregaAdelantado, EntregaSinEntregas}
	MetodosPago      = []string{PagoContado, PagoCredito, PagoTransferencia, PagoCheque}
)

// Proveedor is a supplier document. Nested objects are embedded columns in
// the relational store and sub-documents in the document store.
type Proveedor struct {
	ID                  uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	Nombre              string               `gorm:"not null;index" json:"nombre" validate:"required"`
	RUC                 string               `gorm:"column:ruc;uniqueIndex;not null" json:"ruc" validate:"required"`
	Email               string               `gorm:"not null" json:"email" validate:"required"`
	Telefono            string               `json:"telefono"`
	Direccion           Direccion            `gorm:"embedded;embeddedPrefix:direccion_" json:"direccion"`
	Contacto            Contacto             `gorm:"embedded;embeddedPrefix:contacto_" json:"contacto"`
	Categorias          []CategoriaProveedor `gorm:"foreignKey:ProveedorID;constraint:OnDelete:CASCADE" json:"categorias"`
	Calificacion        float64              `gorm:"not null" json:"calificacion" validate:"min=0,max=5"`
	Estado              string               `gorm:"not null;index" json:"estado" validate:"oneof=ACTIVO INACTIVO SUSPENDIDO"`
	EstadoEntrega       string               `gorm:"not null;index" json:"estadoEntrega" validate:"oneof=EN_TIEMPO RETRASADO ADELANTADO SIN_ENTREGAS"`
	CondicionesPago     CondicionesPago      `gorm:"embedded;embeddedPrefix:condiciones_pago_" json:"condicionesPago"`
	Estadisticas        Estadisticas         `gorm:"embedded;embeddedPrefix:estadisticas_" json:"estadisticas"`
	FechaRegistro       time.Time            `gorm:"not null" json:"fechaRegistro"`
	UltimaActualizacion time.Time            `gorm:"not null" json:"ultimaActualizacion"`
	CreatedAt           time.Time            `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt           time.Time            `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Proveedor) TableName() string { return "proveedores" }

type Direccion struct {
	Calle        string `bson:"calle,omitempty" json:"calle"`
	Ciudad       string `bson:"ciudad,omitempty" json:"ciudad"`
	Estado       string `bson:"estado,omitempty" json:"estado"`
	Pais         string `bson:"pais,omitempty" json:"pais"`
	CodigoPostal string `bson:"codigoPostal,omitempty" json:"codigoPostal"`
}

type Contacto struct {
	Nombre   string `bson:"nombre,omitempty" json:"nombre"`
	Cargo    string `bson:"cargo,omitempty" json:"cargo"`
	Telefono string `bson:"telefono,omitempty" json:"telefono"`
	Email    string `bson:"email,omitempty" json:"email"`
}

type CondicionesPago struct {
	DiasCredito int    `gorm:"not null" bson:"diasCredito" json:"diasCredito"`
	MetodoPago  string `gorm:"not null" bson:"metodoPago" json:"metodoPago" validate:"oneof=CONTADO CREDITO TRANSFERENCIA CHEQUE"`
}

// Estadisticas are order counters maintained by the orders service through
// atomic increments.
type Estadisticas struct {
	TotalOrdenes       int64           `gorm:"not null" json:"totalOrdenes"`
	OrdenesCompletadas int64           `gorm:"not null" json:"ordenesCompletadas"`
	OrdenesPendientes  int64           `gorm:"not null" json:"ordenesPendientes"`
	MontoTotal         decimal.Decimal `gorm:"type:numeric;not null" json:"montoTotal"`
}

// DeltaEstadisticas is added to Estadisticas in a single atomic step.
type DeltaEstadisticas struct {
	TotalOrdenes       int64
	OrdenesCompletadas int64
	OrdenesPendientes  int64
	MontoTotal         decimal.Decimal
}

// CategoriaProveedor keeps one category of a supplier; Posicion preserves
// the order in which categories were given.
type CategoriaProveedor struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	ProveedorID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Posicion    int       `gorm:"not null" json:"-"`
	Nombre      string    `gorm:"not null;index" json:"nombre"`
}

func (CategoriaProveedor) TableName() string { return "proveedor_categorias" }

// NombresCategorias returns the category names in their stored order.
func (p *Proveedor) NombresCategorias() []string {
	out := make([]string, 0, len(p.Categorias))
	for _, c := range p.Categorias {
		out = append(out, c.Nombre)
	}
	return out
}

// SetCategorias replaces the categories, keeping the given order.
func (p *Proveedor) SetCategorias(nombres []string) {
	p.Categorias = make([]CategoriaProveedor, 0, len(nombres))
	for i, n := range nombres {
		p.Categorias = append(p.Categorias, CategoriaProveedor{ProveedorID: p.ID, Posicion: i, Nombre: n})
	}
}

// Normalize applies the write-time transformations: trimmed strings,
// lower-cased email, trimmed categories (blank ones dropped).
func (p *Proveedor) Normalize() {
	p.Nombre = strings.TrimSpace(p.Nombre)
	p.RUC = strings.TrimSpace(p.RUC)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Telefono = strings.TrimSpace(p.Telefono)
	p.Estado = strings.TrimSpace(p.Estado)
	p.EstadoEntrega = strings.TrimSpace(p.EstadoEntrega)
	p.CondicionesPago.MetodoPago = strings.TrimSpace(p.CondicionesPago.MetodoPago)

	nombres := make([]string, 0, len(p.Categorias))
	for _, c := range p.Categorias {
		if n := strings.TrimSpace(c.Nombre); n != "" {
			nombres = append(nombres, n)
		}
	}
	p.SetCategorias(nombres)
}

// Validate checks the document against its schema. It returns nil or a
// *ValidationError listing every offending field.
func (p *Proveedor) Validate() error {
	return validateStruct(p)
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// EsEstadoValido reports whether v is one of EstadosProveedor.
func EsEstadoValido(v string) bool { return contains(EstadosProveedor, v) }

// EsEstadoEntregaValido reports whether v is one of EstadosEntrega.
func EsEstadoEntregaValido(v string) bool { return contains(EstadosEntrega, v) }
