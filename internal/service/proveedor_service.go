package service

import (
	"context"
	"math"
	"strings"

	"proveedores/internal/dto"
	"proveedores/internal/model"
	"proveedores/internal/repository"

	"github.com/google/uuid"
)

// Pagination defaults for Listar.
const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// ProveedorService defines the business operations on suppliers. Errors are
// model.ErrProveedorNoEncontrado, *model.ValidationError,
// *model.ConflictError or store failures.
type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context, page, limit int) (*dto.ProveedorListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Buscar(ctx context.Context, termino string) ([]dto.ProveedorResponse, error)
	ListarPorEstado(ctx context.Context, estado string) ([]dto.ProveedorResponse, error)
	ListarPorEstadoEntrega(ctx context.Context, estadoEntrega string) ([]dto.ProveedorResponse, error)
	IncrementarEstadisticas(ctx context.Context, id uuid.UUID, req dto.IncrementarEstadisticasRequest) (*dto.ProveedorResponse, error)
}

type proveedorService struct {
	repo  repository.ProveedorRepository
	clock Clock
}

func NewProveedorService(repo repository.ProveedorRepository, clock Clock) ProveedorService {
	if clock == nil {
		clock = NewMonotonicClock(nil)
	}
	return &proveedorService{repo: repo, clock: clock}
}

// ─── Mapping ─────────────────────────────────────────────────────────────────

func mapProveedor(p *model.Proveedor) dto.ProveedorResponse {
	id := p.ID.String()
	return dto.ProveedorResponse{
		DocumentID:    id,
		ID:            id,
		Nombre:        p.Nombre,
		RUC:           p.RUC,
		Email:         p.Email,
		Telefono:      p.Telefono,
		Direccion:     dto.Direccion(p.Direccion),
		Contacto:      dto.Contacto(p.Contacto),
		Categorias:    p.NombresCategorias(),
		Calificacion:  p.Calificacion,
		Estado:        p.Estado,
		EstadoEntrega: p.EstadoEntrega,
		CondicionesPago: dto.CondicionesPagoResponse{
			DiasCredito: p.CondicionesPago.DiasCredito,
			MetodoPago:  p.CondicionesPago.MetodoPago,
		},
		Estadisticas: dto.EstadisticasResponse{
			TotalOrdenes:       p.Estadisticas.TotalOrdenes,
			OrdenesCompletadas: p.Estadisticas.OrdenesCompletadas,
			OrdenesPendientes:  p.Estadisticas.OrdenesPendientes,
			MontoTotal:         p.Estadisticas.MontoTotal,
		},
		FechaRegistro:       p.FechaRegistro,
		UltimaActualizacion: p.UltimaActualizacion,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func mapProveedores(list []model.Proveedor) []dto.ProveedorResponse {
	out := make([]dto.ProveedorResponse, 0, len(list))
	for i := range list {
		out = append(out, mapProveedor(&list[i]))
	}
	return out
}

// valueOr returns *v, or def when the field was absent from the body.
// A present empty value is kept so validation rejects it.
func valueOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

// condicionesPago builds a full CondicionesPago from the input; omitted
// sub-fields take their defaults.
func condicionesPago(in *dto.CondicionesPagoInput) model.CondicionesPago {
	c := model.CondicionesPago{MetodoPago: model.PagoContado}
	if in == nil {
		return c
	}
	if in.DiasCredito != nil {
		c.DiasCredito = *in.DiasCredito
	}
	c.MetodoPago = valueOr(in.MetodoPago, model.PagoContado)
	return c
}

// prepare normalizes and validates p before any write.
func prepare(p *model.Proveedor) error {
	p.Normalize()
	return p.Validate()
}

// totalPages is ceil(total/limit) without the overflow of total+limit-1.
func totalPages(total int64, limit int) int {
	n := total / int64(limit)
	if total%int64(limit) != 0 {
		n++
	}
	return int(n)
}

// ─── Operations ──────────────────────────────────────────────────────────────

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	p := &model.Proveedor{
		Nombre:          req.Nombre,
		RUC:             req.RUC,
		Email:           req.Email,
		Telefono:        req.Telefono,
		Estado:          valueOr(req.Estado, model.EstadoActivo),
		EstadoEntrega:   valueOr(req.EstadoEntrega, model.EntregaSinEntregas),
		CondicionesPago: condicionesPago(req.CondicionesPago),
	}
	if req.Direccion != nil {
		p.Direccion = model.Direccion(*req.Direccion)
	}
	if req.Contacto != nil {
		p.Contacto = model.Contacto(*req.Contacto)
	}
	if req.Calificacion != nil {
		p.Calificacion = *req.Calificacion
	}
	p.SetCategorias(req.Categorias)

	if err := prepare(p); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	p.ID = uuid.New()
	p.FechaRegistro = now
	p.UltimaActualizacion = now
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := mapProveedor(p)
	return &resp, nil
}

func (s *proveedorService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapProveedor(p)
	return &resp, nil
}

func (s *proveedorService) Listar(ctx context.Context, page, limit int) (*dto.ProveedorListResponse, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	// An offset that does not fit an int lies past any stored page: only
	// the total is needed.
	beyond := page-1 > math.MaxInt/limit
	offset, size := 0, 1
	if !beyond {
		offset, size = (page-1)*limit, limit
	}

	list, total, err := s.repo.List(ctx, repository.ProveedorFilter{}, offset, size)
	if err != nil {
		return nil, err
	}
	if beyond {
		list = nil
	}
	return &dto.ProveedorListResponse{
		Proveedores: mapProveedores(list),
		CurrentPage: page,
		TotalPages:  totalPages(total, limit),
		TotalItems:  total,
	}, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.RUC != nil {
		p.RUC = *req.RUC
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.Telefono != nil {
		p.Telefono = *req.Telefono
	}
	if req.Direccion != nil {
		p.Direccion = model.Direccion(*req.Direccion)
	}
	if req.Contacto != nil {
		p.Contacto = model.Contacto(*req.Contacto)
	}
	if req.Categorias != nil {
		p.SetCategorias(*req.Categorias)
	}
	if req.Calificacion != nil {
		p.Calificacion = *req.Calificacion
	}
	if req.Estado != nil {
		p.Estado = *req.Estado
	}
	if req.EstadoEntrega != nil {
		p.EstadoEntrega = *req.EstadoEntrega
	}
	if req.CondicionesPago != nil {
		p.CondicionesPago = condicionesPago(req.CondicionesPago)
	}

	if err := prepare(p); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	p.UltimaActualizacion = now
	p.UpdatedAt = now

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	// Re-read so counters moved by concurrent increments are reported as stored.
	return s.ObtenerPorID(ctx, id)
}

func (s *proveedorService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *proveedorService) Buscar(ctx context.Context, termino string) ([]dto.ProveedorResponse, error) {
	termino = strings.TrimSpace(termino)
	if termino == "" {
		return []dto.ProveedorResponse{}, nil
	}
	list, err := s.repo.Search(ctx, termino)
	if err != nil {
		return nil, err
	}
	return mapProveedores(list), nil
}

// ListarPorEstado expects the canonical upper-case value; an unknown value
// matches nothing.
func (s *proveedorService) ListarPorEstado(ctx context.Context, estado string) ([]dto.ProveedorResponse, error) {
	if !model.EsEstadoValido(estado) {
		return []dto.ProveedorResponse{}, nil
	}
	list, err := s.repo.Find(ctx, repository.ProveedorFilter{Estado: estado})
	if err != nil {
		return nil, err
	}
	return mapProveedores(list), nil
}

func (s *proveedorService) ListarPorEstadoEntrega(ctx context.Context, estadoEntrega string) ([]dto.ProveedorResponse, error) {
	if !model.EsEstadoEntregaValido(estadoEntrega) {
		return []dto.ProveedorResponse{}, nil
	}
	list, err := s.repo.Find(ctx, repository.ProveedorFilter{EstadoEntrega: estadoEntrega})
	if err != nil {
		return nil, err
	}
	return mapProveedores(list), nil
}

func (s *proveedorService) IncrementarEstadisticas(ctx context.Context, id uuid.UUID, req dto.IncrementarEstadisticasRequest) (*dto.ProveedorResponse, error) {
	delta := model.DeltaEstadisticas{
		TotalOrdenes:       req.TotalOrdenes,
		OrdenesCompletadas: req.OrdenesCompletadas,
		OrdenesPendientes:  req.OrdenesPendientes,
		MontoTotal:         req.MontoTotal.Decimal,
	}
	p, err := s.repo.IncrementarEstadisticas(ctx, id, delta, s.clock.Now())
	if err != nil {
		return nil, err
	}
	resp := mapProveedor(p)
	return &resp, nil
}
