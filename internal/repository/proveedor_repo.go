package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"proveedores/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProveedorFilter selects suppliers by exact enum value; empty fields match all.
type ProveedorFilter struct {
	Estado        string
	EstadoEntrega string
}

// ProveedorRepository defines the data access contract for suppliers.
// Services depend on this interface, not on a concrete store, so the document
// store, the relational store and test stubs are interchangeable.
type ProveedorRepository interface {
	// Create inserts p; a duplicate RUC yields *model.ConflictError.
	Create(ctx context.Context, p *model.Proveedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error)
	// List returns one page ordered by nombre plus the total matching count.
	List(ctx context.Context, filter ProveedorFilter, offset, limit int) ([]model.Proveedor, int64, error)
	// Find returns every match ordered by nombre.
	Find(ctx context.Context, filter ProveedorFilter) ([]model.Proveedor, error)
	// Search matches termino case-insensitively as a substring of nombre,
	// ruc or any category.
	Search(ctx context.Context, termino string) ([]model.Proveedor, error)
	// Update writes every field except the statistics counters and the
	// registration/creation stamps.
	Update(ctx context.Context, p *model.Proveedor) error
	// IncrementarEstadisticas adds d to the counters atomically and stamps at.
	IncrementarEstadisticas(ctx context.Context, id uuid.UUID, d model.DeltaEstadisticas, at time.Time) (*model.Proveedor, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type proveedorRepo struct{ db *gorm.DB }

// NewProveedorRepository returns the relational (gorm) store. The *gorm.DB
// must be opened with TranslateError so duplicate keys surface as
// gorm.ErrDuplicatedKey.
func NewProveedorRepository(db *gorm.DB) ProveedorRepository { return &proveedorRepo{db: db} }

// updatableColumns are written by Update; statistics only move through
// IncrementarEstadisticas so a concurrent full update cannot undo them.
var updatableColumns = []string{
	"nombre", "ruc", "email", "telefono",
	"direccion_calle", "direccion_ciudad", "direccion_estado", "direccion_pais", "direccion_codigo_postal",
	"contacto_nombre", "contacto_cargo", "contacto_telefono", "contacto_email",
	"calificacion", "estado", "estado_entrega",
	"condiciones_pago_dias_credito", "condiciones_pago_metodo_pago",
	"ultima_actualizacion", "updated_at",
}

func orderedCategorias(db *gorm.DB) *gorm.DB { return db.Order("posicion ASC") }

func (r *proveedorRepo) translate(err error, p *model.Proveedor) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.ErrProveedorNoEncontrado
	case errors.Is(err, gorm.ErrDuplicatedKey):
		valor := ""
		if p != nil {
			valor = p.RUC
		}
		return &model.ConflictError{Campo: "ruc", Valor: valor}
	default:
		return err
	}
}

func (r *proveedorRepo) Create(ctx context.Context, p *model.Proveedor) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Categorias {
		p.Categorias[i].ProveedorID = p.ID
	}
	return r.translate(r.db.WithContext(ctx).Create(p).Error, p)
}

func (r *proveedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	return r.findByID(r.db.WithContext(ctx), id)
}

func (r *proveedorRepo) findByID(db *gorm.DB, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	err := db.Preload("Categorias", orderedCategorias).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, r.translate(err, nil)
	}
	return &p, nil
}

func applyFilter(q *gorm.DB, filter ProveedorFilter) *gorm.DB {
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.EstadoEntrega != "" {
		q = q.Where("estado_entrega = ?", filter.EstadoEntrega)
	}
	return q
}

func (r *proveedorRepo) List(ctx context.Context, filter ProveedorFilter, offset, limit int) ([]model.Proveedor, int64, error) {
	var proveedores []model.Proveedor
	var total int64

	q := applyFilter(r.db.WithContext(ctx).Model(&model.Proveedor{}), filter)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyFilter(r.db.WithContext(ctx), filter).
		Preload("Categorias", orderedCategorias).
		Order("nombre ASC").Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&proveedores).Error
	return proveedores, total, err
}

func (r *proveedorRepo) Find(ctx context.Context, filter ProveedorFilter) ([]model.Proveedor, error) {
	var proveedores []model.Proveedor
	err := applyFilter(r.db.WithContext(ctx), filter).
		Preload("Categorias", orderedCategorias).
		Order("nombre ASC").Order("id ASC").
		Find(&proveedores).Error
	return proveedores, err
}

// escapeLike escapes LIKE wildcards so the term is matched literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *proveedorRepo) Search(ctx context.Context, termino string) ([]model.Proveedor, error) {
	pattern := "%" + escapeLike(strings.ToLower(termino)) + "%"

	var proveedores []model.Proveedor
	err := r.db.WithContext(ctx).
		Where(`LOWER(nombre) LIKE ? ESCAPE '\'`, pattern).
		Or(`LOWER(ruc) LIKE ? ESCAPE '\'`, pattern).
		Or(`EXISTS (SELECT 1 FROM proveedor_categorias pc WHERE pc.proveedor_id = proveedores.id AND LOWER(pc.nombre) LIKE ? ESCAPE '\')`, pattern).
		Preload("Categorias", orderedCategorias).
		Order("nombre ASC").Order("id ASC").
		Find(&proveedores).Error
	return proveedores, err
}

func (r *proveedorRepo) Update(ctx context.Context, p *model.Proveedor) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Proveedor{}).
			Where("id = ?", p.ID).
			Select(updatableColumns).
			Updates(p)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("proveedor_id = ?", p.ID).Delete(&model.CategoriaProveedor{}).Error; err != nil {
			return err
		}
		if len(p.Categorias) == 0 {
			return nil
		}
		for i := range p.Categorias {
			p.Categorias[i].ID = 0
			p.Categorias[i].ProveedorID = p.ID
		}
		return tx.Create(&p.Categorias).Error
	})
	return r.translate(err, p)
}

func (r *proveedorRepo) IncrementarEstadisticas(ctx context.Context, id uuid.UUID, d model.DeltaEstadisticas, at time.Time) (*model.Proveedor, error) {
	var out *model.Proveedor
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Single statement: the store applies the additions atomically.
		res := tx.Model(&model.Proveedor{}).
			Where("id = ?", id).
			UpdateColumns(map[string]interface{}{
				"estadisticas_total_ordenes":       gorm.Expr("estadisticas_total_ordenes + ?", d.TotalOrdenes),
				"estadisticas_ordenes_completadas": gorm.Expr("estadisticas_ordenes_completadas + ?", d.OrdenesCompletadas),
				"estadisticas_ordenes_pendientes":  gorm.Expr("estadisticas_ordenes_pendientes + ?", d.OrdenesPendientes),
				"estadisticas_monto_total":         gorm.Expr("estadisticas_monto_total + ?", d.MontoTotal),
				"ultima_actualizacion":             at,
				"updated_at":                       at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		p, err := r.findByID(tx, id)
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, r.translate(err, nil)
	}
	return out, nil
}

func (r *proveedorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("proveedor_id = ?", id).Delete(&model.CategoriaProveedor{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Proveedor{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return r.translate(err, nil)
}

func (r *proveedorRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.CategoriaProveedor{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Proveedor{}).Error
	})
}

func (r *proveedorRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *proveedorRepo) Close(_ context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
