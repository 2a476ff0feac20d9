package main

import (
	"math"
	"strings"
	"time"

	"proveedores/internal/dto"
	"proveedores/internal/model"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

var categorias = []string{
	"Electrónica", "Ropa", "Alimentos", "Bebidas", "Hogar",
	"Deportes", "Juguetes", "Libros", "Belleza", "Salud",
	"Automotriz", "Mascotas", "Jardinería", "Oficina", "Música",
}

// generator builds realistic suppliers; a fixed seed gives a reproducible set.
type generator struct {
	f   *gofakeit.Faker
	now time.Time
}

func newGenerator(seed uint64, now time.Time) *generator {
	return &generator{f: gofakeit.New(seed), now: now.UTC()}
}

// categorias picks 1–4 distinct categories.
func (g *generator) categorias() []string {
	pool := append([]string(nil), categorias...)
	g.f.ShuffleStrings(pool)
	return pool[:g.f.IntRange(1, 4)]
}

func (g *generator) request() dto.CrearProveedorRequest {
	calificacion := math.Round(g.f.Float64Range(1, 5)*10) / 10
	dias := g.f.IntRange(0, 90)
	metodo := g.f.RandomString(model.MetodosPago)
	estado := g.f.RandomString(model.EstadosProveedor)
	entrega := g.f.RandomString(model.EstadosEntrega)

	return dto.CrearProveedorRequest{
		Nombre:   g.f.Company(),
		RUC:      g.f.Numerify("###########"),
		Email:    strings.ToLower(g.f.Email()),
		Telefono: g.f.Phone(),
		Direccion: &dto.Direccion{
			Calle:        g.f.Street(),
			Ciudad:       g.f.City(),
			Estado:       g.f.State(),
			Pais:         g.f.Country(),
			CodigoPostal: g.f.Zip(),
		},
		Contacto: &dto.Contacto{
			Nombre:   g.f.Name(),
			Cargo:    g.f.JobTitle(),
			Telefono: g.f.Phone(),
			Email:    strings.ToLower(g.f.Email()),
		},
		Categorias:      g.categorias(),
		Calificacion:    &calificacion,
		Estado:          &estado,
		EstadoEntrega:   &entrega,
		CondicionesPago: &dto.CondicionesPagoInput{DiasCredito: &dias, MetodoPago: &metodo},
	}
}

func (g *generator) estadisticas() dto.IncrementarEstadisticasRequest {
	return dto.IncrementarEstadisticasRequest{
		TotalOrdenes:       int64(g.f.IntRange(0, 1000)),
		OrdenesCompletadas: int64(g.f.IntRange(0, 800)),
		OrdenesPendientes:  int64(g.f.IntRange(0, 200)),
		MontoTotal:         dto.Monto{Decimal: decimal.NewFromFloat(g.f.Float64Range(10000, 5000000)).Round(2)},
	}
}

// fechaRegistro falls within the last three years.
func (g *generator) fechaRegistro() time.Time {
	return g.f.DateRange(g.now.AddDate(-3, 0, 0), g.now).UTC().Truncate(time.Millisecond)
}

// proveedor builds a complete document for direct store inserts.
func (g *generator) proveedor() *model.Proveedor {
	req := g.request()
	st := g.estadisticas()
	fecha := g.fechaRegistro()

	p := &model.Proveedor{
		Nombre:        req.Nombre,
		RUC:           req.RUC,
		Email:         req.Email,
		Telefono:      req.Telefono,
		Direccion:     model.Direccion(*req.Direccion),
		Contacto:      model.Contacto(*req.Contacto),
		Calificacion:  *req.Calificacion,
		Estado:        *req.Estado,
		EstadoEntrega: *req.EstadoEntrega,
		CondicionesPago: model.CondicionesPago{
			DiasCredito: *req.CondicionesPago.DiasCredito,
			MetodoPago:  *req.CondicionesPago.MetodoPago,
		},
		Estadisticas: model.Estadisticas{
			TotalOrdenes:       st.TotalOrdenes,
			OrdenesCompletadas: st.OrdenesCompletadas,
			OrdenesPendientes:  st.OrdenesPendientes,
			MontoTotal:         st.MontoTotal.Decimal,
		},
		FechaRegistro:       fecha,
		UltimaActualizacion: fecha,
		CreatedAt:           fecha,
		UpdatedAt:           fecha,
	}
	p.SetCategorias(req.Categorias)
	return p
}
