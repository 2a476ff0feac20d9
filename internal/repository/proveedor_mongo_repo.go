package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"proveedores/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ColeccionProveedores is the document-store collection name.
const ColeccionProveedores = "proveedores"

// proveedorDocument is the stored shape of a supplier. Ids are UUID strings
// and the amount accumulator is a Decimal128 so $inc stays exact.
type proveedorDocument struct {
	ID                  string                `bson:"_id"`
	Nombre              string                `bson:"nombre"`
	RUC                 string                `bson:"ruc"`
	Email               string                `bson:"email"`
	Telefono            string                `bson:"telefono,omitempty"`
	Direccion           model.Direccion       `bson:"direccion"`
	Contacto            model.Contacto        `bson:"contacto"`
	Categorias          []string              `bson:"categorias"`
	Calificacion        float64               `bson:"calificacion"`
	Estado              string                `bson:"estado"`
	EstadoEntrega       string                `bson:"estadoEntrega"`
	CondicionesPago     model.CondicionesPago `bson:"condicionesPago"`
	Estadisticas        estadisticasDocument  `bson:"estadisticas"`
	FechaRegistro       time.Time             `bson:"fechaRegistro"`
	UltimaActualizacion time.Time             `bson:"ultimaActualizacion"`
	CreatedAt           time.Time             `bson:"createdAt"`
	UpdatedAt           time.Time             `bson:"updatedAt"`
}

type estadisticasDocument struct {
	TotalOrdenes       int64                `bson:"totalOrdenes"`
	OrdenesCompletadas int64                `bson:"ordenesCompletadas"`
	OrdenesPendientes  int64                `bson:"ordenesPendientes"`
	MontoTotal         primitive.Decimal128 `bson:"montoTotal"`
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(d.String())
}

func toDocument(p *model.Proveedor) (*proveedorDocument, error) {
	monto, err := toDecimal128(p.Estadisticas.MontoTotal)
	if err != nil {
		return nil, fmt.Errorf("mongo: montoTotal: %w", err)
	}
	return &proveedorDocument{
		ID:              p.ID.String(),
		Nombre:          p.Nombre,
		RUC:             p.RUC,
		Email:           p.Email,
		Telefono:        p.Telefono,
		Direccion:       p.Direccion,
		Contacto:        p.Contacto,
		Categorias:      p.NombresCategorias(),
		Calificacion:    p.Calificacion,
		Estado:          p.Estado,
		EstadoEntrega:   p.EstadoEntrega,
		CondicionesPago: p.CondicionesPago,
		Estadisticas: estadisticasDocument{
			TotalOrdenes:       p.Estadisticas.TotalOrdenes,
			OrdenesCompletadas: p.Estadisticas.OrdenesCompletadas,
			OrdenesPendientes:  p.Estadisticas.OrdenesPendientes,
			MontoTotal:         monto,
		},
		FechaRegistro:       p.FechaRegistro,
		UltimaActualizacion: p.UltimaActualizacion,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}, nil
}

func (d *proveedorDocument) toModel() (*model.Proveedor, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("mongo: _id %q: %w", d.ID, err)
	}
	monto, err := fromDecimal128(d.Estadisticas.MontoTotal)
	if err != nil {
		return nil, fmt.Errorf("mongo: montoTotal: %w", err)
	}
	p := &model.Proveedor{
		ID:              id,
		Nombre:          d.Nombre,
		RUC:             d.RUC,
		Email:           d.Email,
		Telefono:        d.Telefono,
		Direccion:       d.Direccion,
		Contacto:        d.Contacto,
		Calificacion:    d.Calificacion,
		Estado:          d.Estado,
		EstadoEntrega:   d.EstadoEntrega,
		CondicionesPago: d.CondicionesPago,
		Estadisticas: model.Estadisticas{
			TotalOrdenes:       d.Estadisticas.TotalOrdenes,
			OrdenesCompletadas: d.Estadisticas.OrdenesCompletadas,
			OrdenesPendientes:  d.Estadisticas.OrdenesPendientes,
			MontoTotal:         monto,
		},
		FechaRegistro:       d.FechaRegistro.UTC(),
		UltimaActualizacion: d.UltimaActualizacion.UTC(),
		CreatedAt:           d.CreatedAt.UTC(),
		UpdatedAt:           d.UpdatedAt.UTC(),
	}
	p.SetCategorias(d.Categorias)
	return p, nil
}

type mongoProveedorRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoProveedorRepository is the document-store implementation. It also
// owns index creation, which may be retried while the server is unreachable.
type MongoProveedorRepository interface {
	ProveedorRepository
	EnsureIndexes(ctx context.Context) error
}

func NewMongoProveedorRepository(client *mongo.Client, database string) MongoProveedorRepository {
	return &mongoProveedorRepo{
		client: client,
		coll:   client.Database(database).Collection(ColeccionProveedores),
	}
}

// EnsureIndexes creates the unique RUC index and the lookup indexes on
// nombre, estado and categorias. Creating an existing index is a no-op.
func (r *mongoProveedorRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "ruc", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "nombre", Value: 1}}},
		{Keys: bson.D{{Key: "estado", Value: 1}}},
		{Keys: bson.D{{Key: "estadoEntrega", Value: 1}}},
		{Keys: bson.D{{Key: "categorias", Value: 1}}},
	})
	return err
}

var porNombre = bson.D{{Key: "nombre", Value: 1}, {Key: "_id", Value: 1}}

func (r *mongoProveedorRepo) decodeAll(ctx context.Context, cur *mongo.Cursor) ([]model.Proveedor, error) {
	defer cur.Close(ctx)

	var docs []proveedorDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]model.Proveedor, 0, len(docs))
	for i := range docs {
		p, err := docs[i].toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func filterDocument(filter ProveedorFilter) bson.M {
	f := bson.M{}
	if filter.Estado != "" {
		f["estado"] = filter.Estado
	}
	if filter.EstadoEntrega != "" {
		f["estadoEntrega"] = filter.EstadoEntrega
	}
	return f
}

func (r *mongoProveedorRepo) Create(ctx context.Context, p *model.Proveedor) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	doc, err := toDocument(p)
	if err != nil {
		return err
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &model.ConflictError{Campo: "ruc", Valor: p.RUC}
		}
		return err
	}
	return nil
}

func (r *mongoProveedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	var doc proveedorDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrProveedorNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return doc.toModel()
}

func (r *mongoProveedorRepo) List(ctx context.Context, filter ProveedorFilter, offset, limit int) ([]model.Proveedor, int64, error) {
	f := filterDocument(filter)
	total, err := r.coll.CountDocuments(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().SetSort(porNombre).SetSkip(int64(offset)).SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, f, opts)
	if err != nil {
		return nil, 0, err
	}
	proveedores, err := r.decodeAll(ctx, cur)
	return proveedores, total, err
}

func (r *mongoProveedorRepo) Find(ctx context.Context, filter ProveedorFilter) ([]model.Proveedor, error) {
	cur, err := r.coll.Find(ctx, filterDocument(filter), options.Find().SetSort(porNombre))
	if err != nil {
		return nil, err
	}
	return r.decodeAll(ctx, cur)
}

func (r *mongoProveedorRepo) Search(ctx context.Context, termino string) ([]model.Proveedor, error) {
	// The term is quoted so it matches literally, never as a pattern.
	re := primitive.Regex{Pattern: regexp.QuoteMeta(termino), Options: "i"}
	f := bson.M{"$or": bson.A{
		bson.M{"nombre": re},
		bson.M{"ruc": re},
		bson.M{"categorias": re},
	}}
	cur, err := r.coll.Find(ctx, f, options.Find().SetSort(porNombre))
	if err != nil {
		return nil, err
	}
	return r.decodeAll(ctx, cur)
}

func (r *mongoProveedorRepo) Update(ctx context.Context, p *model.Proveedor) error {
	set := bson.M{
		"nombre":              p.Nombre,
		"ruc":                 p.RUC,
		"email":               p.Email,
		"telefono":            p.Telefono,
		"direccion":           p.Direccion,
		"contacto":            p.Contacto,
		"categorias":          p.NombresCategorias(),
		"calificacion":        p.Calificacion,
		"estado":              p.Estado,
		"estadoEntrega":       p.EstadoEntrega,
		"condicionesPago":     p.CondicionesPago,
		"ultimaActualizacion": p.UltimaActualizacion,
		"updatedAt":           p.UpdatedAt,
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": p.ID.String()}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &model.ConflictError{Campo: "ruc", Valor: p.RUC}
		}
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrProveedorNoEncontrado
	}
	return nil
}

func (r *mongoProveedorRepo) IncrementarEstadisticas(ctx context.Context, id uuid.UUID, d model.DeltaEstadisticas, at time.Time) (*model.Proveedor, error) {
	monto, err := toDecimal128(d.MontoTotal)
	if err != nil {
		return nil, fmt.Errorf("mongo: montoTotal: %w", err)
	}
	update := bson.M{
		"$inc": bson.M{
			"estadisticas.totalOrdenes":       d.TotalOrdenes,
			"estadisticas.ordenesCompletadas": d.OrdenesCompletadas,
			"estadisticas.ordenesPendientes":  d.OrdenesPendientes,
			"estadisticas.montoTotal":         monto,
		},
		"$set": bson.M{
			"ultimaActualizacion": at,
			"updatedAt":           at,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc proveedorDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id.String()}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrProveedorNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return doc.toModel()
}

func (r *mongoProveedorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return model.ErrProveedorNoEncontrado
	}
	return nil
}

func (r *mongoProveedorRepo) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}

func (r *mongoProveedorRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

func (r *mongoProveedorRepo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
