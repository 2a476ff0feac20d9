// cmd/seed/main.go — Carga proveedores de demo.
// Uso:
//
//	go run ./cmd/seed                                   # directo al almacén (borra la colección)
//	go run ./cmd/seed -mode api -url http://localhost:3000
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"proveedores/internal/client"
	"proveedores/internal/config"
	"proveedores/internal/infra"
	"proveedores/internal/model"
	"proveedores/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const progressEvery = 50

func main() {
	mode := flag.String("mode", "store", "store: insert through the repository; api: post through the HTTP API")
	baseURL := flag.String("url", "http://localhost:3000", "API base URL for -mode api")
	n := flag.Int("n", 500, "number of suppliers")
	seed := flag.Uint64("seed", 0, "random seed (0 = random)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	infra.SetupLogger(cfg.Env, cfg.LogLevel)

	ctx := context.Background()
	gen := newGenerator(*seed, time.Now())

	switch *mode {
	case "store":
		err = seedStore(ctx, cfg, gen, *n)
	case "api":
		err = seedAPI(ctx, client.New(*baseURL), gen, *n)
	default:
		log.Error().Str("mode", *mode).Msg("unknown mode (store | api)")
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

// seedStore wipes the collection and inserts n suppliers directly, with
// statistics and registration dates already populated.
func seedStore(ctx context.Context, cfg *config.Config, gen *generator, n int) error {
	repo, err := repository.OpenSync(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close(ctx) }()

	if err := repo.DeleteAll(ctx); err != nil {
		return err
	}
	log.Info().Str("driver", cfg.StoreDriver).Msg("colección limpiada")

	created, err := insertAll(ctx, repo, gen, n)
	if err != nil {
		return err
	}

	_, total, err := repo.List(ctx, repository.ProveedorFilter{}, 0, 1)
	if err != nil {
		return err
	}
	log.Info().Int("insertados", created).Int64("total", total).Msg("proveedores insertados")
	return nil
}

// insertAll creates n suppliers, regenerating any whose random RUC collides.
func insertAll(ctx context.Context, repo repository.ProveedorRepository, gen *generator, n int) (int, error) {
	created := 0
	for created < n {
		p := gen.proveedor()
		p.ID = uuid.New()
		p.Normalize()
		if err := p.Validate(); err != nil {
			return created, err
		}

		err := repo.Create(ctx, p)
		var conflict *model.ConflictError
		if errors.As(err, &conflict) {
			continue
		}
		if err != nil {
			return created, err
		}

		created++
		if created%progressEvery == 0 {
			log.Info().Int("creados", created).Msg("progreso")
		}
	}
	return created, nil
}

// seedAPI posts n suppliers and then applies their statistics through the
// increment endpoint. Registration dates are set by the server.
func seedAPI(ctx context.Context, c *client.Client, gen *generator, n int) error {
	if _, err := c.Health(ctx); err != nil {
		return err
	}

	created, rejected := 0, 0
	for created < n {
		resp, err := c.Crear(ctx, gen.request())
		var apiErr *client.Error
		if errors.As(err, &apiErr) && apiErr.Status < 500 && rejected < n {
			rejected++
			log.Warn().Str("error", apiErr.Message).Msg("proveedor rechazado, reintentando")
			continue
		}
		if err != nil {
			return err
		}
		if _, err := c.IncrementarEstadisticas(ctx, resp.ID, gen.estadisticas()); err != nil {
			return err
		}

		created++
		if created%progressEvery == 0 {
			log.Info().Int("creados", created).Msg("progreso")
		}
	}
	log.Info().Int("creados", created).Msg("proveedores creados vía API")
	return nil
}
