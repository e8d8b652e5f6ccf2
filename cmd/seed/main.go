// seed carga el catálogo de productos desde un CSV en el almacén configurado
// (STORE_BACKEND) y crea el usuario por defecto si no existe ninguno.
//
// Uso: go run ./cmd/seed --file productos.csv [--encoding iso-8859-1] [--comma ';']
package main

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/spf13/pflag"

	"github.com/jhoicas/Inventario-pos/internal/application/auth"
	"github.com/jhoicas/Inventario-pos/internal/application/catalog"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/persistence"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/storage"
	"github.com/jhoicas/Inventario-pos/pkg/config"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

func main() {
	file := pflag.StringP("file", "f", "", "ruta del CSV de productos (obligatorio)")
	encoding := pflag.String("encoding", "utf-8", "codificación del archivo: utf-8, iso-8859-1, windows-1252")
	comma := pflag.String("comma", ",", "separador de columnas")
	pflag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "falta --file")
		pflag.Usage()
		os.Exit(2)
	}
	sep, size := utf8.DecodeRuneInString(*comma)
	if size == 0 || size != len(*comma) {
		fmt.Fprintf(os.Stderr, "--comma debe ser un solo carácter: %q\n", *comma)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name + "-seed"})

	if err := run(context.Background(), cfg, log, *file, catalog.Options{Encoding: *encoding, Comma: sep}); err != nil {
		log.Error().Err(err).Msg("seed fallido")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, path string, opts catalog.Options) error {
	backend, err := persistence.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backend.Close()
	store := storage.NewStore(backend, cfg.Store.KeyPrefix, log)

	authUC := auth.NewAuthUseCase(store, auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer}, log)
	if _, err := authUC.EnsureDefaultUser(ctx, cfg.Auth.DefaultUsername, cfg.Auth.DefaultPassword); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	products := inventory.NewProductUseCase(store, inventory.StockPolicy{AllowNegativeStock: cfg.Inventory.AllowNegativeStock}, log)
	res, err := catalog.NewImporter(products, log).ImportCSV(ctx, f, opts)
	if err != nil {
		return err
	}
	for _, rej := range res.Rejected {
		log.Warn().Int("line", rej.Line).Err(rej.Err).Msg("fila rechazada")
	}
	fmt.Printf("Productos creados: %d, filas rechazadas: %d\n", res.Created, len(res.Rejected))
	return nil
}
