// Package persistence elige y abre el backend del almacén de entidades según la configuración.
package persistence

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Inventario-pos/internal/infrastructure/mysqlstore"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/redisstore"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/storage"
	"github.com/jhoicas/Inventario-pos/pkg/config"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// Open construye el backend configurado en STORE_BACKEND. El llamador debe cerrarlo.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (storage.Backend, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("persistence")
	keys := storage.Keys{Prefix: cfg.Store.KeyPrefix}

	switch cfg.Store.Backend {
	case config.StoreMemory:
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		return storage.NewMemoryBackend(), nil

	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		kv := postgres.NewKVBackend(pool, keys.Of("lock"))
		if err := kv.EnsureSchema(ctx); err != nil {
			_ = kv.Close()
			return nil, err
		}
		total, err := kv.SumInvoiceTotals(ctx, keys.Of(storage.KeyInvoices))
		if err != nil {
			_ = kv.Close()
			return nil, err
		}
		log.Info().Str("host", cfg.DB.Host).Str("total_facturado", total.String()).Msg("almacén PostgreSQL listo")
		return kv, nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("conexión a Redis: %w", err)
		}
		log.Info().Str("addr", cfg.Redis.Addr).Dur("lease", cfg.Redis.LockTTL()).Msg("almacén Redis listo")
		return redisstore.New(client, keys.Prefix, redisstore.Options{LeaseTTL: cfg.Redis.LockTTL()}), nil

	case config.StoreMySQL:
		db, err := mysqlstore.Open(ctx, cfg.MySQL.DSN, cfg.MySQL.MaxConns)
		if err != nil {
			return nil, fmt.Errorf("conexión a MySQL: %w", err)
		}
		kv := mysqlstore.New(db, keys.Of("lock"))
		if err := kv.EnsureSchema(ctx); err != nil {
			_ = kv.Close()
			return nil, err
		}
		log.Info().Msg("almacén MySQL listo")
		return kv, nil
	}
	return nil, fmt.Errorf("STORE_BACKEND inválido: %q", cfg.Store.Backend)
}
