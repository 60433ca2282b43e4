package bootstrap

import (
	"context"
	"log/slog"

	"flight-booking/internal/infra/db"
	"flight-booking/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			poolCfg := pool.Config()
			slog.Info("database pool ready",
				"host", cfg.DB.Host,
				"database", cfg.DB.DBName,
				"max_conns", poolCfg.MaxConns,
				"min_conns", poolCfg.MinConns,
			)
			return nil
		},
		OnStop: func(_ context.Context) error {
			stat := pool.Stat()
			slog.Info("closing database pool",
				"acquired_conns", stat.AcquiredConns(),
				"total_conns", stat.TotalConns(),
			)
			cleanup()
			return nil
		},
	})

	return pool, nil
}
