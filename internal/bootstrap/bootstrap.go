package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/GregMSThompson/finance-tracker/internal/config"
	"github.com/GregMSThompson/finance-tracker/pkg/logger"
)

const secretFetchTimeout = 15 * time.Second

type Bootstrap struct {
	Log       *slog.Logger
	DB        *gorm.DB
	JWTSecret []byte
}

// Run always returns a usable Log, even on error.
func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	bs := new(Bootstrap)

	bs.Log = logger.NewForFormat(cfg.LogLevel, cfg.LogFormat)
	if err = cfg.Validate(); err != nil {
		return bs, err
	}

	bs.JWTSecret, err = resolveJWTSecret(cfg, bs.Log)
	if err != nil {
		return bs, err
	}

	bs.DB, err = InitDatabase(cfg.DatabaseURL, bs.Log)
	if err != nil {
		return bs, err
	}

	return bs, nil
}

func (b *Bootstrap) Close() error {
	if b.DB == nil {
		return nil
	}
	sqlDB, err := b.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func resolveJWTSecret(cfg *config.Config, log *slog.Logger) ([]byte, error) {
	switch {
	case cfg.JWTSecret != "":
		return []byte(cfg.JWTSecret), nil
	case cfg.JWTSecretResource != "":
		ctx, cancel := context.WithTimeout(context.Background(), secretFetchTimeout)
		defer cancel()
		secret, err := FetchSecret(ctx, cfg.ProjectID, cfg.JWTSecretResource)
		if err != nil {
			return nil, fmt.Errorf("load JWT secret: %w", err)
		}
		return secret, nil
	case cfg.IsDevelopment():
		log.Warn("JWT_SECRET not set; using the development signing secret")
		return []byte(config.DevelopmentSecret), nil
	default:
		return nil, errors.New("no JWT signing secret configured")
	}
}
