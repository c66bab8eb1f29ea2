package service

import (
	"context"
	"fmt"
	"os"

	"banking-service/internal/domain"
	"banking-service/internal/repository"
	"banking-service/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Bootstrap applies the schema and seeds the default operator users. Safe to
// run on every startup: the schema uses IF NOT EXISTS and the seeder skips
// usernames that already exist.
type Bootstrap struct {
	db     *pgxpool.Pool
	users  *repository.UserRepository
	logger *zap.Logger
}

func NewBootstrap(db *pgxpool.Pool, users *repository.UserRepository, logger *zap.Logger) *Bootstrap {
	return &Bootstrap{db: db, users: users, logger: logger}
}

func (b *Bootstrap) Run(ctx context.Context, schemaPath string) error {
	if err := b.applySchema(ctx, schemaPath); err != nil {
		return err
	}
	return b.seedUsers(ctx)
}

func (b *Bootstrap) applySchema(ctx context.Context, schemaPath string) error {
	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	if _, err := b.db.Exec(ctx, string(schema)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	b.logger.Info("schema applied", zap.String("path", schemaPath))
	return nil
}

type seedUser struct {
	username, password, role, email, fullName string
}

func (b *Bootstrap) seedUsers(ctx context.Context) error {
	seeds := []seedUser{
		{"admin", "admin123", "admin", "admin@securebank.com", "System Administrator"},
		{"customer", "customer123", "customer", "customer@example.com", "Test Customer"},
		{"manager", "manager123", "manager", "manager@securebank.com", "Bank Manager"},
	}

	for _, seed := range seeds {
		hash, err := utils.HashPassword(seed.password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", seed.username, err)
		}
		err = b.users.InsertIfAbsent(ctx, &domain.User{
			Username: seed.username,
			Password: hash,
			Role:     seed.role,
			Email:    seed.email,
			FullName: seed.fullName,
		})
		if err != nil {
			return err
		}
	}
	b.logger.Info("default users seeded", zap.Int("count", len(seeds)))
	return nil
}
