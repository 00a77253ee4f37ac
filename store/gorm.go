package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"captiveportal/models"

	"gorm.io/gorm"
)

// Gorm stores collections as rows of portal_collections
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) Get(ctx context.Context, c Collection) ([]byte, error) {
	var row models.PortalCollection
	err := g.db.WithContext(ctx).Where("name = ?", c.Key()).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", c.Key(), err)
	}
	return []byte(row.Payload), nil
}

func (g *Gorm) Set(ctx context.Context, c Collection, payload []byte) error {
	err := g.db.WithContext(ctx).Exec(
		`INSERT INTO portal_collections (name, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		c.Key(), string(payload), time.Now(),
	).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", c.Key(), err)
	}
	return nil
}

func (g *Gorm) Clear(ctx context.Context, c Collection) error {
	return g.db.WithContext(ctx).Exec("DELETE FROM portal_collections WHERE name = ?", c.Key()).Error
}

func (g *Gorm) ClearAll(ctx context.Context) error {
	return g.db.WithContext(ctx).Exec("DELETE FROM portal_collections WHERE name IN ?", allKeys()).Error
}
