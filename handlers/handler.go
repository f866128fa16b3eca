package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/padraicbc/betlog/cache"
	"github.com/padraicbc/betlog/config"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db     *bun.DB
	cache  *cache.Cache
	log    *zap.Logger
	cfg    *config.Config
	JWTKey []byte
}

// New creates a Handler with the given database connection, optional stats
// cache and JWT signing key.
func New(db *bun.DB, c *cache.Cache, log *zap.Logger, cfg *config.Config) *Handler {
	return &Handler{db: db, cache: c, log: log, cfg: cfg, JWTKey: cfg.JWTKey()}
}

func statsKey(userID uuid.UUID) string {
	return "stats:" + userID.String()
}

// invalidateStats drops the cached summary after any bet mutation so the next
// stats read recomputes from the store.
func (h *Handler) invalidateStats(ctx context.Context, userID uuid.UUID) {
	h.cache.Delete(ctx, statsKey(userID))
}
