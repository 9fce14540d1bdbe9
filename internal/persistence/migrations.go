package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// documentsSchema holds every collection as JSONB rows keyed by
// (collection, id). Expression indexes cover the foreign keys the flow
// pipeline filters on.
const documentsSchema = `
CREATE TABLE IF NOT EXISTS documents (
    collection  TEXT        NOT NULL,
    id          TEXT        NOT NULL,
    payload     JSONB       NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (collection, id)
);

CREATE INDEX IF NOT EXISTS idx_documents_ticket_id
    ON documents (collection, (payload->>'ticketId'));

CREATE INDEX IF NOT EXISTS idx_documents_commerce_id
    ON documents (collection, (payload->>'commerceId'));

CREATE INDEX IF NOT EXISTS idx_documents_evidence_id
    ON documents (collection, (payload->>'evidenceId'));

CREATE INDEX IF NOT EXISTS idx_documents_ticket_number
    ON documents (collection, (payload->>'ticket_number'));
`

// RunMigrations creates the document store schema.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping migrations")
		return nil
	}

	if _, err := pool.Exec(ctx, documentsSchema); err != nil {
		return err
	}

	logger.Info("document store schema ready")
	return nil
}
