package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abroadly/abroadly/internal/pkg/apperrors"
	"github.com/abroadly/abroadly/internal/pkg/logger"
)

// PostgresStore persists sessions in the 'sessions' table. Each slot write is
// a single jsonb statement, so concurrent writes to the same token observe a
// last-write-wins view per slot.
type PostgresStore struct {
	db  *pgxpool.Pool
	ttl time.Duration
}

// NewPostgresStore creates a PostgresStore with the given session lifetime.
func NewPostgresStore(db *pgxpool.Pool, ttl time.Duration) *PostgresStore {
	return &PostgresStore{
		db:  db,
		ttl: ttl,
	}
}

func (s *PostgresStore) Create(ctx context.Context) (string, error) {
	token := uuid.NewString()

	_, err := s.db.Exec(ctx,
		`INSERT INTO sessions (token, data, expires_at) VALUES ($1, '{}'::jsonb, $2)`,
		token, time.Now().Add(s.ttl))
	if err != nil {
		logger.Error().Err(err).Msg("Error creating session")
		return "", fmt.Errorf("error creating session: %w", err)
	}

	return token, nil
}

func (s *PostgresStore) GetSlot(ctx context.Context, token, slot string) (json.RawMessage, bool, error) {
	if _, err := uuid.Parse(token); err != nil {
		// Tokens are server-issued uuids; anything else is not a session.
		return nil, false, nil
	}

	// Reading a slot also slides the expiry, so sessions stay alive as
	// long as they are in use.
	var raw []byte
	err := s.db.QueryRow(ctx,
		`UPDATE sessions SET expires_at = $3 WHERE token = $1 AND expires_at > now() RETURNING data -> $2`,
		token, slot, time.Now().Add(s.ttl)).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		logger.Error().Err(err).Str("slot", slot).Msg("Error reading session slot")
		return nil, false, fmt.Errorf("error reading session slot: %w", err)
	}

	if raw == nil {
		return nil, false, nil
	}
	return json.RawMessage(raw), true, nil
}

func (s *PostgresStore) SetSlot(ctx context.Context, token, slot string, value interface{}) error {
	if _, err := uuid.Parse(token); err != nil {
		// A tampered cookie must not reach the uuid column; report the
		// session as missing so callers fall back to creating a fresh one.
		return apperrors.ErrSessionNotFound
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error encoding session slot value: %w", err)
	}

	cmdTag, err := s.db.Exec(ctx,
		`UPDATE sessions SET data = jsonb_set(data, ARRAY[$2], $3::jsonb) WHERE token = $1 AND expires_at > now()`,
		token, slot, raw)
	if err != nil {
		logger.Error().Err(err).Str("slot", slot).Msg("Error writing session slot")
		return fmt.Errorf("error writing session slot: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteSlot(ctx context.Context, token, slot string) error {
	if _, err := uuid.Parse(token); err != nil {
		return nil
	}

	_, err := s.db.Exec(ctx,
		`UPDATE sessions SET data = data - $2 WHERE token = $1`,
		token, slot)
	if err != nil {
		logger.Error().Err(err).Str("slot", slot).Msg("Error deleting session slot")
		return fmt.Errorf("error deleting session slot: %w", err)
	}
	return nil
}

func (s *PostgresStore) Destroy(ctx context.Context, token string) error {
	if _, err := uuid.Parse(token); err != nil {
		return nil
	}

	_, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		logger.Error().Err(err).Msg("Error destroying session")
		return fmt.Errorf("error destroying session: %w", err)
	}
	return nil
}

// DeleteExpired removes expired session rows. Intended to run periodically.
func (s *PostgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	cmdTag, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired sessions: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
