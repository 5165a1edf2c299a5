// Package postgres implements the ledger store on PostgreSQL. Ledgers are
// stored whole as JSONB documents keyed by player id; the ledger's own
// codec defines the document shape.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/korvus/EnchantMastery_Go/internal/progression"
)

// LedgerStore implements store.LedgerStore for PostgreSQL.
type LedgerStore struct {
	db *pgxpool.Pool
}

// NewLedgerStore creates a new LedgerStore.
func NewLedgerStore(db *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) Get(ctx context.Context, playerID string) (*progression.Ledger, error) {
	var data []byte
	err := s.db.QueryRow(ctx,
		`SELECT data FROM mastery_ledgers WHERE player_id = $1`,
		playerID,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return progression.NewLedger(), nil
		}
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}

	ledger := progression.NewLedger()
	if err := json.Unmarshal(data, ledger); err != nil {
		return nil, fmt.Errorf("failed to decode ledger for player %s: %w", playerID, err)
	}
	return ledger, nil
}

func (s *LedgerStore) Save(ctx context.Context, playerID string, ledger *progression.Ledger) error {
	data, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO mastery_ledgers (player_id, data, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (player_id)
		 DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		playerID, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	return nil
}

func (s *LedgerStore) Delete(ctx context.Context, playerID string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM mastery_ledgers WHERE player_id = $1`,
		playerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete ledger: %w", err)
	}
	return nil
}

func (s *LedgerStore) Players(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT player_id FROM mastery_ledgers ORDER BY player_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan player id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return ids, nil
}
