package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"bountyboard/internal/board/models"
	"bountyboard/pkg/domain"
	"bountyboard/pkg/platform/sentinel"
)

// PostgresStore reads board snapshots synced from governance into
// bounty_boards and bounties.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindBoard(ctx context.Context, address domain.Address) (*models.BountyBoard, error) {
	query := `
		SELECT address, realm, authority, config
		FROM bounty_boards
		WHERE address = $1
	`
	var (
		board     models.BountyBoard
		authority []byte
		config    []byte
	)
	err := s.db.QueryRowContext(ctx, query, address).Scan(&board.Address, &board.Realm, &authority, &config)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find bounty board: %w", err)
	}
	if authority != nil {
		if board.Authority, err = domain.AddressFromBytes(authority); err != nil {
			return nil, fmt.Errorf("decode board authority: %w", err)
		}
	}
	if err := json.Unmarshal(config, &board.Config); err != nil {
		return nil, fmt.Errorf("decode board config: %w", err)
	}
	return &board, nil
}

func (s *PostgresStore) FindBounty(ctx context.Context, address domain.Address) (*models.Bounty, error) {
	var bounty models.Bounty
	err := s.db.QueryRowContext(ctx,
		`SELECT address, bounty_board FROM bounties WHERE address = $1`, address,
	).Scan(&bounty.Address, &bounty.BountyBoard)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find bounty: %w", err)
	}
	return &bounty, nil
}

// PutBoard upserts a snapshot unless a newer revision is already stored.
func (s *PostgresStore) PutBoard(ctx context.Context, board *models.BountyBoard) error {
	if err := board.Check(); err != nil {
		return err
	}
	config, err := json.Marshal(board.Config)
	if err != nil {
		return fmt.Errorf("encode board config: %w", err)
	}
	var authority any
	if board.HasAuthority() {
		authority = board.Authority
	}
	query := `
		INSERT INTO bounty_boards (address, realm, authority, config, last_revised)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (address) DO UPDATE SET
			realm = EXCLUDED.realm,
			authority = EXCLUDED.authority,
			config = EXCLUDED.config,
			last_revised = EXCLUDED.last_revised
		WHERE bounty_boards.last_revised <= EXCLUDED.last_revised
	`
	if _, err := s.db.ExecContext(ctx, query, board.Address, board.Realm, authority, config, board.Version()); err != nil {
		return fmt.Errorf("put bounty board: %w", err)
	}
	return nil
}

func (s *PostgresStore) PutBounty(ctx context.Context, bounty models.Bounty) error {
	query := `
		INSERT INTO bounties (address, bounty_board)
		VALUES ($1, $2)
		ON CONFLICT (address) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, query, bounty.Address, bounty.BountyBoard); err != nil {
		return fmt.Errorf("put bounty: %w", err)
	}
	return nil
}
