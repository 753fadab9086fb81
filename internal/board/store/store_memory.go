package store

import (
	"context"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"

	"bountyboard/internal/board/models"
	"bountyboard/pkg/domain"
	"bountyboard/pkg/platform/sentinel"
)

// InMemory keeps board snapshots and bounties in maps. Used for development
// (seeded from YAML) and tests.
type InMemory struct {
	mu       sync.RWMutex
	boards   map[domain.Address]*models.BountyBoard
	bounties map[domain.Address]models.Bounty
}

func NewInMemory() *InMemory {
	return &InMemory{
		boards:   make(map[domain.Address]*models.BountyBoard),
		bounties: make(map[domain.Address]models.Bounty),
	}
}

// PutBoard installs a snapshot. A snapshot older than the stored one is
// ignored so catalogs never move backwards.
func (s *InMemory) PutBoard(_ context.Context, board *models.BountyBoard) error {
	if err := board.Check(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.boards[board.Address]; ok && existing.Version() > board.Version() {
		return nil
	}
	s.boards[board.Address] = board.Clone()
	return nil
}

func (s *InMemory) PutBounty(_ context.Context, bounty models.Bounty) error {
	if bounty.Address.IsZero() || bounty.BountyBoard.IsZero() {
		return fmt.Errorf("bounty address and board are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounties[bounty.Address] = bounty
	return nil
}

func (s *InMemory) FindBoard(_ context.Context, address domain.Address) (*models.BountyBoard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if board, ok := s.boards[address]; ok {
		return board.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindBounty(_ context.Context, address domain.Address) (*models.Bounty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if bounty, ok := s.bounties[address]; ok {
		return &bounty, nil
	}
	return nil, sentinel.ErrNotFound
}

// Seed is the YAML document layout for board snapshots.
//
//	boards:
//	  - address: <base58>
//	    realm: <base58>
//	    authority: <base58>
//	    config:
//	      last_revised: 1700000000
//	      roles:
//	        - role_name: member
//	          default: true
//	bounties:
//	  - address: <base58>
//	    bounty_board: <base58>
type Seed struct {
	Boards   []models.BountyBoard `yaml:"boards"`
	Bounties []models.Bounty      `yaml:"bounties"`
}

// LoadYAML decodes a Seed document and installs every board and bounty.
func (s *InMemory) LoadYAML(ctx context.Context, r io.Reader) error {
	return LoadSeed(ctx, r, s)
}

// LoadSeed decodes a Seed document into w. Bounties must reference a board
// that w already knows, either from this document or from earlier state.
func LoadSeed(ctx context.Context, r io.Reader, w Writer) error {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && err != io.EOF {
		return fmt.Errorf("decode board seed: %w", err)
	}
	for i := range seed.Boards {
		if err := w.PutBoard(ctx, &seed.Boards[i]); err != nil {
			return fmt.Errorf("board %d: %w", i, err)
		}
	}
	for i, bounty := range seed.Bounties {
		if _, err := w.FindBoard(ctx, bounty.BountyBoard); err != nil {
			return fmt.Errorf("bounty %d references unknown board %s", i, bounty.BountyBoard)
		}
		if err := w.PutBounty(ctx, bounty); err != nil {
			return fmt.Errorf("bounty %d: %w", i, err)
		}
	}
	return nil
}
