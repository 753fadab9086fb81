package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	boardmodels "bountyboard/internal/board/models"
	"bountyboard/internal/registry/models"
	"bountyboard/pkg/domain"
	"bountyboard/pkg/platform/sentinel"
)

const contributorColumns = `address, bounty_board, realm, associated_wallet, role,
	reputation, recent_rep_change, bounty_completed, skills_pt, initialized`

// Contributors persists contributor_records.
type Contributors struct {
	db *sql.DB
}

func NewContributors(db *sql.DB) *Contributors {
	return &Contributors{db: db}
}

func contributorArgs(r *models.ContributorRecord) ([]any, error) {
	skills := r.SkillsPt
	if skills == nil {
		skills = []models.SkillPoint{}
	}
	raw, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("encode skills: %w", err)
	}
	return []any{
		r.Address, r.BountyBoard, r.Realm, r.AssociatedWallet, r.Role[:],
		r.Reputation, r.RecentRepChange, int64(r.BountyCompleted), raw, r.Initialized,
	}, nil
}

// Create inserts record, failing with sentinel.ErrAlreadyUsed when its
// address is taken.
func (s *Contributors) Create(ctx context.Context, record *models.ContributorRecord) error {
	args, err := contributorArgs(record)
	if err != nil {
		return err
	}
	query := `INSERT INTO contributor_records (` + contributorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := conn(ctx, s.db).ExecContext(ctx, query, args...); err != nil {
		if hasPgCode(err, uniqueViolation) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert contributor record: %w", err)
	}
	return nil
}

// CreateIfAbsent inserts record unless one exists, then reads back whichever
// row owns the address. A concurrent insert of the same address blocks the
// statement until that transaction resolves.
func (s *Contributors) CreateIfAbsent(ctx context.Context, record *models.ContributorRecord) (*models.ContributorRecord, bool, error) {
	args, err := contributorArgs(record)
	if err != nil {
		return nil, false, err
	}
	query := `INSERT INTO contributor_records (` + contributorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT DO NOTHING
		RETURNING address`
	var inserted domain.Address
	err = conn(ctx, s.db).QueryRowContext(ctx, query, args...).Scan(&inserted)
	switch {
	case err == nil:
		return record.Clone(), true, nil
	case errors.Is(err, sql.ErrNoRows):
		existing, err := s.FindByAddress(ctx, record.Address)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	default:
		return nil, false, fmt.Errorf("insert contributor record: %w", err)
	}
}

func (s *Contributors) FindByAddress(ctx context.Context, address domain.Address) (*models.ContributorRecord, error) {
	query := `SELECT ` + contributorColumns + ` FROM contributor_records WHERE address = $1`
	rec, err := scanContributor(conn(ctx, s.db).QueryRowContext(ctx, query, address))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find contributor record: %w", err)
	}
	return rec, nil
}

// FindMany fetches all addresses in one round trip. Slots without a record
// are nil.
func (s *Contributors) FindMany(ctx context.Context, addresses []domain.Address) ([]*models.ContributorRecord, error) {
	out := make([]*models.ContributorRecord, len(addresses))
	if len(addresses) == 0 {
		return out, nil
	}
	raw := make(pq.ByteaArray, len(addresses))
	for i, a := range addresses {
		raw[i] = a.Bytes()
	}
	query := `SELECT ` + contributorColumns + ` FROM contributor_records WHERE address = ANY($1::bytea[])`
	rows, err := conn(ctx, s.db).QueryContext(ctx, query, raw)
	if err != nil {
		return nil, fmt.Errorf("find contributor records: %w", err)
	}
	defer rows.Close()

	byAddress := make(map[domain.Address]*models.ContributorRecord, len(addresses))
	for rows.Next() {
		rec, err := scanContributor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contributor record: %w", err)
		}
		byAddress[rec.Address] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contributor records: %w", err)
	}
	for i, a := range addresses {
		if rec, ok := byAddress[a]; ok {
			out[i] = rec.Clone()
		}
	}
	return out, nil
}

func (s *Contributors) ListByRealm(ctx context.Context, realm domain.Address) ([]*models.ContributorRecord, error) {
	query := `SELECT ` + contributorColumns + ` FROM contributor_records WHERE realm = $1 ORDER BY address`
	rows, err := conn(ctx, s.db).QueryContext(ctx, query, realm)
	if err != nil {
		return nil, fmt.Errorf("list contributor records: %w", err)
	}
	defer rows.Close()

	var out []*models.ContributorRecord
	for rows.Next() {
		rec, err := scanContributor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contributor record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contributor records: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContributor(row rowScanner) (*models.ContributorRecord, error) {
	var (
		rec       models.ContributorRecord
		role      []byte
		completed int64
		skills    []byte
	)
	err := row.Scan(&rec.Address, &rec.BountyBoard, &rec.Realm, &rec.AssociatedWallet, &role,
		&rec.Reputation, &rec.RecentRepChange, &completed, &skills, &rec.Initialized)
	if err != nil {
		return nil, err
	}
	if len(role) != boardmodels.RoleNameCapacity {
		return nil, fmt.Errorf("stored role has %d bytes", len(role))
	}
	copy(rec.Role[:], role)
	rec.BountyCompleted = uint32(completed)
	if err := json.Unmarshal(skills, &rec.SkillsPt); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}
	if rec.SkillsPt == nil {
		rec.SkillsPt = []models.SkillPoint{}
	}
	return &rec, nil
}
