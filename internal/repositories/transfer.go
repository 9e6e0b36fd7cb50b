package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/yt2spot/internal/models"
	"github.com/desertthunder/yt2spot/internal/shared"
)

// ErrTransferNotFound is returned by [TransferRepository.Get] for unknown IDs.
var ErrTransferNotFound = errors.New("transfer not found")

const transferColumns = `
	id, sequence, source_playlist_id, source_title, dest_playlist_id,
	dest_name, dest_url, mode, items_total, tracks_matched,
	tracks_transferred, created_at`

// TransferRepository journals committed transfers.
type TransferRepository struct {
	db *sql.DB
}

// NewTransferRepository creates a new TransferRepository with the given database connection
func NewTransferRepository(db *sql.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

// Create validates the record, assigns it an ID and inserts it with the next sequence number.
func (r *TransferRepository) Create(ctx context.Context, record *models.TransferRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequence, err := NextSequence(ctx, tx, "transfers")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	query := `INSERT INTO transfers (` + transferColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = tx.ExecContext(ctx, query,
		id,
		sequence,
		record.SourcePlaylistID(),
		record.SourceTitle(),
		record.DestPlaylistID(),
		record.DestName(),
		record.DestURL(),
		record.Mode().String(),
		record.ItemsTotal(),
		record.TracksMatched(),
		record.TracksTransferred(),
		record.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transfer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transfer: %w", err)
	}

	record.SetID(id)
	return nil
}

// Get retrieves a transfer by ID.
func (r *TransferRepository) Get(ctx context.Context, id string) (*models.TransferRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = ?`, id)

	record, err := scanTransfer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrTransferNotFound, id)
	}
	return record, err
}

// ListCriteria filters [TransferRepository.List]. Zero values match everything.
type ListCriteria struct {
	DestPlaylistID string
	Limit          int
}

// List returns transfers matching criteria, newest first.
func (r *TransferRepository) List(ctx context.Context, criteria ListCriteria) ([]*models.TransferRecord, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers`
	args := []any{}

	if criteria.DestPlaylistID != "" {
		query += " WHERE dest_playlist_id = ?"
		args = append(args, criteria.DestPlaylistID)
	}

	query += " ORDER BY sequence DESC"
	if criteria.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, criteria.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	defer rows.Close()

	var records []*models.TransferRecord
	for rows.Next() {
		record, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanTransfer scans a [sql.Row] or [sql.Rows] into a [models.TransferRecord]
func scanTransfer(s scanner) (*models.TransferRecord, error) {
	var (
		id, sourceID, sourceTitle   string
		destID, destName, destURL   string
		mode                        string
		sequence                    int
		items, matched, transferred int
		createdAt                   time.Time
	)

	err := s.Scan(
		&id, &sequence, &sourceID, &sourceTitle, &destID,
		&destName, &destURL, &mode, &items, &matched,
		&transferred, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan transfer: %w", err)
	}

	m, err := parseMode(mode)
	if err != nil {
		return nil, err
	}

	return models.RestoreTransferRecord(
		id, sourceID, sourceTitle, destID, destName, destURL,
		m, items, matched, transferred, createdAt,
	), nil
}

func parseMode(s string) (models.TransferMode, error) {
	switch s {
	case models.CreateNew.String():
		return models.CreateNew, nil
	case models.AddToExisting.String():
		return models.AddToExisting, nil
	default:
		return 0, fmt.Errorf("unknown transfer mode %q", s)
	}
}
