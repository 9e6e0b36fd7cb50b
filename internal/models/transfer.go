package models

import (
	"fmt"
	"time"
)

// TransferRecord is the journal entry for one committed transfer.
type TransferRecord struct {
	id                string
	sourcePlaylistID  string
	sourceTitle       string
	destPlaylistID    string
	destName          string
	destURL           string
	mode              TransferMode
	itemsTotal        int
	tracksMatched     int
	tracksTransferred int
	createdAt         time.Time
}

// NewTransferRecord creates a record for a committed transfer. The ID is assigned by the repository.
func NewTransferRecord(source PlaylistRef, dest PlaylistRef, url string, mode TransferMode, items, matched, transferred int) *TransferRecord {
	return &TransferRecord{
		sourcePlaylistID:  source.ID,
		sourceTitle:       source.Title,
		destPlaylistID:    dest.ID,
		destName:          dest.Title,
		destURL:           url,
		mode:              mode,
		itemsTotal:        items,
		tracksMatched:     matched,
		tracksTransferred: transferred,
		createdAt:         time.Now().UTC(),
	}
}

// RestoreTransferRecord rebuilds a record read from storage.
func RestoreTransferRecord(
	id, sourceID, sourceTitle, destID, destName, destURL string,
	mode TransferMode, items, matched, transferred int, createdAt time.Time,
) *TransferRecord {
	return &TransferRecord{
		id:                id,
		sourcePlaylistID:  sourceID,
		sourceTitle:       sourceTitle,
		destPlaylistID:    destID,
		destName:          destName,
		destURL:           destURL,
		mode:              mode,
		itemsTotal:        items,
		tracksMatched:     matched,
		tracksTransferred: transferred,
		createdAt:         createdAt,
	}
}

func (r *TransferRecord) ID() string               { return r.id }
func (r *TransferRecord) SetID(id string)          { r.id = id }
func (r *TransferRecord) SourcePlaylistID() string { return r.sourcePlaylistID }
func (r *TransferRecord) SourceTitle() string      { return r.sourceTitle }
func (r *TransferRecord) DestPlaylistID() string   { return r.destPlaylistID }
func (r *TransferRecord) DestName() string         { return r.destName }
func (r *TransferRecord) DestURL() string          { return r.destURL }
func (r *TransferRecord) Mode() TransferMode       { return r.mode }
func (r *TransferRecord) ItemsTotal() int          { return r.itemsTotal }
func (r *TransferRecord) TracksMatched() int       { return r.tracksMatched }
func (r *TransferRecord) TracksTransferred() int   { return r.tracksTransferred }
func (r *TransferRecord) CreatedAt() time.Time     { return r.createdAt }

// Validate checks the record before it is written.
func (r *TransferRecord) Validate() error {
	if r.destPlaylistID == "" {
		return fmt.Errorf("destination playlist ID is required")
	}
	if r.tracksTransferred <= 0 {
		return fmt.Errorf("transferred track count must be positive")
	}
	if r.tracksTransferred > r.tracksMatched || r.tracksMatched > r.itemsTotal {
		return fmt.Errorf("inconsistent counts: items=%d matched=%d transferred=%d",
			r.itemsTotal, r.tracksMatched, r.tracksTransferred)
	}
	return nil
}
