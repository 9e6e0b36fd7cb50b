// Package repositories implements SQLite persistence for the transfer journal.
//
// [TransferRepository] stores one row per committed transfer: the source playlist, the destination playlist and its
// URL, the transfer mode and the item/match/transfer counts. Match sets themselves are never stored.
//
// Sequence numbers provide stable, human-readable ordering (e.g., transfer #42) independent of UUIDs and creation
// timestamps. [NextSequence] increments a per-table counter inside the caller's transaction.
package repositories
