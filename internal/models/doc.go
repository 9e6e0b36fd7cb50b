// Package models defines the domain entities for a single YouTube → Spotify playlist migration.
//
// The package contains two categories of types:
//
// 1. Run-scoped values: created while a migration runs and discarded when it ends
//   - [PlaylistRef] : identifies a playlist on either service
//   - [SourceItem] : one entry of the source playlist (title only)
//   - [ParsedQuery] : best-effort artist/track pair derived from a title
//   - [DestinationTrack] : search result on the destination service
//   - [Match] and [MatchSet] : order-preserving pairing of source items with search results
//   - [TransferTarget] : where the confirmed tracks are written
//
// 2. Persistent entities
//   - [TransferRecord] : journal entry written after a committed transfer
//
// Match sets are never persisted; only the outcome of a committed transfer is.
package models
