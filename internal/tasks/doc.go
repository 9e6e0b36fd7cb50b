// package tasks implements the playlist migration pipeline.
//
// A run moves through four stages, each a small type that depends only on the collaborator interfaces in
// package services and on a [Prompter] for user interaction:
//
//  1. [MatchEngine] parses every source title with [ParseTitle] and searches the destination, one request per item.
//  2. [ConfirmationStage] lets the user include or exclude matches; unmatched entries cannot be selected.
//  3. [TransferStage] resolves a new or existing destination playlist and appends the selection in one call.
//  4. [Migrator] sequences the stages, aborts when nothing matched and journals committed transfers.
//
// Progress is reported synchronously through a [Reporter] so output never interleaves with an open prompt.
package tasks
