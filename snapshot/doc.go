// Package snapshot persists a full export of the reserve (both order
// lists, maker balances, id allocations) so startup can restore from
// the last snapshot and only replay the journal tail.
//
// Snapshots are written to a temp file and renamed into place, so a
// crash mid-write never leaves a torn snapshot behind.
package snapshot
