// Package migrations provides embedded SQL schema files.
package migrations

import (
	_ "embed"
)

// SnapshotSQL creates the tables of a snapshot database. It is idempotent.
//
//go:embed sql/001_snapshot.sql
var SnapshotSQL string
