// Package schema embeds the JSON Schema for collection snapshot files.
package schema

import _ "embed"

// Collection is the JSON Schema (draft 2020-12) for collection snapshots.
//
//go:embed collection.schema.json
var Collection []byte
