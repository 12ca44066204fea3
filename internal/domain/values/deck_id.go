// Package values contains domain value objects that wrap the
// integer identifiers stored in a collection.
package values

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// DeckID identifies a deck within a collection.
type DeckID int64

// ParseDeckID parses a decimal deck identifier.
func ParseDeckID(s string) (DeckID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("deck ID cannot be empty")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid deck ID %q: %w", s, err)
	}
	return DeckID(n), nil
}

// String returns the decimal representation
func (id DeckID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Value implements driver.Valuer for database/sql
func (id DeckID) Value() (driver.Value, error) {
	return int64(id), nil
}

// Scan implements sql.Scanner for database/sql
func (id *DeckID) Scan(value interface{}) error {
	n, err := scanInt64(value)
	if err != nil {
		return fmt.Errorf("cannot scan %T into DeckID: %w", value, err)
	}
	*id = DeckID(n)
	return nil
}

// DeckConfigID identifies a deck options preset (configuration profile).
// The zero value is reserved for the built-in defaults, which are never stored.
type DeckConfigID int64

// String returns the decimal representation
func (id DeckConfigID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// IsZero reports whether this is the sentinel id used by unsaved configs.
func (id DeckConfigID) IsZero() bool {
	return id == 0
}

// Value implements driver.Valuer for database/sql
func (id DeckConfigID) Value() (driver.Value, error) {
	return int64(id), nil
}

// Scan implements sql.Scanner for database/sql
func (id *DeckConfigID) Scan(value interface{}) error {
	n, err := scanInt64(value)
	if err != nil {
		return fmt.Errorf("cannot scan %T into DeckConfigID: %w", value, err)
	}
	*id = DeckConfigID(n)
	return nil
}

func scanInt64(value interface{}) (int64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int64:
		return v, nil
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unsupported type")
	}
}
