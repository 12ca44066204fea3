// Package sqlite provides a SQLite-backed collection store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/reglet-dev/deckconf/internal/domain/entities"
	"github.com/reglet-dev/deckconf/internal/domain/repositories"
	"github.com/reglet-dev/deckconf/internal/domain/values"
	"github.com/reglet-dev/deckconf/internal/infrastructure/persistence/sqlite/migrations"
	"github.com/reglet-dev/deckconf/internal/infrastructure/persistence/sqlitemigrate"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Ensure interface compliance
var _ repositories.CollectionRepository = (*Store)(nil)

const (
	kindNormal   = "normal"
	kindFiltered = "filtered"

	deckColumns = "id, name, mtime_secs, usn, kind, config_id, search, search_limit, reschedule"
)

// Store persists a collection's decks and presets in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite collection store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveDeckConfig inserts or replaces a preset.
func (s *Store) SaveDeckConfig(ctx context.Context, conf *entities.DeckConfig) error {
	if err := conf.Validate(); err != nil {
		return err
	}
	settings, err := json.Marshal(conf.Settings)
	if err != nil {
		return fmt.Errorf("encode deck config %s: %w", conf.ID, err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO deck_config (id, name, mtime_secs, usn, config)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   mtime_secs = excluded.mtime_secs,
		   usn = excluded.usn,
		   config = excluded.config`,
		conf.ID,
		conf.Name,
		conf.MtimeSecs,
		conf.Usn,
		string(settings),
	)
	if err != nil {
		return fmt.Errorf("save deck config %s: %w", conf.ID, err)
	}
	return nil
}

// SaveDeck inserts or replaces a deck.
func (s *Store) SaveDeck(ctx context.Context, deck *entities.Deck) error {
	if deck.Name == "" {
		return fmt.Errorf("deck %s: name is required", deck.ID)
	}

	var (
		kind       string
		configID   sql.NullInt64
		search     string
		limit      uint32
		reschedule bool
	)
	switch k := deck.Kind.(type) {
	case entities.NormalDeck:
		kind = kindNormal
		configID = sql.NullInt64{Int64: int64(k.ConfigID), Valid: true}
	case entities.FilteredDeck:
		kind = kindFiltered
		search, limit, reschedule = k.Search, k.Limit, k.Reschedule
	default:
		return fmt.Errorf("deck %s: unknown deck kind %T", deck.ID, deck.Kind)
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO decks (`+deckColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   mtime_secs = excluded.mtime_secs,
		   usn = excluded.usn,
		   kind = excluded.kind,
		   config_id = excluded.config_id,
		   search = excluded.search,
		   search_limit = excluded.search_limit,
		   reschedule = excluded.reschedule`,
		deck.ID,
		deck.Name,
		deck.MtimeSecs,
		deck.Usn,
		kind,
		configID,
		search,
		limit,
		reschedule,
	)
	if err != nil {
		return fmt.Errorf("save deck %s: %w", deck.ID, err)
	}
	return nil
}

// AllDeckConfigs returns every preset ordered by id.
func (s *Store) AllDeckConfigs(ctx context.Context) ([]*entities.DeckConfig, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, mtime_secs, usn, config FROM deck_config ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query deck configs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*entities.DeckConfig
	for rows.Next() {
		var (
			conf     entities.DeckConfig
			settings string
		)
		if err := rows.Scan(&conf.ID, &conf.Name, &conf.MtimeSecs, &conf.Usn, &settings); err != nil {
			return nil, fmt.Errorf("scan deck config: %w", err)
		}
		if err := json.Unmarshal([]byte(settings), &conf.Settings); err != nil {
			return nil, fmt.Errorf("decode deck config %s: %w", conf.ID, err)
		}
		out = append(out, &conf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deck configs: %w", err)
	}
	return out, nil
}

// AllDecks returns every deck ordered by id.
func (s *Store) AllDecks(ctx context.Context) ([]*entities.Deck, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT `+deckColumns+` FROM decks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query decks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*entities.Deck
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decks: %w", err)
	}
	return out, nil
}

// GetDeck returns the deck with the given id, or nil if there is none.
func (s *Store) GetDeck(ctx context.Context, id values.DeckID) (*entities.Deck, error) {
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+deckColumns+` FROM decks WHERE id = ?`, id)
	deck, err := scanDeck(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return deck, err
}

// ParentDecks looks up each ancestor by name, nearest first.
func (s *Store) ParentDecks(ctx context.Context, deck *entities.Deck) ([]*entities.Deck, error) {
	var parents []*entities.Deck
	for _, name := range deck.ParentNames() {
		row := s.sqlDB.QueryRowContext(ctx, `SELECT `+deckColumns+` FROM decks WHERE name = ?`, name)
		parent, err := scanDeck(row)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, err
		}
		parents = append(parents, parent)
	}
	return parents, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeck(row rowScanner) (*entities.Deck, error) {
	var (
		deck       entities.Deck
		kind       string
		configID   sql.NullInt64
		search     string
		limit      uint32
		reschedule bool
	)
	err := row.Scan(&deck.ID, &deck.Name, &deck.MtimeSecs, &deck.Usn, &kind, &configID, &search, &limit, &reschedule)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan deck: %w", err)
	}

	switch kind {
	case kindNormal:
		deck.Kind = entities.NormalDeck{ConfigID: values.DeckConfigID(configID.Int64)}
	case kindFiltered:
		deck.Kind = entities.FilteredDeck{Search: search, Limit: limit, Reschedule: reschedule}
	default:
		return nil, fmt.Errorf("deck %s: unknown kind %q", deck.ID, kind)
	}
	return &deck, nil
}
