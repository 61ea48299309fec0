// Package sqlite persists Board aggregates in a SQLite database using the
// pure-Go modernc.org/sqlite driver. The aggregate is stored across three
// tables (boards, columns, cards) and is always read and written whole;
// updates are guarded by an optimistic version check on the boards row.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lumeo-app/board-service/internal/domain"
	"github.com/lumeo-app/board-service/internal/domain/board"
	"github.com/lumeo-app/board-service/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS boards (
	id TEXT PRIMARY KEY,
	owner_id TEXT NOT NULL,
	title TEXT NOT NULL,
	type TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	priority TEXT NOT NULL DEFAULT '',
	due_date TEXT,
	tags TEXT NOT NULL DEFAULT '[]',
	link TEXT NOT NULL DEFAULT '',
	version INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS columns (
	id TEXT PRIMARY KEY,
	board_id TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS cards (
	id TEXT PRIMARY KEY,
	column_id TEXT NOT NULL REFERENCES columns(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL,
	progress INTEGER NOT NULL DEFAULT 0,
	completed INTEGER NOT NULL DEFAULT 0,
	due_date TEXT,
	priority TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]',
	link TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_boards_owner ON boards(owner_id);
CREATE INDEX IF NOT EXISTS idx_boards_owner_type ON boards(owner_id, type);
CREATE INDEX IF NOT EXISTS idx_columns_board ON columns(board_id);
CREATE INDEX IF NOT EXISTS idx_cards_column ON cards(column_id);
`

// Compile-time interface checks.
var (
	_ ports.BoardRepository = (*Repository)(nil)
	_ ports.HealthChecker   = (*Repository)(nil)
)

// Repository implements ports.BoardRepository on a SQLite database.
type Repository struct {
	db *sql.DB
}

// Open connects to the database at the given DSN, applies the pragmas the
// repository depends on and ensures the schema exists.
func Open(dsn string) (*Repository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("applying pragma: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Repository{db: db}, nil
}

// Close releases the underlying database handle.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Name implements ports.HealthChecker.
func (r *Repository) Name() string { return "sqlite" }

// HealthCheck implements ports.HealthChecker.
func (r *Repository) HealthCheck(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}

// FindByID loads the whole aggregate, columns and cards included.
func (r *Repository) FindByID(ctx context.Context, id string) (*board.Board, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, type, description, priority, due_date,
		       tags, link, version, created_at, updated_at
		FROM boards WHERE id = ?`, id)

	b, err := scanBoard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("board")
		}
		return nil, domain.RepositoryFailure(fmt.Errorf("reading board: %w", err))
	}
	if err := r.loadChildren(ctx, b); err != nil {
		return nil, domain.RepositoryFailure(err)
	}
	return b, nil
}

// Create persists a new aggregate inside a single transaction.
func (r *Repository) Create(ctx context.Context, b *board.Board) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.RepositoryFailure(fmt.Errorf("beginning transaction: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO boards (id, owner_id, title, type, description, priority,
		                    due_date, tags, link, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.OwnerID, b.Title.String(), b.Type.String(),
		b.Meta.Description, b.Meta.Priority.String(), encodeTime(b.Meta.DueDate),
		encodeTags(b.Meta.Tags), b.Meta.Link, b.Version,
		b.CreatedAt.Format(time.RFC3339Nano), b.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return domain.RepositoryFailure(fmt.Errorf("inserting board: %w", err))
	}
	if err := insertChildren(ctx, tx, b); err != nil {
		return domain.RepositoryFailure(err)
	}
	if err := tx.Commit(); err != nil {
		return domain.RepositoryFailure(fmt.Errorf("committing transaction: %w", err))
	}
	return nil
}

// Update rewrites the aggregate inside a single transaction. The boards row
// is updated with a version compare-and-swap; when the stored version has
// moved on, the write is discarded and ErrConflict surfaces. Columns and
// cards are replaced wholesale, which keeps the write logic independent of
// what changed.
func (r *Repository) Update(ctx context.Context, b *board.Board) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.RepositoryFailure(fmt.Errorf("beginning transaction: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE boards
		SET title = ?, description = ?, priority = ?, due_date = ?, tags = ?,
		    link = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`,
		b.Title.String(), b.Meta.Description, b.Meta.Priority.String(),
		encodeTime(b.Meta.DueDate), encodeTags(b.Meta.Tags), b.Meta.Link,
		b.UpdatedAt.Format(time.RFC3339Nano), b.ID, b.Version)
	if err != nil {
		return domain.RepositoryFailure(fmt.Errorf("updating board: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.RepositoryFailure(fmt.Errorf("reading affected rows: %w", err))
	}
	if affected == 0 {
		var exists int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM boards WHERE id = ?`, b.ID).Scan(&exists); err != nil {
			return domain.RepositoryFailure(fmt.Errorf("checking board existence: %w", err))
		}
		if exists == 0 {
			return domain.NotFound("board")
		}
		return fmt.Errorf("%w: board %s version %d is stale", domain.ErrConflict, b.ID, b.Version)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM columns WHERE board_id = ?`, b.ID); err != nil {
		return domain.RepositoryFailure(fmt.Errorf("clearing columns: %w", err))
	}
	if err := insertChildren(ctx, tx, b); err != nil {
		return domain.RepositoryFailure(err)
	}
	if err := tx.Commit(); err != nil {
		return domain.RepositoryFailure(fmt.Errorf("committing transaction: %w", err))
	}

	b.Version++
	return nil
}

// Delete removes the aggregate; cascades take the columns and cards with it.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return domain.RepositoryFailure(fmt.Errorf("deleting board: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.RepositoryFailure(fmt.Errorf("reading affected rows: %w", err))
	}
	if affected == 0 {
		return domain.NotFound("board")
	}
	return nil
}

// FindByOwner returns one page of the owner's boards ordered by creation
// time descending, optionally filtered by type.
func (r *Repository) FindByOwner(
	ctx context.Context,
	ownerID string,
	req ports.PageRequest,
	typ *board.BoardType,
) (ports.Page[*board.Board], error) {
	req = req.Normalize()

	where := `WHERE owner_id = ?`
	args := []any{ownerID}
	if typ != nil {
		where += ` AND type = ?`
		args = append(args, typ.String())
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM boards `+where, args...).Scan(&total); err != nil {
		return ports.Page[*board.Board]{}, domain.RepositoryFailure(fmt.Errorf("counting boards: %w", err))
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, title, type, description, priority, due_date,
		       tags, link, version, created_at, updated_at
		FROM boards `+where+`
		ORDER BY created_at DESC, id ASC
		LIMIT ? OFFSET ?`, append(args, req.Limit, req.Offset())...)
	if err != nil {
		return ports.Page[*board.Board]{}, domain.RepositoryFailure(fmt.Errorf("listing boards: %w", err))
	}
	defer rows.Close()

	items := make([]*board.Board, 0, req.Limit)
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return ports.Page[*board.Board]{}, domain.RepositoryFailure(fmt.Errorf("reading board row: %w", err))
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return ports.Page[*board.Board]{}, domain.RepositoryFailure(fmt.Errorf("iterating boards: %w", err))
	}

	for _, b := range items {
		if err := r.loadChildren(ctx, b); err != nil {
			return ports.Page[*board.Board]{}, domain.RepositoryFailure(err)
		}
	}
	return ports.NewPage(items, req, total), nil
}

// loadChildren populates the board's columns and their cards in position
// order.
func (r *Repository) loadChildren(ctx context.Context, b *board.Board) error {
	colRows, err := r.db.QueryContext(ctx, `
		SELECT id, title, position
		FROM columns WHERE board_id = ?
		ORDER BY position ASC`, b.ID)
	if err != nil {
		return fmt.Errorf("reading columns: %w", err)
	}
	defer colRows.Close()

	b.Columns = nil
	for colRows.Next() {
		col := &board.Column{}
		if err := colRows.Scan(&col.ID, &col.Title, &col.Position); err != nil {
			return fmt.Errorf("reading column row: %w", err)
		}
		b.Columns = append(b.Columns, col)
	}
	if err := colRows.Err(); err != nil {
		return fmt.Errorf("iterating columns: %w", err)
	}

	for _, col := range b.Columns {
		cardRows, err := r.db.QueryContext(ctx, `
			SELECT id, title, description, content, position, progress,
			       completed, due_date, priority, tags, link
			FROM cards WHERE column_id = ?
			ORDER BY position ASC`, col.ID)
		if err != nil {
			return fmt.Errorf("reading cards: %w", err)
		}
		for cardRows.Next() {
			card, err := scanCard(cardRows)
			if err != nil {
				cardRows.Close()
				return err
			}
			col.Cards = append(col.Cards, card)
		}
		if err := cardRows.Err(); err != nil {
			cardRows.Close()
			return fmt.Errorf("iterating cards: %w", err)
		}
		cardRows.Close()
	}
	return nil
}

func insertChildren(ctx context.Context, tx *sql.Tx, b *board.Board) error {
	for _, col := range b.Columns {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO columns (id, board_id, title, position)
			VALUES (?, ?, ?, ?)`,
			col.ID, b.ID, col.Title, col.Position); err != nil {
			return fmt.Errorf("inserting column: %w", err)
		}
		for _, card := range col.Cards {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO cards (id, column_id, title, description, content,
				                   position, progress, completed, due_date,
				                   priority, tags, link)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				card.ID, col.ID, card.Title.String(), card.Description,
				card.Content, card.Position, card.Progress.Int(),
				boolToInt(card.Completed), encodeTime(card.DueDate),
				card.Priority.String(), encodeTags(card.Tags), card.Link); err != nil {
				return fmt.Errorf("inserting card: %w", err)
			}
		}
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBoard(s scanner) (*board.Board, error) {
	var (
		b                    board.Board
		title, typ, priority string
		dueDate              sql.NullString
		tags                 string
		createdAt, updatedAt string
	)
	if err := s.Scan(&b.ID, &b.OwnerID, &title, &typ, &b.Meta.Description,
		&priority, &dueDate, &tags, &b.Meta.Link, &b.Version,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	b.Title = board.Title(title)
	b.Type = board.BoardType(typ)
	b.Meta.Priority = board.Priority(priority)

	var err error
	if b.Meta.DueDate, err = decodeTime(dueDate); err != nil {
		return nil, err
	}
	if b.Meta.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	if b.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if b.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &b, nil
}

func scanCard(s scanner) (*board.Card, error) {
	var (
		card            board.Card
		title, priority string
		progress        int
		completed       int
		dueDate         sql.NullString
		tags            string
	)
	if err := s.Scan(&card.ID, &title, &card.Description, &card.Content,
		&card.Position, &progress, &completed, &dueDate, &priority,
		&tags, &card.Link); err != nil {
		return nil, fmt.Errorf("reading card row: %w", err)
	}

	card.Title = board.CardTitle(title)
	card.Progress = board.Progress(progress)
	card.Completed = completed != 0
	card.Priority = board.Priority(priority)

	var err error
	if card.DueDate, err = decodeTime(dueDate); err != nil {
		return nil, err
	}
	if card.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	return &card, nil
}

func encodeTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v.String)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp: %w", err)
	}
	return &t, nil
}

func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func decodeTags(raw string) ([]string, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("parsing tags: %w", err)
	}
	return tags, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
