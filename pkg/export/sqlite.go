package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/bubblemap/pkg/model"
)

// Node ids are not unique keys: the graph tolerates duplicates and resolves
// to the first in order, so rows carry their position instead.
const sqliteSchema = `
CREATE TABLE bubbles (
	position    INTEGER PRIMARY KEY,
	id          TEXT NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL,
	x           REAL NOT NULL,
	y           REAL NOT NULL,
	radius      REAL NOT NULL
);
CREATE TABLE nodes (
	position     INTEGER PRIMARY KEY,
	id           TEXT NOT NULL,
	title        TEXT NOT NULL,
	summary      TEXT NOT NULL,
	content_html TEXT NOT NULL
);
CREATE TABLE node_bubbles (
	node_position INTEGER NOT NULL REFERENCES nodes(position),
	ordinal       INTEGER NOT NULL,
	bubble_id     TEXT NOT NULL,
	PRIMARY KEY (node_position, ordinal)
);
CREATE TABLE links (
	position INTEGER PRIMARY KEY,
	from_id  TEXT NOT NULL,
	to_id    TEXT NOT NULL,
	label    TEXT NOT NULL
);
CREATE INDEX idx_nodes_id ON nodes(id);
CREATE INDEX idx_links_from ON links(from_id);
CREATE INDEX idx_links_to ON links(to_id);
`

// SaveSQLite writes the snapshot to a fresh SQLite database at path,
// replacing any existing file.
func SaveSQLite(ctx context.Context, snap model.Snapshot, path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove old database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := insertSnapshot(ctx, tx, snap); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func insertSnapshot(ctx context.Context, tx *sql.Tx, snap model.Snapshot) error {
	for i, b := range snap.Bubbles {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO bubbles (position, id, title, description, x, y, radius) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, b.ID, b.Title, b.Description, b.X, b.Y, b.Radius); err != nil {
			return fmt.Errorf("inserting bubble %s: %w", b.ID, err)
		}
	}
	for i, n := range snap.Nodes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO nodes (position, id, title, summary, content_html) VALUES (?, ?, ?, ?, ?)`,
			i, n.ID, n.Title, n.Summary, n.ContentHTML); err != nil {
			return fmt.Errorf("inserting node %s: %w", n.ID, err)
		}
		for j, bid := range n.Bubbles {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO node_bubbles (node_position, ordinal, bubble_id) VALUES (?, ?, ?)`,
				i, j, bid); err != nil {
				return fmt.Errorf("inserting membership %s/%s: %w", n.ID, bid, err)
			}
		}
	}
	for i, l := range snap.Links {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO links (position, from_id, to_id, label) VALUES (?, ?, ?, ?)`,
			i, l.From, l.To, l.Label); err != nil {
			return fmt.Errorf("inserting link %s->%s: %w", l.From, l.To, err)
		}
	}
	return nil
}

// LoadSQLite reads a snapshot written by SaveSQLite.
func LoadSQLite(ctx context.Context, path string) (model.Snapshot, error) {
	var snap model.Snapshot
	if _, err := os.Stat(path); err != nil {
		return snap, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return snap, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, title, description, x, y, radius FROM bubbles ORDER BY position`)
	if err != nil {
		return snap, fmt.Errorf("query bubbles: %w", err)
	}
	for rows.Next() {
		var b model.Bubble
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.X, &b.Y, &b.Radius); err != nil {
			rows.Close()
			return snap, err
		}
		snap.Bubbles = append(snap.Bubbles, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snap, err
	}

	rows, err = db.QueryContext(ctx, `SELECT position, id, title, summary, content_html FROM nodes ORDER BY position`)
	if err != nil {
		return snap, fmt.Errorf("query nodes: %w", err)
	}
	byPos := map[int]int{}
	for rows.Next() {
		var pos int
		n := model.Node{Bubbles: []string{}}
		if err := rows.Scan(&pos, &n.ID, &n.Title, &n.Summary, &n.ContentHTML); err != nil {
			rows.Close()
			return snap, err
		}
		byPos[pos] = len(snap.Nodes)
		snap.Nodes = append(snap.Nodes, n)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snap, err
	}

	rows, err = db.QueryContext(ctx, `SELECT node_position, bubble_id FROM node_bubbles ORDER BY node_position, ordinal`)
	if err != nil {
		return snap, fmt.Errorf("query memberships: %w", err)
	}
	for rows.Next() {
		var pos int
		var bid string
		if err := rows.Scan(&pos, &bid); err != nil {
			rows.Close()
			return snap, err
		}
		if i, ok := byPos[pos]; ok {
			snap.Nodes[i].Bubbles = append(snap.Nodes[i].Bubbles, bid)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snap, err
	}

	rows, err = db.QueryContext(ctx, `SELECT from_id, to_id, label FROM links ORDER BY position`)
	if err != nil {
		return snap, fmt.Errorf("query links: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l model.Link
		if err := rows.Scan(&l.From, &l.To, &l.Label); err != nil {
			return snap, err
		}
		snap.Links = append(snap.Links, l)
	}
	return snap, rows.Err()
}
