package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-sql-driver/mysql"

	"school-admin-api/internal/config"
)

const mysqlDuplicateEntry = 1062

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// mysqlDatabase keeps each collection in a table of (id, doc JSON). Filters
// run through JSON_CONTAINS, which gives the same array-membership match
// as the other backends.
type mysqlDatabase struct {
	db *sql.DB

	mu     sync.Mutex
	tables map[string]bool
}

func OpenMySQL(ctx context.Context, cfg *config.Config) (Database, error) {
	db, err := sql.Open("mysql", cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}

	m := cfg.Database.MySQL
	db.SetMaxOpenConns(m.MaxConnections)
	db.SetMaxIdleConns(m.MaxIdleConnections)
	db.SetConnMaxLifetime(m.ConnectionLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &mysqlDatabase{db: db, tables: map[string]bool{}}, nil
}

func (d *mysqlDatabase) Collection(name string) Collection {
	return &mysqlCollection{parent: d, name: name}
}

func (d *mysqlDatabase) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *mysqlDatabase) Close(context.Context) error {
	return d.db.Close()
}

func (d *mysqlDatabase) ensureTable(ctx context.Context, name string) error {
	if !identifierRe.MatchString(name) {
		return fmt.Errorf("invalid collection name %q", name)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tables[name] {
		return nil
	}

	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` (id VARCHAR(191) NOT NULL PRIMARY KEY, doc JSON NOT NULL)", name)
	if _, err := d.db.ExecContext(ctx, query); err != nil {
		return err
	}
	d.tables[name] = true
	return nil
}

type mysqlCollection struct {
	parent *mysqlDatabase
	name   string
}

func (c *mysqlCollection) Name() string {
	return c.name
}

// buildWhere renders filter as a WHERE clause. Fields are emitted in sorted
// order so the statement text is stable.
func buildWhere(filter Filter) (string, []interface{}, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}

	fields := make([]string, 0, len(filter))
	for field := range filter {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	clauses := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields))
	for _, field := range fields {
		value := filter[field]
		if field == "_id" {
			id, ok := value.(string)
			if !ok {
				return "", nil, fmt.Errorf("filter _id must be a string, got %T", value)
			}
			clauses = append(clauses, "id = ?")
			args = append(args, id)
			continue
		}
		if !identifierRe.MatchString(field) {
			return "", nil, fmt.Errorf("invalid filter field %q", field)
		}
		candidate, err := json.Marshal(value)
		if err != nil {
			return "", nil, fmt.Errorf("filter field %q: %w", field, err)
		}
		clauses = append(clauses, fmt.Sprintf(`JSON_CONTAINS(doc, ?, '$."%s"')`, field))
		args = append(args, string(candidate))
	}

	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func (c *mysqlCollection) selectDocs(ctx context.Context, q interface {
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
}, filter Filter, suffix string) ([]string, [][]byte, error) {
	if err := c.parent.ensureTable(ctx, c.name); err != nil {
		return nil, nil, err
	}
	where, args, err := buildWhere(filter)
	if err != nil {
		return nil, nil, err
	}

	query := fmt.Sprintf("SELECT id, doc FROM `%s`%s ORDER BY id%s", c.name, where, suffix)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var (
		ids  []string
		docs [][]byte
	)
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, nil, err
		}
		ids = append(ids, id)
		docs = append(docs, doc)
	}
	return ids, docs, rows.Err()
}

func (c *mysqlCollection) Find(ctx context.Context, filter Filter, results interface{}) error {
	_, docs, err := c.selectDocs(ctx, c.parent.db, filter, "")
	if err != nil {
		return err
	}
	return decodeList(docs, results)
}

func (c *mysqlCollection) FindOne(ctx context.Context, filter Filter, result interface{}) error {
	_, docs, err := c.selectDocs(ctx, c.parent.db, filter, " LIMIT 1")
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return ErrNoDocuments
	}
	return json.Unmarshal(docs[0], result)
}

func (c *mysqlCollection) InsertOne(ctx context.Context, doc interface{}) error {
	if err := c.parent.ensureTable(ctx, c.name); err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	m, err := decodeMap(data)
	if err != nil {
		return err
	}
	id, err := documentID(m)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("INSERT INTO `%s` (id, doc) VALUES (?, ?)", c.name)
	if _, err := c.parent.db.ExecContext(ctx, query, id, string(data)); err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
			return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		}
		return err
	}
	return nil
}

// withLocked runs fn inside a transaction holding a row lock on the first
// document matching filter. fn receives nil when nothing matched.
func (c *mysqlCollection) withLocked(ctx context.Context, filter Filter, fn func(tx *sql.Tx, id string, doc []byte) error) error {
	tx, err := c.parent.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ids, docs, err := c.selectDocs(ctx, tx, filter, " LIMIT 1 FOR UPDATE")
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		if err := fn(tx, "", nil); err != nil {
			return err
		}
		return tx.Commit()
	}
	if err := fn(tx, ids[0], docs[0]); err != nil {
		return err
	}
	return tx.Commit()
}

func (c *mysqlCollection) writeDoc(ctx context.Context, tx *sql.Tx, id string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("UPDATE `%s` SET doc = ? WHERE id = ?", c.name)
	_, err = tx.ExecContext(ctx, query, string(data), id)
	return err
}

func (c *mysqlCollection) ReplaceOne(ctx context.Context, filter Filter, doc interface{}) error {
	return c.withLocked(ctx, filter, func(tx *sql.Tx, id string, _ []byte) error {
		if id == "" {
			return ErrNoDocuments
		}
		return c.writeDoc(ctx, tx, id, doc)
	})
}

func (c *mysqlCollection) modifyOne(ctx context.Context, filter Filter, mutate func(doc map[string]interface{}) (bool, error)) (UpdateResult, error) {
	var res UpdateResult
	err := c.withLocked(ctx, filter, func(tx *sql.Tx, id string, raw []byte) error {
		if id == "" {
			return nil
		}
		res.Matched = 1
		doc, err := decodeMap(raw)
		if err != nil {
			return err
		}
		changed, err := mutate(doc)
		if err != nil || !changed {
			return err
		}
		res.Modified = 1
		return c.writeDoc(ctx, tx, id, doc)
	})
	if err != nil {
		return UpdateResult{}, err
	}
	return res, nil
}

func (c *mysqlCollection) UpdateOne(ctx context.Context, filter Filter, set Document) (UpdateResult, error) {
	return c.modifyOne(ctx, filter, func(doc map[string]interface{}) (bool, error) {
		return applySet(doc, set)
	})
}

func (c *mysqlCollection) Pull(ctx context.Context, filter Filter, field string, value interface{}) (UpdateResult, error) {
	return c.modifyOne(ctx, filter, func(doc map[string]interface{}) (bool, error) {
		return pullValue(doc, field, value)
	})
}

func (c *mysqlCollection) DeleteOne(ctx context.Context, filter Filter, deleted interface{}) error {
	var raw []byte
	err := c.withLocked(ctx, filter, func(tx *sql.Tx, id string, doc []byte) error {
		if id == "" {
			return ErrNoDocuments
		}
		raw = doc
		_, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM `%s` WHERE id = ?", c.name), id)
		return err
	})
	if err != nil {
		return err
	}
	if deleted == nil {
		return nil
	}
	return json.Unmarshal(raw, deleted)
}
