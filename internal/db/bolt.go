package db

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

// boltDatabase stores each collection in its own bucket, keyed by _id, with
// documents encoded as JSON.
type boltDatabase struct {
	db *bbolt.DB
}

func OpenBolt(path string, timeout time.Duration) (Database, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create bolt directory: %w", err)
		}
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: timeout})
	if err != nil {
		return nil, err
	}
	return &boltDatabase{db: db}, nil
}

func (d *boltDatabase) Collection(name string) Collection {
	return &boltCollection{db: d.db, name: name, bucket: []byte(name)}
}

func (d *boltDatabase) Ping(context.Context) error {
	return d.db.View(func(*bbolt.Tx) error { return nil })
}

func (d *boltDatabase) Close(context.Context) error {
	return d.db.Close()
}

type boltCollection struct {
	db     *bbolt.DB
	name   string
	bucket []byte
}

func (c *boltCollection) Name() string {
	return c.name
}

// scan calls fn with every document matching filter until fn returns false.
func (c *boltCollection) scan(tx *bbolt.Tx, filter Filter, fn func(k, v []byte, doc map[string]interface{}) bool) error {
	b := tx.Bucket(c.bucket)
	if b == nil {
		return nil
	}

	cf, err := compileFilter(filter)
	if err != nil {
		return err
	}

	cur := b.Cursor()
	for k, v := cur.First(); k != nil; k, v = cur.Next() {
		doc, err := decodeMap(v)
		if err != nil {
			return fmt.Errorf("decode %s/%s: %w", c.name, k, err)
		}
		if cf.matches(doc) && !fn(k, v, doc) {
			return nil
		}
	}
	return nil
}

func (c *boltCollection) Find(ctx context.Context, filter Filter, results interface{}) error {
	var raws [][]byte
	err := c.db.View(func(tx *bbolt.Tx) error {
		return c.scan(tx, filter, func(_, v []byte, _ map[string]interface{}) bool {
			raws = append(raws, append([]byte(nil), v...))
			return true
		})
	})
	if err != nil {
		return err
	}
	return decodeList(raws, results)
}

func (c *boltCollection) FindOne(ctx context.Context, filter Filter, result interface{}) error {
	var raw []byte
	err := c.db.View(func(tx *bbolt.Tx) error {
		return c.scan(tx, filter, func(_, v []byte, _ map[string]interface{}) bool {
			raw = append([]byte(nil), v...)
			return false
		})
	})
	if err != nil {
		return err
	}
	if raw == nil {
		return ErrNoDocuments
	}
	return json.Unmarshal(raw, result)
}

func (c *boltCollection) InsertOne(ctx context.Context, doc interface{}) error {
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

	return c.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(c.bucket)
		if err != nil {
			return err
		}
		if b.Get([]byte(id)) != nil {
			return ErrDuplicateKey
		}
		return b.Put([]byte(id), data)
	})
}

func (c *boltCollection) ReplaceOne(ctx context.Context, filter Filter, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	return c.db.Update(func(tx *bbolt.Tx) error {
		var key []byte
		if err := c.scan(tx, filter, func(k, _ []byte, _ map[string]interface{}) bool {
			key = append([]byte(nil), k...)
			return false
		}); err != nil {
			return err
		}
		if key == nil {
			return ErrNoDocuments
		}
		return tx.Bucket(c.bucket).Put(key, data)
	})
}

// modifyOne runs mutate on the first document matching filter and writes it
// back when mutate reports a change.
func (c *boltCollection) modifyOne(filter Filter, mutate func(doc map[string]interface{}) (bool, error)) (UpdateResult, error) {
	var res UpdateResult
	err := c.db.Update(func(tx *bbolt.Tx) error {
		var (
			key []byte
			doc map[string]interface{}
		)
		if err := c.scan(tx, filter, func(k, _ []byte, d map[string]interface{}) bool {
			key, doc = append([]byte(nil), k...), d
			return false
		}); err != nil {
			return err
		}
		if key == nil {
			return nil
		}
		res.Matched = 1

		changed, err := mutate(doc)
		if err != nil || !changed {
			return err
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		res.Modified = 1
		return tx.Bucket(c.bucket).Put(key, data)
	})
	if err != nil {
		return UpdateResult{}, err
	}
	return res, nil
}

func (c *boltCollection) UpdateOne(ctx context.Context, filter Filter, set Document) (UpdateResult, error) {
	return c.modifyOne(filter, func(doc map[string]interface{}) (bool, error) {
		return applySet(doc, set)
	})
}

func (c *boltCollection) Pull(ctx context.Context, filter Filter, field string, value interface{}) (UpdateResult, error) {
	return c.modifyOne(filter, func(doc map[string]interface{}) (bool, error) {
		return pullValue(doc, field, value)
	})
}

func (c *boltCollection) DeleteOne(ctx context.Context, filter Filter, deleted interface{}) error {
	var raw []byte
	err := c.db.Update(func(tx *bbolt.Tx) error {
		var key []byte
		if err := c.scan(tx, filter, func(k, v []byte, _ map[string]interface{}) bool {
			key, raw = append([]byte(nil), k...), append([]byte(nil), v...)
			return false
		}); err != nil {
			return err
		}
		if key == nil {
			return ErrNoDocuments
		}
		return tx.Bucket(c.bucket).Delete(key)
	})
	if err != nil {
		return err
	}
	if deleted == nil {
		return nil
	}
	return json.Unmarshal(raw, deleted)
}
