package db

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// The bolt and mysql backends keep documents as JSON and evaluate filters
// against the decoded generic form. Values are normalized through the same
// JSON round trip so that typed values compare equal to stored ones.

func normalize(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func toMap(doc interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return decodeMap(data)
}

func decodeMap(data []byte) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("document is not an object")
	}
	return m, nil
}

func documentID(doc map[string]interface{}) (string, error) {
	id, ok := doc["_id"].(string)
	if !ok || id == "" {
		return "", ErrMissingID
	}
	return id, nil
}

type compiledFilter map[string]interface{}

func compileFilter(filter Filter) (compiledFilter, error) {
	out := make(compiledFilter, len(filter))
	for field, value := range filter {
		nv, err := normalize(value)
		if err != nil {
			return nil, fmt.Errorf("filter field %q: %w", field, err)
		}
		out[field] = nv
	}
	return out, nil
}

func (f compiledFilter) matches(doc map[string]interface{}) bool {
	for field, want := range f {
		got, ok := doc[field]
		if !ok {
			if want != nil {
				return false
			}
			continue
		}
		if !valueMatches(got, want) {
			return false
		}
	}
	return true
}

func valueMatches(got, want interface{}) bool {
	if reflect.DeepEqual(got, want) {
		return true
	}
	if arr, ok := got.([]interface{}); ok {
		for _, elem := range arr {
			if reflect.DeepEqual(elem, want) {
				return true
			}
		}
	}
	return false
}

// applySet assigns each field of set on doc and reports whether anything
// changed.
func applySet(doc map[string]interface{}, set Document) (bool, error) {
	modified := false
	for field, value := range set {
		if field == "_id" {
			return false, fmt.Errorf("field _id is immutable")
		}
		nv, err := normalize(value)
		if err != nil {
			return false, fmt.Errorf("set field %q: %w", field, err)
		}
		if old, ok := doc[field]; ok && reflect.DeepEqual(old, nv) {
			continue
		}
		doc[field] = nv
		modified = true
	}
	return modified, nil
}

// pullValue removes every element equal to value from doc[field].
func pullValue(doc map[string]interface{}, field string, value interface{}) (bool, error) {
	nv, err := normalize(value)
	if err != nil {
		return false, err
	}
	arr, ok := doc[field].([]interface{})
	if !ok {
		return false, nil
	}

	kept := make([]interface{}, 0, len(arr))
	for _, elem := range arr {
		if !reflect.DeepEqual(elem, nv) {
			kept = append(kept, elem)
		}
	}
	if len(kept) == len(arr) {
		return false, nil
	}
	doc[field] = kept
	return true, nil
}

// decodeList unmarshals raw JSON documents into results, a pointer to a slice.
func decodeList(raws [][]byte, results interface{}) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, raw := range raws {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(raw)
	}
	buf.WriteByte(']')
	return json.Unmarshal(buf.Bytes(), results)
}
