package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompiledFilterMatches(t *testing.T) {
	doc, err := toMap(record{ID: "s1", Name: "Ann", Level: 2, Courses: []string{"CS101", "IT2"}})
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "empty", filter: Filter{}, want: true},
		{name: "scalar", filter: Filter{"name": "Ann"}, want: true},
		{name: "int against json number", filter: Filter{"level": 2}, want: true},
		{name: "membership", filter: Filter{"courses": "IT2"}, want: true},
		{name: "not a member", filter: Filter{"courses": "BIO1"}, want: false},
		{name: "all fields must match", filter: Filter{"name": "Ann", "level": 3}, want: false},
		{name: "missing field", filter: Filter{"phone": "123"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cf, err := compileFilter(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cf.matches(doc))
		})
	}
}

func TestApplySetRejectsID(t *testing.T) {
	doc := map[string]interface{}{"_id": "s1"}
	_, err := applySet(doc, Document{"_id": "s2"})
	assert.Error(t, err)
	assert.Equal(t, "s1", doc["_id"])
}

func TestBuildWhere(t *testing.T) {
	where, args, err := buildWhere(Filter{"courses": "CS101", "_id": "s1"})
	require.NoError(t, err)
	assert.Equal(t, ` WHERE id = ? AND JSON_CONTAINS(doc, ?, '$."courses"')`, where)
	assert.Equal(t, []interface{}{"s1", `"CS101"`}, args)

	where, args, err = buildWhere(nil)
	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildWhereRejectsUnsafeField(t *testing.T) {
	_, _, err := buildWhere(Filter{`name') OR 1=1 --`: "x"})
	assert.Error(t, err)

	_, _, err = buildWhere(Filter{"_id": 42})
	assert.Error(t, err)
}
