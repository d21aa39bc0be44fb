package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("imports/", "Grades.XLSX")
	assert.True(t, strings.HasPrefix(key, "imports/"))
	assert.True(t, strings.HasSuffix(key, ".xlsx"))
	assert.NotEqual(t, key, ObjectKey("imports/", "Grades.XLSX"))

	assert.True(t, strings.HasPrefix(ObjectKey("tasks", "sheet"), "tasks/"))
}
