package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindConflictsAgainstExisting(t *testing.T) {
	existing := map[string]bool{"t1": true, "t2": true}
	rows := []map[string]interface{}{
		{"task_id": "t1"},
		{"task_id": "t3"},
	}

	assert.Equal(t, []string{"t1"}, FindConflicts(existing, rows))
}

func TestFindConflictsWithinBatch(t *testing.T) {
	rows := []map[string]interface{}{
		{"task_id": "a"},
		{"task_id": "b"},
		{"task_id": "a"},
	}

	assert.Equal(t, []string{"a"}, FindConflicts(map[string]bool{}, rows))
}

func TestFindConflictsIgnoresRowsWithoutTaskID(t *testing.T) {
	rows := []map[string]interface{}{
		{"name": "no id"},
		{"task_id": ""},
		{"task_id": 42}, // non-string ids get generated ids later
	}

	assert.Empty(t, FindConflicts(map[string]bool{"t1": true}, rows))
}

func TestFindConflictsReportsEachIDOnce(t *testing.T) {
	existing := map[string]bool{"dup": true}
	rows := []map[string]interface{}{
		{"task_id": "dup"},
		{"task_id": "dup"},
	}

	assert.Equal(t, []string{"dup"}, FindConflicts(existing, rows))
}
