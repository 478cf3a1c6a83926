package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectSchemaFromRows(t *testing.T) {
	rows := []map[string]interface{}{
		{"task_id": "t1", "score": 4.5, "done": true},
		{"task_id": "t2", "note": "second row only"},
	}

	fields := CollectSchemaFromRows(rows)
	require.Len(t, fields, 4)

	byKey := map[string]int{}
	for i, f := range fields {
		byKey[f.Key] = i
	}
	assert.Contains(t, byKey, "task_id")
	assert.Contains(t, byKey, "note")

	taskID := fields[byKey["task_id"]]
	assert.Equal(t, "Task Id", taskID.Label)
	assert.Equal(t, "string", taskID.Dtype)
	require.NotNil(t, taskID.Sample)
	assert.Equal(t, "t1", *taskID.Sample)

	assert.Equal(t, "number", fields[byKey["score"]].Dtype)
	assert.Equal(t, "boolean", fields[byKey["done"]].Dtype)
}

func TestCollectSchemaLaterRowFillsMissing(t *testing.T) {
	rows := []map[string]interface{}{
		{"status": nil},
		{"status": "ok"},
	}

	fields := CollectSchemaFromRows(rows)
	require.Len(t, fields, 1)
	assert.Equal(t, "string", fields[0].Dtype)
	require.NotNil(t, fields[0].Sample)
	assert.Equal(t, "ok", *fields[0].Sample)
}

func TestFieldLabel(t *testing.T) {
	assert.Equal(t, "Image Url", FieldLabel("image_url"))
	assert.Equal(t, "Image Url", FieldLabel("IMAGE_URL"))
	assert.Equal(t, "Meta Author Name", FieldLabel("meta.author_name"))
	assert.Equal(t, "Title", FieldLabel("title"))
}

func TestInferDtype(t *testing.T) {
	assert.Equal(t, "boolean", InferDtype(true))
	assert.Equal(t, "integer", InferDtype(float64(7))) // JSON numbers decode to float64
	assert.Equal(t, "number", InferDtype(7.5))
	assert.Equal(t, "json", InferDtype(map[string]interface{}{}))
	assert.Equal(t, "json", InferDtype([]interface{}{1, 2}))
	assert.Equal(t, "string", InferDtype("x"))
	assert.Equal(t, "", InferDtype(nil))
}

func TestStringifySampleTruncates(t *testing.T) {
	long := strings.Repeat("a", 500)
	sample := StringifySample(long)
	require.NotNil(t, sample)
	assert.Len(t, *sample, 120)
	assert.True(t, strings.HasSuffix(*sample, "..."))

	assert.Nil(t, StringifySample(nil))
	assert.Nil(t, StringifySample([]interface{}{"composite"}))
}
