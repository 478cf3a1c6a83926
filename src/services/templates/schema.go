package templates

import (
	"fmt"
	"math"
	"strings"

	"Backend-Dhriti-AI/src/models"
)

const maxSampleLength = 120

// CollectSchemaFromRows discovers the bindable field set of a data source
// from its preview rows. The first row a key appears in wins the slot; later
// rows only fill in a dtype or sample the earlier rows couldn't provide.
func CollectSchemaFromRows(rows []map[string]interface{}) []models.TemplateField {
	seen := map[string]*models.TemplateField{}
	order := []string{}

	for _, row := range rows {
		for key, value := range row {
			dtype := InferDtype(value)
			sample := StringifySample(value)

			current, ok := seen[key]
			if !ok {
				seen[key] = &models.TemplateField{
					Key:    key,
					Label:  FieldLabel(key),
					Dtype:  dtype,
					Sample: sample,
				}
				order = append(order, key)
				continue
			}
			if current.Dtype == "" && dtype != "" {
				current.Dtype = dtype
			}
			if current.Sample == nil && sample != nil {
				current.Sample = sample
			}
		}
	}

	fields := make([]models.TemplateField, 0, len(order))
	for _, key := range order {
		fields = append(fields, *seen[key])
	}
	return fields
}

// FieldLabel humanizes a field key: "image_url" and "IMAGE_URL" both become
// "Image Url". Each word is capitalized with the rest forced to lowercase.
func FieldLabel(key string) string {
	cleaned := strings.NewReplacer("_", " ", ".", " ").Replace(key)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return key
	}
	parts := strings.Fields(cleaned)
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
	}
	return strings.Join(parts, " ")
}

// InferDtype classifies a decoded JSON value. Whole floats count as integers
// because encoding/json decodes every number to float64.
func InferDtype(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case bool:
		return "boolean"
	case int, int32, int64:
		return "integer"
	case float64:
		if v == math.Trunc(v) {
			return "integer"
		}
		return "number"
	case float32:
		return "number"
	case map[string]interface{}, []interface{}:
		return "json"
	default:
		return "string"
	}
}

// StringifySample renders a short preview of a scalar value, nil for
// composites and absent values. Long values are truncated at 120 chars.
func StringifySample(value interface{}) *string {
	if value == nil {
		return nil
	}
	switch value.(type) {
	case map[string]interface{}, []interface{}:
		return nil
	}
	text := fmt.Sprintf("%v", value)
	if len(text) > maxSampleLength {
		text = text[:maxSampleLength-3] + "..."
	}
	return &text
}
