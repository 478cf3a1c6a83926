package templates

import (
	"strings"

	"Backend-Dhriti-AI/src/models"
)

// Resolve computes the effective value of one block property for one task
// record. It looks up the rule keyed by (blockID, targetProp); with no rule
// the fallback is returned unchanged. A CONSTANT rule returns its constant
// (nil constant falls back). An EXCEL_COLUMN rule reads the record's payload
// first, then the record's flat fields, and falls back when both are absent
// or empty. Missing data never raises; absence always degrades to fallback.
//
// Resolve is pure and deterministic - the player re-resolves on every render.
func Resolve(rules []models.Rule, blockID, targetProp string, fallback interface{}, record map[string]interface{}) interface{} {
	rule, ok := models.RuleSet(rules).Find(blockID, targetProp)
	if !ok {
		return fallback
	}

	switch rule.SourceKind {
	case models.SourceConstant:
		if rule.Constant == nil {
			return fallback
		}
		return rule.Constant

	case models.SourceExcelColumn:
		if rule.SourcePath == "" || record == nil {
			return fallback
		}
		if payload, ok := record["payload"].(map[string]interface{}); ok {
			if v, ok := lookupPath(payload, rule.SourcePath); ok && present(v) {
				return v
			}
		}
		// flat-field fallback: fields promoted out of the payload
		if v, ok := lookupPath(record, rule.SourcePath); ok && present(v) {
			return v
		}
		return fallback
	}

	return fallback
}

// lookupPath walks a dotted path ("a.b.c") through nested maps.
func lookupPath(m map[string]interface{}, path string) (interface{}, bool) {
	parts := strings.Split(path, ".")
	var current interface{} = m
	for _, part := range parts {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = node[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// present rejects nil and empty strings; everything else counts as a value.
func present(v interface{}) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}
