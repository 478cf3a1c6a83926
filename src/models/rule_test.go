package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleSetUpsertReplacesByKey(t *testing.T) {
	var rs RuleSet
	rs = rs.Upsert(Rule{ComponentKey: "b1", TargetProp: "text", SourceKind: SourceConstant, Constant: "a"})
	rs = rs.Upsert(Rule{ComponentKey: "b1", TargetProp: "text", SourceKind: SourceConstant, Constant: "b"})

	require.Len(t, rs, 1)
	assert.Equal(t, "b", rs[0].Constant)
}

func TestRuleSetUpsertKeepsDistinctKeys(t *testing.T) {
	var rs RuleSet
	rs = rs.Upsert(Rule{ComponentKey: "b1", TargetProp: "text", SourceKind: SourceConstant})
	rs = rs.Upsert(Rule{ComponentKey: "b1", TargetProp: "label", SourceKind: SourceConstant})
	rs = rs.Upsert(Rule{ComponentKey: "b2", TargetProp: "text", SourceKind: SourceConstant})

	assert.Len(t, rs, 3)
}

func TestRuleSetFindAndRemove(t *testing.T) {
	var rs RuleSet
	rs = rs.Upsert(Rule{ComponentKey: "b1", TargetProp: "text", SourceKind: SourceConstant, Constant: "x"})

	rule, ok := rs.Find("b1", "text")
	require.True(t, ok)
	assert.Equal(t, "x", rule.Constant)

	_, ok = rs.Find("b1", "src")
	assert.False(t, ok)

	rs = rs.Remove("b1", "text")
	assert.Empty(t, rs)
}

func TestRuleSetRemoveComponent(t *testing.T) {
	var rs RuleSet
	rs = rs.Upsert(Rule{ComponentKey: "b1", TargetProp: "text", SourceKind: SourceConstant})
	rs = rs.Upsert(Rule{ComponentKey: "b1", TargetProp: "label", SourceKind: SourceConstant})
	rs = rs.Upsert(Rule{ComponentKey: "b2", TargetProp: "text", SourceKind: SourceConstant})

	rs = rs.RemoveComponent("b1")
	require.Len(t, rs, 1)
	assert.Equal(t, "b2", rs[0].ComponentKey)
}
