package models

// SourceKind บอกว่า rule ดึงค่ามาจากไหน
type SourceKind string

const (
	SourceExcelColumn SourceKind = "EXCEL_COLUMN" // อ่านจาก field ใน task record
	SourceConstant    SourceKind = "CONSTANT"     // ใช้ค่าคงที่
)

// Rule maps one property of one block to a data source.
// A template holds at most one rule per (component_key, target_prop) pair.
type Rule struct {
	ComponentKey string      `bson:"component_key" json:"component_key"`
	TargetProp   string      `bson:"target_prop" json:"target_prop"`
	SourceKind   SourceKind  `bson:"source_kind" json:"source_kind"`
	SourcePath   string      `bson:"source_path,omitempty" json:"source_path,omitempty"`
	Constant     interface{} `bson:"constant,omitempty" json:"constant,omitempty"`
}

// RuleSet is an ordered rule list with upsert semantics on the rule key.
type RuleSet []Rule

// Upsert adds r, replacing any existing rule with the same key pair.
func (rs RuleSet) Upsert(r Rule) RuleSet {
	for i := range rs {
		if rs[i].ComponentKey == r.ComponentKey && rs[i].TargetProp == r.TargetProp {
			rs[i] = r
			return rs
		}
	}
	return append(rs, r)
}

// Find returns the rule for (componentKey, targetProp) if one exists.
func (rs RuleSet) Find(componentKey, targetProp string) (*Rule, bool) {
	for i := range rs {
		if rs[i].ComponentKey == componentKey && rs[i].TargetProp == targetProp {
			return &rs[i], true
		}
	}
	return nil, false
}

// Remove drops the rule for (componentKey, targetProp) if present.
func (rs RuleSet) Remove(componentKey, targetProp string) RuleSet {
	out := rs[:0]
	for _, r := range rs {
		if r.ComponentKey == componentKey && r.TargetProp == targetProp {
			continue
		}
		out = append(out, r)
	}
	return out
}

// RemoveComponent drops every rule bound to the given block id.
// Called when a block is deleted so rules never dangle.
func (rs RuleSet) RemoveComponent(componentKey string) RuleSet {
	out := rs[:0]
	for _, r := range rs {
		if r.ComponentKey == componentKey {
			continue
		}
		out = append(out, r)
	}
	return out
}
