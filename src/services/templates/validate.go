package templates

import (
	"errors"
	"fmt"
	"strings"

	"Backend-Dhriti-AI/src/models"
)

var (
	ErrEmptyName   = errors.New("template name is required")
	ErrEmptyLayout = errors.New("template layout cannot be empty")
)

// ValidateDocument checks a layout document before it is persisted.
// Save must be blocked here, not deferred to the database: an EXCEL_COLUMN
// rule with an empty source path is never valid, rules must point at an
// existing block, and the target property must be bindable for that block's
// type (the shared bindable-props table is the contract with the player).
func ValidateDocument(name string, layout []models.Block, rules []models.Rule) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if len(layout) == 0 {
		return ErrEmptyLayout
	}

	byID := make(map[string]models.BlockType, len(layout))
	for _, b := range layout {
		if !models.KnownBlockType(b.Type) {
			return fmt.Errorf("unknown block type %q", b.Type)
		}
		if b.ID == "" {
			return errors.New("block without id in layout")
		}
		if _, dup := byID[b.ID]; dup {
			return fmt.Errorf("duplicate block id %q in layout", b.ID)
		}
		byID[b.ID] = b.Type
	}

	seenKeys := map[string]bool{}
	for _, r := range rules {
		blockType, ok := byID[r.ComponentKey]
		if !ok {
			return fmt.Errorf("rule targets unknown block %q", r.ComponentKey)
		}
		if !models.IsBindableProp(blockType, r.TargetProp) {
			return fmt.Errorf("property %q of block type %q is not bindable", r.TargetProp, blockType)
		}
		switch r.SourceKind {
		case models.SourceExcelColumn:
			if strings.TrimSpace(r.SourcePath) == "" {
				return fmt.Errorf("rule for %q/%q has no source field", r.ComponentKey, r.TargetProp)
			}
		case models.SourceConstant:
			// ค่าคงที่เป็น nil ได้ ตอน resolve จะ fallback เอง
		default:
			return fmt.Errorf("unknown rule source kind %q", r.SourceKind)
		}
		key := r.ComponentKey + "\x00" + r.TargetProp
		if seenKeys[key] {
			return fmt.Errorf("duplicate rule for %q/%q", r.ComponentKey, r.TargetProp)
		}
		seenKeys[key] = true
	}

	return nil
}
