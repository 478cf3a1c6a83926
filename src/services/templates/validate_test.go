package templates

import (
	"testing"

	"Backend-Dhriti-AI/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBlock(t *testing.T, bt models.BlockType) models.Block {
	t.Helper()
	b, ok := models.NewBlock(bt)
	require.True(t, ok)
	return *b
}

func TestValidateDocumentOK(t *testing.T) {
	title := mustBlock(t, models.BlockTitle)
	image := mustBlock(t, models.BlockImage)
	rules := []models.Rule{
		{ComponentKey: title.ID, TargetProp: "text", SourceKind: models.SourceExcelColumn, SourcePath: "task_name"},
		{ComponentKey: image.ID, TargetProp: "src", SourceKind: models.SourceConstant, Constant: "x.png"},
	}

	err := ValidateDocument("My Template", []models.Block{title, image}, rules)
	assert.NoError(t, err)
}

func TestValidateDocumentRejectsEmptyNameAndLayout(t *testing.T) {
	title := mustBlock(t, models.BlockTitle)

	assert.ErrorIs(t, ValidateDocument("  ", []models.Block{title}, nil), ErrEmptyName)
	assert.ErrorIs(t, ValidateDocument("ok", nil, nil), ErrEmptyLayout)
}

func TestValidateDocumentRejectsEmptySourcePath(t *testing.T) {
	// an EXCEL_COLUMN rule with no source field must block the save
	title := mustBlock(t, models.BlockTitle)
	rules := []models.Rule{{
		ComponentKey: title.ID,
		TargetProp:   "text",
		SourceKind:   models.SourceExcelColumn,
		SourcePath:   "   ",
	}}

	err := ValidateDocument("t", []models.Block{title}, rules)
	assert.Error(t, err)
}

func TestValidateDocumentRejectsUnknownBlockRule(t *testing.T) {
	title := mustBlock(t, models.BlockTitle)
	rules := []models.Rule{{
		ComponentKey: "missing-block",
		TargetProp:   "text",
		SourceKind:   models.SourceConstant,
		Constant:     "x",
	}}

	err := ValidateDocument("t", []models.Block{title}, rules)
	assert.Error(t, err)
}

func TestValidateDocumentRejectsNonBindableProp(t *testing.T) {
	title := mustBlock(t, models.BlockTitle)
	rules := []models.Rule{{
		ComponentKey: title.ID,
		TargetProp:   "src", // title blocks bind text, not src
		SourceKind:   models.SourceConstant,
		Constant:     "x",
	}}

	err := ValidateDocument("t", []models.Block{title}, rules)
	assert.Error(t, err)
}

func TestValidateDocumentRejectsDuplicateRuleKey(t *testing.T) {
	title := mustBlock(t, models.BlockTitle)
	rules := []models.Rule{
		{ComponentKey: title.ID, TargetProp: "text", SourceKind: models.SourceConstant, Constant: "a"},
		{ComponentKey: title.ID, TargetProp: "text", SourceKind: models.SourceConstant, Constant: "b"},
	}

	err := ValidateDocument("t", []models.Block{title}, rules)
	assert.Error(t, err)
}
