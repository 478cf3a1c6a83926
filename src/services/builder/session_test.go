package builder

import (
	"testing"

	"Backend-Dhriti-AI/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() *Session {
	return newSession("64b000000000000000000001", "Test Template")
}

func loadTestFields(s *Session) {
	s.LoadSource([]models.TemplateField{
		{Key: "task_name", Label: "Task Name", Dtype: "string"},
		{Key: "image_url", Label: "Image Url", Dtype: "string"},
	}, map[string]interface{}{
		"task_name": "Sample task",
		"image_url": "https://cdn.example.com/a.png",
	})
}

func TestAddBlockSelectsAndRecords(t *testing.T) {
	s := newTestSession()

	block, err := s.AddBlock(models.BlockTitle)
	require.NoError(t, err)

	state := s.State()
	require.Len(t, state.Blocks, 1)
	assert.Equal(t, block.ID, state.Selected)
	assert.True(t, state.CanUndo)
}

func TestAddBlockUnknownType(t *testing.T) {
	s := newTestSession()
	_, err := s.AddBlock(models.BlockType("hologram"))
	assert.ErrorIs(t, err, ErrUnknownBlockType)
}

func TestUndoRemovesAddedBlock(t *testing.T) {
	s := newTestSession()
	_, err := s.AddBlock(models.BlockTitle)
	require.NoError(t, err)

	require.True(t, s.Undo())
	assert.Empty(t, s.State().Blocks)

	require.True(t, s.Redo())
	assert.Len(t, s.State().Blocks, 1)
}

func TestUndoRedoProperty(t *testing.T) {
	// edit, undo, redo must land back on the same state
	s := newTestSession()
	block, err := s.AddBlock(models.BlockTitle)
	require.NoError(t, err)

	_, err = s.UpdateBlock(block.ID, BlockUpdate{Frame: &models.Frame{X: 10, Y: 20, W: 300, H: 80}})
	require.NoError(t, err)
	after := s.capture()

	require.True(t, s.Undo())
	require.True(t, s.Redo())
	assert.Equal(t, string(after), string(s.capture()))
}

func TestUpdateBlockClampsMinSize(t *testing.T) {
	s := newTestSession()
	block, err := s.AddBlock(models.BlockImage)
	require.NoError(t, err)

	updated, err := s.UpdateBlock(block.ID, BlockUpdate{Frame: &models.Frame{X: 0, Y: 0, W: 5, H: 5}})
	require.NoError(t, err)
	assert.Equal(t, models.MinBlockWidth, updated.Frame.W)
	assert.Equal(t, models.MinBlockHeight, updated.Frame.H)
}

func TestDeleteBlockCascadesRules(t *testing.T) {
	s := newTestSession()
	loadTestFields(s)

	block, err := s.AddBlock(models.BlockImage)
	require.NoError(t, err)
	require.NoError(t, s.SetRule(models.Rule{
		ComponentKey: block.ID,
		TargetProp:   "src",
		SourceKind:   models.SourceExcelColumn,
		SourcePath:   "image_url",
	}))
	require.Len(t, s.State().Rules, 1)

	require.NoError(t, s.DeleteBlock(block.ID))
	state := s.State()
	assert.Empty(t, state.Blocks)
	assert.Empty(t, state.Rules)
	assert.Empty(t, state.Selected)
}

func TestDeleteSelectedWithoutSelection(t *testing.T) {
	s := newTestSession()
	assert.ErrorIs(t, s.DeleteSelected(), ErrNoSelection)
}

func TestSetRuleGuardsExcelColumnWithoutFields(t *testing.T) {
	s := newTestSession()
	block, err := s.AddBlock(models.BlockTitle)
	require.NoError(t, err)

	err = s.SetRule(models.Rule{
		ComponentKey: block.ID,
		TargetProp:   "text",
		SourceKind:   models.SourceExcelColumn,
		SourcePath:   "task_name",
	})
	assert.ErrorIs(t, err, ErrNoSourceFields)

	// constants are allowed without a loaded source
	err = s.SetRule(models.Rule{
		ComponentKey: block.ID,
		TargetProp:   "text",
		SourceKind:   models.SourceConstant,
		Constant:     "fixed",
	})
	assert.NoError(t, err)
}

func TestSetRuleRejectsNonBindableProp(t *testing.T) {
	s := newTestSession()
	block, err := s.AddBlock(models.BlockTitle)
	require.NoError(t, err)

	err = s.SetRule(models.Rule{
		ComponentKey: block.ID,
		TargetProp:   "src",
		SourceKind:   models.SourceConstant,
		Constant:     "x",
	})
	assert.Error(t, err)
}

func TestSetRuleUpsertsByKey(t *testing.T) {
	s := newTestSession()
	block, err := s.AddBlock(models.BlockTitle)
	require.NoError(t, err)

	require.NoError(t, s.SetRule(models.Rule{ComponentKey: block.ID, TargetProp: "text", SourceKind: models.SourceConstant, Constant: "a"}))
	require.NoError(t, s.SetRule(models.Rule{ComponentKey: block.ID, TargetProp: "text", SourceKind: models.SourceConstant, Constant: "b"}))

	rules := s.State().Rules
	require.Len(t, rules, 1)
	assert.Equal(t, "b", rules[0].Constant)
}

func TestPreviewRuleResolvesAgainstSampleRow(t *testing.T) {
	s := newTestSession()
	loadTestFields(s)
	block, err := s.AddBlock(models.BlockTitle)
	require.NoError(t, err)

	undoBefore := s.UndoDepth()
	value := s.PreviewRule(models.Rule{
		ComponentKey: block.ID,
		TargetProp:   "text",
		SourceKind:   models.SourceExcelColumn,
		SourcePath:   "task_name",
	}, "fallback")

	assert.Equal(t, "Sample task", value)
	assert.Equal(t, undoBefore, s.UndoDepth(), "preview must not record history")
}

func TestNudgeMovesSelected(t *testing.T) {
	s := newTestSession()
	block, err := s.AddBlock(models.BlockTitle)
	require.NoError(t, err)
	origX := block.Frame.X

	require.NoError(t, s.Nudge(1, 0, false))
	require.NoError(t, s.Nudge(0, 1, true))

	state := s.State()
	assert.Equal(t, origX+1, state.Blocks[0].Frame.X)
	assert.Equal(t, block.Frame.Y+10, state.Blocks[0].Frame.Y)

	// each key press is one undo step
	require.True(t, s.Undo())
	assert.Equal(t, block.Frame.Y, s.State().Blocks[0].Frame.Y)
}

func TestSetScaleClamps(t *testing.T) {
	s := newTestSession()
	assert.Equal(t, MinScale, s.SetScale(0.1))
	assert.Equal(t, MaxScale, s.SetScale(99))
	assert.Equal(t, 1.25, s.SetScale(1.25))
}

func TestScaleNotUndoable(t *testing.T) {
	s := newTestSession()
	before := s.UndoDepth()
	s.SetScale(2.0)
	assert.Equal(t, before, s.UndoDepth())
}

func TestRestoreIgnoresCorruptSnapshot(t *testing.T) {
	s := newTestSession()
	_, err := s.AddBlock(models.BlockTitle)
	require.NoError(t, err)
	before := s.capture()

	assert.False(t, s.restore([]byte("{not json")))
	assert.Equal(t, string(before), string(s.capture()))
}

func TestExportSessionDocument(t *testing.T) {
	s := newTestSession()
	_, err := s.AddBlock(models.BlockTitle)
	require.NoError(t, err)

	raw, err := s.Export()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"blocks"`)
	assert.Contains(t, string(raw), `"rules"`)
}

func TestManagerSessionIsolation(t *testing.T) {
	m := NewManager()
	a := m.Create("p1", "A")
	b := m.Create("p1", "B")

	_, err := a.AddBlock(models.BlockTitle)
	require.NoError(t, err)

	assert.Len(t, a.State().Blocks, 1)
	assert.Empty(t, b.State().Blocks, "sessions must not share editing state")

	require.NoError(t, m.Close(a.ID))
	_, err = m.Get(a.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 1, m.Count())
}
