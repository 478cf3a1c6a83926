package builder

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"Backend-Dhriti-AI/src/models"
	"Backend-Dhriti-AI/src/services/templates"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Zoom is a pure view transform; stored block coordinates never scale.
const (
	MinScale = 0.5
	MaxScale = 3.0
)

var (
	ErrUnknownBlockType = errors.New("unknown block type")
	ErrBlockNotFound    = errors.New("block not found")
	ErrNoSelection      = errors.New("no block selected")
	ErrNoSourceFields   = errors.New("no data fields available for binding")
	ErrRuleNotFound     = errors.New("rule not found")
)

// Session is one builder editing session. All mutable editing state
// (blocks, selection, rules, view flags, history, gesture) lives here,
// scoped to the session's lifetime - never in package-level variables, so
// two open builders can never bleed state into each other.
type Session struct {
	mu sync.Mutex

	ID        string
	ProjectID string
	Name      string
	CreatedAt time.Time

	blocks     []models.Block
	selected   string
	rules      models.RuleSet
	canvasOnly bool
	scale      float64

	fields    []models.TemplateField
	sampleRow map[string]interface{}

	history *History
	gesture gesture
}

// snapshot is the serialized form of everything undo/redo restores.
type snapshot struct {
	Blocks     []models.Block `json:"blocks"`
	Selected   string         `json:"selected"`
	Rules      []models.Rule  `json:"rules"`
	CanvasOnly bool           `json:"canvasOnly"`
	Scale      float64        `json:"scale"`
}

func newSession(projectID, name string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Name:      name,
		CreatedAt: time.Now(),
		blocks:    []models.Block{},
		rules:     models.RuleSet{},
		scale:     1.0,
		sampleRow: map[string]interface{}{},
		history:   NewHistory(),
	}
}

// capture serializes current editing state into an opaque blob.
func (s *Session) capture() []byte {
	snap := snapshot{
		Blocks:     append([]models.Block(nil), s.blocks...),
		Selected:   s.selected,
		Rules:      append([]models.Rule(nil), s.rules...),
		CanvasOnly: s.canvasOnly,
		Scale:      s.scale,
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil
	}
	return raw
}

// restore applies a snapshot blob. A malformed blob is ignored and the
// current state stays untouched.
func (s *Session) restore(raw []byte) bool {
	if raw == nil {
		return false
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return false
	}
	s.blocks = snap.Blocks
	if s.blocks == nil {
		s.blocks = []models.Block{}
	}
	s.selected = snap.Selected
	s.rules = snap.Rules
	if s.rules == nil {
		s.rules = models.RuleSet{}
	}
	s.canvasOnly = snap.CanvasOnly
	s.scale = snap.Scale
	return true
}

// record pushes the pre-edit state onto the undo stack. Call before mutating.
func (s *Session) record() {
	s.history.Record(s.capture())
}

func (s *Session) findBlock(id string) *models.Block {
	for i := range s.blocks {
		if s.blocks[i].ID == id {
			return &s.blocks[i]
		}
	}
	return nil
}

// AddBlock instantiates a block from its type preset, places it on the
// canvas with a small stagger, selects it, and records one snapshot.
func (s *Session) AddBlock(t models.BlockType) (*models.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	block, ok := models.NewBlock(t)
	if !ok {
		return nil, ErrUnknownBlockType
	}
	s.record()

	block.Frame.X = 40 + 20*(len(s.blocks)%10)
	block.Frame.Y = 40 + 20*(len(s.blocks)%10)
	s.blocks = append(s.blocks, *block)
	s.selected = block.ID

	added := *block
	return &added, nil
}

// SelectBlock changes the selection. Selection alone is not an undoable edit.
func (s *Session) SelectBlock(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		s.selected = ""
		return nil
	}
	if s.findBlock(id) == nil {
		return ErrBlockNotFound
	}
	s.selected = id
	return nil
}

// BlockUpdate carries one committed Inspector edit. Nil fields are untouched.
type BlockUpdate struct {
	Frame *models.Frame      `json:"frame,omitempty"`
	Props *models.BlockProps `json:"props,omitempty"`
}

// UpdateBlock applies one committed Inspector edit and records one snapshot.
func (s *Session) UpdateBlock(id string, update BlockUpdate) (*models.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	block := s.findBlock(id)
	if block == nil {
		return nil, ErrBlockNotFound
	}
	s.record()

	if update.Frame != nil {
		frame := *update.Frame
		if frame.W < models.MinBlockWidth {
			frame.W = models.MinBlockWidth
		}
		if frame.H < models.MinBlockHeight {
			frame.H = models.MinBlockHeight
		}
		block.Frame = frame
	}
	if update.Props != nil {
		block.Props = *update.Props
	}

	updated := *block
	return &updated, nil
}

// DeleteBlock removes a block and cascades removal of its rules, one snapshot.
func (s *Session) DeleteBlock(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findBlock(id) == nil {
		return ErrBlockNotFound
	}
	s.record()

	kept := s.blocks[:0]
	for _, b := range s.blocks {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.blocks = kept
	s.rules = s.rules.RemoveComponent(id)
	if s.selected == id {
		s.selected = ""
	}
	return nil
}

// DeleteSelected removes the currently selected block (Delete key path).
func (s *Session) DeleteSelected() error {
	s.mu.Lock()
	id := s.selected
	s.mu.Unlock()
	if id == "" {
		return ErrNoSelection
	}
	return s.DeleteBlock(id)
}

// SetRule upserts a binding rule by (component_key, target_prop). The guard
// from the save contract applies at edit time too: an EXCEL_COLUMN rule
// cannot be added while no data fields are loaded or with an empty path.
func (s *Session) SetRule(rule models.Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	block := s.findBlock(rule.ComponentKey)
	if block == nil {
		return ErrBlockNotFound
	}
	if !models.IsBindableProp(block.Type, rule.TargetProp) {
		return errors.New("property " + rule.TargetProp + " is not bindable for block type " + string(block.Type))
	}
	if rule.SourceKind == models.SourceExcelColumn {
		if len(s.fields) == 0 {
			return ErrNoSourceFields
		}
		if strings.TrimSpace(rule.SourcePath) == "" {
			return errors.New("source field is required for EXCEL_COLUMN rules")
		}
	}

	s.record()
	s.rules = s.rules.Upsert(rule)
	return nil
}

// RemoveRule drops one rule, one snapshot.
func (s *Session) RemoveRule(componentKey, targetProp string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rules.Find(componentKey, targetProp); !ok {
		return ErrRuleNotFound
	}
	s.record()
	s.rules = s.rules.Remove(componentKey, targetProp)
	return nil
}

// ClearRules drops every rule, one snapshot.
func (s *Session) ClearRules() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.rules) == 0 {
		return
	}
	s.record()
	s.rules = models.RuleSet{}
}

// PreviewRule resolves a prospective rule against the editable sample row so
// the author can see the effect before saving. Read-only, no snapshot.
func (s *Session) PreviewRule(rule models.Rule, fallback interface{}) interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := map[string]interface{}{"payload": s.sampleRow}
	probe := []models.Rule{rule}
	return templates.Resolve(probe, rule.ComponentKey, rule.TargetProp, fallback, record)
}

// LoadSource replaces the bindable field list and sample row after the
// author picks a batch or project data source. Not undoable.
func (s *Session) LoadSource(fields []models.TemplateField, sampleRow map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fields = append([]models.TemplateField(nil), fields...)
	if sampleRow == nil {
		sampleRow = map[string]interface{}{}
	}
	s.sampleRow = sampleRow
}

// SetSampleRow replaces the editable raw-JSON sample row. Not undoable.
func (s *Session) SetSampleRow(row map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row == nil {
		row = map[string]interface{}{}
	}
	s.sampleRow = row
}

// SetScale clamps the zoom factor into [0.5, 3]. View-only, not undoable.
func (s *Session) SetScale(scale float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if scale < MinScale {
		scale = MinScale
	}
	if scale > MaxScale {
		scale = MaxScale
	}
	s.scale = scale
	return s.scale
}

func (s *Session) SetCanvasOnly(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvasOnly = on
}

// Nudge moves the selected block with the arrow keys: 1px, 10px with shift.
// Each key press is its own undoable edit.
func (s *Session) Nudge(dx, dy int, shift bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == "" {
		return ErrNoSelection
	}
	block := s.findBlock(s.selected)
	if block == nil {
		return ErrNoSelection
	}

	step := 1
	if shift {
		step = 10
	}
	s.record()
	block.Frame.X += dx * step
	block.Frame.Y += dy * step
	return nil
}

// Undo reverts exactly one logical edit. No-op when nothing to undo.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.capture()
	restored, ok := s.history.Undo(current)
	if !ok {
		return false
	}
	return s.restore(restored)
}

// Redo reapplies the most recently undone edit.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.capture()
	restored, ok := s.history.Redo(current)
	if !ok {
		return false
	}
	return s.restore(restored)
}

// Save persists the session's document as a new template of its project.
func (s *Session) Save(ctx context.Context, createdBy *primitive.ObjectID) (*models.Template, error) {
	s.mu.Lock()
	req := &models.TemplateCreateRequest{
		ProjectID: s.ProjectID,
		Name:      s.Name,
		Layout:    append([]models.Block(nil), s.blocks...),
		Rules:     append([]models.Rule(nil), s.rules...),
	}
	s.mu.Unlock()

	return templates.CreateTemplate(ctx, req, createdBy)
}

// Export dumps {blocks, rules} for the client-side download action.
func (s *Session) Export() ([]byte, error) {
	s.mu.Lock()
	t := models.Template{
		Layout: append([]models.Block(nil), s.blocks...),
		Rules:  append([]models.Rule(nil), s.rules...),
	}
	s.mu.Unlock()
	return templates.ExportTemplate(&t)
}

// SessionState is the read view the builder UI renders from.
type SessionState struct {
	ID         string                 `json:"id"`
	ProjectID  string                 `json:"project_id"`
	Name       string                 `json:"name"`
	Blocks     []models.Block         `json:"blocks"`
	Selected   string                 `json:"selected,omitempty"`
	Rules      []models.Rule          `json:"rules"`
	CanvasOnly bool                   `json:"canvas_only"`
	Scale      float64                `json:"scale"`
	Fields     []models.TemplateField `json:"fields"`
	SampleRow  map[string]interface{} `json:"sample_row"`
	CanUndo    bool                   `json:"can_undo"`
	CanRedo    bool                   `json:"can_redo"`
}

// State returns a copy of the current editing state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := s.fields
	if fields == nil {
		fields = []models.TemplateField{}
	}
	return SessionState{
		ID:         s.ID,
		ProjectID:  s.ProjectID,
		Name:       s.Name,
		Blocks:     append([]models.Block{}, s.blocks...),
		Selected:   s.selected,
		Rules:      append([]models.Rule{}, s.rules...),
		CanvasOnly: s.canvasOnly,
		Scale:      s.scale,
		Fields:     append([]models.TemplateField{}, fields...),
		SampleRow:  s.sampleRow,
		CanUndo:    s.history.CanUndo(),
		CanRedo:    s.history.CanRedo(),
	}
}

// UndoDepth is used by tests and the UI badge; it is not part of the wire API.
func (s *Session) UndoDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.UndoDepth()
}
