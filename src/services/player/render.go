package player

import (
	"Backend-Dhriti-AI/src/models"
	"Backend-Dhriti-AI/src/services/templates"
)

// RenderedBlock is one block of the layout with every bound property already
// resolved against the current task record. The player UI renders these
// as-is; interactive blocks additionally carry any collected answer.
type RenderedBlock struct {
	ID          string                 `json:"id"`
	Type        models.BlockType       `json:"type"`
	Frame       models.Frame           `json:"frame"`
	Props       map[string]interface{} `json:"props"`
	Interactive bool                   `json:"interactive"`
	Answer      interface{}            `json:"answer,omitempty"`
}

// RenderView is what one task looks like through the template.
type RenderView struct {
	TaskIndex int             `json:"task_index"`
	Task      *models.TemplateTask `json:"task"`
	Blocks    []RenderedBlock `json:"blocks"`
	HasMore   bool            `json:"has_more"`
	Loaded    int             `json:"loaded"`
	Total     int64           `json:"total"`
}

// Render resolves the whole layout against the current task. Re-rendering is
// safe because rule resolution is deterministic.
func (r *Runtime) Render() (*RenderView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index < 0 || r.index >= len(r.tasks) {
		return nil, ErrNoTask
	}
	if r.template == nil {
		return nil, ErrNoTask
	}

	task := r.tasks[r.index]
	record := task.Record()

	blocks := make([]RenderedBlock, 0, len(r.template.Layout))
	for _, block := range r.template.Layout {
		rendered := RenderedBlock{
			ID:          block.ID,
			Type:        block.Type,
			Frame:       block.Frame,
			Props:       resolveProps(r.template.Rules, &block, record),
			Interactive: r.Mode == ModePerform && models.IsInteractiveBlock(block.Type),
		}
		if rendered.Interactive {
			rendered.Answer = r.answers[block.ID]
		}
		blocks = append(blocks, rendered)
	}

	return &RenderView{
		TaskIndex: r.index,
		Task:      &task,
		Blocks:    blocks,
		HasMore:   r.hasMoreLocked(),
		Loaded:    len(r.tasks),
		Total:     r.total,
	}, nil
}

// resolveProps resolves each bindable property of a block through the rule
// resolver, falling back to the block's own props value. The switch is
// exhaustive over the closed block type set so a type handled by the builder
// but forgotten here fails loudly in review, not silently at runtime.
func resolveProps(rules []models.Rule, block *models.Block, record map[string]interface{}) map[string]interface{} {
	resolve := func(prop string, fallback interface{}) interface{} {
		return templates.Resolve(rules, block.ID, prop, fallback, record)
	}

	props := map[string]interface{}{}
	switch block.Type {
	case models.BlockTitle:
		props["text"] = resolve("text", block.Props.Text)
	case models.BlockImage:
		props["src"] = resolve("src", block.Props.Src)
	case models.BlockAudio:
		props["src"] = resolve("src", block.Props.Src)
	case models.BlockOptions4, models.BlockOptions5, models.BlockRadioButtons, models.BlockCheckbox:
		props["options"] = resolve("options", block.Props.Options)
	case models.BlockTimer, models.BlockWorkingTimer:
		props["duration"] = resolve("duration", block.Props.Duration)
	case models.BlockSubmit, models.BlockDiscard:
		props["label"] = resolve("label", block.Props.Label)
	case models.BlockText:
		props["content"] = resolve("content", block.Props.Content)
	case models.BlockQuestions:
		props["question"] = resolve("question", block.Props.Question)
	case models.BlockComments:
		props["placeholder"] = resolve("placeholder", block.Props.Placeholder)
	}
	return props
}
