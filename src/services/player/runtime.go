package player

import (
	"context"
	"errors"
	"sync"
	"time"

	"Backend-Dhriti-AI/src/models"

	"github.com/google/uuid"
)

// Player modes: preview renders everything read-only, perform collects
// answers from interactive blocks.
const (
	ModePreview = "preview"
	ModePerform = "perform"
)

var (
	ErrNoTask           = errors.New("no task at current index")
	ErrNotInteractive   = errors.New("block does not collect answers")
	ErrAlreadySubmitted = errors.New("task already submitted in this session")
	ErrAlreadyDiscarded = errors.New("task already discarded in this session")
)

// TaskFeed fetches one page of the template task feed.
type TaskFeed interface {
	FetchTasks(ctx context.Context, templateID string, limit, offset int) (*models.TemplateTasksResponse, error)
}

// AnnotationSink receives submitted and discarded task annotations.
type AnnotationSink interface {
	SaveAnnotation(ctx context.Context, userID string, req *models.AnnotationCreate) (*models.TaskAnnotation, error)
}

// Runtime is one player session: a template interpreted against a growing,
// paged list of task records. All of its state - loaded tasks, current
// index, the per-task answer map, the pending-advance flag - lives on the
// struct for the session's lifetime, never in package-level variables.
type Runtime struct {
	mu sync.Mutex

	ID        string
	Mode      string
	UserID    string
	CreatedAt time.Time

	feed TaskFeed
	sink AnnotationSink

	templateID string
	pageSize   int

	template *models.Template
	schema   []models.TemplateField
	tasks    []models.TemplateTask
	total    int64
	loaded   bool

	index          int
	answers        map[string]interface{}
	submitted      map[string]bool
	discarded      map[string]bool
	pendingAdvance bool

	// seq tags the newest intended fetch; a page arriving with a stale tag
	// is dropped instead of being applied to state it no longer matches.
	seq uint64
}

func newRuntime(templateID, userID, mode string, pageSize int, feed TaskFeed, sink AnnotationSink) *Runtime {
	if pageSize < 1 {
		pageSize = 20
	}
	if mode != ModePreview {
		mode = ModePerform
	}
	return &Runtime{
		ID:         uuid.NewString(),
		Mode:       mode,
		UserID:     userID,
		CreatedAt:  time.Now(),
		feed:       feed,
		sink:       sink,
		templateID: templateID,
		pageSize:   pageSize,
		answers:    map[string]interface{}{},
		submitted:  map[string]bool{},
		discarded:  map[string]bool{},
	}
}

// Start fetches the first page. Must be called before navigation.
func (r *Runtime) Start(ctx context.Context) error {
	_, err := r.LoadMore(ctx)
	return err
}

// LoadMore appends the next page to the in-memory task list and returns how
// many new tasks arrived. A fetch superseded while in flight is dropped.
func (r *Runtime) LoadMore(ctx context.Context) (int, error) {
	r.mu.Lock()
	mySeq := r.seq + 1
	r.seq = mySeq
	templateID := r.templateID
	limit := r.pageSize
	offset := len(r.tasks)
	r.mu.Unlock()

	page, err := r.feed.FetchTasks(ctx, templateID, limit, offset)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seq != mySeq {
		// a newer fetch took over while this one was in flight
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	if r.template == nil {
		r.template = page.Template
		r.schema = page.Schema
	}
	r.tasks = append(r.tasks, page.Tasks...)
	r.total = page.Total
	r.loaded = true
	return len(page.Tasks), nil
}

// HasMore reports whether the server holds tasks beyond the loaded list.
func (r *Runtime) HasMore() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasMoreLocked()
}

func (r *Runtime) hasMoreLocked() bool {
	return int64(len(r.tasks)) < r.total
}

// Current returns the task at the current index.
func (r *Runtime) Current() (*models.TemplateTask, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index < 0 || r.index >= len(r.tasks) {
		return nil, false
	}
	task := r.tasks[r.index]
	return &task, true
}

// Prev steps back one task. Answers are per-task and reset on navigation.
func (r *Runtime) Prev() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index == 0 {
		return false
	}
	r.index--
	r.answers = map[string]interface{}{}
	return true
}

// Next advances the index. Past the end of the loaded list it triggers a
// load-more and only advances once new items actually arrive - a load-more
// returning zero items leaves the index at the last valid task.
func (r *Runtime) Next(ctx context.Context) (bool, error) {
	r.mu.Lock()
	if r.index+1 < len(r.tasks) {
		r.index++
		r.answers = map[string]interface{}{}
		r.mu.Unlock()
		return true, nil
	}
	if !r.hasMoreLocked() {
		r.mu.Unlock()
		return false, nil
	}
	r.pendingAdvance = true
	r.mu.Unlock()

	added, err := r.LoadMore(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.pendingAdvance = false
		return false, err
	}
	if r.pendingAdvance && added > 0 && r.index+1 < len(r.tasks) {
		r.index++
		r.answers = map[string]interface{}{}
		r.pendingAdvance = false
		return true, nil
	}
	r.pendingAdvance = false
	return false, nil
}

// Index returns the zero-based position within the loaded list.
func (r *Runtime) Index() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index
}

// TaskCount returns loaded count and server-reported total.
func (r *Runtime) TaskCount() (loaded int, total int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks), r.total
}

// Answer records one interactive block's value for the current task.
func (r *Runtime) Answer(blockID string, value interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Mode != ModePerform {
		return errors.New("preview sessions do not collect answers")
	}
	if r.index < 0 || r.index >= len(r.tasks) {
		return ErrNoTask
	}
	block := r.findBlock(blockID)
	if block == nil {
		return errors.New("block not in template layout")
	}
	if !models.IsInteractiveBlock(block.Type) {
		return ErrNotInteractive
	}
	r.answers[blockID] = value
	return nil
}

// Answers returns a copy of the current task's collected answer map.
func (r *Runtime) Answers() map[string]interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]interface{}, len(r.answers))
	for k, v := range r.answers {
		out[k] = v
	}
	return out
}

func (r *Runtime) findBlock(blockID string) *models.Block {
	if r.template == nil {
		return nil
	}
	for i := range r.template.Layout {
		if r.template.Layout[i].ID == blockID {
			return &r.template.Layout[i]
		}
	}
	return nil
}

// Submit bundles the current task's answers and posts them. On failure the
// collected answers are kept so the user can retry.
func (r *Runtime) Submit(ctx context.Context) (*models.TaskAnnotation, error) {
	r.mu.Lock()
	if r.index < 0 || r.index >= len(r.tasks) {
		r.mu.Unlock()
		return nil, ErrNoTask
	}
	task := r.tasks[r.index]
	if r.submitted[task.TaskID] {
		r.mu.Unlock()
		return nil, ErrAlreadySubmitted
	}
	req := &models.AnnotationCreate{
		TaskID:      task.TaskID,
		ProjectID:   task.ProjectID,
		TemplateID:  r.templateID,
		Annotations: r.answersCopyLocked(),
	}
	userID := r.UserID
	r.mu.Unlock()

	annotation, err := r.sink.SaveAnnotation(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.submitted[task.TaskID] = true
	r.mu.Unlock()
	return annotation, nil
}

// Discard flags the current task as discarded (no annotations) and advances
// to the next task on success. A task already submitted in this session is
// never discarded.
func (r *Runtime) Discard(ctx context.Context) error {
	r.mu.Lock()
	if r.index < 0 || r.index >= len(r.tasks) {
		r.mu.Unlock()
		return ErrNoTask
	}
	task := r.tasks[r.index]
	if r.submitted[task.TaskID] {
		r.mu.Unlock()
		return ErrAlreadySubmitted
	}
	if r.discarded[task.TaskID] {
		r.mu.Unlock()
		return ErrAlreadyDiscarded
	}
	req := &models.AnnotationCreate{
		TaskID:     task.TaskID,
		ProjectID:  task.ProjectID,
		TemplateID: r.templateID,
		Discarded:  true,
	}
	userID := r.UserID
	r.mu.Unlock()

	if _, err := r.sink.SaveAnnotation(ctx, userID, req); err != nil {
		return err
	}

	r.mu.Lock()
	r.discarded[task.TaskID] = true
	r.mu.Unlock()

	_, err := r.Next(ctx)
	return err
}

func (r *Runtime) answersCopyLocked() map[string]interface{} {
	out := make(map[string]interface{}, len(r.answers))
	for k, v := range r.answers {
		out[k] = v
	}
	return out
}
