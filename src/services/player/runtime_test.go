package player

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"Backend-Dhriti-AI/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFeed serves a fixed task list in pages and counts fetches.
type stubFeed struct {
	mu       sync.Mutex
	tasks    []models.TemplateTask
	template *models.Template
	fetches  int
	// when set, FetchTasks blocks until released - used to race two fetches
	gate chan struct{}
	err  error
}

func (f *stubFeed) FetchTasks(_ context.Context, templateID string, limit, offset int) (*models.TemplateTasksResponse, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.fetches++

	end := offset + limit
	if end > len(f.tasks) {
		end = len(f.tasks)
	}
	page := []models.TemplateTask{}
	if offset < len(f.tasks) {
		page = f.tasks[offset:end]
	}
	return &models.TemplateTasksResponse{
		Template: f.template,
		Tasks:    page,
		Total:    int64(len(f.tasks)),
		Limit:    limit,
		Offset:   offset,
	}, nil
}

// stubSink records saved annotations and can be told to fail.
type stubSink struct {
	mu    sync.Mutex
	saved []*models.AnnotationCreate
	err   error
}

func (s *stubSink) SaveAnnotation(_ context.Context, userID string, req *models.AnnotationCreate) (*models.TaskAnnotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.saved = append(s.saved, req)
	status := models.AnnotationCompleted
	if req.Discarded {
		status = models.AnnotationDiscarded
	}
	return &models.TaskAnnotation{TaskID: req.TaskID, Status: status}, nil
}

func makeTasks(n int) []models.TemplateTask {
	tasks := make([]models.TemplateTask, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, models.TemplateTask{
			ID:        fmt.Sprintf("id-%d", i),
			ProjectID: "64b000000000000000000001",
			TaskID:    fmt.Sprintf("task-%d", i),
			TaskName:  fmt.Sprintf("Task %d", i),
			Payload:   map[string]interface{}{"title": fmt.Sprintf("Row %d", i)},
		})
	}
	return tasks
}

func testTemplate() (*models.Template, *models.Block, *models.Block) {
	title, _ := models.NewBlock(models.BlockTitle)
	radio, _ := models.NewBlock(models.BlockRadioButtons)
	return &models.Template{
		ID:     "tpl-1",
		Name:   "T",
		Layout: []models.Block{*title, *radio},
		Rules: []models.Rule{{
			ComponentKey: title.ID,
			TargetProp:   "text",
			SourceKind:   models.SourceExcelColumn,
			SourcePath:   "title",
		}},
	}, title, radio
}

func newTestRuntime(t *testing.T, total, pageSize int) (*Runtime, *stubFeed, *stubSink, *models.Block, *models.Block) {
	t.Helper()
	template, title, radio := testTemplate()
	feed := &stubFeed{tasks: makeTasks(total), template: template}
	sink := &stubSink{}
	r := newRuntime("tpl-1", "user-1", ModePerform, pageSize, feed, sink)
	require.NoError(t, r.Start(context.Background()))
	return r, feed, sink, title, radio
}

func TestStartLoadsFirstPage(t *testing.T) {
	r, _, _, _, _ := newTestRuntime(t, 50, 20)

	loaded, total := r.TaskCount()
	assert.Equal(t, 20, loaded)
	assert.Equal(t, int64(50), total)
	assert.True(t, r.HasMore())
	assert.Equal(t, 0, r.Index())
}

func TestLoadMoreGrowsMonotonically(t *testing.T) {
	// after k loads the list holds min(k*pageSize, total) tasks
	r, _, _, _, _ := newTestRuntime(t, 45, 20)

	for _, want := range []int{40, 45, 45} {
		_, err := r.LoadMore(context.Background())
		require.NoError(t, err)
		loaded, _ := r.TaskCount()
		assert.Equal(t, want, loaded)
	}
	assert.False(t, r.HasMore())
}

func TestNextWithinLoadedPage(t *testing.T) {
	r, feed, _, _, _ := newTestRuntime(t, 50, 20)

	moved, err := r.Next(context.Background())
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 1, r.Index())
	assert.Equal(t, 1, feed.fetches, "no fetch needed inside the loaded page")
}

func TestNextPastEndFetchesNextPage(t *testing.T) {
	r, feed, _, _, _ := newTestRuntime(t, 50, 20)

	for i := 0; i < 19; i++ {
		moved, err := r.Next(context.Background())
		require.NoError(t, err)
		require.True(t, moved)
	}
	assert.Equal(t, 19, r.Index())

	moved, err := r.Next(context.Background())
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 20, r.Index())
	assert.Equal(t, 2, feed.fetches)
}

func TestNextAtFeedEndStaysPut(t *testing.T) {
	r, _, _, _, _ := newTestRuntime(t, 3, 20)

	for i := 0; i < 2; i++ {
		moved, err := r.Next(context.Background())
		require.NoError(t, err)
		require.True(t, moved)
	}

	// feed exhausted: Next must not advance past the last task
	moved, err := r.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, 2, r.Index())

	current, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, "task-2", current.TaskID)
}

func TestPendingAdvanceNotFiredOnZeroNewItems(t *testing.T) {
	// server total says more exist, but the next page comes back empty
	template, _, _ := testTemplate()
	feed := &stubFeed{tasks: makeTasks(2), template: template}
	r := newRuntime("tpl-1", "u", ModePerform, 2, feed, &stubSink{})
	require.NoError(t, r.Start(context.Background()))

	// lie about the total so hasMore stays true with nothing left to serve
	r.mu.Lock()
	r.total = 10
	r.mu.Unlock()

	moved, err := r.Next(context.Background())
	require.NoError(t, err)
	require.True(t, moved)

	moved, err = r.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, moved, "empty page must not advance the index")
	assert.Equal(t, 1, r.Index())
}

func TestAnswersResetOnNavigation(t *testing.T) {
	r, _, _, _, radio := newTestRuntime(t, 5, 20)

	require.NoError(t, r.Answer(radio.ID, "Yes"))
	assert.Equal(t, map[string]interface{}{radio.ID: "Yes"}, r.Answers())

	_, err := r.Next(context.Background())
	require.NoError(t, err)
	assert.Empty(t, r.Answers(), "answers belong to one task")

	require.NoError(t, r.Answer(radio.ID, "No"))
	require.True(t, r.Prev())
	assert.Empty(t, r.Answers(), "stepping back also resets answers")
}

func TestAnswerValidation(t *testing.T) {
	r, _, _, title, _ := newTestRuntime(t, 5, 20)

	assert.ErrorIs(t, r.Answer(title.ID, "x"), ErrNotInteractive)
	assert.Error(t, r.Answer("ghost-block", "x"))
}

func TestPreviewModeCollectsNoAnswers(t *testing.T) {
	template, _, radio := testTemplate()
	feed := &stubFeed{tasks: makeTasks(3), template: template}
	r := newRuntime("tpl-1", "u", ModePreview, 20, feed, &stubSink{})
	require.NoError(t, r.Start(context.Background()))

	assert.Error(t, r.Answer(radio.ID, "Yes"))
}

func TestSubmitPostsAnswers(t *testing.T) {
	r, _, sink, _, radio := newTestRuntime(t, 5, 20)

	require.NoError(t, r.Answer(radio.ID, "Yes"))
	annotation, err := r.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "task-0", annotation.TaskID)
	assert.Equal(t, models.AnnotationCompleted, annotation.Status)

	require.Len(t, sink.saved, 1)
	assert.Equal(t, map[string]interface{}{radio.ID: "Yes"}, sink.saved[0].Annotations)

	_, err = r.Submit(context.Background())
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestSubmitFailureKeepsAnswers(t *testing.T) {
	r, _, sink, _, radio := newTestRuntime(t, 5, 20)
	sink.err = fmt.Errorf("sink down")

	require.NoError(t, r.Answer(radio.ID, "Yes"))
	_, err := r.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, map[string]interface{}{radio.ID: "Yes"}, r.Answers(), "failed submit keeps the draft")

	sink.err = nil
	_, err = r.Submit(context.Background())
	assert.NoError(t, err, "retry after failure succeeds")
}

func TestDiscardAdvancesAndExcludesSubmit(t *testing.T) {
	r, _, sink, _, _ := newTestRuntime(t, 5, 20)

	require.NoError(t, r.Discard(context.Background()))
	assert.Equal(t, 1, r.Index(), "discard advances to the next task")

	require.Len(t, sink.saved, 1)
	assert.True(t, sink.saved[0].Discarded)
	assert.Empty(t, sink.saved[0].Annotations)

	// a submitted task can not then be discarded
	_, err := r.Submit(context.Background())
	require.NoError(t, err)
	assert.ErrorIs(t, r.Discard(context.Background()), ErrAlreadySubmitted)
}

func TestSupersededFetchDropped(t *testing.T) {
	template, _, _ := testTemplate()
	feed := &stubFeed{tasks: makeTasks(40), template: template, gate: make(chan struct{})}
	r := newRuntime("tpl-1", "u", ModePerform, 10, feed, &stubSink{})

	done := make(chan struct{})
	var slowAdded, fastAdded int
	go func() {
		slowAdded, _ = r.LoadMore(context.Background()) // superseded while gated
		close(done)
	}()

	fastDone := make(chan struct{})
	go func() {
		fastAdded, _ = r.LoadMore(context.Background()) // takes over the seq
		close(fastDone)
	}()

	// release both fetches; only the later one may apply
	close(feed.gate)
	<-done
	<-fastDone

	loaded, _ := r.TaskCount()
	assert.Equal(t, 10, loaded, "exactly one page applied")
	assert.Equal(t, 0, slowAdded+fastAdded-10, "one fetch applied, one dropped")
}

func TestRenderResolvesRules(t *testing.T) {
	r, _, _, title, radio := newTestRuntime(t, 3, 20)

	view, err := r.Render()
	require.NoError(t, err)
	assert.Equal(t, 0, view.TaskIndex)
	require.Len(t, view.Blocks, 2)

	byID := map[string]RenderedBlock{}
	for _, b := range view.Blocks {
		byID[b.ID] = b
	}
	assert.Equal(t, "Row 0", byID[title.ID].Props["text"], "rule resolves payload title")
	assert.False(t, byID[title.ID].Interactive)
	assert.True(t, byID[radio.ID].Interactive)
	assert.Equal(t, []string{"Yes", "No"}, byID[radio.ID].Props["options"], "unbound prop falls back to design value")
}

func TestRenderCarriesAnswer(t *testing.T) {
	r, _, _, _, radio := newTestRuntime(t, 3, 20)
	require.NoError(t, r.Answer(radio.ID, "No"))

	view, err := r.Render()
	require.NoError(t, err)
	for _, b := range view.Blocks {
		if b.ID == radio.ID {
			assert.Equal(t, "No", b.Answer)
		}
	}
}
