package templates

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"Backend-Dhriti-AI/src/database"
	"Backend-Dhriti-AI/src/models"
	"Backend-Dhriti-AI/src/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrBatchNotFound    = errors.New("batch not found")
	ErrBatchNotReady    = errors.New("batch import is not completed yet")
)

const (
	previewRowLimit = 5
	sourceCacheTTL  = 5 * time.Minute
)

// CreateTemplate validates and persists a layout document for a project.
func CreateTemplate(ctx context.Context, req *models.TemplateCreateRequest, createdBy *primitive.ObjectID) (*models.Template, error) {
	if err := ValidateDocument(req.Name, req.Layout, req.Rules); err != nil {
		return nil, err
	}

	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	count, err := database.ProjectCollection.CountDocuments(ctx, bson.M{"_id": projectID})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrProjectNotFound
	}

	now := time.Now()
	template := &models.Template{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Name:      strings.TrimSpace(req.Name),
		Layout:    req.Layout,
		Rules:     req.Rules,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: createdBy,
	}
	if template.Rules == nil {
		template.Rules = []models.Rule{}
	}

	if _, err := database.TemplateCollection.InsertOne(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// GetTemplate fetches one template by id.
func GetTemplate(ctx context.Context, id string) (*models.Template, error) {
	var template models.Template
	err := database.TemplateCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&template)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &template, nil
}

// ListTemplates returns saved templates, newest first.
func ListTemplates(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 10
	}

	filter := bson.M{}
	if params.Search != "" {
		filter["name"] = bson.M{"$regex": params.Search, "$options": "i"}
	}

	total, err := database.TemplateCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	sort := bson.D{}
	for field, order := range params.GetSortOrder() {
		sort = append(sort, bson.E{Key: field, Value: order})
	}
	opts := options.Find().
		SetSort(sort).
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit))
	cursor, err := database.TemplateCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	templates := []models.Template{}
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return models.NewPaginatedResponse(templates, total, params), nil
}

// LatestTemplateForProject returns the most recently created template of a
// project, nil when the project has none.
func LatestTemplateForProject(ctx context.Context, projectID primitive.ObjectID) (*models.Template, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var template models.Template
	err := database.TemplateCollection.FindOne(ctx, bson.M{"projectId": projectID}, opts).Decode(&template)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

// ExportTemplate serializes the client-side download dump {blocks, rules}.
func ExportTemplate(t *models.Template) ([]byte, error) {
	export := models.TemplateExport{Blocks: t.Layout, Rules: t.Rules}
	if export.Blocks == nil {
		export.Blocks = []models.Block{}
	}
	if export.Rules == nil {
		export.Rules = []models.Rule{}
	}
	return json.MarshalIndent(export, "", "  ")
}

// ListBatchSources lists imported batches available for template binding.
func ListBatchSources(ctx context.Context) ([]models.TemplateSourceSummary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.ImportBatchCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var batches []models.ImportBatch
	if err := cursor.All(ctx, &batches); err != nil {
		return nil, err
	}

	summaries := []models.TemplateSourceSummary{}
	for _, batch := range batches {
		summaries = append(summaries, models.TemplateSourceSummary{
			BatchID:      batch.ID,
			OriginalFile: batch.OriginalFile,
			RowCount:     batch.RowCount,
			Status:       batch.Status,
			CreatedAt:    batch.CreatedAt,
			Schema:       batch.Schema,
		})
	}
	return summaries, nil
}

// GetBatchSource returns schema + sample rows of a completed import batch.
// ผลลัพธ์ cache ใน Redis เพราะ builder เรียกซ้ำทุกครั้งที่เปิด rule picker
func GetBatchSource(ctx context.Context, batchID string) (*models.TemplateSourceDetail, error) {
	cacheKey := "template-source:batch:" + batchID
	var cached models.TemplateSourceDetail
	if ok, _ := utils.GetCachedJSON(cacheKey, &cached); ok {
		return &cached, nil
	}

	var batch models.ImportBatch
	err := database.ImportBatchCollection.FindOne(ctx, bson.M{"_id": batchID}).Decode(&batch)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}
	if batch.Status != models.BatchCompleted {
		return nil, ErrBatchNotReady
	}

	previewRows := batch.Rows
	if len(previewRows) > previewRowLimit {
		previewRows = previewRows[:previewRowLimit]
	}
	if previewRows == nil {
		previewRows = []map[string]interface{}{}
	}

	schema := batch.Schema
	if len(schema) == 0 {
		schema = CollectSchemaFromRows(previewRows)
	}

	detail := &models.TemplateSourceDetail{
		TemplateSourceSummary: models.TemplateSourceSummary{
			BatchID:      batch.ID,
			OriginalFile: batch.OriginalFile,
			RowCount:     batch.RowCount,
			Status:       batch.Status,
			CreatedAt:    batch.CreatedAt,
			Schema:       schema,
		},
		PreviewRows: previewRows,
	}

	_ = utils.CacheJSON(cacheKey, detail, sourceCacheTTL)
	return detail, nil
}

// ListProjectSources lists projects with task counts for template binding.
func ListProjectSources(ctx context.Context) ([]models.ProjectTemplateSourceSummary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := database.ProjectCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}

	summaries := []models.ProjectTemplateSourceSummary{}
	for _, project := range projects {
		total, err := database.TaskCollection.CountDocuments(ctx, bson.M{"projectId": project.ID})
		if err != nil {
			return nil, err
		}

		var latest *time.Time
		var newest models.ProjectTask
		latestOpts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		if err := database.TaskCollection.FindOne(ctx, bson.M{"projectId": project.ID}, latestOpts).Decode(&newest); err == nil {
			t := newest.CreatedAt
			latest = &t
		}

		summaries = append(summaries, models.ProjectTemplateSourceSummary{
			ProjectID:    project.ID.Hex(),
			ProjectName:  project.Name,
			Status:       project.Status,
			TotalTasks:   total,
			LatestTaskAt: latest,
			SampleFields: []string{},
		})
	}
	return summaries, nil
}

// GetProjectSource returns inferred schema + sample rows of a project's tasks.
func GetProjectSource(ctx context.Context, projectID primitive.ObjectID) (*models.ProjectTemplateSourceDetail, error) {
	cacheKey := "template-source:project:" + projectID.Hex()
	var cached models.ProjectTemplateSourceDetail
	if ok, _ := utils.GetCachedJSON(cacheKey, &cached); ok {
		return &cached, nil
	}

	var project models.Project
	err := database.ProjectCollection.FindOne(ctx, bson.M{"_id": projectID}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	total, err := database.TaskCollection.CountDocuments(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return nil, err
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetLimit(previewRowLimit)
	cursor, err := database.TaskCollection.Find(ctx, bson.M{"projectId": projectID}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []models.ProjectTask
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}

	var latest *time.Time
	previewRows := []map[string]interface{}{}
	for _, task := range tasks {
		row := map[string]interface{}{}
		for k, v := range task.Payload {
			row[k] = v
		}
		// promote identity fields without clobbering payload keys
		if _, ok := row["task_id"]; !ok {
			row["task_id"] = task.TaskID
		}
		if _, ok := row["task_name"]; !ok {
			row["task_name"] = task.TaskName
		}
		if _, ok := row["file_name"]; !ok {
			row["file_name"] = task.FileName
		}
		previewRows = append(previewRows, row)

		if latest == nil || task.CreatedAt.After(*latest) {
			t := task.CreatedAt
			latest = &t
		}
	}

	schema := CollectSchemaFromRows(previewRows)
	sampleFields := make([]string, 0, len(schema))
	for _, field := range schema {
		sampleFields = append(sampleFields, field.Key)
	}

	detail := &models.ProjectTemplateSourceDetail{
		ProjectTemplateSourceSummary: models.ProjectTemplateSourceSummary{
			ProjectID:    project.ID.Hex(),
			ProjectName:  project.Name,
			Status:       project.Status,
			TotalTasks:   total,
			LatestTaskAt: latest,
			SampleFields: sampleFields,
		},
		Schema:      schema,
		PreviewRows: previewRows,
	}

	_ = utils.CacheJSON(cacheKey, detail, sourceCacheTTL)
	return detail, nil
}
