package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"Backend-Dhriti-AI/src/database"
	"Backend-Dhriti-AI/src/jobs"
	"Backend-Dhriti-AI/src/models"
	"Backend-Dhriti-AI/src/services/templates"
	"Backend-Dhriti-AI/src/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrConflicts       = errors.New("import has task id conflicts")
)

const previewLimit = 5

// FindConflicts returns the task_ids of rows that collide with task ids
// already present in the project. Rows without a task_id never conflict
// (they get generated ids at materialization time).
func FindConflicts(existing map[string]bool, rows []map[string]interface{}) []string {
	conflicts := []string{}
	seen := map[string]bool{}
	for _, row := range rows {
		id, ok := row["task_id"].(string)
		if !ok || id == "" {
			continue
		}
		if (existing[id] || seen[id]) && !contains(conflicts, id) {
			conflicts = append(conflicts, id)
		}
		seen[id] = true
	}
	return conflicts
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Preview infers the schema of an import and detects task id conflicts
// before anything is written.
func Preview(ctx context.Context, req *models.ImportPreviewRequest) (*models.ImportPreviewResponse, error) {
	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	if err := ensureProjectExists(ctx, projectID); err != nil {
		return nil, err
	}

	existing, err := existingTaskIDs(ctx, projectID)
	if err != nil {
		return nil, err
	}

	previewRows := req.Rows
	if len(previewRows) > previewLimit {
		previewRows = previewRows[:previewLimit]
	}

	return &models.ImportPreviewResponse{
		Schema:      templates.CollectSchemaFromRows(req.Rows),
		PreviewRows: previewRows,
		RowCount:    len(req.Rows),
		Conflicts:   FindConflicts(existing, req.Rows),
	}, nil
}

// Confirm creates a PENDING import batch and hands materialization to the
// background worker. Without Redis/Asynq the batch is processed inline so
// development setups still work.
func Confirm(ctx context.Context, req *models.ImportConfirmRequest) (*models.ImportConfirmResponse, error) {
	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	if err := ensureProjectExists(ctx, projectID); err != nil {
		return nil, err
	}

	existing, err := existingTaskIDs(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if conflicts := FindConflicts(existing, req.Rows); len(conflicts) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrConflicts, conflicts)
	}

	now := time.Now()
	batch := &models.ImportBatch{
		ID:           uuid.NewString(),
		ProjectID:    projectID,
		OriginalFile: req.OriginalFile,
		RowCount:     len(req.Rows),
		Status:       models.BatchPending,
		Schema:       templates.CollectSchemaFromRows(req.Rows),
		Rows:         req.Rows,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := database.ImportBatchCollection.InsertOne(ctx, batch); err != nil {
		return nil, err
	}

	// new data invalidates cached source previews for this project
	utils.InvalidateCache(
		"template-source:project:"+projectID.Hex(),
		"template-source:batch:"+batch.ID,
	)

	status := models.BatchPending
	if database.AsynqClient != nil {
		task, err := jobs.NewImportBatchTask(batch.ID)
		if err != nil {
			return nil, err
		}
		if _, err := database.AsynqClient.Enqueue(task); err != nil {
			return nil, err
		}
	} else {
		log.Println("⚠️ Asynq not available. Processing import batch inline:", batch.ID)
		if err := jobs.MaterializeBatch(ctx, batch.ID); err != nil {
			return nil, err
		}
		status = models.BatchCompleted
	}

	return &models.ImportConfirmResponse{
		BatchID:  batch.ID,
		Status:   status,
		RowCount: batch.RowCount,
	}, nil
}

func ensureProjectExists(ctx context.Context, projectID primitive.ObjectID) error {
	count, err := database.ProjectCollection.CountDocuments(ctx, bson.M{"_id": projectID})
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func existingTaskIDs(ctx context.Context, projectID primitive.ObjectID) (map[string]bool, error) {
	cursor, err := database.TaskCollection.Find(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	existing := map[string]bool{}
	var tasks []models.ProjectTask
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	for _, task := range tasks {
		if task.TaskID != "" {
			existing[task.TaskID] = true
		}
	}
	return existing, nil
}
