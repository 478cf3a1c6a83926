package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"Backend-Dhriti-AI/src/database"
	"Backend-Dhriti-AI/src/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func HandleImportBatchTask(ctx context.Context, t *asynq.Task) error {
	var payload ImportBatchPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Println("❌ Payload decode error:", err)
		return err
	}

	if err := MaterializeBatch(ctx, payload.BatchID); err != nil {
		log.Println("❌ Failed to materialize import batch:", payload.BatchID, err)
		return err
	}

	log.Println("✅ Import batch materialized:", payload.BatchID)
	return nil
}

// MaterializeBatch turns the staged rows of a PENDING batch into project
// tasks. Rows without a task_id get a generated one. The batch ends up
// COMPLETED, or FAILED with the error recorded on it.
func MaterializeBatch(ctx context.Context, batchID string) error {
	var batch models.ImportBatch
	err := database.ImportBatchCollection.FindOne(ctx, bson.M{"_id": batchID}).Decode(&batch)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			log.Println("⚠️ Import batch not found. Possibly deleted. Skipping:", batchID)
			return nil
		}
		return err
	}
	if batch.Status == models.BatchCompleted {
		return nil
	}

	if err := insertTasks(ctx, &batch); err != nil {
		_, _ = database.ImportBatchCollection.UpdateOne(ctx,
			bson.M{"_id": batch.ID},
			bson.M{"$set": bson.M{"status": models.BatchFailed, "error": err.Error(), "updatedAt": time.Now()}},
		)
		return err
	}

	_, err = database.ImportBatchCollection.UpdateOne(ctx,
		bson.M{"_id": batch.ID},
		bson.M{"$set": bson.M{"status": models.BatchCompleted, "updatedAt": time.Now()}},
	)
	return err
}

func insertTasks(ctx context.Context, batch *models.ImportBatch) error {
	if len(batch.Rows) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(batch.Rows))
	for i, row := range batch.Rows {
		taskID, ok := row["task_id"].(string)
		if !ok || taskID == "" {
			taskID = uuid.NewString()
		}
		taskName, _ := row["task_name"].(string)
		fileName, _ := row["file_name"].(string)
		docs = append(docs, models.ProjectTask{
			ID:        primitive.NewObjectID(),
			ProjectID: batch.ProjectID,
			TaskID:    taskID,
			TaskName:  taskName,
			FileName:  fileName,
			BatchID:   batch.ID,
			Payload:   row,
			Status:    models.TaskStatusNew,
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond), // keeps feed order stable
			UpdatedAt: now,
		})
	}

	if _, err := database.TaskCollection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert tasks for batch %s: %w", batch.ID, err)
	}
	return nil
}
