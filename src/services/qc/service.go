package qc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Backend-Dhriti-AI/src/database"
	"Backend-Dhriti-AI/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrTaskNotFound = errors.New("task not found")

// QC actions over the task workflow.
const (
	ActionAccept = "accept"
	ActionReject = "reject"
	ActionRework = "rework"
)

// CanTransition is the legal-move table of the QC state machine. A task
// enters QC once submitted; rework only applies to rejected tasks.
func CanTransition(from models.TaskStatus, action string) (models.TaskStatus, bool) {
	switch action {
	case ActionAccept:
		if from == models.TaskStatusSubmitted || from == models.TaskStatusQCPending {
			return models.TaskStatusQCAccepted, true
		}
	case ActionReject:
		if from == models.TaskStatusSubmitted || from == models.TaskStatusQCPending {
			return models.TaskStatusQCRejected, true
		}
	case ActionRework:
		if from == models.TaskStatusQCRejected {
			return models.TaskStatusRework, true
		}
	}
	return from, false
}

// AcceptTask moves one submitted task to qc_accepted.
func AcceptTask(ctx context.Context, taskID string) error {
	return transition(ctx, taskID, ActionAccept, "")
}

// RejectTask moves one submitted task to qc_rejected, recording the reason.
func RejectTask(ctx context.Context, taskID, reason string) error {
	return transition(ctx, taskID, ActionReject, reason)
}

// ReworkTask sends a rejected task back to the annotator.
func ReworkTask(ctx context.Context, taskID string) error {
	return transition(ctx, taskID, ActionRework, "")
}

func transition(ctx context.Context, taskID, action, reason string) error {
	var task models.ProjectTask
	err := database.TaskCollection.FindOne(ctx, bson.M{"taskId": taskID}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrTaskNotFound
		}
		return err
	}

	next, ok := CanTransition(task.Status, action)
	if !ok {
		return fmt.Errorf("cannot %s task in status %q", action, task.Status)
	}

	update := bson.M{"status": next, "updatedAt": time.Now()}
	if action == ActionReject {
		update["rejectReason"] = reason
	}
	if action == ActionRework {
		// a reworked task goes back into the annotator's pending pile
		if task.AssignedTo != nil {
			_, _ = database.AssignmentCollection.UpdateOne(ctx,
				bson.M{"projectId": task.ProjectID, "userId": *task.AssignedTo},
				bson.M{"$inc": bson.M{"pendingTasks": 1, "completedTasks": -1}},
			)
		}
	}

	_, err = database.TaskCollection.UpdateOne(ctx, bson.M{"_id": task.ID}, bson.M{"$set": update})
	return err
}

// BulkResult reports per-task outcomes of a bulk QC action.
type BulkResult struct {
	Updated []string          `json:"updated"`
	Failed  map[string]string `json:"failed,omitempty"`
}

// BulkAccept accepts many tasks, collecting per-task failures instead of
// aborting the batch.
func BulkAccept(ctx context.Context, taskIDs []string) *BulkResult {
	return bulk(ctx, taskIDs, func(ctx context.Context, id string) error {
		return AcceptTask(ctx, id)
	})
}

// BulkReject rejects many tasks with one shared reason.
func BulkReject(ctx context.Context, taskIDs []string, reason string) *BulkResult {
	return bulk(ctx, taskIDs, func(ctx context.Context, id string) error {
		return RejectTask(ctx, id, reason)
	})
}

func bulk(ctx context.Context, taskIDs []string, apply func(context.Context, string) error) *BulkResult {
	result := &BulkResult{Updated: []string{}}
	for _, id := range taskIDs {
		if err := apply(ctx, id); err != nil {
			if result.Failed == nil {
				result.Failed = map[string]string{}
			}
			result.Failed[id] = err.Error()
			continue
		}
		result.Updated = append(result.Updated, id)
	}
	return result
}
