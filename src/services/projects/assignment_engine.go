package projects

import (
	"context"
	"errors"
	"time"

	"Backend-Dhriti-AI/src/database"
	"Backend-Dhriti-AI/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// An annotator holding this many unfinished tasks gets no new ones.
const maxOpenTasksPerUser = 5

// IsUserAvailable reports whether an annotator can take another task.
func IsUserAvailable(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	open, err := database.TaskCollection.CountDocuments(ctx, bson.M{
		"assignedTo": userID,
		"status":     bson.M{"$in": []models.TaskStatus{models.TaskStatusNew, models.TaskStatusRework}},
	})
	if err != nil {
		return false, err
	}
	return open < maxOpenTasksPerUser, nil
}

// AssignTaskToUser hands the oldest unassigned NEW task from the user's
// projects to the user. Returns nil without error when nothing is waiting.
func AssignTaskToUser(ctx context.Context, userID primitive.ObjectID) (*models.ProjectTask, error) {
	available, err := IsUserAvailable(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, nil
	}

	cursor, err := database.AssignmentCollection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []models.ProjectAssignment
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, nil
	}

	projectIDs := make([]primitive.ObjectID, 0, len(assignments))
	for _, a := range assignments {
		projectIDs = append(projectIDs, a.ProjectID)
	}

	var task models.ProjectTask
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetReturnDocument(options.After)
	err = database.TaskCollection.FindOneAndUpdate(ctx,
		bson.M{
			"projectId":  bson.M{"$in": projectIDs},
			"status":     models.TaskStatusNew,
			"assignedTo": nil,
		},
		bson.M{"$set": bson.M{"assignedTo": userID, "updatedAt": time.Now()}},
		opts,
	).Decode(&task)
	if err != nil {
		if noTaskWaiting(err) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

// noTaskWaiting reports whether a claim attempt failed because the queue was
// empty, as opposed to a database failure the caller must see.
func noTaskWaiting(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
