package player

import (
	"context"
	"errors"
	"time"

	"Backend-Dhriti-AI/src/database"
	"Backend-Dhriti-AI/src/models"
	"Backend-Dhriti-AI/src/services/templates"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrTaskNotFound = errors.New("task not found")

// Service implements TaskFeed and AnnotationSink against MongoDB. One
// instance is constructed in main and shared by the player sessions.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// FetchTasks returns one page of a template's task feed: the tasks of the
// template's project ordered oldest first, plus the schema inferred from the
// page, the template itself, and the server-side total.
func (s *Service) FetchTasks(ctx context.Context, templateID string, limit, offset int) (*models.TemplateTasksResponse, error) {
	template, err := templates.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	params := models.FeedParams{Limit: limit, Offset: offset}
	params.Normalize()

	filter := bson.M{"projectId": template.ProjectID}
	total, err := database.TaskCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetSkip(int64(params.Offset)).
		SetLimit(int64(params.Limit))
	cursor, err := database.TaskCollection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stored []models.ProjectTask
	if err := cursor.All(ctx, &stored); err != nil {
		return nil, err
	}

	tasks := make([]models.TemplateTask, 0, len(stored))
	previewRows := make([]map[string]interface{}, 0, len(stored))
	for _, task := range stored {
		created := task.CreatedAt
		tasks = append(tasks, models.TemplateTask{
			ID:        task.ID.Hex(),
			ProjectID: task.ProjectID.Hex(),
			TaskID:    task.TaskID,
			TaskName:  task.TaskName,
			FileName:  task.FileName,
			Payload:   task.Payload,
			Status:    string(task.Status),
			CreatedAt: &created,
		})

		row := map[string]interface{}{}
		for k, v := range task.Payload {
			row[k] = v
		}
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
	}

	return &models.TemplateTasksResponse{
		Template: template,
		Schema:   templates.CollectSchemaFromRows(previewRows),
		Tasks:    tasks,
		Total:    total,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}, nil
}

// SaveAnnotation persists one submission or discard and moves the task's
// workflow status: submitted tasks become ready for QC, discarded tasks
// leave the workflow.
func (s *Service) SaveAnnotation(ctx context.Context, userID string, req *models.AnnotationCreate) (*models.TaskAnnotation, error) {
	userObjID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errors.New("invalid user id")
	}
	projectObjID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		return nil, errors.New("invalid project id")
	}

	var task models.ProjectTask
	err = database.TaskCollection.FindOne(ctx, bson.M{"taskId": req.TaskID, "projectId": projectObjID}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	status := models.AnnotationCompleted
	nextTaskStatus := models.TaskStatusSubmitted
	if req.Discarded {
		status = models.AnnotationDiscarded
		nextTaskStatus = models.TaskStatusDiscarded
	}

	annotation := &models.TaskAnnotation{
		TaskID:      req.TaskID,
		UserID:      userObjID,
		ProjectID:   projectObjID,
		TemplateID:  req.TemplateID,
		Annotations: req.Annotations,
		Status:      status,
		SubmittedAt: time.Now(),
	}
	if annotation.Annotations == nil {
		annotation.Annotations = map[string]interface{}{}
	}

	result, err := database.AnnotationCollection.InsertOne(ctx, annotation)
	if err != nil {
		return nil, err
	}
	annotation.ID = result.InsertedID.(primitive.ObjectID)

	_, err = database.TaskCollection.UpdateOne(ctx,
		bson.M{"_id": task.ID},
		bson.M{"$set": bson.M{"status": nextTaskStatus, "updatedAt": time.Now()}},
	)
	if err != nil {
		return nil, err
	}

	// keep the annotator's dashboard counters in sync
	counterShift := bson.M{"$inc": bson.M{"completedTasks": 1, "pendingTasks": -1}}
	if req.Discarded {
		counterShift = bson.M{"$inc": bson.M{"pendingTasks": -1}}
	}
	_, _ = database.AssignmentCollection.UpdateOne(ctx,
		bson.M{"projectId": projectObjID, "userId": userObjID},
		counterShift,
	)

	return annotation, nil
}
