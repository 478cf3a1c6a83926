package projects

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Backend-Dhriti-AI/src/database"
	"Backend-Dhriti-AI/src/models"
	"Backend-Dhriti-AI/src/services/templates"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrDuplicateName   = errors.New("project with this name already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrAlreadyAssigned = errors.New("user already assigned to this project")
)

// CreateProject creates a project with a unique name.
func CreateProject(ctx context.Context, req *models.ProjectCreateRequest) (*models.Project, error) {
	count, err := database.ProjectCollection.CountDocuments(ctx, bson.M{"name": req.Name})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateName
	}

	status := req.Status
	if status == "" {
		status = models.ProjectActive
	}

	project := &models.Project{
		ID:                        primitive.NewObjectID(),
		Name:                      req.Name,
		Status:                    status,
		Description:               req.Description,
		DataCategory:              req.DataCategory,
		ProjectType:               req.ProjectType,
		TaskType:                  req.TaskType,
		DefaultAvgTaskTimeMinutes: req.DefaultAvgTaskTimeMinutes,
		ReviewTimeMinutes:         req.ReviewTimeMinutes,
		MaxUsersPerTask:           req.MaxUsersPerTask,
		AutoSubmitTask:            req.AutoSubmitTask,
		AllowReviewerEdit:         req.AllowReviewerEdit,
		AllowReviewerPushBack:     req.AllowReviewerPushBack,
		AllowReviewerFeedback:     req.AllowReviewerFeedback,
		ReviewerGuidelines:        req.ReviewerGuidelines,
		CreatedAt:                 time.Now(),
	}

	if _, err := database.ProjectCollection.InsertOne(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetProject fetches one project.
func GetProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := database.ProjectCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// ListProjects returns all projects with their task totals, name ascending.
func ListProjects(ctx context.Context) ([]models.ProjectSummary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := database.ProjectCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var projectList []models.Project
	if err := cursor.All(ctx, &projectList); err != nil {
		return nil, err
	}

	summaries := []models.ProjectSummary{}
	for _, project := range projectList {
		total, err := database.TaskCollection.CountDocuments(ctx, bson.M{"projectId": project.ID})
		if err != nil {
			return nil, err
		}
		completed, err := database.TaskCollection.CountDocuments(ctx, bson.M{
			"projectId": project.ID,
			"status":    bson.M{"$in": []models.TaskStatus{models.TaskStatusSubmitted, models.TaskStatusQCAccepted}},
		})
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, models.ProjectSummary{
			Project:             project,
			TotalTasksAdded:     total,
			TotalTasksCompleted: completed,
		})
	}
	return summaries, nil
}

// AssignUser puts an annotator on a project with zeroed counters.
func AssignUser(ctx context.Context, projectID, userID primitive.ObjectID) (*models.ProjectAssignment, error) {
	if _, err := GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	userCount, err := database.UserCollection.CountDocuments(ctx, bson.M{"_id": userID})
	if err != nil {
		return nil, err
	}
	if userCount == 0 {
		return nil, ErrUserNotFound
	}

	existing, err := database.AssignmentCollection.CountDocuments(ctx, bson.M{"projectId": projectID, "userId": userID})
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadyAssigned
	}

	pending, err := database.TaskCollection.CountDocuments(ctx, bson.M{"projectId": projectID, "status": models.TaskStatusNew})
	if err != nil {
		return nil, err
	}

	assignment := &models.ProjectAssignment{
		ID:           primitive.NewObjectID(),
		ProjectID:    projectID,
		UserID:       userID,
		PendingTasks: int(pending),
		Status:       models.ProjectActive,
		CreatedAt:    time.Now(),
	}
	if _, err := database.AssignmentCollection.InsertOne(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// Dashboard builds the annotator landing page: assigned projects with the
// latest template to play, counters, ratings, and recent reviews.
func Dashboard(ctx context.Context, userID primitive.ObjectID) (*models.TasksDashboardResponse, error) {
	cursor, err := database.AssignmentCollection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []models.ProjectAssignment
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}

	assigned := []models.AssignedProject{}
	totalCompleted := 0
	totalPending := 0

	for _, assignment := range assignments {
		project, err := GetProject(ctx, assignment.ProjectID)
		if err != nil {
			if err == ErrProjectNotFound {
				continue // project deleted after assignment, skip the row
			}
			return nil, err
		}

		avgMinutes := assignment.AvgTaskTimeMinutes
		if avgMinutes == nil {
			avgMinutes = project.DefaultAvgTaskTimeMinutes
		}
		label := ""
		if avgMinutes != nil {
			label = fmt.Sprintf("%d minutes", *avgMinutes)
		}

		rating, err := averageRating(ctx, userID, &assignment.ProjectID)
		if err != nil {
			return nil, err
		}

		templateID := ""
		if latest, err := templates.LatestTemplateForProject(ctx, project.ID); err == nil && latest != nil {
			templateID = latest.ID
		}

		status := assignment.Status
		if status == "" {
			status = project.Status
		}
		if status == "" {
			status = models.ProjectActive
		}

		assigned = append(assigned, models.AssignedProject{
			AssignmentID:     assignment.ID.Hex(),
			ProjectID:        project.ID.Hex(),
			ProjectName:      project.Name,
			AvgTaskTimeMins:  avgMinutes,
			AvgTaskTimeLabel: label,
			Rating:           rating,
			CompletedTasks:   assignment.CompletedTasks,
			PendingTasks:     assignment.PendingTasks,
			Status:           status,
			TemplateID:       templateID,
		})

		totalCompleted += assignment.CompletedTasks
		totalPending += assignment.PendingTasks
	}

	overallRating, err := averageRating(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	recentReviews, err := recentReviews(ctx, userID, 5)
	if err != nil {
		return nil, err
	}

	return &models.TasksDashboardResponse{
		Stats: models.TasksStats{
			AssignedProjects: len(assigned),
			TasksCompleted:   totalCompleted,
			TasksPending:     totalPending,
			AvgRating:        overallRating,
		},
		Assignments:   assigned,
		RecentReviews: recentReviews,
	}, nil
}

func averageRating(ctx context.Context, userID primitive.ObjectID, projectID *primitive.ObjectID) (*float64, error) {
	filter := bson.M{"userId": userID}
	if projectID != nil {
		filter["projectId"] = *projectID
	}

	cursor, err := database.ReviewCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.TaskReview
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, nil
	}

	sum := 0.0
	for _, review := range reviews {
		sum += review.Rating
	}
	avg := float64(int(sum/float64(len(reviews))*100+0.5)) / 100
	return &avg, nil
}

func recentReviews(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.TaskReviewSummary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := database.ReviewCollection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.TaskReview
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}

	summaries := []models.TaskReviewSummary{}
	for _, review := range reviews {
		projectName := ""
		if project, err := GetProject(ctx, review.ProjectID); err == nil {
			projectName = project.Name
		}
		summaries = append(summaries, models.TaskReviewSummary{
			ID:          review.ID.Hex(),
			ProjectID:   review.ProjectID.Hex(),
			ProjectName: projectName,
			Rating:      review.Rating,
			Comment:     review.Comment,
			CreatedAt:   review.CreatedAt,
		})
	}
	return summaries, nil
}
