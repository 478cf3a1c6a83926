package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectStatus ของ project
const (
	ProjectActive    = "Active"
	ProjectRunning   = "Running"
	ProjectCompleted = "Completed"
)

// --- Project ---
type Project struct {
	ID                        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                      string             `bson:"name" json:"name"`
	Status                    string             `bson:"status" json:"status"`
	Description               string             `bson:"description,omitempty" json:"description,omitempty"`
	DataCategory              string             `bson:"dataCategory,omitempty" json:"data_category,omitempty"`
	ProjectType               string             `bson:"projectType,omitempty" json:"project_type,omitempty"`
	TaskType                  string             `bson:"taskType,omitempty" json:"task_type,omitempty"`
	DefaultAvgTaskTimeMinutes *int               `bson:"defaultAvgTaskTimeMinutes,omitempty" json:"default_avg_task_time_minutes,omitempty"`
	ReviewTimeMinutes         *int               `bson:"reviewTimeMinutes,omitempty" json:"review_time_minutes,omitempty"`
	MaxUsersPerTask           int                `bson:"maxUsersPerTask,omitempty" json:"max_users_per_task,omitempty"`
	AutoSubmitTask            bool               `bson:"autoSubmitTask" json:"auto_submit_task"`
	AllowReviewerEdit         bool               `bson:"allowReviewerEdit" json:"allow_reviewer_edit"`
	AllowReviewerPushBack     bool               `bson:"allowReviewerPushBack" json:"allow_reviewer_push_back"`
	AllowReviewerFeedback     bool               `bson:"allowReviewerFeedback" json:"allow_reviewer_feedback"`
	ReviewerGuidelines        string             `bson:"reviewerGuidelines,omitempty" json:"reviewer_guidelines,omitempty"`
	CreatedAt                 time.Time          `bson:"createdAt" json:"created_at"`
}

// ProjectCreateRequest สำหรับ admin สร้าง project ใหม่
type ProjectCreateRequest struct {
	Name                      string `json:"name" validate:"required"`
	Status                    string `json:"status"`
	Description               string `json:"description"`
	DataCategory              string `json:"data_category"`
	ProjectType               string `json:"project_type"`
	TaskType                  string `json:"task_type"`
	DefaultAvgTaskTimeMinutes *int   `json:"default_avg_task_time_minutes"`
	ReviewTimeMinutes         *int   `json:"review_time_minutes"`
	MaxUsersPerTask           int    `json:"max_users_per_task"`
	AutoSubmitTask            bool   `json:"auto_submit_task"`
	AllowReviewerEdit         bool   `json:"allow_reviewer_edit"`
	AllowReviewerPushBack     bool   `json:"allow_reviewer_push_back"`
	AllowReviewerFeedback     bool   `json:"allow_reviewer_feedback"`
	ReviewerGuidelines        string `json:"reviewer_guidelines"`
}

// ProjectSummary คือ project พร้อมยอดรวม task สำหรับหน้า admin
type ProjectSummary struct {
	Project
	TotalTasksAdded     int64 `json:"total_tasks_added"`
	TotalTasksCompleted int64 `json:"total_tasks_completed"`
}

// --- ProjectAssignment ---
// การมอบหมาย annotator หนึ่งคนเข้า project หนึ่งอัน
type ProjectAssignment struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID          primitive.ObjectID `bson:"projectId" json:"project_id"`
	UserID             primitive.ObjectID `bson:"userId" json:"user_id"`
	CompletedTasks     int                `bson:"completedTasks" json:"completed_tasks"`
	PendingTasks       int                `bson:"pendingTasks" json:"pending_tasks"`
	AvgTaskTimeMinutes *int               `bson:"avgTaskTimeMinutes,omitempty" json:"avg_task_time_minutes,omitempty"`
	Status             string             `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"created_at"`
}

// --- TaskReview ---
// คะแนนรีวิวงานของ annotator ต่อ project
type TaskReview struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID primitive.ObjectID `bson:"projectId" json:"project_id"`
	UserID    primitive.ObjectID `bson:"userId" json:"user_id"`
	Rating    float64            `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}

// AssignedProject คือหนึ่งแถวใน dashboard ของ annotator
type AssignedProject struct {
	AssignmentID     string   `json:"assignment_id"`
	ProjectID        string   `json:"project_id"`
	ProjectName      string   `json:"project_name"`
	AvgTaskTimeMins  *int     `json:"avg_task_time_minutes,omitempty"`
	AvgTaskTimeLabel string   `json:"avg_task_time_label,omitempty"`
	Rating           *float64 `json:"rating,omitempty"`
	CompletedTasks   int      `json:"completed_tasks"`
	PendingTasks     int      `json:"pending_tasks"`
	Status           string   `json:"status"`
	TemplateID       string   `json:"template_id,omitempty"`
}

type TaskReviewSummary struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	ProjectName string    `json:"project_name"`
	Rating      float64   `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type TasksStats struct {
	AssignedProjects int      `json:"assigned_projects"`
	TasksCompleted   int      `json:"tasks_completed"`
	TasksPending     int      `json:"tasks_pending"`
	AvgRating        *float64 `json:"avg_rating,omitempty"`
}

type TasksDashboardResponse struct {
	Stats         TasksStats          `json:"stats"`
	Assignments   []AssignedProject   `json:"assignments"`
	RecentReviews []TaskReviewSummary `json:"recent_reviews"`
}
