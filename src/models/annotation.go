package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnnotationStatus ของ submission ที่เก็บลงฐานข้อมูล
const (
	AnnotationCompleted = "completed"
	AnnotationDiscarded = "discarded"
)

// --- TaskAnnotation ---
// คำตอบทั้งชุดของ task เดียวจาก annotator หนึ่งคน
type TaskAnnotation struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	TaskID      string                 `bson:"taskId" json:"task_id"`
	UserID      primitive.ObjectID     `bson:"userId" json:"user_id"`
	ProjectID   primitive.ObjectID     `bson:"projectId" json:"project_id"`
	TemplateID  string                 `bson:"templateId" json:"template_id"`
	Annotations map[string]interface{} `bson:"annotations" json:"annotations"`
	Status      string                 `bson:"status" json:"status"`
	SubmittedAt time.Time              `bson:"submittedAt" json:"submitted_at"`
}

// AnnotationCreate รับจาก player ตอน submit หรือ discard task
type AnnotationCreate struct {
	TaskID      string                 `json:"task_id" validate:"required"`
	ProjectID   string                 `json:"project_id" validate:"required"`
	TemplateID  string                 `json:"template_id" validate:"required"`
	Annotations map[string]interface{} `json:"annotations"`
	Discarded   bool                   `json:"discarded,omitempty"`
}
