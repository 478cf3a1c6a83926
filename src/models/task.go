package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStatus คือสถานะของ task ใน workflow annotate → QC
type TaskStatus string

const (
	TaskStatusNew        TaskStatus = "NEW"
	TaskStatusSubmitted  TaskStatus = "submitted" // พร้อมเข้า QC
	TaskStatusQCPending  TaskStatus = "qc_pending"
	TaskStatusQCRejected TaskStatus = "qc_rejected"
	TaskStatusQCAccepted TaskStatus = "qc_accepted"
	TaskStatusRework     TaskStatus = "rework"
	TaskStatusDiscarded  TaskStatus = "discarded"
)

// --- ProjectTask ---
// หนึ่งแถวข้อมูลที่ template ถูก render ทับตอน perform
type ProjectTask struct {
	ID           primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	ProjectID    primitive.ObjectID     `bson:"projectId" json:"projectId"`
	TaskID       string                 `bson:"taskId" json:"taskId"`
	TaskName     string                 `bson:"taskName,omitempty" json:"taskName,omitempty"`
	FileName     string                 `bson:"fileName,omitempty" json:"fileName,omitempty"`
	Payload      map[string]interface{} `bson:"payload,omitempty" json:"payload,omitempty"`
	Status       TaskStatus             `bson:"status" json:"status"`
	RejectReason string                 `bson:"rejectReason,omitempty" json:"rejectReason,omitempty"`
	AssignedTo   *primitive.ObjectID    `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	BatchID      string                 `bson:"batchId,omitempty" json:"batchId,omitempty"`
	CreatedAt    time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// TemplateTask is the wire view of a task inside a template task feed page.
type TemplateTask struct {
	ID        string                 `json:"id"`
	ProjectID string                 `json:"project_id"`
	TaskID    string                 `json:"task_id,omitempty"`
	TaskName  string                 `json:"task_name,omitempty"`
	FileName  string                 `json:"file_name,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Status    string                 `json:"status,omitempty"`
	CreatedAt *time.Time             `json:"created_at,omitempty"`
}

// Record builds the lookup record rules resolve against: the raw payload
// nested under "payload" plus the flat fields promoted out of it.
func (t *TemplateTask) Record() map[string]interface{} {
	record := map[string]interface{}{
		"task_id":   t.TaskID,
		"task_name": t.TaskName,
		"file_name": t.FileName,
	}
	if t.Payload != nil {
		record["payload"] = t.Payload
	}
	return record
}

// TemplateTasksResponse คือหนึ่งหน้าของ task feed ที่ player ดึงไป render
type TemplateTasksResponse struct {
	Template *Template       `json:"template"`
	Schema   []TemplateField `json:"schema"`
	Tasks    []TemplateTask  `json:"tasks"`
	Total    int64           `json:"total"`
	Limit    int             `json:"limit"`
	Offset   int             `json:"offset"`
}
