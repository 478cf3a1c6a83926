package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// สถานะของ import batch
const (
	BatchPending   = "PENDING"
	BatchCompleted = "COMPLETED"
	BatchFailed    = "FAILED"
)

// --- ImportBatch ---
// ชุดข้อมูลที่ admin import เข้า project รอ worker แปลงเป็น task
type ImportBatch struct {
	ID           string                   `bson:"_id" json:"batch_id"`
	ProjectID    primitive.ObjectID       `bson:"projectId" json:"project_id"`
	OriginalFile string                   `bson:"originalFile,omitempty" json:"original_file,omitempty"`
	RowCount     int                      `bson:"rowCount" json:"row_count"`
	Status       string                   `bson:"status" json:"status"`
	Error        string                   `bson:"error,omitempty" json:"error,omitempty"`
	Schema       []TemplateField          `bson:"schema,omitempty" json:"schema,omitempty"`
	Rows         []map[string]interface{} `bson:"rows,omitempty" json:"-"`
	CreatedAt    time.Time                `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time                `bson:"updatedAt" json:"updated_at"`
}

// ImportPreviewRequest ขอดูตัวอย่างข้อมูลก่อนยืนยัน import
type ImportPreviewRequest struct {
	ProjectID string                   `json:"project_id" validate:"required"`
	Rows      []map[string]interface{} `json:"rows" validate:"required,min=1"`
}

// ImportPreviewResponse ตอบ schema ที่ infer ได้ + แถวตัวอย่าง + conflict
type ImportPreviewResponse struct {
	Schema      []TemplateField          `json:"schema"`
	PreviewRows []map[string]interface{} `json:"preview_rows"`
	RowCount    int                      `json:"row_count"`
	Conflicts   []string                 `json:"conflicts"`
}

// ImportConfirmRequest ยืนยัน import ชุดข้อมูลเข้า project
type ImportConfirmRequest struct {
	ProjectID    string                   `json:"project_id" validate:"required"`
	OriginalFile string                   `json:"original_file"`
	Rows         []map[string]interface{} `json:"rows" validate:"required,min=1"`
}

// ImportConfirmResponse ตอบ batch ที่สร้างและสถานะการประมวลผล
type ImportConfirmResponse struct {
	BatchID  string `json:"batch_id"`
	Status   string `json:"status"`
	RowCount int    `json:"row_count"`
}
