package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Template ---
// Template คือ layout + rules ที่ผูกกับ project เดียว สร้างโดย builder
// และถูกอ่านอย่างเดียวโดย player
type Template struct {
	ID        string             `bson:"_id" json:"id"`
	ProjectID primitive.ObjectID `bson:"projectId" json:"project_id"`
	Name      string             `bson:"name" json:"name"`
	Layout    []Block            `bson:"layout" json:"layout"`
	Rules     []Rule             `bson:"rules" json:"rules"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
	CreatedBy *primitive.ObjectID `bson:"createdBy,omitempty" json:"created_by,omitempty"`
}

// TemplateCreateRequest รับจาก builder ตอน save template
type TemplateCreateRequest struct {
	ProjectID string  `json:"project_id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Layout    []Block `json:"layout" validate:"required,min=1"`
	Rules     []Rule  `json:"rules"`
}

// TemplateField describes one bindable field of a data source.
type TemplateField struct {
	Key    string  `bson:"key" json:"key"`
	Label  string  `bson:"label" json:"label"`
	Dtype  string  `bson:"dtype,omitempty" json:"dtype,omitempty"`
	Sample *string `bson:"sample,omitempty" json:"sample,omitempty"`
}

// TemplateSourceSummary สรุป batch ที่ import ไว้ให้เลือกเป็น data source
type TemplateSourceSummary struct {
	BatchID      string          `json:"batch_id"`
	OriginalFile string          `json:"original_file,omitempty"`
	RowCount     int             `json:"row_count"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	Schema       []TemplateField `json:"schema,omitempty"`
}

// TemplateSourceDetail adds the sample rows used by the rule picker.
type TemplateSourceDetail struct {
	TemplateSourceSummary
	PreviewRows []map[string]interface{} `json:"preview_rows"`
}

// ProjectTemplateSourceSummary สรุป project ที่มี task ให้ผูก template ได้
type ProjectTemplateSourceSummary struct {
	ProjectID    string     `json:"project_id"`
	ProjectName  string     `json:"project_name"`
	Status       string     `json:"status,omitempty"`
	TotalTasks   int64      `json:"total_tasks"`
	LatestTaskAt *time.Time `json:"latest_task_at,omitempty"`
	SampleFields []string   `json:"sample_fields"`
}

type ProjectTemplateSourceDetail struct {
	ProjectTemplateSourceSummary
	Schema      []TemplateField          `json:"schema"`
	PreviewRows []map[string]interface{} `json:"preview_rows"`
}

// TemplateExport is the client-side download format: a plain dump of the
// layout document, not a versioned schema.
type TemplateExport struct {
	Blocks []Block `json:"blocks"`
	Rules  []Rule  `json:"rules"`
}
