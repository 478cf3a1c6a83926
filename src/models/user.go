package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role ของผู้ใช้ในระบบ
const (
	RoleAdmin     = "admin"
	RoleReviewer  = "reviewer"
	RoleAnnotator = "annotator"
)

// --- User ---
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password,omitempty" json:"-"` // ✅ ส่งมาได้จาก frontend, แต่ไม่ส่งกลับ
	Role     string             `bson:"role" json:"role"`
}

// UserCreateRequest สำหรับ admin สร้างผู้ใช้ใหม่
type UserCreateRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin reviewer annotator"`
}

// UserSummary ใช้ในหน้า admin list users
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
