package models

// ErrorResponse โครงสร้างมาตรฐานสำหรับการส่ง Error
type ErrorResponse struct {
	Status  int    `json:"status"`           // HTTP Status Code
	Message string `json:"message"`          // รายละเอียดของ Error
	Detail  string `json:"detail,omitempty"` // ข้อความจากชั้นใน ถ้ามี
}
