package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction は監査ログのアクション種別を定義します
// アップロード試行そのものは UploadLog に記録します
type AuditAction string

const (
	AuditActionFaceRemove    AuditAction = "face.remove"
	AuditActionFaceModerate  AuditAction = "face.moderate"
	AuditActionFaceReconcile AuditAction = "face.reconcile"
)

// AuditResourceType はリソースの種類を定義します
type AuditResourceType string

const (
	AuditResourceFaceProfile AuditResourceType = "face_profile"
	AuditResourceUploadLog   AuditResourceType = "upload_log"
)

// AuditLog は監査ログエントリを表します
type AuditLog struct {
	ID           uuid.UUID
	UserID       *uuid.UUID
	Action       AuditAction
	ResourceType AuditResourceType
	ResourceID   *uuid.UUID
	Details      map[string]interface{}
	IPAddress    string
	UserAgent    string
	RequestID    string
	CreatedAt    time.Time
}
