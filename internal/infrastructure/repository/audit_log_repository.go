package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	"github.com/Hiro-mackay/avatar-face/internal/domain/repository"
	"github.com/Hiro-mackay/avatar-face/internal/infrastructure/database"
	"github.com/Hiro-mackay/avatar-face/internal/infrastructure/database/sqlcgen"
)

// AuditLogRepository は監査ログリポジトリの実装です
type AuditLogRepository struct {
	*database.BaseRepository
}

// NewAuditLogRepository は新しいAuditLogRepositoryを作成します
func NewAuditLogRepository(txManager *database.TxManager) *AuditLogRepository {
	return &AuditLogRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// Create は監査ログを作成します
func (r *AuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	querier := r.Querier(ctx)
	queries := sqlcgen.New(querier)

	var details []byte
	if log.Details != nil {
		var err error
		details, err = json.Marshal(log.Details)
		if err != nil {
			return fmt.Errorf("failed to encode audit details: %w", err)
		}
	}

	err := queries.CreateAuditLog(ctx, sqlcgen.CreateAuditLogParams{
		ID:           log.ID,
		UserID:       uuidToPgtype(log.UserID),
		Action:       string(log.Action),
		ResourceType: string(log.ResourceType),
		ResourceID:   uuidToPgtype(log.ResourceID),
		Details:      details,
		IpAddress:    nullIfEmpty(log.IPAddress),
		UserAgent:    nullIfEmpty(log.UserAgent),
		RequestID:    nullIfEmpty(log.RequestID),
		CreatedAt:    log.CreatedAt,
	})

	return r.HandleError(err, "audit log")
}

// ListByResource はリソース単位で監査ログを取得します
func (r *AuditLogRepository) ListByResource(ctx context.Context, resourceType entity.AuditResourceType, resourceID uuid.UUID, limit int) ([]*entity.AuditLog, error) {
	querier := r.Querier(ctx)
	queries := sqlcgen.New(querier)

	rows, err := queries.ListAuditLogsByResource(ctx, sqlcgen.ListAuditLogsByResourceParams{
		ResourceType: string(resourceType),
		ResourceID:   pgtype.UUID{Bytes: resourceID, Valid: true},
		LimitVal:     int32(limit),
	})
	if err != nil {
		return nil, r.HandleError(err, "audit log")
	}

	logs := make([]*entity.AuditLog, 0, len(rows))
	for _, row := range rows {
		log, err := r.toEntity(row)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, nil
}

// toEntity はsqlcgen.AuditLogをentity.AuditLogに変換します
func (r *AuditLogRepository) toEntity(row sqlcgen.AuditLog) (*entity.AuditLog, error) {
	var details map[string]interface{}
	if len(row.Details) > 0 {
		if err := json.Unmarshal(row.Details, &details); err != nil {
			return nil, fmt.Errorf("failed to decode audit details: %w", err)
		}
	}

	return &entity.AuditLog{
		ID:           row.ID,
		UserID:       pgtypeToUUID(row.UserID),
		Action:       entity.AuditAction(row.Action),
		ResourceType: entity.AuditResourceType(row.ResourceType),
		ResourceID:   pgtypeToUUID(row.ResourceID),
		Details:      details,
		IPAddress:    derefString(row.IpAddress),
		UserAgent:    derefString(row.UserAgent),
		RequestID:    derefString(row.RequestID),
		CreatedAt:    row.CreatedAt,
	}, nil
}

// uuidToPgtype はuuid.UUIDをpgtype.UUIDに変換します
func uuidToPgtype(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

// pgtypeToUUID はpgtype.UUIDを*uuid.UUIDに変換します
func pgtypeToUUID(pg pgtype.UUID) *uuid.UUID {
	if !pg.Valid {
		return nil
	}
	id := uuid.UUID(pg.Bytes)
	return &id
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// インターフェースの実装を保証
var _ repository.AuditLogRepository = (*AuditLogRepository)(nil)
