package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/launchforge/launchwizard-backend/internal/logger"
  "github.com/launchforge/launchwizard-backend/internal/types"
)

type FeatureLockRepo interface {
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.FeatureLockState, error)
  Create(ctx context.Context, tx *gorm.DB, row *types.FeatureLockState) error
  Upsert(ctx context.Context, tx *gorm.DB, row *types.FeatureLockState) error
  UpdateFields(ctx context.Context, tx *gorm.DB, userID uuid.UUID, fields map[string]interface{}) error
}

type featureLockRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewFeatureLockRepo(db *gorm.DB, baseLog *logger.Logger) FeatureLockRepo {
  repoLog := baseLog.With("repo", "FeatureLockRepo")
  return &featureLockRepo{db: db, log: repoLog}
}

func (r *featureLockRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.FeatureLockState, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.FeatureLockState
  if userID == uuid.Nil {
    return nil, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (r *featureLockRepo) Create(ctx context.Context, tx *gorm.DB, row *types.FeatureLockState) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }

  if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
    return err
  }
  return nil
}

func (r *featureLockRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.FeatureLockState) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }

  existing, err := r.GetByUserID(ctx, transaction, row.UserID)
  if err != nil {
    return err
  }
  if existing == nil {
    return transaction.WithContext(ctx).Create(row).Error
  }
  row.ID = existing.ID
  row.CreatedAt = existing.CreatedAt
  return transaction.WithContext(ctx).Save(row).Error
}

func (r *featureLockRepo) UpdateFields(ctx context.Context, tx *gorm.DB, userID uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if userID == uuid.Nil || len(fields) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.FeatureLockState{}).
    Where("user_id = ?", userID).
    Updates(fields).Error; err != nil {
    return err
  }
  return nil
}
