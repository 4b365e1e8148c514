package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/launchforge/launchwizard-backend/internal/logger"
  "github.com/launchforge/launchwizard-backend/internal/types"
)

type BadgeRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.Badge) error
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Badge, error)
  DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type badgeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewBadgeRepo(db *gorm.DB, baseLog *logger.Logger) BadgeRepo {
  repoLog := baseLog.With("repo", "BadgeRepo")
  return &badgeRepo{db: db, log: repoLog}
}

func (r *badgeRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Badge) error {
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

func (r *badgeRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Badge, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Badge
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("unlocked_at asc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *badgeRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if userID == uuid.Nil {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Delete(&types.Badge{}).Error; err != nil {
    return err
  }
  return nil
}
