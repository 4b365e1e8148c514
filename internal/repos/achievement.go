package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/launchforge/launchwizard-backend/internal/logger"
  "github.com/launchforge/launchwizard-backend/internal/types"
)

type AchievementRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.Achievement) error
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Achievement, error)
  DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type achievementRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAchievementRepo(db *gorm.DB, baseLog *logger.Logger) AchievementRepo {
  repoLog := baseLog.With("repo", "AchievementRepo")
  return &achievementRepo{db: db, log: repoLog}
}

func (r *achievementRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Achievement) error {
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

func (r *achievementRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Achievement, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Achievement
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

func (r *achievementRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if userID == uuid.Nil {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Delete(&types.Achievement{}).Error; err != nil {
    return err
  }
  return nil
}
