package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/launchforge/launchwizard-backend/internal/logger"
  "github.com/launchforge/launchwizard-backend/internal/types"
)

// XPEventRepo is the append primitive of the XP ledger. Create inserts a
// single row, so two concurrent grants for the same user both land.
type XPEventRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.XPEvent) error
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.XPEvent, error)
  SumXPByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error)
  DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type xpEventRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewXPEventRepo(db *gorm.DB, baseLog *logger.Logger) XPEventRepo {
  repoLog := baseLog.With("repo", "XPEventRepo")
  return &xpEventRepo{db: db, log: repoLog}
}

func (r *xpEventRepo) Create(ctx context.Context, tx *gorm.DB, row *types.XPEvent) error {
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

func (r *xpEventRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.XPEvent, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.XPEvent
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("timestamp asc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *xpEventRepo) SumXPByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if userID == uuid.Nil {
    return 0, nil
  }

  var total int
  if err := transaction.WithContext(ctx).
    Model(&types.XPEvent{}).
    Where("user_id = ?", userID).
    Select("COALESCE(SUM(xp), 0)").
    Scan(&total).Error; err != nil {
    return 0, err
  }
  return total, nil
}

func (r *xpEventRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if userID == uuid.Nil {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Delete(&types.XPEvent{}).Error; err != nil {
    return err
  }
  return nil
}
