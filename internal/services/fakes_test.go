package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/launchforge/launchwizard-backend/internal/logger"
	"github.com/launchforge/launchwizard-backend/internal/types"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return log
}

// fakeProgressRepo keeps one row per user in memory. Setting err makes every
// method fail, for exercising the degraded read paths.
type fakeProgressRepo struct {
	rows    map[uuid.UUID]*types.WizardProgress
	err     error
	upserts int
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{rows: map[uuid.UUID]*types.WizardProgress{}}
}

func (f *fakeProgressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.WizardProgress, error) {
	if f.err != nil {
		return nil, f.err
	}
	row, ok := f.rows[userID]
	if !ok {
		return nil, nil
	}
	clone := *row
	return &clone, nil
}

func (f *fakeProgressRepo) Create(ctx context.Context, tx *gorm.DB, row *types.WizardProgress) error {
	if f.err != nil {
		return f.err
	}
	f.rows[row.UserID] = row
	return nil
}

func (f *fakeProgressRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.WizardProgress) error {
	if f.err != nil {
		return f.err
	}
	f.upserts++
	f.rows[row.UserID] = row
	return nil
}

func (f *fakeProgressRepo) UpdateFields(ctx context.Context, tx *gorm.DB, userID uuid.UUID, fields map[string]interface{}) error {
	if f.err != nil {
		return f.err
	}
	row, ok := f.rows[userID]
	if !ok {
		return nil
	}
	if v, ok := fields["main_wizard_step"]; ok {
		row.MainWizardStep = v.(types.MainWizardStep)
	}
	if v, ok := fields["current_mini_wizard"]; ok {
		row.CurrentMiniWizard = v.(types.MiniWizardID)
	}
	return nil
}

type fakeLockRepo struct {
	rows   map[uuid.UUID]*types.FeatureLockState
	err    error
	writes int
}

func newFakeLockRepo() *fakeLockRepo {
	return &fakeLockRepo{rows: map[uuid.UUID]*types.FeatureLockState{}}
}

func (f *fakeLockRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.FeatureLockState, error) {
	if f.err != nil {
		return nil, f.err
	}
	row, ok := f.rows[userID]
	if !ok {
		return nil, nil
	}
	clone := *row
	return &clone, nil
}

func (f *fakeLockRepo) Create(ctx context.Context, tx *gorm.DB, row *types.FeatureLockState) error {
	if f.err != nil {
		return f.err
	}
	f.writes++
	f.rows[row.UserID] = row
	return nil
}

func (f *fakeLockRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.FeatureLockState) error {
	if f.err != nil {
		return f.err
	}
	f.writes++
	f.rows[row.UserID] = row
	return nil
}

func (f *fakeLockRepo) UpdateFields(ctx context.Context, tx *gorm.DB, userID uuid.UUID, fields map[string]interface{}) error {
	if f.err != nil {
		return f.err
	}
	row, ok := f.rows[userID]
	if !ok {
		return nil
	}
	f.writes++
	if v, ok := fields["unlocked_features"]; ok {
		row.UnlockedFeatures = v.(datatypes.JSONSlice[types.MiniWizardID])
	}
	if v, ok := fields["locked_status"]; ok {
		row.LockedStatus = v.(datatypes.JSONType[map[types.MiniWizardID]bool])
	}
	if v, ok := fields["next_unlock_threshold"]; ok {
		row.NextUnlockThreshold = v.(*int)
	}
	return nil
}

type fakeProfileRepo struct {
	rows map[uuid.UUID]*types.RewardProfile
	err  error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{rows: map[uuid.UUID]*types.RewardProfile{}}
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.RewardProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	row, ok := f.rows[userID]
	if !ok {
		return nil, nil
	}
	clone := *row
	return &clone, nil
}

func (f *fakeProfileRepo) Create(ctx context.Context, tx *gorm.DB, row *types.RewardProfile) error {
	if f.err != nil {
		return f.err
	}
	f.rows[row.UserID] = row
	return nil
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.RewardProfile) error {
	if f.err != nil {
		return f.err
	}
	f.rows[row.UserID] = row
	return nil
}

func (f *fakeProfileRepo) UpdateFields(ctx context.Context, tx *gorm.DB, userID uuid.UUID, fields map[string]interface{}) error {
	if f.err != nil {
		return f.err
	}
	row, ok := f.rows[userID]
	if !ok {
		return nil
	}
	if v, ok := fields["total_xp"]; ok {
		row.TotalXP = v.(int)
	}
	if v, ok := fields["streaks"]; ok {
		row.Streaks = v.(int)
	}
	if v, ok := fields["last_updated_at"]; ok {
		at := v.(time.Time)
		row.LastUpdatedAt = &at
	}
	return nil
}

type fakeXPEventRepo struct {
	rows map[uuid.UUID][]*types.XPEvent
	err  error
}

func newFakeXPEventRepo() *fakeXPEventRepo {
	return &fakeXPEventRepo{rows: map[uuid.UUID][]*types.XPEvent{}}
}

func (f *fakeXPEventRepo) Create(ctx context.Context, tx *gorm.DB, row *types.XPEvent) error {
	if f.err != nil {
		return f.err
	}
	f.rows[row.UserID] = append(f.rows[row.UserID], row)
	return nil
}

func (f *fakeXPEventRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.XPEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[userID], nil
}

func (f *fakeXPEventRepo) SumXPByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	total := 0
	for _, event := range f.rows[userID] {
		total += event.XP
	}
	return total, nil
}

func (f *fakeXPEventRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	delete(f.rows, userID)
	return nil
}

type fakeAchievementRepo struct {
	rows map[uuid.UUID][]*types.Achievement
	err  error
}

func newFakeAchievementRepo() *fakeAchievementRepo {
	return &fakeAchievementRepo{rows: map[uuid.UUID][]*types.Achievement{}}
}

func (f *fakeAchievementRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Achievement) error {
	if f.err != nil {
		return f.err
	}
	f.rows[row.UserID] = append(f.rows[row.UserID], row)
	return nil
}

func (f *fakeAchievementRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Achievement, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[userID], nil
}

func (f *fakeAchievementRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	delete(f.rows, userID)
	return nil
}

type fakeBadgeRepo struct {
	rows map[uuid.UUID][]*types.Badge
	err  error
}

func newFakeBadgeRepo() *fakeBadgeRepo {
	return &fakeBadgeRepo{rows: map[uuid.UUID][]*types.Badge{}}
}

func (f *fakeBadgeRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Badge) error {
	if f.err != nil {
		return f.err
	}
	f.rows[row.UserID] = append(f.rows[row.UserID], row)
	return nil
}

func (f *fakeBadgeRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Badge, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[userID], nil
}

func (f *fakeBadgeRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	delete(f.rows, userID)
	return nil
}
