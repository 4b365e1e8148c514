package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/launchforge/launchwizard-backend/internal/logger"
	"github.com/launchforge/launchwizard-backend/internal/repos"
	"github.com/launchforge/launchwizard-backend/internal/types"
)

// XPHistoryItem is the input for an XP grant that also refreshes the cached
// total on the reward profile.
type XPHistoryItem struct {
	Amount    int
	Step      types.MiniWizardID
	Timestamp time.Time
}

// RewardsService owns the durable, append-only record of XP grants,
// achievements, badges, and engagement streaks. Total XP is always derived
// from the summed event table; the profile's total_xp column is a cache.
type RewardsService interface {
	GetRewards(ctx context.Context, userID uuid.UUID) *types.Rewards
	InitializeRewards(ctx context.Context, userID uuid.UUID) error
	AddXPHistoryEntry(ctx context.Context, userID uuid.UUID, step types.MiniWizardID, xp int) error
	AddXPHistoryItem(ctx context.Context, userID uuid.UUID, item XPHistoryItem) error
	TotalXP(ctx context.Context, userID uuid.UUID) (int, error)
	AddAchievement(ctx context.Context, userID uuid.UUID, achievementType types.AchievementType, title, description string, xpAwarded int) error
	AddBadge(ctx context.Context, userID uuid.UUID, badgeType types.BadgeType, title, description, imageURL string) error
	IncrementStreak(ctx context.Context, userID uuid.UUID) (int, error)
	ResetStreak(ctx context.Context, userID uuid.UUID) error
}

type rewardsService struct {
	db              *gorm.DB
	log             *logger.Logger
	profileRepo     repos.RewardProfileRepo
	xpEventRepo     repos.XPEventRepo
	achievementRepo repos.AchievementRepo
	badgeRepo       repos.BadgeRepo
}

func NewRewardsService(
	db *gorm.DB,
	log *logger.Logger,
	profileRepo repos.RewardProfileRepo,
	xpEventRepo repos.XPEventRepo,
	achievementRepo repos.AchievementRepo,
	badgeRepo repos.BadgeRepo,
) RewardsService {
	serviceLog := log.With("service", "RewardsService")
	return &rewardsService{
		db:              db,
		log:             serviceLog,
		profileRepo:     profileRepo,
		xpEventRepo:     xpEventRepo,
		achievementRepo: achievementRepo,
		badgeRepo:       badgeRepo,
	}
}

func (rs *rewardsService) GetRewards(ctx context.Context, userID uuid.UUID) *types.Rewards {
	degraded := func(err error) *types.Rewards {
		rs.log.Warn("Failed to read rewards, returning default", "user_id", userID, "error", err)
		return types.DefaultRewards()
	}

	profile, err := rs.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return degraded(err)
	}
	events, err := rs.xpEventRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return degraded(err)
	}
	achievements, err := rs.achievementRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return degraded(err)
	}
	badges, err := rs.badgeRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return degraded(err)
	}

	rewards := types.DefaultRewards()
	if profile != nil {
		rewards.Streaks = profile.Streaks
	}
	for _, event := range events {
		rewards.XPHistory = append(rewards.XPHistory, types.XPHistoryEntry{
			Step:      event.Step,
			XP:        event.XP,
			Timestamp: event.Timestamp,
		})
		rewards.TotalXP += event.XP
	}
	for _, achievement := range achievements {
		rewards.Achievements = append(rewards.Achievements, *achievement)
	}
	for _, badge := range badges {
		rewards.Badges = append(rewards.Badges, *badge)
	}
	rewards.Level = types.CalculateLevel(rewards.TotalXP)
	return rewards
}

// InitializeRewards resets the whole ledger to defaults: profile counters,
// XP history, achievements, and badges.
func (rs *rewardsService) InitializeRewards(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("user id required")
	}
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rs.xpEventRepo.DeleteByUserID(ctx, tx, userID); err != nil {
			return err
		}
		if err := rs.achievementRepo.DeleteByUserID(ctx, tx, userID); err != nil {
			return err
		}
		if err := rs.badgeRepo.DeleteByUserID(ctx, tx, userID); err != nil {
			return err
		}
		return rs.profileRepo.Upsert(ctx, tx, types.DefaultRewardProfile(userID))
	})
	if err != nil {
		rs.log.Error("Failed to initialize rewards", "user_id", userID, "error", err)
		return fmt.Errorf("initialize rewards: %w", err)
	}
	return nil
}

// AddXPHistoryEntry appends a single grant and leaves the cached total alone.
func (rs *rewardsService) AddXPHistoryEntry(ctx context.Context, userID uuid.UUID, step types.MiniWizardID, xp int) error {
	if userID == uuid.Nil {
		return fmt.Errorf("user id required")
	}
	event := &types.XPEvent{
		UserID:    userID,
		Step:      step,
		XP:        xp,
		Timestamp: time.Now().UTC(),
	}
	if err := rs.xpEventRepo.Create(ctx, nil, event); err != nil {
		return fmt.Errorf("append xp event: %w", err)
	}
	return nil
}

// AddXPHistoryItem appends a grant and refreshes the denormalized total_xp on
// the profile (sum of history before the append, plus the new amount).
func (rs *rewardsService) AddXPHistoryItem(ctx context.Context, userID uuid.UUID, item XPHistoryItem) error {
	if userID == uuid.Nil {
		return fmt.Errorf("user id required")
	}

	previousTotal, err := rs.xpEventRepo.SumXPByUserID(ctx, nil, userID)
	if err != nil {
		return fmt.Errorf("sum xp history: %w", err)
	}
	newTotal := previousTotal + item.Amount

	timestamp := item.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}
	event := &types.XPEvent{
		UserID:    userID,
		Step:      item.Step,
		XP:        item.Amount,
		Timestamp: timestamp,
	}
	if err := rs.xpEventRepo.Create(ctx, nil, event); err != nil {
		return fmt.Errorf("append xp event: %w", err)
	}

	now := time.Now().UTC()
	profile, err := rs.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return fmt.Errorf("read reward profile: %w", err)
	}
	if profile == nil {
		seeded := types.DefaultRewardProfile(userID)
		seeded.TotalXP = newTotal
		seeded.LastUpdatedAt = &now
		if err := rs.profileRepo.Create(ctx, nil, seeded); err != nil {
			return fmt.Errorf("create reward profile: %w", err)
		}
	} else {
		fields := map[string]interface{}{
			"total_xp":        newTotal,
			"last_updated_at": now,
		}
		if err := rs.profileRepo.UpdateFields(ctx, nil, userID, fields); err != nil {
			return fmt.Errorf("update reward profile: %w", err)
		}
	}

	rs.log.Info("XP granted", "user_id", userID, "step", item.Step, "amount", item.Amount, "total_xp", newTotal)
	return nil
}

func (rs *rewardsService) TotalXP(ctx context.Context, userID uuid.UUID) (int, error) {
	total, err := rs.xpEventRepo.SumXPByUserID(ctx, nil, userID)
	if err != nil {
		return 0, fmt.Errorf("sum xp history: %w", err)
	}
	return total, nil
}

func (rs *rewardsService) AddAchievement(ctx context.Context, userID uuid.UUID, achievementType types.AchievementType, title, description string, xpAwarded int) error {
	if userID == uuid.Nil {
		return fmt.Errorf("user id required")
	}
	now := time.Now().UTC()
	achievement := &types.Achievement{
		UserID:      userID,
		AwardID:     types.AwardID(string(achievementType), now),
		Type:        achievementType,
		Title:       title,
		Description: description,
		XPAwarded:   xpAwarded,
		UnlockedAt:  now,
	}
	if err := rs.achievementRepo.Create(ctx, nil, achievement); err != nil {
		return fmt.Errorf("append achievement: %w", err)
	}
	return nil
}

func (rs *rewardsService) AddBadge(ctx context.Context, userID uuid.UUID, badgeType types.BadgeType, title, description, imageURL string) error {
	if userID == uuid.Nil {
		return fmt.Errorf("user id required")
	}
	now := time.Now().UTC()
	badge := &types.Badge{
		UserID:      userID,
		AwardID:     types.AwardID(string(badgeType), now),
		Type:        badgeType,
		Title:       title,
		Description: description,
		ImageURL:    imageURL,
		UnlockedAt:  now,
	}
	if err := rs.badgeRepo.Create(ctx, nil, badge); err != nil {
		return fmt.Errorf("append badge: %w", err)
	}
	return nil
}

// IncrementStreak treats a missing profile as a streak of one. The
// read-then-write is not atomic; streak bumps are low-frequency and
// user-scoped.
func (rs *rewardsService) IncrementStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, fmt.Errorf("user id required")
	}
	profile, err := rs.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return 0, fmt.Errorf("read reward profile: %w", err)
	}
	if profile == nil {
		seeded := types.DefaultRewardProfile(userID)
		seeded.Streaks = 1
		if err := rs.profileRepo.Create(ctx, nil, seeded); err != nil {
			return 0, fmt.Errorf("create reward profile: %w", err)
		}
		return 1, nil
	}
	newStreak := profile.Streaks + 1
	if err := rs.profileRepo.UpdateFields(ctx, nil, userID, map[string]interface{}{"streaks": newStreak}); err != nil {
		return 0, fmt.Errorf("update streak: %w", err)
	}
	return newStreak, nil
}

func (rs *rewardsService) ResetStreak(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("user id required")
	}
	profile, err := rs.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return fmt.Errorf("read reward profile: %w", err)
	}
	if profile == nil {
		return rs.profileRepo.Create(ctx, nil, types.DefaultRewardProfile(userID))
	}
	if err := rs.profileRepo.UpdateFields(ctx, nil, userID, map[string]interface{}{"streaks": 0}); err != nil {
		return fmt.Errorf("reset streak: %w", err)
	}
	return nil
}
