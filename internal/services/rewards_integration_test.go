package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/launchforge/launchwizard-backend/internal/repos"
	"github.com/launchforge/launchwizard-backend/internal/types"
)

func openRewardsTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	ddl := []string{
		`CREATE TABLE reward_profile (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL UNIQUE,
			total_xp INTEGER NOT NULL DEFAULT 0,
			streaks INTEGER NOT NULL DEFAULT 0,
			last_updated_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE xp_event (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			step TEXT NOT NULL,
			xp INTEGER NOT NULL,
			timestamp DATETIME NOT NULL,
			created_at DATETIME
		)`,
		`CREATE TABLE achievement (
			user_id TEXT NOT NULL,
			award_id TEXT NOT NULL,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			xp_awarded INTEGER NOT NULL DEFAULT 0,
			unlocked_at DATETIME NOT NULL,
			PRIMARY KEY (user_id, award_id)
		)`,
		`CREATE TABLE badge (
			user_id TEXT NOT NULL,
			award_id TEXT NOT NULL,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			image_url TEXT,
			unlocked_at DATETIME NOT NULL,
			PRIMARY KEY (user_id, award_id)
		)`,
	}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

func TestInitializeRewardsResetsLedger(t *testing.T) {
	db := openRewardsTestDB(t)
	log := newTestLogger(t)
	profileRepo := repos.NewRewardProfileRepo(db, log)
	eventRepo := repos.NewXPEventRepo(db, log)
	achievementRepo := repos.NewAchievementRepo(db, log)
	badgeRepo := repos.NewBadgeRepo(db, log)
	service := NewRewardsService(db, log, profileRepo, eventRepo, achievementRepo, badgeRepo)
	ctx := context.Background()
	userID := uuid.New()

	now := time.Now().UTC().Truncate(time.Second)
	event := &types.XPEvent{
		ID:        uuid.New(),
		UserID:    userID,
		Step:      types.MiniWizardCreateProduct,
		XP:        50,
		Timestamp: now,
	}
	require.NoError(t, eventRepo.Create(ctx, nil, event))
	achievement := &types.Achievement{
		UserID:     userID,
		AwardID:    types.AwardID(string(types.AchievementLevelUp), now),
		Type:       types.AchievementLevelUp,
		Title:      "Level 2",
		UnlockedAt: now,
	}
	require.NoError(t, achievementRepo.Create(ctx, nil, achievement))
	profile := types.DefaultRewardProfile(userID)
	profile.ID = uuid.New()
	profile.TotalXP = 50
	profile.Streaks = 3
	require.NoError(t, profileRepo.Create(ctx, nil, profile))

	require.NoError(t, service.InitializeRewards(ctx, userID))

	rewards := service.GetRewards(ctx, userID)
	require.Equal(t, 0, rewards.TotalXP)
	require.Equal(t, 0, rewards.Streaks)
	require.Empty(t, rewards.XPHistory)
	require.Empty(t, rewards.Achievements)
	require.Empty(t, rewards.Badges)
}

func TestInitializeRewardsRequiresUser(t *testing.T) {
	db := openRewardsTestDB(t)
	service := NewRewardsService(db, newTestLogger(t), repos.NewRewardProfileRepo(db, newTestLogger(t)), repos.NewXPEventRepo(db, newTestLogger(t)), repos.NewAchievementRepo(db, newTestLogger(t)), repos.NewBadgeRepo(db, newTestLogger(t)))
	if err := service.InitializeRewards(context.Background(), uuid.Nil); err == nil {
		t.Fatal("nil user id must be rejected")
	}
}
