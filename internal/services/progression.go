package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/launchforge/launchwizard-backend/internal/logger"
	"github.com/launchforge/launchwizard-backend/internal/types"
)

// ProgressionService runs the full completion flow: record the completed
// mini-wizard, append the XP grant, recompute the total, re-evaluate the
// feature gate against it, and hand back the newly unlocked wizards for the
// client's celebration screen.
//
// The three writes are not covered by a single transaction; each user drives
// their own wizard, and the XP append itself is a single atomic insert.
type ProgressionService interface {
	CompleteMiniWizard(ctx context.Context, userID uuid.UUID, miniWizardID types.MiniWizardID) *types.CompleteMiniWizardResult
}

type progressionService struct {
	db              *gorm.DB
	log             *logger.Logger
	progressService ProgressService
	rewardsService  RewardsService
	lockService     FeatureLockService
}

func NewProgressionService(
	db *gorm.DB,
	log *logger.Logger,
	progressService ProgressService,
	rewardsService RewardsService,
	lockService FeatureLockService,
) ProgressionService {
	serviceLog := log.With("service", "ProgressionService")
	return &progressionService{
		db:              db,
		log:             serviceLog,
		progressService: progressService,
		rewardsService:  rewardsService,
		lockService:     lockService,
	}
}

func (gs *progressionService) CompleteMiniWizard(ctx context.Context, userID uuid.UUID, miniWizardID types.MiniWizardID) *types.CompleteMiniWizardResult {
	result := gs.progressService.CompleteMiniWizard(ctx, userID, miniWizardID)
	if !result.Success {
		return result
	}

	item := XPHistoryItem{
		Amount:    result.XPAwarded,
		Step:      miniWizardID,
		Timestamp: time.Now().UTC(),
	}
	if err := gs.rewardsService.AddXPHistoryItem(ctx, userID, item); err != nil {
		gs.log.Error("Failed to grant XP after completion", "user_id", userID, "mini_wizard", miniWizardID, "error", err)
		result.Success = false
		result.Error = err.Error()
		return result
	}

	totalXP, err := gs.rewardsService.TotalXP(ctx, userID)
	if err != nil {
		gs.log.Error("Failed to recompute total XP after completion", "user_id", userID, "error", err)
		result.Success = false
		result.Error = err.Error()
		return result
	}
	result.TotalXP = totalXP
	result.Level = types.CalculateLevel(totalXP)

	newlyUnlocked, err := gs.lockService.UpdateUnlockedFeatures(ctx, userID, totalXP)
	if err != nil {
		gs.log.Error("Failed to update feature locks after completion", "user_id", userID, "error", err)
		result.Success = false
		result.Error = err.Error()
		return result
	}
	result.NewlyUnlocked = newlyUnlocked

	return result
}
