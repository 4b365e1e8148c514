package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/launchforge/launchwizard-backend/internal/logger"
	"github.com/launchforge/launchwizard-backend/internal/repos"
	"github.com/launchforge/launchwizard-backend/internal/types"
)

// FeatureLockService translates accumulated XP into unlock decisions.
type FeatureLockService interface {
	GetFeatureLocks(ctx context.Context, userID uuid.UUID) *types.FeatureLockState
	InitializeFeatureLocks(ctx context.Context, userID uuid.UUID) error
	IsFeatureUnlocked(ctx context.Context, userID uuid.UUID, miniWizardID types.MiniWizardID) bool
	UpdateUnlockedFeatures(ctx context.Context, userID uuid.UUID, currentXP int) ([]types.MiniWizardID, error)
}

type featureLockService struct {
	db       *gorm.DB
	log      *logger.Logger
	lockRepo repos.FeatureLockRepo
}

func NewFeatureLockService(db *gorm.DB, log *logger.Logger, lockRepo repos.FeatureLockRepo) FeatureLockService {
	serviceLog := log.With("service", "FeatureLockService")
	return &featureLockService{
		db:       db,
		log:      serviceLog,
		lockRepo: lockRepo,
	}
}

func (fs *featureLockService) GetFeatureLocks(ctx context.Context, userID uuid.UUID) *types.FeatureLockState {
	existing, err := fs.lockRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		fs.log.Warn("Failed to read feature locks, returning default", "user_id", userID, "error", err)
		return types.DefaultFeatureLockState(userID)
	}
	if existing == nil {
		return types.DefaultFeatureLockState(userID)
	}
	return existing
}

func (fs *featureLockService) InitializeFeatureLocks(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("user id required")
	}
	if err := fs.lockRepo.Upsert(ctx, nil, types.DefaultFeatureLockState(userID)); err != nil {
		fs.log.Error("Failed to initialize feature locks", "user_id", userID, "error", err)
		return fmt.Errorf("initialize feature locks: %w", err)
	}
	return nil
}

// IsFeatureUnlocked checks stored state only; a missing record means the user
// was never gated, in which case only the first mini-wizard is open. It does
// not implicitly initialize.
func (fs *featureLockService) IsFeatureUnlocked(ctx context.Context, userID uuid.UUID, miniWizardID types.MiniWizardID) bool {
	existing, err := fs.lockRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		fs.log.Warn("Failed to read feature locks, treating as locked", "user_id", userID, "error", err)
		return miniWizardID == types.MiniWizardCreateProduct
	}
	if existing == nil {
		return miniWizardID == types.MiniWizardCreateProduct
	}
	return existing.IsUnlocked(miniWizardID)
}

// UpdateUnlockedFeatures unlocks every feature whose threshold the given XP
// meets. The unlocked set only grows; calling twice with the same XP is a
// no-op on the second call and performs no write.
func (fs *featureLockService) UpdateUnlockedFeatures(ctx context.Context, userID uuid.UUID, currentXP int) ([]types.MiniWizardID, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}

	existing, err := fs.lockRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("read feature locks: %w", err)
	}
	state := existing
	if state == nil {
		state = types.DefaultFeatureLockState(userID)
	}

	locked := state.LockedStatus.Data()
	if locked == nil {
		locked = make(map[types.MiniWizardID]bool, len(types.MiniWizardOrder))
	}

	newlyUnlocked := []types.MiniWizardID{}
	for _, feature := range types.MiniWizardOrder {
		threshold := types.UnlockThresholds[feature]
		if currentXP >= threshold && !state.HasUnlocked(feature) {
			state.UnlockedFeatures = append(state.UnlockedFeatures, feature)
			locked[feature] = false
			newlyUnlocked = append(newlyUnlocked, feature)
		}
	}

	if len(newlyUnlocked) == 0 {
		return newlyUnlocked, nil
	}

	state.LockedStatus = types.NewLockedStatus(locked)
	state.NextUnlockThreshold = types.NextUnlockThreshold(currentXP)

	if existing == nil {
		if err := fs.lockRepo.Create(ctx, nil, state); err != nil {
			return nil, fmt.Errorf("persist feature locks: %w", err)
		}
	} else {
		fields := map[string]interface{}{
			"unlocked_features":     state.UnlockedFeatures,
			"locked_status":         state.LockedStatus,
			"next_unlock_threshold": state.NextUnlockThreshold,
		}
		if err := fs.lockRepo.UpdateFields(ctx, nil, userID, fields); err != nil {
			return nil, fmt.Errorf("persist feature locks: %w", err)
		}
	}

	fs.log.Info("Features unlocked",
		"user_id", userID,
		"current_xp", currentXP,
		"newly_unlocked", newlyUnlocked,
	)
	return newlyUnlocked, nil
}
