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

// ProgressService tracks a user's position in the onboarding flow and the
// running completion percentage.
//
// Read paths degrade to defaults on any persistence failure; setter writes
// propagate errors. CompleteMiniWizard is the exception: it returns a typed
// result with a success flag and never an error, because it is the one
// operation the client awaits directly.
type ProgressService interface {
	GetProgress(ctx context.Context, userID uuid.UUID) *types.WizardProgress
	InitializeProgress(ctx context.Context, userID uuid.UUID) error
	SetMainWizardStep(ctx context.Context, userID uuid.UUID, step types.MainWizardStep) error
	SetCurrentMiniWizard(ctx context.Context, userID uuid.UUID, miniWizardID types.MiniWizardID) error
	CompleteMiniWizard(ctx context.Context, userID uuid.UUID, miniWizardID types.MiniWizardID) *types.CompleteMiniWizardResult
}

type progressService struct {
	db           *gorm.DB
	log          *logger.Logger
	progressRepo repos.WizardProgressRepo
}

func NewProgressService(db *gorm.DB, log *logger.Logger, progressRepo repos.WizardProgressRepo) ProgressService {
	serviceLog := log.With("service", "ProgressService")
	return &progressService{
		db:           db,
		log:          serviceLog,
		progressRepo: progressRepo,
	}
}

func (ps *progressService) GetProgress(ctx context.Context, userID uuid.UUID) *types.WizardProgress {
	existing, err := ps.progressRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		ps.log.Warn("Failed to read progress, returning default", "user_id", userID, "error", err)
		return types.DefaultWizardProgress(userID)
	}
	if existing == nil {
		return types.DefaultWizardProgress(userID)
	}
	return existing
}

func (ps *progressService) InitializeProgress(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("user id required")
	}
	if err := ps.progressRepo.Upsert(ctx, nil, types.DefaultWizardProgress(userID)); err != nil {
		ps.log.Error("Failed to initialize progress", "user_id", userID, "error", err)
		return fmt.Errorf("initialize progress: %w", err)
	}
	return nil
}

func (ps *progressService) SetMainWizardStep(ctx context.Context, userID uuid.UUID, step types.MainWizardStep) error {
	if userID == uuid.Nil {
		return fmt.Errorf("user id required")
	}
	existing, err := ps.progressRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return fmt.Errorf("read progress: %w", err)
	}
	if existing == nil {
		seeded := types.DefaultWizardProgress(userID)
		seeded.MainWizardStep = step
		return ps.progressRepo.Create(ctx, nil, seeded)
	}
	return ps.progressRepo.UpdateFields(ctx, nil, userID, map[string]interface{}{
		"main_wizard_step": step,
	})
}

func (ps *progressService) SetCurrentMiniWizard(ctx context.Context, userID uuid.UUID, miniWizardID types.MiniWizardID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("user id required")
	}
	existing, err := ps.progressRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return fmt.Errorf("read progress: %w", err)
	}
	if existing == nil {
		seeded := types.DefaultWizardProgress(userID)
		seeded.CurrentMiniWizard = miniWizardID
		return ps.progressRepo.Create(ctx, nil, seeded)
	}
	return ps.progressRepo.UpdateFields(ctx, nil, userID, map[string]interface{}{
		"current_mini_wizard": miniWizardID,
	})
}

func (ps *progressService) CompleteMiniWizard(ctx context.Context, userID uuid.UUID, miniWizardID types.MiniWizardID) *types.CompleteMiniWizardResult {
	failed := func(err error) *types.CompleteMiniWizardResult {
		ps.log.Error("Failed to complete mini wizard", "user_id", userID, "mini_wizard", miniWizardID, "error", err)
		return &types.CompleteMiniWizardResult{
			Progress: types.DefaultWizardProgress(userID),
			Success:  false,
			Error:    err.Error(),
		}
	}

	existing, err := ps.progressRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return failed(fmt.Errorf("read progress: %w", err))
	}
	progress := existing
	if progress == nil {
		progress = types.DefaultWizardProgress(userID)
	}

	// Completing the same wizard twice must not duplicate it or move the
	// percentage.
	if !progress.HasCompleted(miniWizardID) {
		progress.CompletedMiniWizards = append(progress.CompletedMiniWizards, miniWizardID)
	}
	progress.PercentComplete = types.PercentComplete(len(progress.CompletedMiniWizards))
	now := time.Now().UTC()
	progress.LastCompletedAt = &now
	progress.XPAwarded = types.DefaultMiniWizardXP

	if err := ps.progressRepo.Upsert(ctx, nil, progress); err != nil {
		return failed(fmt.Errorf("persist progress: %w", err))
	}

	ps.log.Info("Mini wizard completed",
		"user_id", userID,
		"mini_wizard", miniWizardID,
		"percent_complete", progress.PercentComplete,
	)
	return &types.CompleteMiniWizardResult{
		Progress:  progress,
		Success:   true,
		XPAwarded: progress.XPAwarded,
	}
}
