package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WizardProgress is the per-user position in the onboarding flow. One row per
// user, overwritten in full on mini-wizard completion.
type WizardProgress struct {
	ID                   uuid.UUID                        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID               uuid.UUID                        `gorm:"type:uuid;not null;uniqueIndex:idx_wizard_progress_user" json:"user_id"`
	MainWizardStep       MainWizardStep                   `gorm:"column:main_wizard_step;not null;default:'introduction'" json:"main_wizard_step"`
	CurrentMiniWizard    MiniWizardID                     `gorm:"column:current_mini_wizard;not null;default:'CREATE_PRODUCT'" json:"current_mini_wizard"`
	CompletedMiniWizards datatypes.JSONSlice[MiniWizardID] `gorm:"column:completed_mini_wizards" json:"completed_mini_wizards"`
	PercentComplete      int                              `gorm:"column:percent_complete;not null;default:0" json:"percent_complete"`
	XPAwarded            int                              `gorm:"column:xp_awarded;not null;default:0" json:"xp_awarded"`
	LastCompletedAt      *time.Time                       `gorm:"column:last_completed_at" json:"last_completed_at,omitempty"`
	CreatedAt            time.Time                        `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time                        `gorm:"not null;default:now()" json:"updated_at"`
}

func (WizardProgress) TableName() string { return "wizard_progress" }

// DefaultWizardProgress is the state every brand-new user starts from.
func DefaultWizardProgress(userID uuid.UUID) *WizardProgress {
	return &WizardProgress{
		UserID:               userID,
		MainWizardStep:       MainStepIntroduction,
		CurrentMiniWizard:    MiniWizardCreateProduct,
		CompletedMiniWizards: datatypes.JSONSlice[MiniWizardID]{},
		PercentComplete:      0,
	}
}

// HasCompleted reports membership in the completed set.
func (p *WizardProgress) HasCompleted(id MiniWizardID) bool {
	for _, done := range p.CompletedMiniWizards {
		if done == id {
			return true
		}
	}
	return false
}

// CompleteMiniWizardResult is returned by the completion operation instead of
// an error: the UI awaits this call directly and needs a success flag it can
// render without unwrapping failures.
type CompleteMiniWizardResult struct {
	Progress      *WizardProgress `json:"progress"`
	Success       bool            `json:"success"`
	Error         string          `json:"error,omitempty"`
	XPAwarded     int             `json:"xp_awarded"`
	TotalXP       int             `json:"total_xp"`
	Level         int             `json:"level"`
	NewlyUnlocked []MiniWizardID  `json:"newly_unlocked,omitempty"`
}
