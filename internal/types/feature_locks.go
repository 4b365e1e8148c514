package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FeatureLockState gates each mini-wizard behind an XP threshold. The unlocked
// set only ever grows for a given user.
type FeatureLockState struct {
	ID                  uuid.UUID                              `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID              uuid.UUID                              `gorm:"type:uuid;not null;uniqueIndex:idx_feature_locks_user" json:"user_id"`
	UnlockedFeatures    datatypes.JSONSlice[MiniWizardID]      `gorm:"column:unlocked_features" json:"unlocked_features"`
	LockedStatus        datatypes.JSONType[map[MiniWizardID]bool] `gorm:"column:locked_status" json:"locked_status"`
	NextUnlockThreshold *int                                   `gorm:"column:next_unlock_threshold" json:"next_unlock_threshold,omitempty"`
	CreatedAt           time.Time                              `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt           time.Time                              `gorm:"not null;default:now()" json:"updated_at"`
}

func (FeatureLockState) TableName() string { return "feature_lock_state" }

// DefaultFeatureLockState unlocks only the first mini-wizard; every other
// feature starts locked with the second-lowest threshold up next.
func DefaultFeatureLockState(userID uuid.UUID) *FeatureLockState {
	locked := make(map[MiniWizardID]bool, len(MiniWizardOrder))
	for _, id := range MiniWizardOrder {
		locked[id] = id != MiniWizardCreateProduct
	}
	return &FeatureLockState{
		UserID:              userID,
		UnlockedFeatures:    datatypes.JSONSlice[MiniWizardID]{MiniWizardCreateProduct},
		LockedStatus:        datatypes.NewJSONType(locked),
		NextUnlockThreshold: NextUnlockThreshold(0),
	}
}

// NewLockedStatus wraps a locked-status map for storage in the JSONB column.
func NewLockedStatus(locked map[MiniWizardID]bool) datatypes.JSONType[map[MiniWizardID]bool] {
	return datatypes.NewJSONType(locked)
}

// IsUnlocked reports whether the stored locked status marks the feature open.
func (f *FeatureLockState) IsUnlocked(id MiniWizardID) bool {
	locked := f.LockedStatus.Data()
	status, ok := locked[id]
	if !ok {
		return false
	}
	return !status
}

// HasUnlocked reports membership in the unlocked feature list.
func (f *FeatureLockState) HasUnlocked(id MiniWizardID) bool {
	for _, unlocked := range f.UnlockedFeatures {
		if unlocked == id {
			return true
		}
	}
	return false
}
