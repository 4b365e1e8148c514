package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RewardProfile is the per-user header row of the rewards ledger. TotalXP is a
// denormalized cache of the summed XP events; the event table is the source of
// truth.
type RewardProfile struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_reward_profile_user" json:"user_id"`
	TotalXP       int        `gorm:"column:total_xp;not null;default:0" json:"total_xp"`
	Streaks       int        `gorm:"column:streaks;not null;default:0" json:"streaks"`
	LastUpdatedAt *time.Time `gorm:"column:last_updated_at" json:"last_updated_at,omitempty"`
	CreatedAt     time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (RewardProfile) TableName() string { return "reward_profile" }

func DefaultRewardProfile(userID uuid.UUID) *RewardProfile {
	return &RewardProfile{UserID: userID, TotalXP: 0, Streaks: 0}
}

// XPEvent is one append-only grant in the XP history. Events are inserted as
// individual rows so concurrent grants for the same user never clobber each
// other.
type XPEvent struct {
	ID        uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID    `gorm:"type:uuid;not null;index:idx_xp_event_user" json:"user_id"`
	Step      MiniWizardID `gorm:"column:step;not null" json:"step"`
	XP        int          `gorm:"column:xp;not null" json:"xp"`
	Timestamp time.Time    `gorm:"column:timestamp;not null" json:"timestamp"`
	CreatedAt time.Time    `gorm:"not null;default:now()" json:"created_at"`
}

func (XPEvent) TableName() string { return "xp_event" }

// Achievement rows are append-only; the award id is type plus unix millis, so
// collisions are only possible within the same millisecond for one user.
type Achievement struct {
	UserID      uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	AwardID     string          `gorm:"column:award_id;primaryKey" json:"id"`
	Type        AchievementType `gorm:"column:type;not null" json:"type"`
	Title       string          `gorm:"column:title;not null" json:"title"`
	Description string          `gorm:"column:description" json:"description"`
	XPAwarded   int             `gorm:"column:xp_awarded;not null;default:0" json:"xp_awarded"`
	UnlockedAt  time.Time       `gorm:"column:unlocked_at;not null" json:"unlocked_at"`
}

func (Achievement) TableName() string { return "achievement" }

type Badge struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	AwardID     string    `gorm:"column:award_id;primaryKey" json:"id"`
	Type        BadgeType `gorm:"column:type;not null" json:"type"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
	ImageURL    string    `gorm:"column:image_url" json:"image_url"`
	UnlockedAt  time.Time `gorm:"column:unlocked_at;not null" json:"unlocked_at"`
}

func (Badge) TableName() string { return "badge" }

// AwardID builds the ledger id for an achievement or badge.
func AwardID(kind string, at time.Time) string {
	return fmt.Sprintf("%s_%d", kind, at.UnixMilli())
}

// XPHistoryEntry is the wire shape of one XP grant inside a Rewards view.
type XPHistoryEntry struct {
	Step      MiniWizardID `json:"step"`
	XP        int          `json:"xp"`
	Timestamp time.Time    `json:"timestamp"`
}

// Rewards is the composed per-user rewards view returned to callers: profile
// counters plus the full XP history and award lists.
type Rewards struct {
	XPHistory    []XPHistoryEntry `json:"xp_history"`
	Achievements []Achievement    `json:"achievements"`
	Badges       []Badge          `json:"badges"`
	Streaks      int              `json:"streaks"`
	TotalXP      int              `json:"total_xp"`
	Level        int              `json:"level"`
}

func DefaultRewards() *Rewards {
	return &Rewards{
		XPHistory:    []XPHistoryEntry{},
		Achievements: []Achievement{},
		Badges:       []Badge{},
		Streaks:      0,
		TotalXP:      0,
		Level:        CalculateLevel(0),
	}
}
