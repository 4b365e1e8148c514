package types

// MiniWizardID identifies one discrete, completable onboarding step.
type MiniWizardID string

const (
	MiniWizardCreateProduct           MiniWizardID = "CREATE_PRODUCT"
	MiniWizardCreateBusinessStack     MiniWizardID = "CREATE_BUSINESS_STACK"
	MiniWizardCreateTechnicalStack    MiniWizardID = "CREATE_TECHNICAL_STACK"
	MiniWizardCreate360QuestionsStack MiniWizardID = "CREATE_360_QUESTIONS_STACK"
	MiniWizardCreateRulesStack        MiniWizardID = "CREATE_RULES_STACK"
	MiniWizardAddFeatures             MiniWizardID = "ADD_FEATURES"
	MiniWizardAddCollections          MiniWizardID = "ADD_COLLECTIONS"
	MiniWizardAddNotes                MiniWizardID = "ADD_NOTES"
	MiniWizardGeneratePrompt          MiniWizardID = "GENERATE_PROMPT"
	MiniWizardGenerateAsset           MiniWizardID = "GENERATE_ASSET"
)

// MiniWizardOrder is the intended completion sequence. Unlock thresholds are
// strictly increasing along this order.
var MiniWizardOrder = []MiniWizardID{
	MiniWizardCreateProduct,
	MiniWizardCreateBusinessStack,
	MiniWizardCreateTechnicalStack,
	MiniWizardCreate360QuestionsStack,
	MiniWizardCreateRulesStack,
	MiniWizardAddFeatures,
	MiniWizardAddCollections,
	MiniWizardAddNotes,
	MiniWizardGeneratePrompt,
	MiniWizardGenerateAsset,
}

// MainWizardStep is the coarse phase containing the current mini-wizard.
type MainWizardStep string

const (
	MainStepIntroduction MainWizardStep = "introduction"
	MainStepMiniWizards  MainWizardStep = "mini_wizards"
	MainStepArtifacts    MainWizardStep = "artifacts"
	MainStepCompletion   MainWizardStep = "completion"
)

// DefaultMiniWizardXP is awarded for every completed mini-wizard.
const DefaultMiniWizardXP = 50

// UnlockThresholds maps each mini-wizard to the cumulative XP required to
// unlock it. The first wizard is always unlocked.
var UnlockThresholds = map[MiniWizardID]int{
	MiniWizardCreateProduct:           0,
	MiniWizardCreateBusinessStack:     50,
	MiniWizardCreateTechnicalStack:    100,
	MiniWizardCreate360QuestionsStack: 150,
	MiniWizardCreateRulesStack:        200,
	MiniWizardAddFeatures:             250,
	MiniWizardAddCollections:          300,
	MiniWizardAddNotes:                350,
	MiniWizardGeneratePrompt:          400,
	MiniWizardGenerateAsset:           450,
}

// LevelThresholds is the cumulative XP required to reach each level,
// 1-indexed: LevelThresholds[0] is level 1.
var LevelThresholds = []int{0, 100, 250, 450, 700, 1000}

func ThresholdFor(id MiniWizardID) int {
	return UnlockThresholds[id]
}

func TotalMiniWizards() int {
	return len(MiniWizardOrder)
}

func ValidMiniWizardID(raw string) (MiniWizardID, bool) {
	id := MiniWizardID(raw)
	_, ok := UnlockThresholds[id]
	return id, ok
}

func ValidMainWizardStep(raw string) (MainWizardStep, bool) {
	switch step := MainWizardStep(raw); step {
	case MainStepIntroduction, MainStepMiniWizards, MainStepArtifacts, MainStepCompletion:
		return step, true
	default:
		return "", false
	}
}

// NextUnlockThreshold returns the smallest threshold strictly greater than
// currentXP, or nil once every threshold has been met.
func NextUnlockThreshold(currentXP int) *int {
	next := -1
	for _, threshold := range UnlockThresholds {
		if threshold > currentXP && (next == -1 || threshold < next) {
			next = threshold
		}
	}
	if next == -1 {
		return nil
	}
	return &next
}

// CalculateLevel returns the highest level whose threshold the given XP meets.
// Any non-negative XP is at least level 1.
func CalculateLevel(xp int) int {
	level := 1
	for i, threshold := range LevelThresholds {
		if xp >= threshold {
			level = i + 1
		}
	}
	return level
}

// PercentComplete rounds 100 * completed / total to the nearest integer.
func PercentComplete(completed int) int {
	total := TotalMiniWizards()
	if total == 0 {
		return 0
	}
	return (completed*100 + total/2) / total
}

// AchievementType categorizes entries in the achievements ledger.
type AchievementType string

const (
	AchievementMiniWizardComplete AchievementType = "mini_wizard_complete"
	AchievementWizardMastery      AchievementType = "wizard_mastery"
	AchievementStreakMilestone    AchievementType = "streak_milestone"
	AchievementLevelUp            AchievementType = "level_up"
)

func ValidAchievementType(raw string) (AchievementType, bool) {
	switch achievementType := AchievementType(raw); achievementType {
	case AchievementMiniWizardComplete, AchievementWizardMastery, AchievementStreakMilestone, AchievementLevelUp:
		return achievementType, true
	default:
		return "", false
	}
}

// BadgeType categorizes entries in the badges ledger.
type BadgeType string

const (
	BadgeFounder       BadgeType = "founder"
	BadgeBuilder       BadgeType = "builder"
	BadgeStrategist    BadgeType = "strategist"
	BadgeCompletionist BadgeType = "completionist"
)

func ValidBadgeType(raw string) (BadgeType, bool) {
	switch badgeType := BadgeType(raw); badgeType {
	case BadgeFounder, BadgeBuilder, BadgeStrategist, BadgeCompletionist:
		return badgeType, true
	default:
		return "", false
	}
}
