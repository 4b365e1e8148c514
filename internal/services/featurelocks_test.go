package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/launchforge/launchwizard-backend/internal/types"
)

func newFeatureLockServiceForTest(t *testing.T) (FeatureLockService, *fakeLockRepo) {
	t.Helper()
	repo := newFakeLockRepo()
	return NewFeatureLockService(nil, newTestLogger(t), repo), repo
}

func TestGetFeatureLocksDefaultsWhenMissing(t *testing.T) {
	service, _ := newFeatureLockServiceForTest(t)

	state := service.GetFeatureLocks(context.Background(), uuid.New())
	if !state.HasUnlocked(types.MiniWizardCreateProduct) {
		t.Fatal("default state should unlock the first mini wizard")
	}
	if len(state.UnlockedFeatures) != 1 {
		t.Fatalf("default state should unlock exactly one feature, got %d", len(state.UnlockedFeatures))
	}
}

func TestIsFeatureUnlockedWithoutRecord(t *testing.T) {
	service, _ := newFeatureLockServiceForTest(t)
	userID := uuid.New()

	if !service.IsFeatureUnlocked(context.Background(), userID, types.MiniWizardCreateProduct) {
		t.Fatal("CREATE_PRODUCT is open even without a record")
	}
	if service.IsFeatureUnlocked(context.Background(), userID, types.MiniWizardAddNotes) {
		t.Fatal("ADD_NOTES must stay locked without a record")
	}
}

func TestIsFeatureUnlockedDegradesOnRepoError(t *testing.T) {
	service, repo := newFeatureLockServiceForTest(t)
	repo.err = fmt.Errorf("connection refused")
	userID := uuid.New()

	if !service.IsFeatureUnlocked(context.Background(), userID, types.MiniWizardCreateProduct) {
		t.Fatal("degraded check still opens CREATE_PRODUCT")
	}
	if service.IsFeatureUnlocked(context.Background(), userID, types.MiniWizardGenerateAsset) {
		t.Fatal("degraded check must not open gated features")
	}
}

func TestUpdateUnlockedFeaturesUnlocksUpToThreshold(t *testing.T) {
	service, repo := newFeatureLockServiceForTest(t)
	userID := uuid.New()

	newly, err := service.UpdateUnlockedFeatures(context.Background(), userID, 100)
	if err != nil {
		t.Fatalf("UpdateUnlockedFeatures: %v", err)
	}
	// 0, 50 and 100 are all met; the default already held CREATE_PRODUCT.
	want := []types.MiniWizardID{types.MiniWizardCreateBusinessStack, types.MiniWizardCreateTechnicalStack}
	if len(newly) != len(want) {
		t.Fatalf("newly unlocked = %v, want %v", newly, want)
	}
	for i, id := range want {
		if newly[i] != id {
			t.Fatalf("newly unlocked = %v, want %v", newly, want)
		}
	}

	state := repo.rows[userID]
	if state == nil {
		t.Fatal("unlock must persist the state")
	}
	if state.NextUnlockThreshold == nil || *state.NextUnlockThreshold != 150 {
		t.Fatalf("next threshold = %v, want 150", state.NextUnlockThreshold)
	}
	if !state.IsUnlocked(types.MiniWizardCreateTechnicalStack) {
		t.Fatal("locked status not updated for CREATE_TECHNICAL_STACK")
	}
}

func TestUpdateUnlockedFeaturesThresholdBoundary(t *testing.T) {
	service, _ := newFeatureLockServiceForTest(t)
	userID := uuid.New()

	newly, err := service.UpdateUnlockedFeatures(context.Background(), userID, 49)
	if err != nil {
		t.Fatalf("UpdateUnlockedFeatures: %v", err)
	}
	if len(newly) != 0 {
		t.Fatalf("49 XP unlocked %v, one short of the 50 threshold", newly)
	}

	newly, err = service.UpdateUnlockedFeatures(context.Background(), userID, 50)
	if err != nil {
		t.Fatalf("UpdateUnlockedFeatures: %v", err)
	}
	if len(newly) != 1 || newly[0] != types.MiniWizardCreateBusinessStack {
		t.Fatalf("50 XP unlocked %v, want [CREATE_BUSINESS_STACK]", newly)
	}

	newly, err = service.UpdateUnlockedFeatures(context.Background(), userID, 99)
	if err != nil {
		t.Fatalf("UpdateUnlockedFeatures: %v", err)
	}
	if len(newly) != 0 {
		t.Fatalf("99 XP unlocked %v, one short of the 100 threshold", newly)
	}
}

func TestUpdateUnlockedFeaturesIsMonotonic(t *testing.T) {
	service, repo := newFeatureLockServiceForTest(t)
	userID := uuid.New()

	if _, err := service.UpdateUnlockedFeatures(context.Background(), userID, 200); err != nil {
		t.Fatalf("first update: %v", err)
	}
	unlockedBefore := len(repo.rows[userID].UnlockedFeatures)

	// Lower XP never re-locks anything.
	newly, err := service.UpdateUnlockedFeatures(context.Background(), userID, 50)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if len(newly) != 0 {
		t.Fatalf("lower XP unlocked %v", newly)
	}
	if got := len(repo.rows[userID].UnlockedFeatures); got != unlockedBefore {
		t.Fatalf("unlocked count changed from %d to %d", unlockedBefore, got)
	}
}

func TestUpdateUnlockedFeaturesSkipsWriteWhenNothingNew(t *testing.T) {
	service, repo := newFeatureLockServiceForTest(t)
	userID := uuid.New()

	if _, err := service.UpdateUnlockedFeatures(context.Background(), userID, 100); err != nil {
		t.Fatalf("first update: %v", err)
	}
	writesBefore := repo.writes

	if _, err := service.UpdateUnlockedFeatures(context.Background(), userID, 100); err != nil {
		t.Fatalf("repeat update: %v", err)
	}
	if repo.writes != writesBefore {
		t.Fatalf("idempotent recall still wrote: %d -> %d", writesBefore, repo.writes)
	}
}

func TestUpdateUnlockedFeaturesFullProgression(t *testing.T) {
	service, repo := newFeatureLockServiceForTest(t)
	userID := uuid.New()

	if _, err := service.UpdateUnlockedFeatures(context.Background(), userID, 450); err != nil {
		t.Fatalf("UpdateUnlockedFeatures: %v", err)
	}
	state := repo.rows[userID]
	for _, id := range types.MiniWizardOrder {
		if !state.HasUnlocked(id) {
			t.Fatalf("%s should be unlocked at 450 XP", id)
		}
	}
	if state.NextUnlockThreshold != nil {
		t.Fatalf("every threshold met, next should be nil, got %d", *state.NextUnlockThreshold)
	}
}
