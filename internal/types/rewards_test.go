package types

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAwardID(t *testing.T) {
	at := time.UnixMilli(1735689600000).UTC()
	got := AwardID("level_up", at)
	want := "level_up_1735689600000"
	if got != want {
		t.Fatalf("AwardID = %q, want %q", got, want)
	}
}

func TestDefaultFeatureLockState(t *testing.T) {
	state := DefaultFeatureLockState(uuid.New())

	if !state.HasUnlocked(MiniWizardCreateProduct) {
		t.Fatal("first mini wizard should start unlocked")
	}
	if !state.IsUnlocked(MiniWizardCreateProduct) {
		t.Fatal("locked status should mark the first mini wizard open")
	}
	for _, id := range MiniWizardOrder[1:] {
		if state.HasUnlocked(id) {
			t.Fatalf("%s should start locked", id)
		}
		if state.IsUnlocked(id) {
			t.Fatalf("locked status should mark %s closed", id)
		}
	}
	if state.NextUnlockThreshold == nil || *state.NextUnlockThreshold != 50 {
		t.Fatalf("next unlock threshold should start at 50, got %v", state.NextUnlockThreshold)
	}
}

func TestWizardProgressHasCompleted(t *testing.T) {
	progress := DefaultWizardProgress(uuid.New())
	if progress.HasCompleted(MiniWizardCreateProduct) {
		t.Fatal("fresh progress has no completions")
	}
	progress.CompletedMiniWizards = append(progress.CompletedMiniWizards, MiniWizardCreateProduct)
	if !progress.HasCompleted(MiniWizardCreateProduct) {
		t.Fatal("completed wizard not reported")
	}
	if progress.HasCompleted(MiniWizardAddNotes) {
		t.Fatal("ADD_NOTES was never completed")
	}
}
