package handlers

import (
  "fmt"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/launchforge/launchwizard-backend/internal/services"
  "github.com/launchforge/launchwizard-backend/internal/types"
)

type FeatureLockHandler struct {
  lockService     services.FeatureLockService
  rewardsService  services.RewardsService
}

func NewFeatureLockHandler(lockService services.FeatureLockService, rewardsService services.RewardsService) *FeatureLockHandler {
  return &FeatureLockHandler{lockService: lockService, rewardsService: rewardsService}
}

func (fh *FeatureLockHandler) GetFeatureLocks(c *gin.Context) {
  userID, err := userIDFromContext(c)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", err)
    return
  }
  locks := fh.lockService.GetFeatureLocks(c.Request.Context(), userID)
  RespondOK(c, gin.H{"feature_locks": locks})
}

func (fh *FeatureLockHandler) InitializeFeatureLocks(c *gin.Context) {
  userID, err := userIDFromContext(c)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", err)
    return
  }
  if err := fh.lockService.InitializeFeatureLocks(c.Request.Context(), userID); err != nil {
    RespondError(c, http.StatusInternalServerError, "initialize_failed", err)
    return
  }
  RespondOK(c, gin.H{"initialized": true})
}

func (fh *FeatureLockHandler) IsFeatureUnlocked(c *gin.Context) {
  userID, err := userIDFromContext(c)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", err)
    return
  }
  miniWizardID, ok := types.ValidMiniWizardID(c.Param("id"))
  if !ok {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("unknown mini wizard id: %q", c.Param("id")))
    return
  }
  unlocked := fh.lockService.IsFeatureUnlocked(c.Request.Context(), userID, miniWizardID)
  RespondOK(c, gin.H{"mini_wizard_id": miniWizardID, "unlocked": unlocked})
}

// RefreshUnlockedFeatures re-derives the unlocked set from the current XP
// total, for clients that granted XP outside the completion flow.
func (fh *FeatureLockHandler) RefreshUnlockedFeatures(c *gin.Context) {
  userID, err := userIDFromContext(c)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", err)
    return
  }
  totalXP, err := fh.rewardsService.TotalXP(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "refresh_failed", err)
    return
  }
  newlyUnlocked, err := fh.lockService.UpdateUnlockedFeatures(c.Request.Context(), userID, totalXP)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "refresh_failed", err)
    return
  }
  RespondOK(c, gin.H{"total_xp": totalXP, "newly_unlocked": newlyUnlocked})
}
