package handlers

import (
  "fmt"
  "net/http"
  "time"
  "github.com/gin-gonic/gin"
  "github.com/launchforge/launchwizard-backend/internal/services"
  "github.com/launchforge/launchwizard-backend/internal/types"
)

type RewardsHandler struct {
  rewardsService  services.RewardsService
}

func NewRewardsHandler(rewardsService services.RewardsService) *RewardsHandler {
  return &RewardsHandler{rewardsService: rewardsService}
}

func (rh *RewardsHandler) GetRewards(c *gin.Context) {
  userID, err := userIDFromContext(c)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", err)
    return
  }
  rewards := rh.rewardsService.GetRewards(c.Request.Context(), userID)
  RespondOK(c, gin.H{"rewards": rewards})
}

func (rh *RewardsHandler) InitializeRewards(c *gin.Context) {
  userID, err := userIDFromContext(c)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", err)
    return
  }
  if err := rh.rewardsService.InitializeRewards(c.Request.Context(), userID); err != nil {
    RespondError(c, http.StatusInternalServerError, "initialize_failed", err)
    return
  }
  RespondOK(c, gin.H{"initialized": true})
}

// AddXP appends a grant to the history. With refresh_total set it also
// recomputes the cached total on the reward profile.
func (rh *RewardsHandler) AddXP(c *gin.Context) {
  userID, err := userIDFromContext(c)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", err)
    return
  }
  var body struct {
    Step          string        `json:"step"`
    Amount        int           `json:"amount"`
    RefreshTotal  bool          `json:"refresh_total"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  step, ok := types.ValidMiniWizardID(body.Step)
  if !ok {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("unknown mini wizard id: %q", body.Step))
    return
  }
  if body.Amount <= 0 {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("xp amount must be positive"))
    return
  }
  if body.RefreshTotal {
    item := services.XPHistoryItem{Amount: body.Amount, Step: step, Timestamp: time.Now().UTC()}
    if err := rh.rewardsService.AddXPHistoryItem(c.Request.Context(), userID, item); err != nil {
      RespondError(c, http.StatusInternalServerError, "add_xp_failed", err)
      return
    }
  } else {
    if err := rh.rewardsService.AddXPHistoryEntry(c.Request.Context(), userID, step, body.Amount); err != nil {
      RespondError(c, http.StatusInternalServerError, "add_xp_failed", err)
      return
    }
  }
  RespondOK(c, gin.H{"step": step, "amount": body.Amount})
}

func (rh *RewardsHandler) GetLevel(c *gin.Context) {
  userID, err := userIDFromContext(c)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", err)
    return
  }
  totalXP, err := rh.rewardsService.TotalXP(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "read_failed", err)
    return
  }
  RespondOK(c, gin.H{"total_xp": totalXP, "level": types.CalculateLevel(totalXP)})
}

func (rh *RewardsHandler) AddAchievement(c *gin.Context) {
  userID, err := userIDFromContext(c)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", err)
    return
  }
  var body struct {
    Type          string        `json:"type"`
    Title         string        `json:"title"`
    Description   string        `json:"description"`
    XPAwarded     int           `json:"xp_awarded"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  achievementType, ok := types.ValidAchievementType(body.Type)
  if !ok {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("unknown achievement type: %q", body.Type))
    return
  }
  if err := rh.rewardsService.AddAchievement(c.Request.Context(), userID, achievementType, body.Title, body.Description, body.XPAwarded); err != nil {
    RespondError(c, http.StatusInternalServerError, "add_achievement_failed", err)
    return
  }
  RespondOK(c, gin.H{"type": achievementType, "title": body.Title})
}

func (rh *RewardsHandler) AddBadge(c *gin.Context) {
  userID, err := userIDFromContext(c)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", err)
    return
  }
  var body struct {
    Type          string        `json:"type"`
    Title         string        `json:"title"`
    Description   string        `json:"description"`
    ImageURL      string        `json:"image_url"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  badgeType, ok := types.ValidBadgeType(body.Type)
  if !ok {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("unknown badge type: %q", body.Type))
    return
  }
  if err := rh.rewardsService.AddBadge(c.Request.Context(), userID, badgeType, body.Title, body.Description, body.ImageURL); err != nil {
    RespondError(c, http.StatusInternalServerError, "add_badge_failed", err)
    return
  }
  RespondOK(c, gin.H{"type": badgeType, "title": body.Title})
}

func (rh *RewardsHandler) IncrementStreak(c *gin.Context) {
  userID, err := userIDFromContext(c)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", err)
    return
  }
  streak, err := rh.rewardsService.IncrementStreak(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "streak_failed", err)
    return
  }
  RespondOK(c, gin.H{"streaks": streak})
}

func (rh *RewardsHandler) ResetStreak(c *gin.Context) {
  userID, err := userIDFromContext(c)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", err)
    return
  }
  if err := rh.rewardsService.ResetStreak(c.Request.Context(), userID); err != nil {
    RespondError(c, http.StatusInternalServerError, "streak_failed", err)
    return
  }
  RespondOK(c, gin.H{"streaks": 0})
}
