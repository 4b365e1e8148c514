package handlers

import (
  "fmt"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/launchforge/launchwizard-backend/internal/requestdata"
  "github.com/launchforge/launchwizard-backend/internal/services"
  "github.com/launchforge/launchwizard-backend/internal/types"
)

type ProgressHandler struct {
  progressService     services.ProgressService
  progressionService  services.ProgressionService
}

func NewProgressHandler(progressService services.ProgressService, progressionService services.ProgressionService) *ProgressHandler {
  return &ProgressHandler{progressService: progressService, progressionService: progressionService}
}

func userIDFromContext(c *gin.Context) (uuid.UUID, error) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    return uuid.Nil, fmt.Errorf("unauthorized")
  }
  return rd.UserID, nil
}

func (ph *ProgressHandler) GetProgress(c *gin.Context) {
  userID, err := userIDFromContext(c)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", err)
    return
  }
  progress := ph.progressService.GetProgress(c.Request.Context(), userID)
  RespondOK(c, gin.H{"progress": progress})
}

func (ph *ProgressHandler) InitializeProgress(c *gin.Context) {
  userID, err := userIDFromContext(c)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", err)
    return
  }
  if err := ph.progressService.InitializeProgress(c.Request.Context(), userID); err != nil {
    RespondError(c, http.StatusInternalServerError, "initialize_failed", err)
    return
  }
  RespondOK(c, gin.H{"initialized": true})
}

func (ph *ProgressHandler) SetMainWizardStep(c *gin.Context) {
  userID, err := userIDFromContext(c)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", err)
    return
  }
  var body struct {
    Step          string        `json:"step"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  step, ok := types.ValidMainWizardStep(body.Step)
  if !ok {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("unknown main wizard step: %q", body.Step))
    return
  }
  if err := ph.progressService.SetMainWizardStep(c.Request.Context(), userID, step); err != nil {
    RespondError(c, http.StatusInternalServerError, "update_failed", err)
    return
  }
  RespondOK(c, gin.H{"main_wizard_step": step})
}

func (ph *ProgressHandler) SetCurrentMiniWizard(c *gin.Context) {
  userID, err := userIDFromContext(c)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", err)
    return
  }
  var body struct {
    MiniWizardID  string        `json:"mini_wizard_id"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  miniWizardID, ok := types.ValidMiniWizardID(body.MiniWizardID)
  if !ok {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("unknown mini wizard id: %q", body.MiniWizardID))
    return
  }
  if err := ph.progressService.SetCurrentMiniWizard(c.Request.Context(), userID, miniWizardID); err != nil {
    RespondError(c, http.StatusInternalServerError, "update_failed", err)
    return
  }
  RespondOK(c, gin.H{"current_mini_wizard": miniWizardID})
}

func (ph *ProgressHandler) CompleteMiniWizard(c *gin.Context) {
  userID, err := userIDFromContext(c)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", err)
    return
  }
  var body struct {
    MiniWizardID  string        `json:"mini_wizard_id"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  miniWizardID, ok := types.ValidMiniWizardID(body.MiniWizardID)
  if !ok {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("unknown mini wizard id: %q", body.MiniWizardID))
    return
  }
  // Always 200 with a success flag: the client renders the failure state
  // itself and retries.
  result := ph.progressionService.CompleteMiniWizard(c.Request.Context(), userID, miniWizardID)
  RespondOK(c, result)
}
