package api

import (
	"alcyxob/win-tracker/internal/domain"
	"alcyxob/win-tracker/internal/service"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// SyncHandler serves whole-snapshot upload and download.
type SyncHandler struct {
	syncService service.SyncService
}

func NewSyncHandler(syncService service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// SyncRequest is the upload body: the client's whole state under "data".
type SyncRequest struct {
	UserID string                 `json:"userId"`
	Data   *domain.ChallengeState `json:"data"`
}

type SyncResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	UserID   string `json:"userId"`
	Revision int64  `json:"revision"`
}

type DownloadResponse struct {
	Success bool                   `json:"success"`
	Data    *domain.ChallengeState `json:"data"`
}

// Upload handles POST /api/sync
func (h *SyncHandler) Upload(c *gin.Context) {
	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusUnprocessableEntity, "Invalid snapshot: "+err.Error())
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		abortWithError(c, http.StatusBadRequest, "User ID is required")
		return
	}

	snap, err := h.syncService.Upload(c.Request.Context(), req.UserID, req.Data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserIDRequired):
			abortWithError(c, http.StatusBadRequest, "User ID is required")
		case errors.Is(err, service.ErrInvalidSnapshot):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			log.Error("sync upload failed", "userId", req.UserID, "err", err)
			abortWithError(c, http.StatusInternalServerError, "Failed to sync data")
		}
		return
	}

	c.JSON(http.StatusOK, SyncResponse{
		Success:  true,
		Message:  "Data synced successfully",
		UserID:   snap.UserID,
		Revision: snap.Revision,
	})
}

// Download handles GET /api/sync/:userId
func (h *SyncHandler) Download(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	snap, err := h.syncService.Download(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, DownloadResponse{Success: true, Data: &snap.State})
}

// Delete handles DELETE /api/sync/:userId
func (h *SyncHandler) Delete(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.syncService.Delete(c.Request.Context(), userID); err != nil {
		h.handleError(c, userID, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export handles GET /api/sync/:userId/export
func (h *SyncHandler) Export(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	url, err := h.syncService.ExportURL(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// CreateUser handles POST /api/users
func (h *SyncHandler) CreateUser(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{"userId": h.syncService.NewUserID()})
}

func (h *SyncHandler) handleError(c *gin.Context, userID string, err error) {
	switch {
	case errors.Is(err, service.ErrSnapshotNotFound):
		abortWithError(c, http.StatusNotFound, "User data not found")
	case errors.Is(err, service.ErrNothingArchived):
		abortWithError(c, http.StatusNotFound, "No archived snapshot for this user")
	case errors.Is(err, service.ErrArchiveDisabled):
		abortWithError(c, http.StatusNotImplemented, "Snapshot export is not enabled")
	case errors.Is(err, service.ErrUserIDRequired):
		abortWithError(c, http.StatusBadRequest, "User ID is required")
	default:
		log.Error("sync request failed", "userId", userID, "err", err)
		abortWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
