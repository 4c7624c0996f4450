package api

import (
	"alcyxob/win-tracker/internal/domain"
	"alcyxob/win-tracker/internal/service"
	"alcyxob/win-tracker/internal/tracker"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// ChallengeHandler exposes the day-by-day challenge operations.
type ChallengeHandler struct {
	challengeService service.ChallengeService
}

func NewChallengeHandler(challengeService service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

// --- DTOs ---

type GoalRequest struct {
	Text string `json:"text"`
}

type ChecklistRequest struct {
	Item  domain.ChecklistItem `json:"item" binding:"required"`
	Value *bool                `json:"value" binding:"required"`
}

type JournalRequest struct {
	Gratitude [3]string `json:"gratitude"`
	Summary   string    `json:"summary"`
	Rating    int       `json:"rating"`
}

type EndDayRequest struct {
	ConfirmLoss bool `json:"confirmLoss"`
}

type TodoRequest struct {
	Text string `json:"text"`
}

type ReminderRequest struct {
	Time string `json:"time"`
	Text string `json:"text"`
}

type CompletedRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// DayResponse pairs an operation result with the updated challenge.
type DayResponse struct {
	Result    interface{}            `json:"result"`
	Challenge *service.ChallengeView `json:"challenge"`
}

// --- Handlers ---

// GetChallenge handles GET /api/v1/users/:userId/challenge
func (h *ChallengeHandler) GetChallenge(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	view, err := h.challengeService.GetChallenge(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetGoal handles PUT /api/v1/users/:userId/goal
func (h *ChallengeHandler) SetGoal(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.challengeService.SetGoal(c.Request.Context(), userID, req.Text)
	if err != nil {
		h.handleError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// StartChallenge handles POST /api/v1/users/:userId/challenge/start
func (h *ChallengeHandler) StartChallenge(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	view, err := h.challengeService.StartChallenge(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetChecklistItem handles PATCH /api/v1/users/:userId/days/:day/checklist
func (h *ChallengeHandler) SetChecklistItem(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	day, ok := dayIndexOrAbort(c)
	if !ok {
		return
	}
	var req ChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	res, view, err := h.challengeService.SetChecklistItem(c.Request.Context(), userID, day, req.Item, *req.Value)
	if err != nil {
		h.handleError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, DayResponse{Result: res, Challenge: view})
}

// SubmitJournal handles PUT /api/v1/users/:userId/days/:day/journal
func (h *ChallengeHandler) SubmitJournal(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	day, ok := dayIndexOrAbort(c)
	if !ok {
		return
	}
	var req JournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	entry := tracker.JournalEntry{Gratitude: req.Gratitude, Summary: req.Summary, Rating: req.Rating}
	res, view, err := h.challengeService.SubmitJournal(c.Request.Context(), userID, day, entry)
	if err != nil {
		h.handleError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, DayResponse{Result: res, Challenge: view})
}

// EndDay handles POST /api/v1/users/:userId/days/:day/end. The body is
// optional; without it an incomplete day is not ended.
func (h *ChallengeHandler) EndDay(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	day, ok := dayIndexOrAbort(c)
	if !ok {
		return
	}
	var req EndDayRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	res, view, err := h.challengeService.EndDay(c.Request.Context(), userID, day, req.ConfirmLoss)
	if err != nil {
		h.handleError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, DayResponse{Result: res, Challenge: view})
}

// AddTodo handles POST /api/v1/users/:userId/todos
func (h *ChallengeHandler) AddTodo(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	var req TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	todo, view, err := h.challengeService.AddTodo(c.Request.Context(), userID, req.Text)
	if err != nil {
		h.handleError(c, userID, err)
		return
	}
	c.JSON(http.StatusCreated, DayResponse{Result: todo, Challenge: view})
}

// SetTodoCompleted handles PATCH /api/v1/users/:userId/todos/:id
func (h *ChallengeHandler) SetTodoCompleted(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	var req CompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	todo, view, err := h.challengeService.SetTodoCompleted(c.Request.Context(), userID, c.Param("id"), *req.Completed)
	if err != nil {
		h.handleError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, DayResponse{Result: todo, Challenge: view})
}

// RemoveTodo handles DELETE /api/v1/users/:userId/todos/:id
func (h *ChallengeHandler) RemoveTodo(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	view, err := h.challengeService.RemoveTodo(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddReminder handles POST /api/v1/users/:userId/reminders
func (h *ChallengeHandler) AddReminder(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	var req ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	reminder, view, err := h.challengeService.AddReminder(c.Request.Context(), userID, req.Time, req.Text)
	if err != nil {
		h.handleError(c, userID, err)
		return
	}
	c.JSON(http.StatusCreated, DayResponse{Result: reminder, Challenge: view})
}

// SetReminderCompleted handles PATCH /api/v1/users/:userId/reminders/:id
func (h *ChallengeHandler) SetReminderCompleted(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	var req CompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	reminder, view, err := h.challengeService.SetReminderCompleted(c.Request.Context(), userID, c.Param("id"), *req.Completed)
	if err != nil {
		h.handleError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, DayResponse{Result: reminder, Challenge: view})
}

// RemoveReminder handles DELETE /api/v1/users/:userId/reminders/:id
func (h *ChallengeHandler) RemoveReminder(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	view, err := h.challengeService.RemoveReminder(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func userIDOrAbort(c *gin.Context) (string, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return "", false
	}
	return userID, true
}

// dayIndexOrAbort parses the zero-based :day parameter. Range is checked by
// the tracker so out-of-range indices map to the same error everywhere.
func dayIndexOrAbort(c *gin.Context) (int, bool) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Day must be an integer index")
		return 0, false
	}
	return day, true
}

func (h *ChallengeHandler) handleError(c *gin.Context, userID string, err error) {
	switch {
	case errors.Is(err, tracker.ErrValidation):
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, tracker.ErrOutOfRange):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, tracker.ErrInvalidOperation), errors.Is(err, tracker.ErrChallengeComplete):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, tracker.ErrItemNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUserIDRequired):
		abortWithError(c, http.StatusBadRequest, "User ID is required")
	default:
		log.Error("challenge request failed", "userId", userID, "err", err)
		abortWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
