package api

import (
	"alcyxob/win-tracker/internal/domain"
	"alcyxob/win-tracker/internal/repository/memory"
	"alcyxob/win-tracker/internal/service"
	"alcyxob/win-tracker/internal/tracker"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>tracker</html>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "app.js"), []byte("console.log(1)"), 0o600))

	repo := memory.NewSnapshotRepository()
	locks := service.NewUserLocks()
	clock := func() time.Time { return t0 }

	router := gin.New()
	SetupRoutes(router, staticDir,
		service.NewSyncService(repo, nil, locks, clock),
		service.NewChallengeService(repo, locks, clock),
	)
	return router, staticDir
}

func do(t *testing.T, router http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	var body map[string]string
	decode(t, w, &body)
	return body["error"]
}

func TestPing(t *testing.T) {
	router, _ := newTestRouter(t)
	w := do(t, router, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestSyncRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)

	state := domain.NewChallengeState()
	require.NoError(t, tracker.SetGoal(state, words(tracker.MinGoalWords)))
	_, err := tracker.Start(state, t0)
	require.NoError(t, err)

	w := do(t, router, http.MethodPost, "/api/sync", gin.H{"userId": "user_1", "data": state})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var synced SyncResponse
	decode(t, w, &synced)
	assert.True(t, synced.Success)
	assert.Equal(t, "Data synced successfully", synced.Message)
	assert.Equal(t, int64(1), synced.Revision)

	w = do(t, router, http.MethodGet, "/api/sync/user_1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got DownloadResponse
	decode(t, w, &got)
	assert.True(t, got.Success)
	require.NotNil(t, got.Data.Plan)
	assert.Len(t, got.Data.Plan.Days, domain.ChallengeDays)
	assert.Equal(t, state.GoalText, got.Data.GoalText)

	w = do(t, router, http.MethodDelete, "/api/sync/user_1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, router, http.MethodGet, "/api/sync/user_1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User data not found", errorMessage(t, w))
}

func TestSyncErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/sync", gin.H{"data": domain.NewChallengeState()})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User ID is required", errorMessage(t, w))

	w = do(t, router, http.MethodPost, "/api/sync", gin.H{"userId": "user_1", "data": gin.H{"plan": gin.H{"days": []gin.H{{"status": "current"}}}}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, router, http.MethodPost, "/api/sync", gin.H{"userId": "user_1", "data": "not an object"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, router, http.MethodGet, "/api/sync/"+strings.Repeat("x", maxUserIDLength+1), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodGet, "/api/sync/user_1/export", nil)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestCreateUser(t *testing.T) {
	router, _ := newTestRouter(t)
	w := do(t, router, http.MethodPost, "/api/users", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]string
	decode(t, w, &body)
	assert.True(t, strings.HasPrefix(body["userId"], "user_"))
}

func TestChallengeEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)
	const base = "/api/v1/users/user_1"

	w := do(t, router, http.MethodGet, base+"/challenge", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view service.ChallengeView
	decode(t, w, &view)
	assert.Equal(t, -1, view.ActiveDayIndex)

	w = do(t, router, http.MethodPut, base+"/goal", GoalRequest{Text: words(tracker.MinGoalWords - 1)})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, router, http.MethodPost, base+"/days/0/end", nil)
	assert.Equal(t, http.StatusConflict, w.Code, "not started")

	w = do(t, router, http.MethodPut, base+"/goal", GoalRequest{Text: words(tracker.MinGoalWords)})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, router, http.MethodPost, base+"/challenge/start", nil)
	require.Equal(t, http.StatusOK, w.Code)

	yes := true
	for _, item := range []domain.ChecklistItem{domain.ItemShower, domain.ItemClean, domain.ItemPushups} {
		w = do(t, router, http.MethodPatch, base+"/days/0/checklist", ChecklistRequest{Item: item, Value: &yes})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodPatch, base+"/days/0/checklist", ChecklistRequest{Item: domain.ItemJournalDone, Value: &yes})
	assert.Equal(t, http.StatusConflict, w.Code)
	w = do(t, router, http.MethodPatch, base+"/days/90/checklist", ChecklistRequest{Item: domain.ItemShower, Value: &yes})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, router, http.MethodPatch, base+"/days/abc/checklist", ChecklistRequest{Item: domain.ItemShower, Value: &yes})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, router, http.MethodPatch, base+"/days/0/checklist", gin.H{"item": "shower"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "value is required")

	journal := JournalRequest{
		Gratitude: [3]string{"a", "b", "c"},
		Summary:   words(tracker.MinSummaryWords),
		Rating:    11,
	}
	w = do(t, router, http.MethodPut, base+"/days/0/journal", journal)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var dayRes struct {
		Result    tracker.DayResult     `json:"result"`
		Challenge service.ChallengeView `json:"challenge"`
	}
	decode(t, w, &dayRes)
	assert.True(t, dayRes.Result.AutoWon)
	assert.Equal(t, domain.StatusWin, dayRes.Result.Status)
	assert.Equal(t, tracker.MaxRating, dayRes.Challenge.State.Plan.Days[0].Journal.Rating)

	w = do(t, router, http.MethodPost, base+"/days/0/end", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var endRes struct {
		Result tracker.EndDayResult `json:"result"`
	}
	decode(t, w, &endRes)
	assert.Equal(t, tracker.OutcomeAlreadyWon, endRes.Result.Outcome)
	assert.Equal(t, 1, endRes.Result.NextIndex)

	w = do(t, router, http.MethodPost, base+"/days/1/end", EndDayRequest{ConfirmLoss: true})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &endRes)
	assert.Equal(t, tracker.OutcomeLost, endRes.Result.Outcome)

	w = do(t, router, http.MethodGet, base+"/challenge", nil)
	decode(t, w, &view)
	assert.True(t, view.LossWarning)
	assert.Equal(t, 2, view.ActiveDayIndex)
	assert.Equal(t, 1, view.State.Ledger.DaysWon)
	assert.Equal(t, 1, view.State.Ledger.DaysLost)
}

func TestTodoAndReminderEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)
	const base = "/api/v1/users/user_1"

	w := do(t, router, http.MethodPost, base+"/todos", TodoRequest{Text: "  "})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, router, http.MethodPost, base+"/todos", TodoRequest{Text: "plan meals"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Result domain.Todo `json:"result"`
	}
	decode(t, w, &created)

	done := true
	w = do(t, router, http.MethodPatch, base+"/todos/"+created.Result.ID, CompletedRequest{Completed: &done})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, router, http.MethodDelete, base+"/todos/"+created.Result.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, router, http.MethodDelete, base+"/todos/"+created.Result.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodPost, base+"/reminders", ReminderRequest{Time: "25:00", Text: "stretch"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	w = do(t, router, http.MethodPost, base+"/reminders", ReminderRequest{Time: "06:45", Text: "stretch"})
	require.Equal(t, http.StatusCreated, w.Code)
	var reminder struct {
		Result domain.Reminder `json:"result"`
	}
	decode(t, w, &reminder)
	w = do(t, router, http.MethodPatch, base+"/reminders/"+reminder.Result.ID, CompletedRequest{Completed: &done})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, router, http.MethodDelete, base+"/reminders/"+reminder.Result.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestStaticClient(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/app.js", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w = do(t, router, http.MethodGet, "/calendar/day/3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tracker")

	w = do(t, router, http.MethodGet, "/../../etc/passwd", nil)
	assert.NotContains(t, w.Body.String(), "root:")

	w = do(t, router, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
