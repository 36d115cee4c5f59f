package debugapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marmos91/actionlib/internal/cli/health"
	"github.com/marmos91/actionlib/pkg/actionlib"
)

var startedAt = time.Now()

// GoalSummary is the debug API's wire representation of a single
// tracked goal, flattened out of actionlib.GoalStatus for readability.
type GoalSummary struct {
	ID     string    `json:"id"`
	Stamp  time.Time `json:"stamp"`
	Status string    `json:"status"`
	Text   string    `json:"text,omitempty"`
}

func toGoalSummary(status actionlib.GoalStatus) GoalSummary {
	return GoalSummary{
		ID:     status.ID.ID,
		Stamp:  status.ID.Stamp.Time(),
		Status: status.Status.String(),
		Text:   status.Text,
	}
}

func (h *handlers) listGoals(w http.ResponseWriter, r *http.Request) {
	array := h.server.Snapshot()
	summaries := make([]GoalSummary, 0, len(array.Statuses))
	for _, status := range array.Statuses {
		summaries = append(summaries, toGoalSummary(status))
	}
	WriteJSONOK(w, summaries)
}

func (h *handlers) cancelGoal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		BadRequest(w, "goal id is required")
		return
	}

	filter := actionlib.GoalID{ID: id}
	h.server.RequestCancel(r.Context(), filter)
	WriteNoContent(w)
}

func (h *handlers) liveness(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(startedAt)
	resp := health.Response{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
	}
	resp.Data.Service = "actionctl"
	resp.Data.StartedAt = startedAt.Format(time.RFC3339)
	resp.Data.Uptime = uptime.String()
	resp.Data.UptimeSec = int64(uptime.Seconds())
	WriteJSONOK(w, resp)
}
