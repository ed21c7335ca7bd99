package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskrank/taskrank/internal/engine"
	"github.com/taskrank/taskrank/internal/task"
	"github.com/taskrank/taskrank/internal/telemetry"
)

// scoredTask is the wire shape for one ranked task.
type scoredTask struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
	Blocked bool    `json:"blocked"`
}

// analyzeResponse is returned by POST /api/tasks/analyze.
type analyzeResponse struct {
	ScoredTasks   []scoredTask       `json:"scored_tasks"`
	CyclicTaskIDs []string           `json:"cyclic_task_ids"`
	Warnings      []string           `json:"warnings,omitempty"`
	Rejected      []task.RecordError `json:"rejected,omitempty"`
}

// suggestion is one entry of GET /api/tasks/suggest, carrying the per-factor
// reason breakdown alongside the score.
type suggestion struct {
	ID     string           `json:"id"`
	Title  string           `json:"title"`
	Score  float64          `json:"score"`
	Reason engine.Breakdown `json:"reason"`
}

// handleAnalyze validates a batch of raw task records, persists the valid
// ones, and scores them. A batch with no valid record at all is a client
// error; a partially valid batch proceeds and reports the rejects alongside
// the ranking.
func (s *Server) handleAnalyze(c *gin.Context) {
	var records []map[string]any
	if err := c.ShouldBindJSON(&records); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON array of task records"})
		return
	}

	today := s.now()
	tasks, rejected := task.ValidateBatch(records, today)
	for _, re := range rejected {
		s.emit(telemetry.Event{Kind: telemetry.KindRecordRejected, Data: re})
	}
	if len(tasks) == 0 {
		c.JSON(http.StatusBadRequest, analyzeResponse{
			ScoredTasks:   []scoredTask{},
			CyclicTaskIDs: []string{},
			Rejected:      rejected,
		})
		return
	}

	saved, err := s.store.SaveTasks(c.Request.Context(), tasks)
	if err != nil {
		slog.Error("saving tasks failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not persist tasks"})
		return
	}

	res := s.runScoring(saved, today)

	out := analyzeResponse{
		ScoredTasks:   make([]scoredTask, 0, len(res.Ranked)),
		CyclicTaskIDs: res.Cyclic,
		Warnings:      res.Warnings,
		Rejected:      rejected,
	}
	for _, st := range res.Ranked {
		out.ScoredTasks = append(out.ScoredTasks, scoredTask{
			ID:      st.Task.ID,
			Title:   st.Task.Title,
			Score:   st.Score,
			Blocked: st.Blocked,
		})
	}
	c.JSON(http.StatusOK, out)
}

// handleSuggest ranks the stored task set and returns the top actionable
// tasks with their reason breakdowns.
func (s *Server) handleSuggest(c *gin.Context) {
	snapshot, err := s.store.LoadAll(c.Request.Context())
	if err != nil {
		slog.Error("loading tasks failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load tasks"})
		return
	}

	res := s.runScoring(snapshot, s.now())

	top := make([]suggestion, 0, s.suggestLimit)
	for _, st := range res.Ranked {
		if st.Blocked || len(top) >= s.suggestLimit {
			break
		}
		top = append(top, suggestion{
			ID:     st.Task.ID,
			Title:  st.Task.Title,
			Score:  st.Score,
			Reason: st.Breakdown,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"top_tasks":       top,
		"cyclic_task_ids": res.Cyclic,
		"warnings":        res.Warnings,
	})
}

// runScoring executes one engine run and mirrors its diagnostics into the
// telemetry stream.
func (s *Server) runScoring(snapshot []task.Task, today time.Time) engine.Result {
	s.emit(telemetry.Event{Kind: telemetry.KindRunStart, Data: map[string]int{"tasks": len(snapshot)}})
	res := s.engine.Run(snapshot, today)
	for _, id := range res.Cyclic {
		s.emit(telemetry.Event{Kind: telemetry.KindCycleDetected, TaskID: id})
	}
	for _, w := range res.Warnings {
		s.emit(telemetry.Event{Kind: telemetry.KindGraphWarning, Data: w})
	}
	s.emit(telemetry.Event{
		Kind: telemetry.KindRunDone,
		Data: map[string]int{"ranked": len(res.Ranked), "cyclic": len(res.Cyclic)},
	})
	return res
}

func (s *Server) emit(evt telemetry.Event) {
	if err := s.emitter.Emit(evt); err != nil {
		slog.Warn("telemetry write failed", "error", err)
	}
}
