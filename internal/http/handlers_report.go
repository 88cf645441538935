package http

import (
	"errors"
	"net/http"

	"obras/internal/auth"
	"obras/internal/core"
	"obras/internal/log"
)

func sessionFrom(r *http.Request) auth.Session {
	sess, _ := r.Context().Value(sessionKey{}).(auth.Session)
	return sess
}

// statusRow is the rendered form of one project's financial status.
type statusRow struct {
	ID         string
	Name       string
	Budget     string
	Spent      string
	Remaining  string
	StartDate  string
	OverBudget bool
}

func statusRows(statuses []core.FinancialStatus) []statusRow {
	rows := make([]statusRow, 0, len(statuses))
	for _, st := range statuses {
		rows = append(rows, statusRow{
			ID:         st.ProjectID,
			Name:       st.Name,
			Budget:     st.InitialBudget.Display(),
			Spent:      st.TotalSpent.Display(),
			Remaining:  st.Remaining.Display(),
			StartDate:  st.StartDate.Display(),
			OverBudget: st.Remaining.Cents < 0,
		})
	}
	return rows
}

type overviewPage struct {
	UserName string
	Rows     []statusRow
	Error    string
}

// handleOverview renders the financial status of every project.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	page := overviewPage{UserName: sessionFrom(r).Name}
	statuses, err := s.tracker.Status(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Status read failed", log.FieldError, err)
		page.Error = "Não foi possível carregar os dados das obras"
	} else {
		page.Rows = statusRows(statuses)
	}
	s.render(w, r, "status.html", page)
}

type reportPage struct {
	UserName string
	Projects []statusRow

	Selected *statusRow
	History  []historyRow
	Error    string
}

type historyRow struct {
	Week   int
	Date   string
	Amount string
}

// handleReport renders one project's status with its weekly history.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	page := reportPage{UserName: sessionFrom(r).Name}
	statuses, err := s.tracker.Status(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Status read failed", log.FieldError, err)
		page.Error = "Não foi possível carregar os dados das obras"
		s.render(w, r, "report.html", page)
		return
	}
	page.Projects = statusRows(statuses)

	projectID := sanitizeInput(r.URL.Query().Get("project_id"))
	if projectID == "" {
		s.render(w, r, "report.html", page)
		return
	}

	st, history, err := s.tracker.Report(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			page.Error = "Obra não encontrada"
		} else {
			s.logger.ErrorContext(r.Context(), "Report read failed",
				log.FieldError, err, log.FieldProjectID, projectID)
			page.Error = "Não foi possível carregar o relatório"
		}
		s.render(w, r, "report.html", page)
		return
	}

	selected := statusRows([]core.FinancialStatus{st})[0]
	page.Selected = &selected
	for _, e := range history {
		page.History = append(page.History, historyRow{
			Week:   e.Week,
			Date:   e.ReferenceDate.Display(),
			Amount: e.Amount.Display(),
		})
	}
	s.render(w, r, "report.html", page)
}
