package http

import (
	"errors"
	"net/http"
	"strconv"

	"obras/internal/core"
	"obras/internal/log"
)

type expenseRow struct {
	ProjectID string
	Week      int
	Date      string
	Amount    string
}

type expensesPage struct {
	UserName string
	Projects []projectRow
	Rows     []expenseRow
	Success  string
	Error    string
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.renderExpenses(w, r)
	case http.MethodPost:
		s.handleExpenseRegister(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) renderExpenses(w http.ResponseWriter, r *http.Request) {
	page := expensesPage{UserName: sessionFrom(r).Name}
	page.Success, page.Error = flash(r)

	snap, err := s.tracker.Snapshot(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Snapshot read failed", log.FieldError, err)
		page.Error = "Não foi possível carregar os dados das obras"
		s.render(w, r, "expenses.html", page)
		return
	}
	for _, p := range snap.Projects {
		page.Projects = append(page.Projects, projectRow{ID: p.ID, Name: p.Name})
	}
	// Optional per-project filter for the listing.
	filter := core.NormalizeID(r.URL.Query().Get("project_id"))
	for _, e := range snap.Expenses {
		if filter != "" && core.NormalizeID(e.ProjectID) != filter {
			continue
		}
		page.Rows = append(page.Rows, expenseRow{
			ProjectID: core.NormalizeID(e.ProjectID),
			Week:      e.Week,
			Date:      e.ReferenceDate.Display(),
			Amount:    e.Amount.Display(),
		})
	}
	s.render(w, r, "expenses.html", page)
}

// parseExpenseForm reads the shared fields of the register and update forms.
func parseExpenseForm(r *http.Request) (projectID string, amount core.Money, ref core.Date, err error) {
	if err = r.ParseForm(); err != nil {
		return "", core.Money{}, core.Date{}, errors.New("formato de requisição inválido")
	}
	projectID = sanitizeInput(r.Form.Get("project_id"))
	amount, err = core.ParseMoney(r.Form.Get("amount"))
	if err != nil {
		return "", core.Money{}, core.Date{}, errors.New("valor inválido")
	}
	ref, err = parseDateField(r.Form.Get("reference_date"))
	if err != nil {
		return "", core.Money{}, core.Date{}, errors.New("data de referência inválida")
	}
	return projectID, amount, ref, nil
}

func (s *Server) handleExpenseRegister(w http.ResponseWriter, r *http.Request) {
	projectID, amount, ref, err := parseExpenseForm(r)
	if err != nil {
		redirectWith(w, r, "/expenses", "error", err.Error())
		return
	}

	e, err := s.tracker.RegisterExpense(r.Context(), projectID, amount, ref)
	switch {
	case errors.Is(err, core.ErrEmptyID):
		redirectWith(w, r, "/expenses", "error", "Selecione uma obra")
	case errors.Is(err, core.ErrNegativeAmount):
		redirectWith(w, r, "/expenses", "error", "O valor não pode ser negativo")
	case err != nil:
		s.logger.ErrorContext(r.Context(), "Expense registration failed",
			log.FieldError, err, log.FieldProjectID, projectID)
		redirectWith(w, r, "/expenses", "error", "Erro ao salvar a despesa")
	default:
		redirectWith(w, r, "/expenses", "ok",
			"Semana "+strconv.Itoa(e.Week)+" registrada para a obra "+e.ProjectID)
	}
}

func (s *Server) handleExpenseUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	projectID, amount, ref, err := parseExpenseForm(r)
	if err != nil {
		redirectWith(w, r, "/expenses", "error", err.Error())
		return
	}
	week, err := strconv.Atoi(sanitizeInput(r.Form.Get("week_number")))
	if err != nil {
		redirectWith(w, r, "/expenses", "error", "Número de semana inválido")
		return
	}

	err = s.tracker.UpdateExpense(r.Context(), projectID, week, amount, ref)
	switch {
	case errors.Is(err, core.ErrNotFound):
		redirectWith(w, r, "/expenses", "error",
			"Semana "+strconv.Itoa(week)+" da obra "+projectID+" não encontrada")
	case errors.Is(err, core.ErrEmptyID):
		redirectWith(w, r, "/expenses", "error", "Selecione uma obra")
	case errors.Is(err, core.ErrInvalidWeek):
		redirectWith(w, r, "/expenses", "error", "Número de semana inválido")
	case errors.Is(err, core.ErrNegativeAmount):
		redirectWith(w, r, "/expenses", "error", "O valor não pode ser negativo")
	case err != nil:
		s.logger.ErrorContext(r.Context(), "Expense update failed",
			log.FieldError, err, log.FieldProjectID, projectID, log.FieldWeek, week)
		redirectWith(w, r, "/expenses", "error", "Erro ao atualizar a despesa")
	default:
		redirectWith(w, r, "/expenses", "ok",
			"Semana "+strconv.Itoa(week)+" da obra "+core.NormalizeID(projectID)+" atualizada")
	}
}
