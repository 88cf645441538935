package http

import (
	"errors"
	"net/http"

	"obras/internal/core"
	"obras/internal/log"
)

type projectRow struct {
	ID        string
	Name      string
	Budget    string
	StartDate string
}

type projectsPage struct {
	UserName string
	NextID   string
	Rows     []projectRow
	Success  string
	Error    string
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.renderProjects(w, r)
	case http.MethodPost:
		s.handleProjectRegister(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) renderProjects(w http.ResponseWriter, r *http.Request) {
	page := projectsPage{UserName: sessionFrom(r).Name}
	page.Success, page.Error = flash(r)

	snap, err := s.tracker.Snapshot(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Snapshot read failed", log.FieldError, err)
		page.Error = "Não foi possível carregar os dados das obras"
		s.render(w, r, "projects.html", page)
		return
	}
	page.NextID = core.NextProjectID(snap.Projects)
	for _, p := range snap.Projects {
		page.Rows = append(page.Rows, projectRow{
			ID:        p.ID,
			Name:      p.Name,
			Budget:    p.InitialBudget.Display(),
			StartDate: p.StartDate.Display(),
		})
	}
	s.render(w, r, "projects.html", page)
}

// parseProjectForm reads the shared fields of the register and update forms.
func parseProjectForm(r *http.Request) (name string, budget core.Money, start core.Date, err error) {
	if err = r.ParseForm(); err != nil {
		return "", core.Money{}, core.Date{}, errors.New("formato de requisição inválido")
	}
	name = sanitizeInput(r.Form.Get("name"))
	budget, err = core.ParseMoney(r.Form.Get("initial_budget"))
	if err != nil {
		return "", core.Money{}, core.Date{}, errors.New("orçamento inválido")
	}
	start, err = parseDateField(r.Form.Get("start_date"))
	if err != nil {
		return "", core.Money{}, core.Date{}, errors.New("data de início inválida")
	}
	return name, budget, start, nil
}

func (s *Server) handleProjectRegister(w http.ResponseWriter, r *http.Request) {
	name, budget, start, err := parseProjectForm(r)
	if err != nil {
		redirectWith(w, r, "/projects", "error", err.Error())
		return
	}

	p, err := s.tracker.RegisterProject(r.Context(), name, budget, start)
	switch {
	case errors.Is(err, core.ErrEmptyName):
		redirectWith(w, r, "/projects", "error", "Informe o nome da obra")
	case errors.Is(err, core.ErrInvalidBudget):
		redirectWith(w, r, "/projects", "error", "O orçamento inicial deve ser maior que zero")
	case err != nil:
		s.logger.ErrorContext(r.Context(), "Project registration failed", log.FieldError, err)
		redirectWith(w, r, "/projects", "error", "Erro ao salvar a obra")
	default:
		redirectWith(w, r, "/projects", "ok", "Obra "+p.ID+" cadastrada: "+p.Name)
	}
}

func (s *Server) handleProjectUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	name, budget, start, err := parseProjectForm(r)
	if err != nil {
		redirectWith(w, r, "/projects", "error", err.Error())
		return
	}
	id := sanitizeInput(r.Form.Get("id"))

	err = s.tracker.UpdateProject(r.Context(), id, name, budget, start)
	switch {
	case errors.Is(err, core.ErrNotFound):
		redirectWith(w, r, "/projects", "error", "Obra "+id+" não encontrada")
	case errors.Is(err, core.ErrEmptyName):
		redirectWith(w, r, "/projects", "error", "Informe o nome da obra")
	case errors.Is(err, core.ErrInvalidBudget):
		redirectWith(w, r, "/projects", "error", "Orçamento inválido")
	case err != nil:
		s.logger.ErrorContext(r.Context(), "Project update failed",
			log.FieldError, err, log.FieldProjectID, id)
		redirectWith(w, r, "/projects", "error", "Erro ao atualizar a obra")
	default:
		redirectWith(w, r, "/projects", "ok", "Obra "+core.NormalizeID(id)+" atualizada")
	}
}
