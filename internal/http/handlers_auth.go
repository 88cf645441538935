package http

import (
	"errors"
	"net/http"
	"sync/atomic"

	"obras/internal/auth"
	"obras/internal/log"
)

type loginPage struct {
	Error string
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		// Already signed in: straight to the overview.
		if cookie, err := r.Cookie(s.cookieName); err == nil {
			if _, ok := s.sessions.Get(cookie.Value); ok {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
		}
		s.render(w, r, "login.html", loginPage{})
	case http.MethodPost:
		s.handleLoginSubmit(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, r, "login.html", loginPage{Error: "Requisição inválida"})
		return
	}
	username := sanitizeInput(r.Form.Get("username"))
	password := r.Form.Get("password")

	user, err := s.users.Verify(r.Context(), username, password)
	if err != nil {
		atomic.AddInt64(&s.metrics.loginFailures, 1)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.WarnContext(r.Context(), "Login rejected",
				log.FieldOperation, log.OpLogin,
				log.FieldUsername, username)
			w.WriteHeader(http.StatusUnauthorized)
			s.render(w, r, "login.html", loginPage{Error: "Usuário ou senha incorretos"})
			return
		}
		s.logger.ErrorContext(r.Context(), "Login failed",
			log.FieldOperation, log.OpLogin, log.FieldError, err)
		w.WriteHeader(http.StatusServiceUnavailable)
		s.render(w, r, "login.html", loginPage{Error: "Serviço indisponível, tente novamente"})
		return
	}

	token := s.sessions.Create(user)
	s.setSessionCookie(w, token)
	s.logger.InfoContext(r.Context(), "Login accepted",
		log.FieldOperation, log.OpLogin,
		log.FieldUsername, user.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if cookie, err := r.Cookie(s.cookieName); err == nil {
		s.sessions.Delete(cookie.Value)
	}
	s.clearSessionCookie(w)
	s.logger.InfoContext(r.Context(), "Logout", log.FieldOperation, log.OpLogout)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
