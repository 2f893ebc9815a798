package http

import (
	"net/http"

	"classquiz-service/internal/domain"

	"github.com/gorilla/mux"
)

// NewRouter wires the REST surface and the ranking websocket.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", h.register).Methods(http.MethodPost)
	api.HandleFunc("/login", h.login).Methods(http.MethodPost)

	authed := func(next http.HandlerFunc) http.Handler {
		return h.authenticate(next)
	}
	teacher := func(next http.HandlerFunc) http.Handler {
		return h.authenticate(requireRole(domain.RoleTeacher, next))
	}
	student := func(next http.HandlerFunc) http.Handler {
		return h.authenticate(requireRole(domain.RoleStudent, next))
	}

	api.Handle("/questions", teacher(h.createQuestion)).Methods(http.MethodPost)
	api.Handle("/questions", authed(h.listQuestions)).Methods(http.MethodGet)
	api.Handle("/quizzes", authed(h.listQuizzes)).Methods(http.MethodGet)
	api.Handle("/quizzes/{id}/questions", authed(h.quizQuestions)).Methods(http.MethodGet)
	api.Handle("/quizzes/{id}", teacher(h.renameQuiz)).Methods(http.MethodPut)
	api.Handle("/quizzes/{id}", teacher(h.deleteQuiz)).Methods(http.MethodDelete)
	api.Handle("/submit-answers", student(h.submitAnswers)).Methods(http.MethodPost)
	api.Handle("/student-answers", student(h.studentAnswers)).Methods(http.MethodGet)
	api.Handle("/ranking", teacher(h.rankingList)).Methods(http.MethodGet)

	r.HandleFunc("/ws/ranking", h.serveRankingWS)

	return r
}
