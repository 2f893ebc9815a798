package http

import (
	"context"
	"encoding/json"
	"net/http"

	"classquiz-service/internal/app"
	"classquiz-service/internal/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// Handler bundles the services behind the REST surface.
type Handler struct {
	accounts    *app.AccountService
	quizzes     *app.QuizService
	submissions *app.SubmissionService
	ranking     *app.RankingService
	tokens      *auth.TokenManager
	validate    *validator.Validate
}

func NewHandler(accounts *app.AccountService, quizzes *app.QuizService, submissions *app.SubmissionService, ranking *app.RankingService, tokens *auth.TokenManager) *Handler {
	return &Handler{
		accounts:    accounts,
		quizzes:     quizzes,
		submissions: submissions,
		ranking:     ranking,
		tokens:      tokens,
		validate:    validator.New(),
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Please fill in all fields correctly")
		return false
	}
	return true
}

type registerRequest struct {
	FullName        string `json:"fullName" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	Role            string `json:"role" validate:"required"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}
	err := h.accounts.Register(r.Context(), app.RegisterInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusCreated, "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}
	token, user, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

type createQuestionRequest struct {
	QuizTitle     string   `json:"quizTitle" validate:"required"`
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,len=4,dive,required"`
	CorrectOption *int     `json:"correctOption" validate:"required,gte=0,lte=3"`
	ExamDuration  int      `json:"examDuration" validate:"required,gt=0"`
}

func (h *Handler) createQuestion(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	var req createQuestionRequest
	if !h.decode(w, r, &req) {
		return
	}
	_, err := h.quizzes.CreateQuestion(r.Context(), app.CreateQuestionInput{
		QuizTitle:     req.QuizTitle,
		Text:          req.Question,
		Options:       req.Options,
		CorrectOption: *req.CorrectOption,
		ExamDuration:  req.ExamDuration,
		CreatedBy:     claims.UserID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Question created successfully")
}

func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.quizzes.ListQuestions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *Handler) listQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizzes.ListQuizzes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

func (h *Handler) quizQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.quizzes.QuizQuestions(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

type renameQuizRequest struct {
	Title string `json:"title" validate:"required"`
}

func (h *Handler) renameQuiz(w http.ResponseWriter, r *http.Request) {
	var req renameQuizRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.quizzes.RenameQuiz(r.Context(), mux.Vars(r)["id"], req.Title); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Quiz updated successfully")
}

func (h *Handler) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	if err := h.quizzes.DeleteQuiz(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Quiz deleted successfully")
}

type submitAnswersRequest struct {
	QuizTitle string         `json:"quizTitle" validate:"required"`
	Answers   map[string]int `json:"answers" validate:"required"`
}

func (h *Handler) submitAnswers(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	var req submitAnswersRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.submissions.SubmitAnswers(r.Context(), claims.UserID, req.QuizTitle, req.Answers); err != nil {
		writeError(w, err)
		return
	}
	// Push a fresh leaderboard to websocket subscribers off the request
	// path. The request context dies when this handler returns, so the
	// publish runs on its own context.
	go h.ranking.Publish(context.Background())
	writeMessage(w, http.StatusOK, "Answers submitted successfully")
}

func (h *Handler) studentAnswers(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	answers, err := h.submissions.StudentAnswers(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answers)
}

func (h *Handler) rankingList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.ranking.Ranking(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
