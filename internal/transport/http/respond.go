package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"classquiz-service/internal/auth"
	"classquiz-service/internal/domain"
)

type messagePayload struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messagePayload{Message: message})
}

// writeError maps domain errors onto the HTTP status taxonomy. Anything
// unrecognized is a store or infrastructure failure and surfaces as 500.
func writeError(w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		writeMessage(w, http.StatusBadRequest, validation.Message)
	case errors.Is(err, domain.ErrEmailTaken):
		writeMessage(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeMessage(w, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, domain.ErrQuizNotFound):
		writeMessage(w, http.StatusNotFound, "Quiz not found")
	case errors.Is(err, domain.ErrQuestionNotFound):
		writeMessage(w, http.StatusNotFound, "Question not found")
	case errors.Is(err, domain.ErrNoAnswers):
		writeMessage(w, http.StatusNotFound, "No answers found")
	case errors.Is(err, auth.ErrInvalidToken):
		writeMessage(w, http.StatusForbidden, "Forbidden: Invalid token")
	default:
		log.Printf("internal error: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
	}
}
