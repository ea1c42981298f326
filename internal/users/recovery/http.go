// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package recovery

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/kinora/kinora/internal/platform/request"
	"github.com/kinora/kinora/internal/platform/respond"
	"github.com/kinora/kinora/internal/platform/validate"
	"github.com/kinora/kinora/internal/users/auth"
)

// genericForgotMessage is returned regardless of whether the address holds an
// account (unless the deployment opted into revealing existence).
const genericForgotMessage = "If an account with that email exists, a reset link has been sent."

// HTTPHandler exposes the password recovery endpoints.
type HTTPHandler struct {
	service *Service
}

// NewHTTPHandler constructs a recovery [HTTPHandler].
func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Routes mounts the recovery endpoints:
//
//	POST /forgot-password          — request a reset link
//	POST /reset-password/{token}   — consume the link, set a new password
func (handler *HTTPHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password/{token}", handler.resetPassword)

	return router
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (handler *HTTPHandler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var payload forgotPasswordRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.
		Required("email", payload.Email).
		Email("email", payload.Email).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ForgotPassword(request.Context(), payload.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, genericForgotMessage)
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

func (handler *HTTPHandler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	token := requestutil.Param(request, "token")

	var payload resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.
		Required("password", payload.Password).
		MinLen("password", payload.Password, auth.MinPasswordLength).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ResetPassword(request.Context(), token, payload.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Password updated successfully")
}
