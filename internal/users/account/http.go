// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kinora/kinora/internal/platform/middleware"
	requestutil "github.com/kinora/kinora/internal/platform/request"
	"github.com/kinora/kinora/internal/platform/respond"
	"github.com/kinora/kinora/internal/platform/validate"
	"github.com/kinora/kinora/internal/users/auth"
)

// HTTPHandler exposes the profile management endpoints.
type HTTPHandler struct {
	service      *Service
	roleResolver middleware.RoleResolver
}

// NewHTTPHandler constructs an account [HTTPHandler].
func NewHTTPHandler(service *Service, roleResolver middleware.RoleResolver) *HTTPHandler {
	return &HTTPHandler{service: service, roleResolver: roleResolver}
}

// Routes mounts the profile endpoints:
//
//	GET    /me           — current user's profile
//	PUT    /me           — partial profile update
//	PUT    /me/password  — change password (requires current password)
//	DELETE /me           — delete own account
//	DELETE /{id}         — delete any account (admin only)
func (handler *HTTPHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Get("/me", handler.profile)
		protected.Put("/me", handler.updateProfile)
		protected.Put("/me/password", handler.changePassword)
		protected.Delete("/me", handler.deleteSelf)
	})

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin(handler.roleResolver))
		admin.Delete("/{id}", handler.deleteByID)
	})

	return router
}

func (handler *HTTPHandler) profile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Profile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateProfileRequest is the PUT /me payload. Absent fields stay unchanged.
type updateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Age       *int    `json:"age"`
	AvatarURL *string `json:"avatarUrl"`
}

func (handler *HTTPHandler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload updateProfileRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if payload.FirstName != nil {
		validator.Required("firstName", *payload.FirstName).MaxLen("firstName", *payload.FirstName, 100)
	}
	if payload.LastName != nil {
		validator.MaxLen("lastName", *payload.LastName, 100)
	}
	if payload.Age != nil {
		validator.Range("age", *payload.Age, 0, 150)
	}
	if payload.AvatarURL != nil {
		validator.MaxLen("avatarUrl", *payload.AvatarURL, 2048)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Age:       payload.Age,
		AvatarURL: payload.AvatarURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// changePasswordRequest is the PUT /me/password payload.
type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (handler *HTTPHandler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload changePasswordRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.
		Required("currentPassword", payload.CurrentPassword).
		Required("newPassword", payload.NewPassword).
		MinLen("newPassword", payload.NewPassword, auth.MinPasswordLength).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ChangePassword(request.Context(), userID, payload.CurrentPassword, payload.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Password updated successfully")
}

func (handler *HTTPHandler) deleteSelf(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Account deleted successfully")
}

func (handler *HTTPHandler) deleteByID(writer http.ResponseWriter, request *http.Request) {
	targetID := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID("id", targetID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), targetID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
