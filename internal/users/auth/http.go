// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/kinora/kinora/internal/platform/request"
	"github.com/kinora/kinora/internal/platform/respond"
	"github.com/kinora/kinora/internal/platform/validate"
)

// HTTPHandler exposes the auth use cases over HTTP.
type HTTPHandler struct {
	service *Service

	// allowDemoLogin gates the demo-login route. When false the route is not
	// mounted at all, so probing it yields a plain 404.
	allowDemoLogin bool
}

// NewHTTPHandler constructs an auth [HTTPHandler].
func NewHTTPHandler(service *Service, allowDemoLogin bool) *HTTPHandler {
	return &HTTPHandler{service: service, allowDemoLogin: allowDemoLogin}
}

// Routes mounts the authentication endpoints:
//
//	POST   /register    — create an account, returns {token, user}
//	POST   /login       — verify credentials, returns {token, user}
//	DELETE /logout      — revoke the presented bearer token
//	POST   /demo-login  — shared demo account (only when enabled)
func (handler *HTTPHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Delete("/logout", handler.logout)

	if handler.allowDemoLogin {
		router.Post("/demo-login", handler.demoLogin)
	}

	return router
}

// registerRequest is the POST /register payload.
type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       *int   `json:"age"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (handler *HTTPHandler) register(writer http.ResponseWriter, request *http.Request) {
	var payload registerRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required(fieldFirstName, payload.FirstName).
		MaxLen(fieldFirstName, payload.FirstName, 100).
		MaxLen(fieldLastName, payload.LastName, 100).
		Required(fieldEmail, payload.Email).
		Email(fieldEmail, payload.Email).
		Required(fieldPassword, payload.Password).
		MinLen(fieldPassword, payload.Password, MinPasswordLength)
	if payload.Age != nil {
		validator.Range(fieldAge, *payload.Age, 0, 150)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	credentials, err := handler.service.Register(request.Context(), RegisterInput{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Age:       payload.Age,
		Email:     payload.Email,
		Password:  payload.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, credentials)
}

// loginRequest is the POST /login payload.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *HTTPHandler) login(writer http.ResponseWriter, request *http.Request) {
	var payload loginRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.
		Required(fieldEmail, payload.Email).
		Required(fieldPassword, payload.Password).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	credentials, err := handler.service.Login(request.Context(), payload.Email, payload.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, credentials)
}

// logout revokes the presented bearer token.
//
// The route is public and reads the Authorization header itself: a request
// with no token at all is a malformed logout (400), not an authentication
// failure (401).
func (handler *HTTPHandler) logout(writer http.ResponseWriter, request *http.Request) {
	token, ok := requestutil.BearerToken(request)
	if !ok {
		respond.Error(writer, request, validate.RequiredError("authorization", "Missing bearer token"))
		return
	}

	if err := handler.service.Logout(request.Context(), token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Logged out successfully")
}

func (handler *HTTPHandler) demoLogin(writer http.ResponseWriter, request *http.Request) {
	credentials, err := handler.service.DemoLogin(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, credentials)
}
