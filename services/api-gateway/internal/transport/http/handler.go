package handlers

import (
	"net/http"

	"learnboard/pkg/api"

	"github.com/gin-gonic/gin"
)

var (
	loginRoute = route{
		name:    "login",
		method:  http.MethodPost,
		message: "Login Failed: Internal Server Error",
		payload: func() any { return &api.LoginRequest{} },
	}
	registerRoute = route{
		name:    "register",
		method:  http.MethodPost,
		message: "Registration Failed: Internal Server Error",
		payload: func() any { return &api.RegisterRequest{} },
	}
	verifyTokenRoute = route{
		name:    "verify-token",
		method:  http.MethodGet,
		message: "Token verification failed",
	}
)

type AuthHandler struct {
	proxy
}

func NewAuthHandler(backend Backend) *AuthHandler {
	return &AuthHandler{proxy{backend: backend}}
}

// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	h.forward(c, loginRoute, "/login/")
}

// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	h.forward(c, registerRoute, "/register/")
}

// GET /api/verify-token
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	h.forward(c, verifyTokenRoute, "/verify-token/")
}
