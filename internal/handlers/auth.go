package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Username string `json:"username" example:"reviewer"`
	Email    string `json:"email" example:"reviewer@example.com"`
	Password string `json:"password" example:"password123"`
}

// LoginRequest is the sign-in payload.
type LoginRequest struct {
	Email    string `json:"email" example:"reviewer@example.com"`
	Password string `json:"password" example:"password123"`
}

type registerResponse struct {
	Message string `json:"message" example:"User registered successfully"`
	UserID  string `json:"userId"`
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      RegisterRequest  true  "new account"
// @Success      201    {object}  registerResponse
// @Failure      400    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input RegisterRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	id, err := h.services.Register(c.Request.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_register_failed", "email", input.Email, "err", err)
		}
		h.writeError(c, err, "auth_register_error")
		return
	}

	c.JSON(http.StatusCreated, registerResponse{Message: "User registered successfully", UserID: id})
}

// @Summary      Log in and obtain a token
// @Description  Unknown email and wrong password produce the same response.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      LoginRequest  true  "credentials"
// @Success      200    {object}  service.LoginResult
// @Failure      400    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	res, err := h.services.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_login_failed", "email", input.Email, "err", err)
		}
		h.writeError(c, err, "auth_login_error")
		return
	}

	c.JSON(http.StatusOK, res)
}
