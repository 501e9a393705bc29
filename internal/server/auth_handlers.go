package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
	Code     string `json:"code"`
}

func (s *Server) handleSignUp(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	user, err := s.auth.SignUp(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return serviceError(c, err, "")
	}

	token, err := s.auth.IssueSession(user)
	if err != nil {
		return serviceError(c, err, "")
	}
	setSessionCookie(c, token, s.auth.SessionTTL())
	return c.JSON(http.StatusCreated, echo.Map{"user": user})
}

func (s *Server) handleSignIn(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	user, err := s.auth.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return serviceError(c, err, "")
	}

	token, err := s.auth.IssueSession(user)
	if err != nil {
		return serviceError(c, err, "")
	}
	setSessionCookie(c, token, s.auth.SessionTTL())
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

func (s *Server) handleSignOut(c echo.Context) error {
	clearSessionCookie(c)
	return c.JSON(http.StatusOK, echo.Map{"message": "Signed out successfully"})
}

func (s *Server) handleForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email is required"})
	}

	if err := s.auth.IssuePasswordReset(c.Request().Context(), req.Email); err != nil {
		return serviceError(c, err, "")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password reset email sent successfully"})
}

func (s *Server) handleResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if req.Password == "" || req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Password and verification code are required"})
	}

	if err := s.auth.ResetPassword(c.Request().Context(), req.Code, req.Password); err != nil {
		return serviceError(c, err, "")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password updated successfully"})
}

// handlePasswordResetCallback lands the link from the reset email and
// forwards the browser to the reset form. Anything that is not a
// recovery link falls back to the sign-in page.
func (s *Server) handlePasswordResetCallback(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		token = c.QueryParam("token_hash")
	}
	if token == "" {
		token = c.QueryParam("access_token")
	}

	if c.QueryParam("type") == "recovery" && token != "" {
		return c.Redirect(http.StatusFound, s.siteURL+"/reset-password?token_hash="+token)
	}
	return c.Redirect(http.StatusFound, s.siteURL+"/sign-in")
}
