package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"todoapi/internal/service"
)

type updateProfileRequest struct {
	FullName *string `json:"full_name"`
	Bio      *string `json:"bio"`
	Website  *string `json:"website"`
	Location *string `json:"location"`
}

func (s *Server) handleGetProfile(c echo.Context) error {
	user := currentUser(c)
	profile, err := s.profiles.Get(c.Request().Context(), user.ID)
	if err != nil {
		return serviceError(c, err, "")
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": profile})
}

func (s *Server) handleUpdateProfile(c echo.Context) error {
	user := currentUser(c)
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	profile, err := s.profiles.Update(c.Request().Context(), user.ID, service.ProfileUpdate{
		FullName: req.FullName,
		Bio:      req.Bio,
		Website:  req.Website,
		Location: req.Location,
	})
	if err != nil {
		return serviceError(c, err, "")
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": profile})
}

func (s *Server) handleUploadAvatar(c echo.Context) error {
	user := currentUser(c)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Avatar file is required"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return serviceError(c, err, "")
	}
	defer f.Close()

	profile, err := s.profiles.UploadAvatar(
		c.Request().Context(),
		user.ID,
		fileHeader.Filename,
		fileHeader.Header.Get(echo.HeaderContentType),
		fileHeader.Size,
		f,
	)
	if err != nil {
		return serviceError(c, err, "")
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": profile})
}
