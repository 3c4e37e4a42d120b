package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-selling/internal/config"
	"github.com/iliyamo/cinema-ticket-selling/internal/model"
	"github.com/iliyamo/cinema-ticket-selling/internal/repository"
	"github.com/iliyamo/cinema-ticket-selling/internal/utils"
)

// UserHandler serves the profile and preference endpoints plus the
// admin user management surface.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u}
}

type updateProfileReq struct {
	FullName          *string `json:"full_name"`
	DateOfBirth       *string `json:"date_of_birth"` // YYYY-MM-DD
	ProfilePictureURL *string `json:"profile_picture_url"`
}

type updatePreferencesReq struct {
	DarkMode             *bool `json:"dark_mode"`
	NotificationsEnabled *bool `json:"notifications_enabled"`
	NewsletterSubscribed *bool `json:"newsletter_subscribed"`
}

// UpdateProfile changes the caller's profile fields. Absent fields
// keep their current values.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return repoError(c, err)
	}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name must not be empty"})
		}
		u.FullName = name
	}
	if req.DateOfBirth != nil {
		if *req.DateOfBirth == "" {
			u.DateOfBirth = nil
		} else {
			dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_of_birth must be YYYY-MM-DD"})
			}
			u.DateOfBirth = &dob
		}
	}
	if req.ProfilePictureURL != nil {
		if *req.ProfilePictureURL == "" {
			u.ProfilePictureURL = nil
		} else {
			u.ProfilePictureURL = req.ProfilePictureURL
		}
	}
	if err := h.Users.UpdateProfile(ctx, u); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// UpdatePreferences flips the caller's preference flags. Absent
// fields keep their current values.
func (h *UserHandler) UpdatePreferences(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updatePreferencesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return repoError(c, err)
	}
	if req.DarkMode != nil {
		u.DarkMode = *req.DarkMode
	}
	if req.NotificationsEnabled != nil {
		u.NotificationsEnabled = *req.NotificationsEnabled
	}
	if req.NewsletterSubscribed != nil {
		u.NewsletterSubscribed = *req.NewsletterSubscribed
	}
	if err := h.Users.UpdatePreferences(ctx, u); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

type adminCreateUserReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}
type setActiveReq struct {
	IsActive *bool `json:"is_active"`
}

// AdminList handles GET /v1/users (admin) with optional
// ?status=active|suspended and ?role=admin|user filters.
func (h *UserHandler) AdminList(c echo.Context) error {
	var active, admin *bool
	switch strings.ToLower(strings.TrimSpace(c.QueryParam("status"))) {
	case "":
	case "active":
		v := true
		active = &v
	case "suspended":
		v := false
		active = &v
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be 'active' or 'suspended'"})
	}
	switch strings.ToLower(strings.TrimSpace(c.QueryParam("role"))) {
	case "":
	case "admin":
		v := true
		admin = &v
	case "user":
		v := false
		admin = &v
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be 'admin' or 'user'"})
	}
	limit, offset := parsePage(c, 50, 100)
	users, err := h.Users.List(c.Request().Context(), active, admin, limit, offset)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users, "limit": limit, "offset": offset})
}

// AdminCreate handles POST /v1/users (admin): creates another admin
// account. Regular accounts come in through registration only.
func (h *UserHandler) AdminCreate(c echo.Context) error {
	var req adminCreateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email, password and full_name required"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}
	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}
	u := &model.User{Email: req.Email, FullName: req.FullName, PasswordHash: hash, IsAdmin: true}
	if err := h.Users.Create(c.Request().Context(), u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, u)
}

// AdminSetActive handles PATCH /v1/users/:id/status (admin):
// suspends or reactivates an account.
func (h *UserHandler) AdminSetActive(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req setActiveReq
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_active required"})
	}
	u, err := h.Users.SetActive(c.Request().Context(), id, *req.IsActive)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}
