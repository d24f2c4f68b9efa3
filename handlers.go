package hdsite

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin implements POST /api/auth: validate credentials, mint a
// session token, and set it as an HTTP-only cookie.
func (a *App) handleLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "Too many login attempts. Try again later."})
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	if !a.validateCredentials(req.Username, req.Password) {
		a.loginLimiter.Record(c.RealIP())
		a.log.Warn().Str("username", req.Username).Str("ip", c.RealIP()).Msg("failed login")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}

	token := CreateAuthToken(req.Username, a.Config.TokenTTL)
	a.setAuthCookie(c, token)
	a.log.Info().Str("username", req.Username).Msg("admin login")
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// handleLogout implements DELETE /api/auth: clear the session cookie.
// There is no server-side session state to revoke.
func (a *App) handleLogout(c echo.Context) error {
	a.clearAuthCookie(c)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// handleAuthCheck implements GET /api/auth/check. The cookie is decoded and
// its expiry checked — presence alone is never enough.
func (a *App) handleAuthCheck(c echo.Context) error {
	cookie, err := c.Cookie(authCookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	payload, err := VerifyAuthToken(cookie.Value)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"authenticated": true,
		"user": echo.Map{
			"username": payload.Username,
			"role":     payload.Role,
		},
	})
}

// handleListBlogs implements GET /api/blogs?language=<tr|en|ar|all>.
func (a *App) handleListBlogs(c echo.Context) error {
	language := c.QueryParam("language")
	if language == "" {
		language = LanguageAll
	}
	posts, err := a.Cache.ListBlogs(language)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// handleGetBlog implements GET /api/blogs/:id.
func (a *App) handleGetBlog(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid blog id"})
	}
	post, err := a.Store.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Blog not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// handleGetBlogBySlug implements GET /api/blogs/slug/:slug, used by the
// public detail pages.
func (a *App) handleGetBlogBySlug(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Store.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Blog not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// handleCreateBlog implements POST /api/blogs. A missing slug is derived
// from the title plus a timestamp; a supplied slug is taken as-is and any
// collision surfaces from the storage layer's unique constraint.
func (a *App) handleCreateBlog(c echo.Context) error {
	var in BlogInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Title is required"})
	}
	if in.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Content is required"})
	}
	if in.Slug == "" {
		in.Slug = DeriveSlug(in.Title, time.Now())
	}
	if in.Language == "" {
		in.Language = "tr"
	}

	id, err := a.Store.Create(in)
	if err != nil {
		if errors.Is(err, ErrDuplicateSlug) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "A blog with this slug already exists"})
		}
		return err
	}
	a.Cache.Invalidate()
	a.log.Info().Int64("id", id).Str("slug", in.Slug).Msg("blog created")
	return c.JSON(http.StatusOK, echo.Map{"id": id, "success": true})
}

// handleUpdateBlog implements PUT /api/blogs/:id as a full-row replace of
// every mutable field.
func (a *App) handleUpdateBlog(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid blog id"})
	}
	var in BlogInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(in.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Title is required"})
	}
	if in.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Content is required"})
	}

	post, err := a.Store.Update(id, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Blog not found"})
		case errors.Is(err, ErrDuplicateSlug):
			return c.JSON(http.StatusConflict, echo.Map{"error": "A blog with this slug already exists"})
		}
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, post)
}

// handleDeleteBlog implements DELETE /api/blogs/:id. Hard delete, idempotent.
func (a *App) handleDeleteBlog(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid blog id"})
	}
	if err := a.Store.Delete(id); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
