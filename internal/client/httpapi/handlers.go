package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/animedex/internal/client/listing"
	"github.com/dmitrijs2005/animedex/internal/client/models"
	"github.com/dmitrijs2005/animedex/internal/common"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

type loginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type charactersResponse struct {
	listing.View
	Advisory string `json:"advisory,omitempty"`
}

// requireSession redirects to the login screen when nobody is logged in.
func (s *Server) requireSession(c *gin.Context) {
	id, ok := s.session.Current()
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		c.Abort()
		return
	}
	c.Set(identityKey, id)
	c.Next()
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) loginScreen(c *gin.Context) {
	if _, ok := s.session.Current(); ok {
		c.Redirect(http.StatusSeeOther, "/home")
		return
	}
	c.JSON(http.StatusOK, gin.H{"screen": "login"})
}

func (s *Server) login(c *gin.Context) {
	if _, ok := s.session.Current(); ok {
		c.Redirect(http.StatusSeeOther, "/home")
		return
	}

	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "username and password are required"})
		return
	}

	password := []byte(req.Password)
	defer common.WipeByteArray(password)

	ok, err := s.session.Login(c.Request.Context(), req.Username, password)
	if err != nil {
		s.logger.Error(c.Request.Context(), "login failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, models.Identity{Username: req.Username})
}

func (s *Server) logout(c *gin.Context) {
	if err := s.session.Logout(c.Request.Context()); err != nil {
		s.logger.Error(c.Request.Context(), "logout failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	s.forgetCharacters()
	c.Status(http.StatusNoContent)
}

func (s *Server) home(c *gin.Context) {
	id := c.MustGet(identityKey).(models.Identity)
	c.JSON(http.StatusOK, gin.H{
		"screen":   "home",
		"username": id.Username,
		"welcome":  fmt.Sprintf("Welcome, %s", id.Username),
	})
}

func (s *Server) characters(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "page must be a number"})
			return
		}
		page = n
	}

	records, advisory, err := s.cachedCharacters(c.Request.Context())
	if err != nil {
		s.logger.Error(c.Request.Context(), "loading characters failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "characters unavailable"})
		return
	}

	c.JSON(http.StatusOK, charactersResponse{
		View:     listing.Build(records, c.Query("q"), page, s.pageSize),
		Advisory: advisory,
	})
}

func (s *Server) random(c *gin.Context) {
	n := 0
	if raw := c.Query("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "n must be a positive number"})
			return
		}
		n = v
	}

	res, err := s.loader.Random(c.Request.Context(), n)
	if err != nil {
		s.logger.Error(c.Request.Context(), "random characters failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "characters unavailable"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// cachedCharacters loads the character list on first use and keeps it until
// logout. A failed load is not cached.
func (s *Server) cachedCharacters(ctx context.Context) ([]models.Character, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.records, s.advisory, nil
	}

	res, err := s.loader.Load(ctx)
	if err != nil {
		return nil, "", err
	}
	s.records, s.advisory, s.loaded = res.Characters, res.Advisory, true
	return s.records, s.advisory, nil
}

func (s *Server) forgetCharacters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records, s.advisory, s.loaded = nil, "", false
}
