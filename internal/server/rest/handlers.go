package rest

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/mtmt/internal/server/auth"
	"github.com/dmitrijs2005/mtmt/internal/server/dto"
	"github.com/dmitrijs2005/mtmt/internal/server/models"
	"github.com/dmitrijs2005/mtmt/internal/server/services"
	"github.com/gin-gonic/gin"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*services.LoginResult, error)
	Logout(ctx context.Context, email string) error
}

type SignUpService interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (*models.User, error)
}

type ProfileService interface {
	MentorProfile(ctx context.Context, userID int64) (*models.Mentor, error)
	MenteeProfile(ctx context.Context, userID int64) (*models.Mentee, error)
}

// bind decodes the JSON body into req and validates it.
func (s *Server) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		s.logger.Debug(c.Request.Context(), "bad request body", "error", err)
		abort(c, http.StatusBadRequest, msgInvalidBody, nil)
		return false
	}
	if err := s.validator.Validate(req); err != nil {
		s.fail(c, err)
		return false
	}
	return true
}

func (s *Server) handleLogin(c *gin.Context) {
	var req dto.LoginRequest
	if !s.bind(c, &req) {
		return
	}

	res, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}

	ok(c, dto.LoginResponse{
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		UserInfo:     dto.NewUserInfo(res.User),
		LoginAt:      res.LoginAt,
	})
}

func (s *Server) handleSignUp(c *gin.Context) {
	req, err := dto.NewSignUp(c.Query("role"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if !s.bind(c, req) {
		return
	}

	user, err := s.signup.SignUp(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}

	ok(c, dto.NewSignUpResponse(user))
}

func (s *Server) handleRefresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !s.bind(c, &req) {
		return
	}

	res, err := s.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		s.fail(c, err)
		return
	}

	ok(c, dto.TokenResponse{
		AccessToken:      res.Tokens.AccessToken,
		RefreshToken:     res.Tokens.RefreshToken,
		AccessExpiresAt:  res.Tokens.AccessExpiresAt,
		RefreshExpiresAt: res.Tokens.RefreshExpiresAt,
	})
}

func (s *Server) handleLogout(c *gin.Context) {
	p, _ := auth.PrincipalFromContext(c.Request.Context())

	if err := s.auth.Logout(c.Request.Context(), p.User.Email); err != nil {
		s.fail(c, err)
		return
	}

	ok(c, nil)
}

func (s *Server) handleMe(c *gin.Context) {
	p, _ := auth.PrincipalFromContext(c.Request.Context())
	ok(c, dto.MeResponse{UserInfo: dto.NewUserInfo(p.User), Authorities: p.Authorities})
}

func (s *Server) handleMentorProfile(c *gin.Context) {
	p, _ := auth.PrincipalFromContext(c.Request.Context())

	m, err := s.profiles.MentorProfile(c.Request.Context(), p.User.ID)
	if err != nil {
		s.fail(c, err)
		return
	}

	ok(c, dto.NewMentorProfile(p.User, m))
}

func (s *Server) handleMenteeProfile(c *gin.Context) {
	p, _ := auth.PrincipalFromContext(c.Request.Context())

	m, err := s.profiles.MenteeProfile(c.Request.Context(), p.User.ID)
	if err != nil {
		s.fail(c, err)
		return
	}

	ok(c, dto.NewMenteeProfile(p.User, m))
}

func (s *Server) handleHealth(c *gin.Context) {
	checks := make(map[string]string, len(s.health))
	healthy := true

	for name, check := range s.health {
		if err := check(c.Request.Context()); err != nil {
			s.logger.Warn(c.Request.Context(), "health check failed", "dependency", name, "error", err)
			checks[name] = "DOWN"
			healthy = false
			continue
		}
		checks[name] = "UP"
	}

	if !healthy {
		abort(c, http.StatusServiceUnavailable, "unavailable", checks)
		return
	}
	ok(c, checks)
}
