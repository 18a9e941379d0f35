package fakeapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	apiauth "github.com/stellarburgers/burger/pkg/api/types/auth"
	"github.com/stellarburgers/burger/pkg/utils/pointer"
)

const bearer = "Bearer "

const keyEmail = "fakeapi/email"

type claims struct {
	jwt.RegisteredClaims
}

// issue access and refresh token for email. s.mu should be locked.
func (s *Server) issue(email string) (apiauth.Tokens, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        randomToken(),
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return apiauth.Tokens{}, err
	}

	refresh := randomToken()
	s.refresh[refresh] = email
	return apiauth.Tokens{AccessToken: bearer + signed, RefreshToken: refresh}, nil
}

func (s *Server) authorized(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(header, bearer) {
			return reject(c, http.StatusUnauthorized, "You should be authorised")
		}

		parser := jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithTimeFunc(s.now),
			jwt.WithExpirationRequired(),
		)

		cl := claims{}
		_, err := parser.ParseWithClaims(
			strings.TrimPrefix(header, bearer), &cl,
			func(*jwt.Token) (any, error) { return s.secret, nil },
		)
		if errors.Is(err, jwt.ErrTokenExpired) {
			return reject(c, http.StatusForbidden, "jwt expired")
		} else if err != nil {
			return reject(c, http.StatusForbidden, "invalid token")
		}

		s.mu.Lock()
		_, ok := s.accounts[cl.Subject]
		s.mu.Unlock()
		if !ok {
			return reject(c, http.StatusForbidden, "invalid token")
		}

		c.Set(keyEmail, cl.Subject)
		return next(c)
	}
}

func (s *Server) login(c echo.Context) error {
	req := apiauth.LoginRequest{}
	if err := c.Bind(&req); err != nil {
		return reject(c, http.StatusBadRequest, "malformed request")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[req.Email]
	if !ok || a.password != req.Password {
		return reject(c, http.StatusUnauthorized, "email or password are incorrect")
	}
	tokens, err := s.issue(req.Email)
	if err != nil {
		return err
	}
	user := a.user
	return c.JSON(http.StatusOK, apiauth.SessionResponse{Success: true, User: &user, Tokens: tokens})
}

func (s *Server) register(c echo.Context) error {
	req := apiauth.RegisterRequest{}
	if err := c.Bind(&req); err != nil {
		return reject(c, http.StatusBadRequest, "malformed request")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return reject(c, http.StatusForbidden, "Email, password and name are required fields")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[req.Email]; ok {
		return reject(c, http.StatusForbidden, "User already exists")
	}
	a := &account{user: apiauth.User{Name: req.Name, Email: req.Email}, password: req.Password}
	s.accounts[req.Email] = a

	tokens, err := s.issue(req.Email)
	if err != nil {
		return err
	}
	user := a.user
	return c.JSON(http.StatusOK, apiauth.SessionResponse{Success: true, User: &user, Tokens: tokens})
}

func (s *Server) logout(c echo.Context) error {
	req := apiauth.TokenRequest{}
	if err := c.Bind(&req); err != nil {
		return reject(c, http.StatusBadRequest, "malformed request")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.refresh[req.Token]; !ok {
		return reject(c, http.StatusNotFound, "Token required")
	}
	delete(s.refresh, req.Token)
	return c.JSON(http.StatusOK, apiauth.MessageResponse{Success: true, Message: "Successful logout"})
}

func (s *Server) token(c echo.Context) error {
	req := apiauth.TokenRequest{}
	if err := c.Bind(&req); err != nil {
		return reject(c, http.StatusBadRequest, "malformed request")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email, ok := s.refresh[req.Token]
	if !ok {
		return reject(c, http.StatusUnauthorized, "Token is invalid")
	}
	// refresh tokens are single use.
	delete(s.refresh, req.Token)

	tokens, err := s.issue(email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apiauth.TokenResponse{Success: true, Tokens: tokens})
}

func (s *Server) getUser(c echo.Context) error {
	email := c.Get(keyEmail).(string)

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.accounts[email].user
	return c.JSON(http.StatusOK, apiauth.UserResponse{Success: true, User: &user})
}

func (s *Server) patchUser(c echo.Context) error {
	email := c.Get(keyEmail).(string)

	patch := apiauth.UserPatch{}
	if err := c.Bind(&patch); err != nil {
		return reject(c, http.StatusBadRequest, "malformed request")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.accounts[email]
	if patch.Email != nil && *patch.Email != email {
		if _, taken := s.accounts[*patch.Email]; taken {
			return reject(c, http.StatusForbidden, "User with such email already exists")
		}
		delete(s.accounts, email)
		a.user.Email = *patch.Email
		s.accounts[a.user.Email] = a
		for tok, owner := range s.refresh {
			if owner == email {
				s.refresh[tok] = a.user.Email
			}
		}
		for num, owner := range s.owners {
			if owner == email {
				s.owners[num] = a.user.Email
			}
		}
	}
	a.user.Name = pointer.Or(patch.Name, a.user.Name)
	a.password = pointer.Or(patch.Password, a.password)

	user := a.user
	return c.JSON(http.StatusOK, apiauth.UserResponse{Success: true, User: &user})
}
