package auth

import "github.com/stellarburgers/burger/pkg/cmp"

// User is the identity of an authenticated customer.
type User struct {
	// login key. unique.
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (u User) Equal(o User) bool {
	return u.Email == o.Email && u.Name == o.Name
}

// LoginRequest is the request body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the request body of POST /auth/register
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Tokens is a pair of credentials issued by the API.
//
// Both are opaque. The client sends them back verbatim and never parses them.
type Tokens struct {
	// short-lived bearer credential.
	AccessToken string `json:"accessToken"`

	// long-lived credential used to get a new AccessToken.
	RefreshToken string `json:"refreshToken"`
}

func (t Tokens) Complete() bool {
	return t.AccessToken != "" && t.RefreshToken != ""
}

// SessionResponse is the response of POST /auth/login and POST /auth/register
type SessionResponse struct {
	Success bool  `json:"success"`
	User    *User `json:"user"`
	Tokens
}

func (r SessionResponse) Succeeded() bool {
	return r.Success
}

// TokenRequest is the request body of POST /auth/token and POST /auth/logout
type TokenRequest struct {
	Token string `json:"token"`
}

// TokenResponse is the response of POST /auth/token
type TokenResponse struct {
	Success bool `json:"success"`
	Tokens
}

func (r TokenResponse) Succeeded() bool {
	return r.Success
}

// UserResponse is the response of GET /auth/user and PATCH /auth/user
type UserResponse struct {
	Success bool  `json:"success"`
	User    *User `json:"user"`
}

func (r UserResponse) Succeeded() bool {
	return r.Success
}

// MessageResponse is the response of POST /auth/logout
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (r MessageResponse) Succeeded() bool {
	return r.Success
}

// UserPatch is the request body of PATCH /auth/user.
//
// nil fields are not sent.
type UserPatch struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil
}

func (p UserPatch) Equal(o UserPatch) bool {
	eq := func(a, b string) bool { return a == b }
	return cmp.PEqualWith(p.Name, o.Name, eq) &&
		cmp.PEqualWith(p.Email, o.Email, eq) &&
		cmp.PEqualWith(p.Password, o.Password, eq)
}
