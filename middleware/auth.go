package middleware

import (
	"context"
	"fmt"
	"strings"

	"script9/access"
	"script9/constants"
	apperrors "script9/errors"
	"script9/models"
	"script9/response"
	"script9/services/logger"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// SessionClaims is the payload of the session token issued by the auth provider.
type SessionClaims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.StandardClaims
}

// ProfileSyncer mirrors authenticated profiles into the local users table.
type ProfileSyncer interface {
	SyncProfile(ctx context.Context, profile models.User) error
}

type AuthOptions struct {
	Secret     []byte
	CookieName string
	Users      ProfileSyncer
	Logger     logger.Logger
}

// Authenticator validates HS256 session tokens from the session cookie or a bearer header.
type Authenticator struct {
	secret     []byte
	cookieName string
	users      ProfileSyncer
	logger     logger.Logger
}

func NewAuthenticator(opts AuthOptions) *Authenticator {
	a := &Authenticator{
		secret:     opts.Secret,
		cookieName: opts.CookieName,
		users:      opts.Users,
		logger:     opts.Logger,
	}
	if a.cookieName == "" {
		a.cookieName = constants.DefaultSessionCookie
	}
	if a.logger == nil {
		a.logger = logger.NewNop()
	}
	return a
}

// ParseToken verifies the signature and expiry and returns the claims.
func (a *Authenticator) ParseToken(raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	if _, ok := access.ParseRole(claims.Role); !ok {
		return nil, fmt.Errorf("unknown role %q", claims.Role)
	}
	return claims, nil
}

func (a *Authenticator) tokenFrom(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(a.cookieName); err == nil {
		return cookie
	}
	return ""
}

// authenticate stores the actor on success. It reports false with the error to
// send when a token is present but invalid, or when required and missing.
func (a *Authenticator) authenticate(c *gin.Context, required bool) (bool, *apperrors.AppError) {
	raw := a.tokenFrom(c)
	if raw == "" {
		if required {
			return false, apperrors.Unauthorized(apperrors.ErrCodeMissingToken, "authentication required")
		}
		return true, nil
	}
	claims, err := a.ParseToken(raw)
	if err != nil {
		a.logger.WithFields(logger.Fields{"requestId": c.GetString(constants.ContextRequestIDKey)}).Debug("rejected session token: %v", err)
		return false, apperrors.Unauthorized(apperrors.ErrCodeInvalidToken, "invalid or expired session")
	}

	role, _ := access.ParseRole(claims.Role)
	c.Set(constants.ContextActorKey, access.Actor{UserID: claims.Subject, Role: role})

	if a.users != nil {
		profile := models.User{ID: claims.Subject, Email: claims.Email, Name: claims.Name, Role: claims.Role}
		if err := a.users.SyncProfile(c.Request.Context(), profile); err != nil {
			a.logger.Warn("profile sync for %s: %v", claims.Subject, err)
		}
	}
	return true, nil
}

// Required rejects requests without a valid session with 401.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ok, appErr := a.authenticate(c, true); !ok {
			response.Unauthorized(c, appErr.Code, appErr.Message)
			return
		}
		c.Next()
	}
}

// Optional attaches the actor when a valid session is present and lets
// anonymous requests through.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ok, appErr := a.authenticate(c, false); !ok {
			response.Unauthorized(c, appErr.Code, appErr.Message)
			return
		}
		c.Next()
	}
}

// GetActor returns the authenticated caller, if any.
func GetActor(c *gin.Context) (access.Actor, bool) {
	v, ok := c.Get(constants.ContextActorKey)
	if !ok {
		return access.Actor{}, false
	}
	actor, ok := v.(access.Actor)
	return actor, ok
}
