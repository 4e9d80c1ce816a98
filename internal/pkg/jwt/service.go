package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess = "access"

	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	TokenType string    `json:"token_type"`

	jwtlib.RegisteredClaims
}

func ValidRole(role string) bool {
	return role == RoleCandidate || role == RoleRecruiter
}

type Service interface {
	GenerateAccessToken(userID uuid.UUID, email, role string) (string, error)
	ValidateToken(tokenString string) (Claims, error)
}

type HMACService struct {
	accessSecret    []byte
	accessExpiresIn time.Duration

	now func() time.Time
}

func NewHMACService(accessSecret string, accessExpiresIn time.Duration) *HMACService {
	return &HMACService{
		accessSecret:    []byte(accessSecret),
		accessExpiresIn: accessExpiresIn,
		now:             time.Now,
	}
}

func (s *HMACService) GenerateAccessToken(userID uuid.UUID, email, role string) (string, error) {
	if len(s.accessSecret) == 0 || s.accessExpiresIn <= 0 {
		return "", ErrTokenInvalid
	}
	if userID == uuid.Nil || !ValidRole(role) {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	c := Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.accessExpiresIn)),
			Subject:   userID.String(),
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(s.accessSecret)
}

func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
		jwtlib.WithExpirationRequired(),
	)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return s.accessSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}

	if c.TokenType != TokenTypeAccess || c.UserID == uuid.Nil || !ValidRole(c.Role) {
		return Claims{}, ErrTokenInvalid
	}

	return c, nil
}
