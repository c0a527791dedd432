package service

import (
	"context"
	"errors"
	"time"

	"gymhub/gym-api/internal/domain"
	"gymhub/gym-api/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnknownRole        = errors.New("unknown role")
	ErrTokenGeneration    = errors.New("failed to generate authentication token")
)

// AuthService verifies credentials against the role-appropriate collection
// and issues signed bearer tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string, role domain.Role) (token string, err error)
	GetJWTSecret() string
}

// account is the slice of any credentialed record that login needs.
type account struct {
	id           string
	passwordHash string
}

type authService struct {
	managerRepo   repository.ManagerRepository
	trainerRepo   repository.TrainerRepository
	memberRepo    repository.MemberRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(
	managerRepo repository.ManagerRepository,
	trainerRepo repository.TrainerRepository,
	memberRepo repository.MemberRepository,
	jwtSecret string,
	jwtExpiration time.Duration,
) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 24 * time.Hour
	}
	return &authService{
		managerRepo:   managerRepo,
		trainerRepo:   trainerRepo,
		memberRepo:    memberRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Login authenticates an account of the given role and returns a signed
// token. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *authService) Login(ctx context.Context, email, password string, role domain.Role) (string, error) {
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	acc, err := s.lookupAccount(ctx, email, role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.generateJWT(acc.id, role)
	if err != nil {
		return "", ErrTokenGeneration
	}
	return token, nil
}

// lookupAccount finds the single role-appropriate record by email.
func (s *authService) lookupAccount(ctx context.Context, email string, role domain.Role) (account, error) {
	switch role {
	case domain.RoleManager:
		m, err := s.managerRepo.GetByEmail(ctx, email)
		if err != nil {
			return account{}, err
		}
		return account{id: m.ID.Hex(), passwordHash: m.PasswordHash}, nil
	case domain.RoleTrainer:
		t, err := s.trainerRepo.GetByEmail(ctx, email)
		if err != nil {
			return account{}, err
		}
		return account{id: t.ID.Hex(), passwordHash: t.PasswordHash}, nil
	case domain.RoleMember:
		m, err := s.memberRepo.GetByEmail(ctx, email)
		if err != nil {
			return account{}, err
		}
		return account{id: m.ID.Hex(), passwordHash: m.PasswordHash}, nil
	default:
		return account{}, ErrUnknownRole
	}
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload: subject id plus role.
type jwtClaims struct {
	ID   string      `json:"id"`
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// generateJWT creates a signed HS256 token with a fixed TTL. The TTL bounds
// how long a token for a since-deleted caller stays usable.
func (s *authService) generateJWT(subjectID string, role domain.Role) (string, error) {
	now := time.Now()
	claims := &jwtClaims{
		ID:   subjectID,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "gym-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication.
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
