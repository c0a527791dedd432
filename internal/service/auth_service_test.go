package service

import (
	"context"
	"testing"
	"time"

	"gymhub/gym-api/internal/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func seedManagerWithPassword(f *fixture, email, password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	gymID, managerID := f.seedGym("Iron Temple")
	m := f.managers.managers[managerID]
	m.Email = email
	m.PasswordHash = string(hash)
	m.GymID = gymID
	f.managers.managers[managerID] = m
	return managerID.Hex()
}

func TestLoginIssuesTokenWithSubjectAndRole(t *testing.T) {
	f := newFixture()
	managerID := seedManagerWithPassword(f, "boss@example.com", "s3cret-pass")
	svc := NewAuthService(f.managers, f.trainers, f.members, testSecret, time.Hour)

	token, err := svc.Login(context.Background(), "boss@example.com", "s3cret-pass", domain.RoleManager)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, managerID, claims.ID)
	assert.Equal(t, domain.RoleManager, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture()
	seedManagerWithPassword(f, "boss@example.com", "s3cret-pass")
	svc := NewAuthService(f.managers, f.trainers, f.members, testSecret, time.Hour)

	_, err := svc.Login(context.Background(), "boss@example.com", "wrong", domain.RoleManager)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newFixture()
	svc := NewAuthService(f.managers, f.trainers, f.members, testSecret, time.Hour)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever", domain.RoleManager)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginChecksRoleAppropriateStore(t *testing.T) {
	// A manager's credentials must not authenticate on the trainer route:
	// the lookup happens against the requested role's collection only.
	f := newFixture()
	seedManagerWithPassword(f, "boss@example.com", "s3cret-pass")
	svc := NewAuthService(f.managers, f.trainers, f.members, testSecret, time.Hour)

	_, err := svc.Login(context.Background(), "boss@example.com", "s3cret-pass", domain.RoleTrainer)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginEmptyCredentials(t *testing.T) {
	f := newFixture()
	svc := NewAuthService(f.managers, f.trainers, f.members, testSecret, time.Hour)

	_, err := svc.Login(context.Background(), "", "", domain.RoleMember)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
