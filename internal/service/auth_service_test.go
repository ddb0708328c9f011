package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/americanreliabletech/support-portal/internal/config"
	"github.com/americanreliabletech/support-portal/internal/domain"
)

func newAuthServiceForTest() (*AuthService, *fakeProfileRepo) {
	profiles := newFakeProfileRepo()
	svc := NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}, profiles)
	return svc, profiles
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthServiceForTest()

	profile, session, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Pat Doe",
		Email:    "Pat@Acme.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, profile.Role)
	assert.Equal(t, "pat@acme.com", profile.Email)
	assert.NotEmpty(t, session.Token)

	_, _, err = svc.Register(context.Background(), RegisterInput{
		FullName: "Pat Again",
		Email:    "pat@acme.com",
		Password: "correct-horse",
	})
	require.Error(t, err)

	_, session, err = svc.Login(context.Background(), "pat@acme.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	_, _, err = svc.Login(context.Background(), "pat@acme.com", "wrong")
	require.Error(t, err)

	_, _, err = svc.Login(context.Background(), "nobody@acme.com", "correct-horse")
	require.Error(t, err)
}
