package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mtsdb/dropship-oasis-storefront/internal/domain"
	"github.com/mtsdb/dropship-oasis-storefront/internal/notify"
	apperrors "github.com/mtsdb/dropship-oasis-storefront/pkg/errors"
)

func newTestSessionService(t *testing.T, repo *mockSessionRepository, recorder *notify.Recorder) *SessionService {
	t.Helper()
	return NewSessionService(repo, recorder, newTestProducer(t), newTestLogger(), 24*time.Hour, 0)
}

func TestLogin_SeededAdmin(t *testing.T) {
	repo := new(mockSessionRepository)
	recorder := notify.NewRecorder()
	svc := newTestSessionService(t, repo, recorder)
	ctx := context.Background()

	repo.On("Save", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("*domain.UserIdentity")).Return(nil)

	session, err := svc.Login(ctx, LoginInput{Email: "admin@example.com", Password: "anything"})

	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "1", session.User.ID)
	assert.Equal(t, "Admin User", session.User.Name)
	assert.True(t, session.User.IsAdmin())

	assert.Equal(t, notify.Message{Level: notify.LevelSuccess, Text: "Welcome back, Admin User!"}, recorder.Last())
	repo.AssertExpectations(t)
}

func TestLogin_AnyPasswordAccepted(t *testing.T) {
	repo := new(mockSessionRepository)
	recorder := notify.NewRecorder()
	svc := newTestSessionService(t, repo, recorder)
	ctx := context.Background()

	repo.On("Save", ctx, mock.Anything, mock.Anything).Return(nil)

	for _, password := range []string{"hunter2", "wrong", "x"} {
		session, err := svc.Login(ctx, LoginInput{Email: "user@example.com", Password: password})
		require.NoError(t, err)
		assert.Equal(t, "2", session.User.ID)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(mockSessionRepository)
	recorder := notify.NewRecorder()
	svc := newTestSessionService(t, repo, recorder)

	session, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "x"})

	assert.Nil(t, session)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Equal(t, notify.Message{Level: notify.LevelError, Text: "Invalid email or password"}, recorder.Last())
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_DelayHonorsCancellation(t *testing.T) {
	repo := new(mockSessionRepository)
	recorder := notify.NewRecorder()
	svc := NewSessionService(repo, recorder, newTestProducer(t), newTestLogger(), 24*time.Hour, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := svc.Login(ctx, LoginInput{Email: "admin@example.com", Password: "x"})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
	assert.Empty(t, recorder.Messages())
}

func TestRegister_NewUser(t *testing.T) {
	repo := new(mockSessionRepository)
	recorder := notify.NewRecorder()
	svc := newTestSessionService(t, repo, recorder)
	ctx := context.Background()

	var saved *domain.UserIdentity
	repo.On("Save", ctx, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(2).(*domain.UserIdentity)
	}).Return(nil)

	session, err := svc.Register(ctx, RegisterInput{Name: "New User", Email: "new@example.com", Password: "secret1"})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(session.User.ID, "user-"))
	assert.Equal(t, domain.RoleUser, session.User.Role)
	assert.Equal(t, "New User", session.User.Name)
	require.NotNil(t, saved)
	assert.Equal(t, session.User.ID, saved.ID)

	assert.Equal(t, notify.Message{Level: notify.LevelSuccess, Text: "Account created successfully!"}, recorder.Last())
}

func TestRegister_ThenLoginResolvesNewEmail(t *testing.T) {
	repo := new(mockSessionRepository)
	recorder := notify.NewRecorder()
	svc := newTestSessionService(t, repo, recorder)
	ctx := context.Background()

	repo.On("Save", ctx, mock.Anything, mock.Anything).Return(nil)

	registered, err := svc.Register(ctx, RegisterInput{Name: "New User", Email: "new@example.com", Password: "secret1"})
	require.NoError(t, err)

	session, err := svc.Login(ctx, LoginInput{Email: "new@example.com", Password: "anything"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, session.User.ID)
	assert.Equal(t, notify.Message{Level: notify.LevelSuccess, Text: "Welcome back, New User!"}, recorder.Last())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(mockSessionRepository)
	recorder := notify.NewRecorder()
	svc := newTestSessionService(t, repo, recorder)

	session, err := svc.Register(context.Background(), RegisterInput{Name: "Imposter", Email: "user@example.com", Password: "secret1"})

	assert.Nil(t, session)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.Equal(t, notify.Message{Level: notify.LevelError, Text: "User with this email already exists"}, recorder.Last())
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogout(t *testing.T) {
	repo := new(mockSessionRepository)
	recorder := notify.NewRecorder()
	svc := newTestSessionService(t, repo, recorder)
	ctx := context.Background()

	repo.On("Delete", ctx, "token-1").Return(nil)

	require.NoError(t, svc.Logout(ctx, "token-1"))
	assert.Equal(t, notify.Message{Level: notify.LevelInfo, Text: "You have been logged out"}, recorder.Last())
	repo.AssertExpectations(t)
}

func TestLogout_EmptyToken(t *testing.T) {
	repo := new(mockSessionRepository)
	recorder := notify.NewRecorder()
	svc := newTestSessionService(t, repo, recorder)

	require.NoError(t, svc.Logout(context.Background(), ""))
	assert.Equal(t, notify.Message{Level: notify.LevelInfo, Text: "You have been logged out"}, recorder.Last())
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCurrentUser_Found(t *testing.T) {
	repo := new(mockSessionRepository)
	svc := newTestSessionService(t, repo, notify.NewRecorder())
	ctx := context.Background()

	identity := &domain.UserIdentity{ID: "2", Email: "user@example.com", Name: "Regular User", Role: domain.RoleUser}
	repo.On("Get", ctx, "token-1").Return(identity, nil)

	got, err := svc.CurrentUser(ctx, "token-1")

	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestCurrentUser_MissingIsAnonymous(t *testing.T) {
	repo := new(mockSessionRepository)
	svc := newTestSessionService(t, repo, notify.NewRecorder())
	ctx := context.Background()

	repo.On("Get", ctx, "gone").Return(nil, apperrors.NotFound("session", "gone"))

	got, err := svc.CurrentUser(ctx, "gone")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCurrentUser_BlankTokenIsAnonymous(t *testing.T) {
	repo := new(mockSessionRepository)
	svc := newTestSessionService(t, repo, notify.NewRecorder())

	got, err := svc.CurrentUser(context.Background(), "   ")

	require.NoError(t, err)
	assert.Nil(t, got)
	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}
