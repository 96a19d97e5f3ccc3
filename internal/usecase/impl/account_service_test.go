package impl

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/infra/auth"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// mockUserRepository is a hand-written mock of repository.UserRepository.
type mockUserRepository struct {
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	CreateFunc      func(ctx context.Context, user *entity.User) error

	createCalls int
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}

	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	m.createCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default: behave like the database, assigning an ID and timestamps.
	user.ID = uuid.New()

	return nil
}

// mockRepositoryFactory hands out the single mock repository.
type mockRepositoryFactory struct {
	repo repository.UserRepository
}

func (f *mockRepositoryFactory) UserRepo() repository.UserRepository {
	return f.repo
}

// mockTransactionManager runs the callback directly against the mock repository.
type mockTransactionManager struct {
	repo         repository.UserRepository
	executeCalls int
}

func (m *mockTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	m.executeCalls++

	return fn(&mockRepositoryFactory{repo: m.repo})
}

// mockHasher is a hand-written mock of service.PasswordHasher.
type mockHasher struct {
	HashFunc  func(password string) (string, error)
	CheckFunc func(password, hash string) (bool, error)

	checkCalls int
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}

	return "hashed:" + password, nil
}

func (m *mockHasher) Check(password, hash string) (bool, error) {
	m.checkCalls++
	if m.CheckFunc != nil {
		return m.CheckFunc(password, hash)
	}

	return hash == "hashed:"+password, nil
}

type accountServiceFixtures struct {
	service   usecase.AccountUsecase
	userRepo  *mockUserRepository
	txManager *mockTransactionManager
	hasher    *mockHasher
}

func newTestAccountService(t *testing.T) accountServiceFixtures {
	t.Helper()

	userRepo := &mockUserRepository{}
	txManager := &mockTransactionManager{repo: userRepo}
	hasher := &mockHasher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAccountService(AccountServiceParams{
		TxManager:  txManager,
		UserRepo:   userRepo,
		Normalizer: auth.NewEmailNormalizer(),
		Hasher:     hasher,
		Logger:     logger,
	})

	return accountServiceFixtures{
		service:   service,
		userRepo:  userRepo,
		txManager: txManager,
		hasher:    hasher,
	}
}

func appErrFrom(t *testing.T, err error) domainerrors.AppError {
	t.Helper()

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr), "expected classified error, got %v", err)

	return appErr
}

func TestAccountService_Register_Success(t *testing.T) {
	fixtures := newTestAccountService(t)

	out, err := fixtures.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "UPPER@EXAMPLE.COM",
		Password: "password123",
	})
	require.NoError(t, err)

	// The stored identity is the normalized email.
	assert.Equal(t, "upper@example.com", out.Email)
	assert.NotEqual(t, uuid.Nil, out.ID)
	assert.Equal(t, 1, fixtures.userRepo.createCalls)
	assert.Equal(t, 1, fixtures.txManager.executeCalls)
}

func TestAccountService_Register_PersistsHashNotPlaintext(t *testing.T) {
	fixtures := newTestAccountService(t)

	var persisted *entity.User
	fixtures.userRepo.CreateFunc = func(_ context.Context, user *entity.User) error {
		persisted = user
		user.ID = uuid.New()

		return nil
	}

	_, err := fixtures.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "hash@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.NotEqual(t, "password123", persisted.PasswordHash)
	assert.NotEmpty(t, persisted.PasswordHash)
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	fixtures := newTestAccountService(t)

	existing := &entity.User{ID: uuid.New(), Email: "dup@example.com"}
	fixtures.userRepo.FindByEmailFunc = func(_ context.Context, email string) (*entity.User, error) {
		return existing, nil
	}

	_, err := fixtures.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "DUP@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailConflict))
	assert.Equal(t, 409, appErrFrom(t, err).HTTPCode())
	// Zero writes on the failure path.
	assert.Equal(t, 0, fixtures.userRepo.createCalls)
}

func TestAccountService_Register_InsertRaceMapsToConflict(t *testing.T) {
	fixtures := newTestAccountService(t)

	// Pre-check sees nothing, but a concurrent writer wins the unique index.
	fixtures.userRepo.CreateFunc = func(_ context.Context, _ *entity.User) error {
		return domainerrors.ErrEmailConflictRace.WrapMessage("email unique index violated on insert")
	}

	_, err := fixtures.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "race@example.com",
		Password: "password123",
	})
	require.Error(t, err)

	appErr := appErrFrom(t, err)
	assert.Equal(t, 409, appErr.HTTPCode())
	assert.Equal(t, "Email already registered", appErr.Label())
	assert.Equal(t, "email", appErr.Field())
}

func TestAccountService_Register_StorageFailureIsServiceUnavailable(t *testing.T) {
	fixtures := newTestAccountService(t)

	fixtures.userRepo.FindByEmailFunc = func(_ context.Context, _ string) (*entity.User, error) {
		return nil, domainerrors.NewStorageError(errors.New("dial tcp: connection refused"), "failed to find user by email")
	}

	_, err := fixtures.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "down@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	// Unreachable storage is 503, never 500.
	assert.Equal(t, 503, appErrFrom(t, err).HTTPCode())
	assert.Equal(t, 0, fixtures.userRepo.createCalls)
}

func TestAccountService_Register_HashFailure(t *testing.T) {
	fixtures := newTestAccountService(t)

	fixtures.hasher.HashFunc = func(string) (string, error) {
		return "", errors.New("bcrypt exploded")
	}

	_, err := fixtures.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "hashfail@example.com",
		Password: "password123",
	})
	require.Error(t, err)

	appErr := appErrFrom(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
	assert.Equal(t, 500, appErr.HTTPCode())
	assert.Equal(t, "password", appErr.Field())
	assert.Equal(t, 0, fixtures.userRepo.createCalls)
}

func TestAccountService_Register_InputValidation(t *testing.T) {
	fixtures := newTestAccountService(t)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  *domainerrors.BaseError
	}{
		{name: "missing email", email: "", password: "password123", wantErr: domainerrors.ErrEmailRequired},
		{name: "missing password", email: "a@b.com", password: "", wantErr: domainerrors.ErrPasswordRequired},
		{name: "malformed email", email: "bad-email", password: "password123", wantErr: domainerrors.ErrEmailFormat},
		{name: "password too short", email: "a@b.com", password: "short", wantErr: domainerrors.ErrPasswordLength},
		{name: "password too long", email: "a@b.com", password: string(make([]byte, 129)), wantErr: domainerrors.ErrPasswordLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixtures.service.Register(context.Background(), &usecase.RegisterInput{
				Email:    tt.email,
				Password: tt.password,
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Equal(t, 400, appErrFrom(t, err).HTTPCode())
		})
	}

	// None of the rejections reached storage.
	assert.Equal(t, 0, fixtures.txManager.executeCalls)
}

func TestAccountService_RegisterThenLogin_RoundTrip(t *testing.T) {
	userRepo := &mockUserRepository{}
	txManager := &mockTransactionManager{repo: userRepo}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Real bcrypt at minimum cost so the round trip exercises the actual
	// hash/verify contract.
	service := NewAccountService(AccountServiceParams{
		TxManager:  txManager,
		UserRepo:   userRepo,
		Normalizer: auth.NewEmailNormalizer(),
		Hasher:     auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		Logger:     logger,
	})

	var stored *entity.User
	userRepo.CreateFunc = func(_ context.Context, user *entity.User) error {
		user.ID = uuid.New()
		stored = user

		return nil
	}

	registered, err := service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "Round@Trip.com",
		Password: "password123",
	})
	require.NoError(t, err)

	userRepo.FindByEmailFunc = func(_ context.Context, email string) (*entity.User, error) {
		if stored != nil && email == stored.Email {
			return stored, nil
		}

		return nil, repository.ErrUserNotFound
	}

	// Case/whitespace variant of the same identity logs in and resolves to
	// the same account.
	loggedIn, err := service.Login(context.Background(), &usecase.LoginInput{
		Email:    " ROUND@TRIP.COM ",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, loggedIn.ID)

	// Wrong password is InvalidCredentials, not InvalidInput.
	_, err = service.Login(context.Background(), &usecase.LoginInput{
		Email:    "round@trip.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	assert.Equal(t, 401, appErrFrom(t, err).HTTPCode())
}

func TestAccountService_Login_UnknownUserIsInvalidCredentials(t *testing.T) {
	fixtures := newTestAccountService(t)

	_, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	require.Error(t, err)

	appErr := appErrFrom(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	assert.Equal(t, "general", appErr.Field())
	// The message must not reveal whether the email exists.
	assert.NotContains(t, appErr.Message(), "email address or password you entered is incorrect. No such user")
	assert.Equal(t, domainerrors.ErrInvalidCredentials.Message(), appErr.Message())
	// The dummy comparison ran, so this path costs one bcrypt check like a mismatch.
	assert.Equal(t, 1, fixtures.hasher.checkCalls)
}

func TestAccountService_Login_StorageFailure(t *testing.T) {
	fixtures := newTestAccountService(t)

	fixtures.userRepo.FindByEmailFunc = func(_ context.Context, _ string) (*entity.User, error) {
		return nil, domainerrors.NewStorageError(errors.New("read tcp: i/o timeout"), "failed to find user by email")
	}

	_, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "down@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.Equal(t, 503, appErrFrom(t, err).HTTPCode())
}

func TestAccountService_Login_VerifyMechanismFailure(t *testing.T) {
	fixtures := newTestAccountService(t)

	fixtures.userRepo.FindByEmailFunc = func(_ context.Context, email string) (*entity.User, error) {
		return &entity.User{ID: uuid.New(), Email: email, PasswordHash: "corrupted"}, nil
	}
	fixtures.hasher.CheckFunc = func(_, _ string) (bool, error) {
		return false, errors.New("crypto/bcrypt: hashedSecret too short")
	}

	_, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "corrupt@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordVerifyFailed))
	assert.Equal(t, 500, appErrFrom(t, err).HTTPCode())
}

func TestAccountService_SanitizedUserNeverCarriesHash(t *testing.T) {
	fixtures := newTestAccountService(t)

	out, err := fixtures.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "safe@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	encoded, err := json.Marshal(out)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "password")
	assert.NotContains(t, string(encoded), "hash")
}
