// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "roster/internal/delivery/context"
	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/domain/service"
	"roster/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
)

// dummyPasswordHash is compared against when login targets a nonexistent
// account, so both login failure paths cost one bcrypt comparison and the
// response time does not reveal whether the email is registered.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager  repository.TransactionManager
	userRepo   repository.UserRepository
	normalizer service.EmailNormalizer
	hasher     service.PasswordHasher
	logger     *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	UserRepo   repository.UserRepository
	Normalizer service.EmailNormalizer
	Hasher     service.PasswordHasher
	Logger     *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:  params.TxManager,
		userRepo:   params.UserRepo,
		normalizer: params.Normalizer,
		hasher:     params.Hasher,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete registration process: presence checks,
// email normalization, password length policy, duplicate pre-check, hashing
// and the final insert. The pre-check and insert run in one transaction; the
// unique index remains the correctness mechanism when a concurrent
// registration slips between them.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.SanitizedUser, error) {
	if err := validatePresence(input.Email, input.Password); err != nil {
		return nil, err
	}

	normalizedEmail, err := srv.normalizer.Normalize(input.Email)
	if err != nil {
		return nil, err
	}

	if len(input.Password) < minPasswordLength || len(input.Password) > maxPasswordLength {
		return nil, domainerrors.ErrPasswordLength.WrapMessage("password length policy violated")
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", normalizedEmail))

	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, findErr := userRepo.FindByEmail(ctx, normalizedEmail)
		if findErr == nil {
			return domainerrors.ErrEmailConflict.WrapMessage("email already registered")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			// Storage failure during the pre-check; already classified by the repository.
			return errors.Wrap(findErr, "failed to check email uniqueness")
		}

		hashedPassword, hashErr := srv.hasher.Hash(input.Password)
		if hashErr != nil {
			srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", hashErr))

			return domainerrors.ErrPasswordHashFailed.WrapMessage(hashErr.Error())
		}

		newUser := &entity.User{
			Email:        normalizedEmail,
			PasswordHash: hashedPassword,
		}

		if createErr := userRepo.Create(ctx, newUser); createErr != nil {
			return errors.Wrap(createErr, "failed to create user during registration")
		}

		registeredUser = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", normalizedEmail), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID))

	return sanitize(registeredUser), nil
}

// Login verifies the supplied credentials against the stored hash. A missing
// account and a wrong password produce the same error and, thanks to the
// dummy comparison, roughly the same latency.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.SanitizedUser, error) {
	if err := validatePresence(input.Email, input.Password); err != nil {
		return nil, err
	}

	normalizedEmail, err := srv.normalizer.Normalize(input.Email)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Starting login", slog.String("email", normalizedEmail))

	user, err := srv.userRepo.FindByEmail(ctx, normalizedEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Burn a bcrypt comparison so this path costs the same as a mismatch.
			_, _ = srv.hasher.Check(input.Password, dummyPasswordHash)
			srv.log(ctx).Warn("Login failed", slog.String("email", normalizedEmail), slog.Any("error", domainerrors.ErrInvalidCredentials))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown email")
		}

		srv.log(ctx).Warn("Login failed", slog.String("email", normalizedEmail), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	ok, checkErr := srv.hasher.Check(input.Password, user.PasswordHash)
	if checkErr != nil {
		srv.log(ctx).Error("Password verification mechanism failed", slog.Any("userID", user.ID), slog.Any("error", checkErr))

		return nil, domainerrors.ErrPasswordVerifyFailed.WrapMessage(checkErr.Error())
	}
	if !ok {
		srv.log(ctx).Warn("Login failed", slog.String("email", normalizedEmail), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	srv.log(ctx).Debug("Login completed", slog.Any("userID", user.ID))

	return sanitize(user), nil
}

// validatePresence rejects requests missing either credential before any
// normalization or storage work happens.
func validatePresence(email, password string) error {
	if email == "" {
		return domainerrors.ErrEmailRequired.WrapMessage("missing email")
	}
	if password == "" {
		return domainerrors.ErrPasswordRequired.WrapMessage("missing password")
	}

	return nil
}

// sanitize strips the password hash before the record crosses the service boundary.
func sanitize(user *entity.User) *usecase.SanitizedUser {
	return &usecase.SanitizedUser{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
