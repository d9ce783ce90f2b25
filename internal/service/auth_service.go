package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/invoicecreator/invoice-creator/internal/domain"
	"github.com/invoicecreator/invoice-creator/internal/observability"
	"github.com/invoicecreator/invoice-creator/internal/security"
	"github.com/invoicecreator/invoice-creator/internal/session"
)

const (
	statusSuccess            = "success"
	statusError              = "error"
	statusDuplicate          = "duplicate"
	statusInvalidCredentials = "invalid_credentials"
)

// AuthService registers credentials and moves a session between the
// anonymous and authenticated states.
type AuthService struct {
	creds      CredentialStore
	identities *IdentitySession
	hasher     security.PasswordHasher
	logger     *slog.Logger
}

func NewAuthService(creds CredentialStore, identities *IdentitySession, hasher security.PasswordHasher, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = observability.Logger()
	}
	return &AuthService{creds: creds, identities: identities, hasher: hasher, logger: logger}
}

// Register stores a new credential and returns the user id. The caller is
// not signed in as a side effect.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (uint, error) {
	ctx, span := observability.Tracer().Start(ctx, "auth.register")
	defer span.End()
	start := time.Now()
	status := statusError
	defer func() {
		observability.RecordAuthRegister(ctx, status)
		observability.RecordAuthOperationDuration(ctx, "register", status, time.Since(start))
	}()

	email = canonicalEmail(email)
	name = strings.TrimSpace(name)

	existing, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		s.fail(ctx, span, "register", err)
		return 0, err
	}
	if existing != nil {
		status = statusDuplicate
		observability.Audit(ctx, s.logger, "auth.register", "", "rejected", "duplicate_email")
		return 0, ErrDuplicateCredential
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		err = infraError("hash password", err)
		s.fail(ctx, span, "register", err)
		return 0, err
	}

	userID, err := s.creds.Create(ctx, name, email, hash)
	if errors.Is(err, ErrDuplicateCredential) {
		status = statusDuplicate
		observability.Audit(ctx, s.logger, "auth.register", "", "rejected", "duplicate_email")
		return 0, err
	}
	if err != nil {
		s.fail(ctx, span, "register", err)
		return 0, err
	}

	status = statusSuccess
	span.SetAttributes(attribute.Int64("user.id", int64(userID)))
	observability.Audit(ctx, s.logger, "auth.register", actorID(userID), "success", "")
	return userID, nil
}

// Authenticate verifies email and password. Unknown emails and wrong
// passwords both return (false, nil) and leave the session untouched; on
// success the identity is bound into sess.
func (s *AuthService) Authenticate(ctx context.Context, sess *session.Handle, email, password string) (bool, error) {
	ctx, span := observability.Tracer().Start(ctx, "auth.authenticate")
	defer span.End()
	start := time.Now()
	status := statusError
	defer func() {
		observability.RecordAuthLogin(ctx, status)
		observability.RecordAuthOperationDuration(ctx, "authenticate", status, time.Since(start))
	}()

	email = canonicalEmail(email)
	cred, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		s.fail(ctx, span, "authenticate", err)
		return false, err
	}
	if cred == nil {
		status = statusInvalidCredentials
		observability.Audit(ctx, s.logger, "auth.login", "", "rejected", "unknown_email")
		return false, nil
	}

	ok, err := s.hasher.Verify(cred.PasswordHash, password)
	if err != nil {
		err = infraError("verify password", err)
		s.fail(ctx, span, "authenticate", err)
		return false, err
	}
	if !ok {
		status = statusInvalidCredentials
		observability.Audit(ctx, s.logger, "auth.login", actorID(cred.UserID), "rejected", "password_mismatch")
		return false, nil
	}

	id := domain.Identity{UserID: cred.UserID, Name: cred.Name, Email: cred.Email}
	if err := s.identities.Bind(ctx, sess, id); err != nil {
		err = infraError("bind identity", err)
		s.fail(ctx, span, "authenticate", err)
		return false, err
	}

	status = statusSuccess
	span.SetAttributes(attribute.Int64("user.id", int64(cred.UserID)))
	observability.Audit(ctx, s.logger, "auth.login", actorID(cred.UserID), "success", "")
	return true, nil
}

// GetIdentity returns the identity bound to sess, or nil when anonymous.
func (s *AuthService) GetIdentity(ctx context.Context, sess *session.Handle) (*domain.Identity, error) {
	id, err := s.identities.Current(ctx, sess)
	switch {
	case err != nil:
		observability.RecordIdentityLookup(ctx, statusError)
		return nil, infraError("read identity", err)
	case id == nil:
		observability.RecordIdentityLookup(ctx, "anonymous")
	default:
		observability.RecordIdentityLookup(ctx, "authenticated")
	}
	return id, nil
}

// ClearIdentity signs sess out. Clearing an anonymous session is a no-op.
func (s *AuthService) ClearIdentity(ctx context.Context, sess *session.Handle) error {
	ctx, span := observability.Tracer().Start(ctx, "auth.clear_identity")
	defer span.End()
	start := time.Now()

	err := s.identities.Clear(ctx, sess)
	if err != nil {
		err = infraError("clear identity", err)
		s.fail(ctx, span, "clear_identity", err)
	} else {
		observability.Audit(ctx, s.logger, "auth.logout", "", "success", "")
	}
	status := observability.StatusFromError(err)
	observability.RecordAuthLogout(ctx, status)
	observability.RecordAuthOperationDuration(ctx, "clear_identity", status, time.Since(start))
	return err
}

// RequireIdentity is GetIdentity for callers that need a signed-in user.
func (s *AuthService) RequireIdentity(ctx context.Context, sess *session.Handle) (*domain.Identity, error) {
	id, err := s.GetIdentity(ctx, sess)
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, ErrNotAuthenticated
	}
	return id, nil
}

func (s *AuthService) fail(ctx context.Context, span trace.Span, op string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, op+" failed")
	s.logger.ErrorContext(ctx, "auth operation failed", "operation", op, "error", err)
}

func canonicalEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func actorID(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}
