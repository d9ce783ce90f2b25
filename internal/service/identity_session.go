package service

import (
	"context"
	"errors"

	"github.com/invoicecreator/invoice-creator/internal/domain"
	"github.com/invoicecreator/invoice-creator/internal/session"
)

const identityKey = "identity"

var errNoSession = errors.New("no session handle")

// IdentitySession reads and writes the authenticated identity held in a
// session. A session holds at most one identity.
type IdentitySession struct{}

func NewIdentitySession() *IdentitySession { return &IdentitySession{} }

func (IdentitySession) Bind(ctx context.Context, sess *session.Handle, id domain.Identity) error {
	if sess == nil {
		return errNoSession
	}
	return sess.Save(ctx, identityKey, id)
}

// Current returns nil when the session is anonymous.
func (IdentitySession) Current(ctx context.Context, sess *session.Handle) (*domain.Identity, error) {
	if sess == nil {
		return nil, errNoSession
	}
	var id domain.Identity
	ok, err := sess.Load(ctx, identityKey, &id)
	if err != nil || !ok {
		return nil, err
	}
	return &id, nil
}

func (IdentitySession) Clear(ctx context.Context, sess *session.Handle) error {
	if sess == nil {
		return errNoSession
	}
	return sess.Delete(ctx, identityKey)
}
