package usecase

import (
	"context"
	"crypto/ed25519"
	"errors"
	"testing"

	"learnplatform/internal/domain"
	"learnplatform/internal/infrastructure/security"
	"learnplatform/services/api-gateway/internal/client"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type createCall struct {
	role                                  domain.Role
	wallet, username, fullName, signature string
}

// fakeProcedures keeps accounts in memory and enforces the same uniqueness
// rules as the real procedures.
type fakeProcedures struct {
	accounts  map[string]*client.Account
	creates   []createCall
	lookupErr error
	courses   []domain.CourseCard
}

func newFakeProcedures() *fakeProcedures {
	return &fakeProcedures{accounts: map[string]*client.Account{}}
}

func (f *fakeProcedures) CreateAccount(_ context.Context, role domain.Role, wallet, username, fullName, signature string) (*client.Account, error) {
	f.creates = append(f.creates, createCall{role, wallet, username, fullName, signature})
	if _, ok := f.accounts[wallet]; ok {
		return nil, domain.ErrWalletTaken
	}
	for _, a := range f.accounts {
		if a.Username == username {
			return nil, domain.ErrUsernameTaken
		}
	}
	acc := &client.Account{UserID: uuid.New(), Role: role, Username: username}
	f.accounts[wallet] = acc
	return &client.Account{UserID: acc.UserID, Role: role}, nil
}

func (f *fakeProcedures) RoleByWallet(_ context.Context, wallet string) (*client.Account, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	acc, ok := f.accounts[wallet]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *acc
	return &copied, nil
}

func (f *fakeProcedures) RelativeCourses(context.Context) ([]domain.CourseCard, error) {
	return f.courses, nil
}

type failingSigner struct{}

func (failingSigner) SignMessage(context.Context, []byte) ([]byte, error) {
	return nil, errors.New("user rejected the request")
}

// tamperingSigner signs correctly and then flips one byte.
type tamperingSigner struct{ inner *security.KeypairSigner }

func (s tamperingSigner) SignMessage(ctx context.Context, msg []byte) ([]byte, error) {
	sig, err := s.inner.SignMessage(ctx, msg)
	if err != nil {
		return nil, err
	}
	sig[0] ^= 0x01
	return sig, nil
}

func newWallet(t *testing.T) *security.KeypairSigner {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return security.NewKeypairSigner(priv)
}
