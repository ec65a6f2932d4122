package wallet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"learnplatform/internal/infrastructure/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeystore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "key")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrNoKey)

	created, err := Generate(path)
	require.NoError(t, err)

	_, err = Generate(path)
	assert.Error(t, err, "must not overwrite")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, created.Address(), loaded.Address())
}

func TestAPI_RegisterSignsGatewayMessage(t *testing.T) {
	signer, err := Generate(filepath.Join(t.TempDir(), "key"))
	require.NoError(t, err)

	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/auth/register/message":
			json.NewEncoder(w).Encode(map[string]string{"message": security.RegistrationMessage("alice")})
		case "/api/v1/auth/register":
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "this wallet is already registered"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	_, err = NewAPI(srv.URL, signer).Register(context.Background(), "alice", "Alice", "student")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "this wallet is already registered")

	assert.Equal(t, signer.Address(), got["wallet"])
	sig, err := security.Ed25519Verifier{}.DecodeSignature(got["signature"])
	require.NoError(t, err)
	assert.NoError(t, security.NewMultiVerifier().Verify(signer.Address(), []byte(security.RegistrationMessage("alice")), sig))
}

func TestAPI_Login(t *testing.T) {
	signer, err := Generate(filepath.Join(t.TempDir(), "key"))
	require.NoError(t, err)

	const challenge = "sign me"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/auth/challenge":
			assert.Equal(t, signer.Address(), r.URL.Query().Get("wallet"))
			json.NewEncoder(w).Encode(map[string]string{"message": challenge})
		case "/api/v1/auth/login":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			sig, _ := security.Ed25519Verifier{}.DecodeSignature(body["signature"])
			if security.NewMultiVerifier().Verify(body["wallet"], []byte(challenge), sig) != nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok", "role": "teacher"})
		}
	}))
	defer srv.Close()

	res, err := NewAPI(srv.URL, signer).Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", res.AccessToken)
	assert.Equal(t, "teacher", res.Role)
}
