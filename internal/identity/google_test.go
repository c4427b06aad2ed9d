package identity

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testProject = "learnnest-test"

// testSigner holds a throwaway RSA key pair and serves its self-signed
// certificate the way Google serves securetoken certificates.
type testSigner struct {
	key    *rsa.PrivateKey
	kid    string
	server *httptest.Server
}

func newTestSigner(t *testing.T) *testSigner {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "securetoken.test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})

	s := &testSigner{key: key, kid: "test-kid-1"}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		json.NewEncoder(w).Encode(map[string]string{s.kid: string(certPEM)})
	}))
	t.Cleanup(s.server.Close)
	return s
}

func (s *testSigner) sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = s.kid
	signed, err := tok.SignedString(s.key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func (s *testSigner) verifier() *GoogleVerifier {
	v := NewGoogleVerifier(testProject)
	v.certsEndpoint = s.server.URL
	return v
}

func validClaims(email string) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"iss":   "https://securetoken.google.com/" + testProject,
		"aud":   testProject,
		"email": email,
		"name":  "Test User",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
}

func TestGoogleVerifier_Valid(t *testing.T) {
	s := newTestSigner(t)
	v := s.verifier()

	claims, err := v.Verify(context.Background(), s.sign(t, validClaims("a@x.com")))
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("email = %q, want a@x.com", claims.Email)
	}
	if claims.Name != "Test User" {
		t.Fatalf("name = %q, want Test User", claims.Name)
	}
	if claims.ExpiresAt.Before(time.Now()) {
		t.Fatalf("expiry %v should be in the future", claims.ExpiresAt)
	}
}

func TestGoogleVerifier_Rejections(t *testing.T) {
	s := newTestSigner(t)
	v := s.verifier()

	expired := validClaims("a@x.com")
	expired["exp"] = time.Now().Add(-time.Minute).Unix()

	wrongAudience := validClaims("a@x.com")
	wrongAudience["aud"] = "someone-else"

	wrongIssuer := validClaims("a@x.com")
	wrongIssuer["iss"] = "https://securetoken.google.com/someone-else"

	noEmail := validClaims("a@x.com")
	delete(noEmail, "email")

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: s.sign(t, expired)},
		{name: "wrong audience", token: s.sign(t, wrongAudience)},
		{name: "wrong issuer", token: s.sign(t, wrongIssuer)},
		{name: "no email claim", token: s.sign(t, noEmail)},
		{name: "garbage", token: "not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tt.token)
			if err != ErrInvalidToken {
				t.Fatalf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestGoogleVerifier_WrongKey(t *testing.T) {
	// Token signed by one key set, verified against another.
	signer := newTestSigner(t)
	other := newTestSigner(t)

	v := other.verifier()
	_, err := v.Verify(context.Background(), signer.sign(t, validClaims("a@x.com")))
	if err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}
