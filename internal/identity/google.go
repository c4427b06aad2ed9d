package identity

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// certsURL serves the x509 certificates Google signs Firebase ID tokens with,
// keyed by "kid". The response's Cache-Control max-age drives refresh.
const certsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

var maxAgePattern = regexp.MustCompile(`max-age=(\d+)`)

// GoogleVerifier validates Firebase/Google ID tokens (RS256) for a single
// project. Signing certificates are fetched lazily and cached until the
// max-age Google advertises expires.
type GoogleVerifier struct {
	projectID     string
	certsEndpoint string
	client        *http.Client
	parser        *jwt.Parser

	mu          sync.RWMutex
	certs       map[string]*rsa.PublicKey
	certsExpiry time.Time
}

// NewGoogleVerifier creates a verifier for ID tokens issued to projectID.
func NewGoogleVerifier(projectID string) *GoogleVerifier {
	return &GoogleVerifier{
		projectID:     projectID,
		certsEndpoint: certsURL,
		client:        &http.Client{Timeout: 10 * time.Second},
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"RS256"}),
			jwt.WithIssuer("https://securetoken.google.com/"+projectID),
			jwt.WithAudience(projectID),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}
}

// Verify checks the token signature against Google's published certificates
// and validates issuer, audience and expiry. Rejections collapse into
// ErrInvalidToken so no provider detail leaks to clients.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	claims := jwt.MapClaims{}
	_, err := v.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token has no kid header")
		}
		return v.keyFor(ctx, kid)
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, ErrInvalidToken
	}
	name, _ := claims["name"].(string)

	out := &Claims{Email: email, Name: name}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

// keyFor returns the RSA public key for a certificate kid, refreshing the
// cache when it is stale or the kid is unknown (key rotation).
func (v *GoogleVerifier) keyFor(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.certs[kid]
	fresh := time.Now().Before(v.certsExpiry)
	v.mu.RUnlock()

	if ok && fresh {
		return key, nil
	}

	if err := v.refreshCerts(ctx); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	key, ok = v.certs[kid]
	if !ok {
		return nil, fmt.Errorf("no certificate for kid %q", kid)
	}
	return key, nil
}

func (v *GoogleVerifier) refreshCerts(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsEndpoint, nil)
	if err != nil {
		return err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch certificates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch certificates: status %d", resp.StatusCode)
	}

	var raw map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("decode certificates: %w", err)
	}

	certs := make(map[string]*rsa.PublicKey, len(raw))
	for kid, pemData := range raw {
		key, err := parseRSAPublicKey([]byte(pemData))
		if err != nil {
			return fmt.Errorf("parse certificate %s: %w", kid, err)
		}
		certs[kid] = key
	}

	v.mu.Lock()
	v.certs = certs
	v.certsExpiry = time.Now().Add(cacheMaxAge(resp.Header.Get("Cache-Control")))
	v.mu.Unlock()
	return nil
}

func parseRSAPublicKey(pemData []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, fmt.Errorf("no PEM block")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("certificate key is not RSA")
	}
	return key, nil
}

// cacheMaxAge parses max-age out of a Cache-Control header. Falls back to
// one hour when the header is absent or unparseable.
func cacheMaxAge(header string) time.Duration {
	m := maxAgePattern.FindStringSubmatch(header)
	if len(m) != 2 {
		return time.Hour
	}
	secs, err := strconv.Atoi(m[1])
	if err != nil || secs <= 0 {
		return time.Hour
	}
	return time.Duration(secs) * time.Second
}
