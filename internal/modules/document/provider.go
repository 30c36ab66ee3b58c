package document

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Provider is the provider-agnostic interface every file-hosting adapter
// must implement. To add a hosted provider (Cloudinary, imgbb, S3), implement
// this interface and register it under a name.
type Provider interface {
	// Upload stores the file and returns the provider's reference and a
	// publicly reachable URL.
	Upload(ctx context.Context, name string, r io.Reader) (ref, url string, err error)
	// Delete removes the stored object. Best-effort from the caller's side.
	Delete(ctx context.Context, ref string) error
}

// ProviderRegistry maps provider names to their implementations.
type ProviderRegistry map[string]Provider

// ── Local filesystem provider ─────────────────────────────────────────────────
// Default provider for development and single-host deployments; files are
// served from the uploads directory by the HTTP server.

type localProvider struct {
	dir     string
	baseURL string
}

// NewLocalProvider stores files under dir and builds URLs from baseURL.
func NewLocalProvider(dir, baseURL string) Provider {
	return &localProvider{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (p *localProvider) Upload(ctx context.Context, name string, r io.Reader) (string, string, error) {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", "", err
	}
	ref := uuid.New().String() + "_" + filepath.Base(name)
	f, err := os.Create(filepath.Join(p.dir, ref))
	if err != nil {
		return "", "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", "", err
	}
	return ref, fmt.Sprintf("%s/uploads/%s", p.baseURL, ref), nil
}

func (p *localProvider) Delete(ctx context.Context, ref string) error {
	// refuse anything that could escape the uploads dir
	if ref != filepath.Base(ref) {
		return fmt.Errorf("invalid provider ref %q", ref)
	}
	return os.Remove(filepath.Join(p.dir, ref))
}

// ── Hosted provider adapter ──────────────────────────────────────────────────
// In production, replace the stub methods with the hosting service's upload
// API (e.g., Cloudinary: POST /v1_1/{cloud}/image/upload with a signed form).

type hostedProvider struct {
	apiKey  string
	baseURL string
}

// NewHostedProvider creates an adapter for an external file-hosting API.
func NewHostedProvider(apiKey, baseURL string) Provider {
	return &hostedProvider{apiKey: apiKey, baseURL: baseURL}
}

func (p *hostedProvider) Upload(ctx context.Context, name string, r io.Reader) (string, string, error) {
	if p.apiKey == "" {
		return "", "", fmt.Errorf("hosted provider is not configured")
	}

	// ── PRODUCTION INTEGRATION POINT ──────────────────────────────────────────
	// 1. POST multipart form {file, api_key, timestamp, signature} to baseURL
	// 2. Read {public_id, secure_url} from the JSON response
	// 3. Return public_id as ref and secure_url as url
	// ──────────────────────────────────────────────────────────────────────────

	ref := "hosted/" + uuid.New().String()
	return ref, fmt.Sprintf("%s/%s/%s", p.baseURL, ref, name), nil
}

func (p *hostedProvider) Delete(ctx context.Context, ref string) error {
	if p.apiKey == "" {
		return fmt.Errorf("hosted provider is not configured")
	}

	// ── PRODUCTION INTEGRATION POINT ──────────────────────────────────────────
	// POST {public_id, api_key, timestamp, signature} to baseURL/destroy
	// ──────────────────────────────────────────────────────────────────────────

	return nil
}
