package document

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service defines document business logic.
type Service interface {
	// Upload stores the file with the named provider ("" picks the default)
	// and records its metadata.
	Upload(ctx context.Context, req UploadRequest, r io.Reader) (*Document, error)
	GetDocument(ctx context.Context, id string) (*Document, error)
	ListDocuments(ctx context.Context, kind string) ([]*Document, error)
	// DeleteDocument removes the hosted object best-effort, then the record.
	DeleteDocument(ctx context.Context, id string) error
}

// UploadRequest holds the metadata accompanying an uploaded file.
type UploadRequest struct {
	Name      string
	Kind      Kind
	MimeType  string
	SizeBytes int64
	Provider  string
}

type service struct {
	repo            Repository
	providers       ProviderRegistry
	defaultProvider string
}

// NewService creates a new document service.
func NewService(repo Repository, providers ProviderRegistry, defaultProvider string) Service {
	return &service{repo: repo, providers: providers, defaultProvider: defaultProvider}
}

func (s *service) Upload(ctx context.Context, req UploadRequest, r io.Reader) (*Document, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	switch req.Kind {
	case KindBanner, KindProductImage, KindReport, KindOther:
	case "":
		req.Kind = KindOther
	default:
		return nil, fmt.Errorf("unknown document kind %q", req.Kind)
	}

	name := req.Provider
	if name == "" {
		name = s.defaultProvider
	}
	provider, ok := s.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown storage provider %q", name)
	}

	ref, url, err := provider.Upload(ctx, req.Name, r)
	if err != nil {
		return nil, fmt.Errorf("upload to %s: %w", name, err)
	}

	d := &Document{
		ID:          uuid.New(),
		Name:        req.Name,
		Kind:        req.Kind,
		URL:         url,
		MimeType:    req.MimeType,
		SizeBytes:   req.SizeBytes,
		Provider:    name,
		ProviderRef: ref,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		// keep storage consistent with the records we track
		if derr := provider.Delete(ctx, ref); derr != nil {
			log.Warn().Err(derr).Str("ref", ref).Msg("document: orphaned upload cleanup failed")
		}
		return nil, err
	}
	return d, nil
}

func (s *service) GetDocument(ctx context.Context, id string) (*Document, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListDocuments(ctx context.Context, kind string) ([]*Document, error) {
	return s.repo.List(ctx, kind)
}

func (s *service) DeleteDocument(ctx context.Context, id string) error {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if provider, ok := s.providers[d.Provider]; ok && d.ProviderRef != "" {
		if err := provider.Delete(ctx, d.ProviderRef); err != nil {
			log.Warn().Err(err).Str("ref", d.ProviderRef).Msg("document: remote delete failed, removing record anyway")
		}
	}
	return s.repo.Delete(ctx, id)
}
