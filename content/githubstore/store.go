// Package githubstore backs the content store with the GitHub contents API.
// The blob SHA of the committed file is the version tag: GitHub rejects
// writes whose SHA no longer matches the file's current blob, which is
// exactly the conditional-write contract the sync protocol needs.
package githubstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v65/github"
	"github.com/jrsteele09/go-dash-server/content"
	"github.com/jrsteele09/go-dash-server/internal/config"
)

var _ content.Store = (*Store)(nil)

// Store reads and conditionally writes a single JSON document at a fixed
// path on a fixed branch. The operator's personal access token is supplied
// per call, never stored.
type Store struct {
	owner   string
	repo    string
	path    string
	branch  string
	baseURL string // Overridden in tests
}

func New(cfg config.ContentConfig) *Store {
	return &Store{
		owner:  cfg.GetContentOwner(),
		repo:   cfg.GetContentRepo(),
		path:   cfg.GetContentPath(),
		branch: cfg.GetContentBranch(),
	}
}

// WithBaseURL points the store at a different API host.
func (s *Store) WithBaseURL(baseURL string) *Store {
	s.baseURL = baseURL
	return s
}

func (s *Store) client(token string) (*github.Client, error) {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	if s.baseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(s.baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse base url: %w", err)
		}
		client.BaseURL = base
		client.UploadURL = base
	}
	return client, nil
}

func (s *Store) Fetch(ctx context.Context, token string) (content.Document, content.VersionTag, error) {
	client, err := s.client(token)
	if err != nil {
		return nil, "", err
	}

	file, _, resp, err := client.Repositories.GetContents(ctx, s.owner, s.repo, s.path, &github.RepositoryContentGetOptions{
		Ref: s.branch,
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, "", fmt.Errorf("%w: %s", content.ErrDocumentNotFound, s.path)
		}
		return nil, "", fmt.Errorf("fetch %s: %w", s.path, err)
	}
	if file == nil {
		return nil, "", fmt.Errorf("%s is a directory, not a document", s.path)
	}

	raw, err := file.GetContent()
	if err != nil {
		return nil, "", fmt.Errorf("decode %s payload: %w", s.path, err)
	}

	doc, err := content.DecodeDocument([]byte(raw))
	if err != nil {
		return nil, "", err
	}
	return doc, content.VersionTag(file.GetSHA()), nil
}

func (s *Store) Commit(ctx context.Context, token string, doc content.Document, tag content.VersionTag, message string) error {
	if tag == "" {
		return content.ErrVersionRequired
	}

	client, err := s.client(token)
	if err != nil {
		return err
	}

	encoded, err := doc.Encode()
	if err != nil {
		return err
	}

	_, resp, err := client.Repositories.UpdateFile(ctx, s.owner, s.repo, s.path, &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: encoded,
		SHA:     github.String(string(tag)),
		Branch:  github.String(s.branch),
	})
	if err != nil {
		if isVersionConflict(resp, err) {
			return fmt.Errorf("%w: %v", content.ErrConditionalWriteFailed, err)
		}
		return fmt.Errorf("commit %s: %w", s.path, err)
	}
	return nil
}

// isVersionConflict recognises GitHub's rejection of a write carrying a
// stale blob SHA: 409 on contention, 422 when the SHA does not match.
func isVersionConflict(resp *github.Response, err error) bool {
	if resp != nil && (resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity) {
		return true
	}
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		code := ghErr.Response.StatusCode
		return code == http.StatusConflict || code == http.StatusUnprocessableEntity
	}
	return false
}
