// Package service implements the read-only proxy for the external posts feed.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/allisson/analytics/internal/config"
	apperrors "github.com/allisson/analytics/internal/errors"
	"github.com/allisson/analytics/internal/post/domain"
)

// PostService fetches posts from the upstream feed.
type PostService interface {
	// List retrieves all posts from the upstream feed.
	List(ctx context.Context) ([]*domain.Post, error)
	// Get retrieves a single post by its upstream ID.
	Get(ctx context.Context, id int) (*domain.Post, error)
}

type httpPostService struct {
	client  *http.Client
	baseURL string
}

// NewPostService creates a PostService backed by the configured upstream API.
// The HTTP client is injected so tests can point it at a local server.
func NewPostService(cfg *config.Config, client *http.Client) PostService {
	if client == nil {
		client = &http.Client{Timeout: cfg.PostsAPITimeout}
	}
	return &httpPostService{
		client:  client,
		baseURL: cfg.PostsAPIBaseURL,
	}
}

func (s *httpPostService) List(ctx context.Context) ([]*domain.Post, error) {
	var posts []*domain.Post
	if err := s.fetch(ctx, s.baseURL+"/posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *httpPostService) Get(ctx context.Context, id int) (*domain.Post, error) {
	var post domain.Post
	if err := s.fetch(ctx, fmt.Sprintf("%s/posts/%d", s.baseURL, id), &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *httpPostService) fetch(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperrors.Wrap(err, "failed to build posts request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return apperrors.Wrap(domain.ErrUpstreamUnavailable, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrPostNotFound
	case resp.StatusCode != http.StatusOK:
		return apperrors.Wrapf(domain.ErrUpstreamUnavailable, "unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return apperrors.Wrap(domain.ErrUpstreamUnavailable, err.Error())
	}
	return nil
}
