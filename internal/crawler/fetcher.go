package crawler

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/toannghia/vietlott-ai-analyzer/internal/adapter"
	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
	"github.com/toannghia/vietlott-ai-analyzer/internal/logger"
)

// Fetcher resolves the results page URL for a game and retrieves its
// raw payload. It never interprets the content.
type Fetcher struct {
	client adapter.HTTPClient
	urls   map[string]string
}

func NewFetcher(client adapter.HTTPClient, urls map[string]string) *Fetcher {
	return &Fetcher{client: client, urls: urls}
}

// Fetch returns the raw results page for a game. Network failures and
// empty payloads both collapse into domain.ErrNoPayload so the caller
// treats them as a single aborted-cycle condition.
func (f *Fetcher) Fetch(ctx context.Context, game domain.GameType) (string, error) {
	url, ok := f.urls[string(game)]
	if !ok || url == "" {
		return "", fmt.Errorf("%w: no source url for %q", domain.ErrUnknownGame, game)
	}

	html, err := f.client.GetHTML(ctx, url)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to fetch results page: %w", err),
			zap.String("game", string(game)),
			zap.String("url", url))
		return "", fmt.Errorf("%w: %v", domain.ErrNoPayload, err)
	}
	if strings.TrimSpace(html) == "" {
		return "", fmt.Errorf("%w: empty response from %s", domain.ErrNoPayload, url)
	}

	return html, nil
}
