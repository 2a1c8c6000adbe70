package watcher

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ayumu-labs/wishwatch/internal/domain"
	"github.com/ayumu-labs/wishwatch/internal/ports"
)

// Paginator drives the fetcher and extractor across continuation pages,
// accumulating items deduplicated by identity across the whole listing.
type Paginator struct {
	fetcher   ports.Fetcher
	parser    ports.Parser
	extractor *Extractor
	maxPages  int
	log       zerolog.Logger
}

// NewPaginator creates a Paginator. maxPages is the hard ceiling that
// converts runaway pagination into a fatal error.
func NewPaginator(fetcher ports.Fetcher, parser ports.Parser, extractor *Extractor, maxPages int, log zerolog.Logger) *Paginator {
	return &Paginator{
		fetcher:   fetcher,
		parser:    parser,
		extractor: extractor,
		maxPages:  maxPages,
		log:       log,
	}
}

// CollectAll fetches the listing starting at startURL and follows its
// continuation mechanism until one of the termination conditions holds:
// no continuation, a revisited continuation URL (cycle), or a page that
// contributed no new identities (stagnation). The latter two stop the
// walk with a warning, not an error. Exceeding the page cap, or ending
// with zero items overall, fails the run.
func (p *Paginator) CollectAll(ctx context.Context, startURL string) ([]domain.Item, error) {
	body, err := p.fetcher.Fetch(ctx, startURL)
	if err != nil {
		return nil, err
	}

	var all []domain.Item
	seen := make(map[string]bool)
	visited := make(map[string]bool)
	pageCount := 0

	for {
		pageCount++
		if pageCount > p.maxPages {
			return nil, fmt.Errorf("%w: page cap %d exceeded", domain.ErrPagination, p.maxPages)
		}

		doc, perr := p.parser.Parse(body)
		if perr != nil {
			return nil, fmt.Errorf("%w: parse page %d: %v", domain.ErrExtraction, pageCount, perr)
		}

		pageItems, xerr := p.extractor.Items(doc, startURL)
		if xerr != nil {
			return nil, xerr
		}

		newItems := 0
		for _, item := range pageItems {
			if seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			all = append(all, item)
			newItems++
		}

		p.log.Info().
			Int("page", pageCount).
			Int("page_items", len(pageItems)).
			Int("new_items", newItems).
			Msg("processed listing page")

		nextURL := resolveContinuation(doc, startURL)
		if nextURL == "" {
			break
		}
		if visited[nextURL] {
			p.log.Warn().Str("url", nextURL).Msg("continuation revisited a previous URL; stopping to avoid a loop")
			break
		}
		if newItems == 0 {
			p.log.Warn().Msg("continuation page contributed no new items; stopping early")
			break
		}

		visited[nextURL] = true
		body, err = p.fetcher.Fetch(ctx, nextURL)
		if err != nil {
			return nil, err
		}
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("%w: no items found across %d page(s)", domain.ErrPagination, pageCount)
	}
	return all, nil
}
