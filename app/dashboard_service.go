package app

import (
	"context"

	"maridash/domain/artifact"
	"maridash/domain/table"
	"maridash/domain/topic"
	"maridash/internal"
	"maridash/internal/errors"
	"maridash/ports"

	"golang.org/x/sync/errgroup"
)

// DashboardService resolves a topic's artifacts, fetches them and assembles
// the view. It holds no per-request state.
type DashboardService struct {
	catalogue   *topic.Catalogue
	resolver    *artifact.Resolver
	fetcher     ports.ArtifactFetcher
	concurrency int
	logger      *internal.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(catalogue *topic.Catalogue, resolver *artifact.Resolver, fetcher ports.ArtifactFetcher, concurrency int, logger *internal.Logger) *DashboardService {
	if concurrency <= 0 {
		concurrency = 1
	}
	if logger == nil {
		logger = internal.Discard
	}
	return &DashboardService{
		catalogue:   catalogue,
		resolver:    resolver,
		fetcher:     fetcher,
		concurrency: concurrency,
		logger:      logger.With("dashboard"),
	}
}

// Catalogue returns the topics the dashboard offers
func (s *DashboardService) Catalogue() *topic.Catalogue {
	return s.catalogue
}

// Topic validates label against the catalogue. An empty label selects the default.
func (s *DashboardService) Topic(label string) (topic.Topic, error) {
	if label == "" {
		return s.catalogue.Default(), nil
	}
	t, ok := s.catalogue.Lookup(label)
	if !ok {
		return topic.Topic{}, errors.InvalidInput("unknown topic " + label)
	}
	return t, nil
}

// References returns every artifact locator for a topic
func (s *DashboardService) References(t topic.Topic) []artifact.Reference {
	return s.resolver.Resolve(t)
}

// Render fetches all artifacts of the topic and returns the sections that
// could be loaded, in layout order. Fetch failures never fail the render.
func (s *DashboardService) Render(ctx context.Context, label string) (*View, error) {
	t, err := s.Topic(label)
	if err != nil {
		return nil, err
	}

	results := s.Fetch(ctx, t)

	view := &View{
		Topic:   t,
		Key:     t.Key(),
		Results: results,
	}
	for _, r := range results {
		if !r.Present() {
			continue
		}
		section := Section{
			Category: r.Reference.Category,
			Title:    r.Reference.Category.Title(),
			URL:      r.Reference.URL,
		}
		if r.Table != nil {
			section.Table = r.Table
			section.Summaries = r.Table.Summaries()
		}
		view.Sections = append(view.Sections, section)
	}

	s.logger.Debug("rendered %q: %d of %d artifacts present", t.Label, len(view.Sections), len(results))
	return view, nil
}

// Fetch loads every artifact of a topic concurrently. Each goroutine writes
// only its own slot, so results keep layout order.
func (s *DashboardService) Fetch(ctx context.Context, t topic.Topic) []Result {
	refs := s.resolver.Resolve(t)
	results := make([]Result, len(refs))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, ref := range refs {
		g.Go(func() error {
			results[i] = s.fetchOne(ctx, ref)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Table fetches a single table artifact for a topic
func (s *DashboardService) Table(ctx context.Context, label string, c artifact.Category) (*table.Table, error) {
	if c.Kind != artifact.KindTable {
		return nil, errors.InvalidInput(c.String() + " is not a table")
	}
	t, err := s.Topic(label)
	if err != nil {
		return nil, err
	}
	tbl, err := s.fetcher.FetchTable(ctx, s.resolver.Locator(c, t))
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s for %q", c, t.Label)
	}
	return tbl, nil
}

func (s *DashboardService) fetchOne(ctx context.Context, ref artifact.Reference) Result {
	result := Result{Reference: ref}

	var err error
	switch ref.Category.Kind {
	case artifact.KindImage:
		err = s.fetcher.ProbeImage(ctx, ref.URL)
	case artifact.KindTable:
		result.Table, err = s.fetcher.FetchTable(ctx, ref.URL)
		if err == nil && result.Table == nil {
			err = errors.MalformedData("empty table for "+ref.URL, nil)
		}
	}

	result.Status = classify(err)
	if err != nil {
		result.Table = nil
		result.Err = err
		s.logger.Debug("%s omitted (%s): %v", ref.Category, result.Status, err)
	}
	return result
}

func classify(err error) Status {
	if err == nil {
		return StatusPresent
	}
	switch errors.GetCode(err) {
	case errors.CodeNotFound:
		return StatusMissing
	case errors.CodeMalformedData:
		return StatusMalformed
	default:
		return StatusUnreachable
	}
}
