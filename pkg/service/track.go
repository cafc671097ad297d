//nolint:whitespace //can't make both the linter and editor happy :(
package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mpapenbr/trackday-instructions/pkg/model"
	trackrepos "github.com/mpapenbr/trackday-instructions/pkg/repository/track"
	"github.com/mpapenbr/trackday-instructions/pkg/utils/cache"
	"github.com/mpapenbr/trackday-instructions/pkg/utils/cache/loadercache"
)

var ErrNotFound = errors.New("entry not found")

const CopySuffix = " (Copy)"

type TrackService struct {
	pool     *pgxpool.Pool
	resolver cache.Cache[string, model.Track]
}

type TrackServiceOption func(*TrackService)

// WithResolveCacheExpiration controls how long resolved tracks are served
// from the cache before being re-read.
func WithResolveCacheExpiration(d time.Duration) TrackServiceOption {
	return func(s *TrackService) {
		s.resolver = s.newResolver(d)
	}
}

func NewTrackService(pool *pgxpool.Pool, opts ...TrackServiceOption) *TrackService {
	s := &TrackService{pool: pool}
	s.resolver = s.newResolver(time.Minute)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TrackService) newResolver(expiration time.Duration) cache.Cache[string, model.Track] {
	return loadercache.New[string, model.Track](
		loadercache.WithExpiration[string, model.Track](expiration),
		loadercache.WithLoader[string, model.Track](func(key string) (*model.Track, error) {
			id, err := uuid.FromString(key)
			if err != nil {
				return nil, err
			}
			dbTrack, err := trackrepos.LoadByID(context.Background(), s.pool, id)
			if err != nil {
				return nil, err
			}
			return &dbTrack.Data, nil
		}))
}

func (s *TrackService) GetAll(ctx context.Context) ([]*model.DbTrack, error) {
	return trackrepos.LoadAll(ctx, s.pool)
}

func (s *TrackService) Get(ctx context.Context, id uuid.UUID) (*model.DbTrack, error) {
	item, err := trackrepos.LoadByID(ctx, s.pool, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return item, err
}

func (s *TrackService) Create(ctx context.Context, data *model.Track) (
	*model.DbTrack, error,
) {
	item := &model.DbTrack{Data: *data}
	if err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return trackrepos.Create(ctx, tx, item)
	}); err != nil {
		return nil, err
	}
	return item, nil
}

// Patch merges the given partial JSON document into the stored track.
// Only top level attributes present in the patch are replaced.
func (s *TrackService) Patch(ctx context.Context, id uuid.UUID, patch []byte) (
	*model.DbTrack, error,
) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	merged, err := mergePatch(item.Data, patch)
	if err != nil {
		return nil, err
	}
	item.Data = merged
	if err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		num, err := trackrepos.Update(ctx, tx, item)
		if err == nil && num == 0 {
			return ErrNotFound
		}
		return err
	}); err != nil {
		return nil, err
	}
	s.resolver.Invalidate(ctx, id.String())
	return item, nil
}

func (s *TrackService) Delete(ctx context.Context, id uuid.UUID) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		num, err := trackrepos.DeleteByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if num == 0 {
			return ErrNotFound
		}
		s.resolver.Invalidate(ctx, id.String())
		return nil
	})
}

// Duplicate stores a copy of the given track under a new id. The copy gets
// the source name with a " (Copy)" suffix.
func (s *TrackService) Duplicate(ctx context.Context, id uuid.UUID) (
	*model.DbTrack, error,
) {
	source, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dup := source.Data
	dup.Name += CopySuffix
	return s.Create(ctx, &dup)
}

// Resolve returns the track data for an instruction's track reference.
// A missing or unresolvable reference yields nil without error, rendering
// degrades in that case instead of failing.
func (s *TrackService) Resolve(ctx context.Context, trackID string) *model.Track {
	if trackID == "" {
		return nil
	}
	data, err := s.resolver.Get(ctx, trackID)
	if err != nil {
		return nil
	}
	return data
}
