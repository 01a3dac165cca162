package venue

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/hashicorp/go-hclog"
	"github.com/redis/go-redis/v9"
)

// Directory resolves a venue reference (numeric id or slug) to a display name.
type Directory interface {
	ResolveName(ctx context.Context, ref string) (string, error)
}

// RepositoryDirectory answers lookups from the venues table.
type RepositoryDirectory struct {
	repo VenueRepository
}

func NewDirectory(repo VenueRepository) *RepositoryDirectory {
	return &RepositoryDirectory{repo: repo}
}

func (d *RepositoryDirectory) ResolveName(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrVenueNotFound
	}
	repo := d.repo.WithContext(ctx)

	var (
		v   *Venue
		err error
	)
	if id, convErr := strconv.ParseUint(ref, 10, 64); convErr == nil {
		v, err = repo.GetVenueByID(uint(id))
	} else {
		v, err = repo.GetVenueBySlug(slug.Make(ref))
	}
	if err != nil {
		return "", err
	}
	return v.Name, nil
}

// CachedDirectory keeps resolved names in redis. Misses are not cached.
type CachedDirectory struct {
	next   Directory
	client redis.UniversalClient
	ttl    time.Duration
	logger hclog.Logger
}

func NewCachedDirectory(next Directory, client redis.UniversalClient, ttl time.Duration, logger hclog.Logger) *CachedDirectory {
	return &CachedDirectory{next: next, client: client, ttl: ttl, logger: logger}
}

func cacheKey(ref string) string {
	return "venue:name:" + slug.Make(ref)
}

func (d *CachedDirectory) ResolveName(ctx context.Context, ref string) (string, error) {
	key := cacheKey(ref)
	name, err := d.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		return name, nil
	case !errors.Is(err, redis.Nil):
		// cache trouble should not block match creation
		d.logger.Warn("venue cache read failed", "key", key, "error", err)
	}

	name, err = d.next.ResolveName(ctx, ref)
	if err != nil {
		return "", err
	}
	if err := d.client.Set(ctx, key, name, d.ttl).Err(); err != nil {
		d.logger.Warn("venue cache write failed", "key", key, "error", err)
	}
	return name, nil
}
