package venue

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/DhavalSuthar-24/pitchside/internal/testdb"
	"github.com/hashicorp/go-hclog"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedVenue(t *testing.T) (VenueRepository, *Venue) {
	t.Helper()
	repo := NewVenueRepository(testdb.Open(t, &Venue{}))
	v := &Venue{Name: "Wankhede Stadium", Slug: "wankhede-stadium", Location: "Mumbai"}
	require.NoError(t, repo.CreateVenue(v))
	return repo, v
}

func TestRepositoryDirectory(t *testing.T) {
	repo, v := seedVenue(t)
	dir := NewDirectory(repo)
	ctx := context.Background()

	name, err := dir.ResolveName(ctx, strconv.FormatUint(uint64(v.ID), 10))
	require.NoError(t, err)
	assert.Equal(t, "Wankhede Stadium", name)

	name, err = dir.ResolveName(ctx, "  Wankhede Stadium ")
	require.NoError(t, err)
	assert.Equal(t, "Wankhede Stadium", name)

	_, err = dir.ResolveName(ctx, "Eden Gardens")
	assert.ErrorIs(t, err, ErrVenueNotFound)

	_, err = dir.ResolveName(ctx, "")
	assert.ErrorIs(t, err, ErrVenueNotFound)

	_, err = dir.ResolveName(ctx, "9999")
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestCachedDirectoryFallsThroughWhenRedisIsDown(t *testing.T) {
	repo, _ := seedVenue(t)
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	dir := NewCachedDirectory(NewDirectory(repo), client, time.Minute, hclog.NewNullLogger())

	name, err := dir.ResolveName(context.Background(), "wankhede-stadium")
	require.NoError(t, err)
	assert.Equal(t, "Wankhede Stadium", name)

	_, err = dir.ResolveName(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestCacheKeyNormalisesRef(t *testing.T) {
	assert.Equal(t, cacheKey("Wankhede Stadium"), cacheKey("wankhede-stadium"))
}
