package listing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"estatedesk/models"
	"estatedesk/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// timeNow is swapped out in tests.
var timeNow = time.Now

// cacheKey derives a stable key from the filter combination.
func cacheKey(filters models.ListingFilters) string {
	raw, _ := json.Marshal(filters)
	sum := sha256.Sum256(raw)
	return utils.ListingCachePrefix + hex.EncodeToString(sum[:])
}

// cachedBrowse returns a cached result set for the filters, if present.
// Cache trouble is never fatal; the repository is the source of truth.
func (s *DefaultListingService) cachedBrowse(ctx context.Context, filters models.ListingFilters) ([]models.Listing, bool) {
	if s.Cache == nil {
		return nil, false
	}

	data, err := s.Cache.Get(ctx, cacheKey(filters)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		utils.GetLogger().Warn("Listing cache read failed", zap.Error(err))
		return nil, false
	}

	var listings []models.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		utils.GetLogger().Warn("Discarding corrupt listing cache entry", zap.Error(err))
		return nil, false
	}
	return listings, true
}

// storeBrowse caches a browse result under the filter key.
func (s *DefaultListingService) storeBrowse(ctx context.Context, filters models.ListingFilters, listings []models.Listing) {
	if s.Cache == nil {
		return
	}

	data, err := json.Marshal(listings)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, cacheKey(filters), data, utils.ListingCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("Listing cache write failed", zap.Error(err))
	}
}

// invalidate drops every cached browse result after a mutation.
func (s *DefaultListingService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	FlushBrowseCache(ctx, s.Cache)
}

// FlushBrowseCache removes all listing query cache entries. Also called by
// the background worker after a wizard submission.
func FlushBrowseCache(ctx context.Context, client *redis.Client) {
	iter := client.Scan(ctx, 0, utils.ListingCachePrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		utils.GetLogger().Warn("Listing cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Warn("Listing cache flush failed", zap.Error(err))
	}
}
