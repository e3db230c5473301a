package shared

import (
	"context"
	"fmt"
	"math"
	"strings"

	"inn/shared/cache"
	"inn/shared/constant"
	"inn/shared/dto"

	"github.com/rs/zerolog/log"
)

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// BuildCacheKey joins the given parts into a redis key, e.g. "room:get:42".
func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// BuildCacheKeyWithQuery derives a cache key from a prefix plus the request's
// pagination and sorting, so each distinct listing query caches separately.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams) string {
	return fmt.Sprintf("%s:p%d:l%d:%s:%s", prefix, params.Page, params.Limit, params.SortBy, params.SortDir)
}

// InvalidateCaches clears every cache entry under the given prefix.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix string) {
	if err := c.Clear(ctx, BuildCacheKey(prefix, constant.Asterix)); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
