package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type RecommendationCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
	Incr(ctx context.Context, key string) (int64, error)
}

// Generation counters live outside the recommendations: namespace so pattern
// invalidation never resets them.
const (
	recommendationsPrefix        = "recommendations:"
	recommendationsGenerationKey = "recommendations-gen"
)

// RecommendationGeneration versions cached rankings. Global moves on every posting
// write and User on every profile write of that user. A ranking is only ever cached
// under the generation read before its inputs were loaded, so a write that lands
// while a ranking is computed makes that ranking unreachable.
type RecommendationGeneration struct {
	Global int64
	User   int64
}

func RecommendationsCacheKey(userID uuid.UUID, gen RecommendationGeneration, minScore int) string {
	return recommendationsPrefix + userID.String() +
		":g" + strconv.FormatInt(gen.Global, 10) + "." + strconv.FormatInt(gen.User, 10) +
		":" + strconv.Itoa(minScore)
}

func RecommendationsUserPattern(userID uuid.UUID) string {
	return recommendationsPrefix + userID.String() + ":*"
}

func RecommendationsAllPattern() string {
	return recommendationsPrefix + "*"
}

func RecommendationsGlobalGenerationKey() string {
	return recommendationsGenerationKey
}

func RecommendationsUserGenerationKey(userID uuid.UUID) string {
	return recommendationsGenerationKey + ":" + userID.String()
}

// readGeneration returns the current generation. ok is false when either counter
// could not be read; the caller must then neither read nor write the cache.
func readGeneration(ctx context.Context, cache RecommendationCache, userID uuid.UUID) (RecommendationGeneration, bool) {
	var gen RecommendationGeneration
	if _, err := cache.GetJSON(ctx, RecommendationsGlobalGenerationKey(), &gen.Global); err != nil {
		return RecommendationGeneration{}, false
	}
	if _, err := cache.GetJSON(ctx, RecommendationsUserGenerationKey(userID), &gen.User); err != nil {
		return RecommendationGeneration{}, false
	}
	return gen, true
}

// invalidateRecommendations bumps the generation first, then drops the entries it
// made unreachable. The pattern delete only frees memory.
func invalidateRecommendations(ctx context.Context, cache RecommendationCache, generationKey, pattern string) error {
	_, incrErr := cache.Incr(ctx, generationKey)
	return errors.Join(incrErr, cache.DeleteByPattern(ctx, pattern))
}
