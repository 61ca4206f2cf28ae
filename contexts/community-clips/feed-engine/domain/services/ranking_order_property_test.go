package services

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"ripclips/contexts/community-clips/feed-engine/domain/entities"
)

// Small value ranges force plenty of ties on the primary key.
func orderingClips(seeds []int) []entities.Clip {
	clips := make([]entities.Clip, 0, len(seeds))
	for _, seed := range seeds {
		clips = append(clips, entities.Clip{
			Likes:       int64(seed % 4),
			Views:       int64(seed / 4 % 4),
			Comments:    int64(seed / 16 % 3),
			SubmittedAt: rankingNow.Add(-time.Duration(seed%5) * 12 * time.Hour),
		})
	}
	return clips
}

func TestRankedOrderMatchesComparator(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("no later clip ranks before an earlier one", prop.ForAll(
		func(seeds []int, mode entities.SortMode) bool {
			ranked := RankClips(orderingClips(seeds), mode, rankingNow)
			for i := 0; i < len(ranked); i++ {
				for j := i + 1; j < len(ranked); j++ {
					if rankedBefore(ranked[j], ranked[i], mode) {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 240)),
		gen.OneConstOf(entities.SortNewest, entities.SortMostLiked, entities.SortMostViewed, entities.SortHot),
	))

	properties.Property("hot ties keep submittedAt descending", prop.ForAll(
		func(seeds []int) bool {
			ranked := RankClips(orderingClips(seeds), entities.SortHot, rankingNow)
			for i := 1; i < len(ranked); i++ {
				prev, cur := ranked[i-1], ranked[i]
				if prev.HotScore == cur.HotScore && prev.Clip.SubmittedAt.Before(cur.Clip.SubmittedAt) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 240)),
	))

	properties.TestingRun(t)
}
