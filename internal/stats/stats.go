// Package stats computes aggregate accuracy figures over the card
// collection. All functions are pure and read-only.
package stats

import (
	"sort"

	"github.com/arueda/flashdeck/internal/models"
)

// OverallAccuracy returns the fraction of correct answers over all recorded
// attempts. With no attempts it returns 0 rather than dividing by zero.
func OverallAccuracy(cards []models.Card) float64 {
	var correct, attempts int
	for _, c := range cards {
		correct += c.CorrectCount
		attempts += c.CorrectCount + c.IncorrectCount
	}
	if attempts == 0 {
		return 0
	}
	return float64(correct) / float64(attempts)
}

// Summary returns the totals shown on the statistics page.
func Summary(cards []models.Card) models.SummaryStat {
	s := models.SummaryStat{TotalCards: len(cards)}
	for _, c := range cards {
		s.TotalCorrect += c.CorrectCount
		s.TotalIncorrect += c.IncorrectCount
	}
	s.TotalAttempts = s.TotalCorrect + s.TotalIncorrect
	if s.TotalAttempts > 0 {
		s.Accuracy = float64(s.TotalCorrect) / float64(s.TotalAttempts)
	}
	return s
}

// TopicDistribution returns how many cards exist per topic.
func TopicDistribution(cards []models.Card) map[string]int {
	dist := make(map[string]int)
	for _, c := range cards {
		dist[c.Topic]++
	}
	return dist
}

// TopicCounts returns the topic distribution as a slice ordered by the
// fixed topic list, skipping empty topics. Map iteration order is not
// stable, so pages render from this instead.
func TopicCounts(cards []models.Card) []models.TopicStat {
	dist := TopicDistribution(cards)
	out := make([]models.TopicStat, 0, len(dist))
	for _, topic := range models.Topics {
		if n := dist[topic]; n > 0 {
			out = append(out, models.TopicStat{Topic: topic, Count: n})
		}
	}
	return out
}

// HardestCards returns up to k cards ordered by incorrect count descending,
// ties broken by original order. Cards that were never answered incorrectly
// are excluded.
func HardestCards(cards []models.Card, k int) []models.Card {
	missed := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		if c.IncorrectCount > 0 {
			missed = append(missed, c)
		}
	}
	sort.SliceStable(missed, func(i, j int) bool {
		return missed[i].IncorrectCount > missed[j].IncorrectCount
	})
	if k < 0 {
		k = 0
	}
	if len(missed) > k {
		missed = missed[:k]
	}
	return missed
}
