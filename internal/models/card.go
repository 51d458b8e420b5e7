package models

// Topics is the fixed set of topics a card can belong to.
var Topics = []string{
	"General",
	"Data Structures",
	"Functions",
	"OOP",
	"Algorithms",
	"Libraries",
}

// TopicAll is the filter pseudo-topic matching every card. It is never
// stored on a card.
const TopicAll = "All"

// ValidTopic reports whether topic is one of the storable topics.
func ValidTopic(topic string) bool {
	for _, t := range Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// Card is a single flashcard. ID is immutable once created; the two
// counters only ever increase.
type Card struct {
	ID             string `json:"id"`
	Question       string `json:"question"`
	Answer         string `json:"answer"`
	IsCode         bool   `json:"is_code"`
	Topic          string `json:"topic"`
	CorrectCount   int    `json:"correct_count"`
	IncorrectCount int    `json:"incorrect_count"`
}
