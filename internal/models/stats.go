package models

type SummaryStat struct {
	TotalCards     int     `json:"total_cards"`
	TotalCorrect   int     `json:"total_correct"`
	TotalIncorrect int     `json:"total_incorrect"`
	TotalAttempts  int     `json:"total_attempts"`
	Accuracy       float64 `json:"accuracy"`
}

type TopicStat struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}
