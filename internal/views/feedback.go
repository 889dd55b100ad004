package views

import "github.com/Punitjadhav07/Hack-build/internal/model"

// FeedbackSummary groups the feedback of one event.
type FeedbackSummary struct {
	EventID model.ID         `json:"eventId"`
	Count   int              `json:"count"`
	Average float64          `json:"average"`
	Entries []model.Feedback `json:"entries"`
}

// FeedbackByEvent groups feedback by event id, keeping submission order.
func FeedbackByEvent(feedback []model.Feedback) map[model.ID][]model.Feedback {
	out := make(map[model.ID][]model.Feedback)
	for _, f := range feedback {
		out[f.EventID] = append(out[f.EventID], f)
	}
	return out
}

// AverageRating is the mean rating, 0 for no entries.
func AverageRating(feedback []model.Feedback) float64 {
	if len(feedback) == 0 {
		return 0
	}
	sum := 0
	for _, f := range feedback {
		sum += f.Rating
	}
	return float64(sum) / float64(len(feedback))
}

// SummarizeFeedback returns one summary per event that has feedback, in the
// order events first received it.
func SummarizeFeedback(feedback []model.Feedback) []FeedbackSummary {
	grouped := FeedbackByEvent(feedback)
	out := []FeedbackSummary{}
	seen := make(map[model.ID]bool)
	for _, f := range feedback {
		if seen[f.EventID] {
			continue
		}
		seen[f.EventID] = true
		entries := grouped[f.EventID]
		out = append(out, FeedbackSummary{
			EventID: f.EventID,
			Count:   len(entries),
			Average: AverageRating(entries),
			Entries: entries,
		})
	}
	return out
}
