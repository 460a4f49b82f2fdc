package messaginghandler

import (
	"time"

	"campus-jobs-backend/lib/utils/helpers"
	messageapimodels "campus-jobs-backend/models/api/message"
	dbmodels "campus-jobs-backend/models/db"
)

type thread struct {
	managerID   string
	candidateID string
	messages    []dbmodels.Message // chronological
}

const (
	minutesPerDay  = 24 * 60
	minutesPerWeek = 7 * minutesPerDay
)

// responseSamples returns the minutes between every manager message and the next
// candidate message after it. The thread is walked backwards keeping the closest
// later candidate message, so each sample costs O(1).
func responseSamples(t thread) []int {
	samples := []int{}
	var nextReply *time.Time
	for k := len(t.messages) - 1; k >= 0; k-- {
		msg := t.messages[k]
		switch msg.SenderID {
		case t.candidateID:
			at := msg.CreatedAt
			nextReply = &at
		case t.managerID:
			if nextReply != nil {
				samples = append(samples, int(nextReply.Sub(msg.CreatedAt).Minutes()))
			}
		}
	}
	// restore chronological order of the samples
	for l, r := 0, len(samples)-1; l < r; l, r = l+1, r-1 {
		samples[l], samples[r] = samples[r], samples[l]
	}
	return samples
}

func bucket(buckets *messageapimodels.ResponseTimeBuckets, minutes int) {
	switch {
	case minutes < 60:
		buckets.UnderHour++
	case minutes < minutesPerDay:
		buckets.UnderDay++
	case minutes < minutesPerWeek:
		buckets.UnderWeek++
	default:
		buckets.OverWeek++
	}
}

func computeResponseMetrics(threads []thread) messageapimodels.ResponseMetrics {
	result := messageapimodels.ResponseMetrics{TotalConversations: len(threads)}
	total := 0
	count := 0
	for _, t := range threads {
		samples := responseSamples(t)
		if len(samples) == 0 {
			continue
		}
		result.Responded++
		for _, minutes := range samples {
			total += minutes
			count++
			bucket(&result.Distribution, minutes)
		}
	}
	if count != 0 {
		result.AverageResponseTime = helpers.Round1(float64(total) / float64(count))
	}
	result.ResponseRate = helpers.Percentage(int64(result.Responded), int64(result.TotalConversations))
	return result
}
