package parking

import (
	"sort"
	"time"
)

// ClientRevenue is one row of a client ranking.
type ClientRevenue struct {
	ClientID string  `json:"client_id"`
	Amount   float64 `json:"amount"`
}

// Report aggregations are stateless and always recomputed from the session
// history; nothing here mutates a session.

func totalRevenue(sessions []*Session) float64 {
	total := 0.0
	for _, s := range sessions {
		if !s.Open() {
			total += s.Fee()
		}
	}
	return total
}

func revenueInMonth(sessions []*Session, month time.Month) float64 {
	total := 0.0
	for _, s := range sessions {
		if !s.Open() && s.WithinMonth(month) {
			total += s.Fee()
		}
	}
	return total
}

func averageFeePerUse(sessions []*Session) float64 {
	total := 0.0
	closed := 0
	for _, s := range sessions {
		if !s.Open() {
			total += s.Fee()
			closed++
		}
	}
	if closed == 0 {
		return 0
	}
	return total / float64(closed)
}

func topClients(sessions []*Session, month time.Month, n int) []ClientRevenue {
	byClient := make(map[string]float64)
	for _, s := range sessions {
		if !s.Open() && s.WithinMonth(month) {
			byClient[s.ClientID()] += s.Fee()
		}
	}

	ranking := make([]ClientRevenue, 0, len(byClient))
	for id, amount := range byClient {
		ranking = append(ranking, ClientRevenue{ClientID: id, Amount: amount})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Amount != ranking[j].Amount {
			return ranking[i].Amount > ranking[j].Amount
		}
		return ranking[i].ClientID < ranking[j].ClientID
	})

	if n > 0 && len(ranking) > n {
		ranking = ranking[:n]
	}
	return ranking
}

func subscriberUsageAverage(sessions []*Session, month time.Month) float64 {
	subscribers := make(map[string]struct{})
	uses := 0
	for _, s := range sessions {
		if !s.Subscriber() {
			continue
		}
		subscribers[s.ClientID()] = struct{}{}
		if s.WithinMonth(month) {
			uses++
		}
	}
	if len(subscribers) == 0 {
		return 0
	}
	return float64(uses) / float64(len(subscribers))
}
