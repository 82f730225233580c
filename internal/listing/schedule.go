package listing

import "time"

// Scheduled is any row that carries a show start time.
type Scheduled interface {
	ScheduledAt() time.Time
}

// Partition splits rows into past and upcoming relative to the evaluation
// instant. A row starting strictly after the instant is upcoming; one
// starting at or before it is past. Callers capture the instant once per
// request so every row in a response is classified against the same point.
// Input order is preserved within each half.
func Partition[T Scheduled](rows []T, at time.Time) (past, upcoming []T) {
	past = make([]T, 0, len(rows))
	upcoming = make([]T, 0)
	for _, row := range rows {
		if row.ScheduledAt().After(at) {
			upcoming = append(upcoming, row)
		} else {
			past = append(past, row)
		}
	}
	return past, upcoming
}
