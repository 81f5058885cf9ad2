package domain

// AverageScore is the arithmetic mean of scores, or nil when there are none.
// A title without reviews has no rating, which is different from a rating of zero.
func AverageScore(scores []int) *float64 {
	var sum int64
	for _, s := range scores {
		sum += int64(s)
	}
	return Mean(sum, int64(len(scores)))
}

// Mean turns a stored SUM/COUNT aggregate into a rating.
func Mean(sum, count int64) *float64 {
	if count <= 0 {
		return nil
	}
	avg := float64(sum) / float64(count)
	return &avg
}
