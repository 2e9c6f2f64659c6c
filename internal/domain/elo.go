package domain

import "math"

const (
	KFactor       = 32.0
	InitialRating = 1200
)

// CalculateElo returns the new rating for player A.
// score is 1.0 for a win, 0.5 for a draw, and 0.0 for a loss.
func CalculateElo(ratingA, ratingB int, score float64) int {
	expectedScoreA := 1.0 / (1.0 + math.Pow(10.0, float64(ratingB-ratingA)/400.0))
	newRating := float64(ratingA) + KFactor*(score-expectedScoreA)

	if newRating < 0 {
		return 0
	}
	return int(math.Round(newRating))
}

// UpdateRatings applies one game result to both sides. winner is the
// PlayerID that won, or Empty for a draw.
func UpdateRatings(ratingOne, ratingTwo int, winner PlayerID) (int, int) {
	scoreOne := 0.5
	switch winner {
	case Player1:
		scoreOne = 1.0
	case Player2:
		scoreOne = 0.0
	}
	return CalculateElo(ratingOne, ratingTwo, scoreOne), CalculateElo(ratingTwo, ratingOne, 1.0-scoreOne)
}
