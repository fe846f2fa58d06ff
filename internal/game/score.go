package game

import (
	"sort"

	"github.com/jingles/moosic/internal/models"
)

// Points converts one player's round scores into a point total. Each round
// contributes a correctness bonus plus a speed bonus, both amplified by the
// guess accuracy. A backfilled round contributes zero.
func Points(scores []models.RoundScore, roundSeconds float64) float64 {
	var total float64
	for _, score := range scores {
		points := 0.0
		if score.Correct {
			points = 100.0
		}
		points += (roundSeconds - score.ElapsedSeconds) * 10.0
		points *= 1.0 + score.Accuracy
		total += points
	}
	return total
}

// Standing is one row of the final scoreboard.
type Standing struct {
	Player *models.Player
	Points float64
}

// ComputeStandings ranks players by descending point total. The sort is
// stable over join order, so ties keep the earlier joiner first.
func ComputeStandings(players []*models.Player, scores map[string][]models.RoundScore, roundSeconds float64) []Standing {
	standings := make([]Standing, 0, len(players))
	for _, player := range players {
		standings = append(standings, Standing{
			Player: player,
			Points: Points(scores[player.ID], roundSeconds),
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Points > standings[j].Points
	})

	return standings
}

// AuxiliaryEntry is one secondary-leaderboard winner.
type AuxiliaryEntry struct {
	Player *models.Player
	Value  float64
}

// Auxiliary holds the secondary leaderboards shown alongside the standings.
// An entry is nil when no player qualifies for it.
type Auxiliary struct {
	// FastestAverage has the lowest mean elapsed time among players who
	// guessed correctly at least once. Value is seconds.
	FastestAverage *AuxiliaryEntry

	// MostAccurate has the highest mean accuracy. Value is in [0, 1].
	MostAccurate *AuxiliaryEntry

	// MostCorrect has the most correct guesses. Value is a count.
	MostCorrect *AuxiliaryEntry
}

// ComputeAuxiliary builds the secondary leaderboards. Players with no scored
// rounds are ignored throughout; ties keep the earlier joiner.
func ComputeAuxiliary(players []*models.Player, scores map[string][]models.RoundScore) *Auxiliary {
	aux := &Auxiliary{}

	for _, player := range players {
		playerScores := scores[player.ID]
		if len(playerScores) == 0 {
			continue
		}

		var elapsedSum, accuracySum float64
		var correct int
		for _, score := range playerScores {
			elapsedSum += score.ElapsedSeconds
			accuracySum += score.Accuracy
			if score.Correct {
				correct++
			}
		}

		rounds := float64(len(playerScores))
		meanElapsed := elapsedSum / rounds
		meanAccuracy := accuracySum / rounds

		if correct > 0 && (aux.FastestAverage == nil || meanElapsed < aux.FastestAverage.Value) {
			aux.FastestAverage = &AuxiliaryEntry{Player: player, Value: meanElapsed}
		}
		if aux.MostAccurate == nil || meanAccuracy > aux.MostAccurate.Value {
			aux.MostAccurate = &AuxiliaryEntry{Player: player, Value: meanAccuracy}
		}
		if aux.MostCorrect == nil || float64(correct) > aux.MostCorrect.Value {
			aux.MostCorrect = &AuxiliaryEntry{Player: player, Value: float64(correct)}
		}
	}

	return aux
}
