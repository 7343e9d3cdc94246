package session

import "sort"

// Standing is one leaderboard row.
type Standing struct {
	Rank        int    `json:"rank"`
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
}

// Rank orders players by total score descending, ties broken by ascending
// join time: at equal score, whoever joined earlier ranks higher. Scores are
// recomputed from answer records on every call; player counts per session are
// small enough that caching would buy nothing.
func Rank(roster *Roster, answers *Collector) []Standing {
	players := roster.Players()

	sort.SliceStable(players, func(i, j int) bool {
		si, sj := answers.PlayerScore(players[i].ID), answers.PlayerScore(players[j].ID)
		if si != sj {
			return si > sj
		}
		return players[i].JoinedAt.Before(players[j].JoinedAt)
	})

	standings := make([]Standing, len(players))
	for i, p := range players {
		standings[i] = Standing{
			Rank:        i + 1,
			PlayerID:    p.ID,
			DisplayName: p.DisplayName,
			Score:       answers.PlayerScore(p.ID),
		}
	}
	return standings
}
