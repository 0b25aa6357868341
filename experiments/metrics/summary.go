package metrics

import (
	"cmp"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the games of one agent on one layout.
type Summary struct {
	AgentID   int
	Kind      string
	Layout    string
	Games     int
	MeanScore float64
	StdScore  float64
	WinRate   float64
	LoseRate  float64
	MeanMoves float64
}

// Summarize groups records by agent and layout, ordered by agent id then layout.
func Summarize(records []GameRecord) []Summary {
	type key struct {
		agent  int
		layout string
	}
	groups := map[key][]GameRecord{}
	var keys []key
	for _, r := range records {
		k := key{r.AgentID, r.Layout}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], r)
	}
	slices.SortFunc(keys, func(a, b key) int {
		if c := cmp.Compare(a.agent, b.agent); c != 0 {
			return c
		}
		return cmp.Compare(a.layout, b.layout)
	})

	summaries := make([]Summary, 0, len(keys))
	for _, k := range keys {
		group := groups[k]
		scores := make([]float64, len(group))
		moves := make([]float64, len(group))
		wins, losses := 0.0, 0.0
		for i, r := range group {
			scores[i] = r.Score
			moves[i] = float64(r.TotalMoves)
			if r.Won {
				wins++
			}
			if r.Lost {
				losses++
			}
		}

		mean, std := stat.MeanStdDev(scores, nil)
		if len(group) < 2 {
			std = 0
		}
		n := float64(len(group))
		summaries = append(summaries, Summary{
			AgentID:   k.agent,
			Kind:      group[0].Agent,
			Layout:    k.layout,
			Games:     len(group),
			MeanScore: mean,
			StdScore:  std,
			WinRate:   wins / n,
			LoseRate:  losses / n,
			MeanMoves: stat.Mean(moves, nil),
		})
	}
	return summaries
}
