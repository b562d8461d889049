package main

import (
	"tabroom-plus/matchup"
	"tabroom-plus/notes"
	"tabroom-plus/rankings"
	"tabroom-plus/tabroom"
	"tabroom-plus/templates"
)

// TeamPair is one pairing given as the two sides' display text.
type TeamPair struct {
	Gov string `json:"gov"`
	Opp string `json:"opp"`
}

// ClassifiedPair is a pairing after resolution and classification.
type ClassifiedPair struct {
	Pair      TeamPair               `json:"pair"`
	GovTeam   *rankings.ResolvedTeam `json:"gov_team"`
	OppTeam   *rankings.ResolvedTeam `json:"opp_team"`
	Verdict   matchup.Result         `json:"verdict"`
	Predicted bool                   `json:"predicted"`
}

func classifyPair(n *rankings.Normalizer, table rankings.Table, p TeamPair, margin float64) ClassifiedPair {
	gov := n.ResolveTeam(table, p.Gov)
	opp := n.ResolveTeam(table, p.Opp)
	res := matchup.Classify(gov, opp, margin)
	return ClassifiedPair{
		Pair:      p,
		GovTeam:   gov,
		OppTeam:   opp,
		Verdict:   res,
		Predicted: res.Highlighted(),
	}
}

// analyzeRound classifies every pairing on a pairings page and marks the
// judges the user has notes for.
func analyzeRound(n *rankings.Normalizer, table rankings.Table, pairings []tabroom.Pairing, judgeNotes map[string]notes.JudgeNote, margin float64) templates.RoundAnalysis {
	out := templates.RoundAnalysis{
		Rows:        make([]templates.PairingRow, 0, len(pairings)),
		RankedTeams: table.Len(),
		Margin:      margin,
	}
	for _, p := range pairings {
		c := classifyPair(n, table, TeamPair{Gov: p.Gov, Opp: p.Opp}, margin)
		row := templates.PairingRow{
			Gov: sideView(p.Gov, c.GovTeam, c.Verdict.A),
			Opp: sideView(p.Opp, c.OppTeam, c.Verdict.B),
		}
		if p.Judge != nil {
			row.JudgeKey = p.Judge.Key
			row.Judge = p.Judge.Name
			note, ok := judgeNotes[p.Judge.Key]
			row.HasNote = ok && note.Text != ""
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func sideView(text string, team *rankings.ResolvedTeam, side matchup.Side) templates.SideView {
	v := templates.SideView{
		Text:     text,
		HasData:  team != nil,
		Verdict:  string(side.Verdict),
		Unranked: side.Unranked,
	}
	if team != nil {
		v.TeamCode = team.TeamCode
		v.Points = team.Points
	}
	return v
}
