package templates

type SideView struct {
	Text     string  `json:"text"`
	TeamCode string  `json:"team_code,omitempty"`
	Points   float64 `json:"points"`
	HasData  bool    `json:"has_data"`
	Verdict  string  `json:"verdict"`
	Unranked bool    `json:"unranked"`
}

type PairingRow struct {
	Gov      SideView `json:"gov"`
	Opp      SideView `json:"opp"`
	JudgeKey string   `json:"judge_key,omitempty"`
	Judge    string   `json:"judge,omitempty"`
	HasNote  bool     `json:"has_note"`
}

type RoundAnalysis struct {
	Rows        []PairingRow `json:"rows"`
	RankedTeams int          `json:"ranked_teams"`
	Margin      float64      `json:"margin"`
}

type PowerBadge struct {
	Entry string  `json:"entry"`
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

type JudgeNoteView struct {
	Key       string `json:"key"`
	Text      string `json:"text"`
	UpdatedAt string `json:"updated_at"`
}

type TournamentView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	Starred bool   `json:"starred"`
}

type HomePageData struct {
	RankingsURL string
	Starred     []TournamentView
	JudgeNotes  []JudgeNoteView
}
