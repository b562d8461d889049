package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// BadgeText is the power badge caption.
func BadgeText(score float64, label string) string {
	return fmt.Sprintf("Tabroom+ strength: %.1f (%s)", score, label)
}

// htmlWriter keeps the first write error so components can write freely and
// check once.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// href writes a URL attribute value. Schemes other than http, https, mailto,
// tel, ftp and ftps are replaced by templ's failed-sanitization URL.
func (h *htmlWriter) href(u string) {
	h.text(string(templ.URL(u)))
}

func Home(data HomePageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!doctype html><html lang="en"><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"><title>Tabroom+</title><script src="https://cdn.tailwindcss.com"></script><script src="https://unpkg.com/htmx.org@1.9.12"></script></head>`)
		h.raw(`<body class="bg-[#F7F0E6] font-sans text-stone-800"><div class="max-w-4xl mx-auto p-6 space-y-6">`)
		h.raw(`<h1 class="text-3xl font-black">Tabroom+</h1><p class="text-sm">Rankings source: `)
		h.text(data.RankingsURL)
		h.raw(`</p>`)

		h.raw(`<form class="bg-white/90 rounded-3xl p-6 shadow-2xl" hx-post="/api/analyze-round" hx-target="#round-results"><h2 class="text-xl font-bold mb-2">Analyze round</h2><textarea name="page" class="w-full h-32 p-3 border rounded-md" placeholder="Paste the pairings page HTML"></textarea><button class="bg-[#5D4037] text-white font-bold py-2 px-6 rounded-xl mt-2">Tabroom+: Analyze round</button></form><div id="round-results"></div>`)
		h.raw(`<form class="bg-white/90 rounded-3xl p-6 shadow-2xl" hx-post="/api/power-score" hx-target="#power-results"><h2 class="text-xl font-bold mb-2">Power score</h2><textarea name="page" class="w-full h-32 p-3 border rounded-md" placeholder="Paste the entry record page HTML"></textarea><button class="bg-[#5D4037] text-white font-bold py-2 px-6 rounded-xl mt-2">Score entry</button></form><div id="power-results"></div>`)

		if len(data.Starred) > 0 {
			h.raw(`<div class="tabroom-plus-starred-box"><div class="tabroom-plus-starred-title font-bold">Starred Tournaments</div><ul class="tabroom-plus-starred-list">`)
			for _, t := range data.Starred {
				h.raw(`<li class="tabroom-plus-starred-item"><a class="tabroom-plus-starred-link" target="_blank" href="`)
				h.href(t.URL)
				h.raw(`">`)
				name := t.Name
				if name == "" {
					name = "Tournament"
				}
				h.text(name)
				h.raw(`</a></li>`)
			}
			h.raw(`</ul></div>`)
		}

		if err := JudgeNotes(data.JudgeNotes).Render(ctx, w); err != nil && h.err == nil {
			h.err = err
		}
		h.raw(`</div></body></html>`)
		return h.err
	})
}

// RoundResults renders the analysed pairings with the verdict classes the
// extension used: tabroom-plus-strong, -weak and -even.
func RoundResults(a RoundAnalysis) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="tabroom-plus-pairings"><p class="text-sm mb-2">`)
		h.text(fmt.Sprintf("%d ranked team codes, margin %.1f", a.RankedTeams, a.Margin))
		h.raw(`</p><table class="w-full"><thead><tr><th>Gov</th><th>Opp</th><th>Judge</th></tr></thead><tbody>`)
		for _, row := range a.Rows {
			h.raw(`<tr>`)
			sideCell(h, row.Gov)
			sideCell(h, row.Opp)
			h.raw(`<td>`)
			h.text(row.Judge)
			if row.JudgeKey != "" {
				class := "tabroom-plus-judge-notes-btn"
				if row.HasNote {
					class += " tabroom-plus-judge-notes-btn-has-note"
				}
				h.raw(` <span class="` + class + `" data-judge-key="`)
				h.text(row.JudgeKey)
				h.raw(`">📝</span>`)
			}
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table></div>`)
		return h.err
	})
}

func sideCell(h *htmlWriter, s SideView) {
	var classes []string
	switch s.Verdict {
	case "strong", "weak", "even":
		classes = append(classes, "tabroom-plus-"+s.Verdict)
	}
	h.raw(`<td class="` + strings.Join(classes, " ") + `">`)
	h.text(s.Text)
	if s.Unranked {
		h.raw(`<div class="tabroom-plus-rank-label">Unranked</div>`)
	}
	h.raw(`</td>`)
}

func Badge(b PowerBadge) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="tabroom-plus-power-badge">`)
		if b.Entry != "" {
			h.raw(`<span class="font-bold">`)
			h.text(b.Entry)
			h.raw(`</span> `)
		}
		h.text(BadgeText(b.Score, b.Label))
		h.raw(`</div>`)
		return h.err
	})
}

func JudgeNotes(notes []JudgeNoteView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		if len(notes) == 0 {
			return nil
		}
		h.raw(`<div class="tabroom-plus-judge-notes"><div class="tabroom-plus-judge-notes-title font-bold">Judge notes</div><ul>`)
		for _, n := range notes {
			h.raw(`<li><span class="font-mono">`)
			h.text(n.Key)
			h.raw(`</span> <span class="text-xs">`)
			h.text(n.UpdatedAt)
			h.raw(`</span><p>`)
			h.text(n.Text)
			h.raw(`</p></li>`)
		}
		h.raw(`</ul></div>`)
		return h.err
	})
}
