// Package notes keeps user annotations: private judge notes and starred
// tournaments. Each collection is one map stored under one key; a save
// rewrites the whole map, last writer wins.
package notes

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
)

const (
	JudgeNotesKey = "tp_judge_notes"
	StarredKey    = "starredTournaments"
)

// KV is the durable store the collections live in.
type KV interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// JudgeNote is a saved note; UpdatedAt is Unix milliseconds.
type JudgeNote struct {
	Text      string `json:"text"`
	UpdatedAt int64  `json:"updatedAt"`
}

// Tournament is a starred tournament; StarredAt is Unix milliseconds.
type Tournament struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	StarredAt int64  `json:"starredAt"`
}

// Book reads and writes the annotation collections.
type Book struct {
	kv  KV
	now func() time.Time

	// Serializes read-modify-write within this process.
	mu sync.Mutex
}

func NewBook(kv KV) *Book {
	return &Book{kv: kv, now: time.Now}
}

// JudgeNotes returns all notes keyed by judge key, empty when none were saved.
func (b *Book) JudgeNotes(ctx context.Context) (map[string]JudgeNote, error) {
	out := make(map[string]JudgeNote)
	if _, err := b.kv.Get(ctx, JudgeNotesKey, &out); err != nil {
		return nil, eris.Wrap(err, "notes: read judge notes")
	}
	if out == nil {
		out = make(map[string]JudgeNote)
	}
	return out, nil
}

// SaveJudgeNote stores text for judgeKey. Blank text deletes the note.
// It returns the note as saved, or false when it was deleted.
func (b *Book) SaveJudgeNote(ctx context.Context, judgeKey, text string) (JudgeNote, bool, error) {
	if judgeKey == "" {
		return JudgeNote{}, false, eris.New("notes: empty judge key")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	all, err := b.JudgeNotes(ctx)
	if err != nil {
		return JudgeNote{}, false, err
	}

	text = strings.TrimSpace(text)
	var note JudgeNote
	if text == "" {
		delete(all, judgeKey)
	} else {
		note = JudgeNote{Text: text, UpdatedAt: b.now().UnixMilli()}
		all[judgeKey] = note
	}

	if err := b.kv.Set(ctx, JudgeNotesKey, all); err != nil {
		return JudgeNote{}, false, eris.Wrap(err, "notes: write judge notes")
	}
	return note, text != "", nil
}

// Starred lists starred tournaments, most recently starred first.
func (b *Book) Starred(ctx context.Context) ([]Tournament, error) {
	all, err := b.starredMap(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]Tournament, 0, len(all))
	for _, t := range all {
		list = append(list, t)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].StarredAt != list[j].StarredAt {
			return list[i].StarredAt > list[j].StarredAt
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// ToggleStar stars t when it is not starred and unstars it otherwise. It
// reports whether t is starred afterwards.
func (b *Book) ToggleStar(ctx context.Context, t Tournament) (bool, error) {
	if t.ID == "" {
		return false, eris.New("notes: empty tournament id")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	all, err := b.starredMap(ctx)
	if err != nil {
		return false, err
	}

	_, starred := all[t.ID]
	if starred {
		delete(all, t.ID)
	} else {
		t.StarredAt = b.now().UnixMilli()
		all[t.ID] = t
	}

	if err := b.kv.Set(ctx, StarredKey, all); err != nil {
		return false, eris.Wrap(err, "notes: write starred tournaments")
	}
	return !starred, nil
}

func (b *Book) starredMap(ctx context.Context) (map[string]Tournament, error) {
	all := make(map[string]Tournament)
	if _, err := b.kv.Get(ctx, StarredKey, &all); err != nil {
		return nil, eris.Wrap(err, "notes: read starred tournaments")
	}
	if all == nil {
		all = make(map[string]Tournament)
	}
	return all, nil
}
