package metadata

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/yt2mp3/internal/model"
)

func TestDefaults(t *testing.T) {
	tests := []struct {
		title string
		want  model.Tags
	}{
		{"Daft Punk - Around the World", model.Tags{Artist: "Daft Punk", Title: "Around the World"}},
		{"A-B-C", model.Tags{Artist: "A", Title: "B-C"}},
		{"Just a Title", model.Tags{Title: "Just a Title"}},
		{"  padded  ", model.Tags{Title: "  padded  "}},
		{"-leading", model.Tags{Title: "-leading"}},
		{"trailing-", model.Tags{Title: "trailing-"}},
		{" - ", model.Tags{}},
		{"", model.Tags{}},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Defaults(tt.title))
		})
	}
}

// scriptedPrompter replays answers and records which fields were asked.
type scriptedPrompter struct {
	answers []string
	asked   []Field
	err     error
}

func (p *scriptedPrompter) Prompt(field Field, def string) (string, error) {
	p.asked = append(p.asked, field)
	if len(p.answers) == 0 {
		if p.err != nil {
			return "", p.err
		}
		return "", io.EOF
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func TestCollectAcceptsDefaults(t *testing.T) {
	p := &scriptedPrompter{answers: []string{"", "", "", "", ""}}
	defaults := model.Tags{Title: "Song", Artist: "Band"}

	tags, err := Collect(p, defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, tags)
	assert.Equal(t, Fields, p.asked)
}

func TestCollectOverrides(t *testing.T) {
	p := &scriptedPrompter{answers: []string{"New Title", " ", "Album", "Electronic", "1997"}}

	tags, err := Collect(p, model.Tags{Title: "Song", Artist: "Band"})
	require.NoError(t, err)
	assert.Equal(t, model.Tags{
		Title:  "New Title",
		Artist: "Band",
		Album:  "Album",
		Genre:  "Electronic",
		Year:   "1997",
	}, tags)
}

func TestCollectRepromptsRequired(t *testing.T) {
	p := &scriptedPrompter{answers: []string{"Song", "", "", "Band", "", "", ""}}

	tags, err := Collect(p, model.Tags{Title: "Song"})
	require.NoError(t, err)
	assert.Equal(t, "Band", tags.Artist)
	assert.Equal(t, []Field{
		FieldTitle, FieldArtist, FieldArtist, FieldArtist,
		FieldAlbum, FieldGenre, FieldYear,
	}, p.asked)
}

func TestCollectEOFWithRequiredEmpty(t *testing.T) {
	p := &scriptedPrompter{answers: []string{"Song"}}

	_, err := Collect(p, model.Tags{Title: "Song"})
	assert.ErrorIs(t, err, ErrRequired)
	assert.Contains(t, err.Error(), "artist")
}

func TestCollectEOFKeepsDefaults(t *testing.T) {
	p := &scriptedPrompter{}
	defaults := model.Tags{Title: "Song", Artist: "Band"}

	tags, err := Collect(p, defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, tags)
	assert.Equal(t, []Field{FieldTitle}, p.asked, "no prompts after input ends")
}

func TestCollectPromptError(t *testing.T) {
	boom := errors.New("terminal gone")
	p := &scriptedPrompter{err: boom}

	_, err := Collect(p, model.Tags{Title: "Song", Artist: "Band"})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrRequired)
}

func TestLinePrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("New Title\r\n\nlast"), &out)

	got, err := p.Prompt(FieldTitle, "Song")
	require.NoError(t, err)
	assert.Equal(t, "New Title", got)

	got, err = p.Prompt(FieldAlbum, "")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = p.Prompt(FieldGenre, "")
	require.NoError(t, err)
	assert.Equal(t, "last", got)

	_, err = p.Prompt(FieldYear, "")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "Title* [Song]: Album: Genre: Year: ", out.String())
}

func TestCollectWithLinePrompter(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("\n\nGreatest Hits\n"), io.Discard)

	tags, err := Collect(p, Defaults("Band - Song"))
	require.NoError(t, err)
	assert.Equal(t, model.Tags{Title: "Song", Artist: "Band", Album: "Greatest Hits"}, tags)
}

func TestFieldLabels(t *testing.T) {
	for _, f := range Fields {
		assert.NotContains(t, f.Label(), "Field(")
	}
	assert.True(t, FieldTitle.Required())
	assert.True(t, FieldArtist.Required())
	assert.False(t, FieldYear.Required())
}
