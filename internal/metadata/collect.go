package metadata

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/handiism/yt2mp3/internal/model"
)

// ErrRequired is returned when input ends before a required field has a
// value.
var ErrRequired = errors.New("required tag missing")

// Field identifies one tag.
type Field int

const (
	FieldTitle Field = iota
	FieldArtist
	FieldAlbum
	FieldGenre
	FieldYear
)

// Fields lists the tags in prompt order.
var Fields = []Field{FieldTitle, FieldArtist, FieldAlbum, FieldGenre, FieldYear}

// Label returns the prompt label.
func (f Field) Label() string {
	switch f {
	case FieldTitle:
		return "Title"
	case FieldArtist:
		return "Artist"
	case FieldAlbum:
		return "Album"
	case FieldGenre:
		return "Genre"
	case FieldYear:
		return "Year"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Required reports whether the field must end up non-empty.
func (f Field) Required() bool {
	return f == FieldTitle || f == FieldArtist
}

// Get returns the field's value in tags.
func (f Field) Get(tags model.Tags) string {
	switch f {
	case FieldTitle:
		return tags.Title
	case FieldArtist:
		return tags.Artist
	case FieldAlbum:
		return tags.Album
	case FieldGenre:
		return tags.Genre
	case FieldYear:
		return tags.Year
	}
	return ""
}

// Set stores value into the field of tags.
func (f Field) Set(tags *model.Tags, value string) {
	switch f {
	case FieldTitle:
		tags.Title = value
	case FieldArtist:
		tags.Artist = value
	case FieldAlbum:
		tags.Album = value
	case FieldGenre:
		tags.Genre = value
	case FieldYear:
		tags.Year = value
	}
}

// Prompter asks the user for one field.
//
// Prompt returns the raw answer; an empty answer means "keep the default".
// io.EOF signals that no more input will arrive.
type Prompter interface {
	Prompt(field Field, def string) (string, error)
}

// Collect prompts for every field in order and returns the resulting tags.
//
// Empty answers take the default. Required fields are asked again while
// they would stay empty; if input ends first, Collect returns ErrRequired.
// Optional fields keep their default when input ends.
func Collect(p Prompter, defaults model.Tags) (model.Tags, error) {
	tags := defaults
	eof := false

	for _, field := range Fields {
		def := strings.TrimSpace(field.Get(defaults))
		value := def

		for !eof {
			answer, err := p.Prompt(field, def)
			if errors.Is(err, io.EOF) {
				eof = true
			} else if err != nil {
				return tags, fmt.Errorf("prompt %s: %w", strings.ToLower(field.Label()), err)
			}

			if answer = strings.TrimSpace(answer); answer != "" {
				value = answer
			}
			if value != "" || !field.Required() {
				break
			}
		}

		if value == "" && field.Required() {
			return tags, fmt.Errorf("%w: %s", ErrRequired, strings.ToLower(field.Label()))
		}
		field.Set(&tags, value)
	}
	return tags, nil
}
