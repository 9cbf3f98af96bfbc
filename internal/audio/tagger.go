package audio

import (
	"os"

	"github.com/bogem/id3v2"

	"github.com/handiism/yt2mp3/internal/model"
)

// Frame IDs written by the Tagger.
const (
	frameTitle   = "TIT2"
	frameArtist  = "TPE1"
	frameAlbum   = "TALB"
	frameGenre   = "TCON"
	frameYear    = "TYER" // ID3v2.3
	frameDate    = "TDRC" // ID3v2.4
	framePicture = "APIC"
)

// Tagger writes ID3 tags to MP3 files.
//
// Every non-empty field of model.Tags becomes one text frame. Empty fields
// are omitted, and any frame of that kind already present (ffmpeg copies
// some metadata from the source container) is removed.
//
// Example:
//
//	tagger := NewTagger()
//	err := tagger.WriteTags("/music/Song.mp3", tags, coverJPEG)
//	if err != nil {
//	    log.Printf("Failed to tag: %v", err)
//	}
type Tagger struct {
	encoding id3v2.Encoding
}

// NewTagger creates a Tagger writing UTF-8 text frames.
func NewTagger() *Tagger {
	return &Tagger{encoding: id3v2.EncodingUTF8}
}

// WriteTags writes tags, and artwork when non-nil, into the MP3 at path.
//
// artwork must be JPEG bytes; it replaces any existing front cover.
func (t *Tagger) WriteTags(path string, tags model.Tags, artwork []byte) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetDefaultEncoding(t.encoding)

	t.setText(tag, frameTitle, tags.Title)
	t.setText(tag, frameArtist, tags.Artist)
	t.setText(tag, frameAlbum, tags.Album)
	t.setText(tag, frameGenre, tags.Genre)
	t.setText(tag, frameYear, tags.Year)
	t.setText(tag, frameDate, tags.Year)

	if artwork != nil {
		t.updateArtwork(tag, artwork)
	}

	return tag.Save()
}

// setText writes a text frame, or removes it when value is empty.
func (t *Tagger) setText(tag *id3v2.Tag, id, value string) {
	if value == "" {
		tag.DeleteFrames(id)
		return
	}
	tag.AddTextFrame(id, t.encoding, value)
}

// updateArtwork embeds cover art as an attached picture frame.
func (t *Tagger) updateArtwork(tag *id3v2.Tag, artwork []byte) {
	// Remove any existing cover pictures
	tag.DeleteFrames(framePicture)

	pic := id3v2.PictureFrame{
		Encoding:    t.encoding,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	}
	tag.AddAttachedPicture(pic)
}
