// Package audio writes ID3 tags into the finished MP3 file.
//
//	tagger := audio.NewTagger()
//	err := tagger.WriteTags(path, tags, coverJPEG)
//
// Written frames:
//   - TIT2 title, TPE1 artist, TALB album, TCON genre
//   - TYER and TDRC year
//   - APIC front cover, when artwork is given
package audio
