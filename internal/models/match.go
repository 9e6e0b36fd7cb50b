package models

import "fmt"

// UnknownArtist is the artist recorded when a title does not follow the "Artist - Track" convention.
const UnknownArtist = "Unknown"

// Confidence tags how a [ParsedQuery] was produced.
type Confidence int

const (
	// Parsed means the title split into an artist and a track.
	Parsed Confidence = iota
	// Fallback means the title was used verbatim as the track and the artist is unknown.
	Fallback
)

func (c Confidence) String() string {
	switch c {
	case Parsed:
		return "parsed"
	case Fallback:
		return "fallback"
	default:
		return ""
	}
}

// ParsedQuery is the artist/track pair derived from a source title.
type ParsedQuery struct {
	Artist     string
	Track      string
	Confidence Confidence
}

// Match pairs a source item with its destination search result.
// Destination is nil iff the search found nothing.
type Match struct {
	SourceTitle  string
	ParsedTrack  string
	ParsedArtist string
	Confidence   Confidence
	Destination  *DestinationTrack
}

// Found reports whether the search resolved a destination track.
func (m Match) Found() bool {
	return m.Destination != nil
}

// Label is the text shown for the match during confirmation.
func (m Match) Label() string {
	if m.Destination == nil {
		return m.SourceTitle
	}
	return fmt.Sprintf("%s - %s", m.Destination.ArtistName, m.Destination.Name)
}

// MatchSet is the ordered list of matches for one run. Indices are stable from creation through confirmation.
type MatchSet []Match

// FoundCount returns the number of matches with a destination track.
func (s MatchSet) FoundCount() int {
	n := 0
	for _, m := range s {
		if m.Found() {
			n++
		}
	}
	return n
}

// URIs returns the destination URIs of the selected matches in MatchSet order.
// selected is indexed like the set; unmatched entries are skipped even when flagged.
func (s MatchSet) URIs(selected []bool) []string {
	uris := make([]string, 0, len(s))
	for i, m := range s {
		if i < len(selected) && selected[i] && m.Found() {
			uris = append(uris, m.Destination.URI)
		}
	}
	return uris
}
