package models

// PlaylistRef identifies a playlist on a service.
type PlaylistRef struct {
	ID    string
	Title string
}

// DestinationPlaylist is a playlist listed on the destination service along with the fields needed to decide
// whether the current user may write to it.
type DestinationPlaylist struct {
	Ref           PlaylistRef
	OwnerID       string
	Collaborative bool
	TrackCount    int
}

// Writable reports whether userID may append to the playlist.
func (p DestinationPlaylist) Writable(userID string) bool {
	return p.OwnerID == userID || p.Collaborative
}

// SourceItem is one entry of the source playlist. The title is the only usable signal.
type SourceItem struct {
	Title string
}

// DestinationTrack is a track returned by the destination search.
type DestinationTrack struct {
	URI        string
	Name       string
	ArtistName string
}

// TransferMode enumerates the two ways confirmed tracks can be written.
type TransferMode int

const (
	CreateNew TransferMode = iota
	AddToExisting
)

func (m TransferMode) String() string {
	switch m {
	case CreateNew:
		return "new"
	case AddToExisting:
		return "existing"
	default:
		return ""
	}
}

// TransferTarget is either a new playlist (Name set) or an existing one (Ref set), chosen once per run.
type TransferTarget struct {
	Mode TransferMode
	Name string
	Ref  PlaylistRef
}

// NewPlaylistTarget returns a [TransferTarget] for a playlist that does not exist yet.
func NewPlaylistTarget(name string) TransferTarget {
	return TransferTarget{Mode: CreateNew, Name: name}
}

// ExistingPlaylistTarget returns a [TransferTarget] for an existing playlist.
func ExistingPlaylistTarget(ref PlaylistRef) TransferTarget {
	return TransferTarget{Mode: AddToExisting, Ref: ref}
}
