package model

// Tune is one entry in the static tune registry. The ABC and original
// audio fields are filenames relative to the tunes dir and original
// dir respectively.
type Tune struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	AbcFile   string `json:"abc"`
	OrigAudio string `json:"orig_audio"`
}
