package model

type TuneListing struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	OrigAudioURL *string `json:"orig_audio_url"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
