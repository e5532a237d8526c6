package datastructures

// PhonemizeRequest is the payload published on the request channel (and
// accepted by the HTTP api). PrevNote and NextNote are the neighbor notes of
// the run, used only for cross-boundary transition context.
type PhonemizeRequest struct {
	Jid           string `json:"jid"`
	ResponseEvent string `json:"response_event,omitempty"`
	Singer        string `json:"singer,omitempty"`
	Notes         []Note `json:"notes"`
	PrevNote      *Note  `json:"prev_note,omitempty"`
	NextNote      *Note  `json:"next_note,omitempty"`
}

type PhonemizeResponse struct {
	Jid      string    `json:"jid"`
	Wid      string    `json:"wid"`
	Singer   string    `json:"singer,omitempty"`
	Phonemes []Phoneme `json:"phonemes"`
	Time     float64   `json:"time"`
}

// RenderJob is what gets queued for the downstream resampler workers once a
// run has been phonemized.
type RenderJob struct {
	Wid      string    `json:"wid"`
	Singer   string    `json:"singer,omitempty"`
	Notes    []Note    `json:"notes"`
	Phonemes []Phoneme `json:"phonemes"`
}
