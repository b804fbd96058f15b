package domain

import "time"

// DomainEvent is a timestamped match event detected in the video.
// Identity is the (Type, Subtype, Timestamp) tuple; duplicates are allowed.
type DomainEvent struct {
	// Type is the event family, e.g. "wicket" or "boundary"
	Type string `json:"type"`
	// Subtype refines the type, e.g. "bowled" or "six". Empty when the backend sent null.
	Subtype string `json:"subtype"`
	// Timestamp is the position in the video, in seconds
	Timestamp float64 `json:"timestamp"`
}

// PlayerStatus represents the playback status reported by a media engine
type PlayerStatus string

const (
	// StatusPlaying indicates the media is currently playing
	StatusPlaying PlayerStatus = "Playing"
	// StatusPaused indicates the media is paused
	StatusPaused PlayerStatus = "Paused"
	// StatusStopped indicates the media is stopped or reached its end
	StatusStopped PlayerStatus = "Stopped"
)

// MediaEventKind identifies a lifecycle notification from a media engine
type MediaEventKind string

const (
	// MediaLoaded fires once the engine knows the media duration
	MediaLoaded MediaEventKind = "loadedmetadata"
	// MediaStatusChanged fires whenever the playback status changes
	MediaStatusChanged MediaEventKind = "status"
	// MediaSeeked fires when the engine has committed a seek
	MediaSeeked MediaEventKind = "seeked"
	// MediaEnded fires when playback reaches the end of the media
	MediaEnded MediaEventKind = "ended"
)

// MediaEvent is a lifecycle notification emitted by a media engine
type MediaEvent struct {
	Kind   MediaEventKind
	Status PlayerStatus
	// Position is the engine position in seconds at the time of the event
	Position float64
}

// TransportState mirrors what the viewer sees on the playback controls
type TransportState struct {
	CurrentTime float64 `json:"currentTime"`
	// Duration is zero while the duration is unknown
	Duration float64 `json:"duration"`
	Playing  bool    `json:"playing"`
	Muted    bool    `json:"muted"`
	Volume   float64 `json:"volume"`
	Ready    bool    `json:"ready"`
}

// Tick is the result of one time-update: progress, clock labels and highlights
type Tick struct {
	CurrentTime  float64       `json:"currentTime"`
	Duration     float64       `json:"duration"`
	Percent      float64       `json:"percent"`
	CurrentLabel string        `json:"currentLabel"`
	TotalLabel   string        `json:"totalLabel"`
	Active       []DomainEvent `json:"active"`
}

// SpeechState is the state of the commentary speech queue
type SpeechState string

const (
	// SpeechIdle means nothing is being spoken (never started, stopped or finished)
	SpeechIdle SpeechState = "idle"
	// SpeechPlaying means a sentence is in flight
	SpeechPlaying SpeechState = "playing"
	// SpeechPaused means the engine holds a sentence mid-way
	SpeechPaused SpeechState = "paused"
)

// Voice describes a voice offered by the speech engine
type Voice struct {
	Name string `json:"name"`
	// Lang is a BCP 47 style tag such as "en-GB"
	Lang string `json:"lang"`
}

// Utterance is one sentence submitted to the speech engine
type Utterance struct {
	ID     string
	Text   string
	Voice  *Voice
	Rate   float64
	Pitch  float64
	Volume float64
}

// SpeechEventKind identifies a notification from the speech engine
type SpeechEventKind string

const (
	// SpeechEventEnd fires when an utterance has been spoken completely
	SpeechEventEnd SpeechEventKind = "end"
	// SpeechEventError fires when the engine failed to speak an utterance
	SpeechEventError SpeechEventKind = "error"
	// SpeechEventVoicesChanged fires when the engine voice list changed
	SpeechEventVoicesChanged SpeechEventKind = "voiceschanged"
)

// SpeechEvent is a notification emitted by the speech engine
type SpeechEvent struct {
	Kind        SpeechEventKind
	UtteranceID string
	Err         error
}

// StartResponse is the backend reply to a start-processing request
type StartResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// Succeeded reports whether the backend accepted the job
func (r StartResponse) Succeeded() bool {
	return r.Status == "success"
}

// JobState is the coarse state of the backend processing job
type JobState string

const (
	JobRunning  JobState = "running"
	JobComplete JobState = "complete"
	JobFailed   JobState = "failed"
)

// JobStatus is one reading of the backend job progress
type JobStatus struct {
	State   JobState `json:"state"`
	Percent int      `json:"percent"`
	Message string   `json:"message"`
}

// JobProgress is what the progress display shows
type JobProgress struct {
	Percent   int       `json:"percent"`
	Message   string    `json:"message"`
	Failed    bool      `json:"failed"`
	UpdatedAt time.Time `json:"updatedAt"`
}
