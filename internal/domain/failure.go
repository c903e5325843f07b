package domain

import "fmt"

// FailureReason is the closed set of acquisition failure categories.
type FailureReason string

const (
	FailureInvalidURL          FailureReason = "invalid_url"
	FailureTranscriptsDisabled FailureReason = "transcripts_disabled"
	FailureNoTranscript        FailureReason = "no_transcript"
	FailureUnclassified        FailureReason = "unclassified"
)

const (
	MessageInvalidURL          = "Invalid YouTube URL"
	MessageTranscriptsDisabled = "Transcripts are disabled for this video"
	MessageNoTranscript        = "No transcript found for this video. It might not have captions"
	MessageUnclassifiedPrefix  = "Error: "
	MessageUnclassifiedGeneric = "Error: could not retrieve the transcript. Please try again later."
)

func (r FailureReason) String() string {
	return string(r)
}

// IsClassified reports whether the reason is one of the service-confirmed or input categories.
func (r FailureReason) IsClassified() bool {
	switch r {
	case FailureInvalidURL, FailureTranscriptsDisabled, FailureNoTranscript:
		return true
	default:
		return false
	}
}

// Failure accompanies every failed acquisition.
type Failure struct {
	Reason  FailureReason `json:"reason"`
	Message string        `json:"message"`
	Cause   error         `json:"-"`
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// UserMessage returns the text shown in chat. Unclassified failures carry the raw
// collaborator description only when exposeDetails is set.
func (f *Failure) UserMessage(exposeDetails bool) string {
	if f.Reason == FailureUnclassified && !exposeDetails {
		return MessageUnclassifiedGeneric
	}
	return f.Message
}

func NewInvalidURLFailure() *Failure {
	return &Failure{Reason: FailureInvalidURL, Message: MessageInvalidURL}
}

func NewTranscriptsDisabledFailure(cause error) *Failure {
	return &Failure{Reason: FailureTranscriptsDisabled, Message: MessageTranscriptsDisabled, Cause: cause}
}

func NewNoTranscriptFailure(cause error) *Failure {
	return &Failure{Reason: FailureNoTranscript, Message: MessageNoTranscript, Cause: cause}
}

func NewUnclassifiedFailure(cause error) *Failure {
	desc := "unknown error"
	if cause != nil {
		desc = cause.Error()
	}
	return &Failure{
		Reason:  FailureUnclassified,
		Message: fmt.Sprintf("%s%s", MessageUnclassifiedPrefix, desc),
		Cause:   cause,
	}
}
