package domain

// ResultKind discriminates what the presentation layer renders.
type ResultKind string

const (
	ResultSummary ResultKind = "summary"
	ResultPreview ResultKind = "preview"
	ResultError   ResultKind = "error"
)

// SummaryMetadata describes which model produced a summary.
type SummaryMetadata struct {
	Provider      string `json:"provider"`
	Model         string `json:"model"`
	UsedFallback  bool   `json:"used_fallback"`
	TranscriptLen int    `json:"transcript_length"`
	Language      string `json:"language,omitempty"`
}

// Result is the outcome of one user interaction.
type Result struct {
	Kind         ResultKind       `json:"kind"`
	RequestID    string           `json:"request_id,omitempty"`
	VideoID      VideoID          `json:"video_id,omitempty"`
	Title        string           `json:"title,omitempty"`
	ThumbnailURL string           `json:"thumbnail_url,omitempty"`
	Summary      string           `json:"summary,omitempty"`
	Failure      *Failure         `json:"failure,omitempty"`
	Metadata     *SummaryMetadata `json:"metadata,omitempty"`
}

func NewSummaryResult(id VideoID, title, summary string, meta *SummaryMetadata) *Result {
	return &Result{
		Kind:         ResultSummary,
		VideoID:      id,
		Title:        title,
		ThumbnailURL: id.ThumbnailURL(),
		Summary:      summary,
		Metadata:     meta,
	}
}

func NewPreviewResult(id VideoID, title string) *Result {
	return &Result{
		Kind:         ResultPreview,
		VideoID:      id,
		Title:        title,
		ThumbnailURL: id.ThumbnailURL(),
	}
}

func NewErrorResult(id VideoID, failure *Failure) *Result {
	return &Result{
		Kind:    ResultError,
		VideoID: id,
		Failure: failure,
	}
}

func (r *Result) IsError() bool {
	return r != nil && r.Kind == ResultError
}
