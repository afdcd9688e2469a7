package request

// JournalRequest is the body of POST /api/journal/analyze. Text and Mood are
// checked by the service: a bad text is reported in the journal reply shape,
// a mood that is not a non-empty string becomes the default mood.
type JournalRequest struct {
	Text any `json:"text"`
	Mood any `json:"mood"`
}
