package model

// Item is one todo record.
// ID is assigned once by an ids.Generator and never changes; Text is
// always trimmed and non-empty.
type Item struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}
