package entity

type ReplaceSource string

const (
	ReplaceSourceStartup ReplaceSource = "startup"
	ReplaceSourceUpload  ReplaceSource = "upload"
)

// ReplacedEvent is emitted after the store has swapped in a new dataset.
type ReplacedEvent struct {
	EventID    string
	Source     ReplaceSource
	Count      int
	ReplacedAt int64
}
