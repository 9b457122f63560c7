package port

// Extractor turns raw document bytes into best-effort plain text.
type Extractor interface {
	Extract(data []byte) (string, error)
}
