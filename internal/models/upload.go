package models

// Upload is a transient in-memory file received from a multipart form.
// It is never persisted; its lifetime ends when extraction finishes.
type Upload struct {
	Filename string
	MimeType string
	Content  []byte
}
