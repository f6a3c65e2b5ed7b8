package domain

// MaxDocuments is the most documents a session may hold at once. Adds that
// would exceed the cap are rejected before any side effect.
const MaxDocuments = 5

// Document holds the extracted plain-text content of one uploaded file.
// Name is display identity only and is not guaranteed unique.
type Document struct {
	Name string `json:"name"`
	Text string `json:"text"`
	Size int64  `json:"size"` // original byte size, display only
}
