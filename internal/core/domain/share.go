package domain

// SharePayload is what the front-end hands to the platform share sheet, or
// copies to the clipboard when sharing is unavailable.
type SharePayload struct {
	Title string
	Text  string
	URL   string
}

const (
	ShareTitle = "Support Dashboard"
	ShareText  = "Check out this support ticket dashboard"
)

// NewSharePayload builds the share payload for a page URL.
func NewSharePayload(url string) SharePayload {
	return SharePayload{Title: ShareTitle, Text: ShareText, URL: url}
}

// CSVExport is a rendered export file.
type CSVExport struct {
	FileName string
	Content  []byte
	Rows     int
}
