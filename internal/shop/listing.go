package shop

// FileEntry is one downloadable file in the published listing. URL is the
// percent-encoded virtual path; Size is the byte size captured at scan time.
type FileEntry struct {
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// Listing is the merged catalog across every source directory — the
// "shop data" served on /shop.json and /shop.tfl. Built in one scan pass
// and never mutated afterwards.
type Listing struct {
	Files       []FileEntry `json:"files"`
	Directories []string    `json:"directories"`
	Success     string      `json:"success,omitempty"`
}
