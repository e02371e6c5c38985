package domain

// Backup is one timestamped full snapshot of the catalog document. The stored
// backup list is FIFO-bounded: appending beyond the cap evicts the oldest.
type Backup struct {
	Date     string   `json:"date"`
	Database Database `json:"database"`
}
