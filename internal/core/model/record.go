package model

// Storage keys shared by every process of one installation
const (
	KeyEnabled = "ytSlicerEnabled"
	KeyRecords = "ytSlicerRecords"
)

// AllKeys lists every persisted key in a stable order
var AllKeys = []string{KeyEnabled, KeyRecords}

// Record is a single saved timestamp
type Record struct {
	ID          int64   `json:"id"`
	URL         string  `json:"url"`
	TimeSeconds float64 `json:"timeSeconds"`
	DisplayTime string  `json:"displayTime"`
}

// Settings holds the process-wide recording flag
type Settings struct {
	Enabled bool `json:"enabled"`
}

// CloneRecords returns a copy that never aliases the input.
// A nil input yields an empty, non-nil slice.
func CloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

// NextID returns candidate unless it would collide with or precede an id
// already in records, in which case it returns the largest id plus one.
func NextID(records []Record, candidate int64) int64 {
	var maxID int64
	for i, r := range records {
		if i == 0 || r.ID > maxID {
			maxID = r.ID
		}
	}
	if len(records) > 0 && candidate <= maxID {
		return maxID + 1
	}
	return candidate
}
