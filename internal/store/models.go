package store

// Entry is one raw row of the key-value table.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt string
}
