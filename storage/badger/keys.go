package badger

// Key prefixes for different data types
const (
	reviewRecordPrefix = "review:"
)

// makeRecordKey generates a key for a review record by identifier.
// Format: prefix:identifier
func makeRecordKey(id string) []byte {
	buf := make([]byte, 0, len(reviewRecordPrefix)+len(id))
	buf = append(buf, reviewRecordPrefix...)
	return append(buf, id...)
}

// recordKeyPrefix returns the prefix shared by all review record keys.
func recordKeyPrefix() []byte {
	return []byte(reviewRecordPrefix)
}
