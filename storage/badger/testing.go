package badger

// NewMemoryRecordStore creates an in-memory record store for testing.
// Returns the repository and its backend; caller must close the backend when done.
func NewMemoryRecordStore() (*RecordRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, err
	}
	return NewRecordRepository(backend), backend, nil
}
