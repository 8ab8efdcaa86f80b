package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"ticketdesk/internal/model"
)

// FileStore keeps the session in a single JSON file, created on demand with
// 0600 permissions since it holds a live bearer token.  A file that cannot
// be read or parsed is treated as an absent session rather than an error;
// the user just logs in again.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// fileState is the on-disk layout.  The booking id sits next to the session
// but is cleared independently of it.
type fileState struct {
	Session          *model.Session `json:"session,omitempty"`
	CurrentBookingID int64          `json:"current_booking_id,omitempty"`
}

// NewFileStore returns a store backed by the given path.  The parent
// directory is created lazily on the first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) load() fileState {
	var st fileState
	b, err := os.ReadFile(f.path)
	if err != nil {
		return fileState{}
	}
	if err := json.Unmarshal(b, &st); err != nil {
		return fileState{}
	}
	return st
}

func (f *FileStore) save(st fileState) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, b, 0o600)
}

// Get returns the stored session, or (nil, nil) when there is none.
func (f *FileStore) Get() (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load().Session, nil
}

// Set replaces the stored session, leaving the active booking id intact.
func (f *FileStore) Set(s *model.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.load()
	st.Session = s
	return f.save(st)
}

// Clear removes the session.  Clearing an absent session is a no-op.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.load()
	if st.Session == nil {
		return nil
	}
	st.Session = nil
	return f.save(st)
}

// ActiveBookingID returns the stored booking id, or 0 when none is set.
func (f *FileStore) ActiveBookingID() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load().CurrentBookingID, nil
}

// SetActiveBookingID records the booking currently awaiting payment.
func (f *FileStore) SetActiveBookingID(id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.load()
	st.CurrentBookingID = id
	return f.save(st)
}

// ClearActiveBookingID forgets the active booking reference.
func (f *FileStore) ClearActiveBookingID() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.load()
	if st.CurrentBookingID == 0 {
		return nil
	}
	st.CurrentBookingID = 0
	return f.save(st)
}
