package crmsync

// ErrorKind classifies a failed sync. The kind is for logs and metrics; the
// Message field carries the client-facing text.
type ErrorKind string

const (
	KindContactCreationFailed ErrorKind = "contact_creation_failed"
	KindDealCreationFailed    ErrorKind = "deal_creation_failed"
)

// SyncResult is the outcome of one lead synchronization. On success OK is
// true and both IDs are set. On failure ErrorKind and Message are set; a
// non-empty ContactID alongside KindDealCreationFailed signals partial
// success: the contact exists but the deal does not.
type SyncResult struct {
	OK        bool
	ContactID string
	DealID    string
	ErrorKind ErrorKind
	Message   string
}
