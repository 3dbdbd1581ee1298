package notification

import "context"

// Transport delivers a message over one channel. Implementations enforce
// their own timeouts.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// Directory is the read-only view of identities and their preferences
type Directory interface {
	// ListRecipients returns every identity that enabled the channel
	ListRecipients(ctx context.Context, channel Channel) ([]Recipient, error)

	// GetPreferences returns the submitter's channel switches and addresses
	GetPreferences(ctx context.Context, ownerID int64) (*OwnerPreferences, error)
}

// Router fans a job out to its recipients. Errors are for logging only.
type Router interface {
	Route(ctx context.Context, job Job) error
}

// Dispatcher hands jobs to background workers without blocking
type Dispatcher interface {
	// Enqueue reports whether the job was accepted
	Enqueue(job Job) bool
}

// SecondaryTransport is the urgent channel. It decides which of the owner's
// addresses it can reach.
type SecondaryTransport interface {
	Transport
	AddressFor(p *OwnerPreferences) string
}
