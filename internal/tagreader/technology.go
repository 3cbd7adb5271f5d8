package tagreader

import "context"

// Technology is the platform contactless-read primitive. One Connect/Close
// pair brackets a single tag acquisition; ReadRecord is only valid between
// them. Implementations must honor ctx cancellation and report a
// user-aborted acquisition as ErrCancelled (wrapped or bare) so the reader
// never has to infer cancellation from error text.
type Technology interface {
	Connect(ctx context.Context) error
	ReadRecord(ctx context.Context) (recordType, payload []byte, err error)
	Close() error
}

// Unavailable is the Technology for platforms without a contactless
// capability. Every acquisition fails immediately with ErrUnavailable.
type Unavailable struct{}

func (Unavailable) Connect(context.Context) error { return ErrUnavailable }

func (Unavailable) ReadRecord(context.Context) ([]byte, []byte, error) {
	return nil, nil, ErrUnavailable
}

func (Unavailable) Close() error { return nil }
