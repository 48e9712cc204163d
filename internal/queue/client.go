package queue

import "context"

// Client enqueues evaluation messages for asynchronous processing.
// The SQS implementation is the production backend; a nil client means
// the service falls back to in-process execution.
type Client interface {
	Send(ctx context.Context, msg Message) error
}
