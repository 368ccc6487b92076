/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package objectstore

import (
	"context"
)

// StreamResult represents a single item in a stream with metadata.
type StreamResult[T any] struct {
	Item  *T         // The matching instance
	Error error      // Evaluation error; when set, the stream ends
	Meta  StreamMeta // Metadata about this item
}

// StreamMeta contains metadata about a streamed item.
type StreamMeta struct {
	Index int64 // Item index in stream (0-based)
}

// StreamOptions configures streaming behavior.
type StreamOptions struct {
	BufferSize int // Channel buffer size (default: 100)
}

// StreamOption is a functional option for configuring streaming.
type StreamOption func(*StreamOptions)

// DefaultStreamOptions returns default streaming options.
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{BufferSize: 100}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) StreamOption {
	return func(opts *StreamOptions) {
		opts.BufferSize = size
	}
}

// Stream evaluates the QuerySet and yields matches over a channel. The
// snapshot is taken when Stream is called; context cancellation stops the
// stream early. An evaluation failure is delivered as a single result with
// Error set.
func (q *QuerySet[T]) Stream(ctx context.Context, opts ...StreamOption) <-chan StreamResult[T] {
	options := DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	out := make(chan StreamResult[T], options.BufferSize)

	items, err := q.evaluate()

	go func() {
		defer close(out)
		if err != nil {
			select {
			case <-ctx.Done():
			case out <- StreamResult[T]{Error: err}:
			}
			return
		}
		for i, item := range items {
			select {
			case <-ctx.Done():
				return
			case out <- StreamResult[T]{Item: item, Meta: StreamMeta{Index: int64(i)}}:
			}
		}
	}()

	return out
}
