// Package events exposes capture record events to aretw0/lifecycle.
package events

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/inspekt/pkg/core"
)

type commitSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits commit events read from
// events. The output closes when events closes or the source's ctx ends.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &commitSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *commitSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *commitSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if e.Type != core.EventCommitted {
					continue
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
