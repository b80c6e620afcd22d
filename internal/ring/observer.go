package ring

import (
	"encoding/hex"

	"go.uber.org/zap"
)

// Eviction describes an element dropped by OverwriteOldest.
type Eviction struct {
	// Payload is a copy of the evicted bytes, owned by the observer.
	Payload []byte
	// Position is the slot index the element occupied.
	Position int
}

// Observer receives eviction notifications. OnEvict runs synchronously on
// the goroutine whose Enqueue caused the eviction, so it should return
// quickly and must not call back into the same queue's Enqueue.
type Observer interface {
	OnEvict(Eviction)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Eviction)

func (f ObserverFunc) OnEvict(e Eviction) { f(e) }

type multiObserver []Observer

func (m multiObserver) OnEvict(e Eviction) {
	for _, o := range m {
		o.OnEvict(e)
	}
}

// MultiObserver fans an eviction out to every non-nil observer.
func MultiObserver(observers ...Observer) Observer {
	m := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}

// LogObserver logs every eviction at warn level.
func LogObserver(logger *zap.Logger) Observer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return ObserverFunc(func(e Eviction) {
		logger.Warn("overwrote oldest entry",
			zap.Int("position", e.Position),
			zap.Int("bytes", len(e.Payload)),
			zap.String("payload", hex.EncodeToString(e.Payload)),
		)
	})
}
