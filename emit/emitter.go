package emit

import (
	"runtime/debug"
	"sync"

	"git.thinkinpower.net/ccform/cardtype"
	"git.thinkinpower.net/ccform/mod"
	logger "github.com/sirupsen/logrus"
)

type Listener func(mod.CardDetails)

// Emitter delivers saved card forms to its listeners, synchronously and in
// registration order.
type Emitter struct {
	mu        sync.RWMutex
	listeners []Listener
}

func NewEmitter() *Emitter {
	return &Emitter{}
}

func (e *Emitter) AddListener(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

// Emit calls every listener. A panicking listener is logged and skipped.
func (e *Emitter) Emit(details mod.CardDetails) {
	e.mu.RLock()
	listeners := make([]Listener, len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.RUnlock()

	for _, l := range listeners {
		call(l, details)
	}
}

func call(l Listener, details mod.CardDetails) {
	defer func() {
		if err := recover(); err != nil {
			logger.Errorf("card listener panic: %v, stack: %s", err, string(debug.Stack()))
		}
	}()
	l(details)
}

// LogListener logs the saved card without its full number.
func LogListener(registry *cardtype.Registry) Listener {
	return func(details mod.CardDetails) {
		t, _ := cardtype.Classify(registry, details.CardNumber)
		logger.WithFields(logger.Fields{
			"cardType":   t.String(),
			"cardNumber": details.MaskedNumber(),
		}).Info("card details saved")
	}
}
