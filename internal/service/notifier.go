package service

import "styllobarber-pdv/internal/ws"

// Notifier publishes domain events to connected clients. *ws.Hub satisfies it.
type Notifier interface {
	Publish(event ws.Event) bool
}

type nopNotifier struct{}

func (nopNotifier) Publish(ws.Event) bool { return false }
