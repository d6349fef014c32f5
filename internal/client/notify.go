package client

import "log"

// Notifier receives user-facing outcome messages from the edit session.
// It stands in for whatever notification surface the consumer has.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier writes notifications to the standard logger; the CLI uses it.
type LogNotifier struct{}

func (LogNotifier) Success(message string) {
	log.Println(message)
}

func (LogNotifier) Error(message string) {
	log.Println("error:", message)
}
