package event

import (
	"time"

	"github.com/bamsammich/covidspark/internal/series"
)

// Type identifies the kind of event.
type Type int

const (
	FetchStarted Type = iota + 1
	FetchRetry
	FetchCompleted
	FetchFailed
)

var typeNames = [...]string{
	FetchStarted:   "FetchStarted",
	FetchRetry:     "FetchRetry",
	FetchCompleted: "FetchCompleted",
	FetchFailed:    "FetchFailed",
}

func (t Type) String() string {
	if int(t) < len(typeNames) && typeNames[t] != "" {
		return typeNames[t]
	}
	return "Unknown"
}

// Kind identifies which dataset an event refers to.
type Kind int

const (
	National Kind = iota + 1
	States
)

func (k Kind) String() string {
	switch k {
	case National:
		return "national"
	case States:
		return "states"
	default:
		return "unknown"
	}
}

// Event is one step in the life of a dataset fetch. Records is set only on
// FetchCompleted and is newest first, as published by the source.
type Event struct {
	Type      Type
	Kind      Kind
	Timestamp time.Time
	Records   []series.DailyRecord
	Bytes     int64
	Attempt   int
	Error     error
}
