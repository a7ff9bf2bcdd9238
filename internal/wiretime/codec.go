// Package wiretime converts between the remote document store's native
// timestamp type and the epoch-millisecond integers used throughout the
// cache. It is the only place where the two representations meet: components
// that read cached state never see a Timestamp, and the store never sees a
// bare integer.
package wiretime

import "time"

// Timestamp is the wire representation of a point in time: whole seconds
// since the Unix epoch plus a nanosecond remainder in [0, 1e9).
type Timestamp struct {
	Seconds int64
	Nanos   int32
}

const (
	millisPerSecond = 1000
	nanosPerMilli   = 1_000_000
)

// ToWire converts epoch milliseconds into a wire Timestamp.
func ToWire(epochMs int64) Timestamp {
	sec := epochMs / millisPerSecond
	rem := epochMs % millisPerSecond
	if rem < 0 {
		sec--
		rem += millisPerSecond
	}
	return Timestamp{Seconds: sec, Nanos: int32(rem * nanosPerMilli)}
}

// FromWire converts a wire Timestamp back to epoch milliseconds.
// Sub-millisecond precision is truncated.
func FromWire(ts Timestamp) int64 {
	return ts.Seconds*millisPerSecond + int64(ts.Nanos)/nanosPerMilli
}

// ToWirePtr is the pointer-tolerant variant of ToWire: nil in, nil out.
func ToWirePtr(epochMs *int64) *Timestamp {
	if epochMs == nil {
		return nil
	}
	ts := ToWire(*epochMs)
	return &ts
}

// FromWirePtr is the pointer-tolerant variant of FromWire: a missing wire
// value stays missing instead of becoming a zero time.
func FromWirePtr(ts *Timestamp) *int64 {
	if ts == nil {
		return nil
	}
	ms := FromWire(*ts)
	return &ms
}

// FromTime converts a time.Time into a wire Timestamp, truncated to
// millisecond precision.
func FromTime(t time.Time) Timestamp {
	return ToWire(t.UnixMilli())
}

// Time converts the wire Timestamp into a UTC time.Time.
func (ts Timestamp) Time() time.Time {
	return time.UnixMilli(FromWire(ts)).UTC()
}
