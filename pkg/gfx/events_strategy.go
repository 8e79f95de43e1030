package gfx

// EventPoller returns the next event, waiting at most timeoutMs
// (negative waits indefinitely). ok is false when the wait timed out.
type EventPoller func(timeoutMs int) (event Event, ok bool)

// EventsConsumerStrategy decides how many events a single poll cycle drains.
// Only the first poll may block; the rest use a zero timeout.
type EventsConsumerStrategy interface {
	Consume(poll EventPoller, handle func(Event), timeoutMs int) int
}

type DrainAllStrategy struct{}

func (DrainAllStrategy) Consume(poll EventPoller, handle func(Event), timeoutMs int) int {
	return drain(poll, handle, timeoutMs, -1)
}

type DrainMaxStrategy struct {
	Max int
}

func (s DrainMaxStrategy) Consume(poll EventPoller, handle func(Event), timeoutMs int) int {
	limit := s.Max
	if limit <= 0 {
		limit = 1
	}
	return drain(poll, handle, timeoutMs, limit)
}

func drain(poll EventPoller, handle func(Event), timeoutMs, limit int) int {
	count := 0
	event, ok := poll(timeoutMs)
	for ok {
		handle(event)
		count++
		if limit > 0 && count >= limit {
			break
		}
		event, ok = poll(0)
	}
	return count
}

func DrainAll() EventsConsumerStrategy {
	return DrainAllStrategy{}
}

func DrainMax(max int) EventsConsumerStrategy {
	return DrainMaxStrategy{Max: max}
}
