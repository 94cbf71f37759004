package session

import "time"

type Periods struct {
	Telemetry     time.Duration
	Video         time.Duration
	FlightControl time.Duration
}

func DefaultPeriods() Periods {
	return Periods{
		Telemetry:     50 * time.Millisecond,
		Video:         67 * time.Millisecond,
		FlightControl: 50 * time.Millisecond,
	}
}

// Scheduler owns the three periodic session actions. Its channels are nil
// while stopped so a select on them never fires.
type Scheduler struct {
	periods   Periods
	telemetry *time.Ticker
	video     *time.Ticker
	flight    *time.Ticker
}

func NewScheduler(periods Periods) *Scheduler {
	def := DefaultPeriods()
	if periods.Telemetry <= 0 {
		periods.Telemetry = def.Telemetry
	}
	if periods.Video <= 0 {
		periods.Video = def.Video
	}
	if periods.FlightControl <= 0 {
		periods.FlightControl = def.FlightControl
	}
	return &Scheduler{periods: periods}
}

// Start (re)starts all three actions together.
func (s *Scheduler) Start() {
	s.Stop()
	s.telemetry = time.NewTicker(s.periods.Telemetry)
	s.video = time.NewTicker(s.periods.Video)
	s.flight = time.NewTicker(s.periods.FlightControl)
}

// Stop stops all three actions together.
func (s *Scheduler) Stop() {
	for _, t := range []*time.Ticker{s.telemetry, s.video, s.flight} {
		if t != nil {
			t.Stop()
		}
	}
	s.telemetry, s.video, s.flight = nil, nil, nil
}

func (s *Scheduler) Running() bool {
	return s.telemetry != nil
}

func (s *Scheduler) Telemetry() <-chan time.Time     { return tickerC(s.telemetry) }
func (s *Scheduler) Video() <-chan time.Time         { return tickerC(s.video) }
func (s *Scheduler) FlightControl() <-chan time.Time { return tickerC(s.flight) }

func tickerC(t *time.Ticker) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}
