package diagnostic

import "github.com/sirupsen/logrus"

// Sink is the structured diagnostic sink every pipeline stage reports
// through. Stages identify themselves with a target tag, such as
// "MLANG_ANALYZER" for analyzer diagnostics.
type Sink interface {
	Report(target string, err error)
}

// LogrusSink reports diagnostics through a logrus logger, attaching the
// reporting stage as a structured field rather than interpolating it into
// the message text.
type LogrusSink struct {
	Logger *logrus.Logger
}

// NewLogrusSink builds a sink writing to logrus.StandardLogger().
func NewLogrusSink() *LogrusSink {
	return &LogrusSink{Logger: logrus.StandardLogger()}
}

func (s *LogrusSink) Report(target string, err error) {
	s.Logger.WithField("target", target).Error(err)
}

// CollectingSink accumulates every reported diagnostic in order, used by
// tests and by any caller that wants the full diagnostic list rather than
// a side-channel log stream.
type CollectingSink struct {
	Diagnostics []error
}

func (s *CollectingSink) Report(target string, err error) {
	s.Diagnostics = append(s.Diagnostics, err)
}

// TeeSink reports to every sink in Sinks.
type TeeSink struct {
	Sinks []Sink
}

func (s *TeeSink) Report(target string, err error) {
	for _, sink := range s.Sinks {
		sink.Report(target, err)
	}
}
