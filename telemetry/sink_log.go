package telemetry

import "github.com/sirupsen/logrus"

// LogSink writes each tick's metrics as a structured log line.
type LogSink struct {
	log *logrus.Logger
}

// NewLogSink creates a sink that writes to log at Info level.
func NewLogSink(log *logrus.Logger) *LogSink {
	return &LogSink{log: log}
}

// Publish implements Sink.
func (s *LogSink) Publish(area string, metrics map[string]any) {
	fields := make(logrus.Fields, len(metrics)+1)
	for k, v := range metrics {
		fields[k] = v
	}
	fields["area"] = area
	s.log.WithFields(fields).Info("telemetry tick")
}
