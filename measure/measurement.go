package measure

import (
	"fmt"
	"strings"

	"github.com/arloliu/sigframe/errs"
)

// Measurement identifies one statistic a caller can request.
type Measurement uint8

const (
	// EdgesRising is the number of rising edges.
	EdgesRising Measurement = iota
	// EdgesFalling is the number of falling edges.
	EdgesFalling
	// FrequencyAvg is the average frequency over complete periods.
	FrequencyAvg
	// FrequencyMin is the reciprocal of the longest period.
	FrequencyMin
	// FrequencyMax is the reciprocal of the shortest period.
	FrequencyMax
	// PeriodStdDev is the sample standard deviation of the periods.
	PeriodStdDev
	// VoltageRMS is the root mean square of analog samples.
	VoltageRMS

	numMeasurements
)

var measurementNames = [numMeasurements]string{
	EdgesRising:  "edges_rising",
	EdgesFalling: "edges_falling",
	FrequencyAvg: "frequency_avg",
	FrequencyMin: "frequency_min",
	FrequencyMax: "frequency_max",
	PeriodStdDev: "period_std_dev",
	VoltageRMS:   "voltage_rms",
}

// measurementAliases accepts the camel-case names used by logic analyzer
// measurement extensions in addition to the canonical snake-case names.
var measurementAliases = map[string]Measurement{
	"edgesrising":  EdgesRising,
	"edgesfalling": EdgesFalling,
	"frequencyavg": FrequencyAvg,
	"frequencymin": FrequencyMin,
	"frequencymax": FrequencyMax,
	"periodstddev": PeriodStdDev,
	"voltagerms":   VoltageRMS,
}

// String returns the canonical snake-case name of the measurement.
func (m Measurement) String() string {
	if m < numMeasurements {
		return measurementNames[m]
	}

	return "unknown"
}

// Valid reports whether m is a supported measurement.
func (m Measurement) Valid() bool {
	return m < numMeasurements
}

// ParseMeasurement returns the Measurement for a name.
//
// Both the canonical names ("frequency_avg") and their camel-case forms
// ("frequencyAvg") are accepted, case-insensitively.
func ParseMeasurement(name string) (Measurement, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", ""))
	if m, ok := measurementAliases[key]; ok {
		return m, nil
	}

	return 0, fmt.Errorf("%w: %q", errs.ErrUnknownMeasurement, name)
}

// All returns every supported measurement in declaration order.
func All() []Measurement {
	out := make([]Measurement, 0, numMeasurements)
	for m := range numMeasurements {
		out = append(out, m)
	}

	return out
}

// Set is an immutable set of requested measurements.
type Set uint16

// NewSet returns a Set holding ms.
func NewSet(ms ...Measurement) Set {
	var s Set
	for _, m := range ms {
		if m < numMeasurements {
			s |= 1 << m
		}
	}

	return s
}

// Has reports whether m is in the set.
func (s Set) Has(m Measurement) bool {
	return m < numMeasurements && s&(1<<m) != 0
}

// With returns a copy of the set with ms added.
func (s Set) With(ms ...Measurement) Set {
	return s | NewSet(ms...)
}

// Len returns the number of measurements in the set.
func (s Set) Len() int {
	n := 0
	for m := range numMeasurements {
		if s.Has(m) {
			n++
		}
	}

	return n
}

// Measurements returns the members of the set in declaration order.
func (s Set) Measurements() []Measurement {
	out := make([]Measurement, 0, s.Len())
	for m := range numMeasurements {
		if s.Has(m) {
			out = append(out, m)
		}
	}

	return out
}

// String returns the comma-separated member names.
func (s Set) String() string {
	ms := s.Measurements()
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.String()
	}

	return strings.Join(names, ",")
}

// digital is the subset served by EdgeStats.
var digital = NewSet(EdgesRising, EdgesFalling, FrequencyAvg, FrequencyMin, FrequencyMax, PeriodStdDev)

// analog is the subset served by RMS.
var analog = NewSet(VoltageRMS)
