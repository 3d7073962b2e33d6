package decoder

import (
	"strconv"

	"github.com/d21d3q/gopayload/internal/frame"
)

const (
	statusOccupiedMask = 0b1
	temperatureMask    = 0x7F
	temperatureOffset  = 32
	batteryBase        = 25
	timeWidth          = 2
	eventCountWidth    = 3
)

const (
	StatusOccupied = "Occupied"
	StatusFree     = "Free"
)

// Volts is a battery voltage with one significant fractional digit.
type Volts float64

func (v Volts) String() string {
	return strconv.FormatFloat(float64(v), 'f', 1, 64)
}

// MarshalJSON keeps the fractional digit for whole values (4.0, not 4).
func (v Volts) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

// Reading is a decoded frame.
type Reading struct {
	Occupied           bool
	BatteryVolts       Volts
	TemperatureCelsius int
	TimeMinutes        uint16
	EventCount         uint32
}

// Status renders the occupancy bit the way the device documentation does.
func (r Reading) Status() string {
	if r.Occupied {
		return StatusOccupied
	}
	return StatusFree
}

// Decoder extracts readings with a layout that was validated once up front.
// It holds no mutable state and is safe for concurrent use.
type Decoder struct {
	layout Layout
}

// New validates layout and returns a Decoder bound to it.
func New(layout Layout) (*Decoder, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &Decoder{layout: layout}, nil
}

// Layout returns the offsets the decoder reads from.
func (d *Decoder) Layout() Layout { return d.layout }

// Decode validates normalized hex text and extracts the reading using layout.
func Decode(hexText string, layout Layout) (Reading, error) {
	d, err := New(layout)
	if err != nil {
		return Reading{}, err
	}
	return d.Decode(hexText)
}

// Decode validates normalized hex text and extracts the reading.
func (d *Decoder) Decode(hexText string) (Reading, error) {
	f, err := frame.Parse(hexText)
	if err != nil {
		return Reading{}, err
	}
	return d.FromFrame(f)
}

// FromFrame extracts the reading from an already parsed frame.
func (d *Decoder) FromFrame(f frame.Frame) (Reading, error) {
	l := d.layout
	minutes, err := LittleEndian(f[l.Time : l.Time+timeWidth])
	if err != nil {
		return Reading{}, err
	}
	events, err := LittleEndian(f[l.EventCount : l.EventCount+eventCountWidth])
	if err != nil {
		return Reading{}, err
	}
	return Reading{
		Occupied:           f[l.Status]&statusOccupiedMask != 0,
		BatteryVolts:       Volts(float64(batteryBase+int(LowNibble(f[l.Battery]))) / 10),
		TemperatureCelsius: int(f[l.Temperature]&temperatureMask) - temperatureOffset,
		TimeMinutes:        uint16(minutes),
		EventCount:         events,
	}, nil
}
