// internal/printer/status.go
package printer

// Status is the closed set of printer states the watcher reasons about.
// Every state the firmware can report maps to exactly one value here;
// transport failures get their own value so they are never confused
// with a real printer state.
type Status int

const (
	// StatusUnknown is a decoded but unrecognized status code.
	StatusUnknown Status = iota

	// StatusQueryFailed means the status query itself failed.
	// It is not a printer state and must never drive transitions.
	StatusQueryFailed

	StatusIdle
	StatusPrinting
	StatusFlashingFirmware
	StatusHalted
	StatusPausing
	StatusPaused
	StatusResuming
	StatusSimulating
	StatusBusy
	StatusChangingTool
)

// ---- STATUS CODE TABLE ----

// Single-letter codes reported by rr_status. This table is
// firmware-defined and MUST NOT be configurable.
var codeTable = map[string]Status{
	"I": StatusIdle,
	"P": StatusPrinting,
	"F": StatusFlashingFirmware,
	"H": StatusHalted,
	"D": StatusPausing,
	"S": StatusPaused,
	"R": StatusResuming,
	"M": StatusSimulating,
	"B": StatusBusy,
	"T": StatusChangingTool,
}

// ParseCode maps a raw status code to a Status.
// Unrecognized codes map to StatusUnknown, never an error.
func ParseCode(code string) Status {
	if s, ok := codeTable[code]; ok {
		return s
	}
	return StatusUnknown
}

// String returns the human-readable description used in status lines.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusPrinting:
		return "Printing"
	case StatusFlashingFirmware:
		return "Flashing firmware"
	case StatusHalted:
		return "Halted"
	case StatusPausing:
		return "Pausing"
	case StatusPaused:
		return "Paused"
	case StatusResuming:
		return "Resuming"
	case StatusSimulating:
		return "Simulating"
	case StatusBusy:
		return "Busy"
	case StatusChangingTool:
		return "Changing tool"
	case StatusQueryFailed:
		return "Query failed"
	default:
		return "Unknown"
	}
}

// Report is the immutable result of one status query.
type Report struct {
	Status Status

	// Code is the raw status letter as reported, kept for diagnostics.
	Code string

	// ZHeight is the last element of the reported coordinate triple.
	// Valid only when HasZ is true.
	ZHeight float64
	HasZ    bool
}
