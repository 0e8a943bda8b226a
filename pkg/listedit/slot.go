package listedit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-listedit/pkg/model"
)

const (
	// SlotLabelColumn holds the slot label (typically a date/time range).
	SlotLabelColumn = "label"
	// SlotLimitColumn holds the slot capacity as typed by the user.
	SlotLimitColumn = "limit"

	slotLabelPlaceholder = "5/31 (Thr) 5 ~ 5:30 pm"
	slotLimitPlaceholder = "1"
	defaultSlotCapacity  = 1
)

// Capacity is the number of seats of a slot. Invalid capacities come from
// input text that does not start with an integer; they encode as JSON null.
type Capacity struct {
	N     int
	Valid bool
}

// CapacityOf returns a valid capacity.
func CapacityOf(n int) Capacity {
	return Capacity{N: n, Valid: true}
}

// ParseCapacity reads a capacity the way a browser parseInt does: leading
// whitespace and an optional sign are accepted, digits are consumed until the
// first non-digit, and a 0x prefix switches to hexadecimal. Text without
// leading digits yields an invalid capacity.
func ParseCapacity(text string) Capacity {
	s := strings.TrimLeft(text, " \t\n\r\v\f")
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return Capacity{}
	}

	n, err := strconv.ParseInt(s[:end], base, strconv.IntSize)
	if err != nil {
		return Capacity{}
	}
	if negative {
		n = -n
	}
	return CapacityOf(int(n))
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	default:
		return false
	}
}

// String renders the capacity as input text. Invalid capacities render empty.
func (c Capacity) String() string {
	if !c.Valid {
		return ""
	}
	return strconv.Itoa(c.N)
}

func (c Capacity) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(c.N)), nil
}

// UnmarshalJSON accepts integers, null, fractional numbers (truncated) and
// numeric strings.
func (c *Capacity) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*c = Capacity{}
		return nil
	}

	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*c = ParseCapacity(text)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return fmt.Errorf("capacity must be a number: %w", err)
	}
	if n, err := strconv.ParseInt(number.String(), 10, strconv.IntSize); err == nil {
		*c = CapacityOf(int(n))
		return nil
	}
	f, err := number.Float64()
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("capacity must be a number: %w", err)
	}
	*c = capacityFromFloat(f)
	return nil
}

// capacityFromFloat truncates f; values outside the int range are invalid.
func capacityFromFloat(f float64) Capacity {
	f = math.Trunc(f)
	if math.IsNaN(f) || f < math.MinInt || f >= -float64(math.MinInt) {
		return Capacity{}
	}
	return CapacityOf(int(f))
}

// Slot is one signup slot: a label and its capacity.
type Slot struct {
	Label    string
	Capacity Capacity
}

// NewSlot returns a slot with a valid capacity.
func NewSlot(label string, capacity int) Slot {
	return Slot{Label: label, Capacity: CapacityOf(capacity)}
}

// MarshalJSON encodes the slot as a ["label", capacity] pair.
func (s Slot) MarshalJSON() ([]byte, error) {
	return marshalJSON([]any{s.Label, s.Capacity})
}

func (s *Slot) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("slot must be a [label, capacity] pair: %w", err)
	}

	var slot Slot
	if len(parts) > 0 {
		var label *string
		if err := json.Unmarshal(parts[0], &label); err != nil {
			return fmt.Errorf("slot label must be a string: %w", err)
		}
		if label != nil {
			slot.Label = *label
		}
	}
	if len(parts) > 1 {
		if err := slot.Capacity.UnmarshalJSON(parts[1]); err != nil {
			return err
		}
	}
	*s = slot
	return nil
}

type slotStrategy struct{}

// Slots returns the strategy for capacity slot lists.
func Slots() Strategy[Slot] {
	return slotStrategy{}
}

// NewSlots builds a slot editor from an initial JSON payload such as
// [["5/31 5pm", 2]].
func NewSlots(cfg Config, initialJSON string) (*Editor[Slot], error) {
	return New(Slots(), cfg, initialJSON)
}

func (slotStrategy) Kind() string {
	return model.KindSlot
}

func (slotStrategy) Columns(string) []model.Column {
	return []model.Column{
		{
			Key:         SlotLabelColumn,
			Class:       "slot_name",
			InputType:   "text",
			Placeholder: slotLabelPlaceholder,
			Suffix:      " with ",
		},
		{
			Key:              SlotLimitColumn,
			Class:            "slot_limit",
			InputType:        "text",
			InputMode:        "numeric",
			Placeholder:      slotLimitPlaceholder,
			Suffix:           " slots",
			ReadOnlyDisabled: true,
		},
	}
}

func (slotStrategy) Blank() Slot {
	return NewSlot("", defaultSlotCapacity)
}

func (slotStrategy) Format(value Slot) []string {
	return []string{value.Label, value.Capacity.String()}
}

func (slotStrategy) Parse(texts []string) Slot {
	return Slot{
		Label:    textAt(texts, 0),
		Capacity: ParseCapacity(textAt(texts, 1)),
	}
}
