package orders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

const (
	MinQuantity = 1
	MaxQuantity = 10
)

// Issue codes reported in FieldIssue.Code.
const (
	CodeRequired       = "required"
	CodeInvalidType    = "invalid_type"
	CodeTooSmall       = "too_small"
	CodeTooBig         = "too_big"
	CodeEmptySelection = "EmptySelection"
)

type FieldIssue struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed, not just the first one.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Path == "" {
			parts = append(parts, is.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", is.Path, is.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the distinct failing paths in report order.
func (e *ValidationError) Fields() []string {
	seen := make(map[string]bool, len(e.Issues))
	out := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if !seen[is.Path] {
			seen[is.Path] = true
			out = append(out, is.Path)
		}
	}
	return out
}

func (e *ValidationError) add(path, code, msg string) {
	e.Issues = append(e.Issues, FieldIssue{Path: path, Code: code, Message: msg})
}

func (e *ValidationError) orNil() error {
	if len(e.Issues) == 0 {
		return nil
	}
	return e
}

// DecodeCreateOrder checks an untrusted JSON body against the order contract.
// Only hostel, room, quantity and flavors are looked at; other keys are ignored.
func DecodeCreateOrder(raw []byte) (CreateOrderInput, error) {
	var in CreateOrderInput
	verr := &ValidationError{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		verr.add("", CodeInvalidType, "Expected object")
		return in, verr
	}

	if s, ok := decodeString(verr, fields, "hostel"); ok {
		in.Hostel = s
		checkHostel(verr, s)
	}
	if s, ok := decodeString(verr, fields, "room"); ok {
		in.Room = s
		checkRoom(verr, s)
	}
	if n, ok := decodeInt(verr, fields, "quantity"); ok {
		in.Quantity = n
		checkQuantity(verr, n)
	}
	if fl, ok := decodeStrings(verr, fields, "flavors"); ok {
		in.Flavors = fl
		checkFlavors(verr, fl)
	}

	if err := verr.orNil(); err != nil {
		return CreateOrderInput{}, err
	}
	return in, nil
}

// Validate applies the same rules as DecodeCreateOrder to an already typed input.
func (in CreateOrderInput) Validate() error {
	verr := &ValidationError{}
	checkHostel(verr, in.Hostel)
	checkRoom(verr, in.Room)
	checkQuantity(verr, in.Quantity)
	checkFlavors(verr, in.Flavors)
	return verr.orNil()
}

func checkHostel(verr *ValidationError, s string) {
	if s == "" {
		verr.add("hostel", CodeTooSmall, "Hostel name is required")
	}
}

func checkRoom(verr *ValidationError, s string) {
	if s == "" {
		verr.add("room", CodeTooSmall, "Room number is required")
	}
}

func checkQuantity(verr *ValidationError, n int) {
	switch {
	case n < MinQuantity:
		verr.add("quantity", CodeTooSmall, fmt.Sprintf("Number must be greater than or equal to %d", MinQuantity))
	case n > MaxQuantity:
		verr.add("quantity", CodeTooBig, fmt.Sprintf("Number must be less than or equal to %d", MaxQuantity))
	}
}

func checkFlavors(verr *ValidationError, fl []string) {
	if len(fl) == 0 {
		verr.add("flavors", CodeEmptySelection, "Please select at least one flavor")
	}
}

func kindOf(raw json.RawMessage) string {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 {
		return "undefined"
	}
	switch b[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

// lookup reports a required issue when key is missing or null.
func lookup(verr *ValidationError, fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := fields[key]
	if !ok || kindOf(raw) == "null" {
		verr.add(key, CodeRequired, "Required")
		return nil, false
	}
	return raw, true
}

func decodeString(verr *ValidationError, fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := lookup(verr, fields, key)
	if !ok {
		return "", false
	}
	var s string
	if k := kindOf(raw); k != "string" || json.Unmarshal(raw, &s) != nil {
		verr.add(key, CodeInvalidType, "Expected string, received "+k)
		return "", false
	}
	return s, true
}

func decodeInt(verr *ValidationError, fields map[string]json.RawMessage, key string) (int, bool) {
	raw, ok := lookup(verr, fields, key)
	if !ok {
		return 0, false
	}
	if k := kindOf(raw); k != "number" {
		verr.add(key, CodeInvalidType, "Expected number, received "+k)
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		verr.add(key, CodeInvalidType, "Expected number, received malformed value")
		return 0, false
	}
	if f != math.Trunc(f) {
		verr.add(key, CodeInvalidType, "Expected integer, received float")
		return 0, false
	}
	// clamp keeps huge values reportable as too_big without overflowing int
	if f > math.MaxInt32 {
		f = math.MaxInt32
	} else if f < math.MinInt32 {
		f = math.MinInt32
	}
	return int(f), true
}

func decodeStrings(verr *ValidationError, fields map[string]json.RawMessage, key string) ([]string, bool) {
	raw, ok := lookup(verr, fields, key)
	if !ok {
		return nil, false
	}
	if k := kindOf(raw); k != "array" {
		verr.add(key, CodeInvalidType, "Expected array, received "+k)
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		verr.add(key, CodeInvalidType, "Expected array, received malformed value")
		return nil, false
	}
	out := make([]string, 0, len(items))
	valid := true
	for i, it := range items {
		var s string
		if k := kindOf(it); k != "string" || json.Unmarshal(it, &s) != nil {
			verr.add(fmt.Sprintf("%s[%d]", key, i), CodeInvalidType, "Expected string, received "+k)
			valid = false
			continue
		}
		out = append(out, s)
	}
	return out, valid
}
