package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// AnswerKind discriminates the value carried by an Answer.
type AnswerKind string

const (
	AnswerText   AnswerKind = "text"
	AnswerList   AnswerKind = "list"
	AnswerNumber AnswerKind = "number"
)

// Answer is the typed value a user submits for one question.
// It is a tagged variant over string, string list and number; the engine
// never interprets free text semantically.
type Answer struct {
	Kind   AnswerKind
	Text   string
	List   []string
	Number float64
}

// TextAnswer wraps a plain string value.
func TextAnswer(s string) Answer {
	return Answer{Kind: AnswerText, Text: s}
}

// ListAnswer wraps an ordered list of selected values.
func ListAnswer(vs ...string) Answer {
	return Answer{Kind: AnswerList, List: vs}
}

// NumberAnswer wraps a numeric value.
func NumberAnswer(n float64) Answer {
	return Answer{Kind: AnswerNumber, Number: n}
}

// AnswerFromAny converts a decoded JSON value (string, []any, float64)
// into a typed Answer.
func AnswerFromAny(v any) (Answer, error) {
	switch t := v.(type) {
	case string:
		return TextAnswer(t), nil
	case float64:
		return NumberAnswer(t), nil
	case int:
		return NumberAnswer(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Answer{}, fmt.Errorf("%w: %v", ErrInvalidAnswer, err)
		}
		return NumberAnswer(f), nil
	case []string:
		return ListAnswer(t...), nil
	case []any:
		list := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return Answer{}, fmt.Errorf("%w: list answers must contain only strings, got %T", ErrInvalidAnswer, item)
			}
			list = append(list, s)
		}
		return ListAnswer(list...), nil
	case nil:
		return Answer{}, fmt.Errorf("%w: answer is required", ErrInvalidAnswer)
	default:
		return Answer{}, fmt.Errorf("%w: unsupported answer type %T", ErrInvalidAnswer, v)
	}
}

// IsZero reports whether the answer carries no value at all.
func (a Answer) IsZero() bool {
	return a.Kind == ""
}

// Value returns the underlying Go value (string, []string or float64).
func (a Answer) Value() any {
	switch a.Kind {
	case AnswerList:
		return a.List
	case AnswerNumber:
		return a.Number
	default:
		return a.Text
	}
}

// String renders the answer for message history and fallback rendering.
func (a Answer) String() string {
	switch a.Kind {
	case AnswerList:
		out := ""
		for i, v := range a.List {
			if i > 0 {
				out += ", "
			}
			out += v
		}
		return out
	case AnswerNumber:
		return strconv.FormatFloat(a.Number, 'f', -1, 64)
	default:
		return a.Text
	}
}

// AsNumber attempts a numeric reading of the answer. Text answers are
// parsed; list answers never convert.
func (a Answer) AsNumber() (float64, bool) {
	switch a.Kind {
	case AnswerNumber:
		return a.Number, true
	case AnswerText:
		f, err := strconv.ParseFloat(a.Text, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Matches reports whether the answer selects the given option value.
// Text answers match by exact equality; list answers match when the value
// is among the selected entries.
func (a Answer) Matches(optionValue string) bool {
	switch a.Kind {
	case AnswerText:
		return a.Text == optionValue
	case AnswerList:
		for _, v := range a.List {
			if v == optionValue {
				return true
			}
		}
	}
	return false
}

// MarshalJSON encodes the bare underlying value.
func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Value())
}

// UnmarshalJSON decodes a bare JSON value into the matching variant.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := AnswerFromAny(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
