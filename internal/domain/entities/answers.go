package entities

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var errUnsupportedAnswer = errors.New("answer must be a string, number, boolean, or list of those")

// Answer is a recorded answer: either a single value or a multi-select list.
type Answer struct {
	Values []string
	Multi  bool
}

// SingleAnswer builds a single-value answer.
func SingleAnswer(v string) Answer {
	return Answer{Values: []string{v}}
}

// MultiAnswer builds a multi-select answer.
func MultiAnswer(vs ...string) Answer {
	return Answer{Values: vs, Multi: true}
}

// IsEmpty reports whether no non-blank value was recorded.
func (a Answer) IsEmpty() bool {
	return len(a.NonEmptyValues()) == 0
}

// NonEmptyValues returns the values that are not blank.
func (a Answer) NonEmptyValues() []string {
	out := make([]string, 0, len(a.Values))
	for _, v := range a.Values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Multi {
		values := a.Values
		if values == nil {
			values = []string{}
		}
		return json.Marshal(values)
	}
	if len(a.Values) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(a.Values[0])
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Answer{}
		return nil
	}
	if data[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		values := make([]string, 0, len(items))
		for _, item := range items {
			v, err := scalarString(item)
			if err != nil {
				return err
			}
			values = append(values, v)
		}
		*a = Answer{Values: values, Multi: true}
		return nil
	}
	v, err := scalarString(data)
	if err != nil {
		return err
	}
	*a = SingleAnswer(v)
	return nil
}

func scalarString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", errUnsupportedAnswer
	}
	// numbers and booleans keep their literal text
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}
	return string(raw), nil
}

// Answers maps question id to the recorded answer.
type Answers map[string]Answer

// For returns the answer recorded for a question id.
func (a Answers) For(id uuid.UUID) (Answer, bool) {
	ans, ok := a[id.String()]
	return ans, ok
}

// Merge returns a copy of a overlaid with next.
func (a Answers) Merge(next Answers) Answers {
	out := make(Answers, len(a)+len(next))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range next {
		out[k] = v
	}
	return out
}
