// Package sources holds the dashboard line producers: one adapter per
// upstream API plus the tariff evaluator.
package sources

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

const notAvailable = "N/A"

var errNotObject = errors.New("expected a json object")

// scalar accepts a JSON string or number and keeps its text as sent. APIs
// like wttr.in quote numbers while others do not; both render the same.
type scalar string

func (s *scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return errors.New("empty value")
	}
	switch b[0] {
	case '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = scalar(str)
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*s = scalar(n.String())
		return nil
	default:
		return fmt.Errorf("expected string or number, got %s", truncate(string(b), 32))
	}
}

func (s *scalar) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// entry is one key of a JSON object, kept in document order.
type entry struct {
	Key   string
	Value json.RawMessage
}

// orderedEntries walks a JSON object and returns its members in the order
// they appear, which a map decode would lose.
func orderedEntries(raw json.RawMessage) ([]entry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}

	var out []entry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", keyTok)
		}
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, fmt.Errorf("decode %q: %w", key, err)
		}
		out = append(out, entry{Key: key, Value: val})
	}
	return out, nil
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// trimQuery drops everything from the first '?' and any trailing slash.
func trimQuery(rawURL string) string {
	base, _, _ := strings.Cut(strings.TrimSpace(rawURL), "?")
	return strings.TrimRight(base, "/")
}
