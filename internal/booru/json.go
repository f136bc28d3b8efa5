package booru

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON renders a Rating as its lowercase name.
func (r Rating) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON parses a Rating from its lowercase name.
func (r *Rating) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, ok := ParseRating(s)
	if !ok {
		return fmt.Errorf("booru: invalid rating %q", s)
	}
	*r = v
	return nil
}

// MarshalJSON renders a FileExt as its lowercase name.
func (e FileExt) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

// UnmarshalJSON parses a FileExt from its lowercase name.
func (e *FileExt) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, ok := ParseFileExt(s)
	if !ok {
		return fmt.Errorf("booru: invalid file extension %q", s)
	}
	*e = v
	return nil
}

// MarshalJSON renders a Status as its lowercase name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses a Status from its lowercase name.
func (s *Status) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	v, ok := ParseStatus(str)
	if !ok {
		return fmt.Errorf("booru: invalid status %q", str)
	}
	*s = v
	return nil
}

// MarshalJSON renders an OptionalID as a JSON number, or null when unset.
func (o OptionalID) MarshalJSON() ([]byte, error) {
	if !o.HasValue {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON parses an OptionalID from a JSON number or null.
func (o *OptionalID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = NoID
		return nil
	}
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = SomeID(v)
	return nil
}
