package design

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// DescriptorKind tells which JSON shape an ImageDescriptor was decoded from.
type DescriptorKind int

const (
	// DescriptorURL is a bare JSON string holding the image URL.
	DescriptorURL DescriptorKind = iota
	// DescriptorObject is a JSON object with a "url" field.
	DescriptorObject
)

func (k DescriptorKind) String() string {
	switch k {
	case DescriptorURL:
		return "url"
	case DescriptorObject:
		return "object"
	default:
		return "unknown"
	}
}

// ImageDescriptor is one element of the image service response. The service
// sends either a plain URL string or an object exposing "url"; both are
// normalized here, once, at ingestion.
type ImageDescriptor struct {
	Kind DescriptorKind
	URL  string
	// ID is the server id of an object descriptor, if it had one.
	ID string
}

type objectDescriptor struct {
	URL     string          `json:"url"`
	ID      json.RawMessage `json:"id"`
	MongoID json.RawMessage `json:"_id"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *ImageDescriptor) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty image descriptor")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode url descriptor: %w", err)
		}
		if s == "" {
			return fmt.Errorf("image descriptor has an empty url")
		}
		*d = ImageDescriptor{Kind: DescriptorURL, URL: s}
		return nil
	case '{':
		var obj objectDescriptor
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("decode object descriptor: %w", err)
		}
		if obj.URL == "" {
			return fmt.Errorf("image descriptor object has no url field")
		}
		id, err := rawID(obj.ID)
		if err != nil {
			return err
		}
		if id == "" {
			if id, err = rawID(obj.MongoID); err != nil {
				return err
			}
		}
		*d = ImageDescriptor{Kind: DescriptorObject, URL: obj.URL, ID: id}
		return nil
	default:
		return fmt.Errorf("image descriptor must be a string or an object, got %s", truncateJSON(data))
	}
}

// MarshalJSON writes the descriptor back in the shape it was read from.
func (d ImageDescriptor) MarshalJSON() ([]byte, error) {
	if d.Kind == DescriptorURL {
		return json.Marshal(d.URL)
	}
	obj := struct {
		URL string `json:"url"`
		ID  string `json:"id,omitempty"`
	}{URL: d.URL, ID: d.ID}
	return json.Marshal(obj)
}

// rawID accepts string and numeric ids.
func rawID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decode descriptor id: %w", err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("descriptor id must be a string or number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return n.String(), nil
}

func truncateJSON(data []byte) string {
	const limit = 40
	if len(data) > limit {
		return string(data[:limit]) + "..."
	}
	return string(data)
}
