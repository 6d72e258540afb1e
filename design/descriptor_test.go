package design

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageDescriptorUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ImageDescriptor
		wantErr string
	}{
		{
			name:  "bare url",
			input: `"https://cdn.example/k.png"`,
			want:  ImageDescriptor{Kind: DescriptorURL, URL: "https://cdn.example/k.png"},
		},
		{
			name:  "object with string id",
			input: `{"url": "https://cdn.example/k.png", "id": "abc"}`,
			want:  ImageDescriptor{Kind: DescriptorObject, URL: "https://cdn.example/k.png", ID: "abc"},
		},
		{
			name:  "object with mongo id",
			input: `{"url": "https://cdn.example/k.png", "_id": "65f0"}`,
			want:  ImageDescriptor{Kind: DescriptorObject, URL: "https://cdn.example/k.png", ID: "65f0"},
		},
		{
			name:  "object without id",
			input: `{"url": "https://cdn.example/k.png", "size": 3}`,
			want:  ImageDescriptor{Kind: DescriptorObject, URL: "https://cdn.example/k.png"},
		},
		{
			name:    "object without url",
			input:   `{"id": 1}`,
			wantErr: "no url",
		},
		{
			name:    "empty string",
			input:   `""`,
			wantErr: "empty url",
		},
		{
			name:    "number",
			input:   `42`,
			wantErr: "string or an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d ImageDescriptor
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestImageDescriptorMarshalKeepsShape(t *testing.T) {
	out, err := json.Marshal([]ImageDescriptor{
		{Kind: DescriptorURL, URL: "u1"},
		{Kind: DescriptorObject, URL: "u2", ID: "x"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `["u1", {"url": "u2", "id": "x"}]`, string(out))
}
