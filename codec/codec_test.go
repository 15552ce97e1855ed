package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	t.Run("Known", func(t *testing.T) {
		c, ok := ByName("json")
		require.True(t, ok)
		assert.Equal(t, "json", c.Name())

		c, ok = ByName("go-json")
		require.True(t, ok)
		assert.Equal(t, "go-json", c.Name())
	})

	t.Run("Unknown", func(t *testing.T) {
		_, ok := ByName("msgpack")
		assert.False(t, ok)
	})
}

func TestRoundTrip(t *testing.T) {
	type payload struct {
		Label string   `json:"label"`
		Items []string `json:"items"`
	}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			in := payload{Label: "demo", Items: []string{"a", "b"}}

			data, err := c.Marshal(in)
			require.NoError(t, err)

			var out payload
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestUnmarshalStrict(t *testing.T) {
	type narrow struct {
		Label string `json:"label"`
	}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data := []byte(`{"label":"demo","items":["a"]}`)

			var loose narrow
			require.NoError(t, c.Unmarshal(data, &loose))
			assert.Equal(t, "demo", loose.Label)

			var strict narrow
			assert.Error(t, c.UnmarshalStrict(data, &strict))

			var exact narrow
			require.NoError(t, c.UnmarshalStrict([]byte(`{"label":"demo"}`), &exact))
			assert.Equal(t, "demo", exact.Label)
		})
	}
}

func TestCrossCodecCompatibility(t *testing.T) {
	// Both built-in codecs speak JSON; bytes written by one must decode
	// with the other.
	in := map[string]string{"uuid": "abc", "model": "Testing"}

	data := MustMarshal(GoJSON{}, in)

	var out map[string]string
	require.NoError(t, (JSON{}).Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			var out map[string]any
			assert.Error(t, c.Unmarshal([]byte("\x00\x01not json"), &out))
		})
	}
}

func TestMustMarshal(t *testing.T) {
	t.Run("NilCodecUsesDefault", func(t *testing.T) {
		data := MustMarshal(nil, map[string]string{"model": "Testing"})

		var out map[string]string
		require.NoError(t, Default.Unmarshal(data, &out))
		assert.Equal(t, "Testing", out["model"])
	})

	t.Run("PanicsOnUnmarshalableValue", func(t *testing.T) {
		assert.Panics(t, func() {
			MustMarshal(JSON{}, func() {})
		})
	})
}
