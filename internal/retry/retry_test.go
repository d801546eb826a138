package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfgerrors "github.com/datashelf/shelf/internal/errors"
)

func TestDecodeNever(t *testing.T) {
	t.Parallel()

	// No further fields are consulted, even nonsensical ones.
	s, err := Decode(map[string]interface{}{
		"retry": "never",
		"delay": "not-a-duration",
	})
	require.NoError(t, err)
	assert.Equal(t, GiveUp{}, s)
	assert.Equal(t, KindNever, s.Kind())
}

func TestDecodeOnce(t *testing.T) {
	t.Parallel()

	s, err := Decode(map[string]interface{}{
		"retry": "once",
		"delay": "250ms",
	})
	require.NoError(t, err)
	assert.Equal(t, Once{Delay: 250 * time.Millisecond}, s)
}

func TestDecodeConstant(t *testing.T) {
	t.Parallel()

	s, err := Decode(map[string]interface{}{
		"retry":       "constant",
		"delay":       "1s",
		"max_retries": 5,
	})
	require.NoError(t, err)
	assert.Equal(t, Constant{Delay: time.Second, MaxRetries: 5}, s)
}

func TestDecodeExponential(t *testing.T) {
	t.Parallel()

	s, err := Decode(map[string]interface{}{
		"retry":       "exponential",
		"delay":       "100ms",
		"max_delay":   "10s",
		"max_retries": 8,
	})
	require.NoError(t, err)
	assert.Equal(t, Exponential{
		Delay:      100 * time.Millisecond,
		MaxDelay:   10 * time.Second,
		MaxRetries: 8,
	}, s)
}

func TestDecodeIgnoresFieldsOfUnselectedStrategies(t *testing.T) {
	t.Parallel()

	// max_delay belongs to exponential only; constant must not validate it.
	s, err := Decode(map[string]interface{}{
		"retry":       "constant",
		"delay":       "1s",
		"max_retries": 3,
		"max_delay":   "garbage",
	})
	require.NoError(t, err)
	assert.Equal(t, KindConstant, s.Kind())
}

func TestDecodeUnknownStrategy(t *testing.T) {
	t.Parallel()

	_, err := Decode(map[string]interface{}{"retry": "bogus"})
	var ude cfgerrors.UnknownDiscriminatorError
	require.ErrorAs(t, err, &ude)
	assert.Equal(t, "retry", ude.Field)
	assert.Equal(t, "bogus", ude.Value)
	assert.Equal(t, []string{"never", "once", "constant", "exponential"}, ude.Allowed)
}

func TestDecodeMissingDiscriminator(t *testing.T) {
	t.Parallel()

	_, err := Decode(map[string]interface{}{"delay": "1s"})
	var de cfgerrors.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "retry", de.Field)
}

func TestDecodeValidatesSelectedPayload(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		raw   map[string]interface{}
		field string
	}{
		{
			name:  "once without delay",
			raw:   map[string]interface{}{"retry": "once"},
			field: "delay",
		},
		{
			name:  "constant with zero retries",
			raw:   map[string]interface{}{"retry": "constant", "delay": "1s", "max_retries": 0},
			field: "max_retries",
		},
		{
			name:  "once with malformed duration",
			raw:   map[string]interface{}{"retry": "once", "delay": "soon"},
			field: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(tc.raw)
			var de cfgerrors.DecodeError
			require.ErrorAs(t, err, &de)
			if tc.field != "" {
				assert.Equal(t, tc.field, de.Field)
			}
		})
	}
}

func TestDecodeExponentialRejectsInvertedDelays(t *testing.T) {
	t.Parallel()

	_, err := Decode(map[string]interface{}{
		"retry":       "exponential",
		"delay":       "10s",
		"max_delay":   "1s",
		"max_retries": 3,
	})
	var ive cfgerrors.InvariantViolationError
	require.ErrorAs(t, err, &ive)
	assert.Equal(t, "max_delay", ive.Field)
}
