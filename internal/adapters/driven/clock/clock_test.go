package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
)

func TestSystem_Now(t *testing.T) {
	c := &System{now: func() time.Time {
		return time.Date(2024, 5, 1, 10, 0, 0, 123_000_000, time.FixedZone("CEST", 2*60*60))
	}}

	assert.Equal(t, "2024-05-01T10:00:00.123+02:00", c.Now())
}

func TestSystem_NowParses(t *testing.T) {
	_, err := time.Parse(time.RFC3339, NewSystem().Now())
	assert.NoError(t, err)
}

func TestFixed(t *testing.T) {
	c, err := NewFixed("2024-05-01T08:00:00Z")
	require.NoError(t, err)

	assert.Equal(t, "2024-05-01T08:00:00.000Z", c.Now())
	assert.Equal(t, c.Now(), c.Now())
}

func TestFixed_Invalid(t *testing.T) {
	_, err := NewFixed("yesterday")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNew(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &System{}, c)

	c, err = New("2024-05-01T08:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01T08:00:00.000+02:00", c.Now())
}
