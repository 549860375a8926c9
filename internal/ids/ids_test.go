package ids

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	var c Counter
	assert.Equal(t, "1", c.NextID())
	assert.Equal(t, "2", c.NextID())
	assert.Equal(t, "3", c.NextID())
}

func TestULIDIncreasesWithinOneMillisecond(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	g := NewULID(func() time.Time { return fixed }, bytes.NewReader(bytes.Repeat([]byte{7}, 1024)))

	prev := g.NextID()
	for i := 0; i < 50; i++ {
		next := g.NextID()
		require.Len(t, next, 26)
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestUUIDUnique(t *testing.T) {
	var g UUID
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := g.NextID()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		kind    string
		want    any
		wantErr error
	}{
		{kind: "counter", want: &Counter{}},
		{kind: "ULID", want: &ULID{}},
		{kind: "", want: &ULID{}},
		{kind: "uuid", want: UUID{}},
		{kind: "snowflake", wantErr: ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			g, err := New(tt.kind)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, g)
			assert.NotEmpty(t, g.NextID())
		})
	}
}
