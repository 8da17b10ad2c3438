package id

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWithPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"session", SessionPrefix},
		{"request", RequestPrefix},
	}

	gen := NewGenerator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gen.GenerateWithPrefix(tt.prefix)
			assert.True(t, strings.HasPrefix(got, tt.prefix+"_"))
			assert.Len(t, got, len(tt.prefix)+1+26)
		})
	}
}

func TestTypedIDs(t *testing.T) {
	sess := NewSessionID()
	req := NewRequestID()
	conn := NewConnectionID()

	assert.True(t, strings.HasPrefix(sess.String(), "sess_"))
	assert.True(t, strings.HasPrefix(req.String(), "req_"))
	assert.True(t, strings.HasPrefix(conn.String(), "conn_"))
	assert.Len(t, conn.String(), len("conn_")+36)
	assert.NotEqual(t, conn, NewConnectionID())
}

func TestParseSessionID(t *testing.T) {
	sess := NewSessionID()
	parsed, err := ParseSessionID(sess.String())
	require.NoError(t, err)
	assert.Equal(t, sess, parsed)

	for _, bad := range []string{"", "sess_", "req_01ARZ3NDEKTSV4RRFFQ69G5FAV", "sess_not-a-ulid", "01ARZ3NDEKTSV4RRFFQ69G5FAV"} {
		_, err := ParseSessionID(bad)
		assert.Error(t, err, bad)
	}
}

func TestTimestamp(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	gen := NewGeneratorWithEntropy(rand.New(rand.NewSource(1)), func() time.Time { return at })

	ts, err := Timestamp(gen.GenerateWithPrefix(SessionPrefix))
	require.NoError(t, err)
	assert.True(t, at.Equal(ts))

	_, err = Timestamp("sess_garbage")
	assert.Error(t, err)
}

func TestMonotonicOrdering(t *testing.T) {
	gen := NewGenerator()

	ids := make([]string, 200)
	for i := range ids {
		ids[i] = gen.GenerateWithPrefix(SessionPrefix)
	}
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()

	var mu sync.Mutex
	seen := make(map[string]struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s := gen.GenerateWithPrefix(RequestPrefix)
				mu.Lock()
				seen[s] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 800)
}

func BenchmarkGenerateWithPrefix(b *testing.B) {
	gen := NewGenerator()
	for i := 0; i < b.N; i++ {
		_ = gen.GenerateWithPrefix(SessionPrefix)
	}
}
