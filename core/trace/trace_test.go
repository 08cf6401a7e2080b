package trace

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock(micros int64) func() time.Time {
	return func() time.Time {
		return time.UnixMicro(micros)
	}
}

func TestJSONLinesLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLinesLogger(&buf)
	logger.Now = fixedClock(1690000000000000)

	log := logger.Sessionless()
	assert.Nil(t, log.Record(&Exec{Path: "/bin/echo", Argv: []string{"echo", "hi"}}))
	assert.Nil(t, log.Record(&Wait{PID: 1, ExitStatus: 0}))

	want := `{"timestamp_micros":1690000000000000,"exec":{"path":"/bin/echo","argv":["echo","hi"]}}
{"timestamp_micros":1690000000000000,"wait":{"pid":1,"exit_status":0}}
`
	assert.Equal(t, want, buf.String())
}

func TestJSONLinesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLinesLogger(&buf)
	logger.Now = fixedClock(1234567)

	log := logger.NewSession()
	assert.Nil(t, log.Record(&ExecError{Argv0: "zzz", Error: "file not found"}))
	assert.Nil(t, log.Record(&Builtin{Name: "cd", Argv: []string{"cd", "/tmp"}}))
	assert.Nil(t, log.Record(&ParseError{Line: "echo >", Error: "syntax error"}))

	var entries []*Entry
	assert.Nil(t, ReadJSONLinesLog(&buf, func(le *Entry) {
		entries = append(entries, le)
	}))

	if !assert.Len(t, entries, 3) {
		return
	}
	assert.NotEmpty(t, entries[0].SessionID)
	assert.Equal(t, entries[0].SessionID, entries[1].SessionID)
	assert.Equal(t, int64(1234567), entries[0].TimestampMicros)

	assert.Equal(t, "zzz", entries[0].ExecError.Argv0)
	assert.Nil(t, entries[0].Builtin)
	assert.Equal(t, []string{"cd", "/tmp"}, entries[1].Builtin.Argv)
	assert.Equal(t, "syntax error", entries[2].ParseError.Error)
}

func TestReadJSONLinesLogBadInput(t *testing.T) {
	err := ReadJSONLinesLog(strings.NewReader("{\"timestamp_micros\": }\n"), func(le *Entry) {
		t.Error("handler must not run for malformed entries")
	})
	assert.Error(t, err)
}

func TestSessionIDs(t *testing.T) {
	logger := NewNopLogger()

	first := logger.NewSession()
	second := logger.NewSession()
	assert.NotEqual(t, first.sessionID, second.sessionID)
	assert.Empty(t, logger.Sessionless().sessionID)
}

func TestDiscard(t *testing.T) {
	assert.Nil(t, Discard().Record(&Wait{PID: 1}))
}
