package stream

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoderWritesOneLinePerFrame(t *testing.T) {
	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)

	require.NoError(t, encoder.WriteText("Hello"))
	require.NoError(t, encoder.WriteText(" world\nsecond line"))
	require.NoError(t, encoder.WriteFinish(FinishReasonStop))

	assert.Equal(t,
		"0:{\"content\":\"Hello\"}\n"+
			"0:{\"content\":\" world\\nsecond line\"}\n"+
			"d:{\"finishReason\":\"stop\"}\n",
		buffer.String(),
	)
}

type flushRecorder struct {
	bytes.Buffer
	flushes int
}

func (r *flushRecorder) Flush() {
	r.flushes++
}

func TestEncoderFlushesEveryFrame(t *testing.T) {
	recorder := &flushRecorder{}
	encoder := NewEncoder(recorder)

	require.NoError(t, encoder.WriteText("a"))
	require.NoError(t, encoder.WriteText("b"))

	assert.Equal(t, 2, recorder.flushes)
}

func TestReadTextAcrossChunkBoundaries(t *testing.T) {
	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, delta := range []string{"The ", "quick ", "brown ", "fox"} {
		require.NoError(t, encoder.WriteText(delta))
	}
	require.NoError(t, encoder.WriteFinish(FinishReasonStop))

	var deltas []string
	text, err := ReadText(iotest.OneByteReader(&buffer), func(delta string) {
		deltas = append(deltas, delta)
	})
	require.NoError(t, err)
	assert.Equal(t, "The quick brown fox", text)
	assert.Equal(t, []string{"The ", "quick ", "brown ", "fox"}, deltas)
}

func TestReadTextSkipsMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		`0:{"content":"one"}`,
		`garbage without prefix`,
		`0:{not json`,
		`0:`,
		`2:{"data":[1,2,3]}`,
		`0:{"content":""}`,
		`0:{"content":" two"}`,
	}, "\n")

	text, err := ReadText(strings.NewReader(input), nil)
	require.NoError(t, err)
	assert.Equal(t, "one two", text)
}

func TestReadTextReturnsErrorFrame(t *testing.T) {
	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	require.NoError(t, encoder.WriteText("partial"))
	require.NoError(t, encoder.WriteError("model unavailable"))
	require.NoError(t, encoder.WriteText("ignored"))

	text, err := ReadText(&buffer, nil)
	assert.Equal(t, "partial", text)

	var streamErr *Error
	require.True(t, errors.As(err, &streamErr))
	assert.Equal(t, "model unavailable", streamErr.Message)
}

func TestDecoderHandlesCRLF(t *testing.T) {
	decoder := NewDecoder(strings.NewReader("0:{\"content\":\"hi\"}\r\nd:{\"finishReason\":\"stop\"}\r\n"))

	frame, err := decoder.Next()
	require.NoError(t, err)
	assert.Equal(t, FrameText, frame.Type)
	assert.JSONEq(t, `{"content":"hi"}`, string(frame.Payload))

	frame, err = decoder.Next()
	require.NoError(t, err)
	assert.Equal(t, FrameFinish, frame.Type)

	_, err = decoder.Next()
	assert.ErrorIs(t, err, io.EOF)
}
