// Package stream implements the line-prefixed JSON chunk format used by the
// chat endpoint. Every frame is a single line "<type>:<json>\n".
package stream

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

const (
	FrameText   = "0"
	FrameError  = "3"
	FrameFinish = "d"

	ContentType = "text/plain; charset=utf-8"

	FinishReasonStop  = "stop"
	FinishReasonError = "error"

	maxLineSize = 1 << 20
)

type Frame struct {
	Type    string
	Payload json.RawMessage
}

type TextPayload struct {
	Content string `json:"content"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

type FinishPayload struct {
	FinishReason string `json:"finishReason"`
}

// Error is returned by ReadText when the server sent an error frame.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

type flusher interface {
	Flush()
}

type Encoder struct {
	writer io.Writer
}

func NewEncoder(writer io.Writer) *Encoder {
	return &Encoder{
		writer: writer,
	}
}

func (e *Encoder) WriteText(delta string) error {
	return e.writeFrame(FrameText, TextPayload{Content: delta})
}

func (e *Encoder) WriteError(message string) error {
	return e.writeFrame(FrameError, ErrorPayload{Error: message})
}

func (e *Encoder) WriteFinish(reason string) error {
	return e.writeFrame(FrameFinish, FinishPayload{FinishReason: reason})
}

func (e *Encoder) writeFrame(frameType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	line := make([]byte, 0, len(frameType)+len(data)+2)
	line = append(line, frameType...)
	line = append(line, ':')
	line = append(line, data...)
	line = append(line, '\n')

	if _, err := e.writer.Write(line); err != nil {
		return err
	}

	if f, ok := e.writer.(flusher); ok {
		f.Flush()
	}
	return nil
}

// Decoder reads frames regardless of how the underlying reader splits the
// byte stream. Lines without a type prefix or with an invalid JSON body are
// skipped.
type Decoder struct {
	scanner *bufio.Scanner
}

func NewDecoder(reader io.Reader) *Decoder {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Decoder{
		scanner: scanner,
	}
}

// Next returns the next well-formed frame or io.EOF at the end of input.
func (d *Decoder) Next() (Frame, error) {
	for d.scanner.Scan() {
		line := strings.TrimRight(d.scanner.Text(), "\r")

		separator := strings.IndexByte(line, ':')
		if separator <= 0 {
			continue
		}

		body := strings.TrimSpace(line[separator+1:])
		if body == "" || !json.Valid([]byte(body)) {
			continue
		}

		return Frame{
			Type:    line[:separator],
			Payload: json.RawMessage(body),
		}, nil
	}

	if err := d.scanner.Err(); err != nil {
		return Frame{}, err
	}
	return Frame{}, io.EOF
}

// ReadText consumes the stream and returns the concatenated text deltas.
// onDelta, when set, is called for every non-empty delta as it arrives.
// An error frame stops reading and is returned as *Error together with the
// text received so far.
func ReadText(reader io.Reader, onDelta func(string)) (string, error) {
	decoder := NewDecoder(reader)
	var text strings.Builder

	for {
		frame, err := decoder.Next()
		if errors.Is(err, io.EOF) {
			return text.String(), nil
		}
		if err != nil {
			return text.String(), err
		}

		switch frame.Type {
		case FrameText:
			var payload TextPayload
			if json.Unmarshal(frame.Payload, &payload) != nil || payload.Content == "" {
				continue
			}
			text.WriteString(payload.Content)
			if onDelta != nil {
				onDelta(payload.Content)
			}
		case FrameError:
			var payload ErrorPayload
			_ = json.Unmarshal(frame.Payload, &payload)
			return text.String(), &Error{Message: payload.Error}
		case FrameFinish:
			return text.String(), nil
		}
	}
}
