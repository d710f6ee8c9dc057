package transcription

import (
	"context"
	"errors"
	"io"
)

// ErrTranscriptionFailed indicates the speech-to-text call did not produce a
// result. Match with errors.Is; the wrapped cause carries the detail.
var ErrTranscriptionFailed = errors.New("transcription failed")

// Provider converts an audio stream into plain text. Implementations are
// blocking; callers bound them with a context deadline and keep them off the
// update-dispatch path.
type Provider interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}
