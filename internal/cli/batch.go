package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/isseis/go-ishmael/internal/corpus"
	"github.com/isseis/go-ishmael/internal/session"
)

// Direction selects what a batch job does.
type Direction int

const (
	// DirectionEncode turns a file into ciphertext
	DirectionEncode Direction = iota + 1
	// DirectionDecode turns ciphertext back into the original file
	DirectionDecode
)

// ErrInvalidDirection is returned for a job with no direction set.
var ErrInvalidDirection = errors.New("batch job needs exactly one of encode or decode")

func (d Direction) String() string {
	switch d {
	case DirectionEncode:
		return "encode"
	case DirectionDecode:
		return "decode"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// BatchJob is one non-interactive encode or decode.
type BatchJob struct {
	Direction Direction
	Wordlist  string
	Input     string
	Output    string
	Force     bool
}

// RunBatch loads the job's wordlist into sess and transforms Input into
// Output. Nothing is retried.
func RunBatch(sess *session.Session, job BatchJob, logger *slog.Logger) error {
	if job.Direction != DirectionEncode && job.Direction != DirectionDecode {
		return ErrInvalidDirection
	}
	if logger == nil {
		logger = slog.Default()
	}

	c, err := corpus.Load(job.Wordlist)
	if err != nil {
		return fmt.Errorf("loading wordlist: %w", err)
	}
	if err := sess.Load(c); err != nil {
		return fmt.Errorf("loading wordlist %s: %w", job.Wordlist, err)
	}

	files := &FileCodec{Session: sess, Logger: logger, Force: job.Force}
	logger.Debug("Batch job starting", "direction", job.Direction.String(), "input", job.Input, "output", job.Output)

	if job.Direction == DirectionEncode {
		err = files.Encode(job.Input, job.Output)
	} else {
		err = files.Decode(job.Input, job.Output)
	}
	if err != nil {
		return err
	}
	logger.Info("Batch job finished", "direction", job.Direction.String(), "output", job.Output)
	return nil
}
