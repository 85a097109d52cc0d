// Package session holds the codebooks for the currently selected wordlist.
//
// A Session replaces its codebooks wholesale when a new wordlist is loaded.
// Each call works on the snapshot that was current when it started, so a
// reload never changes tables under an in-flight encode or decode.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/isseis/go-ishmael/internal/alphabet"
	"github.com/isseis/go-ishmael/internal/codec"
	"github.com/isseis/go-ishmael/internal/corpus"
	"github.com/isseis/go-ishmael/internal/transcode"
	"github.com/oklog/ulid/v2"
)

// Static errors for session operations
var (
	// ErrNoWordlist indicates an operation before any wordlist was loaded
	ErrNoWordlist = errors.New("no wordlist loaded")
	// ErrModeNotConfigured indicates an operation in a mode the session was not created for
	ErrModeNotConfigured = errors.New("mode not configured for this session")
	// ErrNilCorpus indicates Load was called without a corpus
	ErrNilCorpus = errors.New("corpus is nil")
)

// Mode selects which alphabet a session operation uses.
type Mode int

const (
	// ModeMessage encodes plain text over the extended alphabet
	ModeMessage Mode = iota
	// ModeFile encodes arbitrary bytes through base64 over the base64 alphabet
	ModeFile
)

func (m Mode) String() string {
	switch m {
	case ModeMessage:
		return "message"
	case ModeFile:
		return "file"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Alphabet returns the alphabet used by the mode.
func (m Mode) Alphabet() *alphabet.Alphabet {
	if m == ModeFile {
		return alphabet.Base64()
	}
	return alphabet.Extended()
}

// Options configures a Session.
type Options struct {
	// Modes lists the modes to build codebooks for. Defaults to both.
	Modes []Mode
	// Chooser picks words during encoding. Defaults to a randomly seeded chooser.
	Chooser codec.Chooser
	// Logger receives session events. Defaults to slog.Default().
	Logger *slog.Logger
	// ID identifies the session in logs. A new ULID is generated when zero.
	ID ulid.ULID
}

type snapshot struct {
	corpus *corpus.Corpus
	books  map[Mode]*codec.Codebook
	// failed holds the build error of every configured mode without a codebook
	failed map[Mode]error
}

// Session owns the codebooks for one operator session.
type Session struct {
	id     ulid.ULID
	modes  []Mode
	logger *slog.Logger

	current atomic.Pointer[snapshot]

	// chooserMu serializes access to chooser, which need not be goroutine safe.
	chooserMu sync.Mutex
	chooser   codec.Chooser
}

// New creates a session with no wordlist loaded.
func New(opts Options) *Session {
	modes := opts.Modes
	if len(modes) == 0 {
		modes = []Mode{ModeMessage, ModeFile}
	}
	chooser := opts.Chooser
	if chooser == nil {
		chooser = codec.NewRandomChooser()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	id := opts.ID
	if id == (ulid.ULID{}) {
		id = ulid.Make()
	}
	return &Session{
		id:      id,
		modes:   append([]Mode(nil), modes...),
		logger:  logger.With("session_id", id.String()),
		chooser: chooser,
	}
}

// ID returns the session identifier used to correlate log records.
func (s *Session) ID() ulid.ULID {
	return s.id
}

// Modes returns the modes the session builds codebooks for.
func (s *Session) Modes() []Mode {
	return append([]Mode(nil), s.modes...)
}

// Load builds codebooks for every configured mode from c and makes them
// current. A mode whose codebook cannot be built stays unavailable and
// Codebook reports its build error. Load fails only when no mode can be
// built, and then the previously loaded codebooks stay in place.
func (s *Session) Load(c *corpus.Corpus) error {
	if c == nil {
		return ErrNilCorpus
	}

	words := c.Words()
	books := make(map[Mode]*codec.Codebook, len(s.modes))
	failed := make(map[Mode]error)
	for _, mode := range s.modes {
		book, err := codec.Build(mode.Alphabet(), words)
		if err != nil {
			s.logger.Warn("Wordlist rejected", "source", c.Source(), "mode", mode.String(), "words", c.Len(), "error", err)
			failed[mode] = fmt.Errorf("building %s codebook from %s: %w", mode, c.Source(), err)
			continue
		}
		books[mode] = book

		st := book.Stats()
		s.logger.Debug("Codebook built", "mode", mode.String(), "symbols", st.Symbols,
			"chunk_size", st.ChunkSize, "smallest_chunk", st.SmallestChunk)
	}

	if len(books) == 0 {
		errs := make([]error, 0, len(failed))
		for _, mode := range s.modes {
			errs = append(errs, failed[mode])
		}
		return errors.Join(errs...)
	}

	s.current.Store(&snapshot{corpus: c, books: books, failed: failed})
	s.logger.Info("Wordlist loaded", "source", c.Source(), "words", c.Len())
	return nil
}

// Wordlist returns the source of the loaded corpus, or "" if none is loaded.
func (s *Session) Wordlist() string {
	snap := s.current.Load()
	if snap == nil {
		return ""
	}
	return snap.corpus.Source()
}

// Codebook returns the current codebook for mode.
func (s *Session) Codebook(mode Mode) (*codec.Codebook, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNoWordlist
	}
	if book, ok := snap.books[mode]; ok {
		return book, nil
	}
	if err, ok := snap.failed[mode]; ok {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s", ErrModeNotConfigured, mode)
}

// Stats reports the partition shape for mode.
func (s *Session) Stats(mode Mode) (codec.Stats, error) {
	book, err := s.Codebook(mode)
	if err != nil {
		return codec.Stats{}, err
	}
	return book.Stats(), nil
}

// EncodeMessage encodes a text message over the extended alphabet.
func (s *Session) EncodeMessage(message string) (string, error) {
	book, err := s.Codebook(ModeMessage)
	if err != nil {
		return "", err
	}
	ciphertext, err := s.encode(book, message)
	if err != nil {
		return "", err
	}
	s.logger.Debug("Message encoded", "symbols", len([]rune(message)))
	return ciphertext, nil
}

// DecodeMessage decodes a ciphertext produced by EncodeMessage.
func (s *Session) DecodeMessage(ciphertext string) (string, error) {
	book, err := s.Codebook(ModeMessage)
	if err != nil {
		return "", err
	}
	return book.DecodeString(ciphertext)
}

// EncodeFile encodes arbitrary bytes: base64 first, then word substitution.
func (s *Session) EncodeFile(data []byte) (string, error) {
	book, err := s.Codebook(ModeFile)
	if err != nil {
		return "", err
	}
	ciphertext, err := s.encode(book, transcode.ToText(data))
	if err != nil {
		return "", err
	}
	s.logger.Debug("File encoded", "bytes", len(data))
	return ciphertext, nil
}

// DecodeFile reverses EncodeFile and returns the original bytes.
func (s *Session) DecodeFile(ciphertext string) ([]byte, error) {
	book, err := s.Codebook(ModeFile)
	if err != nil {
		return nil, err
	}
	text, err := book.DecodeString(ciphertext)
	if err != nil {
		return nil, err
	}
	data, err := transcode.ToBytes(text)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("File decoded", "bytes", len(data))
	return data, nil
}

func (s *Session) encode(book *codec.Codebook, text string) (string, error) {
	s.chooserMu.Lock()
	defer s.chooserMu.Unlock()
	return book.EncodeString(text, s.chooser)
}
