package session

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/isseis/go-ishmael/internal/codec"
	"github.com/isseis/go-ishmael/internal/corpus"
	"github.com/isseis/go-ishmael/internal/transcode"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCorpus(source string, n int) *corpus.Corpus {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("%s%05d", source, i)
	}
	return corpus.New(source, words)
}

func newTestSession(t *testing.T, opts Options) *Session {
	t.Helper()
	if opts.Chooser == nil {
		opts.Chooser = codec.NewChooser(7)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	}
	s := New(opts)
	require.NoError(t, s.Load(testCorpus("moby", 1290)))
	return s
}

func TestSession_NoWordlist(t *testing.T) {
	s := New(Options{})

	_, err := s.EncodeMessage("hi")
	assert.ErrorIs(t, err, ErrNoWordlist)
	_, err = s.DecodeFile("")
	assert.ErrorIs(t, err, ErrNoWordlist)
	assert.Equal(t, "", s.Wordlist())
	assert.ErrorIs(t, s.Load(nil), ErrNilCorpus)
}

func TestSession_MessageRoundTrip(t *testing.T) {
	s := newTestSession(t, Options{})

	msg := "Call me Ishmael.\tSome years ago - never mind how long precisely!"
	ciphertext, err := s.EncodeMessage(msg)
	require.NoError(t, err)
	assert.Len(t, codec.Split(ciphertext), len(msg))

	decoded, err := s.DecodeMessage(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, msg, decoded)
}

func TestSession_MessageUnknownSymbol(t *testing.T) {
	s := newTestSession(t, Options{})

	_, err := s.EncodeMessage("naïve")
	assert.ErrorIs(t, err, codec.ErrUnknownSymbol)
}

func TestSession_FileRoundTrip(t *testing.T) {
	s := newTestSession(t, Options{})

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: []byte{}},
		{name: "single byte", data: []byte{0x42}},
		{name: "binary", data: []byte{0x00, 0xff, 0x10, 0x80, 0x7f, 0x00}},
		{name: "text", data: []byte(strings.Repeat("whale ", 100))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ciphertext, err := s.EncodeFile(tt.data)
			require.NoError(t, err)
			assert.Len(t, codec.Split(ciphertext), len(transcode.ToText(tt.data)))

			got, err := s.DecodeFile(ciphertext)
			require.NoError(t, err)
			assert.Equal(t, tt.data, normalize(got))
		})
	}
}

func normalize(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

func TestSession_DecodeFileErrors(t *testing.T) {
	s := newTestSession(t, Options{})
	book, err := s.Codebook(ModeFile)
	require.NoError(t, err)

	_, err = s.DecodeFile("not-a-corpus-word")
	assert.ErrorIs(t, err, codec.ErrUnknownWord)

	// "abc" is three base64 symbols: a valid codec round trip, invalid base64 length.
	ciphertext, err := book.EncodeString("abc", codec.NewChooser(1))
	require.NoError(t, err)
	_, err = s.DecodeFile(ciphertext)
	assert.ErrorIs(t, err, transcode.ErrMalformedTranscoding)
}

func TestSession_WordlistMismatch(t *testing.T) {
	s := newTestSession(t, Options{})
	ciphertext, err := s.EncodeFile([]byte("secret"))
	require.NoError(t, err)

	other := newTestSession(t, Options{})
	require.NoError(t, other.Load(testCorpus("ahab", 1300)))

	_, err = other.DecodeFile(ciphertext)
	assert.ErrorIs(t, err, codec.ErrUnknownWord)
}

func TestSession_LoadReplacesTables(t *testing.T) {
	s := newTestSession(t, Options{})
	assert.Equal(t, "moby", s.Wordlist())

	before, err := s.EncodeMessage("ahoy")
	require.NoError(t, err)

	require.NoError(t, s.Load(testCorpus("pequod", 1300)))
	assert.Equal(t, "pequod", s.Wordlist())

	_, err = s.DecodeMessage(before)
	assert.ErrorIs(t, err, codec.ErrUnknownWord, "old ciphertext needs the old wordlist")

	after, err := s.EncodeMessage("ahoy")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(after, "pequod"))
}

func TestSession_FailedLoadKeepsPreviousTables(t *testing.T) {
	s := newTestSession(t, Options{})

	// 80 words split into too few chunks for either alphabet.
	err := s.Load(testCorpus("tiny", 80))
	require.ErrorIs(t, err, codec.ErrInsufficientWords)
	assert.Equal(t, "moby", s.Wordlist())

	_, err = s.EncodeMessage("still works")
	assert.NoError(t, err)
}

func TestSession_FileOnlyMode(t *testing.T) {
	s := New(Options{Modes: []Mode{ModeFile}, Chooser: codec.NewChooser(1)})
	require.NoError(t, s.Load(testCorpus("tiny", 65*2)))

	_, err := s.EncodeFile([]byte("ok"))
	require.NoError(t, err)

	_, err = s.EncodeMessage("no")
	assert.ErrorIs(t, err, ErrModeNotConfigured)
}

func TestSession_Stats(t *testing.T) {
	s := newTestSession(t, Options{})

	st, err := s.Stats(ModeMessage)
	require.NoError(t, err)
	assert.Equal(t, codec.Stats{Symbols: 100, Words: 1290, ChunkSize: 13, SmallestChunk: 3}, st)

	st, err = s.Stats(ModeFile)
	require.NoError(t, err)
	assert.Equal(t, codec.Stats{Symbols: 65, Words: 1290, ChunkSize: 20, SmallestChunk: 10}, st)
}

func TestSession_SeededChooserIsReproducible(t *testing.T) {
	a := newTestSession(t, Options{Chooser: codec.NewChooser(99)})
	b := newTestSession(t, Options{Chooser: codec.NewChooser(99)})

	first, err := a.EncodeFile([]byte("reproducible"))
	require.NoError(t, err)
	second, err := b.EncodeFile([]byte("reproducible"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSession_ConcurrentUseDuringReload(t *testing.T) {
	s := newTestSession(t, Options{})

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			book, err := s.Codebook(ModeMessage)
			if err != nil {
				errs <- err
				return
			}
			msg := fmt.Sprintf("message %d", i)
			ct, err := s.encode(book, msg)
			if err != nil {
				errs <- err
				return
			}
			got, err := book.DecodeString(ct)
			if err != nil {
				errs <- err
				return
			}
			if got != msg {
				errs <- fmt.Errorf("got %q, want %q", got, msg)
			}
		}()
	}
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Load(testCorpus(fmt.Sprintf("reload%d", i), 1300)); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "message", ModeMessage.String())
	assert.Equal(t, "file", ModeFile.String())
	assert.Equal(t, "mode(7)", Mode(7).String())
	assert.Equal(t, 65, ModeFile.Alphabet().Len())
	assert.Equal(t, 100, ModeMessage.Alphabet().Len())
}

func TestSession_LogsCarrySessionID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	s := New(Options{Logger: logger})
	require.NoError(t, s.Load(testCorpus("moby", 1290)))

	assert.Contains(t, buf.String(), "session_id="+s.ID().String())
	assert.Contains(t, buf.String(), "Wordlist loaded")
}

func TestSession_UsesGivenID(t *testing.T) {
	id := ulid.Make()
	s := New(Options{ID: id})
	assert.Equal(t, id, s.ID())
}

func TestSession_LoadWithOnlyFileModeAvailable(t *testing.T) {
	s := New(Options{Chooser: codec.NewChooser(5), Logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))})

	// 65 words give every base64 symbol one word but cannot cover 100 symbols.
	require.NoError(t, s.Load(testCorpus("small", 65)))
	assert.Equal(t, "small", s.Wordlist())

	ciphertext, err := s.EncodeFile([]byte("whale"))
	require.NoError(t, err)
	got, err := s.DecodeFile(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, []byte("whale"), got)

	_, err = s.EncodeMessage("whale")
	require.ErrorIs(t, err, codec.ErrInsufficientWords)
	var insufficient *codec.InsufficientWordsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 100, insufficient.Symbols)
	assert.Equal(t, 65, insufficient.Words)

	_, err = s.Stats(ModeMessage)
	assert.ErrorIs(t, err, codec.ErrInsufficientWords)
}

func TestSession_PartialLoadReplacesFullLoad(t *testing.T) {
	s := newTestSession(t, Options{})

	require.NoError(t, s.Load(testCorpus("small", 65)))

	_, err := s.EncodeMessage("ahoy")
	assert.ErrorIs(t, err, codec.ErrInsufficientWords, "message tables of the previous wordlist are dropped")
	assert.Equal(t, []Mode{ModeMessage, ModeFile}, s.Modes())
}
