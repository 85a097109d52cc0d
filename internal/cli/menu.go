package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/isseis/go-ishmael/internal/color"
	"github.com/isseis/go-ishmael/internal/corpus"
	"github.com/isseis/go-ishmael/internal/session"
)

// Menu choices
const (
	choiceEncodeMessage = iota + 1
	choiceDecodeMessage
	choiceEncodeFile
	choiceDecodeFile
	choiceChangeWordlist
	choiceQuit
)

var menuItems = []string{
	"Encode a message",
	"Decode a message",
	"Encode a file",
	"Decode a file",
	"Change wordlist",
	"Quit",
}

// MenuOptions configures the interactive menu.
type MenuOptions struct {
	Session  *session.Session
	In       io.Reader
	Out      io.Writer
	Logger   *slog.Logger
	Retry    RetryPolicy
	Force    bool   // Overwrite existing save paths
	Wordlist string // Loaded before the first prompt when set
	Color    bool   // Use ANSI colors for errors and results
}

// Menu is the interactive front end.
type Menu struct {
	session  *session.Session
	prompter *Prompter
	files    *FileCodec
	logger   *slog.Logger
	retry    RetryPolicy
	palette  color.Palette
	wordlist string
}

// NewMenu creates a menu.
func NewMenu(opts MenuOptions) *Menu {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Menu{
		session:  opts.Session,
		prompter: NewPrompter(opts.In, opts.Out),
		files:    &FileCodec{Session: opts.Session, Logger: logger, Force: opts.Force},
		logger:   logger,
		retry:    opts.Retry,
		palette:  color.NewPalette(opts.Color),
		wordlist: opts.Wordlist,
	}
}

// Run shows the menu until the operator quits or input ends. Failures of
// individual actions are reported and the menu is shown again; only input
// errors end the loop with an error.
func (m *Menu) Run() error {
	m.prompter.Say("To encode or decode a message a word list is required. A longer list gives better results.")
	m.prompter.Say("Decoding requires the same word list that was used to encode. Ex. the full text of Moby Dick; or, The Whale")

	if err := m.loadInitialWordlist(); err != nil {
		return ignoreEOF(err)
	}

	for {
		choice, err := m.askChoice()
		if err != nil {
			if errors.Is(err, ErrNotANumber) || errors.Is(err, ErrInvalidChoice) {
				m.prompter.Say("%s", m.palette.Error(err.Error()))
				continue
			}
			return ignoreEOF(err)
		}
		if choice == choiceQuit {
			return nil
		}

		if err := m.dispatch(choice); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			m.logger.Debug("Menu action failed", "choice", choice, "error", err)
			m.sayError(err)
		}
	}
}

func (m *Menu) loadInitialWordlist() error {
	if m.wordlist != "" {
		err := m.loadWordlist(m.wordlist)
		if err == nil {
			return nil
		}
		m.sayError(err)
	}
	err := m.changeWordlist()
	if err != nil && !errors.Is(err, io.EOF) {
		m.sayError(err)
		m.prompter.Say("%s", m.palette.Notice(fmt.Sprintf("Choose %d to load a word list.", choiceChangeWordlist)))
		return nil
	}
	return err
}

func (m *Menu) askChoice() (int, error) {
	m.prompter.Say("%s", strings.TrimSuffix(MenuText(), "\n"))
	answer, err := m.prompter.Ask("Please enter your choice: ")
	if err != nil {
		return 0, err
	}
	choice, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 0, ErrNotANumber
	}
	if choice < 1 || choice > len(menuItems) {
		return 0, ErrInvalidChoice
	}
	return choice, nil
}

func (m *Menu) dispatch(choice int) error {
	switch choice {
	case choiceEncodeMessage:
		return m.encodeMessage()
	case choiceDecodeMessage:
		return m.decodeMessage()
	case choiceEncodeFile:
		return m.encodeFile()
	case choiceDecodeFile:
		return m.decodeFile()
	case choiceChangeWordlist:
		return m.changeWordlist()
	default:
		return ErrInvalidChoice
	}
}

func (m *Menu) encodeMessage() error {
	message, err := m.prompter.Ask("Please enter the message to be encoded: ")
	if err != nil {
		return err
	}
	ciphertext, err := m.session.EncodeMessage(message)
	if err != nil {
		return err
	}
	m.prompter.Say("Your encoded message is....")
	m.prompter.Say("%s", m.palette.Result(ciphertext))
	return nil
}

func (m *Menu) decodeMessage() error {
	ciphertext, err := m.prompter.Ask("Enter in your cipher text: ")
	if err != nil {
		return err
	}
	message, err := m.session.DecodeMessage(ciphertext)
	if err != nil {
		return err
	}
	m.prompter.Say("Your decoded message is...")
	m.prompter.Say("%s", m.palette.Result(message))
	return nil
}

func (m *Menu) encodeFile() error {
	var src string
	var data []byte
	err := m.retry.Do(func(_ int) error {
		var err error
		if src, err = m.prompter.Ask("Enter the path for the file to be encoded: "); err != nil {
			return err
		}
		data, err = m.files.Read(src)
		return m.reportMissing(err)
	})
	if err != nil {
		return err
	}

	ciphertext, err := m.files.EncodeBytes(src, data)
	if err != nil {
		return err
	}
	return m.save("Enter the path to save the encoded data: ", []byte(ciphertext))
}

func (m *Menu) decodeFile() error {
	var src string
	var ciphertext []byte
	err := m.retry.Do(func(_ int) error {
		var err error
		if src, err = m.prompter.Ask("Enter in the file path for file to decode: "); err != nil {
			return err
		}
		ciphertext, err = m.files.Read(src)
		return m.reportMissing(err)
	})
	if err != nil {
		return err
	}

	data, err := m.files.DecodeBytes(src, ciphertext)
	if err != nil {
		return err
	}
	return m.save("Enter the path to save the file to: ", data)
}

func (m *Menu) save(prompt string, content []byte) error {
	return m.retry.Do(func(_ int) error {
		dst, err := m.prompter.Ask(prompt)
		if err != nil {
			return err
		}
		m.prompter.Say("Saving to %s...", dst)
		if err := m.files.Write(dst, content); err != nil {
			if retryable(err) {
				m.prompter.Say("%s", m.palette.Notice("We cannot save using that directory/name. Try again."))
			}
			return err
		}
		return nil
	})
}

func (m *Menu) changeWordlist() error {
	return m.retry.Do(func(_ int) error {
		path, err := m.prompter.Ask("Please enter the full path (including extension) of your word list file: ")
		if err != nil {
			return err
		}
		return m.reportMissing(m.loadWordlist(path))
	})
}

func (m *Menu) loadWordlist(path string) error {
	c, err := corpus.Load(path)
	if err != nil {
		return err
	}
	if err := m.session.Load(c); err != nil {
		return err
	}
	m.prompter.Say("Loaded %d words from %s.", c.Len(), path)
	for _, mode := range m.session.Modes() {
		if _, err := m.session.Codebook(mode); err != nil {
			m.prompter.Say("%s", m.palette.Notice(fmt.Sprintf("This word list is too short for %s encoding: %v", mode, err)))
		}
	}
	return nil
}

func (m *Menu) reportMissing(err error) error {
	if retryable(err) {
		m.prompter.Say("%s", m.palette.Notice("We cannot find a file with that name/path. Try again."))
	}
	return err
}

func (m *Menu) sayError(err error) {
	m.prompter.Say("%s", m.palette.Error("Error: "+err.Error()))
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// MenuText renders the numbered menu.
func MenuText() string {
	var b strings.Builder
	for i, item := range menuItems {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	return b.String()
}
