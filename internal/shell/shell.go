package shell

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"

	"tinysh/internal/config"
	"tinysh/internal/history"
	"tinysh/internal/job"
	"tinysh/internal/parser"
)

// Shell is the command interpreter: a synchronous read-eval loop plus
// one signal-consumer goroutine that reaps children and forwards
// keyboard signals to the foreground job.
type Shell struct {
	config  *config.Config
	history *history.History
	jobs    *job.Table
	aliases map[string]string
	logger  *slog.Logger

	signalChan chan os.Signal
	reader     *readline.Instance

	// procMu orders job registration before reaping: the launcher
	// holds it across start+register, and the reaper and forwarder
	// hold it for their whole run. A SIGCHLD that fires inside the
	// registration window parks in signalChan until the entry exists.
	procMu sync.Mutex

	out    io.Writer
	errOut io.Writer
}

func New(cfg *config.Config) (*Shell, error) {
	hist, err := history.New(cfg.HistoryFile)
	if err != nil {
		return nil, fmt.Errorf("error initializing history: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      cfg.Prompt,
		HistoryFile: cfg.HistoryFile,
	})
	if err != nil {
		return nil, fmt.Errorf("error initializing readline: %w", err)
	}

	logger := slog.New(slog.DiscardHandler)
	if cfg.Verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	return &Shell{
		config:     cfg,
		history:    hist,
		jobs:       job.New(cfg.MaxJobs, logger),
		aliases:    make(map[string]string),
		logger:     logger,
		signalChan: make(chan os.Signal, 16),
		reader:     rl,
		out:        os.Stdout,
		errOut:     os.Stderr,
	}, nil
}

// Run reads and evaluates commands until end of input.
func (s *Shell) Run() {
	s.setupSignalHandling()
	defer s.stopSignalHandling()
	defer s.reader.Close()

	for {
		line, err := s.reader.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			break
		} else if err != nil {
			fmt.Fprintf(s.errOut, "Error: %v\n", err)
			break
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		s.history.Add(line)

		if err := s.Execute(line); err != nil {
			fmt.Fprintf(s.errOut, "Error: %v\n", err)
		}
	}

	s.saveHistory()
}

// Execute evaluates one command line: tokenize, expand an alias on the
// command word, then run a builtin or launch an external command.
func (s *Shell) Execute(line string) error {
	argv, background := parser.Split(line)
	if len(argv) == 0 {
		return nil
	}

	if alias, ok := s.aliases[argv[0]]; ok {
		parts, err := shellquote.Split(alias)
		if err != nil {
			return fmt.Errorf("error parsing alias: %w", err)
		}
		argv = append(parts, argv[1:]...)
	}

	if ok, err := s.executeBuiltin(argv); ok {
		return err
	}
	return s.runExternal(argv, line, background)
}

func (s *Shell) saveHistory() {
	if err := s.history.Save(); err != nil {
		fmt.Fprintf(s.errOut, "Error saving history: %v\n", err)
	}
}

// fatalf reports an unrecoverable system failure and terminates the
// interpreter.
func (s *Shell) fatalf(format string, args ...any) {
	fmt.Fprintf(s.errOut, format+"\n", args...)
	os.Exit(1)
}
