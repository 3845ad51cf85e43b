// Command silo brute-forces a turning-grille ciphertext: it reads the
// three fixed input files, picks an execution strategy from its one
// optional positional argument, and reports whether the known plaintext
// turns up among the candidates.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/voidland/turngrille/cracker"
	"github.com/voidland/turngrille/grille"
	"github.com/voidland/turngrille/queue"
	"github.com/voidland/turngrille/strategy"
	"github.com/voidland/turngrille/wordstrie"
)

const (
	cipherTextPath = "encrypted_msg.txt"
	plainTextPath  = "decrypted_msg.txt"
	dictionaryPath = "3000words.txt"

	warmUpDuration = 60 * time.Second
)

// Exit codes, one per failure class, for scripted callers.
const (
	exitOK = iota
	exitUsageError
	exitInputError
	exitInvariantError
)

func main() {
	os.Exit(run(os.Args[1:], os.Getenv("VERBOSE")))
}

func run(args []string, verboseEnv string) int {
	verbose := strings.EqualFold(verboseEnv, "true")
	logger := newLogger(verbose)

	arg := "syncless"
	if len(args) > 0 {
		arg = args[0]
	}

	ciphertext, err := readFirstLine(cipherTextPath)
	if err != nil {
		logger.Error().Err(err).Str("path", cipherTextPath).Msg("failed to read ciphertext")
		return exitInputError
	}

	trie, err := wordstrie.Load(dictionaryPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dictionaryPath).Msg("failed to load dictionary")
		return exitInputError
	}

	c, err := cracker.New(ciphertext, trie)
	if err != nil {
		logger.Error().Err(err).Msg("invalid ciphertext")
		return exitUsageError
	}

	strat, err := buildStrategy(arg, logger, verbose)
	if err != nil {
		logger.Error().Err(err).Str("strategy", arg).Msg("usage error")
		return exitUsageError
	}

	logger.Info().
		Str("strategy", arg).
		Int("side_length", c.SideLength()).
		Uint64("grille_count", c.GrilleCount()).
		Msg("starting brute force")

	if !verbose {
		heatCPU(runtime.NumCPU(), warmUpDuration)
	}

	start := time.Now()
	if err := strat.Run(c); err != nil {
		logger.Error().Err(err).Msg("brute force failed")
		return exitInvariantError
	}
	elapsed := time.Since(start)

	plaintext, err := readFirstLine(plainTextPath)
	if err != nil {
		logger.Error().Err(err).Str("path", plainTextPath).Msg("failed to read expected plaintext")
		return exitInputError
	}
	plaintext = normalizeLetters(plaintext)

	logger.Info().
		Dur("elapsed", elapsed).
		Int("candidate_count", len(c.Candidates())).
		Msg("brute force complete")

	if !c.Contains(plaintext) {
		logger.Error().Msg("correct clear text not found")
		return exitInvariantError
	}

	logger.Info().Msg("correct clear text found")
	return exitOK
}

// buildStrategy selects the strategy/queue combination named by arg.
func buildStrategy(arg string, logger zerolog.Logger, verbose bool) (strategy.Strategy, error) {
	cpuCount := runtime.NumCPU()
	producers := cpuCount
	initialConsumers := cpuCount * 3
	capacity := queue.Capacity(initialConsumers, producers)

	switch arg {
	case "serial":
		return strategy.NewSerial(logger, verbose), nil
	case "syncless":
		return strategy.NewSyncless(cpuCount, logger, verbose), nil
	case "textbook":
		q := queue.NewTextbook[*grille.Grille](capacity)
		return strategy.NewProducerConsumer(q, producers, initialConsumers, logger, verbose), nil
	case "textbook_pl":
		q := queue.NewTextbookFast[*grille.Grille](capacity)
		return strategy.NewProducerConsumer(q, producers, initialConsumers, logger, verbose), nil
	case "concurrent":
		q := queue.NewHybridRing[*grille.Grille](capacity)
		return strategy.NewProducerConsumer(q, producers, initialConsumers, logger, verbose), nil
	case "async_mpmc":
		q := queue.NewHybridChannel[*grille.Grille](capacity)
		return strategy.NewProducerConsumer(q, producers, initialConsumers, logger, verbose), nil
	case "sync_mpmc":
		q := queue.NewChannel[*grille.Grille](capacity)
		return strategy.NewProducerConsumer(q, producers, initialConsumers, logger, verbose), nil
	default:
		return nil, fmt.Errorf("unrecognized strategy %q", arg)
	}
}

// newLogger configures zerolog: a console writer to stderr when attached
// to a terminal, structured JSON otherwise. VERBOSE gates the level, not
// the format.
func newLogger(verbose bool) zerolog.Logger {
	var w io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.InfoLevel
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// heatCPU spins cpuCount busy-loop goroutines for duration before
// returning, to drive the CPU to a steady-state frequency ahead of a
// throughput-sensitive run. Opt-in: callers skip it when VERBOSE is set,
// so verbose runs stay interactive.
func heatCPU(cpuCount int, duration time.Duration) {
	stop := make(chan struct{})
	done := make(chan struct{}, cpuCount)

	for i := 0; i < cpuCount; i++ {
		go func() {
			for {
				select {
				case <-stop:
					done <- struct{}{}
					return
				default:
				}
			}
		}()
	}

	time.Sleep(duration)
	close(stop)
	for i := 0; i < cpuCount; i++ {
		<-done
	}
}

func readFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%s: empty file", path)
	}
	return scanner.Text(), nil
}

func normalizeLetters(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
