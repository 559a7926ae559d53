package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btclog/v2"
	"github.com/jessevdk/go-flags"
	"github.com/pozoqoproject/nist5"
)

// stdinName is the file name reported for digests computed over standard
// input, matching the convention of the coreutils *sum tools.
const stdinName = "-"

// config holds the set of command line options accepted by nist5sum.
type config struct {
	Reverse bool `short:"r" long:"reverse" description:"Print digests with the byte order reversed, as block hashes are conventionally displayed"`

	Debug bool `short:"d" long:"debug" description:"Enable debug logging on stderr"`

	Args struct {
		Files []string `positional-arg-name:"file"`
	} `positional-args:"yes"`
}

// log is the logger used by the tool. All diagnostics go to stderr so the
// digest output on stdout stays machine readable.
var log btclog.Logger

func main() {
	cfg := config{}
	parser := flags.NewParser(&cfg, flags.Default)
	parser.Usage = "[options] [file...]"
	if _, err := parser.Parse(); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logger := btclog.NewSLogger(btclog.NewDefaultHandler(os.Stderr))
	if cfg.Debug {
		logger.SetLevel(btclog.LevelDebug)
	} else {
		logger.SetLevel(btclog.LevelWarn)
	}
	log = logger

	if err := run(&cfg); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run hashes each named file in order, falling back to standard input when
// no files are given, and writes one digest line per input to stdout.
func run(cfg *config) error {
	files := cfg.Args.Files
	if len(files) == 0 {
		files = []string{stdinName}
	}

	for _, name := range files {
		data, err := readInput(name)
		if err != nil {
			return err
		}

		digest := nist5.Sum256(data)
		log.Debugf("Hashed %d bytes from %s", len(data), name)

		// At debug level, also trace every intermediate stage
		// digest of the chain.
		if cfg.Debug {
			names := nist5.StageNames()
			for i, d := range nist5.StageDigests(data) {
				log.Debugf("Stage %d (%s): %x", i+1,
					names[i], d)
			}
		}

		var out string
		if cfg.Reverse {
			// chainhash.Hash.String reverses the byte order,
			// which is exactly the display convention we want.
			out = chainhash.Hash(digest).String()
		} else {
			out = hex.EncodeToString(digest[:])
		}

		fmt.Printf("%s  %s\n", out, name)
	}

	return nil
}

// readInput reads the named file in full. The name "-" selects standard
// input.
func readInput(name string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if name == stdinName {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", name, err)
	}

	return data, nil
}
