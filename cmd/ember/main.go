// ember - builds the sample bytecode chunk and prints its disassembly.
//
// Usage:
//
//	ember                     # print the listing
//	ember -title demo -digest # custom header, plus the chunk digest
//	ember -config ./project   # read ember.toml from ./project (or a parent)
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/ember/config"
	"github.com/chazu/ember/pkg/bytecode"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, builds the sample chunk and writes its listing to stdout.
// Returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ember", flag.ContinueOnError)
	fs.SetOutput(stderr)
	title := fs.String("title", "", "Header name for the listing (default from ember.toml, else \"test chunk\")")
	showDigest := fs.Bool("digest", false, "Print the chunk's content digest after the listing")
	configDir := fs.String("config", ".", "Directory to start looking for ember.toml")
	verbosity := fs.Int("v", -1, "Log verbosity (overrides ember.toml)")
	logFile := fs.String("log", "", "Log file (overrides ember.toml; default stderr)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ember [options]\n\n")
		fmt.Fprintf(stderr, "Builds the sample chunk and prints its disassembly.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.FindAndLoad(*configDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if *title != "" {
		cfg.Disasm.Title = *title
	}
	if *verbosity >= 0 {
		cfg.Log.Verbosity = *verbosity
	}
	logPath := cfg.LogPath()
	if *logFile != "" {
		logPath = logFile
	}
	commonlog.Configure(cfg.Log.Verbosity, logPath)
	log := commonlog.GetLogger("ember")

	chunk, err := buildSample()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := chunk.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: invalid chunk: %v\n", err)
		return 1
	}
	log.Debugf("built %q: %d code bytes, %d constants, %d line runs",
		cfg.Disasm.Title, chunk.Len(), chunk.ConstantCount(), len(chunk.LineRuns()))

	if err := chunk.WriteDisassembly(stdout, cfg.Disasm.Title); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if *showDigest {
		digest, err := chunk.Digest()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "digest %x\n", digest)
	}

	return 0
}

// buildSample loads the constant 1.2 and returns, both on line 123.
func buildSample() (*bytecode.Chunk, error) {
	chunk := bytecode.NewChunk()
	if _, err := chunk.EmitConstant(1.2, 123); err != nil {
		return nil, err
	}
	if _, err := chunk.Emit(bytecode.OpReturn, 123); err != nil {
		return nil, err
	}
	return chunk, nil
}
