package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sdn-platform/p4ir/internal/logging"
)

var log *zap.SugaredLogger

var rootCmd = &cobra.Command{
	Use:   "p4ir",
	Short: "Translate P4Runtime PI byte strings to and from typed IR values",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		levelName, err := cmd.Flags().GetString("log-level")
		if err != nil {
			return err
		}
		level, err := zapcore.ParseLevel(levelName)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", levelName, err)
		}

		log, err = logging.Init(level)
		return err
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Logging level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

// parseHexBytes decodes a PI byte string given on the command line or
// in a value file as hex, with an optional "0x" prefix. An odd number
// of digits is allowed; the value is an unsigned integer, not a dump.
func parseHexBytes(text string) ([]byte, error) {
	stripped := strings.TrimPrefix(text, "0x")
	if len(stripped)%2 != 0 {
		stripped = "0" + stripped
	}
	b, err := hex.DecodeString(stripped)
	if err != nil {
		return nil, fmt.Errorf("invalid hex byte string %q: %w", text, err)
	}
	return b, nil
}
