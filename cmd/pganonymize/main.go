// Command pganonymize streams a PostgreSQL logical dump from stdin to
// stdout, rewriting COPY column values per directives carried in SQL
// COMMENT annotations.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"pganonymize/internal/core"
	"pganonymize/internal/custombin"
	"pganonymize/internal/directive"
	"pganonymize/internal/dumpformat"
	"pganonymize/internal/plaintext"
	"pganonymize/internal/rowmutator"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printFatal(err)
		os.Exit(1)
	}
}

func printFatal(err error) {
	var ce *core.Error
	if errors.As(err, &ce) {
		fmt.Fprintf(os.Stderr, "prog error: %s: %s\n", ce.Kind, ce.Detail)
		return
	}
	fmt.Fprintf(os.Stderr, "prog error: %s\n", err)
}

func newRootCmd() *cobra.Command {
	var locale string
	var delimiter string
	var format string
	var deleteTablePatterns []string

	cmd := &cobra.Command{
		Use:           "pganonymize",
		Short:         "Anonymize a PostgreSQL logical dump while streaming it",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(runOptions{
				locale:              locale,
				delimiter:           delimiter,
				format:              format,
				deleteTablePatterns: deleteTablePatterns,
				stdin:               os.Stdin,
				stdout:              os.Stdout,
			})
		},
	}

	cmd.Flags().StringVarP(&locale, "locale", "l", "en", "Locale for generated data (en, ru)")
	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "\t", "Column delimiter character")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Force format (plain, custom); auto-detected if unset")
	cmd.Flags().StringArrayVar(&deleteTablePatterns, "delete-table-pattern", nil, "Regex pattern for tables to delete (repeatable)")

	return cmd
}

type runOptions struct {
	locale              string
	delimiter           string
	format              string
	deleteTablePatterns []string
	stdin               *os.File
	stdout              *os.File
}

func run(opts runOptions) error {
	loc := core.ParseLocale(opts.locale)

	delim := byte('\t')
	if len(opts.delimiter) > 0 {
		delim = opts.delimiter[0]
	}

	var deletePatterns []*regexp.Regexp
	for _, p := range opts.deleteTablePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return core.Wrapf(core.KindInvalidParameter, err, "invalid --delete-table-pattern %q", p)
		}
		deletePatterns = append(deletePatterns, re)
	}

	secrets := map[string]string{}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		secrets["SECRET_KEY"] = v
	}
	if v := os.Getenv("SECRET_KEY_NONCE"); v != "" {
		secrets["SECRET_KEY_NONCE"] = v
	}

	bufIn := bufio.NewReaderSize(opts.stdin, 65536)
	peeked, err := bufIn.Peek(5)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return core.Wrap(core.KindIO, "peeking dump format", err)
	}
	peekedCopy := append([]byte{}, peeked...)

	fmtChoice := dumpformat.Detect(peekedCopy)
	switch opts.format {
	case "plain", "p":
		fmtChoice = dumpformat.FormatPlain
	case "custom", "c":
		fmtChoice = dumpformat.FormatCustom
	}

	reg := directive.New()
	rng := rand.New(rand.NewSource(rand.Int63()))
	proc := rowmutator.New(reg, loc, delim, deletePatterns, secrets, rng)

	switch fmtChoice {
	case dumpformat.FormatCustom:
		return custombin.Process(bufIn, opts.stdout, nil, custombin.Hooks{
			ExtractComment: func(defn string) { reg.ParseComment(defn) },
			SetupTable:     func(copyStmt string) { proc.SetupTable(copyStmt) },
			HasWork:        func() bool { return proc.HasMutations() || proc.IsDelete() },
			Process:        proc.ProcessLine,
			ResetTable:     proc.ResetTable,
		})
	default:
		return plaintext.Process(bufIn, opts.stdout, nil, plaintext.Hooks{
			ParseComment: reg.ParseComment,
			SetupTable:   proc.SetupTable,
			IsDelete:     proc.IsDelete,
			Process:      proc.ProcessLine,
			ResetTable:   proc.ResetTable,
		})
	}
}
