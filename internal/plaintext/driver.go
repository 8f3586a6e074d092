// Package plaintext implements the line-oriented driver for PostgreSQL
// plain-SQL (-Fp) dumps.
package plaintext

import (
	"bufio"
	"io"
	"strings"

	"pganonymize/internal/core"
)

// Hooks decouples the line-oriented state machine from the row mutator.
type Hooks struct {
	// ParseComment is tried against every non-data line; it reports
	// whether the line was a recognized directive comment.
	ParseComment func(line string) bool
	// SetupTable is tried against every non-data line; it reports
	// whether the line was a COPY statement, configuring the mutator
	// for the table it introduces.
	SetupTable func(line string) bool
	// IsDelete reports whether the just-configured table is marked for
	// deletion.
	IsDelete func() bool
	// Process mutates (or drops) one COPY data line.
	Process func(line []byte) (out []byte, keep bool)
	// ResetTable is called when a COPY block's terminating "\." line is
	// reached.
	ResetTable func()
}

// Process drives a full plain-format dump from r to w, line by line.
// initialBytes are bytes already consumed from r for format sniffing
// and are prepended back onto the stream.
func Process(r io.Reader, w io.Writer, initialBytes []byte, hooks Hooks) error {
	bw := bufio.NewWriterSize(w, 65536)

	combined := io.MultiReader(strings.NewReader(string(initialBytes)), r)
	scanner := bufio.NewScanner(combined)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)

	isData := false
	var commentBuf strings.Builder
	inComment := false

	for scanner.Scan() {
		line := scanner.Text()

		if isData {
			if line == `\.` {
				if hooks.IsDelete == nil || !hooks.IsDelete() {
					if _, err := bw.WriteString("\\.\n"); err != nil {
						return core.Wrap(core.KindIO, "writing COPY terminator", err)
					}
				}
				isData = false
				if hooks.ResetTable != nil {
					hooks.ResetTable()
				}
				continue
			}

			if mutated, keep := hooks.Process([]byte(line)); keep {
				if _, err := bw.Write(mutated); err != nil {
					return core.Wrap(core.KindIO, "writing data line", err)
				}
				if _, err := bw.WriteString("\n"); err != nil {
					return core.Wrap(core.KindIO, "writing newline", err)
				}
			}
			continue
		}

		if inComment {
			commentBuf.WriteByte('\n')
			commentBuf.WriteString(line)
			if strings.HasSuffix(line, "';") {
				full := commentBuf.String()
				inComment = false
				commentBuf.Reset()
				if hooks.ParseComment != nil {
					hooks.ParseComment(full)
				}
				if _, err := bw.WriteString(full); err != nil {
					return core.Wrap(core.KindIO, "writing comment", err)
				}
				if _, err := bw.WriteString("\n"); err != nil {
					return core.Wrap(core.KindIO, "writing newline", err)
				}
			}
			continue
		}

		if (strings.HasPrefix(line, "COMMENT ON COLUMN ") || strings.HasPrefix(line, "COMMENT ON TABLE ")) &&
			strings.Contains(line, "'anon: ") && !strings.HasSuffix(line, "';") {
			inComment = true
			commentBuf.WriteString(line)
			continue
		}

		if hooks.ParseComment != nil {
			hooks.ParseComment(line)
		}

		if hooks.SetupTable != nil && hooks.SetupTable(line) {
			if hooks.IsDelete == nil || !hooks.IsDelete() {
				if _, err := bw.WriteString(line); err != nil {
					return core.Wrap(core.KindIO, "writing COPY statement", err)
				}
				if _, err := bw.WriteString("\n"); err != nil {
					return core.Wrap(core.KindIO, "writing newline", err)
				}
			}
			isData = true
			continue
		}

		if _, err := bw.WriteString(line); err != nil {
			return core.Wrap(core.KindIO, "writing line", err)
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return core.Wrap(core.KindIO, "writing newline", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return core.Wrap(core.KindIO, "reading dump", err)
	}

	return bw.Flush()
}
