package custombin

import (
	"bufio"
	"errors"
	"io"

	"pganonymize/internal/core"
)

const (
	blockTypeData = 0x01
	blockTypeEnd  = 0x04
)

// TableSetup is invoked once per DATA block, before its lines are
// streamed, so the caller can configure its row mutator for that
// table's COPY statement.
type TableSetup func(copyStmt string)

// TableTeardown is invoked after a DATA block's lines have all been
// streamed.
type TableTeardown func()

// Hooks lets the driver remain decoupled from the row mutator: the
// caller decides, per table, whether mutation is needed and supplies
// the line processor.
type Hooks struct {
	// ExtractComment is called once per TOC entry whose Desc is
	// "COMMENT", with its Defn text, to populate the directive registry.
	ExtractComment func(defn string)
	// SetupTable is called with a DATA block's COPY statement before
	// its lines stream.
	SetupTable TableSetup
	// HasWork reports whether the just-configured table needs mutation
	// or deletion (as opposed to pure passthrough).
	HasWork func() bool
	// Process mutates (or drops) one COPY data line.
	Process LineProcessor
	// ResetTable is called after a DATA block's lines have streamed.
	ResetTable TableTeardown
}

// Process drives a full custom-format dump from r to w: header, TOC,
// then each data block, dispatching through hooks.
func Process(r io.Reader, w io.Writer, initialBytes []byte, hooks Hooks) error {
	br := bufio.NewReaderSize(r, 65536)
	bw := bufio.NewWriterSize(w, 65536)

	header, err := ParseHeader(br, bw, initialBytes)
	if err != nil {
		return err
	}

	entries, err := ParseTOC(br, bw, header)
	if err != nil {
		return err
	}

	dataEntries := map[int32]string{}
	for _, e := range entries {
		if e.Desc == "COMMENT" && hooks.ExtractComment != nil {
			hooks.ExtractComment(e.Defn)
		}
		if e.Section == SectionData || e.Desc == "TABLE DATA" {
			dataEntries[e.DumpID] = e.CopyStmt
		}
	}

	dio := New(header.IntSize, header.OffsetSize)

	for {
		blockType, err := ReadByte(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return core.Wrap(core.KindIO, "reading block type", err)
		}

		if blockType == blockTypeEnd {
			if _, err := bw.Write([]byte{blockType}); err != nil {
				return core.Wrap(core.KindIO, "writing END block", err)
			}
			break
		}

		if blockType == blockTypeData {
			dumpID, err := dio.ReadInt(br)
			if err != nil {
				return core.Wrap(core.KindIO, "reading dump_id after DATA block", err)
			}

			copyStmt, known := dataEntries[dumpID]
			if known && copyStmt != "" && hooks.SetupTable != nil {
				hooks.SetupTable(copyStmt)
			}

			if err := bw.WriteByte(blockType); err != nil {
				return core.Wrap(core.KindIO, "writing block type", err)
			}
			if err := dio.WriteInt(bw, dumpID); err != nil {
				return core.Wrap(core.KindIO, "writing dump_id", err)
			}

			if known && hooks.HasWork != nil && hooks.HasWork() {
				if err := ProcessBlock(br, bw, dio, header.Compression, hooks.Process); err != nil {
					return err
				}
			} else {
				if err := PassThroughBlock(br, bw, dio); err != nil {
					return err
				}
			}

			if known && hooks.ResetTable != nil {
				hooks.ResetTable()
			}
			continue
		}

		// Other block types (BLOBS, etc.): pass through.
		if err := bw.WriteByte(blockType); err != nil {
			return core.Wrap(core.KindIO, "writing block type", err)
		}
		dumpID, err := dio.ReadInt(br)
		if err != nil {
			return core.Wrap(core.KindIO, "reading dump_id", err)
		}
		if err := dio.WriteInt(bw, dumpID); err != nil {
			return core.Wrap(core.KindIO, "writing dump_id", err)
		}
		if err := PassThroughBlock(br, bw, dio); err != nil {
			return err
		}
	}

	return bw.Flush()
}
