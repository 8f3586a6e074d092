package custombin

import (
	"bytes"
	"io"

	kzlib "github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"

	"pganonymize/internal/core"
)

const (
	outputChunkSize = 1024 * 1024      // 1MiB, chosen for streaming throughput
	maxChunkSize    = 50 * 1024 * 1024 // 50MiB, a sanity cap against corrupt framing
	readBufSize     = 2 * 1024 * 1024  // 2MiB
)

// LineProcessor mutates one COPY data line (without its trailing
// newline). It returns (nil, false) when the row is dropped.
type LineProcessor func(line []byte) (out []byte, keep bool)

// chunkReader turns the length-prefixed chunk framing of a data block
// into a plain io.Reader, so a compression codec can be layered
// directly on top without buffering the whole (possibly multi-GB)
// block in memory.
type chunkReader struct {
	r       io.Reader
	dio     *IO
	current []byte
	pos     int
	done    bool
	err     error
}

func newChunkReader(r io.Reader, dio *IO) *chunkReader {
	return &chunkReader{r: r, dio: dio}
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if c.pos >= len(c.current) {
		if c.done {
			return 0, io.EOF
		}
		if c.err != nil {
			return 0, c.err
		}

		chunkLen, err := c.dio.ReadInt(c.r)
		if err != nil {
			c.err = err
			return 0, err
		}
		if chunkLen == 0 {
			c.done = true
			return 0, io.EOF
		}

		length := int(abs32(chunkLen))
		if length > maxChunkSize {
			c.err = core.Wrapf(core.KindInvalidFormat, nil, "chunk size %d exceeds maximum %d", length, maxChunkSize)
			return 0, c.err
		}

		buf := make([]byte, length)
		if _, err := io.ReadFull(c.r, buf); err != nil {
			c.err = err
			return 0, err
		}
		c.current = buf
		c.pos = 0
	}

	n := copy(p, c.current[c.pos:])
	c.pos += n
	return n, nil
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// PassThroughBlock copies a data block byte-for-byte, re-framing each
// chunk without decompressing or mutating it.
func PassThroughBlock(r io.Reader, w io.Writer, dio *IO) error {
	for {
		chunkLen, err := dio.ReadInt(r)
		if err != nil {
			return core.Wrap(core.KindIO, "reading chunk length", err)
		}
		if err := dio.WriteInt(w, chunkLen); err != nil {
			return core.Wrap(core.KindIO, "writing chunk length", err)
		}
		if chunkLen == 0 {
			return nil
		}

		length := int(abs32(chunkLen))
		if length > maxChunkSize {
			return core.Wrapf(core.KindInvalidFormat, nil, "chunk size %d exceeds maximum %d, stream may be corrupted", length, maxChunkSize)
		}

		buf := make([]byte, length)
		if _, err := io.ReadFull(r, buf); err != nil {
			return core.Wrap(core.KindIO, "reading chunk body", err)
		}
		if _, err := w.Write(buf); err != nil {
			return core.Wrap(core.KindIO, "writing chunk body", err)
		}
	}
}

// ProcessBlock reads a data block, applying process to every COPY line,
// and writes the result in the same compression scheme it was read in.
// Lz4 is recognized by the header parser but has no decoder here;
// encountering an Lz4 block at this point is fatal rather than silently
// passed through, per spec.
func ProcessBlock(r io.Reader, w io.Writer, dio *IO, compression CompressionMethod, process LineProcessor) error {
	switch compression {
	case CompressionZlib:
		return processBlockZlib(r, w, dio, process)
	case CompressionZstd:
		return processBlockZstd(r, w, dio, process)
	case CompressionLz4:
		return core.Wrap(core.KindCompressionError, "Lz4 block bodies are not implemented", nil)
	default:
		return processBlockUncompressed(r, w, dio, process)
	}
}

func processBlockUncompressed(r io.Reader, w io.Writer, dio *IO, process LineProcessor) error {
	var lineTail []byte
	outputBuf := make([]byte, 0, outputChunkSize*2)

	flush := func() error {
		for len(outputBuf) > 0 {
			n := outputChunkSize
			if n > len(outputBuf) {
				n = len(outputBuf)
			}
			if err := dio.WriteInt(w, int32(n)); err != nil {
				return err
			}
			if _, err := w.Write(outputBuf[:n]); err != nil {
				return err
			}
			outputBuf = outputBuf[n:]
		}
		return nil
	}

	for {
		chunkLen, err := dio.ReadInt(r)
		if err != nil {
			return core.Wrap(core.KindIO, "reading chunk length", err)
		}
		if chunkLen == 0 {
			break
		}

		length := int(abs32(chunkLen))
		if length > maxChunkSize {
			return core.Wrapf(core.KindInvalidFormat, nil, "chunk size %d exceeds maximum %d", length, maxChunkSize)
		}
		buf := make([]byte, length)
		if _, err := io.ReadFull(r, buf); err != nil {
			return core.Wrap(core.KindIO, "reading chunk body", err)
		}

		data := buf
		if len(lineTail) > 0 {
			data = append(lineTail, buf...)
			lineTail = nil
		}

		if lastNL := bytes.LastIndexByte(data, '\n'); lastNL >= 0 {
			lineTail = append([]byte{}, data[lastNL+1:]...)
			outputBuf = processCompleteLines(process, data[:lastNL+1], outputBuf)
			if len(outputBuf) >= outputChunkSize {
				if err := flush(); err != nil {
					return core.Wrap(core.KindIO, "flushing output chunk", err)
				}
			}
		} else {
			lineTail = data
		}
	}

	if len(lineTail) > 0 {
		if out, keep := process(lineTail); keep {
			outputBuf = append(outputBuf, out...)
		}
	}
	if len(outputBuf) > 0 {
		if err := flush(); err != nil {
			return core.Wrap(core.KindIO, "flushing final output chunk", err)
		}
	}

	return dio.WriteInt(w, 0)
}

// processCompleteLines mutates every newline-terminated line in data and
// appends the results (each re-joined with its trailing newline) to out.
func processCompleteLines(process LineProcessor, data []byte, out []byte) []byte {
	start := 0
	for start < len(data) {
		end := bytes.IndexByte(data[start:], '\n')
		if end < 0 {
			end = len(data) - start
		}
		line := data[start : start+end]
		if mutated, keep := process(line); keep {
			out = append(out, mutated...)
			if start+end < len(data) {
				out = append(out, '\n')
			}
		}
		start += end + 1
	}
	return out
}

func processCompleteLinesToWriter(process LineProcessor, data []byte, w io.Writer) error {
	start := 0
	for start < len(data) {
		end := bytes.IndexByte(data[start:], '\n')
		if end < 0 {
			end = len(data) - start
		}
		line := data[start : start+end]
		if mutated, keep := process(line); keep {
			if _, err := w.Write(mutated); err != nil {
				return err
			}
			if start+end < len(data) {
				if _, err := w.Write([]byte{'\n'}); err != nil {
					return err
				}
			}
		}
		start += end + 1
	}
	return nil
}

func flushChunksFrom(w io.Writer, dio *IO, buf *bytes.Buffer, force bool) error {
	if !force && buf.Len() < outputChunkSize {
		return nil
	}
	data := buf.Bytes()
	for len(data) > 0 {
		n := outputChunkSize
		if n > len(data) {
			n = len(data)
		}
		if err := dio.WriteInt(w, int32(n)); err != nil {
			return err
		}
		if _, err := w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	buf.Reset()
	return nil
}

func processBlockZlib(r io.Reader, w io.Writer, dio *IO, process LineProcessor) error {
	cr := newChunkReader(r, dio)
	decoder, err := kzlib.NewReader(cr)
	if err != nil {
		return core.Wrap(core.KindCompressionError, "zlib decoder init failed", err)
	}
	defer decoder.Close()

	var encoded bytes.Buffer
	encoder, err := kzlib.NewWriterLevel(&encoded, 6)
	if err != nil {
		return core.Wrap(core.KindCompressionError, "zlib encoder init failed", err)
	}

	readBuf := make([]byte, readBufSize)
	var lineTail []byte

	for {
		n, err := decoder.Read(readBuf)
		if n > 0 {
			var data []byte
			if len(lineTail) == 0 {
				data = readBuf[:n]
			} else {
				lineTail = append(lineTail, readBuf[:n]...)
				data = lineTail
			}

			if lastNL := bytes.LastIndexByte(data, '\n'); lastNL >= 0 {
				if procErr := processCompleteLinesToWriter(process, data[:lastNL+1], encoder); procErr != nil {
					return core.Wrap(core.KindCompressionError, "zlib compression failed", procErr)
				}
				lineTail = append([]byte{}, data[lastNL+1:]...)
				if flushErr := flushChunksFrom(w, dio, &encoded, false); flushErr != nil {
					return core.Wrap(core.KindIO, "flushing zlib chunk", flushErr)
				}
			} else if len(lineTail) == 0 {
				lineTail = append([]byte{}, readBuf[:n]...)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return core.Wrap(core.KindCompressionError, "zlib decompression failed", err)
		}
	}

	if len(lineTail) > 0 {
		if out, keep := process(lineTail); keep {
			if _, err := encoder.Write(out); err != nil {
				return core.Wrap(core.KindCompressionError, "zlib compression failed", err)
			}
		}
	}

	if err := encoder.Close(); err != nil {
		return core.Wrap(core.KindCompressionError, "zlib compression finish failed", err)
	}
	if err := flushChunksFrom(w, dio, &encoded, true); err != nil {
		return core.Wrap(core.KindIO, "flushing final zlib chunk", err)
	}

	return dio.WriteInt(w, 0)
}

func processBlockZstd(r io.Reader, w io.Writer, dio *IO, process LineProcessor) error {
	cr := newChunkReader(r, dio)
	decoder, err := zstd.NewReader(cr)
	if err != nil {
		return core.Wrap(core.KindCompressionError, "zstd decoder init failed", err)
	}
	defer decoder.Close()

	var encoded bytes.Buffer
	encoder, err := zstd.NewWriter(&encoded,
		zstd.WithEncoderLevel(zstd.SpeedFastest),
		zstd.WithEncoderConcurrency(0),
	)
	if err != nil {
		return core.Wrap(core.KindCompressionError, "zstd encoder init failed", err)
	}

	readBuf := make([]byte, readBufSize)
	var lineTail []byte

	for {
		n, err := decoder.Read(readBuf)
		if n > 0 {
			var data []byte
			if len(lineTail) == 0 {
				data = readBuf[:n]
			} else {
				lineTail = append(lineTail, readBuf[:n]...)
				data = lineTail
			}

			if lastNL := bytes.LastIndexByte(data, '\n'); lastNL >= 0 {
				if procErr := processCompleteLinesToWriter(process, data[:lastNL+1], encoder); procErr != nil {
					return core.Wrap(core.KindCompressionError, "zstd compression failed", procErr)
				}
				lineTail = append([]byte{}, data[lastNL+1:]...)
				if flushErr := flushChunksFrom(w, dio, &encoded, false); flushErr != nil {
					return core.Wrap(core.KindIO, "flushing zstd chunk", flushErr)
				}
			} else if len(lineTail) == 0 {
				lineTail = append([]byte{}, readBuf[:n]...)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return core.Wrap(core.KindCompressionError, "zstd decompression failed", err)
		}
	}

	if len(lineTail) > 0 {
		if out, keep := process(lineTail); keep {
			if _, err := encoder.Write(out); err != nil {
				return core.Wrap(core.KindCompressionError, "zstd compression failed", err)
			}
		}
	}

	if err := encoder.Close(); err != nil {
		return core.Wrap(core.KindCompressionError, "zstd compression finish failed", err)
	}
	if err := flushChunksFrom(w, dio, &encoded, true); err != nil {
		return core.Wrap(core.KindIO, "flushing final zstd chunk", err)
	}

	return dio.WriteInt(w, 0)
}
