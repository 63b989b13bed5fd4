package app

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ysh86/GTPtools/adc"
	"github.com/ysh86/GTPtools/galaksija"
	"github.com/ysh86/GTPtools/gtp"
)

// Stdin is the input name that reads the WAV from standard input.
const Stdin = "-"

// Options controls one conversion. Strict rejects blocks with a wrong
// checksum. Without Overwrite an existing output is left alone and the
// conversion fails with gtp.ErrExists.
type Options struct {
	Decoder   galaksija.Config
	Strict    bool
	Overwrite bool
}

// Result describes one conversion.
type Result struct {
	Input   string
	Output  string
	Samples int
	Block   *galaksija.Block
	Err     error
}

// OutputPath derives the GTP path from the WAV path.
func OutputPath(in string) string {
	if in == Stdin {
		return "stdin.gtp"
	}
	return strings.TrimSuffix(in, filepath.Ext(in)) + ".gtp"
}

// ConvertFile decodes the WAV at in and writes the block to out.
// Nothing is written unless decoding succeeded.
func ConvertFile(in, out string, opts Options, log zerolog.Logger) (res Result, err error) {
	res = Result{Input: in, Output: out}
	defer func() { res.Err = err }()

	log = log.With().Str("input", in).Logger()

	src, closeFn, err := openInput(in)
	if err != nil {
		return res, err
	}
	defer closeFn()

	stream, err := adc.ReadWAV(src, log)
	if err != nil {
		return res, fmt.Errorf("read %s: %w", in, err)
	}
	res.Samples = stream.Frames()

	blk, err := galaksija.NewDecoder(opts.Decoder, galaksija.WithLogger(log)).Decode(stream)
	if err != nil {
		return res, fmt.Errorf("decode %s: %w", in, err)
	}
	res.Block = blk

	if opts.Strict {
		if err := blk.Verify(); err != nil {
			return res, fmt.Errorf("decode %s: %w", in, err)
		}
	}

	write := gtp.CreateFile
	if opts.Overwrite {
		write = gtp.WriteFile
	}
	if err := write(out, blk.Payload); err != nil {
		return res, fmt.Errorf("write %s: %w", out, err)
	}
	log.Info().Str("output", out).Int("bytes", gtp.HeaderSize+len(blk.Payload)).Msg("gtp written")

	return res, nil
}

func openInput(in string) (adc.WavSource, func(), error) {
	if in == Stdin {
		// go-wav needs ReaderAt
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("read stdin: %w", err)
		}
		return bytes.NewReader(b), func() {}, nil
	}
	f, err := os.Open(in)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
