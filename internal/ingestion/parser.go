package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/logger"
)

// ErrUnparseableFeed means both decode paths (fixed-width with codec
// fallback, then semicolon-delimited) produced zero usable rows.
var ErrUnparseableFeed = errors.New("feed is unparseable: both fixed-width and delimited paths yielded no rows")

// codec is one entry of the text-decoding priority list. decode returns an
// error when the payload is not valid in that encoding.
type codec struct {
	name   string
	decode func([]byte) (string, error)
}

// codecs is tried in order; the first successful decode wins. Latin-1 comes
// first because the official COTAHIST files are published in it.
var codecs = []codec{
	{"latin1", func(b []byte) (string, error) {
		return charmap.ISO8859_1.NewDecoder().String(string(b))
	}},
	{"utf-8", func(b []byte) (string, error) {
		if !utf8.Valid(b) {
			return "", errors.New("invalid utf-8 payload")
		}
		return string(b), nil
	}},
	{"cp1252", func(b []byte) (string, error) {
		return charmap.Windows1252.NewDecoder().String(string(b))
	}},
}

// ParseArchive decodes the downloaded ZIP archive into COTAHIST records.
//
// Behavior:
//   - Opens the archive and reads its single text member (the first member
//     is used if the archive unexpectedly carries more than one).
//   - Tries the codec priority list; the first codec that decodes the
//     payload is used to slice every line at the fixed COTAHIST offsets.
//   - If no codec succeeds, or fixed-width slicing yields zero rows, falls
//     back to semicolon-delimited parsing (Latin-1, one header-like leading
//     line skipped).
//
// Returns ErrUnparseableFeed only when both paths yield no usable rows.
func ParseArchive(data []byte) ([]Record, error) {
	raw, err := readArchiveMember(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnparseableFeed, err)
	}

	for _, c := range codecs {
		text, err := c.decode(raw)
		if err != nil {
			logger.L().Warn().Str("codec", c.name).Err(err).Msg("codec failed, trying next")
			continue
		}
		records := parseFixedWidth(text)
		if len(records) > 0 {
			logger.L().Info().Str("codec", c.name).Int("rows", len(records)).Msg("feed parsed as fixed-width")
			return records, nil
		}
	}

	logger.L().Warn().Msg("fixed-width parse yielded no rows, trying delimited fallback")
	records, err := parseDelimited(raw)
	if err != nil || len(records) == 0 {
		return nil, ErrUnparseableFeed
	}
	logger.L().Info().Int("rows", len(records)).Msg("feed parsed as delimited")
	return records, nil
}

// readArchiveMember opens the ZIP payload and returns the bytes of its
// single text member.
func readArchiveMember(data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %v", err)
	}
	if len(zr.File) == 0 {
		return nil, errors.New("archive has no members")
	}
	if len(zr.File) > 1 {
		logger.L().Warn().Int("members", len(zr.File)).Str("using", zr.File[0].Name).Msg("archive has more than one member")
	}

	rc, err := zr.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("open member %s: %v", zr.File[0].Name, err)
	}
	defer func() { _ = rc.Close() }()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read member %s: %v", zr.File[0].Name, err)
	}
	return raw, nil
}

func parseFixedWidth(text string) []Record {
	lines := strings.Split(text, "\n")
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		// Anything narrower than the layout is not a fixed-width record;
		// a delimited payload lands here and must yield zero rows so the
		// fallback path takes over.
		if len([]rune(line)) < fixedLineWidth {
			continue
		}
		records = append(records, parseFixedLine(line))
	}
	return records
}

// parseDelimited is the fallback path: semicolon-separated values in the
// fixed layout's column order, Latin-1, skipping one leading line.
func parseDelimited(raw []byte) ([]Record, error) {
	text, err := charmap.ISO8859_1.NewDecoder().String(string(raw))
	if err != nil {
		return nil, fmt.Errorf("latin1 decode: %v", err)
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = ';'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	// header-like leading line
	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("skip header: %v", err)
	}

	var records []Record
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// tolerate ragged lines, same as malformed fixed-width slices
			continue
		}
		if len(fields) < 2 {
			continue
		}
		records = append(records, parseDelimitedFields(fields))
	}
	return records, nil
}
