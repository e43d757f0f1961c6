package parser

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// AlphaSample is a single (sample identifier, diversity score) pair. The
// score is kept verbatim; callers interested in numeric values convert it
// themselves.
type AlphaSample struct {
	ID    string
	Value string
}

// AlphaVector holds a parsed per-sample alpha diversity vector
type AlphaVector struct {
	// Metric is the score column label from the header line
	Metric string
	// Samples is the ordered list of (id, score) pairs
	Samples []AlphaSample
}

// SampleIDSet returns the vector sample identifiers as a set
func (a *AlphaVector) SampleIDSet() map[string]struct{} {
	ids := make(map[string]struct{}, len(a.Samples))
	for _, s := range a.Samples {
		ids[s.ID] = struct{}{}
	}
	return ids
}

// ReadAlphaVector parses a two-column tab-separated alpha diversity file.
// The first line is a header and is skipped. Every following line must
// split into exactly two tab-separated fields; any other shape fails with
// ErrFormat.
func ReadAlphaVector(path string) (*AlphaVector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("%w: %s", ErrEmptyInput, path)
	}
	av := &AlphaVector{}
	header := strings.Split(scanner.Text(), "\t")
	if len(header) == 2 {
		av.Metric = header[1]
	}

	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d has %d fields, expected 2",
				ErrFormat, lineNo, len(fields))
		}
		av.Samples = append(av.Samples, AlphaSample{ID: fields[0], Value: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return av, nil
}
