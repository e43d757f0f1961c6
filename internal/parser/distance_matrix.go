package parser

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DistanceMatrix holds a parsed pairwise sample distance matrix
type DistanceMatrix struct {
	// IDs is the ordered list of sample identifiers
	IDs []string
	// Data is the full square matrix, row-major, in IDs order
	Data [][]float64
}

// SampleIDSet returns the matrix sample identifiers as a set
func (d *DistanceMatrix) SampleIDSet() map[string]struct{} {
	ids := make(map[string]struct{}, len(d.IDs))
	for _, id := range d.IDs {
		ids[id] = struct{}{}
	}
	return ids
}

// CondensedValues returns the strictly-upper-triangle distances, the
// values a symmetric matrix actually carries
func (d *DistanceMatrix) CondensedValues() []float64 {
	var values []float64
	for i := range d.Data {
		for j := i + 1; j < len(d.Data[i]); j++ {
			values = append(values, d.Data[i][j])
		}
	}
	return values
}

// ReadDistanceMatrix parses a tab-separated distance matrix file. The
// first line holds the sample identifiers (with a leading empty field);
// each following line holds a row identifier and one value per sample.
func ReadDistanceMatrix(path string) (*DistanceMatrix, error) {
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
	header := strings.Split(scanner.Text(), "\t")
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: header has no sample identifiers", ErrFormat)
	}
	// The first header field is the empty corner cell
	ids := header[1:]

	dm := &DistanceMatrix{IDs: ids}
	row := 0
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != len(ids)+1 {
			return nil, fmt.Errorf("%w: row %d has %d fields, expected %d",
				ErrFormat, row+1, len(fields), len(ids)+1)
		}
		if row >= len(ids) {
			return nil, fmt.Errorf("%w: more rows than sample identifiers", ErrFormat)
		}
		if fields[0] != ids[row] {
			return nil, fmt.Errorf("%w: row identifier %q does not match header %q",
				ErrFormat, fields[0], ids[row])
		}
		values := make([]float64, len(ids))
		for i, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %d: %v", ErrFormat, row+1, i+1, err)
			}
			values[i] = v
		}
		dm.Data = append(dm.Data, values)
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if row != len(ids) {
		return nil, fmt.Errorf("%w: %d rows for %d sample identifiers", ErrFormat, row, len(ids))
	}
	return dm, nil
}
