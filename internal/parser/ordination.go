package parser

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Ordination holds parsed ordination results: per-sample coordinates in a
// reduced-dimensionality space
type Ordination struct {
	// SampleIDs is the ordered list of sample identifiers from the Site
	// section
	SampleIDs []string
	// Coordinates holds one row of axis coordinates per sample
	Coordinates [][]float64
	// Eigvals holds the eigenvalue of each axis
	Eigvals []float64
	// ProportionExplained holds the variance fraction of each axis
	ProportionExplained []float64
}

// SampleIDSet returns the ordination sample identifiers as a set
func (o *Ordination) SampleIDSet() map[string]struct{} {
	ids := make(map[string]struct{}, len(o.SampleIDs))
	for _, id := range o.SampleIDs {
		ids[id] = struct{}{}
	}
	return ids
}

// ReadOrdination parses an ordination results file in the scikit-bio text
// serialization: named sections ("Eigvals", "Proportion explained",
// "Species", "Site", ...) each introduced by a header line carrying the
// section dimensions, separated by blank lines.
func ReadOrdination(path string) (*Ordination, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ord := &Ordination{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	siteSeen := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		name := fields[0]

		switch name {
		case "Eigvals":
			n, err := sectionLength(fields)
			if err != nil {
				return nil, err
			}
			ord.Eigvals, err = readValueRow(scanner, n)
			if err != nil {
				return nil, err
			}
		case "Proportion explained":
			n, err := sectionLength(fields)
			if err != nil {
				return nil, err
			}
			ord.ProportionExplained, err = readValueRow(scanner, n)
			if err != nil {
				return nil, err
			}
		case "Site":
			rows, err := sectionLength(fields)
			if err != nil {
				return nil, err
			}
			for i := 0; i < rows; i++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("%w: truncated Site section", ErrFormat)
				}
				rowFields := strings.Split(scanner.Text(), "\t")
				if len(rowFields) < 2 {
					return nil, fmt.Errorf("%w: Site row %d has no coordinates", ErrFormat, i+1)
				}
				coords := make([]float64, 0, len(rowFields)-1)
				for _, field := range rowFields[1:] {
					v, err := strconv.ParseFloat(field, 64)
					if err != nil {
						return nil, fmt.Errorf("%w: Site row %d: %v", ErrFormat, i+1, err)
					}
					coords = append(coords, v)
				}
				ord.SampleIDs = append(ord.SampleIDs, rowFields[0])
				ord.Coordinates = append(ord.Coordinates, coords)
			}
			siteSeen = true
		default:
			// Species, Biplot, Site constraints: skip the declared rows
			rows, err := sectionLength(fields)
			if err != nil {
				// Not a section header; ignore
				continue
			}
			for i := 0; i < rows && scanner.Scan(); i++ {
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !siteSeen {
		return nil, fmt.Errorf("%w: Site section", ErrMissingData)
	}
	return ord, nil
}

// sectionLength extracts the row count from a section header line
func sectionLength(fields []string) (int, error) {
	if len(fields) < 2 {
		return 0, fmt.Errorf("%w: section header %q has no dimensions", ErrFormat, fields[0])
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("%w: section header %q: %v", ErrFormat, fields[0], err)
	}
	return n, nil
}

// readValueRow reads a single tab-separated row of n float values
func readValueRow(scanner *bufio.Scanner, n int) ([]float64, error) {
	if n == 0 {
		return nil, nil
	}
	if !scanner.Scan() {
		return nil, fmt.Errorf("%w: truncated value row", ErrFormat)
	}
	fields := strings.Split(scanner.Text(), "\t")
	if len(fields) != n {
		return nil, fmt.Errorf("%w: value row has %d fields, expected %d", ErrFormat, len(fields), n)
	}
	values := make([]float64, n)
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: value row column %d: %v", ErrFormat, i+1, err)
		}
		values[i] = v
	}
	return values, nil
}
