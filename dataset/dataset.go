package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrEmptyRecord   = errors.New("dataset: empty record")
	ErrInvalidNumber = errors.New("dataset: invalid number")
)

// ReadCSV reads one point per record. Lines starting with '#' are skipped and
// every record must have the same number of fields.
func ReadCSV(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	points := make([][]float64, 0, 1024)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "dataset: read csv")
		}

		line, _ := cr.FieldPos(0)
		point, err := parseFields(record)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		points = append(points, point)
	}

	return points, nil
}

func ReadCSVFile(path string) ([][]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: open %s", path)
	}
	defer file.Close()

	return ReadCSV(file)
}

// ParsePoint parses comma separated coordinates such as "3,1,4".
func ParsePoint(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, ErrEmptyRecord
	}
	return parseFields(strings.Split(s, ","))
}

func parseFields(fields []string) ([]float64, error) {
	if len(fields) == 0 {
		return nil, ErrEmptyRecord
	}

	point := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidNumber, "field %d: %q", i, f)
		}
		point[i] = v
	}

	return point, nil
}
