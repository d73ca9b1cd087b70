package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	bcerrors "bikecast/pkg/errors"
)

// Load reads the delimited file at path into records, binding columns
// positionally. Any malformed row is an error; a missing file is reported as
// such, never as an empty dataset.
func Load(path string, delimiter rune, hasHeader bool) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, bcerrors.Wrapf(err, "failed to open dataset %s", path)
	}
	defer f.Close()

	records, err := read(f, path, delimiter, hasHeader)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("path", path).
		Int("records", len(records)).
		Msg("dataset loaded")
	return records, nil
}

func read(r io.Reader, path string, delimiter rune, hasHeader bool) (Dataset, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1 // header is skipped unchecked
	reader.ReuseRecord = true

	line := 0
	if hasHeader {
		line++
		if _, err := reader.Read(); err != nil {
			if err == io.EOF {
				return nil, bcerrors.NewSchemaError(path, 0, "file has no header row")
			}
			return nil, bcerrors.Wrapf(err, "failed to read header of %s", path)
		}
	}
	reader.FieldsPerRecord = NumColumns

	var records Dataset
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, bcerrors.NewSchemaError(path, line, err.Error())
		}

		rec, err := parseRow(row, path, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, bcerrors.NewSchemaError(path, line, "file contains no data rows")
	}
	return records, nil
}

func parseRow(row []string, path string, line int) (RentalRecord, error) {
	values := make([]float64, NumColumns-1)
	for i := 0; i < NumColumns-1; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil {
			return RentalRecord{}, bcerrors.NewSchemaError(path, line,
				"column "+ColumnNames[i]+": invalid numeric value "+strconv.Quote(row[i]))
		}
		values[i] = v
	}

	label, err := parseLabel(row[NumColumns-1])
	if err != nil {
		return RentalRecord{}, bcerrors.NewSchemaError(path, line,
			"column "+ColumnNames[NumColumns-1]+": invalid label "+strconv.Quote(row[NumColumns-1]))
	}

	return RentalRecord{
		Season:           values[0],
		Month:            values[1],
		Hour:             values[2],
		Holiday:          values[3],
		Weekday:          values[4],
		WorkingDay:       values[5],
		WeatherCondition: values[6],
		Temperature:      values[7],
		Humidity:         values[8],
		Windspeed:        values[9],
		RentalType:       label,
	}, nil
}

// parseLabel accepts the two encodings the source files use: 0/1 and
// true/false (case-insensitive).
func parseLabel(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "false":
		return false, nil
	case "1", "true":
		return true, nil
	default:
		return false, bcerrors.Newf("unrecognized label %q", s)
	}
}
