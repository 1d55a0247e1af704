package repository

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"field_station/internal/models"
)

// csvHeader fixes the column order of the archive. parseRecord and
// renderRecord must stay in sync with it.
var csvHeader = []string{
	"date_time",
	"soil_temperature",
	"soil_moisture",
	"air_temperature",
	"air_humidity",
	"sunlight_visible",
	"sunlight_uv",
	"sunlight_ir",
	"relay",
	"relay_state_change",
}

const csvTimeLayout = "2006-01-02 15:04:05"

// PersistenceError wraps any failure of the record archive.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("record store %s: %v", e.Op, e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }

// CSVRecordStore appends collected records to a CSV file, one row per
// cycle. The file is opened per operation so external log rotation or
// inspection never holds a handle hostage.
type CSVRecordStore struct {
	path string
}

func NewCSVRecordStore(path string) *CSVRecordStore {
	return &CSVRecordStore{path: path}
}

var _ RecordStore = (*CSVRecordStore)(nil)

// Ensure creates the output directory and the file with its header row,
// or verifies the header of an existing file. A file with a different
// header is rejected rather than silently appended to.
func (s *CSVRecordStore) Ensure() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &PersistenceError{Op: "create output dir", Err: err}
		}
	}

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s.appendRow(csvHeader, "write header")
	}
	if err != nil {
		return &PersistenceError{Op: "open", Err: err}
	}

	header, err := csv.NewReader(f).Read()
	closeErr := f.Close()
	if errors.Is(err, io.EOF) {
		return s.appendRow(csvHeader, "write header")
	}
	if err != nil {
		return &PersistenceError{Op: "read header", Err: err}
	}
	if closeErr != nil {
		return &PersistenceError{Op: "close", Err: closeErr}
	}
	if !equalHeader(header, csvHeader) {
		return &PersistenceError{Op: "verify header", Err: fmt.Errorf("existing file has columns %v", header)}
	}
	return nil
}

// Append writes one record as a single row at the end of the file.
func (s *CSVRecordStore) Append(rec models.CollectedRecord) error {
	return s.appendRow(renderRecord(rec), "append")
}

// appendRow renders the row in memory first and hands the file a single
// write, so a failed append never leaves a partial line behind.
func (s *CSVRecordStore) appendRow(row []string, op string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(row); err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &PersistenceError{Op: op, Err: err}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return &PersistenceError{Op: op, Err: err}
	}
	if err := f.Close(); err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

// Recent returns the last limit records in file order, oldest first.
// limit <= 0 returns everything. A missing file yields an empty result.
func (s *CSVRecordStore) Recent(limit int) ([]models.CollectedRecord, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "open", Err: err}
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, &PersistenceError{Op: "read", Err: err}
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	rows = rows[1:] // drop header
	if limit > 0 && len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}

	out := make([]models.CollectedRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := parseRecord(row)
		if err != nil {
			return nil, &PersistenceError{Op: "parse", Err: err}
		}
		out = append(out, rec)
	}
	return out, nil
}

func renderRecord(rec models.CollectedRecord) []string {
	return []string{
		rec.CollectedAt.Format(csvTimeLayout),
		formatFloat(rec.SoilTemperature),
		formatFloat(rec.SoilMoisture),
		formatFloat(rec.AirTemperature),
		formatFloat(rec.AirHumidity),
		formatFloat(rec.SunlightVisible),
		formatFloat(rec.SunlightUV),
		formatFloat(rec.SunlightIR),
		formatBool(rec.Relay),
		formatBool(rec.RelayChanged),
	}
}

func parseRecord(row []string) (models.CollectedRecord, error) {
	if len(row) != len(csvHeader) {
		return models.CollectedRecord{}, fmt.Errorf("row has %d columns, want %d", len(row), len(csvHeader))
	}
	ts, err := time.ParseInLocation(csvTimeLayout, row[0], time.Local)
	if err != nil {
		return models.CollectedRecord{}, fmt.Errorf("parse timestamp %q: %w", row[0], err)
	}

	rec := models.CollectedRecord{CollectedAt: ts}
	if rec.SoilTemperature, err = parseOptFloat(row[1]); err != nil {
		return models.CollectedRecord{}, err
	}
	if rec.SoilMoisture, err = parseOptFloat(row[2]); err != nil {
		return models.CollectedRecord{}, err
	}
	if rec.AirTemperature, err = parseOptFloat(row[3]); err != nil {
		return models.CollectedRecord{}, err
	}
	if rec.AirHumidity, err = parseOptFloat(row[4]); err != nil {
		return models.CollectedRecord{}, err
	}
	if rec.SunlightVisible, err = parseOptFloat(row[5]); err != nil {
		return models.CollectedRecord{}, err
	}
	if rec.SunlightUV, err = parseOptFloat(row[6]); err != nil {
		return models.CollectedRecord{}, err
	}
	if rec.SunlightIR, err = parseOptFloat(row[7]); err != nil {
		return models.CollectedRecord{}, err
	}
	if rec.Relay, err = parseOptBool(row[8]); err != nil {
		return models.CollectedRecord{}, err
	}
	if rec.RelayChanged, err = parseOptBool(row[9]); err != nil {
		return models.CollectedRecord{}, err
	}
	return rec, nil
}

// formatFloat renders with two decimals; nil becomes an empty cell.
func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// formatBool renders 1/0; nil becomes an empty cell.
func formatBool(v *bool) string {
	if v == nil {
		return ""
	}
	if *v {
		return "1"
	}
	return "0"
}

func parseOptFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("parse float %q: %w", s, err)
	}
	return &v, nil
}

func parseOptBool(s string) (*bool, error) {
	switch s {
	case "":
		return nil, nil
	case "0":
		v := false
		return &v, nil
	case "1":
		v := true
		return &v, nil
	}
	return nil, fmt.Errorf("parse bool %q", s)
}

func equalHeader(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
