// Public domain.

// Package tcobs defines the observation record consumed by the
// calibration engine and reads the CSV produced by the upstream
// curation pipeline.
package tcobs

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Clock is an optional time of day, in fractional local hours.
// A zero Clock means no time was recorded.
type Clock struct {
	Hours float64
	Valid bool
}

// At returns a valid Clock at h fractional hours.
func At(h float64) Clock { return Clock{h, true} }

// Observation is one recorded sighting or announcement.
//
// Dawn and Dusk may each be absent.  An observation with both absent
// constrains nothing but is still carried through residual lists.
// Weight is relative and positive.  The zero value means the default
// weight of 1, both here and in Read, which writes 1 for an absent
// weight cell.
type Observation struct {
	Year, Month, Day int
	Lat, Lng         float64 // degrees, south and west negative
	TZ               float64 // signed UTC offset, hours
	Dawn, Dusk       Clock
	Weight           float64
}

// CSV column order, as written by the curation pipeline.
// The weight column may be omitted.
var header = []string{"date", "lat", "lng", "tz", "dawn", "dusk", "weight"}

// Header returns the canonical CSV header row.
func Header() []string { return append([]string{}, header...) }

// Read reads observations in the pipeline CSV format.
//
// The first row must be the header.  Empty dawn, dusk or weight cells
// mean the field is absent; an absent weight is 1.  The returned error
// identifies the offending row and column by name.
func Read(r io.Reader) ([]Observation, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	hdr, err := cr.Read()
	if err != nil {
		return nil, err
	}
	for i, h := range hdr {
		if i >= len(header) || strings.TrimSpace(h) != header[i] {
			return nil, fmt.Errorf("unexpected CSV column %q", h)
		}
	}
	var obs []Observation
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return obs, nil
		}
		if err != nil {
			return nil, err
		}
		o, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %v", row, err)
		}
		obs = append(obs, o)
	}
}

// ReadFile reads observations from a named CSV file.
func ReadFile(fn string) ([]Observation, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func parseRecord(rec []string) (o Observation, err error) {
	if len(rec) < 6 {
		return o, fmt.Errorf("%d columns, need at least 6", len(rec))
	}
	if o.Year, o.Month, o.Day, err = parseDate(rec[0]); err != nil {
		return
	}
	if o.Lat, err = parseFloat("lat", rec[1]); err != nil {
		return
	}
	if o.Lng, err = parseFloat("lng", rec[2]); err != nil {
		return
	}
	if o.TZ, err = parseFloat("tz", rec[3]); err != nil {
		return
	}
	if o.Dawn, err = parseClock("dawn", rec[4]); err != nil {
		return
	}
	if o.Dusk, err = parseClock("dusk", rec[5]); err != nil {
		return
	}
	o.Weight = 1
	if len(rec) > 6 && strings.TrimSpace(rec[6]) != "" {
		if o.Weight, err = parseFloat("weight", rec[6]); err != nil {
			return
		}
	}
	return o, nil
}

// parseDate parses an ISO calendar date, yyyy-mm-dd.
func parseDate(s string) (y, m, d int, err error) {
	f := strings.Split(strings.TrimSpace(s), "-")
	bad := fmt.Errorf("invalid date (%s)", s)
	if len(f) != 3 {
		return 0, 0, 0, bad
	}
	if y, err = strconv.Atoi(f[0]); err != nil {
		return 0, 0, 0, bad
	}
	if m, err = strconv.Atoi(f[1]); err != nil || m < 1 || m > 12 {
		return 0, 0, 0, bad
	}
	if d, err = strconv.Atoi(f[2]); err != nil || d < 1 || d > 31 {
		return 0, 0, 0, bad
	}
	return y, m, d, nil
}

func parseFloat(col, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s (%s)", col, s)
	}
	return v, nil
}

func parseClock(col, s string) (Clock, error) {
	if strings.TrimSpace(s) == "" {
		return Clock{}, nil
	}
	v, err := parseFloat(col, s)
	if err != nil {
		return Clock{}, err
	}
	return At(v), nil
}
