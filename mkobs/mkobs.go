// Public domain.

package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/soniakeys/exit"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/twical/internal/tcobs"
	"github.com/soniakeys/twical/internal/tcsolar"
	xrand "golang.org/x/exp/rand"
)

const versionString = "mkobs version 0.1 Go source."
const copyrightString = "Public domain."

func main() {
	defer exit.Handler()

	dawn := flag.Float64("dawn", 15, "true dawn depression, degrees")
	dusk := flag.Float64("dusk", 15, "true dusk depression, degrees")
	lat := flag.Float64("lat", 21.4225, "site latitude, degrees")
	lng := flag.Float64("lng", 39.8262, "site longitude, degrees")
	tz := flag.Float64("tz", 3, "UTC offset, hours")
	from := flag.String("from", "2024-01-15", "first date, yyyy-mm-dd")
	n := flag.Int("n", 12, "number of observations")
	step := flag.Int("step", 30, "days between observations")
	noise := flag.Float64("noise", 0, "uniform noise amplitude, minutes")
	seed := flag.Uint64("seed", 1, "noise generator seed")
	vers := flag.Bool("v", false, "display version and copyright")
	flag.Parse()
	if *vers {
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		os.Exit(0)
	}
	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(1)
	}

	y, m, d, err := parseDate(*from)
	if err != nil {
		exit.Log(err)
	}
	jd0 := tcsolar.Jdn(y, m, d)

	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(*seed)
	// uniform in [-noise, noise], converted to hours
	jitter := func() float64 {
		return (rnd.Float64()*2 - 1) * *noise / 60
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write(tcobs.Header()); err != nil {
		exit.Log(err)
	}
	for i := 0; i < *n; i++ {
		yy, mm, df := julian.JDToCalendar(jd0 + float64(i**step))
		dd := int(df)
		rec := []string{
			fmt.Sprintf("%04d-%02d-%02d", yy, mm, dd),
			trimFloat(*lat), trimFloat(*lng), trimFloat(*tz),
			clockCell(tcsolar.PredictDawn(yy, mm, dd, *lat, *lng, *tz, *dawn), jitter),
			clockCell(tcsolar.PredictDusk(yy, mm, dd, *lat, *lng, *tz, *dusk), jitter),
			"1",
		}
		if err := w.Write(rec); err != nil {
			exit.Log(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		exit.Log(err)
	}
}

// clockCell formats a predicted time as a CSV cell, empty for the
// polar no-crossing case.
func clockCell(h float64, jitter func() float64) string {
	if math.IsNaN(h) {
		return ""
	}
	return strconv.FormatFloat(h+jitter(), 'f', 4, 64)
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseDate parses an ISO calendar date, yyyy-mm-dd.
func parseDate(s string) (y, m, d int, err error) {
	f := strings.Split(s, "-")
	if len(f) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid date (%s)", s)
	}
	if y, err = strconv.Atoi(f[0]); err != nil {
		return
	}
	if m, err = strconv.Atoi(f[1]); err != nil {
		return
	}
	d, err = strconv.Atoi(f[2])
	return
}
