// Public domain.

// Package tcprog is the main program of the twical command.
package tcprog

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/soniakeys/exit"
	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/twical/internal/tcobs"
	"github.com/soniakeys/twical/internal/tcsolar"
	"github.com/soniakeys/twical/internal/tcsolver"
	"github.com/soniakeys/unit"
)

const versionString = "twical version 0.1 Go source."
const copyrightString = "Public domain."

// Convention is a named conventional twilight angle pair.
type Convention struct {
	Abbr, Heading string
	Dawn, Dusk    float64 // depression, degrees
}

// CList holds the conventions recognized in the config file.
var CList = []Convention{
	{"MWL", "Muslim World League", 18, 17},
	{"ISNA", "Islamic Society of North America", 15, 15},
	{"Egypt", "Egyptian General Authority", 19.5, 17.5},
	{"Karachi", "University of Islamic Sciences, Karachi", 18, 18},
	{"Tehran", "Institute of Geophysics, Tehran", 17.7, 14},
	{"UOIF", "Union des organisations islamiques de France", 12, 12},
}

func Main() {
	defer exit.Handler()

	cl := parseCommandLine()
	if cl.predict != "" {
		predict(cl.predict)
		return
	}
	opt, cfg := readConfig(cl)

	obs := readObs(cl)

	if cl.score != "" {
		dawn, dusk, err := parsePair(cl.score)
		if err != nil {
			exit.Log(err)
		}
		printScore(obs, "fixed", dawn, dusk, cfg)
		return
	}

	if len(cfg.conventions) > 0 {
		scoreConventions(obs, cfg)
	}
	if cfg.fit {
		calibrate(obs, opt, cfg)
	}
}

// predict handles the -p option: report the dawn and dusk crossing
// times for a single date, place and angle.
func predict(arg string) {
	f := strings.Split(arg, ",")
	if len(f) != 5 {
		exit.Log("-p wants date,lat,lng,tz,angle")
	}
	y, m, d, err := parseDate(f[0])
	if err != nil {
		exit.Log(err)
	}
	var v [4]float64
	for i, s := range f[1:] {
		if v[i], err = strconv.ParseFloat(s, 64); err != nil {
			exit.Log(err)
		}
	}
	lat, lng, tz, angle := v[0], v[1], v[2], v[3]
	dawn := tcsolar.PredictDawn(y, m, d, lat, lng, tz, angle)
	dusk := tcsolar.PredictDusk(y, m, d, lat, lng, tz, angle)
	if math.IsNaN(dawn) { // no crossing that day
		fmt.Printf("%s: sun does not reach %.4g° depression\n", f[0], angle)
		return
	}
	// unit.Time is seconds of time
	fmt.Printf("dawn %v  dusk %v\n",
		sexa.FmtTime(unit.Time(dawn*3600)),
		sexa.FmtTime(unit.Time(dusk*3600)))
}

func readObs(cl *commandLine) []tcobs.Observation {
	var obs []tcobs.Observation
	var err error
	if cl.fnObs == "-" {
		obs, err = tcobs.Read(os.Stdin)
	} else {
		obs, err = tcobs.ReadFile(cl.fnObs)
	}
	if err != nil {
		exit.Log(err)
	}
	return obs
}

func calibrate(obs []tcobs.Observation, opt tcsolver.Options, cfg *config) {
	r, err := tcsolver.Calibrate(obs, opt)
	if err != nil {
		exit.Log(err)
	}
	if cfg.headings {
		fmt.Println(versionString)
	}
	fmt.Printf("dawn angle %7.3f°  (%v)\n", r.DawnAngle.Deg(),
		sexa.FmtAngle(r.DawnAngle))
	fmt.Printf("dusk angle %7.3f°  (%v)\n", r.DuskAngle.Deg(),
		sexa.FmtAngle(r.DuskAngle))
	fmt.Printf("rms %.2f min over %.1f effective observations\n",
		r.RmsMinutes, r.EffectiveObs)
	if cfg.residuals {
		printResiduals(r.Residuals)
	}
}

func printScore(obs []tcobs.Observation, label string, dawn, dusk float64,
	cfg *config) {
	s := tcsolver.Score(obs, dawn, dusk)
	if cfg.headings {
		fmt.Println(versionString)
		scoreHeadings()
	}
	fmt.Println(scoreLine(label, dawn, dusk, s))
	if cfg.residuals {
		printResiduals(s.Residuals)
	}
}

func scoreHeadings() {
	fmt.Println("Convention  Dawn  Dusk     RMS  Dawn bias  Dusk bias")
}

func scoreLine(label string, dawn, dusk float64, s *tcsolver.ScoreResult) string {
	return fmt.Sprintf("%-10s %5.1f %5.1f %7.2f %10.2f %10.2f",
		label, dawn, dusk, s.RmsMinutes, s.DawnBias, s.DuskBias)
}

// scoreConventions scores the configured conventions concurrently,
// printing results in configuration order.
func scoreConventions(obs []tcobs.Observation, cfg *config) {
	type seq struct {
		c   Convention
		rch chan string
	}
	maxWorkers := runtime.GOMAXPROCS(0)
	// prCh keeps results in submission order.  buffered so a fast
	// worker can drop off its result without waiting for workers
	// ahead of it.
	prCh := make(chan chan string, maxWorkers*2)
	cSeq := make(chan *seq)

	go func() {
		for _, cx := range cfg.conventions {
			rch := make(chan string, 1)
			cSeq <- &seq{CList[cx], rch}
			prCh <- rch
		}
		close(cSeq)
		close(prCh)
	}()

	// workers started only as conventions call for them.  we may have
	// more cores than conventions.
	for n := 0; n < maxWorkers; n++ {
		go func() {
			for s := range cSeq {
				sc := tcsolver.Score(obs, s.c.Dawn, s.c.Dusk)
				s.rch <- scoreLine(s.c.Abbr, s.c.Dawn, s.c.Dusk, sc)
			}
		}()
	}

	if cfg.headings {
		fmt.Println(versionString)
		scoreHeadings()
	}
	for rch := range prCh {
		fmt.Println(<-rch)
	}
}

func printResiduals(res []tcsolver.Residual) {
	fmt.Println("  obs       dawn       dusk   (minutes, + = predicted late)")
	for i, r := range res {
		d1, d2 := "      -", "      -"
		if r.DawnOK {
			d1 = fmt.Sprintf("%7.2f", r.Dawn)
		}
		if r.DuskOK {
			d2 = fmt.Sprintf("%7.2f", r.Dusk)
		}
		fmt.Printf("%5d %10s %10s\n", i+1, d1, d2)
	}
}

type commandLine struct {
	dc      string // config file
	score   string // -s option, "dawn,dusk" pair
	predict string // -p option, "date,lat,lng,tz,angle"
	fnObs   string // observations
}

func parseCommandLine() *commandLine {
	var cl commandLine
	dh := flag.Bool("h", false, "")
	dv := flag.Bool("v", false, "")
	flag.StringVar(&cl.dc, "c", "", "")
	flag.StringVar(&cl.score, "s", "", "")
	flag.StringVar(&cl.predict, "p", "", "")
	flag.Usage = func() {
		os.Stderr.WriteString(`
Usage: twical [options] <obsfile>        calibrate angles to observations
       twical [options] -                calibrate observations from stdin
       twical -s <dawn>,<dusk> <obsfile> score a fixed angle pair
       twical -p <date>,<lat>,<lng>,<tz>,<angle>
                                         predict crossing times
       twical -h                         display help and quick reference
       twical -v                         display version and copyright

Options:
       -c <config-file>
`)
	}
	flag.Parse()
	switch {
	case *dh:
		printHelp()
		os.Exit(0)
	case *dv:
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		os.Exit(0)
	case cl.predict != "":
		return &cl
	case flag.NArg() != 1:
		flag.Usage()
		os.Exit(1)
	}
	cl.fnObs = flag.Arg(0)
	return &cl
}

type config struct {
	headings    bool
	residuals   bool
	fit         bool
	conventions []int // indexes into CList
}

func readConfig(cl *commandLine) (tcsolver.Options, *config) {
	opt := tcsolver.DefaultOptions()
	cfg := &config{headings: true, fit: true}
	if cl.dc == "" {
		return opt, cfg
	}
	f, err := os.Open(cl.dc)
	if err != nil {
		exit.Log(err)
	}
	defer f.Close()

	rxKV := regexp.MustCompile(`^([a-z]+)[ \t]*=[ \t]*(.+)$`)
	set := func(key string, v float64) string {
		switch key {
		case "dawn":
			opt.InitialDawn = v
		case "dusk":
			opt.InitialDusk = v
		case "dawnmin":
			opt.DawnMin = v
		case "dawnmax":
			opt.DawnMax = v
		case "duskmin":
			opt.DuskMin = v
		case "duskmax":
			opt.DuskMax = v
		case "tol":
			opt.Tol = v
		case "maxiter":
			opt.MaxIter = int(v)
		default:
			return "Unrecognized config file keyword: " + key
		}
		return ""
	}

read:
	for lr := bufio.NewReader(f); ; {
		l, isPre, err := lr.ReadLine()
		switch {
		case err == io.EOF:
			return opt, cfg
		case err != nil:
			exit.Log(err)
		case isPre:
			exit.Log("Unexpected long line in config file.")
		case len(l) == 0:
			continue
		case l[0] == '#':
			continue
		}
		ls := string(l)
		switch ls {
		case "headings":
			cfg.headings = true
			continue
		case "noheadings":
			cfg.headings = false
			continue
		case "residuals":
			cfg.residuals = true
			continue
		case "noresiduals":
			cfg.residuals = false
			continue
		case "fit":
			cfg.fit = true
			continue
		case "nofit":
			cfg.fit = false
			continue
		}
		if ss := rxKV.FindStringSubmatch(ls); len(ss) == 3 {
			v, err := strconv.ParseFloat(ss[2], 64)
			if err != nil {
				exit.Log(fmt.Sprintf("%v\nConfig file line: %s", err, ls))
			}
			if errStr := set(ss[1], v); errStr > "" {
				exit.Log(fmt.Sprintf("%s\nConfig file line: %s", errStr, ls))
			}
			continue
		}
		// only valid possibility left is a convention name
		for cx, c := range CList {
			if ls == c.Abbr || ls == c.Heading {
				cfg.conventions = append(cfg.conventions, cx)
				continue read
			}
		}
		exit.Log("Unrecognized line in config file: " + ls)
	}
}

// parsePair parses the -s argument, two comma separated degree values.
func parsePair(s string) (dawn, dusk float64, err error) {
	f := strings.Split(s, ",")
	if len(f) != 2 {
		return 0, 0, fmt.Errorf("-s wants <dawn>,<dusk>")
	}
	if dawn, err = strconv.ParseFloat(f[0], 64); err != nil {
		return
	}
	dusk, err = strconv.ParseFloat(f[1], 64)
	return
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

func printHelp() {
	fmt.Println(`
Twical fits the two solar depression angles marking dawn and dusk
twilight onset to field observed clock times, by weighted nonlinear
least squares.  Input is a CSV of observations as produced by the
curation pipeline, header ` + strings.Join(tcobs.Header(), ",") + `.
Empty dawn or dusk cells mean the time was not recorded.

Config file keywords:
   headings
   noheadings
   residuals
   noresiduals
   fit
   nofit
   dawn= dusk= dawnmin= dawnmax= duskmin= duskmax= tol= maxiter=

Conventions (scored against the dataset when listed):`)
	for _, c := range CList {
		fmt.Printf("   %-8s %4.3g/%-4.3g  %s\n", c.Abbr, c.Dawn, c.Dusk, c.Heading)
	}
	fmt.Println(`
For full documentation:
   go doc github.com/soniakeys/twical`)
}
