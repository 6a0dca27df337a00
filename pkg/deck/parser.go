package deck

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type Deck struct {
	Entries []Entry     // Capacitance entries
	Pair    [2]int      // Conductor pair to report
	Sweep   *SweepParam // Optional sweep request
	N       int         // Highest conductor index seen
	Title   string      // Deck title
}

type Entry struct {
	Name  string  // Entry name (C11, Cm, ...)
	I     int     // Row conductor, 1-based
	J     int     // Column conductor, 1-based
	Value float64 // Capacitance (F)
}

type SweepParam struct {
	Target string  // Entry name to sweep
	Scale  string  // DEC, OCT, LIN
	Points int     // Total point count, endpoints inclusive
	Start  float64 // Start capacitance (F)
	Stop   float64 // Stop capacitance (F)
}

var unitMap = map[string]float64{
	"T":   1e12,  // tera
	"G":   1e9,   // giga
	"meg": 1e6,   // mega
	"K":   1e3,   // kilo
	"k":   1e3,   // kilo
	"m":   1e-3,  // milli
	"u":   1e-6,  // micro
	"n":   1e-9,  // nano
	"p":   1e-12, // pico
	"f":   1e-15, // femto
}

func Parse(input string) (*Deck, error) {
	scanner := bufio.NewScanner(strings.NewReader(input))
	d := &Deck{
		Pair: [2]int{1, 2},
	}

	// Title or comment
	if scanner.Scan() {
		d.Title = strings.TrimPrefix(scanner.Text(), "*")
		d.Title = strings.TrimSpace(d.Title)
	}

	var currentLine string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if len(line) == 0 {
			if currentLine != "" {
				if err := parseLine(d, currentLine); err != nil {
					return nil, err
				}
				currentLine = ""
			}
			continue
		}

		// Inline comment
		if idx := strings.Index(line, "*"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
			if len(line) == 0 {
				continue
			}
		}

		// Line continuation
		if strings.HasPrefix(line, "+") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "+"))
			if currentLine != "" {
				currentLine += " " + line
			}
			continue
		}

		if currentLine != "" {
			if err := parseLine(d, currentLine); err != nil {
				return nil, err
			}
		}
		currentLine = line
	}

	// Final line
	if currentLine != "" {
		if err := parseLine(d, currentLine); err != nil {
			return nil, err
		}
	}

	if d.Sweep != nil && d.FindEntry(d.Sweep.Target) == nil {
		return nil, fmt.Errorf("sweep target %s is not an entry in the deck", d.Sweep.Target)
	}

	return d, nil
}

func parseLine(d *Deck, line string) error {
	line = regexp.MustCompile(`\s+`).ReplaceAllString(line, " ")

	if strings.HasPrefix(line, ".") {
		return parseDotCommand(d, line)
	}

	entry, err := parseEntry(line)
	if err != nil {
		return err
	}

	for _, e := range d.Entries {
		if e.I == entry.I && e.J == entry.J {
			return fmt.Errorf("duplicate entry for position (%d,%d): %s", entry.I, entry.J, entry.Name)
		}
	}

	d.Entries = append(d.Entries, *entry)
	if entry.I > d.N {
		d.N = entry.I
	}
	if entry.J > d.N {
		d.N = entry.J
	}
	return nil
}

// Parse .pair, .sweep
func parseDotCommand(d *Deck, line string) error {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return fmt.Errorf("invalid dot command")
	}

	switch strings.ToLower(fields[0]) {
	case ".pair":
		if len(fields) < 3 {
			return fmt.Errorf("insufficient pair parameters, need two conductor indices")
		}
		a, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("invalid pair index: %v", err)
		}
		b, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("invalid pair index: %v", err)
		}
		if a < 1 || b < 1 {
			return fmt.Errorf("conductor indices start at 1: %s", line)
		}
		if a == b {
			return fmt.Errorf("pair indices must name two different conductors")
		}
		d.Pair = [2]int{a, b}

	case ".sweep":
		if len(fields) < 6 {
			return fmt.Errorf("insufficient sweep parameters, need entry, scale, points, start, and stop")
		}
		sw := &SweepParam{Target: fields[1]}

		// DEC, OCT, LIN
		sw.Scale = strings.ToUpper(fields[2])
		if sw.Scale != "DEC" && sw.Scale != "OCT" && sw.Scale != "LIN" {
			return fmt.Errorf("invalid sweep scale: %s", sw.Scale)
		}

		var err error
		sw.Points, err = strconv.Atoi(fields[3])
		if err != nil {
			return fmt.Errorf("invalid points number: %v", err)
		}
		if sw.Points < 1 {
			return fmt.Errorf("sweep needs at least one point")
		}
		sw.Start, err = ParseValue(fields[4])
		if err != nil {
			return fmt.Errorf("invalid sweep start: %v", err)
		}
		sw.Stop, err = ParseValue(fields[5])
		if err != nil {
			return fmt.Errorf("invalid sweep stop: %v", err)
		}
		d.Sweep = sw

	default:
		return fmt.Errorf("unsupported dot command: %s", fields[0])
	}

	return nil
}

// Parse capacitance entry: <name> <i> <j> <value>
func parseEntry(line string) (*Entry, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return nil, fmt.Errorf("invalid entry format: %s", line)
	}

	name := fields[0]
	if strings.ToUpper(string(name[0])) != "C" {
		return nil, fmt.Errorf("unsupported entry type: %s", name)
	}

	i, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("invalid conductor index: %v", err)
	}
	j, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("invalid conductor index: %v", err)
	}
	if i < 1 || j < 1 {
		return nil, fmt.Errorf("conductor indices start at 1: %s", line)
	}

	value, err := ParseValue(fields[3])
	if err != nil {
		return nil, err
	}

	return &Entry{Name: name, I: i, J: j, Value: value}, nil
}

// FindEntry returns the entry with the given name, or nil. Names are
// matched case-insensitively.
func (d *Deck) FindEntry(name string) *Entry {
	for i := range d.Entries {
		if strings.EqualFold(d.Entries[i].Name, name) {
			return &d.Entries[i]
		}
	}
	return nil
}

// PairMatrix assembles the 2x2 capacitance matrix for the deck's
// reported pair. A mutual entry given for only one side is mirrored to
// the other. Missing self-capacitance is an error; a pair with no
// mutual entry at all is simply uncoupled.
func (d *Deck) PairMatrix() ([2][2]float64, error) {
	var c [2][2]float64
	i, j := d.Pair[0], d.Pair[1]

	values := make(map[[2]int]float64, len(d.Entries))
	for _, e := range d.Entries {
		values[[2]int{e.I, e.J}] = e.Value
	}

	for n, idx := range []int{i, j} {
		self, ok := values[[2]int{idx, idx}]
		if !ok {
			return c, fmt.Errorf("no self-capacitance entry for conductor %d", idx)
		}
		c[n][n] = self
	}

	upper, hasUpper := values[[2]int{i, j}]
	lower, hasLower := values[[2]int{j, i}]
	switch {
	case hasUpper && hasLower:
		c[0][1], c[1][0] = upper, lower
	case hasUpper:
		c[0][1], c[1][0] = upper, upper
	case hasLower:
		c[0][1], c[1][0] = lower, lower
	}

	return c, nil
}

// ParseValue - Parse value and factor. 1p -> 1e-12
func ParseValue(val string) (float64, error) {
	re := regexp.MustCompile(`^([-+]?\d*\.?\d+(?:[eE][-+]?\d+)?)(meg|[TGMKkmunpf])?s?$`)
	matches := re.FindStringSubmatch(strings.TrimSpace(val))

	if matches == nil {
		return 0, fmt.Errorf("invalid value format: %s", val)
	}

	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, err
	}

	// factor
	if len(matches) > 2 && matches[2] != "" {
		if multiplier, ok := unitMap[matches[2]]; ok {
			num *= multiplier
		}
	}

	return num, nil
}
