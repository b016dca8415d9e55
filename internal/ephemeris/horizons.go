package ephemeris

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultHorizonsURL is the JPL Horizons API endpoint.
const DefaultHorizonsURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

// Horizons fetches heliocentric state vectors from the JPL Horizons
// service at a given epoch. Vectors are requested in km and km/s and
// converted to SI; radius, mass, and color come from the built-in catalog
// since the vector table does not carry them.
type Horizons struct {
	BaseURL string
	Client  *http.Client

	catalog *Catalog
}

func NewHorizons() *Horizons {
	return &Horizons{
		BaseURL: DefaultHorizonsURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
		catalog: NewCatalog(),
	}
}

// horizonsIDs maps body names to Horizons COMMAND identifiers. Planets use
// barycenter codes except earth, which has its own body code.
var horizonsIDs = map[string]string{
	"sun":     "10",
	"mercury": "199",
	"venus":   "299",
	"earth":   "399",
	"mars":    "499",
	"jupiter": "599",
	"saturn":  "699",
	"uranus":  "799",
	"neptune": "899",
	"pluto":   "999",
}

func (h *Horizons) Lookup(ctx context.Context, name string, epoch time.Time) (State, error) {
	st, err := h.catalog.Lookup(ctx, name, epoch)
	if err != nil {
		return State{}, err
	}
	id, ok := horizonsIDs[name]
	if !ok {
		return State{}, ErrUnknownBody
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("COMMAND", "'"+id+"'")
	q.Set("EPHEM_TYPE", "'VECTORS'")
	q.Set("CENTER", "'@sun'")
	q.Set("OUT_UNITS", "'KM-S'")
	q.Set("VEC_TABLE", "'2'")
	q.Set("CSV_FORMAT", "'YES'")
	q.Set("TLIST", fmt.Sprintf("'%f'", julianDate(epoch)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return State{}, err
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return State{}, fmt.Errorf("horizons request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return State{}, fmt.Errorf("horizons request: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return State{}, err
	}

	var payload struct {
		Result string `json:"result"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return State{}, fmt.Errorf("horizons response: %w", err)
	}
	if payload.Error != "" {
		return State{}, fmt.Errorf("horizons: %s", payload.Error)
	}

	x, y, vx, vy, err := parseVectorTable(payload.Result)
	if err != nil {
		return State{}, fmt.Errorf("horizons response for %q: %w", name, err)
	}

	// km, km/s -> m, m/s. The simulation is planar; z components are
	// dropped, which is a fair approximation for the major planets.
	st.X.X, st.X.Y = x*1e3, y*1e3
	st.V.X, st.V.Y = vx*1e3, vy*1e3
	return st, nil
}

// parseVectorTable pulls the first CSV record between the $$SOE and $$EOE
// markers of a Horizons vector table. With VEC_TABLE=2 the fields are
// JDTDB, calendar date, X, Y, Z, VX, VY, VZ.
func parseVectorTable(result string) (x, y, vx, vy float64, err error) {
	start := strings.Index(result, "$$SOE")
	end := strings.Index(result, "$$EOE")
	if start < 0 || end < 0 || end < start {
		return 0, 0, 0, 0, fmt.Errorf("no vector data markers")
	}

	for _, line := range strings.Split(result[start+len("$$SOE"):end], "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ","))
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 8 {
			return 0, 0, 0, 0, fmt.Errorf("short vector record: %q", line)
		}
		vals := make([]float64, 0, 6)
		for _, f := range fields[2:8] {
			v, perr := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if perr != nil {
				return 0, 0, 0, 0, fmt.Errorf("bad vector field %q: %w", f, perr)
			}
			vals = append(vals, v)
		}
		return vals[0], vals[1], vals[3], vals[4], nil
	}
	return 0, 0, 0, 0, fmt.Errorf("empty vector table")
}

// julianDate converts a time to a Julian date.
func julianDate(t time.Time) float64 {
	return float64(t.Unix())/86400.0 + 2440587.5
}
