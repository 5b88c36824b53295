package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/san-kum/adsorb/internal/kinetics"
	"github.com/san-kum/adsorb/internal/ode"
	"github.com/san-kum/adsorb/internal/viz"
)

const ModelName = "pseudo-second-order"

// Document is the JSON form of one run.
type Document struct {
	ID         string          `json:"id"`
	Model      string          `json:"model"`
	Timestamp  time.Time       `json:"timestamp"`
	Params     kinetics.Params `json:"params"`
	Integrator string          `json:"integrator"`
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Final      float64         `json:"final"`
	Stats      ode.Stats       `json:"stats"`
	Times      []float64       `json:"times"`
	Q          []float64       `json:"q"`
}

func NewDocument(sol *kinetics.Solution, p kinetics.Params, integrator string) Document {
	final, _ := sol.Final()
	return Document{
		ID:         uuid.NewString(),
		Model:      ModelName,
		Timestamp:  time.Now().UTC(),
		Params:     p,
		Integrator: integrator,
		Success:    sol.Success,
		Message:    sol.Message,
		Final:      final,
		Stats:      sol.Stats,
		Times:      sol.Times,
		Q:          sol.Q,
	}
}

// CSV writes a time,q header followed by one row per sample.
func CSV(w io.Writer, sol *kinetics.Solution) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"time", "q"}); err != nil {
		return err
	}
	for i, t := range sol.Times {
		row := []string{
			strconv.FormatFloat(t, 'f', 6, 64),
			strconv.FormatFloat(sol.Q[i], 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func JSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// SVG renders the curve of sol with the equilibrium line at qe.
func SVG(sol *kinetics.Solution, qe float64, width, height int) string {
	return CurveToSVG(sol.Times, sol.Q, qe, width, height, viz.ChartCaption)
}

// Files writes a successful solution to whichever paths are set. Failed runs
// are skipped: nothing is written for them.
type Files struct {
	CSVPath    string
	JSONPath   string
	SVGPath    string
	Integrator string
	SVGWidth   int
	SVGHeight  int
}

func (f *Files) Report(sol *kinetics.Solution, p kinetics.Params) error {
	if sol == nil || !sol.Success {
		return nil
	}

	if f.CSVPath != "" {
		if err := writeFile(f.CSVPath, func(w io.Writer) error { return CSV(w, sol) }); err != nil {
			return err
		}
	}
	if f.JSONPath != "" {
		doc := NewDocument(sol, p, f.Integrator)
		if err := writeFile(f.JSONPath, func(w io.Writer) error { return JSON(w, doc) }); err != nil {
			return err
		}
	}
	if f.SVGPath != "" {
		width, height := f.SVGWidth, f.SVGHeight
		if width <= 0 {
			width = 800
		}
		if height <= 0 {
			height = 500
		}
		svg := SVG(sol, p.Qe, width, height)
		if err := writeFile(f.SVGPath, func(w io.Writer) error {
			_, err := io.WriteString(w, svg)
			return err
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer file.Close()

	if err := write(file); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
