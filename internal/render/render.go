package render

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/docker/go-units"
	dto "github.com/prometheus/client_model/go"

	"github.com/rhajizada/loggy/internal/logging"
	"github.com/rhajizada/loggy/internal/termutil"
)

type Renderer struct {
	log   *slog.Logger
	out   io.Writer
	color bool
}

func New(log *slog.Logger, out io.Writer) *Renderer {
	return &Renderer{log: log, out: out, color: termutil.IsTerminal(out)}
}

var headerStyle = lipgloss.NewStyle().Bold(true)

func (r *Renderer) Levels(levels []logging.Level) {
	rows := make([][]string, 0, len(levels))
	for _, l := range levels {
		rows = append(rows, []string{l.String(), strconv.Itoa(int(l))})
	}
	r.table([]string{"LEVEL", "VALUE"}, rows)
}

func (r *Renderer) Handlers(sinks []logging.Sink) {
	if len(sinks) == 0 {
		fmt.Fprintln(r.out, "No handlers configured.")
		return
	}
	rows := make([][]string, 0, len(sinks))
	for i, s := range sinks {
		target := logging.SinkTarget(s)
		if target == "" {
			target = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			logging.SinkKind(s),
			target,
			s.Level().String(),
		})
	}
	r.table([]string{"#", "KIND", "TARGET", "LEVEL"}, rows)
}

// FileWritten reports the size of a log file after a run.
func (r *Renderer) FileWritten(path string, size int64) {
	r.log.Info("log file written", "path", path, "size", units.HumanSize(float64(size)))
}

// Stats prints one row per counter sample.
func (r *Renderer) Stats(families []*dto.MetricFamily) {
	var rows [][]string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			rows = append(rows, []string{
				mf.GetName(),
				strings.Join(labels, ","),
				strconv.FormatFloat(m.GetCounter().GetValue(), 'f', -1, 64),
			})
		}
	}
	if len(rows) == 0 {
		fmt.Fprintln(r.out, "No messages recorded.")
		return
	}
	r.table([]string{"METRIC", "LABELS", "VALUE"}, rows)
}

func (r *Renderer) table(header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	head := formatRow(header, widths)
	if r.color {
		head = headerStyle.Render(head)
	}
	fmt.Fprintln(r.out, head)

	dashes := make([]string, len(widths))
	for i, w := range widths {
		dashes[i] = strings.Repeat("-", w)
	}
	fmt.Fprintln(r.out, formatRow(dashes, widths))

	for _, row := range rows {
		fmt.Fprintln(r.out, formatRow(row, widths))
	}
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprintf("%-*s", widths[i], c)
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}
