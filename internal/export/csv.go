package export

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"

	"github.com/redvlock/agenta/internal/evaluation"
)

// CSVExporter writes the evaluation dataset with a fixed column order:
// Variant, Testset, one column per registry evaluator, Avg. Latency,
// Total Cost, Created, Status. The evaluator columns come from the registry
// snapshot, not from the rows, so every export carries the same header even
// when some evaluations never ran a given evaluator.
type CSVExporter struct {
	registry *evaluation.Registry
}

func NewCSVExporter(registry *evaluation.Registry) *CSVExporter {
	return &CSVExporter{registry: registry}
}

func (e *CSVExporter) Header() []string {
	header := []string{"Variant", "Testset"}
	header = append(header, e.registry.Names()...)
	return append(header, "Avg. Latency", "Total Cost", "Created", "Status")
}

func (e *CSVExporter) Row(eval evaluation.Evaluation) []string {
	row := []string{
		FormatVariants(eval.Variants),
		eval.Testset.Name,
	}

	byName := make(map[string]evaluation.Result, len(eval.AggregatedResults))
	for _, aggregated := range eval.AggregatedResults {
		byName[aggregated.EvaluatorConfig.Name] = aggregated.Result
	}
	for _, name := range e.registry.Names() {
		result, ok := byName[name]
		if !ok {
			row = append(row, emptyCell)
			continue
		}
		row = append(row, FormatResult(result))
	}

	return append(row,
		FormatOptionalResult(eval.AverageLatency),
		FormatOptionalResult(eval.TotalCost),
		FormatDate(eval.CreatedAt),
		string(eval.Status),
	)
}

// Write streams the dataset as CSV.
func (e *CSVExporter) Write(w io.Writer, evals []evaluation.Evaluation) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(e.Header()); err != nil {
		return errors.WithStack(err)
	}
	for _, eval := range evals {
		if err := writer.Write(e.Row(eval)); err != nil {
			return errors.WithStack(err)
		}
	}

	writer.Flush()
	return errors.WithStack(writer.Error())
}
