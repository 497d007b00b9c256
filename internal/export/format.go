package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redvlock/agenta/internal/evaluation"
)

// DateFormat is the 24-hour display format shared by the JSON and CSV
// surfaces.
const DateFormat = "02 Jan 2006, 15:04"

const emptyCell = "-"

// FormatResult renders a typed result value for display. Errored results
// render as an error marker rather than a value; numbers keep their natural
// precision without a fixed decimal count.
func FormatResult(result evaluation.Result) string {
	if result.Error != nil {
		if result.Error.Message == "" {
			return "Error"
		}
		return "Error: " + result.Error.Message
	}
	return formatValue(result.Value)
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return emptyCell
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FormatOptionalResult renders a result that may be absent entirely.
func FormatOptionalResult(result *evaluation.Result) string {
	if result == nil {
		return emptyCell
	}
	return FormatResult(*result)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return emptyCell
	}
	return t.Format(DateFormat)
}

// FormatVariants joins the variant names of an evaluation into one cell.
func FormatVariants(variants []evaluation.VariantRef) string {
	if len(variants) == 0 {
		return emptyCell
	}
	names := make([]string, 0, len(variants))
	for _, variant := range variants {
		names = append(names, variant.Name)
	}
	return strings.Join(names, ", ")
}
