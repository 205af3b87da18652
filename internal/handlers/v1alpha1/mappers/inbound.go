package mappers

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/siteplan/duration-planner/internal/estimation/calculators"
	"github.com/siteplan/duration-planner/internal/model"
)

// InputFromQuery reads the calculator parameters of a form or query string.
// A missing key keeps its default value; a key that is present but empty or
// not a number reads as zero. The result is not clamped.
func InputFromQuery(values url.Values) model.ProjectInput {
	input := model.DefaultProjectInput()
	fields := calculators.Fields(&input)

	for _, key := range calculators.ParamKeys {
		raw, present := values[key]
		if !present {
			continue
		}
		value := ""
		if len(raw) > 0 {
			value = raw[0]
		}
		*fields[key] = parseNumber(value)
	}

	return input
}

func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
