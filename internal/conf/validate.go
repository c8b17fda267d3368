package conf

import (
	"fmt"
	"strings"

	"github.com/tphakala/cocatalog/internal/errors"
	"github.com/tphakala/cocatalog/internal/logger"
	"github.com/tphakala/cocatalog/internal/report"
)

// ValidateSettings checks settings and normalizes case-insensitive values.
// All problems are reported together.
func ValidateSettings(s *Settings) error {
	var problems []error

	s.Logging.Level = strings.ToLower(strings.TrimSpace(s.Logging.Level))
	if !logger.ValidLevel(s.Logging.Level) {
		problems = append(problems, fmt.Errorf("logging.level: unknown level %q", s.Logging.Level))
	}
	for module, level := range s.Logging.ModuleLevels {
		if !logger.ValidLevel(strings.ToLower(level)) {
			problems = append(problems, fmt.Errorf("logging.modulelevels.%s: unknown level %q", module, level))
		}
	}

	if format, err := report.ParseFormat(s.Output.Format); err != nil {
		problems = append(problems, fmt.Errorf("output.format: %w", err))
	} else {
		s.Output.Format = string(format)
	}

	if s.Catalog.Filename == "" {
		problems = append(problems, fmt.Errorf("catalog.filename: must not be empty"))
	}
	if s.Catalog.SlowQueryThreshold < 0 {
		problems = append(problems, fmt.Errorf("catalog.slowquerythreshold: must not be negative"))
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New(errors.Join(problems...)).
		Component("configuration").
		Category(errors.CategoryConfiguration).
		Context("problems", len(problems)).
		Build()
}
