// conf/defaults.go default values for settings
package conf

import (
	"time"

	"github.com/spf13/viper"
	"github.com/tphakala/cocatalog/internal/catalog/entities"
)

// Sets default values for the configuration.
func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("debug", false)

	v.SetDefault("catalog.filename", entities.CatalogFilename)
	v.SetDefault("catalog.readonly", true)
	v.SetDefault("catalog.slowquerythreshold", 200*time.Millisecond)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.timezone", "Local")
	v.SetDefault("logging.modulelevels", map[string]string{})

	v.SetDefault("output.format", "table")

	v.SetDefault("metrics.textfile", "")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.dsn", "")
}
