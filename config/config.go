package config

import (
	"dsc/core"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/config"
)

func setDefaults() {
	config.SetDefaults(config.H{
		"app.engine_address":       "dsc-engine",
		"app.port":                 9000,
		"oracle.timeout":           "3h",
		"worker.solvency_interval": "1m",
		"debt_token.name":          "Decentralized Stable Coin",
		"debt_token.symbol":        "DSC",
	})
}

// Load load config file, DSC_ prefixed env vars fill keys the file leaves out
func Load(cfgFile string, cfg *core.Config) error {
	setDefaults()
	config.AutomaticLoadEnv("DSC")
	if err := config.LoadYaml(cfgFile, cfg); err != nil {
		return err
	}

	_, err := govalidator.ValidateStruct(cfg)
	return err
}
