package core

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// Config engine config
type Config struct {
	App         App          `json:"app"`
	DB          db.Config    `json:"db"`
	Oracle      Oracle       `json:"oracle"`
	Worker      Worker       `json:"worker"`
	DebtToken   DebtTokenCfg `json:"debt_token"`
	Collaterals []Collateral `json:"collaterals"`
}

// App app config
type App struct {
	EngineAddress string `json:"engine_address" valid:"required"`
	Port          int    `json:"port"`
}

// Oracle price oracle config
type Oracle struct {
	Timeout  Duration `json:"timeout"`
	CacheTTL Duration `json:"cache_ttl"`
}

// Worker background worker config
type Worker struct {
	// SolvencyInterval zero disables the solvency worker
	SolvencyInterval Duration `json:"solvency_interval"`
}

// DebtTokenCfg debt token config
type DebtTokenCfg struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol" valid:"required"`
}

// Collateral one registered collateral asset and its price source
type Collateral struct {
	Asset        string `json:"asset" valid:"required"`
	FeedDecimals uint8  `json:"feed_decimals"`
	// Price initial answer in feed decimals, eg "200000000000" for $2000 with 8 decimals
	Price       string `json:"price" valid:"numeric"`
	Description string `json:"description"`
}

// Assets asset identities in registration order
func (c *Config) Assets() []Asset {
	assets := make([]Asset, 0, len(c.Collaterals))
	for _, col := range c.Collaterals {
		assets = append(assets, Asset(col.Asset))
	}

	return assets
}

// Duration time.Duration decoded from "90m" style strings or nanoseconds
type Duration time.Duration

// Std as time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// UnmarshalJSON implement json.Unmarshaler
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(value)
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return err
		}

		*d = Duration(dur)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}

	return nil
}
