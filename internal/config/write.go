package config

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// DefaultHCL returns the default configuration as an HCL file.
func DefaultHCL() []byte {
	return Encode(Default())
}

// Encode renders cfg in the file layout Load reads.
func Encode(cfg *Config) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	body.SetAttributeValue("endpoint", cty.StringVal(cfg.Endpoint))
	body.SetAttributeValue("timeout", cty.StringVal(cfg.Timeout.String()))
	body.SetAttributeValue("log_level", cty.StringVal(cfg.LogLevel))

	body.AppendNewline()
	images := body.AppendNewBlock("images", nil).Body()
	images.SetAttributeValue("disabled", cty.BoolVal(!cfg.Images.Enabled))
	images.SetAttributeValue("rate_per_second", cty.NumberFloatVal(cfg.Images.RatePerSecond))
	images.SetAttributeValue("burst", cty.NumberIntVal(int64(cfg.Images.Burst)))
	images.SetAttributeValue("max_bytes", cty.NumberIntVal(cfg.Images.MaxBytes))

	body.AppendNewline()
	tracing := body.AppendNewBlock("tracing", nil).Body()
	tracing.SetAttributeValue("enabled", cty.BoolVal(cfg.Tracing.Enabled))

	return f.Bytes()
}
