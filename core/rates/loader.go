package rates

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"booking-cost/core/clock"
	"booking-cost/internal/errors"
)

// tableFile is the HCL layout of a rate file:
//
//	currency = "RUB"
//
//	band "day" {
//	  code         = 5
//	  start        = "08:00"
//	  end          = "18:00"
//	  one_time     = 2500
//	  subscription = 2000
//	}
type tableFile struct {
	Currency string      `hcl:"currency,optional"`
	Bands    []bandBlock `hcl:"band,block"`
}

type bandBlock struct {
	Name         string  `hcl:"name,label"`
	Code         int     `hcl:"code,optional"`
	Start        string  `hcl:"start"`
	End          string  `hcl:"end"`
	OneTime      float64 `hcl:"one_time"`
	Subscription float64 `hcl:"subscription"`
}

// LoadFile reads and validates a rate table from an HCL file.
func LoadFile(path string) (*Table, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("failed to read rate file", err).WithContext("path", path)
	}
	return Parse(src, path)
}

// Parse decodes and validates a rate table from HCL source.
func Parse(src []byte, filename string) (*Table, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagError(diags)
	}

	var doc tableFile
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, diagError(diags)
	}

	bands := make([]Band, 0, len(doc.Bands))
	for _, blk := range doc.Bands {
		b, err := blk.band()
		if err != nil {
			return nil, errors.Parsing(fmt.Sprintf("%s: band %q", filename, blk.Name), err)
		}
		bands = append(bands, b)
	}

	table := NewTable(doc.Currency, bands...)
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

func (blk bandBlock) band() (Band, error) {
	start, err := clock.Parse(blk.Start)
	if err != nil {
		return Band{}, fmt.Errorf("start: %w", err)
	}
	end, err := clock.Parse(blk.End)
	if err != nil {
		return Band{}, fmt.Errorf("end: %w", err)
	}
	return Band{
		Name:  blk.Name,
		Code:  blk.Code,
		Start: start,
		End:   end,
		Prices: Prices{
			OneTime:      decimal.NewFromFloat(blk.OneTime),
			Subscription: decimal.NewFromFloat(blk.Subscription),
		},
	}, nil
}

func diagError(diags hcl.Diagnostics) error {
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		msg := diag.Summary
		if diag.Detail != "" {
			msg += ": " + diag.Detail
		}
		if diag.Subject == nil {
			return errors.Parsing(msg, nil)
		}
		return errors.Parsing(fmt.Sprintf("%s:%d: %s", diag.Subject.Filename, diag.Subject.Start.Line, msg), nil).
			WithContext("line", diag.Subject.Start.Line)
	}
	return errors.Parsing(diags.Error(), nil)
}
