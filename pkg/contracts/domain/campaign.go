package domain

import (
	"time"
)

// Field names a column of the campaign dataset. The string value is the
// exact header text expected in the source file.
type Field string

const (
	FieldCampaignName Field = "CampaignName"
	FieldPlatform     Field = "Platform"
	FieldObjective    Field = "Objective"
	FieldStartDate    Field = "StartDate"
	FieldImpressions  Field = "Impressions"
	FieldClicks       Field = "Clicks"
	FieldAdSpend      Field = "AdSpend ($)"
	FieldRevenue      Field = "Revenue ($)"
	FieldConversions  Field = "Conversions"
	FieldCTR          Field = "CTR (%)"
	FieldROAS         Field = "ROAS"
	FieldROI          Field = "ROI (%)"
)

// UnknownPlatform groups rows whose Platform cell is blank.
const UnknownPlatform = "Unknown"

// RequiredColumns lists every header the dashboard reads, in file order.
var RequiredColumns = []Field{
	FieldCampaignName,
	FieldPlatform,
	FieldObjective,
	FieldStartDate,
	FieldImpressions,
	FieldClicks,
	FieldAdSpend,
	FieldRevenue,
	FieldConversions,
	FieldCTR,
	FieldROAS,
	FieldROI,
}

// NumericFields lists the columns coerced to float64 at load time.
var NumericFields = []Field{
	FieldImpressions,
	FieldClicks,
	FieldAdSpend,
	FieldRevenue,
	FieldConversions,
	FieldCTR,
	FieldROAS,
	FieldROI,
}

// IsNumeric reports whether f is one of the numeric columns.
func (f Field) IsNumeric() bool {
	for _, n := range NumericFields {
		if n == f {
			return true
		}
	}
	return false
}

// CampaignRow is one record of the campaign dataset after coercion.
// CTR and ROI are percentages as plain numbers (3.5 means 3.5%).
// ROAS is a ratio. Numeric fields are 0 when the source cell was
// blank or not a number.
type CampaignRow struct {
	CampaignName string    `json:"campaign_name"`
	Platform     string    `json:"platform" validate:"required"`
	Objective    string    `json:"objective"`
	StartDate    string    `json:"start_date"`
	Start        time.Time `json:"-"`
	HasStart     bool      `json:"-"`
	Impressions  float64   `json:"impressions" validate:"min=0"`
	Clicks       float64   `json:"clicks" validate:"min=0"`
	AdSpend      float64   `json:"ad_spend" validate:"min=0"`
	Revenue      float64   `json:"revenue"`
	Conversions  float64   `json:"conversions" validate:"min=0"`
	CTR          float64   `json:"ctr"`
	ROAS         float64   `json:"roas"`
	ROI          float64   `json:"roi"`
}

// Value returns the numeric value of field. Non-numeric or unknown
// fields return 0.
func (r CampaignRow) Value(field Field) float64 {
	switch field {
	case FieldImpressions:
		return r.Impressions
	case FieldClicks:
		return r.Clicks
	case FieldAdSpend:
		return r.AdSpend
	case FieldRevenue:
		return r.Revenue
	case FieldConversions:
		return r.Conversions
	case FieldCTR:
		return r.CTR
	case FieldROAS:
		return r.ROAS
	case FieldROI:
		return r.ROI
	default:
		return 0
	}
}

// PlatformKey returns the breakdown key for the row.
func (r CampaignRow) PlatformKey() string {
	if r.Platform == "" {
		return UnknownPlatform
	}
	return r.Platform
}

// MonthKey returns the YYYY-MM bucket of the start date. ok is false
// when the start date did not parse.
func (r CampaignRow) MonthKey() (key string, ok bool) {
	if !r.HasStart {
		return "", false
	}
	return r.Start.Format("2006-01"), true
}

// DerivedMetrics are the per-campaign efficiency ratios recomputed from
// the raw counts. Each ratio is 0 when its denominator is 0.
type DerivedMetrics struct {
	CPC               float64 `json:"cpc"`
	CPM               float64 `json:"cpm"`
	ConversionRate    float64 `json:"conversion_rate"`
	CostPerConversion float64 `json:"cost_per_conversion"`
}
