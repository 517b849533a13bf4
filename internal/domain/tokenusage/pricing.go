package tokenusage

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/config"
)

// Rate holds per-token prices in USD.
type Rate struct {
	InputPerToken  decimal.Decimal
	OutputPerToken decimal.Decimal
}

// ModelRate binds a rate to one provider/model pair.
type ModelRate struct {
	Provider string
	Model    string
	Rate     Rate
}

var million = decimal.NewFromInt(1_000_000)

// defaultRate applies to models without configured pricing, so unknown models
// still bill rather than ride free.
var defaultRate = Rate{
	InputPerToken:  decimal.NewFromFloat(0.000003),
	OutputPerToken: decimal.NewFromFloat(0.000006),
}

// PricingTable prices provider calls. Lookup is provider/model first, then
// model alone, then the default rate.
type PricingTable struct {
	byProviderModel map[string]Rate
	byModel         map[string]Rate
}

// NewPricingTable builds a table from explicit rates.
func NewPricingTable(rates []ModelRate) *PricingTable {
	t := &PricingTable{
		byProviderModel: make(map[string]Rate, len(rates)),
		byModel:         make(map[string]Rate, len(rates)),
	}
	for _, r := range rates {
		if r.Model == "" {
			continue
		}
		if r.Provider != "" {
			t.byProviderModel[pricingKey(r.Provider, r.Model)] = r.Rate
		}
		if _, exists := t.byModel[r.Model]; !exists {
			t.byModel[r.Model] = r.Rate
		}
	}
	return t
}

// NewPricingTableFromCatalog derives rates from the provider catalog's per-1M
// figures. Models with missing or malformed figures fall through to defaults.
func NewPricingTableFromCatalog(entries []config.ProviderEntry) (*PricingTable, error) {
	var rates []ModelRate
	for _, entry := range entries {
		for _, m := range entry.Models {
			if m.InputPerMillion == "" && m.OutputPerMillion == "" {
				continue
			}
			input, err := decimal.NewFromString(m.InputPerMillion)
			if err != nil {
				return nil, fmt.Errorf("provider %q model %q: input_per_1m: %w", entry.Name, m.ID, err)
			}
			output, err := decimal.NewFromString(m.OutputPerMillion)
			if err != nil {
				return nil, fmt.Errorf("provider %q model %q: output_per_1m: %w", entry.Name, m.ID, err)
			}
			rates = append(rates, ModelRate{
				Provider: entry.Name,
				Model:    m.ID,
				Rate: Rate{
					InputPerToken:  input.Div(million),
					OutputPerToken: output.Div(million),
				},
			})
		}
	}
	return NewPricingTable(rates), nil
}

// PriceOf computes the USD cost of one call using that call's own
// provider/model rate.
func (t *PricingTable) PriceOf(provider, model string, inputTokens, outputTokens int) decimal.Decimal {
	rate := t.rateFor(provider, model)
	inputCost := rate.InputPerToken.Mul(decimal.NewFromInt(int64(inputTokens)))
	outputCost := rate.OutputPerToken.Mul(decimal.NewFromInt(int64(outputTokens)))
	return inputCost.Add(outputCost)
}

func (t *PricingTable) rateFor(provider, model string) Rate {
	if t != nil {
		if rate, ok := t.byProviderModel[pricingKey(provider, model)]; ok {
			return rate
		}
		if rate, ok := t.byModel[model]; ok {
			return rate
		}
	}
	return defaultRate
}

func pricingKey(provider, model string) string {
	return strings.ToLower(provider) + "/" + model
}
