package presentation

import (
	"time"

	"github.com/mockbanker/mockbanker/internal/catalog"
	"github.com/mockbanker/mockbanker/internal/history"
	"github.com/mockbanker/mockbanker/internal/validation"
)

// VerdictDTO represents a validation result for presentation
type VerdictDTO struct {
	Domain     string `json:"domain"`
	Country    string `json:"country,omitempty"`
	Value      string `json:"value"`
	Valid      bool   `json:"valid"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// FromVerdict converts a dispatcher verdict for req to a DTO.
func FromVerdict(req validation.Request, v validation.Verdict) VerdictDTO {
	return VerdictDTO{
		Domain:     req.Domain,
		Country:    req.Country,
		Value:      req.Value,
		Valid:      v.Valid,
		Message:    v.Message,
		Suggestion: v.Suggestion,
	}
}

// HistoryEntryDTO represents one recorded batch
type HistoryEntryDTO struct {
	ID       string   `json:"id"`
	Time     string   `json:"time"` // RFC 3339, UTC
	Category string   `json:"category"`
	Country  string   `json:"country"`
	Count    int      `json:"count"`
	Results  []string `json:"results"`
}

// FromHistoryEntries converts log entries, keeping their newest-first order.
func FromHistoryEntries(entries []history.Entry) []HistoryEntryDTO {
	dtos := make([]HistoryEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = HistoryEntryDTO{
			ID:       e.ID,
			Time:     e.Time().UTC().Format(time.RFC3339),
			Category: e.Category,
			Country:  e.Country,
			Count:    e.Count,
			Results:  e.Results,
		}
	}
	return dtos
}

// FieldDTO is an extra generation input
type FieldDTO struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Choices []string `json:"choices,omitempty"` // empty for free-form input
}

// OptionDTO is one country or brand
type OptionDTO struct {
	Code        string     `json:"code"`
	Label       string     `json:"label"`
	Description string     `json:"description,omitempty"`
	Fields      []FieldDTO `json:"fields,omitempty"`
}

// DomainDTO describes a domain and what it can be asked for
type DomainDTO struct {
	Key           string      `json:"key"`
	Name          string      `json:"name"`
	SelectorLabel string      `json:"selector_label"`
	Default       string      `json:"default"`
	AllowRandom   bool        `json:"allow_random"`
	CountryScoped bool        `json:"country_scoped"`
	Options       []OptionDTO `json:"options"`
}

// FromDescriptor converts a domain. def is the effective default selector.
func FromDescriptor(d catalog.Descriptor, def string) DomainDTO {
	info := d.Info()
	cfg, configurable := d.(catalog.Configurable)

	opts := d.Options()
	dtos := make([]OptionDTO, len(opts))
	for i, o := range opts {
		dtos[i] = OptionDTO{Code: o.Code, Label: o.Label, Description: o.Description}
		if configurable {
			dtos[i].Fields = fromFields(cfg.Fields(o.Code))
		}
	}

	return DomainDTO{
		Key:           info.Key,
		Name:          info.Name,
		SelectorLabel: info.SelectorLabel,
		Default:       def,
		AllowRandom:   info.AllowRandom,
		CountryScoped: info.CountryScoped,
		Options:       dtos,
	}
}

func fromFields(fields []catalog.Field) []FieldDTO {
	if len(fields) == 0 {
		return nil
	}
	out := make([]FieldDTO, len(fields))
	for i, f := range fields {
		out[i] = FieldDTO{Key: f.Key, Label: f.Label}
		for _, c := range f.Choices {
			out[i].Choices = append(out[i].Choices, c.Code)
		}
	}
	return out
}
