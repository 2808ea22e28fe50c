package accommodation

import (
	"strings"
	"time"

	"stayhub/internal/domain/shared/daterange"
)

const (
	defaultSearchLimit = 24
	maxSearchLimit     = 60
)

// SearchParams describe optional catalog filters and paging.
type SearchParams struct {
	Host          HostID
	City          string
	Country       string
	CheckIn       time.Time
	CheckOut      time.Time
	MinGuests     int
	PriceMinCents int64
	PriceMaxCents int64
	Amenities     []string
	Limit         int
	Offset        int
}

// Normalized returns a sanitized copy of params.
func (p SearchParams) Normalized() SearchParams {
	normalized := p
	normalized.City = strings.TrimSpace(strings.ToLower(normalized.City))
	normalized.Country = strings.TrimSpace(strings.ToLower(normalized.Country))
	normalized.Amenities = normalizeTokens(normalized.Amenities)
	normalized.CheckIn = daterange.Truncate(normalized.CheckIn)
	normalized.CheckOut = daterange.Truncate(normalized.CheckOut)
	if !normalized.CheckIn.IsZero() && !normalized.CheckOut.IsZero() && !normalized.CheckOut.After(normalized.CheckIn) {
		normalized.CheckOut = time.Time{}
	}
	if normalized.MinGuests < 0 {
		normalized.MinGuests = 0
	}
	if normalized.PriceMinCents < 0 {
		normalized.PriceMinCents = 0
	}
	if normalized.PriceMaxCents > 0 && normalized.PriceMaxCents < normalized.PriceMinCents {
		normalized.PriceMaxCents = 0
	}
	if normalized.Limit <= 0 {
		normalized.Limit = defaultSearchLimit
	}
	if normalized.Limit > maxSearchLimit {
		normalized.Limit = maxSearchLimit
	}
	if normalized.Offset < 0 {
		normalized.Offset = 0
	}
	return normalized
}

// StayRange returns the availability window filter if both bounds are set.
func (p SearchParams) StayRange() (daterange.DateRange, bool) {
	if p.CheckIn.IsZero() || p.CheckOut.IsZero() {
		return daterange.DateRange{}, false
	}
	dr, err := daterange.New(p.CheckIn, p.CheckOut)
	if err != nil {
		return daterange.DateRange{}, false
	}
	return dr, true
}

// SearchResult wraps a page of hits with the total match count.
type SearchResult struct {
	Items []*Accommodation
	Total int
}

func normalizeTokens(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(strings.ToLower(token))
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}
