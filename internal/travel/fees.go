// Package travel resolves the fixed travel fee charged for a wedding venue's
// region. Unknown regions cost nothing; the studio absorbs short moves.
package travel

import "strings"

// Fees are keyed by region (시/도) with a flat KRW amount. The metro area
// around the studio is free.
var regionFees = map[string]int64{
	"서울":   0,
	"인천":   30000,
	"경기":   30000,
	"대전":   70000,
	"세종":   70000,
	"충북":   70000,
	"충남":   70000,
	"강원":   100000,
	"대구":   100000,
	"전북":   100000,
	"광주":   150000,
	"전남":   150000,
	"부산":   150000,
	"울산":   150000,
	"경북":   100000,
	"경남":   150000,
	"제주":   200000,
}

// FeeFor returns the travel fee for a free-text region/district string.
// Matching is by leading region name; unrecognized input returns 0.
func FeeFor(region string) int64 {
	region = strings.TrimSpace(region)
	if region == "" {
		return 0
	}
	// Full names like "서울특별시" or "경기도" start with the short key.
	for name, fee := range regionFees {
		if strings.HasPrefix(region, name) {
			return fee
		}
	}
	return 0
}
