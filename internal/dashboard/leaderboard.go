package dashboard

import "campaignpulse/pkg/contracts/domain"

// Leaderboard formats the top n campaigns by ROAS. Ranks start at 1.
func Leaderboard(rows []domain.CampaignRow, n int, f *Formatter) []domain.LeaderboardRow {
	top := RankByROAS(rows, n)

	out := make([]domain.LeaderboardRow, len(top))
	for i, r := range top {
		out[i] = domain.LeaderboardRow{
			Rank:      i + 1,
			Campaign:  r.CampaignName,
			Platform:  r.Platform,
			Objective: r.Objective,
			Spend:     f.Currency(r.AdSpend),
			Revenue:   f.Currency(r.Revenue),
			ROAS:      f.Ratio(r.ROAS),
			ROI:       f.Percent(r.ROI),
			CTR:       f.Percent(r.CTR),
		}
	}
	return out
}
