package fund

import (
	"sort"
	"strings"
	"time"

	"github.com/amantech05/Gradlink/internal/model"
	"github.com/shopspring/decimal"
)

// DefaultRecentWindow 默认近期统计窗口
const DefaultRecentWindow = 7 * 24 * time.Hour

// DefaultTopDonors n <= 0 时 TopDonors 返回的人数
const DefaultTopDonors = 5

// Bucket 金额区间
type Bucket string

const (
	BucketAll    Bucket = "all"
	BucketSmall  Bucket = "small"  // <= 25
	BucketMedium Bucket = "medium" // (25, 100]
	BucketLarge  Bucket = "large"  // > 100
)

var (
	smallCeiling  = decimal.NewFromInt(25)
	mediumCeiling = decimal.NewFromInt(100)
)

// ParseBucket 解析查询参数，未知值视为 all
func ParseBucket(s string) Bucket {
	switch b := Bucket(strings.ToLower(strings.TrimSpace(s))); b {
	case BucketSmall, BucketMedium, BucketLarge:
		return b
	}
	return BucketAll
}

// Contains 金额是否落在区间内
func (b Bucket) Contains(amount decimal.Decimal) bool {
	switch b {
	case BucketSmall:
		return amount.LessThanOrEqual(smallCeiling)
	case BucketMedium:
		return amount.GreaterThan(smallCeiling) && amount.LessThanOrEqual(mediumCeiling)
	case BucketLarge:
		return amount.GreaterThan(mediumCeiling)
	}
	return true
}

// SortBy 捐赠排序方式
type SortBy string

const (
	SortByDate   SortBy = "date"
	SortByAmount SortBy = "amount"
	SortByName   SortBy = "name"
)

// ParseSortBy 解析查询参数，未知值按日期排序
func ParseSortBy(s string) SortBy {
	switch v := SortBy(strings.ToLower(strings.TrimSpace(s))); v {
	case SortByAmount, SortByName:
		return v
	}
	return SortByDate
}

// DonationFilter 监控列表过滤条件
type DonationFilter struct {
	Search string
	Bucket Bucket
}

// Summary 捐赠汇总统计
type Summary struct {
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DonationCount  int             `json:"donation_count"`
	AverageAmount  decimal.Decimal `json:"average_amount"`
	UniqueDonors   int             `json:"unique_donors"`
	LargestAmount  decimal.Decimal `json:"largest_amount"`
	SmallestAmount decimal.Decimal `json:"smallest_amount"`
	RecentCount    int             `json:"recent_count"`
	RecentAmount   decimal.Decimal `json:"recent_amount"`
}

// DonorTotal 单个捐赠人的累计金额
type DonorTotal struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func donorKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Summarize 计算汇总统计。晚于 now-window 的捐赠计入近期，
// window 非正时使用 DefaultRecentWindow
func Summarize(donations []model.Donation, now time.Time, window time.Duration) Summary {
	if window <= 0 {
		window = DefaultRecentWindow
	}
	s := Summary{
		TotalAmount:    decimal.Zero,
		AverageAmount:  decimal.Zero,
		LargestAmount:  decimal.Zero,
		SmallestAmount: decimal.Zero,
		RecentAmount:   decimal.Zero,
	}
	if len(donations) == 0 {
		return s
	}

	donors := make(map[string]struct{}, len(donations))
	cutoff := now.Add(-window)
	for i, d := range donations {
		s.TotalAmount = s.TotalAmount.Add(d.Amount)
		donors[donorKey(d.DonorName)] = struct{}{}
		if i == 0 || d.Amount.GreaterThan(s.LargestAmount) {
			s.LargestAmount = d.Amount
		}
		if i == 0 || d.Amount.LessThan(s.SmallestAmount) {
			s.SmallestAmount = d.Amount
		}
		if d.CreatedAt.After(cutoff) {
			s.RecentCount++
			s.RecentAmount = s.RecentAmount.Add(d.Amount)
		}
	}
	s.DonationCount = len(donations)
	s.UniqueDonors = len(donors)
	s.AverageAmount = s.TotalAmount.Div(decimal.NewFromInt(int64(len(donations))))
	return s
}

// TopDonors 按捐赠人姓名（忽略大小写）分组，返回累计金额最高的 n 人，
// 金额相同按姓名排序
func TopDonors(donations []model.Donation, n int) []DonorTotal {
	if n <= 0 {
		n = DefaultTopDonors
	}

	totals := make(map[string]*DonorTotal)
	for _, d := range donations {
		key := donorKey(d.DonorName)
		t, ok := totals[key]
		if !ok {
			t = &DonorTotal{Name: key, Total: decimal.Zero}
			totals[key] = t
		}
		t.Total = t.Total.Add(d.Amount)
		t.Count++
	}

	out := make([]DonorTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// FilterDonations 按关键字（姓名或留言，忽略大小写）和金额区间过滤
func FilterDonations(donations []model.Donation, f DonationFilter) []model.Donation {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]model.Donation, 0, len(donations))
	for _, d := range donations {
		if term != "" &&
			!strings.Contains(strings.ToLower(d.DonorName), term) &&
			!strings.Contains(strings.ToLower(d.Message), term) {
			continue
		}
		if !f.Bucket.Contains(d.Amount) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// SortDonations 返回排序后的副本
func SortDonations(donations []model.Donation, by SortBy) []model.Donation {
	out := make([]model.Donation, len(donations))
	copy(out, donations)

	var less func(i, j int) bool
	switch by {
	case SortByAmount:
		less = func(i, j int) bool { return out[i].Amount.GreaterThan(out[j].Amount) }
	case SortByName:
		less = func(i, j int) bool { return strings.ToLower(out[i].DonorName) < strings.ToLower(out[j].DonorName) }
	default:
		less = func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) }
	}
	sort.SliceStable(out, less)
	return out
}
