package core

// URL reputation categories reported by the checker
const (
	CategoryUnknown   = 0
	CategoryNormal    = 1
	CategoryMalicious = 2
	CategoryPhishing  = 3
	CategoryScam      = 4
)

var categoryDescriptions = map[int]string{
	CategoryUnknown:   "알 수 없음",
	CategoryNormal:    "일반 웹사이트",
	CategoryMalicious: "악성 웹사이트",
	CategoryPhishing:  "피싱 웹사이트",
	CategoryScam:      "스캠 웹사이트",
}

// DescribeCategory returns the Korean label for a category. Missing and
// out-of-range categories are unknown.
func DescribeCategory(category *int) string {
	if category != nil {
		if desc, ok := categoryDescriptions[*category]; ok {
			return desc
		}
	}
	return categoryDescriptions[CategoryUnknown]
}

// ClassifyCategory derives the safety booleans. Unknown is neither.
func ClassifyCategory(category *int) (isSafe bool, isMalicious bool) {
	if category == nil {
		return false, false
	}
	switch *category {
	case CategoryNormal:
		return true, false
	case CategoryMalicious, CategoryPhishing, CategoryScam:
		return false, true
	default:
		return false, false
	}
}
