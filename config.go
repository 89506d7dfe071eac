package jobscout

// ScoreWeights tunes candidate discovery. Only the relative ordering of
// candidates is meaningful; absolute totals are not.
type ScoreWeights struct {
	ATSContainer     int `json:"atsContainer" yaml:"ats_container"`
	StrongMarker     int `json:"strongMarker" yaml:"strong_marker"`
	WeakMarker       int `json:"weakMarker" yaml:"weak_marker"`
	AttrKeyword      int `json:"attrKeyword" yaml:"attr_keyword"`
	ListItem         int `json:"listItem" yaml:"list_item"`
	Anchor           int `json:"anchor" yaml:"anchor"`
	Repeating        int `json:"repeating" yaml:"repeating"`
	ListRoleBoost    int `json:"listRoleBoost" yaml:"list_role_boost"`
	KeywordTextBoost int `json:"keywordTextBoost" yaml:"keyword_text_boost"`
}

// DefaultScoreWeights returns the stock discovery weights.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		ATSContainer:     6,
		StrongMarker:     5,
		WeakMarker:       4,
		AttrKeyword:      2,
		ListItem:         1,
		Anchor:           1,
		Repeating:        1,
		ListRoleBoost:    2,
		KeywordTextBoost: 1,
	}
}

// DefaultLocationKeywords are place names recognized by location inference.
var DefaultLocationKeywords = []string{
	"China", "Beijing", "Shanghai", "Shenzhen", "Guangzhou", "Hangzhou", "Chengdu",
	"中国", "北京", "上海", "深圳", "广州", "杭州", "成都",
	"Singapore", "Hong Kong", "Taiwan", "Macau", "Japan", "Tokyo", "Korea", "Seoul",
	"India", "Bangalore", "London", "Berlin", "Paris", "Amsterdam", "Dublin",
	"New York", "San Francisco", "Seattle", "Toronto", "Sydney",
	"Remote", "Hybrid", "远程",
}

// Config holds the engine's tunables. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	Weights          ScoreWeights `json:"weights" yaml:"weights"`
	LocationKeywords []string     `json:"locationKeywords" yaml:"location_keywords"`
}

// DefaultConfig returns the stock engine configuration.
func DefaultConfig() Config {
	return Config{
		Weights:          DefaultScoreWeights(),
		LocationKeywords: append([]string(nil), DefaultLocationKeywords...),
	}
}
