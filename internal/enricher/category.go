package enricher

import "strings"

// DefaultCategory 在所有规则都未命中时使用
const DefaultCategory = "general"

// 类目触发词。判定按命中次数取最高，平局按此处的声明顺序
var categoryRules = []struct {
	name  string
	terms []string
}{
	{"technology", []string{"software", "startup", "tech", "technology", "computer", "internet", "smartphone", "robot", "cyber", "chip", "cloud", "digital", "algorithm"}},
	{"business", []string{"market", "stock", "economy", "economic", "trade", "investor", "investment", "bank", "revenue", "profit", "merger", "earnings", "inflation"}},
	{"science", []string{"research", "study", "scientist", "discovery", "space", "physics", "biology", "climate", "species", "experiment", "telescope"}},
	{"health", []string{"health", "medical", "disease", "hospital", "vaccine", "drug", "patient", "doctor", "virus", "cancer", "treatment"}},
	{"sports", []string{"game", "match", "team", "player", "season", "league", "championship", "tournament", "coach", "olympic", "football", "basketball"}},
	{"politics", []string{"election", "president", "senate", "parliament", "policy", "minister", "congress", "vote", "campaign", "legislation", "diplomatic"}},
	{"entertainment", []string{"film", "movie", "music", "album", "celebrity", "actor", "actress", "concert", "festival", "streaming", "television"}},
}

// Categorize 对标题 + 正文做简单的关键词规则分类
func Categorize(title, body string) string {
	text := strings.ToLower(title + " " + body)

	bestName := DefaultCategory
	bestHits := 0
	for _, rule := range categoryRules {
		hits := 0
		for _, term := range rule.terms {
			hits += strings.Count(text, term)
		}
		if hits > bestHits {
			bestName = rule.name
			bestHits = hits
		}
	}
	return bestName
}
