package enricher

import (
	"sort"
	"strings"

	"github.com/LJTian/DailyDigest/internal/textutil"
)

// Summarizer 做抽取式摘要：按词频 + 位置给句子打分，
// 取得分最高的 N 句并按原文顺序拼接。
// 纯函数实现，对同一正文重复调用必然得到相同摘要。
type Summarizer struct {
	maxSentences int
}

func NewSummarizer(maxSentences int) *Summarizer {
	if maxSentences <= 0 {
		maxSentences = 3
	}
	return &Summarizer{maxSentences: maxSentences}
}

const firstSentenceBonus = 0.2 // 新闻正文首句通常是导语

func (s *Summarizer) Summarize(text string) string {
	sentences := textutil.SplitSentences(text)
	if len(sentences) <= s.maxSentences {
		return strings.TrimSpace(text)
	}

	freq := normalizedWordFreq(sentences)

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, 0, len(sentences))
	for i, sentence := range sentences {
		words := textutil.Words(sentence)
		var sum float64
		for _, w := range words {
			sum += freq[w]
		}
		score := 0.0
		if len(words) > 0 {
			score = sum / float64(len(words))
		}
		if i == 0 {
			score += firstSentenceBonus
		}
		ranked = append(ranked, scored{idx: i, score: score})
	}

	// 得分相同按原文位置靠前优先，保证排序稳定、结果可复现
	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].score != ranked[b].score {
			return ranked[a].score > ranked[b].score
		}
		return ranked[a].idx < ranked[b].idx
	})

	picked := make([]int, 0, s.maxSentences)
	for _, r := range ranked[:s.maxSentences] {
		picked = append(picked, r.idx)
	}
	sort.Ints(picked)

	out := make([]string, 0, len(picked))
	for _, i := range picked {
		out = append(out, sentences[i])
	}
	return strings.Join(out, " ")
}

// normalizedWordFreq 统计全文词频并归一化到 (0,1]
func normalizedWordFreq(sentences []string) map[string]float64 {
	counts := make(map[string]int)
	maxCount := 0
	for _, sentence := range sentences {
		for _, w := range textutil.Words(sentence) {
			counts[w]++
			if counts[w] > maxCount {
				maxCount = counts[w]
			}
		}
	}

	freq := make(map[string]float64, len(counts))
	if maxCount == 0 {
		return freq
	}
	for w, c := range counts {
		freq[w] = float64(c) / float64(maxCount)
	}
	return freq
}
