package enricher

import (
	"sort"

	"github.com/LJTian/DailyDigest/internal/textutil"
)

// ExtractKeywords 返回去停用词后出现频率最高的前 N 个词。
// 排序先按频次降序、频次相同按字典序，保证输出顺序稳定。
func ExtractKeywords(text string, maxKeywords int) []string {
	if maxKeywords <= 0 {
		maxKeywords = 10
	}

	counts := make(map[string]int)
	for _, w := range textutil.Words(text) {
		counts[w]++
	}
	if len(counts) == 0 {
		return nil
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(a, b int) bool {
		if counts[words[a]] != counts[words[b]] {
			return counts[words[a]] > counts[words[b]]
		}
		return words[a] < words[b]
	})

	if len(words) > maxKeywords {
		words = words[:maxKeywords]
	}
	return words
}
