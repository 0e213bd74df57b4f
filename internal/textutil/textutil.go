// Package textutil 提供各处理阶段共用的文本工具：
// 清洗、分词、分句与词集相似度。所有函数均为纯函数。
package textutil

import (
	"regexp"
	"strings"
)

var (
	tagRE        = regexp.MustCompile(`<[^>]+>`)
	urlRE        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	spaceRE      = regexp.MustCompile(`\s+`)
	wordRE       = regexp.MustCompile(`[a-zA-Z]+(?:-[a-zA-Z]+)*`)
	sentenceEndRE = regexp.MustCompile(`([.!?]+)`)
)

// CleanText 去掉残留标签与 URL，折叠空白
func CleanText(text string) string {
	text = tagRE.ReplaceAllString(text, "")
	text = urlRE.ReplaceAllString(text, "")
	text = spaceRE.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Words 返回小写、去停用词后的词序列；仅保留长度 >=3 的字母词（允许连字符）
func Words(text string) []string {
	raw := wordRE.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		if len(w) < 3 || len(w) > 50 {
			continue
		}
		if IsStopword(strings.ReplaceAll(w, "-", "")) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// AllWords 与 Words 类似但不过滤停用词，供摘要打分时统计完整词频
func AllWords(text string) []string {
	return wordRE.FindAllString(strings.ToLower(text), -1)
}

// SplitSentences 按句末标点切分，保留标点，过滤过短碎片
func SplitSentences(text string) []string {
	parts := sentenceEndRE.Split(text, -1)
	ends := sentenceEndRE.FindAllString(text, -1)

	sentences := make([]string, 0, len(parts))
	for i, p := range parts {
		s := strings.TrimSpace(p)
		if s == "" {
			continue
		}
		if i < len(ends) {
			s += ends[i]
		}
		if len(s) > 10 {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// WordSet 返回去停用词后的词集合
func WordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range Words(text) {
		set[w] = struct{}{}
	}
	return set
}

// Similarity 计算两段文本的 Jaccard 词集相似度，范围 [0,1]
func Similarity(a, b string) float64 {
	sa := WordSet(a)
	sb := WordSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}

	inter := 0
	for w := range sa {
		if _, ok := sb[w]; ok {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
