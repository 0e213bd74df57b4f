package enricher

import (
	"math"
	"strings"

	"github.com/LJTian/DailyDigest/internal/textutil"
)

// Scorer 是单个情感打分算法的公共接口，返回值在 [-1,1]
type Scorer interface {
	Name() string
	Score(text string) float64
}

// Analyzer 组合多个独立打分器：对各打分器输出取平均，
// 再按固定阈值映射为三档标签。相同输入必然得到相同结果。
type Analyzer struct {
	scorers   []Scorer
	threshold float64
}

func NewAnalyzer(threshold float64, scorers ...Scorer) *Analyzer {
	if len(scorers) == 0 {
		scorers = []Scorer{NewValenceScorer(), NewPolarityScorer()}
	}
	return &Analyzer{scorers: scorers, threshold: threshold}
}

// Analyze 返回组合得分与标签。分档规则：
// score >= threshold 为 positive，score <= -threshold 为 negative，其余 neutral
func (a *Analyzer) Analyze(text string) (float64, string) {
	var sum float64
	for _, s := range a.scorers {
		sum += s.Score(text)
	}
	score := sum / float64(len(a.scorers))

	switch {
	case score >= a.threshold:
		return score, "positive"
	case score <= -a.threshold:
		return score, "negative"
	default:
		return score, "neutral"
	}
}

// 程度副词：增强或减弱后续情感词的强度
var boosters = map[string]float64{
	"very": 0.293, "extremely": 0.293, "incredibly": 0.293, "really": 0.193,
	"absolutely": 0.293, "completely": 0.293, "highly": 0.193, "totally": 0.293,
	"hugely": 0.293, "especially": 0.193,
	"slightly": -0.293, "somewhat": -0.193, "barely": -0.293, "hardly": -0.293,
	"marginally": -0.293, "partly": -0.193,
}

// 否定词：命中后翻转情感词的方向并削弱强度
var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "neither": {}, "nor": {}, "none": {},
	"nothing": {}, "nobody": {}, "without": {}, "cannot": {}, "cant": {},
	"wont": {}, "dont": {}, "doesnt": {}, "didnt": {}, "isnt": {}, "wasnt": {},
	"arent": {}, "werent": {}, "hasnt": {}, "havent": {}, "wouldnt": {},
	"couldnt": {}, "shouldnt": {},
}

const (
	negationScale  = -0.74 // 否定不是简单取反，只保留部分强度
	negationWindow = 3
	valenceAlpha   = 15 // sum / sqrt(sum^2 + alpha) 归一化常数
)

// ValenceScorer 是带权词典打分器：情感词携带 -4..4 的强度，
// 结合前置程度副词与否定词修正后求和，再归一化到 [-1,1]
type ValenceScorer struct{}

func NewValenceScorer() *ValenceScorer {
	return &ValenceScorer{}
}

func (v *ValenceScorer) Name() string {
	return "valence"
}

func (v *ValenceScorer) Score(text string) float64 {
	tokens := tokenizeSentiment(text)

	var sum float64
	for i, tok := range tokens {
		valence, ok := valenceLexicon[tok]
		if !ok {
			continue
		}

		// 回看窗口内的程度副词与否定词
		negated := false
		for j := 1; j <= negationWindow && i-j >= 0; j++ {
			prev := tokens[i-j]
			if boost, ok := boosters[prev]; ok {
				// 距离越远影响越弱
				scale := 1.0 - 0.05*float64(j-1)
				if valence > 0 {
					valence += boost * scale
				} else {
					valence -= boost * scale
				}
			}
			if _, ok := negations[prev]; ok {
				negated = true
			}
		}
		if negated {
			valence *= negationScale
		}

		sum += valence
	}

	if sum == 0 {
		return 0
	}
	return sum / math.Sqrt(sum*sum+valenceAlpha)
}

// PolarityScorer 是均值极性打分器：情感词携带 -1..1 的极性，
// 取全部命中词修正后的平均值
type PolarityScorer struct{}

func NewPolarityScorer() *PolarityScorer {
	return &PolarityScorer{}
}

func (p *PolarityScorer) Name() string {
	return "polarity"
}

func (p *PolarityScorer) Score(text string) float64 {
	tokens := tokenizeSentiment(text)

	var sum float64
	var hits int
	for i, tok := range tokens {
		polarity, ok := polarityLexicon[tok]
		if !ok {
			continue
		}

		if i > 0 {
			prev := tokens[i-1]
			if boost, ok := boosters[prev]; ok {
				polarity *= 1 + boost
			}
		}
		for j := 1; j <= negationWindow && i-j >= 0; j++ {
			if _, ok := negations[tokens[i-j]]; ok {
				polarity *= -0.5
				break
			}
		}

		sum += polarity
		hits++
	}

	if hits == 0 {
		return 0
	}
	mean := sum / float64(hits)
	return math.Max(-1, math.Min(1, mean))
}

// tokenizeSentiment 保留停用词（否定词大多是停用词），只做小写与去标点
func tokenizeSentiment(text string) []string {
	return textutil.AllWords(strings.ReplaceAll(text, "'", ""))
}
