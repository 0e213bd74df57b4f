package enricher

// valenceLexicon 是 ValenceScorer 的带权情感词典，强度范围 -4..4。
// 词表偏向新闻语料中常见的情感表达。
var valenceLexicon = map[string]float64{
	// 正向
	"good": 1.9, "great": 3.1, "excellent": 3.2, "amazing": 2.8,
	"wonderful": 2.7, "fantastic": 2.9, "outstanding": 2.8, "remarkable": 2.2,
	"success": 2.1, "successful": 2.2, "win": 2.5, "wins": 2.3, "winner": 2.4,
	"victory": 2.8, "triumph": 2.9, "breakthrough": 2.4, "progress": 1.8,
	"improve": 1.6, "improves": 1.6, "improved": 1.7, "improvement": 1.8,
	"growth": 1.7, "gain": 1.5, "gains": 1.5, "boost": 1.6, "surge": 1.4,
	"strong": 1.3, "stronger": 1.5, "record": 1.2, "soar": 1.9, "soars": 1.9,
	"rally": 1.3, "recover": 1.4, "recovery": 1.5, "thrive": 2.2,
	"benefit": 1.6, "benefits": 1.5, "promising": 1.9, "optimistic": 2.0,
	"hope": 1.7, "hopeful": 1.9, "celebrate": 2.4, "celebrated": 2.2,
	"praise": 2.0, "praised": 2.0, "award": 1.8, "awarded": 1.8,
	"innovative": 1.9, "innovation": 1.7, "support": 1.2, "agreement": 1.3,
	"peace": 2.2, "safe": 1.4, "safety": 1.2, "happy": 2.6, "joy": 2.8,
	"love": 2.9, "best": 3.0, "better": 1.8, "positive": 1.9,

	// 负向
	"bad": -2.1, "terrible": -2.9, "horrible": -2.9, "awful": -2.6,
	"worst": -3.1, "worse": -2.0, "poor": -1.8, "negative": -1.8,
	"fail": -2.3, "fails": -2.2, "failed": -2.3, "failure": -2.5,
	"crisis": -2.6, "disaster": -3.0, "catastrophe": -3.3, "tragedy": -3.0,
	"tragic": -2.9, "death": -2.9, "deaths": -2.9, "dead": -2.8,
	"die": -2.7, "died": -2.7, "kill": -3.2, "killed": -3.2, "killing": -3.1,
	"war": -2.6, "attack": -2.4, "attacks": -2.4, "violence": -2.7,
	"violent": -2.6, "threat": -2.0, "threats": -2.0, "fear": -2.2,
	"panic": -2.4, "crash": -2.4, "collapse": -2.5, "plunge": -1.9,
	"decline": -1.5, "drop": -1.2, "loss": -1.9, "losses": -1.9,
	"lose": -1.8, "lost": -1.7, "damage": -1.9, "destroy": -2.7,
	"destroyed": -2.7, "destruction": -2.8, "fraud": -2.8, "scandal": -2.4,
	"corruption": -2.7, "crime": -2.3, "criminal": -2.2, "arrest": -1.8,
	"arrested": -1.8, "lawsuit": -1.4, "ban": -1.5, "banned": -1.6,
	"warning": -1.3, "warn": -1.2, "warns": -1.2, "risk": -1.3,
	"risks": -1.3, "danger": -2.1, "dangerous": -2.1, "hurt": -2.0,
	"injured": -2.1, "injury": -1.9, "victim": -2.0, "victims": -2.1,
	"problem": -1.4, "problems": -1.4, "concern": -1.1, "concerns": -1.1,
	"outbreak": -2.0, "recession": -2.2, "unemployment": -1.8,
	"shortage": -1.5, "hate": -2.7, "angry": -2.2, "anger": -2.2,
	"sad": -2.1, "controversy": -1.5, "dispute": -1.3, "conflict": -1.9,
}

// polarityLexicon 是 PolarityScorer 的极性词典，范围 -1..1。
// 与 valenceLexicon 相互独立：词表与刻度都不同。
var polarityLexicon = map[string]float64{
	// 正向
	"good": 0.7, "great": 0.8, "excellent": 1.0, "perfect": 1.0,
	"amazing": 0.6, "awesome": 1.0, "wonderful": 1.0, "fantastic": 0.9,
	"best": 1.0, "better": 0.5, "beautiful": 0.85, "brilliant": 0.9,
	"happy": 0.8, "glad": 0.5, "pleased": 0.65, "delighted": 1.0,
	"impressive": 0.9, "important": 0.4, "significant": 0.35,
	"successful": 0.75, "success": 0.7, "effective": 0.6, "efficient": 0.6,
	"strong": 0.45, "positive": 0.55, "promising": 0.6, "popular": 0.4,
	"safe": 0.5, "stable": 0.4, "healthy": 0.5, "clean": 0.4,
	"innovative": 0.6, "valuable": 0.5, "win": 0.8, "winning": 0.75,
	"growth": 0.4, "improved": 0.55, "improving": 0.5, "recovery": 0.45,
	"progress": 0.5, "agreement": 0.35, "peaceful": 0.7, "hope": 0.5,
	"optimism": 0.65, "optimistic": 0.7, "boom": 0.6, "thriving": 0.8,

	// 负向
	"bad": -0.7, "terrible": -1.0, "horrible": -1.0, "awful": -1.0,
	"worst": -1.0, "worse": -0.6, "poor": -0.6, "weak": -0.5,
	"sad": -0.5, "unhappy": -0.6, "disappointing": -0.6, "disappointed": -0.75,
	"negative": -0.5, "failure": -0.8, "failed": -0.7, "failing": -0.65,
	"crisis": -0.8, "disaster": -1.0, "catastrophic": -1.0, "tragic": -0.9,
	"deadly": -0.9, "fatal": -0.85, "dangerous": -0.7, "danger": -0.65,
	"threat": -0.6, "violent": -0.8, "violence": -0.75, "war": -0.7,
	"attack": -0.65, "crash": -0.7, "collapse": -0.75, "decline": -0.45,
	"loss": -0.55, "losing": -0.5, "damage": -0.6, "damaged": -0.6,
	"broken": -0.5, "corrupt": -0.85, "illegal": -0.6, "fraud": -0.85,
	"scandal": -0.7, "crime": -0.6, "fear": -0.6, "panic": -0.7,
	"angry": -0.65, "anger": -0.6, "hate": -0.85, "toxic": -0.7,
	"risky": -0.5, "unstable": -0.5, "severe": -0.6, "serious": -0.35,
	"problem": -0.4, "trouble": -0.5, "wrong": -0.5, "dead": -0.75,
	"emergency": -0.55, "shortage": -0.45, "recession": -0.7,
}
