package textutil

// 英文停用词表，外加新闻语料里高频但无信息量的词（said/report 等）
var stopwords = map[string]struct{}{}

func init() {
	words := []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
		"of", "with", "by", "from", "up", "about", "into", "through", "during",
		"before", "after", "above", "below", "down", "out", "off", "over",
		"under", "again", "further", "then", "once", "here", "there", "when",
		"where", "why", "how", "all", "any", "both", "each", "few", "more",
		"most", "other", "some", "such", "no", "nor", "not", "only", "own",
		"same", "so", "than", "too", "very", "can", "will", "just", "should",
		"now", "is", "are", "was", "were", "been", "be", "have", "has", "had",
		"do", "does", "did", "am", "being", "having", "doing",
		"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you",
		"your", "yours", "yourself", "yourselves", "he", "him", "his",
		"himself", "she", "her", "hers", "herself", "it", "its", "itself",
		"they", "them", "their", "theirs", "themselves", "what", "which",
		"who", "whom", "this", "that", "these", "those",
		"would", "could", "may", "might", "must", "shall",
		"say", "says", "said", "get", "got", "make", "made", "go", "went",
		"come", "came", "take", "took", "see", "saw", "know", "knew",
		"think", "thought", "look", "looked", "use", "used", "find", "found",
		"give", "gave", "tell", "told", "work", "worked", "call", "called",
		"try", "tried", "ask", "asked", "need", "needed", "feel", "felt",
		"become", "became", "leave", "left", "put", "mean", "help", "move",
		"right", "show", "turn", "start",
		// 新闻领域高频词
		"according", "report", "reports", "reported", "news", "article",
		"story", "website", "online", "today", "yesterday", "tomorrow",
		"week", "month", "year", "years", "day", "time", "people", "person",
		"man", "woman", "men", "women", "group", "company", "government",
		"state", "country", "world", "new", "first", "last", "number",
		"way", "also", "one", "two", "three", "many", "much", "well",
		"good", "back", "still", "even", "since", "like",
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
		"sunday",
	}
	for _, w := range words {
		stopwords[w] = struct{}{}
	}
}

func IsStopword(w string) bool {
	_, ok := stopwords[w]
	return ok
}
