package textutil

import (
	"testing"
)

func TestCleanText(t *testing.T) {
	in := "  <p>Hello   world</p> visit https://example.com/x now  "
	got := CleanText(in)
	if got != "Hello world visit now" {
		t.Fatalf("unexpected clean result: %q", got)
	}
}

func TestWordsFiltersStopwordsAndShortTokens(t *testing.T) {
	words := Words("The market is up, and so is the economy at 5 PM")
	for _, w := range words {
		if IsStopword(w) {
			t.Fatalf("stopword %q leaked through", w)
		}
		if len(w) < 3 {
			t.Fatalf("short token %q leaked through", w)
		}
	}

	found := map[string]bool{}
	for _, w := range words {
		found[w] = true
	}
	if !found["market"] || !found["economy"] {
		t.Fatalf("expected content words, got %v", words)
	}
}

func TestWordsKeepsHyphenated(t *testing.T) {
	words := Words("A state-of-the-art breakthrough")
	found := false
	for _, w := range words {
		if w == "state-of-the-art" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected hyphenated word kept, got %v", words)
	}
}

func TestSplitSentences(t *testing.T) {
	text := "The economy grew fast this year. Analysts were surprised! What happens next? TBD."
	sentences := SplitSentences(text)
	if len(sentences) != 3 {
		t.Fatalf("expected 3 sentences (last fragment too short), got %d: %v", len(sentences), sentences)
	}
	if sentences[0] != "The economy grew fast this year." {
		t.Fatalf("unexpected first sentence: %q", sentences[0])
	}
	if sentences[1] != "Analysts were surprised!" {
		t.Fatalf("unexpected second sentence: %q", sentences[1])
	}
}

func TestSimilarity(t *testing.T) {
	// 完全一致
	if sim := Similarity("stock market crash today", "stock market crash today"); sim != 1 {
		t.Fatalf("expected similarity 1, got %v", sim)
	}

	// 完全不相干
	if sim := Similarity("stock market crash", "puppy wins dog show"); sim != 0 {
		t.Fatalf("expected similarity 0, got %v", sim)
	}

	// 空文本一律 0，不判相似
	if sim := Similarity("", "stock market crash"); sim != 0 {
		t.Fatalf("expected 0 for empty input, got %v", sim)
	}
	if sim := Similarity("the a of", "the a of"); sim != 0 {
		t.Fatalf("expected 0 for stopword-only input, got %v", sim)
	}
}

func TestSimilarityIgnoresDigitsAndOrder(t *testing.T) {
	// 数字不进入词集：正文末尾追加时间戳不影响相似度
	a := "Central bank raises interest rates amid inflation concerns"
	b := "inflation concerns amid interest rates raises bank Central 20240115"
	if sim := Similarity(a, b); sim != 1 {
		t.Fatalf("expected similarity 1 despite order and digits, got %v", sim)
	}
}
