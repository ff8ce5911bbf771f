package backend

import (
	"regexp"
	"sort"
	"strings"
)

var wordPattern = regexp.MustCompile(`[A-Za-z]+`)

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`the a an and or but if in on at to for of is are was were
		it this that with as by from be has have had not we you they he she them his her
		their our us i me my your yours`) {
		stopwords[w] = struct{}{}
	}
}

// ExtractKeywords returns the topK most frequent words of text, lowercased,
// ignoring stopwords and words of two letters or fewer. Ties keep the order
// of first appearance.
func ExtractKeywords(text string, topK int) []string {
	counts := map[string]int{}
	var order []string
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if len(w) <= 2 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > topK {
		order = order[:topK]
	}
	if order == nil {
		order = []string{}
	}
	return order
}
