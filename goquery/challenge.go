package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// detectChallenge reports whether doc is an anti-bot interstitial rather
// than the requested page, returning the marker that matched.
func detectChallenge(doc *goquery.Document) (string, bool) {
	title := strings.ToLower(cleanText(doc.Find("title").First().Text()))
	for _, t := range challengeTitles {
		if strings.Contains(title, t) {
			return "title " + t, true
		}
	}
	for _, sel := range challengeSelectors {
		if doc.Find(sel).Length() > 0 {
			return "marker " + sel, true
		}
	}
	return "", false
}
