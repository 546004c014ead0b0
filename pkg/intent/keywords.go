package intent

import (
	"regexp"
	"strings"
)

// keywordSet matches whole words or phrases, case-insensitively.
type keywordSet struct {
	words []string
	each  []*regexp.Regexp
	any   *regexp.Regexp
}

func wordPattern(alternatives ...string) *regexp.Regexp {
	quoted := make([]string, len(alternatives))
	for i, w := range alternatives {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(w))
	}
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(?:` + strings.Join(quoted, "|") + `)(?:$|[^\p{L}\p{N}])`)
}

func newKeywordSet(words ...string) keywordSet {
	each := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		each[i] = wordPattern(w)
	}
	return keywordSet{words: words, each: each, any: wordPattern(words...)}
}

func (k keywordSet) match(text string) bool {
	return k.any.MatchString(text)
}

// first returns the earliest listed keyword present in text.
func (k keywordSet) first(text string) (string, bool) {
	for i, re := range k.each {
		if re.MatchString(text) {
			return k.words[i], true
		}
	}
	return "", false
}

var (
	navigationWords = newKeywordSet(
		"browse", "browser", "website", "web site", "webpage", "web page", "navigate",
		"go to", "visit", "log in to", "login to", "sign in to",
	)
	commerceWords = newKeywordSet(
		"buy", "purchase", "order", "add to cart", "checkout", "check out", "shop", "shopping",
	)
	formWords = newKeywordSet(
		"fill out", "fill in", "form", "sign up", "register", "book a", "reserve", "apply for", "submit",
	)
	crawlWords  = newKeywordSet("scrape", "scraping", "crawl")
	scrapeWords = newKeywordSet(
		"scrape", "scraping", "crawl", "extract", "collect", "gather", "price", "prices", "monitor", "listings",
	)
	shoppingWords = newKeywordSet(
		"buy", "purchase", "order", "add to cart", "checkout", "check out", "shop for", "shopping",
	)

	scheduleWords = newKeywordSet(
		"every", "daily", "weekly", "hourly", "monthly", "each day", "morning", "evening", "night",
		"nightly", "schedule", "scheduled", "cron", "weekday", "weekdays",
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	)
	emailTriggerWords = newKeywordSet(
		"when i receive", "when i get", "new email", "new emails", "incoming email", "incoming emails",
		"email arrives", "receive an email", "when an email", "inbox",
	)

	mailWords  = newKeywordSet("gmail", "outlook", "email", "emails", "e-mail", "mail", "inbox")
	chatWords  = newKeywordSet("slack", "discord", "microsoft teams", "teams", "telegram", "mattermost", "whatsapp", "chat")
	notesWords = newKeywordSet("notion", "evernote", "obsidian", "onenote", "google docs", "notes", "note")

	delayWords  = newKeywordSet("wait", "delay", "pause")
	memoryWords = newKeywordSet("remember", "keep track", "save for later", "store")
)

// analysisOps is checked in order; the first matching operation wins.
var analysisOps = []struct {
	operation string
	words     keywordSet
}{
	{"summarize", newKeywordSet("summarize", "summarise", "summary", "summaries", "digest")},
	{"translate", newKeywordSet("translate", "translation")},
	{"classify", newKeywordSet("classify", "categorize", "categorise", "label")},
	{"sentiment", newKeywordSet("sentiment")},
	{"extract", newKeywordSet("extract", "pull out")},
	{"generate", newKeywordSet("draft", "write", "generate", "compose", "rewrite")},
	{"analyze", newKeywordSet("analyze", "analyse", "analysis", "insights", "ai", "gpt", "llm")},
}

// site is an entry of the fixed site allow-list.
type site struct {
	key  string
	name string
	url  string
}

var knownSites = []site{
	{"amazon", "Amazon", "https://www.amazon.com"},
	{"ebay", "eBay", "https://www.ebay.com"},
	{"walmart", "Walmart", "https://www.walmart.com"},
	{"best buy", "Best Buy", "https://www.bestbuy.com"},
	{"bestbuy", "Best Buy", "https://www.bestbuy.com"},
	{"etsy", "Etsy", "https://www.etsy.com"},
	{"linkedin", "LinkedIn", "https://www.linkedin.com"},
	{"indeed", "Indeed", "https://www.indeed.com"},
	{"zillow", "Zillow", "https://www.zillow.com"},
	{"craigslist", "Craigslist", "https://www.craigslist.org"},
	{"airbnb", "Airbnb", "https://www.airbnb.com"},
	{"expedia", "Expedia", "https://www.expedia.com"},
	{"github", "GitHub", "https://github.com"},
	{"reddit", "Reddit", "https://www.reddit.com"},
}

var defaultSite = site{key: "web", name: "the website", url: "https://www.google.com"}

var siteWords = func() keywordSet {
	keys := make([]string, len(knownSites))
	for i, s := range knownSites {
		keys[i] = s.key
	}
	return newKeywordSet(keys...)
}()

var (
	urlPattern    = regexp.MustCompile(`https?://[^\s"'<>]+`)
	domainPattern = regexp.MustCompile(`(?i)\b(?:www\.)?[a-z0-9][a-z0-9-]*\.(?:com|org|net|io|co|dev|app)\b(?:/[^\s"'<>]*)?`)
	quotePattern  = regexp.MustCompile(`"([^"]+)"|“([^”]+)”`)

	subjectPattern = regexp.MustCompile(`(?i)\b(?:order|buy|purchase|find|search\s+for|look\s+for|shop\s+for|scrape|extract|collect|gather|monitor|track)\s+(?:me\s+)?(?:(?:some|a|an|the|all)\s+)?(.+)$`)
	trailingSite   = regexp.MustCompile(`(?i)\s+(?:on|from|at|via|using)\s+.*$`)
	clauseBreak    = regexp.MustCompile(`(?i)\s*(?:[,;]|\bthen\b).*$`)

	clockPattern = regexp.MustCompile(`(?i)\bat\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	delayPattern = regexp.MustCompile(`(?i)\b(?:wait|after|delay(?:\s+for)?|pause(?:\s+for)?)\s+(\d+)\s*(second|minute|hour|day)s?\b`)
)

// weekdays is indexed by cron day-of-week.
var weekdays = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

var (
	dayWords     = newKeywordSet(weekdays...)
	eveningWords = newKeywordSet("evening")
	nightWords   = newKeywordSet("night", "nightly")
	hourlyWords  = newKeywordSet("hourly", "every hour")
	monthlyWords = newKeywordSet("monthly", "every month")
	workdayWords = newKeywordSet("weekdays", "weekday")
	weeklyWords  = newKeywordSet("weekly", "every week")
)
