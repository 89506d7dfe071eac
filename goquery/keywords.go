package goquery

import "strings"

// jobKeywords mark attributes and link text that usually belong to job listings.
var jobKeywords = []string{
	"job", "career", "position", "opening", "vacanc", "requisition", "posting",
	"hiring", "recruit",
	"职位", "岗位", "招聘", "社招", "校招",
}

// titleHints are role words that typically appear in job titles.
var titleHints = []string{
	"engineer", "developer", "manager", "designer", "analyst", "scientist",
	"architect", "specialist", "intern", "consultant", "director",
	"工程师", "经理", "设计师", "分析师", "实习",
}

// fieldTokens appear in class names of per-field wrappers inside a job card.
var fieldTokens = []string{
	"title", "name", "location", "date", "company", "salary", "link", "meta",
	"desc", "type", "apply", "button", "btn", "icon",
}

var applyKeywords = []string{"apply", "申请", "投递", "提交"}

// junkTitles are exact-match (case-insensitive) strings that are never job titles.
var junkTitles = map[string]bool{
	"apply": true, "apply now": true, "learn more": true, "read more": true,
	"view job": true, "view details": true, "details": true, "more": true,
	"see more": true, "view all jobs": true, "view all": true, "search": true,
	"home": true, "next": true, "previous": true, "careers": true, "jobs": true,
	"load more": true, "show more": true, "back": true,
	"申请": true, "立即申请": true, "投递简历": true, "查看详情": true,
	"了解更多": true, "更多": true, "详情": true, "首页": true, "下一页": true,
	"上一页": true, "加载更多": true,
	"view full description": true, "view full job description": true,
	"view job description": true, "see full description": true,
	"查看完整的职位描述": true, "查看完整职位描述": true, "查看职位描述": true,
	"查看职位详情": true,
}

// atsContainerSelectors locate list containers of well-known applicant
// tracking systems and common careers page builders.
var atsContainerSelectors = []string{
	"[data-automation-id='jobResults']",
	"#grnhse_app", "#jobs", "#job-list", "#jobList", "#openings", "#positions",
	".jobs-list", ".job-list", ".jobList", ".job-listings", ".postings-group",
	".posting-list", ".careers-list", ".positions-list", ".openings-list",
	"[data-ui='jobs']", ".iCIMS_JobsTable", ".BambooHR-ATS-Jobs-List",
	".jv-job-list", ".js-jobs-list",
}

var strongMarkerSelectors = []string{
	"[data-job-id]", "[data-jobid]", "[data-posting-id]", "[data-requisition-id]",
	"[data-req-id]", "[itemtype*='JobPosting']",
}

var weakMarkerSelectors = []string{
	".opening", ".posting", ".job-card", ".job-item", ".job-row",
	"[class*='jobCard']", "[data-testid*='job-card']", "[data-qa*='job-item']",
}

// keywordAttributes are scanned for job keywords during discovery.
var keywordAttributes = []string{
	"data-automation-id", "data-testid", "data-cy", "data-component", "data-qa",
	"aria-label", "class", "id", "name",
}

var atsTitleSelectors = []string{
	"[data-automation-id='jobTitle']", "[data-automation-id*='jobTitle']",
	".posting-name", ".posting-title h5", ".job-title", ".jobTitle",
	"[data-testid*='job-title']", "[data-qa*='job-title']", ".position-title",
	".job-name", ".iCIMS_JobTitle",
}

var headingSelectors = []string{
	"h1", "h2", "h3", "h4", "h5", "h6", ".title", "[class*='title']",
	"[class*='Title']", "strong", "b", "span[class*='heading']",
}

var companySelectors = []string{
	"[data-company]", "[data-automation-id*='company']", "[class*='company']",
	"[class*='Company']", "[class*='employer']", "[class*='Employer']",
	"[class*='公司']", "[class*='企业']",
}

var locationSelectors = []string{
	"[data-location]", "[data-automation-id='locations']",
	"[data-automation-id*='location']", "[class*='location']",
	"[class*='Location']", "[class*='city']", "[class*='City']",
	"[itemprop='jobLocation']", "[class*='地点']", "[class*='城市']",
}

// urlAttributes carry job links, in preference order.
var urlAttributes = []string{"href", "data-href", "data-url", "data-link", "data-job-url", "data-path"}

var challengeTitles = []string{
	"just a moment", "attention required", "checking your browser",
	"ddos-guard", "security check", "请稍候",
}

var challengeSelectors = []string{
	"#challenge-form", "#challenge-running", "#cf-challenge-running",
	".cf-browser-verification", "#cf-wrapper", "#px-captcha",
	"script[src*='/cdn-cgi/challenge-platform/']",
}

var nextLinkKeywords = []string{"next", "更多", "下一", "›", "»"}

// locationRejectWords disqualify a string from being a location.
var locationRejectWords = []string{
	"engineer", "manager", "lead", "senior", "support", "community", "software",
	"data", "product", "design", "developer", "analyst", "工程师", "经理",
}

var locationStopWords = []string{
	"full-time", "full time", "part-time", "part time", "contract", "temporary",
	"permanent", "internship", "apply", "posted", "ago", "today", "salary", "new",
}

var locationWorkModes = []string{"remote", "hybrid", "office", "onsite", "on-site", "远程"}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func hasJobKeyword(s string) bool {
	return containsAny(strings.ToLower(s), jobKeywords)
}

func hasTitleHint(s string) bool {
	return containsAny(strings.ToLower(s), titleHints)
}

func isJunkTitle(s string) bool {
	return junkTitles[strings.ToLower(strings.TrimSpace(s))]
}
