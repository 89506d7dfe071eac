package jobscout

// EvidenceKind identifies which score component a piece of evidence feeds.
type EvidenceKind int

const (
	// EvidenceStructural is a structural prior such as a known ATS container.
	EvidenceStructural EvidenceKind = iota
	// EvidenceMarker is a structured job-item attribute such as data-job-id.
	EvidenceMarker
	// EvidenceAnchor is an interactive descendant (anchor, button) seen below the node.
	EvidenceAnchor
	// EvidenceKeyword is a job keyword found in the node's attributes.
	EvidenceKeyword
	// EvidenceListRole is the one-shot list-item semantic boost.
	EvidenceListRole
	// EvidenceKeywordText is the one-shot job-keyword text boost.
	EvidenceKeywordText
)

// Evidence is a single scoring signal attached to a candidate selector.
type Evidence struct {
	Kind   EvidenceKind
	Weight int
	Reason string
}

// CandidateScore accumulates evidence for one candidate selector.
// Weights are clamped at zero so Total never decreases as evidence is added.
type CandidateScore struct {
	BaseScore     int `json:"baseScore"`
	AnchorHits    int `json:"anchorHits"`
	KeywordHits   int `json:"keywordHits"`
	SemanticBoost int `json:"semanticBoost"`

	listRole    bool
	keywordText bool
}

// Add folds one piece of evidence into the score.
// One-shot kinds contribute only the first time they are seen.
func (s *CandidateScore) Add(e Evidence) {
	w := max(e.Weight, 0)
	switch e.Kind {
	case EvidenceStructural, EvidenceMarker:
		s.BaseScore += w
	case EvidenceAnchor:
		s.AnchorHits += w
	case EvidenceKeyword:
		s.KeywordHits += w
	case EvidenceListRole:
		if !s.listRole {
			s.listRole = true
			s.SemanticBoost += w
		}
	case EvidenceKeywordText:
		if !s.keywordText {
			s.keywordText = true
			s.SemanticBoost += w
		}
	}
}

// Total returns the combined score used for ranking.
func (s CandidateScore) Total() int {
	return s.BaseScore + s.AnchorHits + s.KeywordHits + s.SemanticBoost
}

// CandidateEvaluation is a scored candidate list selector with the reasons
// that contributed to its score, in the order they were observed.
type CandidateEvaluation struct {
	Selector string         `json:"selector"`
	Score    CandidateScore `json:"score"`
	Reasons  []string       `json:"reasons,omitempty"`
}

// CandidateSummary is the audit form of a candidate.
type CandidateSummary struct {
	Selector string   `json:"selector"`
	Total    int      `json:"total"`
	Reasons  []string `json:"reasons,omitempty"`
}

// Summary returns the audit form of the evaluation.
func (c *CandidateEvaluation) Summary() CandidateSummary {
	return CandidateSummary{
		Selector: c.Selector,
		Total:    c.Score.Total(),
		Reasons:  c.Reasons,
	}
}
