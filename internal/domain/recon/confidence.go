package recon

// Rule tags the hypothesis that produced a match. Confidence, status and
// wire classification are all pure functions of this tag. The two inferred
// rules are distinct tags carrying different confidences even though both
// serialize as MatchInferred.
type Rule string

const (
	RuleDirect       Rule = "direct"
	RuleAcquirerFee  Rule = "acquirer_fee"
	RuleDiscount     Rule = "discount"
	RuleException    Rule = "exception"
	RuleDateTolerant Rule = "inferred_date_tolerant"
	RuleAmountApprox Rule = "inferred_amount_approx"
	RuleUnmatched    Rule = "unmatched"
	RuleUnidentified Rule = "unidentified"
)

type verdict struct {
	matchType  MatchType
	status     MatchStatus
	confidence float64
}

var verdictByRule = map[Rule]verdict{
	RuleDirect:       {MatchDirect, StatusGreen, 1.00},
	RuleAcquirerFee:  {MatchAcquirerFee, StatusGreen, 0.95},
	RuleDiscount:     {MatchDiscount, StatusYellow, 0.95},
	RuleException:    {MatchException, StatusGreen, 1.00},
	RuleDateTolerant: {MatchInferred, StatusOrange, 0.70},
	RuleAmountApprox: {MatchInferred, StatusOrange, 0.50},
	RuleUnmatched:    {MatchUnmatched, StatusRed, 0},
	RuleUnidentified: {MatchUnidentified, StatusBlue, 0},
}

// Confidence returns the fixed confidence for a rule tag. Unknown tags
// resolve to 0, never an error.
func Confidence(rule Rule) float64 {
	return verdictByRule[rule].confidence
}

// Classify returns the wire classification and review status for a rule tag.
func Classify(rule Rule) (MatchType, MatchStatus) {
	v, ok := verdictByRule[rule]
	if !ok {
		return MatchUnmatched, StatusRed
	}
	return v.matchType, v.status
}
