package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidence_FixedPerRule(t *testing.T) {
	assert.Equal(t, 1.00, Confidence(RuleDirect))
	assert.Equal(t, 0.95, Confidence(RuleAcquirerFee))
	assert.Equal(t, 0.95, Confidence(RuleDiscount))
	assert.Equal(t, 1.00, Confidence(RuleException))
	assert.Equal(t, 0.70, Confidence(RuleDateTolerant))
	assert.Equal(t, 0.50, Confidence(RuleAmountApprox))
	assert.Equal(t, 0.0, Confidence(RuleUnmatched))
	assert.Equal(t, 0.0, Confidence(RuleUnidentified))
}

func TestConfidence_UnknownRuleIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Confidence(Rule("bogus")))
}

func TestClassify_BothInferredRulesShareTheWireType(t *testing.T) {
	dtType, dtStatus := Classify(RuleDateTolerant)
	aaType, aaStatus := Classify(RuleAmountApprox)

	assert.Equal(t, MatchInferred, dtType)
	assert.Equal(t, MatchInferred, aaType)
	assert.Equal(t, StatusOrange, dtStatus)
	assert.Equal(t, StatusOrange, aaStatus)

	// Same wire type, different confidence: the tag is the source of
	// truth, not the serialized matchType.
	assert.NotEqual(t, Confidence(RuleDateTolerant), Confidence(RuleAmountApprox))
}

func TestClassify_Statuses(t *testing.T) {
	cases := []struct {
		rule   Rule
		want   MatchType
		status MatchStatus
	}{
		{RuleDirect, MatchDirect, StatusGreen},
		{RuleAcquirerFee, MatchAcquirerFee, StatusGreen},
		{RuleDiscount, MatchDiscount, StatusYellow},
		{RuleException, MatchException, StatusGreen},
		{RuleUnmatched, MatchUnmatched, StatusRed},
		{RuleUnidentified, MatchUnidentified, StatusBlue},
	}

	for _, tc := range cases {
		matchType, status := Classify(tc.rule)
		assert.Equal(t, tc.want, matchType, "rule %s", tc.rule)
		assert.Equal(t, tc.status, status, "rule %s", tc.rule)
	}
}
