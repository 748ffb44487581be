package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		context string
		want    Source
	}{
		{
			name:    "exact blacklist category phrase",
			context: "查询黑牌用户类",
			want:    SourceRiskControl,
		},
		{
			name:    "category phrase embedded in surrounding text",
			context: "查询黑牌用户类 please help",
			want:    SourceRiskControl,
		},
		{
			name:    "category phrase with mixed-case surrounding text",
			context: "URGENT 查询个人活动奖励类 NOW",
			want:    SourceReward,
		},
		{
			name:    "short reward category phrase",
			context: "这是奖励类的问题",
			want:    SourceReward,
		},
		{
			name:    "general inquiry category routes to risk control",
			context: "查询问题类",
			want:    SourceRiskControl,
		},
		{
			name:    "keyword fallback withdraw",
			context: "I can't withdraw my funds",
			want:    SourceRiskControl,
		},
		{
			name:    "keyword fallback is case-insensitive",
			context: "my account is FROZEN",
			want:    SourceRiskControl,
		},
		{
			name:    "keyword fallback reward",
			context: "when do I get my bonus",
			want:    SourceReward,
		},
		{
			name:    "chinese keyword fallback",
			context: "返水什么时候到账",
			want:    SourceReward,
		},
		{
			name:    "no match returns default",
			context: "random unrelated text",
			want:    DefaultSource,
		},
		{
			name:    "empty context returns default",
			context: "",
			want:    DefaultSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.context))
		})
	}
}

// When keywords for multiple sources appear, the first source in the
// declared order wins. "提现" (riskcontrol) plus "奖励" (reward) must route
// to riskcontrol because its keyword list is checked first.
func TestResolveKeywordTieBreak(t *testing.T) {
	got := Resolve("提现的奖励没有到")
	assert.Equal(t, SourceRiskControl, got)
}

// A category phrase always beats keywords, even keywords for another source.
func TestResolvePhraseTierBeatsKeywordTier(t *testing.T) {
	got := Resolve("查询个人活动奖励类 但是我的账户被冻结了")
	assert.Equal(t, SourceReward, got)
}

func TestResolveDeterministic(t *testing.T) {
	context := "查询黑牌用户类 please help"
	first := Resolve(context)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Resolve(context))
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate())
}

func TestSpecificPhrasesPrecedeTheirSubstrings(t *testing.T) {
	// Substring containment means a short phrase ordered first would shadow
	// every longer phrase containing it. Guard the table ordering.
	for i, outer := range categoryRules {
		for j := i + 1; j < len(categoryRules); j++ {
			inner := categoryRules[j]
			if len(inner.Phrase) < len(outer.Phrase) {
				continue
			}
			assert.NotContains(t, inner.Phrase, outer.Phrase,
				"rule %q at index %d shadows later rule %q", outer.Phrase, i, inner.Phrase)
		}
	}
}
