// Package router maps a classification label (or, failing that, free-text
// keywords) to one of a closed set of worksheet sources, and scans fetched
// rows for a user id. Both operations are pure functions over static rule
// tables; they never touch the network and never fail.
package router

import (
	"fmt"
	"strings"
)

// Source identifies one of the worksheets a query can be routed to.
type Source string

const (
	// SourceReward holds personal activity reward records.
	SourceReward Source = "reward"
	// SourceRiskControl holds blacklist/risk-control records.
	SourceRiskControl Source = "riskcontrol"
)

// DefaultSource is returned when neither matching tier produces a hit.
const DefaultSource = SourceReward

// validSources is the closed set every rule must reference.
var validSources = map[Source]bool{
	SourceReward:      true,
	SourceRiskControl: true,
}

// CategoryRule maps an exact classification phrase to a source. Rules are
// checked in declaration order, so longer phrases must come before the
// shorter phrases contained in them: substring matching would otherwise let
// a general phrase shadow a specific one.
type CategoryRule struct {
	Phrase string
	Source Source
}

var categoryRules = []CategoryRule{
	// 黑牌用户类 -> riskcontrol
	{Phrase: "查询黑牌用户类", Source: SourceRiskControl},
	{Phrase: "黑牌用户类", Source: SourceRiskControl},
	{Phrase: "黑牌用户", Source: SourceRiskControl},

	// 个人活动奖励类 -> reward
	{Phrase: "查询个人活动奖励类", Source: SourceReward},
	{Phrase: "个人活动奖励类", Source: SourceReward},
	{Phrase: "活动奖励类", Source: SourceReward},
	{Phrase: "奖励类", Source: SourceReward},

	// 问题类 -> riskcontrol. Upstream left this mapping implicit (general
	// inquiries fell through to the keyword tier); it is an explicit rule
	// here so the routing table is the single place the behavior lives.
	{Phrase: "查询问题类", Source: SourceRiskControl},
	{Phrase: "问题类", Source: SourceRiskControl},
}

// KeywordRule is the fallback tier: if no category phrase matched, the first
// source in declaration order with any keyword hit wins.
type KeywordRule struct {
	Source   Source
	Keywords []string
}

var keywordRules = []KeywordRule{
	{
		Source: SourceRiskControl,
		Keywords: []string{
			// 风控相关
			"risk", "风险", "riskcontrol", "风控", "control",
			// 黑名单相关
			"黑牌", "黑名单", "blacklist", "blocked", "封禁", "banned",
			// 提现/账户问题相关
			"提现", "withdraw", "无法提现", "不能提现", "提款",
			"账户", "account", "冻结", "frozen", "限制", "restricted",
			// 异常相关
			"异常", "问题", "issue", "problem",
		},
	},
	{
		Source: SourceReward,
		Keywords: []string{
			"reward", "奖励", "bonus", "红利", "积分", "points",
			"活动", "activity", "促销", "promotion", "返水", "rebate",
		},
	},
}

// Resolve maps an arbitrary context string to the worksheet source that
// should be queried. Matching is case-insensitive substring containment:
// exact category phrases first, per-source keywords second, DefaultSource
// when nothing hits. Pure and total.
func Resolve(context string) Source {
	normalized := strings.ToLower(context)

	for _, rule := range categoryRules {
		if strings.Contains(normalized, rule.Phrase) {
			return rule.Source
		}
	}

	for _, rule := range keywordRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(normalized, keyword) {
				return rule.Source
			}
		}
	}

	return DefaultSource
}

// Validate checks the static rule tables: every referenced source must be a
// member of the closed set, and every phrase/keyword must already be in the
// case family Resolve folds input into (lower case), or it could never match.
func Validate() error {
	if !validSources[DefaultSource] {
		return fmt.Errorf("default source %q is not a valid source", DefaultSource)
	}
	for _, rule := range categoryRules {
		if !validSources[rule.Source] {
			return fmt.Errorf("category rule %q references unknown source %q", rule.Phrase, rule.Source)
		}
		if rule.Phrase != strings.ToLower(rule.Phrase) {
			return fmt.Errorf("category phrase %q is not lower-cased", rule.Phrase)
		}
	}
	for _, rule := range keywordRules {
		if !validSources[rule.Source] {
			return fmt.Errorf("keyword rule references unknown source %q", rule.Source)
		}
		for _, keyword := range rule.Keywords {
			if keyword != strings.ToLower(keyword) {
				return fmt.Errorf("keyword %q is not lower-cased", keyword)
			}
		}
	}
	return nil
}
