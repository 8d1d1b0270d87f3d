package service

import (
	"strings"

	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/rule"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/valueobject"
)

// patternGroup is one row of the payload signature table. A group matches when
// the normalized payload contains any of its patterns.
type patternGroup struct {
	name     string
	attack   valueobject.AttackType
	patterns []string
	weight   int
}

// payloadGroups is ordered: the first matching group names the attack type.
var payloadGroups = []patternGroup{
	{name: "sql-basic", attack: valueobject.AttackSQLInjection, weight: 40,
		patterns: []string{"or 1=1", "or true", "or '1'='1'", `or "1"="1"`}},
	{name: "sql-query", attack: valueobject.AttackSQLInjection, weight: 50,
		patterns: []string{"union select", "select * from", "insert into", "delete from", "update set"}},
	{name: "sql-destructive", attack: valueobject.AttackSQLInjection, weight: 60,
		patterns: []string{"drop table", "truncate table", "alter table", "exec(", "system("}},
	{name: "xss-script", attack: valueobject.AttackXSS, weight: 60,
		patterns: []string{"<script>", "javascript:", "onload=", "onerror=", "onclick="}},
	{name: "xss-tag", attack: valueobject.AttackXSS, weight: 50,
		patterns: []string{"<img", "<iframe", "<object", "<embed", "vbscript:"}},
	{name: "command-injection", attack: valueobject.AttackCommandInjection, weight: 45,
		patterns: []string{"&&", ";", "||", "|", "&", "`", "$(", "${"}},
	{name: "path-traversal", attack: valueobject.AttackPathTraversal, weight: 35,
		patterns: []string{"../", `..\`, "%2e%2e%2f", "%2e%2e%5c"}},
	{name: "ldap-injection", attack: valueobject.AttackLDAPInjection, weight: 40,
		patterns: []string{"*)(", "*))", "*)%00", "cn=", "ou="}},
	{name: "nosql-injection", attack: valueobject.AttackNoSQLInjection, weight: 45,
		patterns: []string{"$ne:", "$gt:", "$lt:", "$where:", "$regex:"}},
	{name: "xxe", attack: valueobject.AttackXXEInjection, weight: 55,
		patterns: []string{"<!doctype", "<!entity", "&external;", "&system;"}},
	{name: "ssrf", attack: valueobject.AttackSSRF, weight: 50,
		patterns: []string{"http://localhost", "http://127.0.0.1", "http://169.254.169.254"}},
	{name: "file-inclusion", attack: valueobject.AttackFileInclusion, weight: 55,
		patterns: []string{"php://", "file://", "data://", "expect://"}},
	{name: "buffer-overflow", attack: valueobject.AttackBufferOverflow, weight: 40,
		patterns: []string{"%41%41%41", strings.Repeat("a", 20), "nop sled"}},
	{name: "comment-injection", attack: valueobject.AttackCommentInjection, weight: 20,
		patterns: []string{"--", "#", "/*", "*/"}},
	{name: "encoded-payload", attack: valueobject.AttackEncodedPayload, weight: 25,
		patterns: []string{"%27", "%22", "%3c", "%3e", "%2f"}},
}

var payloadRules = rule.MustRuleSet("payload", payloadGroupRules(payloadGroups)...)

func payloadGroupRules(groups []patternGroup) []rule.Rule[string] {
	rules := make([]rule.Rule[string], 0, len(groups))
	for _, g := range groups {
		patterns := g.patterns
		rules = append(rules, rule.Rule[string]{
			Name:     g.name,
			Category: g.attack.String(),
			Weight:   g.weight,
			Match:    func(payload string) bool { return containsAny(payload, patterns) },
		})
	}
	return rules
}
