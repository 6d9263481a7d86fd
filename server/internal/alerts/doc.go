// Package alerts implements the rule evaluation engine and webhook delivery
// for SupplyLens alerting. Rules are evaluated against every computed
// dashboard; webhooks are delivered to Teams, Slack, or generic HTTP targets.
package alerts
