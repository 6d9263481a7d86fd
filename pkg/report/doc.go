// Package report formats engine output for people: CSV exports of supplier
// metrics and the inventory trend, and the plain-text predictive analytics
// report.
package report
