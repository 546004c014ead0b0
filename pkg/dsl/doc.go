/*
Package dsl provides a fluent Go builder for autoplan graphs.

It is an alternative to compiling a plan or importing an external document
when a graph is known up front, which is handy for tests, fixtures and
programmatic generation.

Example usage:

	b := dsl.New()

	b.Add("start").
		Trigger(domain.TriggerSchedule).
		Config("cron", "0 9 * * 1").
		Go("summarise")

	b.Add("summarise").
		AI("Summarise new issues").
		Go("notify")

	b.Add("notify").
		App("chat", "slack").
		Label("Post to Slack").
		Terminal()

	g, err := b.Build() // validated domain.Graph
*/
package dsl
