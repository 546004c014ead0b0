/*
Package autoplan turns natural-language automation requests into editable
plans, compiles those plans into executable node graphs, and converts graphs
to and from the JSON documents of n8n-style automation platforms.

# Concept

A request goes through three stages. The intent parser classifies the prompt
and produces a Plan: ordered, typed, risk-annotated steps that a person can
review and edit. The compiler lowers a Plan into a Graph with exactly one
trigger followed by a linear chain of nodes. The converter maps Graphs to
external documents and back, which also powers the template library: a
searchable corpus of ready-made workflows that can be imported as Graphs.

Every stage is deterministic apart from generated identifiers, and none of
them perform I/O. The template index and agent memory sit behind ports so
they can be backed by files, HTTP, Redis or plain memory.

# Usage

	studio := autoplan.New(
		autoplan.WithTemplateSource(templates.FileSource{Path: "index.json"}),
	)

	plan := studio.Generate("Every morning summarise my unread emails and post to Slack")
	graph := studio.Compile(plan, nil)
	if err := studio.Validate(graph); err != nil {
		log.Fatal(err)
	}

	doc := studio.ExportExternal(graph, plan.Title)
	_ = json.NewEncoder(os.Stdout).Encode(doc)
*/
package autoplan
