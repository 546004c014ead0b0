package autoplan_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aretw0/autoplan"
	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/aretw0/autoplan/pkg/templates"
)

func ExampleStudio_Build() {
	studio := autoplan.New()

	plan, graph := studio.Build("Every morning summarise my unread emails and post to Slack", nil)
	if err := studio.Validate(graph); err != nil {
		log.Fatal(err)
	}

	fmt.Println("category:", plan.Category)
	fmt.Println("first node:", graph.Nodes[0].Type)
	fmt.Println("edges:", len(graph.Edges) == len(graph.Nodes)-1)
	// Output:
	// category: workflow
	// first node: trigger
	// edges: true
}

func ExampleStudio_ImportTemplate() {
	index := &domain.TemplateIndex{
		Workflows: []domain.TemplateEntry{
			{ID: "wf-empty", Name: "Listing only"},
		},
	}
	studio := autoplan.New(autoplan.WithTemplateSource(templates.StaticSource{Index: index}))

	_, err := studio.ImportTemplate(context.Background(), "wf-empty")
	fmt.Println(errors.Is(err, domain.ErrTemplatePayloadMissing))

	_, err = studio.ImportTemplate(context.Background(), "wf-missing")
	fmt.Println(errors.Is(err, domain.ErrTemplateNotFound))
	// Output:
	// true
	// true
}
