/*
Package domain contains the core models of the automation compiler.

It defines the user-facing Plan (an ordered, editable list of typed steps), the
executable Graph a Plan compiles into, the external platform's workflow document,
and the template corpus entries built from such documents. The package is pure:
no I/O, no persistence, no logging.

# Key Entities

  - Plan / PlanStep / InputField: the reviewable output of the intent parser.
  - Graph / GraphNode / GraphEdge: the internal node/edge representation.
  - ExternalDocument: the third-party platform's JSON interchange format.
  - TemplateEntry / TemplateIndex: searchable metadata wrapping external documents.
  - MemoryEntry: a value held by the agent memory store collaborator.
*/
package domain
