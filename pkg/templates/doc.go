// Package templates indexes the workflow template corpus and serves search,
// scoring and import over it.
//
// The index is fetched from a ports.TemplateSource the first time it is
// needed and kept for the life of the Library. Concurrent first callers share
// one fetch. A failed fetch is logged and replaced by an empty index, so
// lookups degrade to "no results" instead of failing.
package templates
