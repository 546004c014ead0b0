/*
Package ports defines the driven ports (interfaces) of autoplan.

These interfaces decouple the core packages from external implementations, so
the template library and the agent memory API can run against files, HTTP
endpoints, process memory or Redis.

# Key Interfaces

  - TemplateSource: fetches the template index the library memoises.
  - MemoryStore: key/value memory the execution engine offers to agents.
*/
package ports
