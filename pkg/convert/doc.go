/*
Package convert maps the internal Graph to and from the external automation
platform's workflow document.

Import resolves every external type identifier through three tables, in order:

 1. the kind table (triggers, AI/LLM, branching, filters, waits, utilities);
 2. first-class integrations (email, chat, HTTP) with a fixed config shape;
 3. generic integrations (a long list of services) routed through the HTTP kind.

Unknown identifiers become actions, or triggers when they contain "trigger".
Connections are keyed by display name; unresolvable names are dropped and a
document without usable connections is chained by canvas position.

Export reuses the original identifier kept in the node config when present and
otherwise derives one from the node kind. All edges of a node are emitted in a
single output group, so branch structure does not survive a round trip.

Neither direction returns an error.
*/
package convert
