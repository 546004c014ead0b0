/*
Package intent turns a free-text automation request into a reviewable Plan.

Classification is deterministic keyword and pattern matching, not language
understanding. A prompt is first classified as a browser automation or a
background workflow:

  - Browser prompts (navigation, commerce, site names, form words) are sorted
    into shopping, scraping, form-filling or generic skeletons, parameterised by
    the first quoted phrase, the first URL and the first known site name.
  - Workflow prompts get exactly one trigger (schedule, email or manual) and
    then cumulative AI, app-integration, delay and memory steps.

Generate never fails: an empty prompt yields a manual trigger followed by a
generic action step.
*/
package intent
