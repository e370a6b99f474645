/*
Package annotate turns a block of raw text plus an ordered list of annotation
directives into renderable segments: plain runs interleaved with matched runs
tagged by visual action.

Matching is a pure function of its two inputs. Directives consume the text
left to right: each search starts after the end of the previous match, so a
later directive can never claim text inside or before an earlier match.
Snippets that do not occur in the remaining suffix are skipped silently.
*/
package annotate
