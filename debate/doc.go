// Package debate runs one scripted roundtable: a fixed schedule of agents
// speaks in order, each seeing the full transcript of every earlier turn.
//
// The loop is strictly sequential. Exactly one provider call is in flight at
// a time, and the transcript is only ever appended to.
package debate
