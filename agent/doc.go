// Package agent wraps one hosted language model behind a single capability:
// given the transcript so far, produce one line of dialogue.
//
// An agent is built from a Definition (display name, provider, model id, role
// and style). The provider selects a call shape from a closed registry at
// construction time; the shape decides how the transcript is framed for that
// vendor, while the matching model adapter decides how instructions travel.
//
// Speak never fails. A failed provider call comes back as a Reply whose
// Failed method reports true and whose String form is the dialogue line
// "[Error] <provider> call failed: <message>".
package agent
