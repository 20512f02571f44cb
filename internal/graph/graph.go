// Package graph defines the static directed graph of valid status
// transitions. The graph is pure data: no state, no side effects.
package graph

import "github.com/mjcarter/shortlist/internal/model"

// transitions maps each status to its outgoing edges, in display order.
//
// Statuses absent from this table have no outgoing edges. Archived is the
// single terminal status; NotAccepted, OfferDeclined, Withdrawn and
// OfferAccepted converge on it. InterviewScheduled re-entry (scheduling a
// further interview round) is a controller concern, not an edge here.
var transitions = map[model.Status][]model.Status{
	model.StatusApplied: {
		model.StatusInterviewScheduled,
		model.StatusNoResponse,
		model.StatusNotAccepted,
		model.StatusWithdrawn,
	},
	model.StatusInterviewScheduled: {
		model.StatusOfferReceived,
		model.StatusNotAccepted,
		model.StatusWithdrawn,
	},
	model.StatusNoResponse: {
		model.StatusInterviewScheduled,
		model.StatusNotAccepted,
		model.StatusWithdrawn,
	},
	model.StatusOfferReceived: {
		model.StatusOfferAccepted,
		model.StatusOfferDeclined,
		model.StatusWithdrawn,
	},
	model.StatusNotAccepted:   {model.StatusArchived},
	model.StatusOfferDeclined: {model.StatusArchived},
	model.StatusWithdrawn:     {model.StatusArchived},
	model.StatusOfferAccepted: {model.StatusArchived},
}

// Next returns the valid target statuses from current, in fixed order.
// The result is empty for statuses with no outgoing edges (terminal
// Archived, and the entry statuses Bookmarked and ApplicationReceived).
// Next is total: it is defined for every status, known or not.
func Next(current model.Status) []model.Status {
	edges := transitions[current]
	if len(edges) == 0 {
		return nil
	}
	out := make([]model.Status, len(edges))
	copy(out, edges)
	return out
}

// CanTransition reports whether to is directly reachable from from.
func CanTransition(from, to model.Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
