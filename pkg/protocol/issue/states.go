/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package issue

import "github.com/calyptra/verity/pkg/datastore"

// stateRank orders the happy-path states. A transition is only allowed
// forward through this ordering; rejected and service-not-found are
// lateral moves.
var stateRank = map[string]int{
	datastore.IssueStateNoResponse:         0,
	datastore.IssueStatePending:            1,
	datastore.IssueStateAccepted:           2,
	datastore.IssueStateCredentialReceived: 3,
}

var terminalStates = map[string]bool{
	datastore.IssueStateServiceNotFound:    true,
	datastore.IssueStateRejected:           true,
	datastore.IssueStateCredentialReceived: true,
}

// ValidState reports whether s is a state this protocol knows.
func ValidState(s string) bool {
	if _, ok := stateRank[s]; ok {
		return true
	}

	return terminalStates[s]
}

// Terminal reports whether no further transition can leave s.
func Terminal(s string) bool {
	return terminalStates[s]
}

// CanTransition reports whether a record in state from may move to
// state to. Re-applying the current state is allowed so duplicate
// messages stay harmless. A record never leaves a terminal state, and
// the happy path only ever moves forward; reject and service-not-found
// are the lateral moves permitted from any non-terminal state.
func CanTransition(from, to string) bool {
	if !ValidState(from) || !ValidState(to) {
		return false
	}

	if from == to {
		return true
	}

	if terminalStates[from] {
		return false
	}

	if to == datastore.IssueStateRejected || to == datastore.IssueStateServiceNotFound {
		return true
	}

	fromRank, ok := stateRank[from]
	if !ok {
		return false
	}

	toRank, ok := stateRank[to]
	if !ok {
		return false
	}

	return toRank > fromRank
}
