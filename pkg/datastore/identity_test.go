/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package datastore

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueID(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IssueID("conn-1", "exch-1")
		b := IssueID("conn-1", "exch-1")
		require.Equal(t, a, b)
	})

	t.Run("fixed length hex", func(t *testing.T) {
		id := IssueID("conn-1", "exch-1")
		require.Len(t, id, 64)
		_, err := hex.DecodeString(id)
		require.NoError(t, err)
	})

	t.Run("distinct pairs yield distinct ids", func(t *testing.T) {
		require.NotEqual(t, IssueID("conn-1", "exch-1"), IssueID("conn-1", "exch-2"))
		require.NotEqual(t, IssueID("conn-1", "exch-1"), IssueID("conn-2", "exch-1"))
	})

	t.Run("fields do not collide across positions", func(t *testing.T) {
		require.NotEqual(t, IssueID("ab", "c"), IssueID("a", "bc"))
	})
}

func TestIssueCriteriaMatches(t *testing.T) {
	rec := &ServiceIssueRecord{
		ConnectionID: "conn-1",
		ExchangeID:   "exch-1",
		ServiceID:    "svc-1",
		State:        IssueStatePending,
		Author:       AuthorOther,
		Label:        "transcripts",
	}

	t.Run("empty criteria matches all", func(t *testing.T) {
		require.True(t, (&IssueCriteria{}).Matches(rec))
	})

	t.Run("matches on every tag", func(t *testing.T) {
		c := &IssueCriteria{
			ConnectionID: "conn-1",
			ExchangeID:   "exch-1",
			ServiceID:    "svc-1",
			State:        IssueStatePending,
			Author:       AuthorOther,
			Label:        "transcripts",
		}
		require.True(t, c.Matches(rec))
	})

	t.Run("single mismatch rejects", func(t *testing.T) {
		c := &IssueCriteria{State: IssueStateAccepted}
		require.False(t, c.Matches(rec))
	})
}
