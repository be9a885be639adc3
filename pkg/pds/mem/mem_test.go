/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mem

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/calyptra/verity/pkg/pds"
)

func TestStore(t *testing.T) {
	t.Run("save is content addressed", func(t *testing.T) {
		store := New()

		dri, err := store.Save([]byte(`{"name":"alice"}`), "schema-1")
		require.NoError(t, err)
		require.Equal(t, pds.DRI([]byte(`{"name":"alice"}`)), dri)

		again, err := store.Save([]byte(`{"name":"alice"}`), "schema-1")
		require.NoError(t, err)
		require.Equal(t, dri, again)
	})

	t.Run("load round trip", func(t *testing.T) {
		store := New()

		dri, err := store.Save([]byte("payload"), "")
		require.NoError(t, err)

		payload, err := store.Load(dri)
		require.NoError(t, err)
		require.Equal(t, []byte("payload"), payload)
	})

	t.Run("missing dri", func(t *testing.T) {
		store := New()

		_, err := store.Load("bogus")
		require.Error(t, err)
		require.True(t, errors.Is(err, pds.ErrNotFound))
	})

	t.Run("usage policy", func(t *testing.T) {
		require.Empty(t, New().UsagePolicy())
		require.Equal(t, "policy-1", New(WithUsagePolicy("policy-1")).UsagePolicy())
	})
}
